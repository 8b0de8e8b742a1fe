package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// UserAgent identifies the pipeline to the sites it scrapes.
	UserAgent = "marathon-results/1.0 (github.com/pfrederiksen/marathon-results)"
	// Timeout bounds a single request attempt.
	Timeout = 30 * time.Second
	// Delay is the politeness pause between consecutive requests.
	Delay = 500 * time.Millisecond
	// MaxRetries caps how many times a failed request is retried.
	MaxRetries = 4
)

// Options configure a Client.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Delay     time.Duration
	Retries   uint64
}

// DefaultOptions returns the settings used when nothing overrides them.
func DefaultOptions() Options {
	return Options{
		UserAgent: UserAgent,
		Timeout:   Timeout,
		Delay:     Delay,
		Retries:   MaxRetries,
	}
}

// Client fetches pages politely: a fixed User-Agent, a pause between
// consecutive requests, and bounded exponential-backoff retries on
// transport errors and retryable status codes.
type Client struct {
	http           *http.Client
	ua             string
	delay          time.Duration
	retries        uint64
	backoffInitial time.Duration

	mu   sync.Mutex
	next time.Time
}

// New creates a Client from the given options.
func New(opts Options) *Client {
	return &Client{
		http:           &http.Client{Timeout: opts.Timeout},
		ua:             opts.UserAgent,
		delay:          opts.Delay,
		retries:        opts.Retries,
		backoffInitial: backoff.DefaultInitialInterval,
	}
}

// Get fetches a URL and returns the response body.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return c.do(req)
}

// Do sends a prepared request and returns the response body.
func (c *Client) Do(ctx context.Context, req *http.Request) ([]byte, error) {
	return c.do(req.Clone(ctx))
}

// PostForm sends a prepared form POST, typically built by FormRequest,
// and returns the response body.
func (c *Client) PostForm(ctx context.Context, req *http.Request) ([]byte, error) {
	return c.Do(ctx, req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	if c.ua != "" {
		req.Header.Set("User-Agent", c.ua)
	}
	var body []byte
	attempt := func() error {
		if err := c.pause(req.Context()); err != nil {
			return backoff.Permanent(err)
		}
		// A retried POST must re-send its body from the start.
		if req.GetBody != nil {
			rc, err := req.GetBody()
			if err != nil {
				return backoff.Permanent(fmt.Errorf("rewinding request body: %w", err))
			}
			req.Body = rc
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("fetching %s: %w", req.URL, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("fetching %s: unexpected status code: %d", req.URL, resp.StatusCode)
			if retryable(resp.StatusCode) {
				return err
			}
			return backoff.Permanent(err)
		}
		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading %s: %w", req.URL, err)
		}
		return nil
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(c.policy(), c.retries), req.Context())
	if err := backoff.Retry(attempt, policy); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) policy() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.backoffInitial
	return b
}

func retryable(code int) bool {
	return code >= http.StatusInternalServerError || code == http.StatusTooManyRequests
}

// pause reserves the next request slot and waits for it, so concurrent
// callers stay at least one delay apart.
func (c *Client) pause(ctx context.Context) error {
	if c.delay <= 0 {
		return nil
	}
	c.mu.Lock()
	now := time.Now()
	at := c.next
	if at.Before(now) {
		at = now
	}
	c.next = at.Add(c.delay)
	c.mu.Unlock()

	wait := time.Until(at)
	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
