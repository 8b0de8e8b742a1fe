package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testClient(opts Options) *Client {
	c := New(opts)
	c.backoffInitial = time.Millisecond
	return c
}

func TestGetSetsUserAgent(t *testing.T) {
	var agent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	c := testClient(Options{UserAgent: "test-agent/1.0", Timeout: 5 * time.Second})
	body, err := c.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(body) != "hello" {
		t.Errorf("body = %q, want %q", body, "hello")
	}
	if agent != "test-agent/1.0" {
		t.Errorf("User-Agent = %q, want %q", agent, "test-agent/1.0")
	}
}

func TestGetRetriesServerErrors(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer server.Close()

	c := testClient(Options{Timeout: 5 * time.Second, Retries: 3})
	body, err := c.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(body) != "recovered" {
		t.Errorf("body = %q, want %q", body, "recovered")
	}
	if hits != 3 {
		t.Errorf("server hits = %d, want 3", hits)
	}
}

func TestGetStopsOnClientError(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := testClient(Options{Timeout: 5 * time.Second, Retries: 3})
	if _, err := c.Get(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for 404 response")
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1 (no retries on 404)", hits)
	}
}

func TestGetHonorsRetryCap(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := testClient(Options{Timeout: 5 * time.Second, Retries: 2})
	if _, err := c.Get(context.Background(), server.URL); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if hits != 3 {
		t.Errorf("server hits = %d, want 3 (initial attempt plus 2 retries)", hits)
	}
}

func TestPostFormSendsParams(t *testing.T) {
	type searchParams struct {
		LastName string `url:"LastName"`
		Start    int    `url:"start"`
	}

	var gotLastName, gotStart, gotReferer string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parsing form: %v", err)
		}
		gotLastName = r.PostFormValue("LastName")
		gotStart = r.PostFormValue("start")
		gotReferer = r.Header.Get("Referer")
		w.Write([]byte("results"))
	}))
	defer server.Close()

	req, err := FormRequest(server.URL, "http://example.com/search", searchParams{LastName: "aa", Start: 26})
	if err != nil {
		t.Fatalf("FormRequest failed: %v", err)
	}

	c := testClient(Options{Timeout: 5 * time.Second})
	body, err := c.PostForm(context.Background(), req)
	if err != nil {
		t.Fatalf("PostForm failed: %v", err)
	}
	if string(body) != "results" {
		t.Errorf("body = %q, want %q", body, "results")
	}
	if gotLastName != "aa" || gotStart != "26" {
		t.Errorf("form = (%q, %q), want (%q, %q)", gotLastName, gotStart, "aa", "26")
	}
	if gotReferer != "http://example.com/search" {
		t.Errorf("Referer = %q, want %q", gotReferer, "http://example.com/search")
	}
}

func TestPostFormResendsBodyOnRetry(t *testing.T) {
	type searchParams struct {
		LastName string `url:"LastName"`
	}

	var values []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parsing form: %v", err)
		}
		values = append(values, r.PostFormValue("LastName"))
		if len(values) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	req, err := FormRequest(server.URL, "", searchParams{LastName: "zz"})
	if err != nil {
		t.Fatalf("FormRequest failed: %v", err)
	}

	c := testClient(Options{Timeout: 5 * time.Second, Retries: 2})
	if _, err := c.PostForm(context.Background(), req); err != nil {
		t.Fatalf("PostForm failed: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("server hits = %d, want 2", len(values))
	}
	for i, v := range values {
		if v != "zz" {
			t.Errorf("attempt %d form value = %q, want %q", i+1, v, "zz")
		}
	}
}

func TestQueryRequestEncodesParams(t *testing.T) {
	type pageParams struct {
		MIDD int `url:"MIDD"`
	}

	req, err := QueryRequest("http://example.com/results/browse.cfm", pageParams{MIDD: 15721})
	if err != nil {
		t.Fatalf("QueryRequest failed: %v", err)
	}
	if got := req.URL.String(); got != "http://example.com/results/browse.cfm?MIDD=15721" {
		t.Errorf("URL = %q, want MIDD query parameter", got)
	}
}

func TestDoSendsQueryRequest(t *testing.T) {
	type pageParams struct {
		Year int `url:"Year"`
	}

	var gotYear string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotYear = r.URL.Query().Get("Year")
		w.Write([]byte("listing"))
	}))
	defer server.Close()

	req, err := QueryRequest(server.URL, pageParams{Year: 2015})
	if err != nil {
		t.Fatalf("QueryRequest failed: %v", err)
	}

	c := testClient(Options{Timeout: 5 * time.Second})
	body, err := c.Do(context.Background(), req)
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if string(body) != "listing" {
		t.Errorf("body = %q, want %q", body, "listing")
	}
	if gotYear != "2015" {
		t.Errorf("Year query = %q, want %q", gotYear, "2015")
	}
}

func TestDelaySpacesRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	delay := 100 * time.Millisecond
	c := testClient(Options{Timeout: 5 * time.Second, Delay: delay})

	start := time.Now()
	for i := 0; i < 2; i++ {
		if _, err := c.Get(context.Background(), server.URL); err != nil {
			t.Fatalf("Get %d failed: %v", i+1, err)
		}
	}
	if elapsed := time.Since(start); elapsed < delay {
		t.Errorf("two requests took %v, want at least %v", elapsed, delay)
	}
}

func TestGetCanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := testClient(Options{Timeout: 5 * time.Second, Delay: 50 * time.Millisecond, Retries: 3})
	c.Get(context.Background(), server.URL) // occupy the next slot so the second call must wait
	_, err := c.Get(ctx, server.URL)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
