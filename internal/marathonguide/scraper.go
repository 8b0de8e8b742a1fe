package marathonguide

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/pfrederiksen/marathon-results/internal/pagestore"
	"github.com/pfrederiksen/marathon-results/internal/scrape"
)

// yearQuery opens a year's race index.
type yearQuery struct {
	Year int `url:"Year"`
}

// raceQuery opens one race's browse page.
type raceQuery struct {
	MIDD int `url:"MIDD"`
}

// resultsForm requests one batch of a race's results. The endpoint
// rejects the POST unless the validation message is echoed back.
type resultsForm struct {
	RaceRange string `url:"RaceRange"`
	Required  string `url:"RaceRange_Required"`
	MIDD      int    `url:"MIDD"`
	Submit    string `url:"SubmitButton"`
}

const requiredMessage = "You must make a selection before viewing results."

// Scraper discovers races on the results index and snapshots their
// result batches.
type Scraper struct {
	client *scrape.Client
	store  *pagestore.Store
	log    *zap.Logger
	base   string
}

// New creates a Scraper rooted at the site base URL, usually
// "http://www.marathonguide.com".
func New(client *scrape.Client, store *pagestore.Store, log *zap.Logger, base string) *Scraper {
	return &Scraper{client: client, store: store, log: log, base: base}
}

// Crawl walks browse pages breadth-first from the year index and returns
// the races dated in that year, in discovery order. Pages dated in other
// years are not expanded, which keeps the walk from spidering the whole
// results archive.
func (s *Scraper) Crawl(ctx context.Context, year int) ([]Race, error) {
	doc, err := s.browse(ctx, yearQuery{Year: year})
	if err != nil {
		return nil, fmt.Errorf("year index %d: %w", year, err)
	}
	queue := parseMIDDs(doc)
	visited := make(map[int]bool)
	var races []Race
	for len(queue) > 0 {
		midd := queue[0]
		queue = queue[1:]
		if visited[midd] {
			continue
		}
		visited[midd] = true

		doc, err := s.browse(ctx, raceQuery{MIDD: midd})
		if err != nil {
			return nil, fmt.Errorf("race %d: %w", midd, err)
		}
		info, err := parseRaceInfo(doc)
		if err != nil {
			s.log.Debug("skipping page without a race title",
				zap.Int("midd", midd), zap.Error(err))
			continue
		}
		date, err := parseRaceDate(info.date)
		if err != nil {
			s.log.Warn("skipping race with unreadable date",
				zap.Int("midd", midd), zap.String("date", info.date))
			continue
		}
		if date.Year() != year {
			continue
		}
		races = append(races, Race{
			Marathon: CleanName(info.name),
			Year:     year,
			MIDD:     midd,
			Date:     date.Format(dateLayout),
			City:     info.city,
		})
		queue = append(queue, parseMIDDs(doc)...)
	}
	s.log.Info("crawl finished", zap.Int("year", year), zap.Int("races", len(races)))
	return races, nil
}

// Run snapshots every result batch of every race. Batches already in the
// store are not fetched again.
func (s *Scraper) Run(ctx context.Context, races []Race) error {
	started := time.Now()
	for _, race := range races {
		if err := s.scrapeRace(ctx, race); err != nil {
			return fmt.Errorf("race %s/%d: %w", race.Marathon, race.MIDD, err)
		}
	}
	s.log.Info("scrape finished",
		zap.Int("races", len(races)),
		zap.Duration("elapsed", time.Since(started)))
	return nil
}

// scrapeRace reads the batch list off the race's browse page and posts
// for each batch missing from the store.
func (s *Scraper) scrapeRace(ctx context.Context, race Race) error {
	collection := Collection(race.MIDD)
	runID, err := s.store.BeginRun(ctx, collection)
	if err != nil {
		return err
	}
	doc, err := s.browse(ctx, raceQuery{MIDD: race.MIDD})
	if err != nil {
		return err
	}
	ranges := findRaceRanges(doc)
	referer := fmt.Sprintf("%s/results/browse.cfm?MIDD=%d", s.base, race.MIDD)
	stored := 0
	for _, rr := range ranges {
		start, err := batchStart(rr)
		if err != nil {
			return err
		}
		id := fmt.Sprintf("%07d", start)
		ok, err := s.store.Has(ctx, collection, id)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		req, err := scrape.FormRequest(s.base+"/results/makelinks.cfm", referer, resultsForm{
			RaceRange: rr,
			Required:  requiredMessage,
			MIDD:      race.MIDD,
			Submit:    "View",
		})
		if err != nil {
			return err
		}
		body, err := s.client.PostForm(ctx, req)
		if err != nil {
			return fmt.Errorf("batch %s: %w", rr, err)
		}
		if _, err := s.store.Put(ctx, collection, id, req.URL.String(), body); err != nil {
			return err
		}
		stored++
	}
	if err := s.store.FinishRun(ctx, runID, stored); err != nil {
		return err
	}
	s.log.Info("scraped race",
		zap.String("marathon", race.Marathon),
		zap.Int("midd", race.MIDD),
		zap.Int("batches", len(ranges)),
		zap.Int("pages_stored", stored))
	return nil
}

// browse fetches one browse page and parses it.
func (s *Scraper) browse(ctx context.Context, params interface{}) (*goquery.Document, error) {
	req, err := scrape.QueryRequest(s.base+"/results/browse.cfm", params)
	if err != nil {
		return nil, err
	}
	body, err := s.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(bytes.NewReader(body))
}
