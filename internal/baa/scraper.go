package baa

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dghubble/sling"
	"go.uber.org/zap"

	"github.com/pfrederiksen/marathon-results/internal/pagestore"
	"github.com/pfrederiksen/marathon-results/internal/scrape"
)

type gender int

const (
	genderBoth   gender = 0
	genderMale   gender = 1
	genderFemale gender = 2
)

func (g gender) suffix() string {
	switch g {
	case genderMale:
		return "_m"
	case genderFemale:
		return "_f"
	}
	return ""
}

// searchForm is the 2010+ results search request.
type searchForm struct {
	StoredProcParamsOn string `url:"StoredProcParamsOn"`
	LastName           string `url:"LastName"`
	GenderID           int    `url:"GenderID"`
	TargetCount        int    `url:"VarTargetCount"`
	Records            int    `url:"records"`
	Start              int    `url:"start"`
	Next               string `url:"next"`
}

// archiveQuery selects 2001-2009 rows from the archive search. The
// endpoint reads the search criteria from the query string and the
// pagination cursor from the form body.
type archiveQuery struct {
	Mode               string `url:"mode"`
	Criteria           string `url:"criteria"`
	StoredProcParamsOn string `url:"StoredProcParamsOn"`
	RaceYearLow        int    `url:"VarRaceYearLowID"`
	RaceYearHigh       int    `url:"VarRaceYearHighID"`
	AgeLow             int    `url:"VarAgeLowID"`
	AgeHigh            int    `url:"VarAgeHighID"`
	GenderID           int    `url:"VarGenderID"`
	BibNumber          string `url:"VarBibNumber"`
	LastName           string `url:"VarLastName"`
	FirstName          string `url:"VarFirstName"`
	StateID            int    `url:"VarStateID"`
	CountryID          int    `url:"VarCountryOfResidenceID"`
	City               string `url:"VarCity"`
	Zip                string `url:"VarZip"`
	SortOrder          string `url:"VarSortOrder"`
	AddInactiveYears   int    `url:"VarAddInactiveYears"`
	Records            int    `url:"records"`
	HeaderExists       string `url:"headerexists"`
	QueryName          string `url:"queryname"`
	TableFields        string `url:"tablefields"`
}

type archiveForm struct {
	Start int    `url:"start"`
	Next  string `url:"next"`
}

const archiveTableFields = "RaceYear,FullBibNumber,FormattedSortName,AgeOnRaceDay," +
	"GenderCode,City,StateAbbrev,CountryOfResAbbrev,ReportingSegment"

// Scraper walks one year of BAA results and snapshots every page.
type Scraper struct {
	client     *scrape.Client
	store      *pagestore.Store
	log        *zap.Logger
	search     string
	year       int
	collection string
	queryLimit int
}

// NewScraper creates a Scraper for one race year posting to the given
// search endpoint, usually SearchURL(base, year).
func NewScraper(client *scrape.Client, store *pagestore.Store, log *zap.Logger, search string, year int) *Scraper {
	return &Scraper{
		client:     client,
		store:      store,
		log:        log,
		search:     search,
		year:       year,
		collection: Collection(year),
		queryLimit: QueryLimit,
	}
}

// Run scrapes every two-letter last-name prefix. A prefix whose results
// hit the site's row cap is re-queried once per gender so the truncated
// tail is covered. Pages already in the store are not fetched again.
func (s *Scraper) Run(ctx context.Context) error {
	started := time.Now()
	runID, err := s.store.BeginRun(ctx, s.collection)
	if err != nil {
		return err
	}
	stored := 0
	var capped []string
	for c1 := 'a'; c1 <= 'z'; c1++ {
		for c2 := 'a'; c2 <= 'z'; c2++ {
			prefix := string(c1) + string(c2)
			total, n, err := s.scrapePrefix(ctx, prefix, genderBoth)
			if err != nil {
				return fmt.Errorf("prefix %s: %w", prefix, err)
			}
			stored += n
			if total >= s.queryLimit {
				capped = append(capped, prefix)
				s.log.Warn("row cap hit, subdividing by gender",
					zap.String("prefix", prefix), zap.Int("runners", total))
				for _, g := range []gender{genderMale, genderFemale} {
					_, n, err := s.scrapePrefix(ctx, prefix, g)
					if err != nil {
						return fmt.Errorf("prefix %s%s: %w", prefix, g.suffix(), err)
					}
					stored += n
				}
			}
		}
	}
	if err := s.store.FinishRun(ctx, runID, stored); err != nil {
		return err
	}
	s.log.Info("scrape finished",
		zap.String("collection", s.collection),
		zap.Int("pages_stored", stored),
		zap.Strings("capped_prefixes", capped),
		zap.Duration("elapsed", time.Since(started)))
	return nil
}

// scrapePrefix pages through one search until the next-page control
// disappears. It returns the number of runners seen and pages stored.
func (s *Scraper) scrapePrefix(ctx context.Context, prefix string, g gender) (int, int, error) {
	total := 0
	stored := 0
	for start := 1; start < s.queryLimit; start += FetchLimit {
		id := fmt.Sprintf("%s_%04d%s", prefix, start, g.suffix())
		body, fetched, err := s.page(ctx, id, prefix, start, g)
		if err != nil {
			return total, stored, err
		}
		if fetched {
			stored++
		}
		runners, hasNext, err := pageInfo(body)
		if err != nil {
			return total, stored, fmt.Errorf("page %s: %w", id, err)
		}
		total += runners
		if !hasNext {
			break
		}
	}
	s.log.Debug("scraped prefix",
		zap.String("prefix", prefix+g.suffix()), zap.Int("runners", total))
	return total, stored, nil
}

// page returns a snapshot body, fetching and storing it when absent.
func (s *Scraper) page(ctx context.Context, id, prefix string, start int, g gender) ([]byte, bool, error) {
	body, err := s.store.Get(ctx, s.collection, id)
	if err == nil {
		return body, false, nil
	}
	if !errors.Is(err, pagestore.ErrNotFound) {
		return nil, false, err
	}

	req, err := s.searchRequest(prefix, start, g)
	if err != nil {
		return nil, false, err
	}
	body, err = s.client.PostForm(ctx, req)
	if err != nil {
		return nil, false, err
	}
	stored, err := s.store.Put(ctx, s.collection, id, req.URL.String(), body)
	if err != nil {
		return nil, false, err
	}
	return body, stored, nil
}

func (s *Scraper) searchRequest(prefix string, start int, g gender) (*http.Request, error) {
	var (
		req *http.Request
		err error
	)
	if s.year < modernFirstYear {
		req, err = sling.New().Post(s.search).
			QueryStruct(archiveQuery{
				Mode:               "results",
				StoredProcParamsOn: "yes",
				RaceYearLow:        s.year,
				GenderID:           int(g),
				LastName:           prefix,
				SortOrder:          "ByName",
				Records:            FetchLimit,
				HeaderExists:       "Yes",
				QueryName:          "SearchResults",
				TableFields:        archiveTableFields,
			}).
			BodyForm(archiveForm{Start: start, Next: nextLabel}).
			Request()
	} else {
		req, err = sling.New().Post(s.search).
			BodyForm(searchForm{
				StoredProcParamsOn: "yes",
				LastName:           prefix,
				GenderID:           int(g),
				TargetCount:        s.queryLimit,
				Records:            FetchLimit,
				Start:              start,
				Next:               nextLabel,
			}).
			Request()
	}
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	return req, nil
}
