package wunderground

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pfrederiksen/marathon-results/internal/scrape"
	"github.com/pfrederiksen/marathon-results/internal/weather"
)

// historyQuery addresses one station's readings for one day.
type historyQuery struct {
	AirportOrWMO string `url:"airportorwmo"`
	HistoryType  string `url:"historytype"`
	BackURL      string `url:"backurl"`
	Code         string `url:"code"`
	Month        int    `url:"month"`
	Day          int    `url:"day"`
	Year         int    `url:"year"`
}

// sampleKey identifies one observation row in the output table.
type sampleKey struct {
	marathon string
	year     int
	city     string
	hour     float64
}

// Scraper samples daily-history observations for race-day queries.
type Scraper struct {
	client *scrape.Client
	log    *zap.Logger
	base   string
}

// New creates a Scraper rooted at the site base URL, usually
// "https://www.wunderground.com".
func New(client *scrape.Client, log *zap.Logger, base string) *Scraper {
	return &Scraper{client: client, log: log, base: base}
}

// Run fetches observations for every query and returns the new rows,
// ordered by query, station, and hour. Samples already present in have
// are not fetched again; a station page without readings logs a warning
// and yields nothing, matching the pipeline's tolerance for missing
// weather.
func (s *Scraper) Run(ctx context.Context, queries []Query, have []weather.Observation) ([]weather.Observation, error) {
	seen := make(map[sampleKey]bool, len(have))
	for _, obs := range have {
		seen[sampleKey{obs.Marathon, obs.Year, obs.City, obs.Hour}] = true
	}
	var out []weather.Observation
	for _, q := range queries {
		rows, err := s.query(ctx, q, seen)
		if err != nil {
			return nil, fmt.Errorf("query %s/%d: %w", q.Marathon, q.Year, err)
		}
		for _, obs := range rows {
			seen[sampleKey{obs.Marathon, obs.Year, obs.City, obs.Hour}] = true
		}
		out = append(out, rows...)
	}
	return out, nil
}

// query samples one race day. The start and finish station pages are
// fetched concurrently; a station is skipped when every one of its
// samples is already present.
func (s *Scraper) query(ctx context.Context, q Query, seen map[sampleKey]bool) ([]weather.Observation, error) {
	cities := []string{q.StartCity}
	if q.EndCity != q.StartCity {
		cities = append(cities, q.EndCity)
	}
	hours := q.sampleHours()

	rowsByCity := make([][]weather.Observation, len(cities))
	g, gctx := errgroup.WithContext(ctx)
	for i, city := range cities {
		i, city := i, city
		missing := false
		for _, h := range hours {
			if !seen[sampleKey{q.Marathon, q.Year, city, float64(h)}] {
				missing = true
				break
			}
		}
		if !missing {
			continue
		}
		g.Go(func() error {
			rows, err := s.station(gctx, q, city, hours, seen)
			if err != nil {
				return err
			}
			rowsByCity[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []weather.Observation
	for _, rows := range rowsByCity {
		out = append(out, rows...)
	}
	return out, nil
}

// station fetches one city's readings and takes the closest row for
// each missing sample hour.
func (s *Scraper) station(ctx context.Context, q Query, city string, hours []int, seen map[sampleKey]bool) ([]weather.Observation, error) {
	month, day, year, err := q.dateParts()
	if err != nil {
		return nil, err
	}
	req, err := scrape.QueryRequest(s.base+"/history/", historyQuery{
		AirportOrWMO: "query",
		HistoryType:  "DailyHistory",
		BackURL:      "/history/index.html",
		Code:         city,
		Month:        month,
		Day:          day,
		Year:         year,
	})
	if err != nil {
		return nil, err
	}
	body, err := s.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("station %s: %w", city, err)
	}
	table, err := parseObsTable(body)
	if err != nil {
		s.log.Warn("station has no readings",
			zap.String("marathon", q.Marathon),
			zap.Int("year", q.Year),
			zap.String("city", city),
			zap.Error(err))
		return nil, nil
	}

	var rows []weather.Observation
	for _, h := range hours {
		if seen[sampleKey{q.Marathon, q.Year, city, float64(h)}] {
			continue
		}
		ix := table.closest(float64(h))
		if ix < 0 {
			continue
		}
		obs := table.observation(ix)
		obs.Marathon = q.Marathon
		obs.Year = q.Year
		obs.Date = q.Date
		obs.City = city
		obs.Hour = float64(h)
		rows = append(rows, obs)
	}
	return rows, nil
}
