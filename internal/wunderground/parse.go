package wunderground

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/marathon-results/internal/weather"
)

// parseClock converts a 12-hour station reading such as "1:07 PM" to
// fractional hours, 13.1167. Midnight reads as 0 and noon as 12.
func parseClock(s string) (float64, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, fmt.Errorf("clock %q", s)
	}
	hs, ms, found := strings.Cut(fields[0], ":")
	if !found {
		return 0, fmt.Errorf("clock %q", s)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, fmt.Errorf("clock %q", s)
	}
	m, err := strconv.Atoi(ms)
	if err != nil || h < 1 || h > 12 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock %q", s)
	}
	switch fields[1] {
	case "AM":
		if h == 12 {
			h = 0
		}
	case "PM":
		if h != 12 {
			h += 12
		}
	default:
		return 0, fmt.Errorf("clock %q", s)
	}
	return float64(h) + float64(m)/60, nil
}

// obsTable is the parsed reading table of one daily-history page.
type obsTable struct {
	header []string
	clocks []string
	hours  []float64
	rows   [][]string
}

// parseObsTable reads the page's observation table. Rows whose first
// cell is not a clock reading carry raw station reports and are dropped.
func parseObsTable(body []byte) (*obsTable, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	table := doc.Find("#obsTable")
	if table.Length() == 0 {
		return nil, errors.New("no observation table on page")
	}
	t := &obsTable{}
	table.Find("th").Each(func(_ int, th *goquery.Selection) {
		t.header = append(t.header, cleanCell(th.Text()))
	})
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}
		clock := cleanCell(cells.First().Text())
		hour, err := parseClock(clock)
		if err != nil {
			return
		}
		row := make([]string, cells.Length())
		cells.Each(func(i int, td *goquery.Selection) {
			row[i] = cleanCell(td.Text())
		})
		t.clocks = append(t.clocks, clock)
		t.hours = append(t.hours, hour)
		t.rows = append(t.rows, row)
	})
	if len(t.rows) == 0 {
		return nil, errors.New("observation table has no readings")
	}
	return t, nil
}

// closest returns the first row whose reading time is nearest the
// target hour.
func (t *obsTable) closest(hour float64) int {
	best := -1
	bestDiff := math.Inf(1)
	for i, h := range t.hours {
		if diff := math.Abs(h - hour); diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return best
}

// observation maps one reading's cells onto the named site columns.
// Columns without a counterpart, such as windchill, are dropped.
func (t *obsTable) observation(ix int) weather.Observation {
	obs := weather.Observation{Clock: t.clocks[ix]}
	row := t.rows[ix]
	for col, label := range t.header {
		if col >= len(row) {
			break
		}
		v := row[col]
		switch columnKey(label) {
		case "temp":
			obs.Temp = v
		case "dew point":
			obs.DewPoint = v
		case "humidity":
			obs.Humidity = v
		case "pressure":
			obs.Pressure = v
		case "visibility":
			obs.Visibility = v
		case "wind dir":
			obs.WindDir = v
		case "wind speed":
			obs.WindSpeed = v
		case "gust speed":
			obs.GustSpeed = v
		case "precip":
			obs.Precip = v
		case "events":
			obs.Events = v
		case "conditions":
			obs.Conditions = v
		}
	}
	return obs
}

// columnKey normalizes a site column label: "Temp." and "Temperature"
// both key "temp".
func columnKey(label string) string {
	key := strings.ToLower(strings.TrimSuffix(label, "."))
	if strings.HasPrefix(key, "temp") {
		return "temp"
	}
	return key
}

// cleanCell flattens a cell to plain ASCII text. The site wraps readings
// in spans padded with degree signs and non-breaking spaces.
func cleanCell(s string) string {
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
