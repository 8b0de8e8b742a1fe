package wunderground

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Sampling window when a query leaves its hours unset. Marathons start
// mid-morning and the field is off the course well before evening.
const (
	DefaultStartHour = 10
	DefaultEndHour   = 16

	sampleInterval = 2
)

// Query names one race day to sample: the race, its date, and the
// station cities at the start and finish of the course.
type Query struct {
	Marathon  string
	Year      int
	Date      string // MM/DD/YYYY
	StartCity string
	EndCity   string
	StartHour int
	EndHour   int
}

// sampleHours lists the hours observed for the query, every other hour
// from start to end.
func (q Query) sampleHours() []int {
	start, end := q.StartHour, q.EndHour
	if start == 0 && end == 0 {
		start, end = DefaultStartHour, DefaultEndHour
	}
	var hours []int
	for h := start; h <= end; h += sampleInterval {
		hours = append(hours, h)
	}
	return hours
}

// dateParts splits the query date for the history page's parameters.
func (q Query) dateParts() (month, day, year int, err error) {
	t, err := time.Parse("01/02/2006", q.Date)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("query %s/%d: date %q: %w", q.Marathon, q.Year, q.Date, err)
	}
	return int(t.Month()), t.Day(), t.Year(), nil
}

// QueryHeader is the weather-query CSV column order.
var QueryHeader = []string{
	"marathon", "year", "date", "startcity", "endcity", "starthour", "endhour",
}

// ReadQueriesFile loads a weather-query file.
func ReadQueriesFile(path string) ([]Query, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	queries, err := ReadQueries(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return queries, nil
}

// ReadQueries decodes weather queries, rejecting input whose header does
// not match QueryHeader exactly.
func ReadQueries(r io.Reader) ([]Query, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) != len(QueryHeader) {
		return nil, fmt.Errorf("header has %d columns, want %d", len(header), len(QueryHeader))
	}
	for i, col := range header {
		if col != QueryHeader[i] {
			return nil, fmt.Errorf("header column %d is %q, want %q", i+1, col, QueryHeader[i])
		}
	}
	var queries []Query
	for row := 2; ; row++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		q, err := parseQuery(fields)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		queries = append(queries, q)
	}
	return queries, nil
}

func parseQuery(fields []string) (Query, error) {
	year, err := strconv.Atoi(fields[1])
	if err != nil {
		return Query{}, fmt.Errorf("year: %w", err)
	}
	start, err := strconv.Atoi(fields[5])
	if err != nil {
		return Query{}, fmt.Errorf("starthour: %w", err)
	}
	end, err := strconv.Atoi(fields[6])
	if err != nil {
		return Query{}, fmt.Errorf("endhour: %w", err)
	}
	return Query{
		Marathon:  fields[0],
		Year:      year,
		Date:      fields[2],
		StartCity: fields[3],
		EndCity:   fields[4],
		StartHour: start,
		EndHour:   end,
	}, nil
}

// WriteQueriesFile writes queries as a weather-query file.
func WriteQueriesFile(path string, queries []Query) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteQueries(f, queries); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// WriteQueries encodes queries in QueryHeader order, header first.
func WriteQueries(w io.Writer, queries []Query) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(QueryHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, q := range queries {
		row := []string{
			q.Marathon,
			strconv.Itoa(q.Year),
			q.Date,
			q.StartCity,
			q.EndCity,
			strconv.Itoa(q.StartHour),
			strconv.Itoa(q.EndHour),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
