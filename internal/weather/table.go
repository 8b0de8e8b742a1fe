package weather

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Header is the observations CSV column order.
var Header = []string{
	"marathon", "year", "date", "city", "hour", "clock", "temp",
	"dewpoint", "humidity", "pressure", "visibility", "winddir",
	"windspeed", "gustspeed", "precip", "events", "conditions",
}

// ReadFile loads an observations file.
func ReadFile(path string) ([]Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	rows, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// Read decodes observations, rejecting input whose header does not match
// Header exactly.
func Read(r io.Reader) ([]Observation, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) != len(Header) {
		return nil, fmt.Errorf("header has %d columns, want %d", len(header), len(Header))
	}
	for i, col := range header {
		if col != Header[i] {
			return nil, fmt.Errorf("header column %d is %q, want %q", i+1, col, Header[i])
		}
	}
	var rows []Observation
	for row := 2; ; row++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		obs, err := parseObservation(fields)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		rows = append(rows, obs)
	}
	return rows, nil
}

// WriteFile writes observations as an observations file.
func WriteFile(path string, rows []Observation) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// Write encodes observations in Header order, header first.
func Write(w io.Writer, rows []Observation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i := range rows {
		if err := cw.Write(rows[i].fields()); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (o *Observation) fields() []string {
	return []string{
		o.Marathon,
		strconv.Itoa(o.Year),
		o.Date,
		o.City,
		strconv.FormatFloat(o.Hour, 'g', -1, 64),
		o.Clock,
		o.Temp,
		o.DewPoint,
		o.Humidity,
		o.Pressure,
		o.Visibility,
		o.WindDir,
		o.WindSpeed,
		o.GustSpeed,
		o.Precip,
		o.Events,
		o.Conditions,
	}
}

func parseObservation(fields []string) (Observation, error) {
	year, err := strconv.Atoi(fields[1])
	if err != nil {
		return Observation{}, fmt.Errorf("year: %w", err)
	}
	hour, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return Observation{}, fmt.Errorf("hour: %w", err)
	}
	return Observation{
		Marathon:   fields[0],
		Year:       year,
		Date:       fields[2],
		City:       fields[3],
		Hour:       hour,
		Clock:      fields[5],
		Temp:       fields[6],
		DewPoint:   fields[7],
		Humidity:   fields[8],
		Pressure:   fields[9],
		Visibility: fields[10],
		WindDir:    fields[11],
		WindSpeed:  fields[12],
		GustSpeed:  fields[13],
		Precip:     fields[14],
		Events:     fields[15],
		Conditions: fields[16],
	}, nil
}

type raceKey struct {
	marathon string
	year     int
}

// Table indexes observations by race so feature lookups stay independent
// of file layout and row order.
type Table struct {
	byRace map[raceKey][]Observation
}

// NewTable indexes rows by (marathon, year).
func NewTable(rows []Observation) *Table {
	byRace := make(map[raceKey][]Observation)
	for _, row := range rows {
		key := raceKey{row.Marathon, row.Year}
		byRace[key] = append(byRace[key], row)
	}
	return &Table{byRace: byRace}
}

// LoadTable reads an observations file into a Table.
func LoadTable(path string) (*Table, error) {
	rows, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewTable(rows), nil
}

// At returns the observations recorded for one race, nil when the race
// has none.
func (t *Table) At(marathon string, year int) []Observation {
	return t.byRace[raceKey{marathon, year}]
}
