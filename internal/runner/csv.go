package runner

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Header is the canonical column order of every cleaned results file.
var Header = []string{
	"marathon", "year", "bib", "url", "name", "firstname", "lastname",
	"age", "gender", "city", "state", "country", "citizenship", "subgroup",
	"gunstart", "starttime", "time5k", "time10k", "time15k", "time20k",
	"timehalf", "time25k", "time30k", "time35k", "time40k", "pace",
	"projtime", "offltime", "nettime", "overall_rank", "gender_rank",
	"division_rank", "minage", "maxage", "other3", "other4",
}

// ReadFile loads a cleaned results file.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Read decodes canonical records, rejecting input whose header does not
// match Header exactly.
func Read(r io.Reader) ([]Record, error) {
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
	var records []Record
	for row := 2; ; row++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		rec, err := parseRecord(fields)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteFile writes records as a cleaned results file.
func WriteFile(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(f, records); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// Write encodes records in canonical column order, header first.
func Write(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i := range records {
		if err := cw.Write(records[i].fields()); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (r *Record) fields() []string {
	return []string{
		r.Marathon,
		strconv.Itoa(r.Year),
		strconv.Itoa(r.Bib),
		r.URL,
		r.Name,
		r.FirstName,
		r.LastName,
		strconv.Itoa(r.Age),
		strconv.FormatBool(r.Male),
		r.City,
		r.State,
		r.Country,
		r.Citizenship,
		r.Subgroup,
		formatFloat(r.GunStart),
		formatFloat(r.StartTime),
		formatFloat(r.Time5K),
		formatFloat(r.Time10K),
		formatFloat(r.Time15K),
		formatFloat(r.Time20K),
		formatFloat(r.TimeHalf),
		formatFloat(r.Time25K),
		formatFloat(r.Time30K),
		formatFloat(r.Time35K),
		formatFloat(r.Time40K),
		formatFloat(r.Pace),
		formatFloat(r.ProjTime),
		formatFloat(r.OfflTime),
		formatFloat(r.NetTime),
		strconv.Itoa(r.OverallRank),
		strconv.Itoa(r.GenderRank),
		strconv.Itoa(r.DivisionRank),
		strconv.Itoa(r.MinAge),
		strconv.Itoa(r.MaxAge),
		r.Other3,
		r.Other4,
	}
}

func parseRecord(fields []string) (Record, error) {
	p := fieldParser{fields: fields}
	rec := Record{
		Marathon:     p.str(0),
		Year:         p.int(1),
		Bib:          p.int(2),
		URL:          p.str(3),
		Name:         p.str(4),
		FirstName:    p.str(5),
		LastName:     p.str(6),
		Age:          p.int(7),
		Male:         p.bool(8),
		City:         p.str(9),
		State:        p.str(10),
		Country:      p.str(11),
		Citizenship:  p.str(12),
		Subgroup:     p.str(13),
		GunStart:     p.float(14),
		StartTime:    p.float(15),
		Time5K:       p.float(16),
		Time10K:      p.float(17),
		Time15K:      p.float(18),
		Time20K:      p.float(19),
		TimeHalf:     p.float(20),
		Time25K:      p.float(21),
		Time30K:      p.float(22),
		Time35K:      p.float(23),
		Time40K:      p.float(24),
		Pace:         p.float(25),
		ProjTime:     p.float(26),
		OfflTime:     p.float(27),
		NetTime:      p.float(28),
		OverallRank:  p.int(29),
		GenderRank:   p.int(30),
		DivisionRank: p.int(31),
		MinAge:       p.int(32),
		MaxAge:       p.int(33),
		Other3:       p.str(34),
		Other4:       p.str(35),
	}
	if p.err != nil {
		return Record{}, p.err
	}
	return rec, nil
}

// fieldParser accumulates the first conversion error so parseRecord can
// assign all columns without per-field error plumbing.
type fieldParser struct {
	fields []string
	err    error
}

func (p *fieldParser) str(i int) string {
	return p.fields[i]
}

func (p *fieldParser) int(i int) int {
	s := p.fields[i]
	if s == "" || s == BlankString {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Integer columns come back as floats when a source left
		// gaps, e.g. "45.0" ages.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			p.setErr(i, err)
			return 0
		}
		return int(f)
	}
	return n
}

func (p *fieldParser) float(i int) float64 {
	s := p.fields[i]
	if s == "" || s == BlankString {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.setErr(i, err)
		return 0
	}
	return f
}

func (p *fieldParser) bool(i int) bool {
	s := p.fields[i]
	if s == "" || s == BlankString {
		return false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		p.setErr(i, err)
		return false
	}
	return b
}

func (p *fieldParser) setErr(i int, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("column %s: %w", Header[i], err)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
