package enrich

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Header is the combined-dataset column order.
var Header = []string{
	"marathon", "year", "firstname", "bib", "age", "gender",
	"offltime", "starttime", "time5k", "time10k", "time15k", "time20k",
	"timehalf", "time25k", "time30k", "time35k", "time40k",
	"elite", "qualifier", "home",
	"miss5k", "miss10k", "miss15k", "miss20k", "misshalf",
	"miss25k", "miss30k", "miss35k", "miss40k",
	"avgtemp", "avghumid", "avgwind", "avgwindE", "avgwindN",
	"isgusty", "rainhours",
}

// ReadFile loads a combined dataset.
func ReadFile(path string) ([]Row, error) {
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

// Read decodes combined-dataset rows, rejecting input whose header does
// not match Header exactly.
func Read(r io.Reader) ([]Row, error) {
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
	var rows []Row
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		row, err := parseRow(fields)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteFile writes rows as a combined dataset.
func WriteFile(path string, rows []Row) error {
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

// Write encodes rows in Header order, header first.
func Write(w io.Writer, rows []Row) error {
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

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (r *Row) fields() []string {
	return []string{
		r.Marathon,
		strconv.Itoa(r.Year),
		r.FirstName,
		strconv.Itoa(r.Bib),
		strconv.Itoa(r.Age),
		strconv.FormatBool(r.Male),
		formatFloat(r.OfflTime),
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
		strconv.FormatBool(r.Elite),
		strconv.FormatBool(r.Qualifier),
		r.Home,
		strconv.FormatBool(r.Miss5K),
		strconv.FormatBool(r.Miss10K),
		strconv.FormatBool(r.Miss15K),
		strconv.FormatBool(r.Miss20K),
		strconv.FormatBool(r.MissHalf),
		strconv.FormatBool(r.Miss25K),
		strconv.FormatBool(r.Miss30K),
		strconv.FormatBool(r.Miss35K),
		strconv.FormatBool(r.Miss40K),
		formatFloat(r.Weather.AvgTemp),
		formatFloat(r.Weather.AvgHumidity),
		formatFloat(r.Weather.AvgWind),
		formatFloat(r.Weather.AvgWindEast),
		formatFloat(r.Weather.AvgWindNorth),
		strconv.FormatBool(r.Weather.Gusty),
		formatFloat(r.Weather.RainHours),
	}
}

func parseRow(fields []string) (Row, error) {
	p := fieldParser{fields: fields}
	row := Row{
		Marathon:  p.str(0),
		Year:      p.int(1),
		FirstName: p.str(2),
		Bib:       p.int(3),
		Age:       p.int(4),
		Male:      p.bool(5),
		OfflTime:  p.float(6),
		StartTime: p.float(7),
		Time5K:    p.float(8),
		Time10K:   p.float(9),
		Time15K:   p.float(10),
		Time20K:   p.float(11),
		TimeHalf:  p.float(12),
		Time25K:   p.float(13),
		Time30K:   p.float(14),
		Time35K:   p.float(15),
		Time40K:   p.float(16),
		Elite:     p.bool(17),
		Qualifier: p.bool(18),
		Home:      p.str(19),
		Miss5K:    p.bool(20),
		Miss10K:   p.bool(21),
		Miss15K:   p.bool(22),
		Miss20K:   p.bool(23),
		MissHalf:  p.bool(24),
		Miss25K:   p.bool(25),
		Miss30K:   p.bool(26),
		Miss35K:   p.bool(27),
		Miss40K:   p.bool(28),
	}
	row.Weather.AvgTemp = p.float(29)
	row.Weather.AvgHumidity = p.float(30)
	row.Weather.AvgWind = p.float(31)
	row.Weather.AvgWindEast = p.float(32)
	row.Weather.AvgWindNorth = p.float(33)
	row.Weather.Gusty = p.bool(34)
	row.Weather.RainHours = p.float(35)
	if p.err != nil {
		return Row{}, p.err
	}
	return row, nil
}

// fieldParser accumulates the first conversion error so parseRow can
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
	if s == "" || s == "-" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err == nil {
		return n
	}
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil {
		p.fail(i, err)
		return 0
	}
	return int(f)
}

func (p *fieldParser) float(i int) float64 {
	s := p.fields[i]
	if s == "" || s == "-" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.fail(i, err)
		return 0
	}
	return f
}

func (p *fieldParser) bool(i int) bool {
	s := p.fields[i]
	if s == "" || s == "-" {
		return false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		p.fail(i, err)
		return false
	}
	return b
}

func (p *fieldParser) fail(i int, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("column %s: %w", Header[i], err)
	}
}
