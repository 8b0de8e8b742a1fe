package match

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// PriorsHeader is the priors dataset column order.
var PriorsHeader = []string{
	"marathon", "year", "bib", "name", "firstname", "lastname", "age",
	"gender", "city", "state", "country", "citizenship", "offltime",
	"prior_marathon", "prior_year", "prior_time",
	"elite", "qualifier", "home",
	"avgtemp", "avghumid", "avgwind", "avgwindE", "avgwindN",
	"isgusty", "rainhours",
}

// ReadPriorsFile loads a priors dataset.
func ReadPriorsFile(path string) ([]Prior, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	priors, err := ReadPriors(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return priors, nil
}

// ReadPriors decodes priors rows, rejecting input whose header does not
// match PriorsHeader exactly.
func ReadPriors(r io.Reader) ([]Prior, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) != len(PriorsHeader) {
		return nil, fmt.Errorf("header has %d columns, want %d", len(header), len(PriorsHeader))
	}
	for i, col := range header {
		if col != PriorsHeader[i] {
			return nil, fmt.Errorf("header column %d is %q, want %q", i+1, col, PriorsHeader[i])
		}
	}
	var priors []Prior
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		p, err := parsePrior(fields)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		priors = append(priors, p)
	}
	return priors, nil
}

// WritePriorsFile writes priors as a priors dataset.
func WritePriorsFile(path string, priors []Prior) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WritePriors(f, priors); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// WritePriors encodes priors in PriorsHeader order, header first.
func WritePriors(w io.Writer, priors []Prior) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(PriorsHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i := range priors {
		if err := cw.Write(priors[i].fields()); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (p *Prior) fields() []string {
	return []string{
		p.Marathon,
		strconv.Itoa(p.Year),
		strconv.Itoa(p.Bib),
		p.Name,
		p.FirstName,
		p.LastName,
		strconv.Itoa(p.Age),
		strconv.FormatBool(p.Male),
		p.City,
		p.State,
		p.Country,
		p.Citizenship,
		formatFloat(p.OfflTime),
		p.PriorMarathon,
		strconv.Itoa(p.PriorYear),
		formatFloat(p.PriorTime),
		strconv.FormatBool(p.Elite),
		strconv.FormatBool(p.Qualifier),
		p.Home,
		formatFloat(p.Weather.AvgTemp),
		formatFloat(p.Weather.AvgHumidity),
		formatFloat(p.Weather.AvgWind),
		formatFloat(p.Weather.AvgWindEast),
		formatFloat(p.Weather.AvgWindNorth),
		strconv.FormatBool(p.Weather.Gusty),
		formatFloat(p.Weather.RainHours),
	}
}

func parsePrior(fields []string) (Prior, error) {
	p := fieldParser{fields: fields}
	prior := Prior{
		Marathon:      p.str(0),
		Year:          p.int(1),
		Bib:           p.int(2),
		Name:          p.str(3),
		FirstName:     p.str(4),
		LastName:      p.str(5),
		Age:           p.int(6),
		Male:          p.bool(7),
		City:          p.str(8),
		State:         p.str(9),
		Country:       p.str(10),
		Citizenship:   p.str(11),
		OfflTime:      p.float(12),
		PriorMarathon: p.str(13),
		PriorYear:     p.int(14),
		PriorTime:     p.float(15),
		Elite:         p.bool(16),
		Qualifier:     p.bool(17),
		Home:          p.str(18),
	}
	prior.Weather.AvgTemp = p.float(19)
	prior.Weather.AvgHumidity = p.float(20)
	prior.Weather.AvgWind = p.float(21)
	prior.Weather.AvgWindEast = p.float(22)
	prior.Weather.AvgWindNorth = p.float(23)
	prior.Weather.Gusty = p.bool(24)
	prior.Weather.RainHours = p.float(25)
	if p.err != nil {
		return Prior{}, p.err
	}
	return prior, nil
}

// fieldParser accumulates the first conversion error so parsePrior can
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
		p.err = fmt.Errorf("column %s: %w", PriorsHeader[i], err)
	}
}
