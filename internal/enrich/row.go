package enrich

import (
	"errors"

	"github.com/pfrederiksen/marathon-results/internal/runner"
	"github.com/pfrederiksen/marathon-results/internal/split"
	"github.com/pfrederiksen/marathon-results/internal/weather"
)

// EliteBib is the highest bib number the seeded elite field carries.
const EliteBib = 100

// Row is one runner's modeling row in a combined dataset.
type Row struct {
	Marathon  string
	Year      int
	FirstName string
	Bib       int
	Age       int
	Male      bool
	OfflTime  float64
	StartTime float64
	Time5K    float64
	Time10K   float64
	Time15K   float64
	Time20K   float64
	TimeHalf  float64
	Time25K   float64
	Time30K   float64
	Time35K   float64
	Time40K   float64
	Elite     bool
	Qualifier bool
	Home      string
	Miss5K    bool
	Miss10K   bool
	Miss15K   bool
	Miss20K   bool
	MissHalf  bool
	Miss25K   bool
	Miss30K   bool
	Miss35K   bool
	Miss40K   bool
	Weather   weather.FeatureSet
}

// AddFeatures builds modeling rows for one race's records. Elite status
// covers the seeded field, qualifier status everyone ahead of the variance
// boundary in finish times over ascending bibs, and home is the state for
// US runners and the country otherwise. Races too small for the boundary
// scan, or from sources that publish no bibs, get no qualifiers. When
// fillSplits is set, missing splits are interpolated and flagged.
func AddFeatures(records []runner.Record, fs weather.FeatureSet, fillSplits bool) ([]Row, error) {
	rows := make([]Row, len(records))
	for i := range records {
		r := &records[i]
		rows[i] = Row{
			Marathon:  r.Marathon,
			Year:      r.Year,
			FirstName: r.FirstName,
			Bib:       r.Bib,
			Age:       r.Age,
			Male:      r.Male,
			OfflTime:  r.OfflTime,
			StartTime: r.StartTime,
			Time5K:    r.Time5K,
			Time10K:   r.Time10K,
			Time15K:   r.Time15K,
			Time20K:   r.Time20K,
			TimeHalf:  r.TimeHalf,
			Time25K:   r.Time25K,
			Time30K:   r.Time30K,
			Time35K:   r.Time35K,
			Time40K:   r.Time40K,
			Elite:     r.Bib > 0 && r.Bib <= EliteBib,
			Home:      r.Home(),
			Weather:   fs,
		}
	}
	boundary, err := qualifierBoundary(records)
	if err != nil {
		return nil, err
	}
	if boundary > 0 {
		for i := range rows {
			rows[i].Qualifier = rows[i].Bib > 0 && rows[i].Bib < boundary
		}
	}
	if fillSplits {
		FillMissingSplits(rows)
	}
	return rows, nil
}

// SplitSamples orders one race's finish times by ascending bib for the
// boundary scan. Elite women share low bib numbers with elite men, so
// duplicate bibs keep their first record.
func SplitSamples(records []runner.Record) []split.Sample {
	sorted := make([]runner.Record, len(records))
	copy(sorted, records)
	runner.SortByBib(sorted)
	samples := make([]split.Sample, 0, len(sorted))
	for i := range sorted {
		if len(samples) > 0 && samples[len(samples)-1].Bib == sorted[i].Bib {
			continue
		}
		samples = append(samples, split.Sample{Bib: sorted[i].Bib, Minutes: sorted[i].OfflTime})
	}
	return samples
}

// qualifierBoundary locates the first non-qualifier bib. A race without
// enough distinct bibs has no boundary and reports zero.
func qualifierBoundary(records []runner.Record) (int, error) {
	boundary, err := split.Find(SplitSamples(records), split.DefaultOptions())
	if errors.Is(err, split.ErrInsufficientData) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return boundary, nil
}
