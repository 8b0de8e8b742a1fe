package runner

import "sort"

// BlankString marks string columns with no value in the cleaned datasets.
// Numeric columns use zero for the same purpose.
const BlankString = "-"

// Record is one runner's result in the canonical schema. Every cleaned
// results file carries exactly these columns, in Header order, regardless
// of which site or year the raw rows came from. All times are minutes,
// Name keeps the raw "Last, First M." display form the sites publish, and
// Male holds the canonical gender column (true for male).
type Record struct {
	Marathon     string
	Year         int
	Bib          int
	URL          string
	Name         string
	FirstName    string
	LastName     string
	Age          int
	Male         bool
	City         string
	State        string
	Country      string
	Citizenship  string
	Subgroup     string
	GunStart     float64
	StartTime    float64
	Time5K       float64
	Time10K      float64
	Time15K      float64
	Time20K      float64
	TimeHalf     float64
	Time25K      float64
	Time30K      float64
	Time35K      float64
	Time40K      float64
	Pace         float64
	ProjTime     float64
	OfflTime     float64
	NetTime      float64
	OverallRank  int
	GenderRank   int
	DivisionRank int
	MinAge       int
	MaxAge       int
	Other3       string
	Other4       string
}

// Home is the region a runner represents in the derived datasets: the state
// for US residents, the country for everyone else.
func (r *Record) Home() string {
	if r.Country == "USA" {
		return r.State
	}
	return r.Country
}

// SortByBib orders records by ascending bib number in place. Ties keep
// their relative order so repeated runs stay deterministic.
func SortByBib(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Bib < records[j].Bib
	})
}
