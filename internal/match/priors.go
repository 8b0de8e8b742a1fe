package match

import (
	"github.com/pfrederiksen/marathon-results/internal/enrich"
	"github.com/pfrederiksen/marathon-results/internal/runner"
	"github.com/pfrederiksen/marathon-results/internal/weather"
)

// Prior is one matched prior performance: a current runner's identity
// columns joined with the race, year, and finish time found for the same
// runner in an earlier results file.
type Prior struct {
	Marathon      string
	Year          int
	Bib           int
	Name          string
	FirstName     string
	LastName      string
	Age           int
	Male          bool
	City          string
	State         string
	Country       string
	Citizenship   string
	OfflTime      float64
	PriorMarathon string
	PriorYear     int
	PriorTime     float64
	Elite         bool
	Qualifier     bool
	Home          string
	Weather       weather.FeatureSet
}

// CollectPriors scans one prior race for each current runner and emits a
// prior row per match, stamped with the prior race's weather features.
// Elite and qualifier stay false: prior rows model running history, not
// the prior race's seeding.
func CollectPriors(current, prior []runner.Record, fs weather.FeatureSet) []Prior {
	ix := NewIndex(prior)
	var priors []Prior
	for i := range current {
		r := &current[i]
		found, ok := ix.FindSameRunner(r)
		if !ok {
			continue
		}
		priors = append(priors, Prior{
			Marathon:      r.Marathon,
			Year:          r.Year,
			Bib:           r.Bib,
			Name:          r.Name,
			FirstName:     r.FirstName,
			LastName:      r.LastName,
			Age:           r.Age,
			Male:          r.Male,
			City:          r.City,
			State:         r.State,
			Country:       r.Country,
			Citizenship:   r.Citizenship,
			OfflTime:      r.OfflTime,
			PriorMarathon: found.Marathon,
			PriorYear:     found.Year,
			PriorTime:     found.OfflTime,
			Home:          r.Home(),
			Weather:       fs,
		})
	}
	return priors
}

// MiscHome folds home regions carried by fewer than 0.1% of priors into
// enrich.MiscName, the same bucketing applied to combined modeling rows.
// It mutates priors in place and reports how many were folded.
func MiscHome(priors []Prior) int {
	counts := make(map[string]int, 64)
	for i := range priors {
		counts[priors[i].Home]++
	}
	cutoff := len(priors) / 1000
	folded := 0
	for i := range priors {
		if counts[priors[i].Home] < cutoff {
			priors[i].Home = enrich.MiscName
			folded++
		}
	}
	return folded
}
