package match

import (
	"math/rand"

	"github.com/pfrederiksen/marathon-results/internal/runner"
)

// Estimator cell bounds. Each gender and age between AgeMin and AgeMax
// forms one cell, sampled to SampleSize rows.
const (
	AgeMin     = 21
	AgeMax     = 60
	SampleSize = 50
)

type cell struct {
	male bool
	age  int
}

// SampleEstimators draws SampleSize records, with replacement, from every
// gender and age cell, male cells first and ages ascending. Cells with no
// runners are skipped. Sampling comes from the injected source, so a
// seeded source reproduces the same dataset.
func SampleEstimators(records []runner.Record, rng *rand.Rand) []runner.Record {
	cells := make(map[cell][]int)
	for i := range records {
		c := cell{records[i].Male, records[i].Age}
		cells[c] = append(cells[c], i)
	}
	sampled := make([]runner.Record, 0, 2*(AgeMax-AgeMin+1)*SampleSize)
	for _, male := range []bool{true, false} {
		for age := AgeMin; age <= AgeMax; age++ {
			members := cells[cell{male, age}]
			if len(members) == 0 {
				continue
			}
			for i := 0; i < SampleSize; i++ {
				sampled = append(sampled, records[members[rng.Intn(len(members))]])
			}
		}
	}
	return sampled
}
