package match

import (
	"strings"

	"github.com/pfrederiksen/marathon-results/internal/runner"
)

// YearOfBirth estimates a runner's birth year from the race year and the
// published age.
func YearOfBirth(r *runner.Record) int {
	return r.Year - r.Age
}

// AgesMatch reports whether a birth year is consistent with a candidate
// record: within a year of the candidate's own birth year when its source
// publishes ages, inside the division age range otherwise.
func AgesMatch(yob int, c *runner.Record) bool {
	if c.Age >= 0 {
		diff := YearOfBirth(c) - yob
		return diff >= -1 && diff <= 1
	}
	return yob <= c.Year-c.MinAge && yob >= c.Year-c.MaxAge
}

// Index accelerates same-runner lookups within one race's records.
type Index struct {
	records    []runner.Record
	byLastName map[string][]int
}

// NewIndex groups records by cleaned last name. The records slice is
// referenced, not copied.
func NewIndex(records []runner.Record) *Index {
	byLastName := make(map[string][]int, len(records))
	for i := range records {
		name := records[i].LastName
		byLastName[name] = append(byLastName[name], i)
	}
	return &Index{records: records, byLastName: byLastName}
}

// FindSameRunner searches the index for the given runner. Last name,
// first name, and gender must match and the birth year must agree per
// AgesMatch; ties go to the candidate scoring highest on residence and
// name details, first candidate winning equal scores so repeated runs
// stay deterministic.
func (ix *Index) FindSameRunner(r *runner.Record) (runner.Record, bool) {
	yob := YearOfBirth(r)
	var matched []int
	for _, c := range ix.byLastName[r.LastName] {
		candidate := &ix.records[c]
		if candidate.FirstName != r.FirstName || candidate.Male != r.Male {
			continue
		}
		if !AgesMatch(yob, candidate) {
			continue
		}
		matched = append(matched, c)
	}
	switch len(matched) {
	case 0:
		return runner.Record{}, false
	case 1:
		return ix.records[matched[0]], true
	}
	return ix.records[ix.tiebreak(r, matched)], true
}

// tiebreak scores each candidate against the runner and returns the index
// of the first highest scorer. Shared residence details outweigh name
// details, and a matching middle initial outweighs everything else.
func (ix *Index) tiebreak(r *runner.Record, candidates []int) int {
	yob := YearOfBirth(r)
	best := candidates[0]
	bestScore := -1
	for _, c := range candidates {
		candidate := &ix.records[c]
		score := 0
		if candidate.State == r.State {
			score += 2
		}
		if candidate.Country == r.Country {
			score += 2
		}
		if candidate.City == r.City {
			score += 2
		}
		if candidate.Name == r.Name {
			score++
		}
		if middleInitial(candidate.Name) == middleInitial(r.Name) {
			score += 3
		}
		if YearOfBirth(candidate) == yob {
			score++
		}
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}

// middleInitial is the first rune of the last space-separated token of a
// "Last, First Middle" display name.
func middleInitial(name string) string {
	fields := strings.Split(name, " ")
	token := fields[len(fields)-1]
	if token == "" {
		return ""
	}
	return string([]rune(token)[0])
}
