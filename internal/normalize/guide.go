package normalize

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/marathon-results/internal/runner"
)

// GuideNameColumn heads the name cell of every marathonguide.com result
// table. Despite the label, values arrive as "First Middle Last (SexAge)".
const GuideNameColumn = "Last Name, First Name(Sex/Age)"

// Guide converts one raw marathonguide.com row into a canonical record.
// Raw headers vary by marathon, so columns are resolved by name: the
// hometown cell carries either "State, Country" or "City, State, Country"
// values, divisions may be missing, and marathons without chip timing
// publish a single gun time that fills both time columns. Bibs and ranks
// are not extracted from this source.
func Guide(header, row []string, marathon string, year int) (runner.Record, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	field := func(name string) (string, bool) {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return "", false
		}
		return row[i], true
	}

	name, ok := field(GuideNameColumn)
	if !ok {
		return runner.Record{}, fmt.Errorf("raw row has no %q column", GuideNameColumn)
	}
	first, last, male, age := GuideName(name)
	rec := runner.Record{
		Marathon:    marathon,
		Year:        year,
		URL:         runner.BlankString,
		Name:        FullName(name),
		FirstName:   first,
		LastName:    last,
		Age:         age,
		Male:        male,
		City:        runner.BlankString,
		State:       runner.BlankString,
		Country:     runner.BlankString,
		Citizenship: runner.BlankString,
		Subgroup:    runner.BlankString,
		Other3:      runner.BlankString,
		Other4:      runner.BlankString,
	}
	div, _ := field("DIV")
	rec.MinAge, rec.MaxAge = AgeRange(div)
	if hometown, ok := field("State, Country"); ok {
		rec.State, rec.Country = StateCountry(hometown)
	} else if hometown, ok := field("City, State, Country"); ok {
		rec.City, rec.State, rec.Country = CityStateCountry(hometown)
	}
	gun, hasGun := field("Time")
	net, hasNet := field("Net Time")
	if hasGun {
		rec.OfflTime = runner.ParseMinutes(gun)
	} else if hasNet {
		rec.OfflTime = runner.ParseMinutes(net)
	}
	if hasNet {
		rec.NetTime = runner.ParseMinutes(net)
	} else if hasGun {
		rec.NetTime = runner.ParseMinutes(gun)
	}
	return rec, nil
}
