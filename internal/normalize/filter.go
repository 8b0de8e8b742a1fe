package normalize

import "github.com/pfrederiksen/marathon-results/internal/runner"

// FilterRunners drops wheelchair and handcycle records. Those fields start
// ahead of the open race and pace differently, so they would distort every
// downstream estimate.
func FilterRunners(records []runner.Record) []runner.Record {
	kept := make([]runner.Record, 0, len(records))
	for _, r := range records {
		switch r.Subgroup {
		case "WHEELCHAIR", "HANDCYCLE":
			continue
		}
		kept = append(kept, r)
	}
	return kept
}
