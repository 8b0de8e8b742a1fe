package normalize

import (
	"testing"

	"github.com/pfrederiksen/marathon-results/internal/runner"
)

func TestFilterRunners(t *testing.T) {
	records := []runner.Record{
		{Bib: 1, Subgroup: "-"},
		{Bib: 2, Subgroup: "WHEELCHAIR"},
		{Bib: 3, Subgroup: ""},
		{Bib: 4, Subgroup: "HANDCYCLE"},
		{Bib: 5, Subgroup: "VISUALLY IMPAIRED"},
	}

	kept := FilterRunners(records)

	wantBibs := []int{1, 3, 5}
	if len(kept) != len(wantBibs) {
		t.Fatalf("FilterRunners() kept %d records, want %d", len(kept), len(wantBibs))
	}
	for i, want := range wantBibs {
		if kept[i].Bib != want {
			t.Errorf("kept[%d].Bib = %d, want %d", i, kept[i].Bib, want)
		}
	}
}
