package baa

import (
	"fmt"

	"github.com/pfrederiksen/marathon-results/internal/normalize"
)

const (
	// FetchLimit is how many rows the site returns per page.
	FetchLimit = 25
	// QueryLimit is the site's cap on rows for one search.
	QueryLimit = 1000

	// modernFirstYear is the first year served by the per-year search
	// instead of the archive search.
	modernFirstYear = 2010

	nextLabel = "Next 25 Records"
)

// Collection returns the snapshot collection name for a race year.
func Collection(year int) string {
	return fmt.Sprintf("bos%02d", year%100)
}

// SearchURL returns the results search endpoint for a race year.
func SearchURL(base string, year int) string {
	if year < modernFirstYear {
		return base + "/cfm_Archive/iframe_ArchiveSearch.cfm"
	}
	return fmt.Sprintf("%s/%d/cf/Public/iframe_ResultsSearch.cfm?mode=results", base, year)
}

// Columns returns the raw column order Extract emits for a race year.
func Columns(year int) []string {
	if year < modernFirstYear {
		return normalize.BostonColumns2001
	}
	return normalize.BostonColumns2010
}
