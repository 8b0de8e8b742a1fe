// Package cli implements the command-line interface for marathon-results.
//
// The cli package provides the Cobra-based CLI with one subcommand per
// pipeline stage: scraping result and weather pages into the snapshot store,
// extracting snapshots into raw CSV rows, cleaning them into canonical
// records, combining races into modeling datasets, collecting prior
// performances, and running the split-point finder. It owns the logger and
// configuration handed to the site and storage packages.
package cli
