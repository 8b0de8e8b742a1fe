// Package match links the same runner across races. Sites publish no
// shared runner identity, so matching works from cleaned name fields,
// gender, and birth-year agreement, with residence details breaking ties.
// The package also draws the matched-estimator samples and builds the
// prior-performance rows the modeling datasets carry.
package match
