// Package weather turns scraped station observations into the per-race
// weather features carried by the combined datasets. Measurement cells
// keep the site's raw formatting until a feature aggregation parses them,
// so one bad cell degrades to zero instead of losing the race.
package weather
