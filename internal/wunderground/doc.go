// Package wunderground samples race-day weather from daily-history
// pages. Each query names a race date and its start and end cities; the
// nearest station reading is taken for every other hour across the race
// window and recorded as an observation row.
package wunderground
