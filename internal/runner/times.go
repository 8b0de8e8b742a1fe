package runner

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseMinutes converts a clock-style time string to minutes. Two-unit
// strings are minutes and seconds, not hours and minutes, matching how the
// result sites publish short times. Anything unparseable converts to 0,
// the blank value for numeric columns.
//
//	ParseMinutes("1:23:45") = 83.75
//	ParseMinutes("1:23")    = 1.3833333333333333
//	ParseMinutes("-")       = 0
func ParseMinutes(s string) float64 {
	var units []int
	for _, part := range strings.Split(s, ":") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0
		}
		units = append(units, n)
	}
	var minutes float64
	for _, u := range units {
		minutes = float64(u)/60 + minutes*60
	}
	return minutes
}

// FormatMinutes renders minutes in "h:mm:ss" form, rounding to the nearest
// second.
//
//	FormatMinutes(83.75) = "1:23:45"
//	FormatMinutes(0)     = "0:00:00"
func FormatMinutes(minutes float64) string {
	total := int(math.Round(minutes * 60))
	return fmt.Sprintf("%d:%02d:%02d", total/3600, total%3600/60, total%60)
}
