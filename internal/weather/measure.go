package weather

import (
	"fmt"
	"strconv"
	"strings"
)

// Measure parses one observation cell such as "92.1F" or "98%", enforcing
// the unit suffix. Stations report missing and becalmed readings as "-",
// "Calm", or "N/A"; those read as zero.
func Measure(s, unit string) (float64, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "-", "Calm", "N/A":
		return 0, nil
	}
	if !strings.HasSuffix(s, unit) {
		return 0, fmt.Errorf("measurement %q lacks unit %q", s, unit)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, unit)), 64)
	if err != nil {
		return 0, fmt.Errorf("measurement %q: %w", s, err)
	}
	return v, nil
}
