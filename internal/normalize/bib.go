package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

// bibPrefixes are the letters BAA prepends to female, wheelchair, and
// handcycle bib numbers.
const bibPrefixes = "FWH"

// Bib converts a raw bib string to its number, stripping any known
// letter prefix.
//
//	Bib("43")  = 43
//	Bib("F12") = 12
func Bib(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty bib")
	}
	digits := s
	if strings.ContainsRune(bibPrefixes, rune(s[0])) {
		digits = s[1:]
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("bib %q: %w", s, err)
	}
	return n, nil
}

// Rank parses the leading position out of an "n/m" rank value. Plain
// integers pass through unchanged.
func Rank(s string) (int, error) {
	head, _, _ := strings.Cut(s, "/")
	n, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, fmt.Errorf("rank %q: %w", s, err)
	}
	return n, nil
}
