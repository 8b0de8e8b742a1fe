package normalize

import (
	"strconv"
	"strings"
	"unicode"
)

// stripToUpper keeps only letters and digits, uppercased. Matching fields
// drop punctuation and spacing so the same runner lines up across sources.
func stripToUpper(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Name reduces a "Lastname, Firstname M." display name to an uppercase
// (firstname, lastname) pair for cross-source matching. Middle names and
// suffixes are dropped. When the name after the last comma is only an
// initial, the first two alphanumeric characters of the field after the
// first comma stand in for the first name.
//
//	Name("Abou-Zamzam, Ahmed M. Jr.") = ("AHMED", "ABOUZAMZAM")
//	Name("Sung, Kwong Hung, Patrick") = ("PATRICK", "SUNG")
//	Name("Brown, E G Ned")            = ("EG", "BROWN")
//	Name("Andres, R. Jimmy")          = ("RJ", "ANDRES")
func Name(full string) (first, last string) {
	parts := strings.Split(full, ",")
	last = stripToUpper(parts[0])
	tokens := strings.Fields(parts[len(parts)-1])
	if len(tokens) == 0 {
		return "", last
	}
	first = tokens[0]
	if len([]rune(first)) >= 3 || len(parts) < 2 {
		return stripToUpper(first), last
	}
	first = stripToUpper(parts[1])
	if r := []rune(first); len(r) > 2 {
		first = string(r[:2])
	}
	return first, last
}

// FullName rewrites a "First Middle Last (Sex/Age)" value in the
// "Last, First Middle" display form the canonical schema uses, dropping
// the trailing parenthesized field.
//
//	FullName("Miguel Angel Cifuentes (M)") = "Cifuentes, Miguel Angel"
func FullName(s string) string {
	parts := strings.Split(s, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2] + ", " + strings.Join(parts[:len(parts)-2], " ")
}

// GuideName splits a "First Middle Last (SexAge)" value into uppercase
// matching fields plus the gender and age encoded in the trailing token.
// Age is -1 when the site publishes only the gender.
//
//	GuideName("Jose F Gonzalez (M)")                 = ("JOSE", "GONZALEZ", true, -1)
//	GuideName("Karina Lizette Garcia Barrios (F28)") = ("KARINA", "BARRIOS", false, 28)
func GuideName(s string) (first, last string, male bool, age int) {
	parts := strings.Split(s, " ")
	if len(parts) > 2 {
		first = stripToUpper(parts[0])
		last = stripToUpper(parts[len(parts)-2])
	} else {
		last = stripToUpper(parts[0])
	}
	tag := []rune(parts[len(parts)-1])
	male = len(tag) > 1 && tag[1] == 'M'
	age = -1
	if n, err := strconv.Atoi(digitsOf(parts[len(parts)-1])); err == nil {
		age = n
	}
	return first, last, male, age
}

// AgeRange derives the (min, max) ages encoded in a division label such
// as "M35-39". Labels without an interior hyphen, open divisions
// included, span the full 18-99 range. A bound that fails to parse falls
// back to 0 below and 99 above.
func AgeRange(div string) (minAge, maxAge int) {
	if strings.Index(div, "-") <= 0 {
		return 18, 99
	}
	parts := strings.Split(div, "-")
	lo := parts[0]
	if r := []rune(lo); len(r) > 2 {
		lo = string(r[len(r)-2:])
	}
	if n, err := strconv.Atoi(lo); err == nil {
		minAge = n
	}
	maxAge = 99
	hi := parts[1]
	if r := []rune(hi); len(r) > 2 {
		hi = string(r[:2])
	}
	if n, err := strconv.Atoi(hi); err == nil {
		maxAge = n
	}
	return minAge, maxAge
}
