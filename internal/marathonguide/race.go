package marathonguide

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "01/02/2006"

// Race is one event discovered on the results index.
type Race struct {
	Marathon string
	Year     int
	MIDD     int
	Date     string // MM/DD/YYYY
	City     string
}

// Collection returns the snapshot collection holding one race's result
// batches.
func Collection(midd int) string {
	return fmt.Sprintf("guide%d", midd)
}

var bracketed = regexp.MustCompile(`\([^)]*\)`)

const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// CleanName reduces a site race title to a dataset key. Bracketed
// qualifiers and ASCII punctuation drop, the words "marathon" and
// "series" drop, and the remaining words join with underscores in
// lower case: "Rock 'n' Roll Marathon Series (San Diego)" becomes
// "rock_n_roll".
func CleanName(name string) string {
	name = bracketed.ReplaceAllString(name, "")
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, name)
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "marathon", "")
	name = strings.ReplaceAll(name, "series", "")
	return strings.Join(strings.Fields(name), "_")
}

// parseRaceDate reads the site's long date form, "April 20, 2015".
func parseRaceDate(s string) (time.Time, error) {
	t, err := time.Parse("January 2, 2006", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing race date %q: %w", s, err)
	}
	return t, nil
}

// RaceHeader is the race-list CSV column order.
var RaceHeader = []string{"marathon", "year", "midd"}

// ReadFile loads a race-list file. Date and city are not part of the
// list; they travel in the weather-query file instead.
func ReadFile(path string) ([]Race, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	races, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return races, nil
}

// Read decodes a race list, rejecting input whose header does not match
// RaceHeader exactly.
func Read(r io.Reader) ([]Race, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) != len(RaceHeader) {
		return nil, fmt.Errorf("header has %d columns, want %d", len(header), len(RaceHeader))
	}
	for i, col := range header {
		if col != RaceHeader[i] {
			return nil, fmt.Errorf("header column %d is %q, want %q", i+1, col, RaceHeader[i])
		}
	}
	var races []Race
	for row := 2; ; row++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		year, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: year: %w", row, err)
		}
		midd, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: midd: %w", row, err)
		}
		races = append(races, Race{Marathon: fields[0], Year: year, MIDD: midd})
	}
	return races, nil
}

// WriteFile writes races as a race-list file.
func WriteFile(path string, races []Race) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(f, races); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// Write encodes races in RaceHeader order, header first.
func Write(w io.Writer, races []Race) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RaceHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, race := range races {
		row := []string{race.Marathon, strconv.Itoa(race.Year), strconv.Itoa(race.MIDD)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
