package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pfrederiksen/marathon-results/internal/runner"
)

// BostonColumns2010 is the raw header the 2010-2016 results extractor
// writes, one column per cell of the site's result table.
var BostonColumns2010 = []string{
	"bib", "name", "age", "gender", "city", "state", "country",
	"citizenship", "subgroup", "url", "d5k", "d10k", "d15k", "d20k",
	"half", "d25k", "d30k", "d35k", "d40k", "pace", "projtime",
	"offltime", "overall", "genderrank", "division",
}

// BostonColumns2001 is the raw header the 2001-2009 results extractor
// writes. The older site publishes no split times and formats ranks as
// "position/fieldsize".
var BostonColumns2001 = []string{
	"year", "bib", "name", "age", "gender", "city", "state", "country",
	"subgroup", "overallrank", "genderrank", "divisionrank",
	"Officialtime", "nettime",
}

// DetailURL rewrites the javascript call embedded in a result row as the
// athlete detail URL it opens. Rows without one come back blank.
//
//	DetailURL("javascript:OpenDetailsWindow('30562')", 2015) =
//	"http://registration.baa.org/2015/cf/public/wnd_iAthleteDetailsWindow.cfm?RaceAppID=30562"
func DetailURL(rawURL string, year int) string {
	parts := strings.Split(rawURL, "'")
	if len(parts) != 3 {
		return runner.BlankString
	}
	return fmt.Sprintf(
		"http://registration.baa.org/%d/cf/public/wnd_iAthleteDetailsWindow.cfm?RaceAppID=%s",
		year, parts[1])
}

// rawInt parses integer columns from raw extracts, tolerating the float
// rendering some exports use and treating blanks as zero.
func rawInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == runner.BlankString {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("integer column %q: %w", s, err)
	}
	return int(f), nil
}

// Boston2010 converts one raw 2010-2016 BAA results row into a canonical
// record. Net time is a copy of the official time: the raw tables do not
// publish chip times, and the wave starts are reconstructed downstream.
func Boston2010(row []string, marathon string, year int) (runner.Record, error) {
	if len(row) != len(BostonColumns2010) {
		return runner.Record{}, fmt.Errorf("raw row has %d fields, want %d", len(row), len(BostonColumns2010))
	}
	bib, err := Bib(row[0])
	if err != nil {
		return runner.Record{}, err
	}
	age, err := rawInt(row[2])
	if err != nil {
		return runner.Record{}, fmt.Errorf("age: %w", err)
	}
	overall, err := rawInt(row[22])
	if err != nil {
		return runner.Record{}, fmt.Errorf("overall rank: %w", err)
	}
	gender, err := rawInt(row[23])
	if err != nil {
		return runner.Record{}, fmt.Errorf("gender rank: %w", err)
	}
	division, err := rawInt(row[24])
	if err != nil {
		return runner.Record{}, fmt.Errorf("division rank: %w", err)
	}
	first, last := Name(row[1])
	offl := runner.ParseMinutes(row[21])
	return runner.Record{
		Marathon:     marathon,
		Year:         year,
		Bib:          bib,
		URL:          DetailURL(row[9], year),
		Name:         row[1],
		FirstName:    first,
		LastName:     last,
		Age:          age,
		Male:         row[3] == "M",
		City:         row[4],
		State:        row[5],
		Country:      row[6],
		Citizenship:  row[7],
		Subgroup:     row[8],
		Time5K:       runner.ParseMinutes(row[10]),
		Time10K:      runner.ParseMinutes(row[11]),
		Time15K:      runner.ParseMinutes(row[12]),
		Time20K:      runner.ParseMinutes(row[13]),
		TimeHalf:     runner.ParseMinutes(row[14]),
		Time25K:      runner.ParseMinutes(row[15]),
		Time30K:      runner.ParseMinutes(row[16]),
		Time35K:      runner.ParseMinutes(row[17]),
		Time40K:      runner.ParseMinutes(row[18]),
		Pace:         runner.ParseMinutes(row[19]),
		ProjTime:     runner.ParseMinutes(row[20]),
		OfflTime:     offl,
		NetTime:      offl,
		OverallRank:  overall,
		GenderRank:   gender,
		DivisionRank: division,
		Other3:       runner.BlankString,
		Other4:       runner.BlankString,
	}, nil
}

// Boston2001 converts one raw 2001-2009 BAA results row into a canonical
// record. The raw year column is ignored in favor of the year the file
// was scraped under.
func Boston2001(row []string, marathon string, year int) (runner.Record, error) {
	if len(row) != len(BostonColumns2001) {
		return runner.Record{}, fmt.Errorf("raw row has %d fields, want %d", len(row), len(BostonColumns2001))
	}
	bib, err := Bib(row[1])
	if err != nil {
		return runner.Record{}, err
	}
	age, err := rawInt(row[3])
	if err != nil {
		return runner.Record{}, fmt.Errorf("age: %w", err)
	}
	overall, err := Rank(row[9])
	if err != nil {
		return runner.Record{}, err
	}
	gender, err := Rank(row[10])
	if err != nil {
		return runner.Record{}, err
	}
	division, err := Rank(row[11])
	if err != nil {
		return runner.Record{}, err
	}
	first, last := Name(row[2])
	return runner.Record{
		Marathon:     marathon,
		Year:         year,
		Bib:          bib,
		URL:          runner.BlankString,
		Name:         row[2],
		FirstName:    first,
		LastName:     last,
		Age:          age,
		Male:         row[4] == "M",
		City:         row[5],
		State:        row[6],
		Country:      row[7],
		Citizenship:  runner.BlankString,
		Subgroup:     row[8],
		OfflTime:     runner.ParseMinutes(row[12]),
		NetTime:      runner.ParseMinutes(row[13]),
		OverallRank:  overall,
		GenderRank:   gender,
		DivisionRank: division,
		Other3:       runner.BlankString,
		Other4:       runner.BlankString,
	}, nil
}
