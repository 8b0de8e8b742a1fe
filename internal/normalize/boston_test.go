package normalize

import (
	"testing"

	"github.com/pfrederiksen/marathon-results/internal/runner"
)

func TestDetailURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		year int
		want string
	}{
		{
			name: "javascript call",
			in:   "javascript:OpenDetailsWindow('30562')",
			year: 2015,
			want: "http://registration.baa.org/2015/cf/public/wnd_iAthleteDetailsWindow.cfm?RaceAppID=30562",
		},
		{
			name: "empty",
			in:   "",
			year: 2015,
			want: "-",
		},
		{
			name: "no embedded id",
			in:   "nan",
			year: 2012,
			want: "-",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetailURL(tt.in, tt.year); got != tt.want {
				t.Errorf("DetailURL(%q, %d) = %q, want %q", tt.in, tt.year, got, tt.want)
			}
		})
	}
}

func TestBoston2010(t *testing.T) {
	row := []string{
		"F12", "Aase, Geir Harald", "45", "F", "Oslo", "-", "NOR", "NOR", "-",
		"javascript:OpenDetailsWindow('30562')",
		"0:17:30", "0:35:00", "0:52:30", "1:10:00", "1:13:53",
		"1:27:30", "1:45:00", "2:02:30", "2:20:00",
		"0:05:21", "-", "2:27:39",
		"123", "12", "3",
	}

	rec, err := Boston2010(row, "boston", 2015)
	if err != nil {
		t.Fatalf("Boston2010() error = %v", err)
	}

	if rec.Marathon != "boston" || rec.Year != 2015 {
		t.Errorf("marathon/year = %q/%d, want boston/2015", rec.Marathon, rec.Year)
	}
	if rec.Bib != 12 {
		t.Errorf("Bib = %d, want 12", rec.Bib)
	}
	if rec.URL != "http://registration.baa.org/2015/cf/public/wnd_iAthleteDetailsWindow.cfm?RaceAppID=30562" {
		t.Errorf("URL = %q", rec.URL)
	}
	if rec.Name != "Aase, Geir Harald" || rec.FirstName != "GEIR" || rec.LastName != "AASE" {
		t.Errorf("name fields = (%q, %q, %q)", rec.Name, rec.FirstName, rec.LastName)
	}
	if rec.Age != 45 || rec.Male {
		t.Errorf("age/gender = %d/%v, want 45/false", rec.Age, rec.Male)
	}
	if rec.City != "Oslo" || rec.Country != "NOR" || rec.Citizenship != "NOR" {
		t.Errorf("residence = (%q, %q, %q)", rec.City, rec.Country, rec.Citizenship)
	}
	if got, want := rec.Time5K, runner.ParseMinutes("0:17:30"); got != want {
		t.Errorf("Time5K = %v, want %v", got, want)
	}
	if got, want := rec.TimeHalf, runner.ParseMinutes("1:13:53"); got != want {
		t.Errorf("TimeHalf = %v, want %v", got, want)
	}
	if got, want := rec.Time40K, runner.ParseMinutes("2:20:00"); got != want {
		t.Errorf("Time40K = %v, want %v", got, want)
	}
	if got, want := rec.Pace, runner.ParseMinutes("0:05:21"); got != want {
		t.Errorf("Pace = %v, want %v", got, want)
	}
	if rec.ProjTime != 0 {
		t.Errorf("ProjTime = %v, want 0 for blank column", rec.ProjTime)
	}
	if rec.OfflTime != runner.ParseMinutes("2:27:39") || rec.NetTime != rec.OfflTime {
		t.Errorf("OfflTime/NetTime = %v/%v, want equal official times", rec.OfflTime, rec.NetTime)
	}
	if rec.OverallRank != 123 || rec.GenderRank != 12 || rec.DivisionRank != 3 {
		t.Errorf("ranks = %d/%d/%d, want 123/12/3", rec.OverallRank, rec.GenderRank, rec.DivisionRank)
	}
	if rec.GunStart != 0 || rec.StartTime != 0 {
		t.Errorf("start times = %v/%v, want zero", rec.GunStart, rec.StartTime)
	}
	if rec.Other3 != runner.BlankString || rec.Other4 != runner.BlankString {
		t.Errorf("spare columns = %q/%q, want blanks", rec.Other3, rec.Other4)
	}
}

func TestBoston2010Errors(t *testing.T) {
	tests := []struct {
		name string
		row  []string
	}{
		{name: "short row", row: []string{"12", "Aase, Geir"}},
		{
			name: "bad bib",
			row: []string{
				"X12", "Aase, Geir Harald", "45", "M", "Oslo", "-", "NOR", "NOR", "-", "",
				"-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "-",
				"1", "1", "1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Boston2010(tt.row, "boston", 2015); err == nil {
				t.Errorf("Boston2010() error = nil, want error")
			}
		})
	}
}

func TestBoston2001(t *testing.T) {
	row := []string{
		"2009", "W12", "Aase, Geir Harald", "38", "M", "Oslo", "-", "NOR", "-",
		"1234/17567", "1100/10234", "200/3456", "2:27:39", "2:25:01",
	}

	rec, err := Boston2001(row, "boston", 2009)
	if err != nil {
		t.Fatalf("Boston2001() error = %v", err)
	}

	if rec.Bib != 12 {
		t.Errorf("Bib = %d, want 12", rec.Bib)
	}
	if !rec.Male || rec.Age != 38 {
		t.Errorf("gender/age = %v/%d, want true/38", rec.Male, rec.Age)
	}
	if rec.URL != runner.BlankString || rec.Citizenship != runner.BlankString {
		t.Errorf("URL/citizenship = %q/%q, want blanks", rec.URL, rec.Citizenship)
	}
	if rec.OverallRank != 1234 || rec.GenderRank != 1100 || rec.DivisionRank != 200 {
		t.Errorf("ranks = %d/%d/%d, want 1234/1100/200", rec.OverallRank, rec.GenderRank, rec.DivisionRank)
	}
	if rec.Time5K != 0 || rec.TimeHalf != 0 || rec.Time40K != 0 || rec.Pace != 0 {
		t.Errorf("splits must be blank, got %v/%v/%v/%v", rec.Time5K, rec.TimeHalf, rec.Time40K, rec.Pace)
	}
	if got, want := rec.OfflTime, runner.ParseMinutes("2:27:39"); got != want {
		t.Errorf("OfflTime = %v, want %v", got, want)
	}
	if got, want := rec.NetTime, runner.ParseMinutes("2:25:01"); got != want {
		t.Errorf("NetTime = %v, want %v", got, want)
	}
}
