package wunderground

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pfrederiksen/marathon-results/internal/weather"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	body, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("reading fixture %s: %v", name, err)
	}
	return body
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1:07 PM", 13 + 7.0/60},
		{"9:54 AM", 9.9},
		{"12:04 AM", 4.0 / 60},
		{"12:04 PM", 12 + 4.0/60},
		{"12:00 AM", 0},
		{"12:00 PM", 12},
		{"11:59 PM", 23 + 59.0/60},
	}
	for _, tt := range tests {
		got, err := parseClock(tt.in)
		if err != nil {
			t.Errorf("parseClock(%q) failed: %v", tt.in, err)
			continue
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("parseClock(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, in := range []string{"", "1:07", "25:00 PM", "1:07 XM", "107 PM", "1:99 AM"} {
		if _, err := parseClock(in); err == nil {
			t.Errorf("parseClock(%q) expected an error", in)
		}
	}
}

func TestParseObsTable(t *testing.T) {
	table, err := parseObsTable(loadFixture(t, "history_page.html"))
	if err != nil {
		t.Fatalf("parseObsTable failed: %v", err)
	}
	if len(table.header) != 13 {
		t.Errorf("header columns = %d, want 13", len(table.header))
	}
	if table.header[1] != "Temp." {
		t.Errorf("header[1] = %q, want %q", table.header[1], "Temp.")
	}
	if len(table.rows) != 8 {
		t.Fatalf("readings = %d, want 8 (raw report rows must drop)", len(table.rows))
	}
	if table.clocks[0] != "9:54 AM" {
		t.Errorf("clocks[0] = %q, want %q", table.clocks[0], "9:54 AM")
	}
	if math.Abs(table.hours[0]-9.9) > 1e-9 {
		t.Errorf("hours[0] = %v, want 9.9", table.hours[0])
	}
}

func TestParseObsTableMissing(t *testing.T) {
	page := "<html><body><p>No daily history available for this date.</p></body></html>"
	if _, err := parseObsTable([]byte(page)); err == nil {
		t.Fatal("expected error for a page without an observation table")
	}
}

func TestClosest(t *testing.T) {
	table, err := parseObsTable(loadFixture(t, "history_page.html"))
	if err != nil {
		t.Fatalf("parseObsTable failed: %v", err)
	}
	tests := []struct {
		hour float64
		want string
	}{
		{10, "9:54 AM"},
		{12, "11:54 AM"},
		{14, "1:54 PM"},
		{16, "3:54 PM"},
	}
	for _, tt := range tests {
		ix := table.closest(tt.hour)
		if ix < 0 || table.clocks[ix] != tt.want {
			t.Errorf("closest(%v) = %q, want %q", tt.hour, table.clocks[ix], tt.want)
		}
	}

	// Ties resolve to the earlier reading.
	tie := &obsTable{hours: []float64{9, 11}, clocks: []string{"9:00 AM", "11:00 AM"}}
	if ix := tie.closest(10); ix != 0 {
		t.Errorf("closest(10) on a tie = %d, want 0", ix)
	}
}

func TestObservationMapsColumns(t *testing.T) {
	table, err := parseObsTable(loadFixture(t, "history_page.html"))
	if err != nil {
		t.Fatalf("parseObsTable failed: %v", err)
	}
	got := table.observation(0)
	want := weather.Observation{
		Clock:      "9:54 AM",
		Temp:       "44.1 F",
		DewPoint:   "39.0 F",
		Humidity:   "82%",
		Pressure:   "29.97 in",
		Visibility: "10.0 mi",
		WindDir:    "ENE",
		WindSpeed:  "16.1 mph",
		GustSpeed:  "21.9 mph",
		Precip:     "0.01 in",
		Events:     "Rain",
		Conditions: "Light Rain",
	}
	if got != want {
		t.Errorf("observation(0) = %+v, want %+v", got, want)
	}

	// The parsed cells feed the feature math directly.
	if temp, err := weather.Measure(got.Temp, "F"); err != nil || temp != 44.1 {
		t.Errorf("Measure(%q) = (%v, %v), want 44.1", got.Temp, temp, err)
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"44.1 °F", "44.1 F"},
		{"  East\n NE ", "East NE"},
		{"-", "-"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := cleanCell(tt.in); got != tt.want {
			t.Errorf("cleanCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestColumnKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Temp.", "temp"},
		{"Temperature", "temp"},
		{"Dew Point", "dew point"},
		{"Wind Dir", "wind dir"},
	}
	for _, tt := range tests {
		if got := columnKey(tt.in); got != tt.want {
			t.Errorf("columnKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
