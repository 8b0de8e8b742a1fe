package normalize

import "testing"

func TestName(t *testing.T) {
	tests := []struct {
		name      string
		full      string
		wantFirst string
		wantLast  string
	}{
		{
			name:      "plain name",
			full:      "Aase, Geir Harald",
			wantFirst: "GEIR",
			wantLast:  "AASE",
		},
		{
			name:      "two word lastname",
			full:      "Abraham Peregrina, Nahim",
			wantFirst: "NAHIM",
			wantLast:  "ABRAHAMPEREGRINA",
		},
		{
			name:      "hyphen and suffix",
			full:      "Abou-Zamzam, Ahmed M. Jr.",
			wantFirst: "AHMED",
			wantLast:  "ABOUZAMZAM",
		},
		{
			name:      "short firstname",
			full:      "Buckley, Ed",
			wantFirst: "ED",
			wantLast:  "BUCKLEY",
		},
		{
			name:      "nickname after second comma",
			full:      "Sung, Kwong Hung, Patrick",
			wantFirst: "PATRICK",
			wantLast:  "SUNG",
		},
		{
			name:      "title between commas",
			full:      "Mercado, M.D., Michael G.",
			wantFirst: "MICHAEL",
			wantLast:  "MERCADO",
		},
		{
			name:      "spaced initials",
			full:      "Brown, E G Ned",
			wantFirst: "EG",
			wantLast:  "BROWN",
		},
		{
			name:      "dotted initial",
			full:      "Andres, R. Jimmy",
			wantFirst: "RJ",
			wantLast:  "ANDRES",
		},
		{
			name:      "single token",
			full:      "Cher",
			wantFirst: "CHER",
			wantLast:  "CHER",
		},
		{
			name:      "empty",
			full:      "",
			wantFirst: "",
			wantLast:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := Name(tt.full)
			if first != tt.wantFirst || last != tt.wantLast {
				t.Errorf("Name(%q) = (%q, %q), want (%q, %q)",
					tt.full, first, last, tt.wantFirst, tt.wantLast)
			}
		})
	}
}

func TestFullName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "hyphenated first",
			in:   "Jean-Marc Th (M)",
			want: "Th, Jean-Marc",
		},
		{
			name: "middle name",
			in:   "Miguel Angel Cifuentes (M)",
			want: "Cifuentes, Miguel Angel",
		},
		{
			name: "single token",
			in:   "Cher",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FullName(tt.in); got != tt.want {
				t.Errorf("FullName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGuideName(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantFirst string
		wantLast  string
		wantMale  bool
		wantAge   int
	}{
		{
			name:      "gender only",
			in:        "Jose F Gonzalez (M)",
			wantFirst: "JOSE",
			wantLast:  "GONZALEZ",
			wantMale:  true,
			wantAge:   -1,
		},
		{
			name:      "hyphenated lastname",
			in:        "Ignacio Lopez-Mancisidor (M)",
			wantFirst: "IGNACIO",
			wantLast:  "LOPEZMANCISIDOR",
			wantMale:  true,
			wantAge:   -1,
		},
		{
			name:      "gender and age",
			in:        "Karina Lizette Garcia Barrios (F28)",
			wantFirst: "KARINA",
			wantLast:  "BARRIOS",
			wantMale:  false,
			wantAge:   28,
		},
		{
			name:      "lastname only",
			in:        "Gonzalez (M)",
			wantFirst: "",
			wantLast:  "GONZALEZ",
			wantMale:  true,
			wantAge:   -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last, male, age := GuideName(tt.in)
			if first != tt.wantFirst || last != tt.wantLast || male != tt.wantMale || age != tt.wantAge {
				t.Errorf("GuideName(%q) = (%q, %q, %v, %d), want (%q, %q, %v, %d)",
					tt.in, first, last, male, age,
					tt.wantFirst, tt.wantLast, tt.wantMale, tt.wantAge)
			}
		})
	}
}

func TestAgeRange(t *testing.T) {
	tests := []struct {
		name    string
		div     string
		wantMin int
		wantMax int
	}{
		{name: "male bracket", div: "M35-39", wantMin: 35, wantMax: 39},
		{name: "female bracket", div: "F40-44", wantMin: 40, wantMax: 44},
		{name: "open division", div: "Mopen", wantMin: 18, wantMax: 99},
		{name: "empty", div: "", wantMin: 18, wantMax: 99},
		{name: "leading hyphen", div: "-39", wantMin: 18, wantMax: 99},
		{name: "unparseable bounds", div: "Mxx-yy", wantMin: 0, wantMax: 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minAge, maxAge := AgeRange(tt.div)
			if minAge != tt.wantMin || maxAge != tt.wantMax {
				t.Errorf("AgeRange(%q) = (%d, %d), want (%d, %d)",
					tt.div, minAge, maxAge, tt.wantMin, tt.wantMax)
			}
		})
	}
}
