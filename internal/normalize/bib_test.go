package normalize

import "testing"

func TestBib(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{name: "plain number", in: "43", want: 43},
		{name: "female prefix", in: "F12", want: 12},
		{name: "wheelchair prefix", in: "W12", want: 12},
		{name: "handcycle prefix", in: "H7", want: 7},
		{name: "surrounding space", in: " 43 ", want: 43},
		{name: "unknown prefix", in: "X12", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "prefix only", in: "F", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Bib(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Bib(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("Bib(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestRank(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{name: "position of field", in: "123/4567", want: 123},
		{name: "plain position", in: "17", want: 17},
		{name: "not a number", in: "DNF/4567", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rank(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Rank(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("Rank(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
