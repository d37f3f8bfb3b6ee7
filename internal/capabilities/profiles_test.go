package capabilities

import "testing"

func TestGet(t *testing.T) {
	tests := []struct {
		name      string
		profile   string
		found     bool
		lineWidth int
	}{
		{name: "empty name maps to default", profile: "", found: true, lineWidth: 48},
		{name: "known model", profile: "epson-tm-t88", found: true, lineWidth: 42},
		{name: "mixed case", profile: "Epson-TM-T88", found: true, lineWidth: 42},
		{name: "custom sentinel", profile: Custom, found: true, lineWidth: 0},
		{name: "unknown model", profile: "dot-matrix-9000", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := Get(tt.profile)
			if ok != tt.found {
				t.Fatalf("expected found=%v, got %v", tt.found, ok)
			}
			if ok && p.LineWidth != tt.lineWidth {
				t.Errorf("expected line width %d, got %d", tt.lineWidth, p.LineWidth)
			}
		})
	}
}

func TestNamesSorted(t *testing.T) {
	got := Names()
	if len(got) == 0 {
		t.Fatal("expected builtin profiles")
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Fatalf("names not sorted: %q before %q", got[i-1], got[i])
		}
	}
}

func TestChoices(t *testing.T) {
	got := Choices()
	if len(got) != len(Names())+2 {
		t.Fatalf("expected %d choices, got %d", len(Names())+2, len(got))
	}
	if got[0] != "" {
		t.Errorf("expected auto choice first, got %q", got[0])
	}
	if got[len(got)-1] != Custom {
		t.Errorf("expected custom choice last, got %q", got[len(got)-1])
	}
}

func TestSupportsCodepage(t *testing.T) {
	tests := []struct {
		name     string
		profile  string
		codepage string
		expected bool
	}{
		{name: "listed codepage", profile: "epson-tm-t88", codepage: "CP437", expected: true},
		{name: "listed codepage case-insensitive", profile: "epson-tm-t88", codepage: "cp866", expected: true},
		{name: "unlisted codepage", profile: "epson-tm-t88", codepage: "CP932", expected: false},
		{name: "unconstrained profile accepts registered", profile: "default", codepage: "CP932", expected: true},
		{name: "unconstrained profile rejects unknown", profile: "default", codepage: "X-NOPE", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := Get(tt.profile)
			if !ok {
				t.Fatalf("profile %q not found", tt.profile)
			}
			if got := p.SupportsCodepage(tt.codepage); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestColumns(t *testing.T) {
	p, _ := Get("epson-tm-t88")
	if got := p.Columns("a"); got != 42 {
		t.Errorf("expected 42 columns for font A, got %d", got)
	}
	if got := p.Columns("B"); got != 56 {
		t.Errorf("expected 56 columns for font B, got %d", got)
	}
	if got := p.Columns(""); got != 42 {
		t.Errorf("expected font A fallback, got %d", got)
	}
}
