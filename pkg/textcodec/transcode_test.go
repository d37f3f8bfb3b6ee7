package textcodec

import (
	"fmt"
	"strings"
	"testing"
)

func TestTranscodeEmptyInput(t *testing.T) {
	for _, codepage := range []string{"CP437", "ISO_8859-1", "UTF-8", "NOT_A_REAL_CODEPAGE"} {
		if got := Transcode("", codepage); got != "" {
			t.Errorf("Transcode(\"\", %q): expected empty, got %q", codepage, got)
		}
	}
}

func TestTranscodeNativePreservation(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		codepage string
		expected string
	}{
		{
			name:     "box drawing native to CP437",
			text:     "│",
			codepage: "CP437",
			expected: "│",
		},
		{
			name:     "full block native to CP437",
			text:     "█░",
			codepage: "CP437",
			expected: "█░",
		},
		{
			name:     "accented letter native to CP437",
			text:     "café",
			codepage: "CP437",
			expected: "café",
		},
		{
			name:     "euro native to CP858",
			text:     "€",
			codepage: "CP858",
			expected: "€",
		},
		{
			name:     "caron letter native to ISO_8859-2",
			text:     "Škoda",
			codepage: "ISO_8859-2",
			expected: "Škoda",
		},
		{
			name:     "CJK native to CP932",
			text:     "中",
			codepage: "CP932",
			expected: "中",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Transcode(tt.text, tt.codepage); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestTranscodeLookalikeFallback(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		codepage string
		expected string
	}{
		{
			name:     "box drawing falls back on ISO_8859-1",
			text:     "│",
			codepage: "ISO_8859-1",
			expected: "|",
		},
		{
			name:     "box corner falls back on ISO_8859-1",
			text:     "┌─┐",
			codepage: "ISO_8859-1",
			expected: "+-+",
		},
		{
			name:     "curly quotes on CP437",
			text:     "‘Hello’",
			codepage: "CP437",
			expected: "'Hello'",
		},
		{
			name:     "em dash on CP437",
			text:     "a—b",
			codepage: "CP437",
			expected: "a--b",
		},
		{
			name:     "euro on CP437",
			text:     "5€",
			codepage: "CP437",
			expected: "5EUR",
		},
		{
			name:     "euro on CP932",
			text:     "€",
			codepage: "CP932",
			expected: "EUR",
		},
		{
			name:     "zero width space drops",
			text:     "a​b",
			codepage: "CP437",
			expected: "ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Transcode(tt.text, tt.codepage); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestTranscodeAccentFallback(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		codepage string
		expected string
	}{
		{
			name:     "macron letter on CP437",
			text:     "Ā",
			codepage: "CP437",
			expected: "A",
		},
		{
			name:     "accented capital on CP437",
			text:     "Águila",
			codepage: "CP437",
			expected: "Aguila",
		},
		{
			name:     "caron letters fall back on ISO_8859-1",
			text:     "Škoda",
			codepage: "ISO_8859-1",
			expected: "Skoda",
		},
		{
			name:     "sharp s native on CP437",
			text:     "straße",
			codepage: "CP437",
			expected: "straße",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Transcode(tt.text, tt.codepage); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestTranscodePlaceholder(t *testing.T) {
	if got := Transcode("中", "CP437"); got != "?" {
		t.Errorf("expected ?, got %q", got)
	}
	if got := Transcode("中文", "CP437"); got != "??" {
		t.Errorf("expected ??, got %q", got)
	}

	opts := Options{Placeholder: "#", Lookalikes: true, Accents: true}
	if got := TranscodeOpts("中", "CP437", opts); got != "#" {
		t.Errorf("expected #, got %q", got)
	}

	// Zero options: no fallback tiers, unmappable characters drop.
	if got := TranscodeOpts("a中b", "CP437", Options{}); got != "ab" {
		t.Errorf("expected ab, got %q", got)
	}
}

func TestTranscodeUnknownCodepage(t *testing.T) {
	old := logf
	defer func() { logf = old }()

	var warned string
	SetLogger(func(format string, args ...any) {
		warned = fmt.Sprintf(format, args...)
	})

	got := Transcode("café", "NOT_A_REAL_CODEPAGE")
	if got != "café" {
		t.Errorf("expected café, got %q", got)
	}
	if !strings.Contains(warned, "NOT_A_REAL_CODEPAGE") {
		t.Errorf("expected warning naming the codepage, got %q", warned)
	}

	// The passthrough is still normalized.
	got = Transcode("café", "NOT_A_REAL_CODEPAGE")
	if got != "café" {
		t.Errorf("expected normalized café, got %q", got)
	}
}

func TestTranscodeNormalizationFirst(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		codepage string
		expected string
	}{
		{
			name:     "fullwidth digits",
			text:     "１２３",
			codepage: "CP437",
			expected: "123",
		},
		{
			name:     "fi ligature",
			text:     "ﬁne",
			codepage: "CP437",
			expected: "fine",
		},
		{
			name:     "circled digit",
			text:     "①",
			codepage: "CP437",
			expected: "1",
		},
		{
			name:     "combining acute composes before encode",
			text:     "café",
			codepage: "CP437",
			expected: "café",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Transcode(tt.text, tt.codepage); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestTranscodeOptsTiers(t *testing.T) {
	// U+0100 has no look-alike entry, only an accent fallback.
	withAccents := Options{Placeholder: "?", Lookalikes: true, Accents: true}
	noAccents := Options{Placeholder: "?", Lookalikes: true, Accents: false}
	if got := TranscodeOpts("Ā", "CP437", withAccents); got != "A" {
		t.Errorf("accents on: expected A, got %q", got)
	}
	if got := TranscodeOpts("Ā", "CP437", noAccents); got != "?" {
		t.Errorf("accents off: expected ?, got %q", got)
	}

	// U+2502 has only a look-alike entry.
	noLookalikes := Options{Placeholder: "?", Lookalikes: false, Accents: true}
	if got := TranscodeOpts("│", "ISO_8859-1", noLookalikes); got != "?" {
		t.Errorf("lookalikes off: expected ?, got %q", got)
	}
}

func TestTranscodeRoundTripStability(t *testing.T) {
	inputs := []string{
		"plain ascii",
		"‘quoted’ — text",
		"box │─┌ here",
		"mixed 中 and café",
		"€ 12,50",
	}
	codepages := []string{"CP437", "ISO_8859-1", "CP850"}

	for _, codepage := range codepages {
		for _, input := range inputs {
			once := Transcode(input, codepage)
			twice := Transcode(once, codepage)
			if once != twice {
				t.Errorf("Transcode not stable on %s: %q -> %q -> %q", codepage, input, once, twice)
			}
		}
	}
}

func TestFindUnmappable(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		codepage string
		expected []rune
	}{
		{
			name:     "single CJK among ascii",
			text:     "中abc",
			codepage: "CP437",
			expected: []rune{'中'},
		},
		{
			name:     "duplicates suppressed",
			text:     "中中中",
			codepage: "CP437",
			expected: []rune{'中'},
		},
		{
			name:     "characters with fallbacks excluded",
			text:     "€中│",
			codepage: "CP437",
			expected: []rune{'中'},
		},
		{
			name:     "first occurrence order",
			text:     "齐中齐",
			codepage: "CP437",
			expected: []rune{'齐', '中'},
		},
		{
			name:     "everything encodable",
			text:     "plain",
			codepage: "CP437",
			expected: nil,
		},
		{
			name:     "empty input",
			text:     "",
			codepage: "CP437",
			expected: nil,
		},
		{
			name:     "CJK encodable on CP932",
			text:     "中abc",
			codepage: "CP932",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindUnmappable(tt.text, tt.codepage)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %q, got %q", string(tt.expected), string(got))
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("expected %q, got %q", string(tt.expected), string(got))
				}
			}
		})
	}
}

func TestFindUnmappableUnknownCodepage(t *testing.T) {
	// With no codec to encode against, every character lacking a fallback
	// entry is reported.
	got := FindUnmappable("ab", "NOT_A_REAL_CODEPAGE")
	if string(got) != "ab" {
		t.Errorf("expected ab, got %q", string(got))
	}
}

func TestApplyLookalikes(t *testing.T) {
	got := ApplyLookalikes("“x” │")
	if got != `"x" |` {
		t.Errorf("expected %q, got %q", `"x" |`, got)
	}
	// No codepage involved: native characters are replaced too.
	if got := ApplyLookalikes("│"); got != "|" {
		t.Errorf("expected |, got %q", got)
	}
}

func TestApplyAccents(t *testing.T) {
	if got := ApplyAccents("Ā", "CP437"); got != "A" {
		t.Errorf("expected A, got %q", got)
	}
	// Natively encodable characters stay.
	if got := ApplyAccents("café", "CP437"); got != "café" {
		t.Errorf("expected café, got %q", got)
	}
	// No entry and not encodable: passes through unchanged.
	if got := ApplyAccents("中", "CP437"); got != "中" {
		t.Errorf("expected 中, got %q", got)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("ﬁ"); got != "fi" {
		t.Errorf("expected fi, got %q", got)
	}
	if got := Normalize("café"); got != "café" {
		t.Errorf("expected café, got %q", got)
	}
}
