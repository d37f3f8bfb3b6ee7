package printer

import (
	"reflect"
	"testing"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected []string
	}{
		{
			name:     "fits on one line",
			text:     "hello world",
			width:    20,
			expected: []string{"hello world"},
		},
		{
			name:     "wraps on spaces",
			text:     "the quick brown fox jumps",
			width:    10,
			expected: []string{"the quick", "brown fox", "jumps"},
		},
		{
			name:     "exact width line",
			text:     "abcde fghij",
			width:    5,
			expected: []string{"abcde", "fghij"},
		},
		{
			name:     "breaks oversized word",
			text:     "supercalifragilistic",
			width:    8,
			expected: []string{"supercal", "ifragili", "stic"},
		},
		{
			name:     "oversized word after text",
			text:     "an extraordinarily big word",
			width:    10,
			expected: []string{"an", "extraordin", "arily big", "word"},
		},
		{
			name:     "preserves explicit breaks",
			text:     "line one\nline two",
			width:    20,
			expected: []string{"line one", "line two"},
		},
		{
			name:     "empty paragraph kept",
			text:     "top\n\nbottom",
			width:    20,
			expected: []string{"top", "", "bottom"},
		},
		{
			name:     "collapses runs of spaces",
			text:     "a    b",
			width:    10,
			expected: []string{"a b"},
		},
		{
			name:     "counts runes not bytes",
			text:     "héllo wörld",
			width:    5,
			expected: []string{"héllo", "wörld"},
		},
		{
			name:     "zero width disables wrapping",
			text:     "unwrapped text\nsecond line",
			width:    0,
			expected: []string{"unwrapped text", "second line"},
		},
		{
			name:     "empty input",
			text:     "",
			width:    10,
			expected: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapText(tt.text, tt.width)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
