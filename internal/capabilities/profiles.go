// Package capabilities describes what different printer models can do:
// printable width, text columns per font, and which codepages the
// firmware ships character tables for.
package capabilities

import (
	"sort"
	"strings"
	"sync"

	"github.com/cognitivegears/ha-escpos-thermal-printer/pkg/textcodec"
)

// Custom is the sentinel profile name for printers configured entirely
// by hand. It imposes no codepage or width constraints.
const Custom = "__custom__"

// Profile describes one printer model family.
type Profile struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	DotWidth       int      `json:"dotWidth"`       // printable dots per line
	LineWidth      int      `json:"lineWidth"`      // columns with font A
	LineWidthFontB int      `json:"lineWidthFontB"` // columns with font B
	Codepages      []string `json:"codepages,omitempty"`
}

var builtin = map[string]Profile{
	"default": {
		Name:           "default",
		Description:    "Generic 80 mm ESC/POS printer",
		DotWidth:       576,
		LineWidth:      48,
		LineWidthFontB: 64,
	},
	"generic-58mm": {
		Name:           "generic-58mm",
		Description:    "Generic 58 mm ESC/POS printer",
		DotWidth:       384,
		LineWidth:      32,
		LineWidthFontB: 42,
	},
	"generic-80mm": {
		Name:           "generic-80mm",
		Description:    "Generic 80 mm ESC/POS printer",
		DotWidth:       576,
		LineWidth:      48,
		LineWidthFontB: 64,
	},
	"epson-tm-t20": {
		Name:           "epson-tm-t20",
		Description:    "Epson TM-T20 series",
		DotWidth:       576,
		LineWidth:      48,
		LineWidthFontB: 64,
		Codepages: []string{
			"CP437", "CP850", "CP852", "CP858", "CP860", "CP863", "CP865",
			"CP866", "CP1252", "ISO_8859-2", "ISO_8859-15",
		},
	},
	"epson-tm-t88": {
		Name:           "epson-tm-t88",
		Description:    "Epson TM-T88 series",
		DotWidth:       512,
		LineWidth:      42,
		LineWidthFontB: 56,
		Codepages: []string{
			"CP437", "CP850", "CP852", "CP855", "CP858", "CP860", "CP862",
			"CP863", "CP865", "CP866", "CP1250", "CP1251", "CP1252",
			"ISO_8859-2", "ISO_8859-15",
		},
	},
	"epson-tm-m30": {
		Name:           "epson-tm-m30",
		Description:    "Epson TM-m30 series",
		DotWidth:       576,
		LineWidth:      48,
		LineWidthFontB: 64,
		Codepages: []string{
			"CP437", "CP850", "CP852", "CP858", "CP860", "CP863", "CP865",
			"CP866", "CP1250", "CP1251", "CP1252", "ISO_8859-2", "ISO_8859-15",
		},
	},
}

var (
	namesOnce sync.Once
	names     []string
)

// Get returns the capability profile for a name. The empty string maps
// to the default profile; Custom returns an unconstrained profile.
func Get(name string) (Profile, bool) {
	switch name {
	case "":
		return builtin["default"], true
	case Custom:
		return Profile{Name: Custom, Description: "User-defined printer"}, true
	}
	p, ok := builtin[strings.ToLower(name)]
	return p, ok
}

// Names returns the sorted builtin profile names.
func Names() []string {
	namesOnce.Do(func() {
		names = make([]string, 0, len(builtin))
		for name := range builtin {
			names = append(names, name)
		}
		sort.Strings(names)
	})
	return names
}

// Choices returns the selection list for configuration surfaces: the
// empty string (auto-detect) first, the builtin names sorted, and the
// Custom sentinel last.
func Choices() []string {
	builtins := Names()
	choices := make([]string, 0, len(builtins)+2)
	choices = append(choices, "")
	choices = append(choices, builtins...)
	choices = append(choices, Custom)
	return choices
}

// SupportsCodepage reports whether the profile's firmware carries the
// codepage. Profiles without an explicit list accept anything the codec
// registry resolves.
func (p Profile) SupportsCodepage(codepage string) bool {
	if len(p.Codepages) == 0 {
		_, ok := textcodec.Lookup(codepage)
		return ok
	}
	for _, cp := range p.Codepages {
		if strings.EqualFold(cp, codepage) {
			return true
		}
	}
	return false
}

// Columns returns the text columns for a font selector, falling back to
// font A. Zero means the profile does not constrain width.
func (p Profile) Columns(font string) int {
	if strings.EqualFold(font, "b") && p.LineWidthFontB > 0 {
		return p.LineWidthFontB
	}
	return p.LineWidth
}
