package printer

import (
	"strings"

	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/models"
	"github.com/cognitivegears/ha-escpos-thermal-printer/pkg/escpos"
)

// The option parsers accept the string values exposed by the HTTP API,
// the WebSocket agent, and the CLI. Unknown values map to the defaults
// rather than erroring, so a misspelled style still prints.

func parseAlign(s string) escpos.Alignment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center", "centre":
		return escpos.AlignCenter
	case "right":
		return escpos.AlignRight
	default:
		return escpos.AlignLeft
	}
}

func parseUnderline(s string) escpos.Underline {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "on", "1":
		return escpos.UnderlineSingle
	case "double", "2":
		return escpos.UnderlineDouble
	default:
		return escpos.UnderlineNone
	}
}

func parseMultiplier(s string) int {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "double", "2":
		return 2
	case "triple", "3":
		return 3
	default:
		return 1
	}
}

func parseFont(s string) escpos.Font {
	if strings.EqualFold(strings.TrimSpace(s), "b") {
		return escpos.FontB
	}
	return escpos.FontA
}

func parseCut(s string) escpos.CutMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "partial":
		return escpos.CutPartial
	case "full", "cut":
		return escpos.CutFull
	default:
		return escpos.CutNone
	}
}

func parseHRI(s string) escpos.HRIPosition {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "above":
		return escpos.HRIAbove
	case "below":
		return escpos.HRIBelow
	case "both":
		return escpos.HRIBoth
	default:
		return escpos.HRINone
	}
}

func parseECLevel(s string) escpos.ECLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "low":
		return escpos.ECLow
	case "q", "quartile":
		return escpos.ECQuartile
	case "h", "high":
		return escpos.ECHigh
	default:
		return escpos.ECMedium
	}
}

var symbologies = map[string]escpos.Symbology{
	"upca":    escpos.UPCA,
	"upc-a":   escpos.UPCA,
	"upce":    escpos.UPCE,
	"upc-e":   escpos.UPCE,
	"ean13":   escpos.EAN13,
	"ean8":    escpos.EAN8,
	"code39":  escpos.CODE39,
	"itf":     escpos.ITF,
	"codabar": escpos.CODABAR,
	"code93":  escpos.CODE93,
	"code128": escpos.CODE128,
}

func parseSymbology(s string) (escpos.Symbology, bool) {
	sym, ok := symbologies[strings.ToLower(strings.TrimSpace(s))]
	return sym, ok
}

// applyStyle emits the style commands for a text job.
func applyStyle(p *escpos.Printer, opts models.TextOptions) {
	p.Align(parseAlign(opts.Align))
	p.Bold(opts.Bold)
	p.Underline(parseUnderline(opts.Underline))
	p.Font(parseFont(opts.Font))
	p.Invert(opts.Invert)
	m := parseMultiplier(opts.Multiplier)
	p.Size(m, m)
}
