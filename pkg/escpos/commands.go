package escpos

import (
	"fmt"
	"strings"
)

// Control bytes shared by the command builders.
const (
	esc = 0x1b
	gs  = 0x1d
	dle = 0x10
	eot = 0x04
)

// Alignment selects horizontal positioning (ESC a).
type Alignment byte

const (
	AlignLeft   Alignment = 0
	AlignCenter Alignment = 1
	AlignRight  Alignment = 2
)

// Underline selects the underline weight (ESC -).
type Underline byte

const (
	UnderlineNone   Underline = 0
	UnderlineSingle Underline = 1
	UnderlineDouble Underline = 2
)

// Font selects the device font (ESC M).
type Font byte

const (
	FontA Font = 0
	FontB Font = 1
)

// CutMode selects the paper cut issued at job end (GS V function B).
type CutMode int

const (
	CutNone CutMode = iota
	CutPartial
	CutFull
)

// ECLevel is the QR error-correction level (GS ( k function 169).
type ECLevel byte

const (
	ECLow      ECLevel = 48 // ~7% recovery
	ECMedium   ECLevel = 49 // ~15%
	ECQuartile ECLevel = 50 // ~25%
	ECHigh     ECLevel = 51 // ~30%
)

// Barcode symbologies (GS k function B codes).
type Symbology byte

const (
	UPCA    Symbology = 65
	UPCE    Symbology = 66
	EAN13   Symbology = 67
	EAN8    Symbology = 68
	CODE39  Symbology = 69
	ITF     Symbology = 70
	CODABAR Symbology = 71
	CODE93  Symbology = 72
	CODE128 Symbology = 73
)

// HRIPosition places the human-readable text around a barcode (GS H).
type HRIPosition byte

const (
	HRINone  HRIPosition = 0
	HRIAbove HRIPosition = 1
	HRIBelow HRIPosition = 2
	HRIBoth  HRIPosition = 3
)

func rawInit() []byte {
	return []byte{esc, '@'}
}

func rawAlign(a Alignment) []byte {
	return []byte{esc, 'a', byte(a)}
}

func rawBold(on bool) []byte {
	n := byte(0)
	if on {
		n = 1
	}
	return []byte{esc, 'E', n}
}

func rawUnderline(u Underline) []byte {
	return []byte{esc, '-', byte(u)}
}

func rawFont(f Font) []byte {
	return []byte{esc, 'M', byte(f)}
}

func rawInvert(on bool) []byte {
	n := byte(0)
	if on {
		n = 1
	}
	return []byte{gs, 'B', n}
}

// rawSize packs width and height multipliers (1..8 each) into GS !.
func rawSize(width, height int) []byte {
	w := clamp(width, 1, 8) - 1
	h := clamp(height, 1, 8) - 1
	return []byte{gs, '!', byte(w<<4 | h)}
}

func rawCharset(n byte) []byte {
	return []byte{esc, 't', n}
}

func rawFeed(lines int) []byte {
	return []byte{esc, 'd', byte(clamp(lines, 0, 255))}
}

func rawCut(mode CutMode, feed int) []byte {
	var m byte
	switch mode {
	case CutFull:
		m = 'A'
	case CutPartial:
		m = 'B'
	default:
		return nil
	}
	return []byte{gs, 'V', m, byte(clamp(feed, 0, 255))}
}

func rawBeep(count, duration int) []byte {
	return []byte{esc, 'B', byte(clamp(count, 1, 9)), byte(clamp(duration, 1, 9))}
}

// rawDrawer fires the cash drawer kick-out pulse (ESC p). Pulse times are
// in 2 ms units.
func rawDrawer(pin int, onTime, offTime int) []byte {
	m := byte(0)
	if pin == 5 {
		m = 1
	}
	return []byte{esc, 'p', m, byte(clamp(onTime, 1, 255)), byte(clamp(offTime, 1, 255))}
}

func rawStatusRequest(kind byte) []byte {
	return []byte{dle, eot, kind}
}

// qrCommands builds the GS ( k sequence for a QR symbol: model selection,
// module size, error correction, symbol data store, and print.
func qrCommands(data string, size int, ec ECLevel) ([][]byte, error) {
	if data == "" {
		return nil, ErrEmptyPayload
	}
	if len(data) > 7089 {
		return nil, fmt.Errorf("escpos: QR payload too long (%d bytes)", len(data))
	}
	size = clamp(size, 1, 16)

	storeLen := len(data) + 3
	pL := byte(storeLen & 0xff)
	pH := byte(storeLen >> 8)

	cmds := [][]byte{
		{gs, '(', 'k', 4, 0, '1', 'A', '2', 0},     // model 2
		{gs, '(', 'k', 3, 0, '1', 'C', byte(size)}, // module size
		{gs, '(', 'k', 3, 0, '1', 'E', byte(ec)},   // error correction
	}
	store := append([]byte{gs, '(', 'k', pL, pH, '1', 'P', '0'}, data...)
	cmds = append(cmds, store)
	cmds = append(cmds, []byte{gs, '(', 'k', 3, 0, '1', 'Q', '0'}) // print
	return cmds, nil
}

// BarcodeOptions describes a one-dimensional barcode print request.
type BarcodeOptions struct {
	Symbology Symbology
	Data      string
	Height    int // dots, 1..255
	Width     int // module width, 2..6
	HRI       HRIPosition
	HRIFont   Font
}

// barcodeCommands builds the height/width/HRI setup commands followed by
// the GS k function B print command.
func barcodeCommands(opts BarcodeOptions) ([][]byte, error) {
	if opts.Data == "" {
		return nil, ErrEmptyPayload
	}
	if len(opts.Data) > 255 {
		return nil, fmt.Errorf("escpos: barcode payload too long (%d bytes)", len(opts.Data))
	}
	if opts.Symbology < UPCA || opts.Symbology > CODE128 {
		return nil, fmt.Errorf("escpos: unsupported symbology %d", opts.Symbology)
	}

	data := opts.Data
	if opts.Symbology == CODE128 && len(data) > 0 && data[0] != '{' {
		// CODE128 data needs a code-set selector; default to set B.
		data = "{B" + data
	}

	cmds := [][]byte{
		{gs, 'h', byte(clamp(opts.Height, 1, 255))},
		{gs, 'w', byte(clamp(opts.Width, 2, 6))},
		{gs, 'H', byte(opts.HRI)},
		{gs, 'f', byte(opts.HRIFont)},
	}
	print := append([]byte{gs, 'k', byte(opts.Symbology), byte(len(data))}, data...)
	cmds = append(cmds, print)
	return cmds, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// charsetNumbers maps codepage names to the ESC t character code table
// numbers of Epson-compatible firmware. Profiles for other vendors may
// not honor every entry; callers should skip the select when the lookup
// misses.
var charsetNumbers = map[string]byte{
	"CP437":       0,
	"CP850":       2,
	"CP860":       3,
	"CP863":       4,
	"CP865":       5,
	"ISO_8859-7":  15,
	"CP1252":      16,
	"CP866":       17,
	"CP852":       18,
	"CP858":       19,
	"CP855":       33,
	"CP862":       35,
	"ISO_8859-2":  38,
	"ISO_8859-15": 39,
	"CP1250":      44,
	"CP1251":      45,
	"CP1253":      46,
	"CP1254":      47,
	"CP1255":      48,
	"CP1256":      49,
	"CP1257":      50,
	"CP1258":      51,
}

// CharsetNumber returns the ESC t table number for a codepage name.
// Lookup is case-insensitive.
func CharsetNumber(codepage string) (byte, bool) {
	if n, ok := charsetNumbers[codepage]; ok {
		return n, true
	}
	n, ok := charsetNumbers[strings.ToUpper(codepage)]
	return n, ok
}
