package models

// TextOptions describes the formatting of a text print request. String
// fields accept the values the integration surfaces expose; unknown
// values fall back to the defaults.
type TextOptions struct {
	Align      string `json:"align,omitempty"` // left | center | right
	Bold       bool   `json:"bold,omitempty"`
	Underline  string `json:"underline,omitempty"`  // none | single | double
	Multiplier string `json:"multiplier,omitempty"` // normal | double | triple
	Font       string `json:"font,omitempty"`       // a | b
	Invert     bool   `json:"invert,omitempty"`
	Wrap       bool   `json:"wrap,omitempty"`
	Codepage   string `json:"codepage,omitempty"` // per-job override; "UTF-8" bypasses transcoding
	Feed       int    `json:"feed,omitempty"`     // lines after the text
	Cut        string `json:"cut,omitempty"`      // none | partial | full
}

// QRRequest describes a QR code print request.
type QRRequest struct {
	Data string `json:"data"`
	Size int    `json:"size,omitempty"` // module size in dots, 1..16
	EC   string `json:"ec,omitempty"`   // L | M | Q | H
	Cut  string `json:"cut,omitempty"`
}

// BarcodeRequest describes a one-dimensional barcode print request.
type BarcodeRequest struct {
	Symbology string `json:"symbology"` // upca, ean13, code39, code128, ...
	Data      string `json:"data"`
	Height    int    `json:"height,omitempty"` // dots
	Width     int    `json:"width,omitempty"`  // module width, 2..6
	HRI       string `json:"hri,omitempty"`    // none | above | below | both
	Cut       string `json:"cut,omitempty"`
}
