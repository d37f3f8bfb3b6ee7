package models

import "time"

// PrinterStatus is the device state as reported by the status polls.
type PrinterStatus struct {
	Online       bool      `json:"online"`
	CoverOpen    bool      `json:"coverOpen"`
	PaperOut     bool      `json:"paperOut"`
	PaperNearEnd bool      `json:"paperNearEnd"`
	DrawerOpen   bool      `json:"drawerOpen"`
	Error        bool      `json:"error"`
	LastUpdate   time.Time `json:"lastUpdate"`
}

// Diagnostics is the result of a reachability probe plus the codepage
// coverage report for a sample text.
type Diagnostics struct {
	Reachable  bool           `json:"reachable"`
	LatencyMs  int64          `json:"latencyMs"`
	Status     *PrinterStatus `json:"status,omitempty"`
	Codepage   string         `json:"codepage"`
	Unmappable []string       `json:"unmappable,omitempty"`
}
