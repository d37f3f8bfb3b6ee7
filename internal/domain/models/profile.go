package models

import "time"

// Connection types for a printer profile.
const (
	ConnectionNetwork = 0 // raw TCP, usually port 9100
	ConnectionSerial  = 1 // RS-232 / USB-serial
	ConnectionFile    = 2 // character device, e.g. /dev/usb/lp0
)

// PrinterProfile describes how to reach a printer and how to render
// text for it.
type PrinterProfile struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	ConnectionType int       `json:"connectionType"`
	Host           string    `json:"host,omitempty"`
	Port           int       `json:"port,omitempty"`
	SerialPort     string    `json:"serialPort,omitempty"`
	BaudRate       int       `json:"baudRate,omitempty"`
	Device         string    `json:"device,omitempty"`
	Codepage       string    `json:"codepage"`
	Capability     string    `json:"capability,omitempty"` // capability profile name
	LineWidth      int       `json:"lineWidth,omitempty"`  // columns, 0 = from capability
	TimeoutMs      int       `json:"timeoutMs,omitempty"`
	Keepalive      bool      `json:"keepalive,omitempty"`
	LastUsed       time.Time `json:"lastUsed,omitempty"`
}
