package ports

import (
	"image"

	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/models"
)

// Printer is the driver-side interface for a receipt printer. All methods
// use plain domain types so callers stay independent of the wire protocol.
type Printer interface {
	Connect() error
	Disconnect() error
	Connected() bool
	Profile() models.PrinterProfile

	PrintText(text string, opts models.TextOptions) error
	PrintQR(req models.QRRequest) error
	PrintBarcode(req models.BarcodeRequest) error
	PrintImage(img image.Image, maxWidth int) error
	PrintTestPage() error

	Feed(lines int) error
	Cut(mode string) error
	Beep(count, duration int) error
	OpenDrawer(pin int) error

	Status() (*models.PrinterStatus, error)
	Diagnostics(sample string) (*models.Diagnostics, error)
}
