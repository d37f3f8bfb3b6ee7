package printer

import (
	"image"
	"sync"
	"time"

	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/models"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/ports"
)

// NewFakePrinter returns an in-memory Printer for tests and dry runs.
// It records the operations it receives and serves canned status.
func NewFakePrinter() *FakePrinter {
	return &FakePrinter{
		StatusValue: models.PrinterStatus{Online: true},
	}
}

// FakePrinter implements ports.Printer without touching hardware.
type FakePrinter struct {
	mu          sync.Mutex
	connected   bool
	Calls       []string
	Texts       []string
	StatusValue models.PrinterStatus
	StatusErr   error
	PrintErr    error
	ProfileVal  models.PrinterProfile
}

func (f *FakePrinter) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, call)
}

// CallCount returns how many times an operation was recorded.
func (f *FakePrinter) CallCount(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *FakePrinter) Connect() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = true
	f.Calls = append(f.Calls, "connect")
	return nil
}

func (f *FakePrinter) Disconnect() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = false
	f.Calls = append(f.Calls, "disconnect")
	return nil
}

func (f *FakePrinter) Connected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *FakePrinter) Profile() models.PrinterProfile {
	return f.ProfileVal
}

func (f *FakePrinter) PrintText(text string, opts models.TextOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "text")
	f.Texts = append(f.Texts, text)
	return f.PrintErr
}

func (f *FakePrinter) PrintQR(req models.QRRequest) error {
	f.record("qr")
	return f.PrintErr
}

func (f *FakePrinter) PrintBarcode(req models.BarcodeRequest) error {
	f.record("barcode")
	return f.PrintErr
}

func (f *FakePrinter) PrintImage(img image.Image, maxWidth int) error {
	f.record("image")
	return f.PrintErr
}

func (f *FakePrinter) PrintTestPage() error {
	f.record("testpage")
	return f.PrintErr
}

func (f *FakePrinter) Feed(lines int) error {
	f.record("feed")
	return f.PrintErr
}

func (f *FakePrinter) Cut(mode string) error {
	f.record("cut")
	return f.PrintErr
}

func (f *FakePrinter) Beep(count, duration int) error {
	f.record("beep")
	return f.PrintErr
}

func (f *FakePrinter) OpenDrawer(pin int) error {
	f.record("drawer")
	return f.PrintErr
}

func (f *FakePrinter) Status() (*models.PrinterStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "status")
	if f.StatusErr != nil {
		return nil, f.StatusErr
	}
	status := f.StatusValue
	status.LastUpdate = time.Now()
	return &status, nil
}

func (f *FakePrinter) Diagnostics(sample string) (*models.Diagnostics, error) {
	f.record("diagnostics")
	return &models.Diagnostics{Reachable: true, Codepage: f.ProfileVal.Codepage}, nil
}

var _ ports.Printer = (*FakePrinter)(nil)
