package connection

import (
	"image"

	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/models"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/ports"
)

// Proxy returns a ports.Printer that always targets the currently
// active printer. Services hold the proxy once and follow profile
// switches without rewiring; operations without an active printer
// return ErrNoPrinter.
func (s *Service) Proxy() ports.Printer {
	return proxy{s}
}

type proxy struct {
	s *Service
}

func (p proxy) Connect() error {
	active, err := p.s.Active()
	if err != nil {
		return err
	}
	return active.Connect()
}

func (p proxy) Disconnect() error {
	return p.s.Disconnect()
}

func (p proxy) Connected() bool {
	return p.s.IsConnected()
}

func (p proxy) Profile() models.PrinterProfile {
	active, err := p.s.Active()
	if err != nil {
		return models.PrinterProfile{}
	}
	return active.Profile()
}

func (p proxy) PrintText(text string, opts models.TextOptions) error {
	active, err := p.s.Active()
	if err != nil {
		return err
	}
	return active.PrintText(text, opts)
}

func (p proxy) PrintQR(req models.QRRequest) error {
	active, err := p.s.Active()
	if err != nil {
		return err
	}
	return active.PrintQR(req)
}

func (p proxy) PrintBarcode(req models.BarcodeRequest) error {
	active, err := p.s.Active()
	if err != nil {
		return err
	}
	return active.PrintBarcode(req)
}

func (p proxy) PrintImage(img image.Image, maxWidth int) error {
	active, err := p.s.Active()
	if err != nil {
		return err
	}
	return active.PrintImage(img, maxWidth)
}

func (p proxy) PrintTestPage() error {
	active, err := p.s.Active()
	if err != nil {
		return err
	}
	return active.PrintTestPage()
}

func (p proxy) Feed(lines int) error {
	active, err := p.s.Active()
	if err != nil {
		return err
	}
	return active.Feed(lines)
}

func (p proxy) Cut(mode string) error {
	active, err := p.s.Active()
	if err != nil {
		return err
	}
	return active.Cut(mode)
}

func (p proxy) Beep(count, duration int) error {
	active, err := p.s.Active()
	if err != nil {
		return err
	}
	return active.Beep(count, duration)
}

func (p proxy) OpenDrawer(pin int) error {
	active, err := p.s.Active()
	if err != nil {
		return err
	}
	return active.OpenDrawer(pin)
}

func (p proxy) Status() (*models.PrinterStatus, error) {
	active, err := p.s.Active()
	if err != nil {
		return nil, err
	}
	return active.Status()
}

func (p proxy) Diagnostics(sample string) (*models.Diagnostics, error) {
	active, err := p.s.Active()
	if err != nil {
		return nil, err
	}
	return active.Diagnostics(sample)
}

var _ ports.Printer = proxy{}
