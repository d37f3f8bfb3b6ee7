package printing

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/models"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/ports"
	"github.com/cognitivegears/ha-escpos-thermal-printer/pkg/textcodec"
)

// Validation errors surfaced to the API layer.
var (
	ErrEmptyText = errors.New("printing: empty text")
	ErrEmptyData = errors.New("printing: empty payload")
	ErrBadPin    = errors.New("printing: drawer pin must be 2 or 5")
)

// maxImageWidth caps raster jobs at the widest dot line any modeled
// printer can take.
const maxImageWidth = 576

// Pauser is what the service needs from the status monitor: polls are
// suspended while a job is on the wire so the two never interleave.
type Pauser interface {
	Pause()
	Resume()
}

// Service validates print requests and forwards them to the printer
// port, pausing the status monitor around each job.
type Service struct {
	printer ports.Printer
	log     ports.Logger
	pauser  Pauser
}

// NewService creates a printing service for the given printer.
func NewService(printer ports.Printer, log ports.Logger) *Service {
	return &Service{
		printer: printer,
		log:     log,
	}
}

// SetPauser attaches the status monitor to pause during jobs.
func (s *Service) SetPauser(p Pauser) {
	s.pauser = p
}

func (s *Service) withPause(op func() error) error {
	if s.pauser != nil {
		s.pauser.Pause()
		defer s.pauser.Resume()
	}
	return op()
}

// PrintText prints a text job with the given formatting.
func (s *Service) PrintText(text string, opts models.TextOptions) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	s.log.Info("print text job: %d byte(s)", len(text))
	return s.withPause(func() error {
		return s.printer.PrintText(text, opts)
	})
}

// PrintUTF8 prints text without codepage transcoding, for printers with
// native Unicode firmware.
func (s *Service) PrintUTF8(text string, opts models.TextOptions) error {
	opts.Codepage = "UTF-8"
	return s.PrintText(text, opts)
}

// PrintQR prints a QR code.
func (s *Service) PrintQR(req models.QRRequest) error {
	if req.Data == "" {
		return ErrEmptyData
	}
	s.log.Info("print qr job: %d byte(s)", len(req.Data))
	return s.withPause(func() error {
		return s.printer.PrintQR(req)
	})
}

// PrintBarcode prints a one-dimensional barcode.
func (s *Service) PrintBarcode(req models.BarcodeRequest) error {
	if req.Data == "" {
		return ErrEmptyData
	}
	s.log.Info("print barcode job: %s %q", req.Symbology, req.Data)
	return s.withPause(func() error {
		return s.printer.PrintBarcode(req)
	})
}

// PrintImage prints a raster image.
func (s *Service) PrintImage(img image.Image, maxWidth int) error {
	if img == nil {
		return ErrEmptyData
	}
	if maxWidth > maxImageWidth {
		maxWidth = maxImageWidth
	}
	bounds := img.Bounds()
	s.log.Info("print image job: %dx%d", bounds.Dx(), bounds.Dy())
	return s.withPause(func() error {
		return s.printer.PrintImage(img, maxWidth)
	})
}

// PrintTestPage prints the diagnostic test page.
func (s *Service) PrintTestPage() error {
	s.log.Info("print test page")
	return s.withPause(s.printer.PrintTestPage)
}

// Feed advances the paper; non-positive counts feed one line.
func (s *Service) Feed(lines int) error {
	if lines <= 0 {
		lines = 1
	}
	return s.withPause(func() error {
		return s.printer.Feed(lines)
	})
}

// Cut cuts the paper.
func (s *Service) Cut(mode string) error {
	return s.withPause(func() error {
		return s.printer.Cut(mode)
	})
}

// Beep sounds the buzzer with sane defaults.
func (s *Service) Beep(count, duration int) error {
	if count <= 0 {
		count = 1
	}
	if duration <= 0 {
		duration = 3
	}
	return s.withPause(func() error {
		return s.printer.Beep(count, duration)
	})
}

// OpenDrawer fires the drawer pulse. Zero defaults to pin 2.
func (s *Service) OpenDrawer(pin int) error {
	if pin == 0 {
		pin = 2
	}
	if pin != 2 && pin != 5 {
		return fmt.Errorf("%w: got %d", ErrBadPin, pin)
	}
	return s.withPause(func() error {
		return s.printer.OpenDrawer(pin)
	})
}

// Unmappable reports which characters of a text have no rendering on a
// codepage, defaulting to the configured printer's codepage.
func (s *Service) Unmappable(text, codepage string) []string {
	if codepage == "" {
		codepage = s.printer.Profile().Codepage
	}
	runes := textcodec.FindUnmappable(text, codepage)
	out := make([]string, 0, len(runes))
	for _, r := range runes {
		out = append(out, string(r))
	}
	return out
}

// Diagnostics proxies the printer's reachability and coverage probe.
func (s *Service) Diagnostics(sample string) (*models.Diagnostics, error) {
	return s.printer.Diagnostics(sample)
}
