package printing

import (
	"errors"
	"image"
	"sync"
	"testing"

	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/models"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/printer"
)

type testLogger struct{}

func (testLogger) Debug(msg string, args ...interface{})     {}
func (testLogger) Info(msg string, args ...interface{})      {}
func (testLogger) Warn(msg string, args ...interface{})      {}
func (testLogger) Error(msg string, args ...interface{})     {}
func (testLogger) Fatal(msg string, args ...interface{})     {}
func (testLogger) Printf(format string, args ...interface{}) {}

type countingPauser struct {
	mu      sync.Mutex
	paused  int
	resumed int
}

func (p *countingPauser) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused++
}

func (p *countingPauser) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resumed++
}

func TestPrintTextRejectsEmpty(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty string", text: ""},
		{name: "whitespace only", text: "  \n\t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(printer.NewFakePrinter(), testLogger{})
			if err := svc.PrintText(tt.text, models.TextOptions{}); !errors.Is(err, ErrEmptyText) {
				t.Errorf("expected ErrEmptyText, got %v", err)
			}
		})
	}
}

func TestPrintTextForwards(t *testing.T) {
	fake := printer.NewFakePrinter()
	svc := NewService(fake, testLogger{})

	if err := svc.PrintText("hello", models.TextOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.CallCount("text") != 1 {
		t.Errorf("expected 1 text call, got %d", fake.CallCount("text"))
	}
	if len(fake.Texts) != 1 || fake.Texts[0] != "hello" {
		t.Errorf("expected forwarded text, got %q", fake.Texts)
	}
}

func TestPrintTextPausesMonitor(t *testing.T) {
	fake := printer.NewFakePrinter()
	pauser := &countingPauser{}
	svc := NewService(fake, testLogger{})
	svc.SetPauser(pauser)

	if err := svc.PrintText("hello", models.TextOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pauser.paused != 1 || pauser.resumed != 1 {
		t.Errorf("expected pause/resume once, got %d/%d", pauser.paused, pauser.resumed)
	}
}

func TestPrintTextResumesOnError(t *testing.T) {
	fake := printer.NewFakePrinter()
	fake.PrintErr = errors.New("offline")
	pauser := &countingPauser{}
	svc := NewService(fake, testLogger{})
	svc.SetPauser(pauser)

	if err := svc.PrintText("hello", models.TextOptions{}); err == nil {
		t.Fatal("expected error, got nil")
	}
	if pauser.resumed != 1 {
		t.Errorf("expected resume after failed job, got %d", pauser.resumed)
	}
}

func TestPrintUTF8ForcesCodepage(t *testing.T) {
	fake := printer.NewFakePrinter()
	svc := NewService(fake, testLogger{})

	if err := svc.PrintUTF8("résumé", models.TextOptions{Codepage: "CP437"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.CallCount("text") != 1 {
		t.Fatalf("expected 1 text call, got %d", fake.CallCount("text"))
	}
}

func TestPrintQRValidation(t *testing.T) {
	svc := NewService(printer.NewFakePrinter(), testLogger{})
	if err := svc.PrintQR(models.QRRequest{}); !errors.Is(err, ErrEmptyData) {
		t.Errorf("expected ErrEmptyData, got %v", err)
	}
}

func TestPrintImageCapsWidth(t *testing.T) {
	fake := printer.NewFakePrinter()
	svc := NewService(fake, testLogger{})

	img := image.NewGray(image.Rect(0, 0, 4, 4))
	if err := svc.PrintImage(img, 10000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.CallCount("image") != 1 {
		t.Errorf("expected 1 image call, got %d", fake.CallCount("image"))
	}

	if err := svc.PrintImage(nil, 0); !errors.Is(err, ErrEmptyData) {
		t.Errorf("expected ErrEmptyData for nil image, got %v", err)
	}
}

func TestFeedDefaultsToOneLine(t *testing.T) {
	fake := printer.NewFakePrinter()
	svc := NewService(fake, testLogger{})

	if err := svc.Feed(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.CallCount("feed") != 1 {
		t.Errorf("expected 1 feed call, got %d", fake.CallCount("feed"))
	}
}

func TestOpenDrawerPinValidation(t *testing.T) {
	tests := []struct {
		name     string
		pin      int
		hasError bool
	}{
		{name: "default pin", pin: 0, hasError: false},
		{name: "pin 2", pin: 2, hasError: false},
		{name: "pin 5", pin: 5, hasError: false},
		{name: "pin 3", pin: 3, hasError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(printer.NewFakePrinter(), testLogger{})
			err := svc.OpenDrawer(tt.pin)
			if tt.hasError && !errors.Is(err, ErrBadPin) {
				t.Errorf("expected ErrBadPin, got %v", err)
			}
			if !tt.hasError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestUnmappableUsesProfileCodepage(t *testing.T) {
	fake := printer.NewFakePrinter()
	fake.ProfileVal = models.PrinterProfile{Codepage: "CP437"}
	svc := NewService(fake, testLogger{})

	got := svc.Unmappable("中abc", "")
	if len(got) != 1 || got[0] != "中" {
		t.Errorf("expected [中], got %q", got)
	}

	if got := svc.Unmappable("中", "CP932"); len(got) != 0 {
		t.Errorf("expected no unmappable chars on CP932, got %q", got)
	}
}
