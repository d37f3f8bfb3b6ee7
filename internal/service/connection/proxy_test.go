package connection

import (
	"errors"
	"testing"

	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/models"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/ports"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/printer"
)

func TestProxyWithoutActivePrinter(t *testing.T) {
	svc, _ := newTestService(t)
	p := svc.Proxy()

	if err := p.PrintText("hi", models.TextOptions{}); !errors.Is(err, ErrNoPrinter) {
		t.Errorf("expected ErrNoPrinter, got %v", err)
	}
	if _, err := p.Status(); !errors.Is(err, ErrNoPrinter) {
		t.Errorf("expected ErrNoPrinter, got %v", err)
	}
	if p.Connected() {
		t.Error("expected disconnected proxy")
	}
	if got := p.Profile(); got.ID != "" {
		t.Errorf("expected zero profile, got %+v", got)
	}
}

func TestProxyDelegatesToActive(t *testing.T) {
	svc, fake := newTestService(t)
	p := svc.Proxy()

	if err := svc.ConnectProfile(models.PrinterProfile{Name: "Bar", Codepage: "CP858"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := p.PrintText("receipt", models.TextOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.Texts) != 1 || fake.Texts[0] != "receipt" {
		t.Errorf("expected delegated text, got %v", fake.Texts)
	}
	if p.Profile().Name != "Bar" {
		t.Errorf("expected active profile Bar, got %s", p.Profile().Name)
	}
}

func TestProxyFollowsProfileSwitch(t *testing.T) {
	svc, first := newTestService(t)
	p := svc.Proxy()

	svc.ConnectProfile(models.PrinterProfile{Name: "First"})
	p.PrintText("one", models.TextOptions{})

	second := printer.NewFakePrinter()
	svc.SetFactory(func(profile models.PrinterProfile, log ports.Logger) ports.Printer {
		second.ProfileVal = profile
		return second
	})
	svc.ConnectProfile(models.PrinterProfile{Name: "Second"})
	p.PrintText("two", models.TextOptions{})

	if len(first.Texts) != 1 || first.Texts[0] != "one" {
		t.Errorf("expected first printer to get [one], got %v", first.Texts)
	}
	if len(second.Texts) != 1 || second.Texts[0] != "two" {
		t.Errorf("expected second printer to get [two], got %v", second.Texts)
	}
}
