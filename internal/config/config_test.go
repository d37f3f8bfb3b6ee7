package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/models"
)

type testLogger struct{}

func (testLogger) Debug(msg string, args ...interface{})     {}
func (testLogger) Info(msg string, args ...interface{})      {}
func (testLogger) Warn(msg string, args ...interface{})      {}
func (testLogger) Error(msg string, args ...interface{})     {}
func (testLogger) Fatal(msg string, args ...interface{})     {}
func (testLogger) Printf(format string, args ...interface{}) {}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Listen != ":8317" {
		t.Errorf("expected default listen :8317, got %s", cfg.Listen)
	}
	if cfg.Printer.Codepage != "CP437" {
		t.Errorf("expected default codepage CP437, got %s", cfg.Printer.Codepage)
	}
	if cfg.Monitor.PollIntervalMs != 10000 {
		t.Errorf("expected default poll interval 10000, got %d", cfg.Monitor.PollIntervalMs)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
  "listen": ":9000",
  "printer": {
    "id": "front",
    "name": "Front desk",
    "connectionType": 0,
    "host": "192.168.1.60",
    "codepage": "CP858"
  }
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Listen != ":9000" {
		t.Errorf("expected listen :9000, got %s", cfg.Listen)
	}
	if cfg.Printer.Codepage != "CP858" {
		t.Errorf("expected codepage CP858, got %s", cfg.Printer.Codepage)
	}
	// Untouched sections keep their defaults.
	if !cfg.Monitor.Enabled {
		t.Error("expected monitor to stay enabled by default")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		hasError bool
	}{
		{
			name:   "network printer with host",
			mutate: func(c *Config) { c.Printer.Host = "10.0.0.5" },
		},
		{
			name:     "network printer without host",
			mutate:   func(c *Config) {},
			hasError: true,
		},
		{
			name: "serial printer without port name",
			mutate: func(c *Config) {
				c.Printer.ConnectionType = models.ConnectionSerial
			},
			hasError: true,
		},
		{
			name: "serial printer with port name",
			mutate: func(c *Config) {
				c.Printer.ConnectionType = models.ConnectionSerial
				c.Printer.SerialPort = "/dev/ttyUSB0"
			},
		},
		{
			name: "device printer with path",
			mutate: func(c *Config) {
				c.Printer.ConnectionType = models.ConnectionFile
				c.Printer.Device = "/dev/usb/lp0"
			},
		},
		{
			name: "agent enabled without url",
			mutate: func(c *Config) {
				c.Printer.Host = "10.0.0.5"
				c.Agent.Enabled = true
			},
			hasError: true,
		},
		{
			name: "empty listen",
			mutate: func(c *Config) {
				c.Printer.Host = "10.0.0.5"
				c.Listen = ""
			},
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.hasError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.hasError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	initial := `{"listen": ":8317", "printer": {"host": "10.0.0.5", "codepage": "CP437"}}`
	if err := os.WriteFile(path, []byte(initial), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	reloaded := make(chan *Config, 4)
	w, err := NewWatcher(path, testLogger{}, func(c *Config) { reloaded <- c })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	updated := `{"listen": ":8317", "printer": {"host": "10.0.0.5", "codepage": "CP858"}}`
	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Printer.Codepage != "CP858" {
			t.Errorf("expected reloaded codepage CP858, got %s", cfg.Printer.Codepage)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not deliver the reload")
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"printer": {"host": "h"}}`), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	reloaded := make(chan *Config, 4)
	w, err := NewWatcher(path, testLogger{}, func(c *Config) { reloaded <- c })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0644); err != nil {
		t.Fatalf("write sibling: %v", err)
	}

	select {
	case <-reloaded:
		t.Error("expected no reload for sibling file changes")
	case <-time.After(600 * time.Millisecond):
	}
}
