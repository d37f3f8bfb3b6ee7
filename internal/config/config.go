package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/models"
)

// Config is the daemon configuration file.
type Config struct {
	Listen  string                `json:"listen"`
	DataDir string                `json:"dataDir"`
	Debug   bool                  `json:"debug"`
	Printer models.PrinterProfile `json:"printer"`
	Monitor MonitorConfig         `json:"monitor"`
	Agent   AgentConfig           `json:"agent"`
}

// MonitorConfig controls background status polling.
type MonitorConfig struct {
	Enabled        bool `json:"enabled"`
	PollIntervalMs int  `json:"pollIntervalMs"`
}

// AgentConfig controls the outbound WebSocket agent.
type AgentConfig struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
	Token   string `json:"token,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Listen:  ":8317",
		DataDir: "data",
		Printer: models.PrinterProfile{
			ID:             "default",
			Name:           "Receipt printer",
			ConnectionType: models.ConnectionNetwork,
			Port:           9100,
			Codepage:       "CP437",
			TimeoutMs:      4000,
		},
		Monitor: MonitorConfig{
			Enabled:        true,
			PollIntervalMs: 10000,
		},
	}
}

// Load reads a config file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields the daemon cannot run without.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("config: listen address is empty")
	}
	switch c.Printer.ConnectionType {
	case models.ConnectionNetwork:
		if c.Printer.Host == "" {
			return fmt.Errorf("config: network printer needs a host")
		}
	case models.ConnectionSerial:
		if c.Printer.SerialPort == "" {
			return fmt.Errorf("config: serial printer needs a port name")
		}
	case models.ConnectionFile:
		if c.Printer.Device == "" {
			return fmt.Errorf("config: device printer needs a device path")
		}
	default:
		return fmt.Errorf("config: unknown connection type %d", c.Printer.ConnectionType)
	}
	if c.Agent.Enabled && c.Agent.URL == "" {
		return fmt.Errorf("config: agent is enabled without a url")
	}
	return nil
}
