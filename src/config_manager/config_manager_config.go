package config_manager

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Source selection strategies.
const (
	StrategyAuto       = "auto"
	StrategyCapability = "capability"
	StrategyReceiver   = "receiver"
)

// Config represents the configuration of the wifi monitor daemon and CLI.
type Config struct {
	ConfigVersion string        `json:"config_version"`
	LogLevel      string        `json:"log_level"`
	LogFormat     string        `json:"log_format"`
	Monitor       MonitorConfig `json:"monitor"`
}

// MonitorConfig selects the wireless interface and how it is watched.
type MonitorConfig struct {
	Interface string `json:"interface"`
	// Strategy is one of auto, capability or receiver.
	Strategy string `json:"strategy"`
	// CapabilityMinKernel is a version constraint the kernel must satisfy
	// for the capability strategy when Strategy is auto.
	CapabilityMinKernel string `json:"capability_min_kernel"`
	IwPath              string `json:"iw_path"`
	UbusPath            string `json:"ubus_path"`
}

// NewDefaultConfig creates a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		ConfigVersion: CurrentConfigVersion,
		LogLevel:      "info",
		LogFormat:     LogFormatText,
		Monitor: MonitorConfig{
			Interface:           "wlan0",
			Strategy:            StrategyAuto,
			CapabilityMinKernel: ">= 3.0",
			IwPath:              "iw",
			UbusPath:            "ubus",
		},
	}
}

// Validate checks the fields that cannot be defaulted at use site.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Monitor.Interface) == "" {
		return fmt.Errorf("monitor.interface must not be empty")
	}

	switch c.Monitor.Strategy {
	case "", StrategyAuto, StrategyCapability, StrategyReceiver:
	default:
		return fmt.Errorf("unknown monitor.strategy %q", c.Monitor.Strategy)
	}

	switch c.LogFormat {
	case "", LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("unknown log_format %q", c.LogFormat)
	}

	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("invalid log_level: %w", err)
		}
	}
	return nil
}
