package config

import (
	"fmt"
	"net"
	"strings"
	"time"
)

// IPCConfig controls the introspection socket.
type IPCConfig struct {
	Enabled bool `yaml:"enabled"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// EWMHConfig controls what the manager advertises to EWMH-aware clients.
type EWMHConfig struct {
	Enabled bool   `yaml:"enabled"`
	WMName  string `yaml:"wm_name"`
}

// Config is the effective configuration.
type Config struct {
	// Display is the X display name. Empty means $DISPLAY.
	Display    string `yaml:"display"`
	XAuthority string `yaml:"xauthority,omitempty"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// ReconcileInterval is a Go duration string; "0s" disables reconciliation.
	ReconcileInterval string `yaml:"reconcile_interval"`

	IPC     IPCConfig     `yaml:"ipc"`
	Metrics MetricsConfig `yaml:"metrics"`
	EWMH    EWMHConfig    `yaml:"ewmh"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		ReconcileInterval: "30s",
		IPC: IPCConfig{
			Enabled: true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Listen:  "127.0.0.1:9465",
		},
		EWMH: EWMHConfig{
			Enabled: true,
			WMName:  "parentwm",
		},
	}
}

// ReconcileEvery returns the parsed reconcile interval. Call after Validate.
func (c *Config) ReconcileEvery() time.Duration {
	d, err := time.ParseDuration(c.ReconcileInterval)
	if err != nil {
		return 0
	}
	return d
}

// AdvertisedName returns the name to publish through EWMH, or "" when
// advertisement is disabled.
func (c *Config) AdvertisedName() string {
	if !c.EWMH.Enabled {
		return ""
	}
	return c.EWMH.WMName
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return &ValidationError{Path: "log_format", Err: fmt.Errorf("log_format must be one of: text, json")}
	}

	d, err := time.ParseDuration(c.ReconcileInterval)
	if err != nil {
		return &ValidationError{Path: "reconcile_interval", Err: fmt.Errorf("invalid duration %q", c.ReconcileInterval)}
	}
	if d < 0 {
		return &ValidationError{Path: "reconcile_interval", Err: fmt.Errorf("reconcile_interval must be >= 0")}
	}

	if c.Metrics.Enabled {
		if _, _, err := net.SplitHostPort(c.Metrics.Listen); err != nil {
			return &ValidationError{Path: "metrics.listen", Err: fmt.Errorf("listen must be host:port: %w", err)}
		}
	}
	if c.EWMH.Enabled && strings.TrimSpace(c.EWMH.WMName) == "" {
		return &ValidationError{Path: "ewmh.wm_name", Err: fmt.Errorf("wm_name is required when ewmh is enabled")}
	}
	return nil
}
