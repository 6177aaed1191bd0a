package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawIPCConfig struct {
	Enabled *bool `yaml:"enabled"`
}

type RawMetricsConfig struct {
	Enabled *bool   `yaml:"enabled"`
	Listen  *string `yaml:"listen"`
}

type RawEWMHConfig struct {
	Enabled *bool   `yaml:"enabled"`
	WMName  *string `yaml:"wm_name"`
}

// RawConfig is one file's worth of settings; nil means "not set here".
type RawConfig struct {
	Include           IncludeList       `yaml:"include"`
	Display           *string           `yaml:"display"`
	XAuthority        *string           `yaml:"xauthority"`
	LogLevel          *string           `yaml:"log_level"`
	LogFormat         *string           `yaml:"log_format"`
	ReconcileInterval *string           `yaml:"reconcile_interval"`
	IPC               *RawIPCConfig     `yaml:"ipc"`
	Metrics           *RawMetricsConfig `yaml:"metrics"`
	EWMH              *RawEWMHConfig    `yaml:"ewmh"`
}

// merge returns c with every field set in overlay replaced.
func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c
	out.Include = nil

	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.XAuthority != nil {
		out.XAuthority = overlay.XAuthority
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.LogFormat != nil {
		out.LogFormat = overlay.LogFormat
	}
	if overlay.ReconcileInterval != nil {
		out.ReconcileInterval = overlay.ReconcileInterval
	}
	if overlay.IPC != nil {
		merged := RawIPCConfig{}
		if out.IPC != nil {
			merged = *out.IPC
		}
		if overlay.IPC.Enabled != nil {
			merged.Enabled = overlay.IPC.Enabled
		}
		out.IPC = &merged
	}
	if overlay.Metrics != nil {
		merged := RawMetricsConfig{}
		if out.Metrics != nil {
			merged = *out.Metrics
		}
		if overlay.Metrics.Enabled != nil {
			merged.Enabled = overlay.Metrics.Enabled
		}
		if overlay.Metrics.Listen != nil {
			merged.Listen = overlay.Metrics.Listen
		}
		out.Metrics = &merged
	}
	if overlay.EWMH != nil {
		merged := RawEWMHConfig{}
		if out.EWMH != nil {
			merged = *out.EWMH
		}
		if overlay.EWMH.Enabled != nil {
			merged.Enabled = overlay.EWMH.Enabled
		}
		if overlay.EWMH.WMName != nil {
			merged.WMName = overlay.EWMH.WMName
		}
		out.EWMH = &merged
	}
	return out
}
