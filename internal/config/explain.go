package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths:
//
//	display
//	xauthority
//	log_level
//	log_format
//	reconcile_interval
//	ipc, ipc.enabled
//	metrics, metrics.enabled, metrics.listen
//	ewmh, ewmh.enabled, ewmh.wm_name
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	// Exact-path file source wins.
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	unknown := fmt.Errorf("unknown path: %s", path)

	if len(parts) == 1 {
		switch parts[0] {
		case "display":
			return cfg.Display, nil
		case "xauthority":
			return cfg.XAuthority, nil
		case "log_level":
			return cfg.LogLevel, nil
		case "log_format":
			return cfg.LogFormat, nil
		case "reconcile_interval":
			return cfg.ReconcileInterval, nil
		case "ipc":
			return cfg.IPC, nil
		case "metrics":
			return cfg.Metrics, nil
		case "ewmh":
			return cfg.EWMH, nil
		}
		return nil, unknown
	}
	if len(parts) != 2 {
		return nil, unknown
	}

	switch parts[0] + "." + parts[1] {
	case "ipc.enabled":
		return cfg.IPC.Enabled, nil
	case "metrics.enabled":
		return cfg.Metrics.Enabled, nil
	case "metrics.listen":
		return cfg.Metrics.Listen, nil
	case "ewmh.enabled":
		return cfg.EWMH.Enabled, nil
	case "ewmh.wm_name":
		return cfg.EWMH.WMName, nil
	}
	return nil, unknown
}
