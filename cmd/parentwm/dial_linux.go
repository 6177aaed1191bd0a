//go:build linux

package main

import (
	"github.com/1broseidon/parentwm/internal/platform"
	"github.com/1broseidon/parentwm/internal/wm"
)

func dialer(display string) wm.Dialer {
	return func() (platform.Display, error) {
		d, err := platform.OpenLinuxDisplay(display)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}
