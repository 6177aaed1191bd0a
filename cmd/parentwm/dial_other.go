//go:build !linux

package main

import (
	"errors"

	"github.com/1broseidon/parentwm/internal/platform"
	"github.com/1broseidon/parentwm/internal/wm"
)

func dialer(string) wm.Dialer {
	return func() (platform.Display, error) {
		return nil, errors.New("the X11 backend is only built on linux")
	}
}
