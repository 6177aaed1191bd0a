package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// supportedHints is what we advertise in _NET_SUPPORTED.
var supportedHints = []string{
	"_NET_SUPPORTED",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_NAME",
	"_NET_CLIENT_LIST",
}

// AdvertiseWM creates the _NET_SUPPORTING_WM_CHECK child window, names it,
// and points the root window at it. Calling it again only renames.
func (c *Connection) AdvertiseWM(name string) error {
	if c.check == nil {
		win, err := xwindow.Generate(c.XUtil)
		if err != nil {
			return fmt.Errorf("failed to allocate check window: %w", err)
		}
		if err := win.CreateChecked(c.Root, -1, -1, 1, 1, 0); err != nil {
			return fmt.Errorf("failed to create check window: %w", err)
		}
		c.check = win
	}

	checkID := c.check.Id
	// The hint lives on both the root and the check window itself.
	if err := ewmh.SupportingWmCheckSet(c.XUtil, c.Root, checkID); err != nil {
		return fmt.Errorf("failed to set _NET_SUPPORTING_WM_CHECK on root: %w", err)
	}
	if err := ewmh.SupportingWmCheckSet(c.XUtil, checkID, checkID); err != nil {
		return fmt.Errorf("failed to set _NET_SUPPORTING_WM_CHECK on check window: %w", err)
	}
	if err := ewmh.WmNameSet(c.XUtil, checkID, name); err != nil {
		return fmt.Errorf("failed to set _NET_WM_NAME: %w", err)
	}
	if err := ewmh.SupportedSet(c.XUtil, supportedHints); err != nil {
		return fmt.Errorf("failed to set _NET_SUPPORTED: %w", err)
	}
	return nil
}

// CheckWindow returns the supporting-WM check window, or 0 before AdvertiseWM.
func (c *Connection) CheckWindow() xproto.Window {
	if c.check == nil {
		return 0
	}
	return c.check.Id
}

// SetClientList replaces _NET_CLIENT_LIST on the root window.
func (c *Connection) SetClientList(windows []xproto.Window) error {
	if err := ewmh.ClientListSet(c.XUtil, windows); err != nil {
		return fmt.Errorf("failed to set _NET_CLIENT_LIST: %w", err)
	}
	return nil
}
