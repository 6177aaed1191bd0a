package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/icccm"
)

// ErrRedirectDenied means another client already selected
// SubstructureRedirect on the window (usually: another WM owns the root).
var ErrRedirectDenied = errors.New("substructure redirect already held by another client")

// SelectInput replaces the event mask on a window. The request is checked,
// so a BadAccess from a competing window manager is reported synchronously.
func (c *Connection) SelectInput(windowID xproto.Window, mask uint32) error {
	err := xproto.ChangeWindowAttributesChecked(
		c.XUtil.Conn(),
		windowID,
		xproto.CwEventMask,
		[]uint32{mask},
	).Check()
	if err != nil {
		if _, ok := err.(xproto.AccessError); ok {
			return ErrRedirectDenied
		}
		return err
	}
	return nil
}

// Children returns the direct children of a window in stacking order,
// bottom-most first.
func (c *Connection) Children(windowID xproto.Window) ([]xproto.Window, error) {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), windowID).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to query tree of 0x%x: %w", windowID, err)
	}
	return tree.Children, nil
}

// WindowAttributes fetches the attributes of a window. An error usually means
// the window was destroyed after the event that named it.
func (c *Connection) WindowAttributes(windowID xproto.Window) (*xproto.GetWindowAttributesReply, error) {
	return xproto.GetWindowAttributes(c.XUtil.Conn(), windowID).Reply()
}

// TransientFor returns the WM_TRANSIENT_FOR hint of a window, if it has one.
func (c *Connection) TransientFor(windowID xproto.Window) (xproto.Window, bool) {
	owner, err := icccm.WmTransientForGet(c.XUtil, windowID)
	if err != nil || owner == 0 {
		return 0, false
	}
	return owner, true
}

// RaiseWindow restacks a window above its siblings.
func (c *Connection) RaiseWindow(windowID xproto.Window) error {
	return xproto.ConfigureWindowChecked(
		c.XUtil.Conn(),
		windowID,
		xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove},
	).Check()
}

// AddToSaveSet puts a window in this client's save-set so the server
// reparents and maps it back if we die.
func (c *Connection) AddToSaveSet(windowID xproto.Window) error {
	return xproto.ChangeSaveSetChecked(c.XUtil.Conn(), xproto.SetModeInsert, windowID).Check()
}

// ReparentWindow moves a window under parent at (x, y).
func (c *Connection) ReparentWindow(windowID, parent xproto.Window, x, y int) error {
	return xproto.ReparentWindowChecked(c.XUtil.Conn(), windowID, parent, int16(x), int16(y)).Check()
}

// MapWindow maps a window.
func (c *Connection) MapWindow(windowID xproto.Window) error {
	return xproto.MapWindowChecked(c.XUtil.Conn(), windowID).Check()
}

// IsBadWindow reports whether err is a BadWindow protocol error.
func IsBadWindow(err error) bool {
	_, ok := err.(xproto.WindowError)
	return ok
}
