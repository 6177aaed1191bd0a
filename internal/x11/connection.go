package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	events *EventQueue
	// check is the _NET_SUPPORTING_WM_CHECK window, created on demand.
	check *xwindow.Window
}

// NewConnection connects to the named display. An empty name uses $DISPLAY.
// Event reading starts immediately; see Events.
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}

	return &Connection{
		XUtil:  xu,
		Root:   xu.RootWin(),
		events: newEventQueue(xu.Conn()),
	}, nil
}

// Events returns the queue fed by the connection's reader goroutine.
func (c *Connection) Events() *EventQueue {
	return c.events
}

// Sync blocks until the server has processed every request sent so far.
func (c *Connection) Sync() error {
	_, err := xproto.GetInputFocus(c.XUtil.Conn()).Reply()
	return err
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	if c.check != nil {
		c.check.Destroy()
		c.check = nil
	}
	c.XUtil.Conn().Close()
}
