//go:build linux

package platform

import (
	"errors"
	"fmt"

	"github.com/1broseidon/parentwm/internal/x11"
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// LinuxDisplay wraps an X11 connection behind the platform Display interface.
type LinuxDisplay struct {
	conn *x11.Connection
}

var (
	_ Display             = (*LinuxDisplay)(nil)
	_ SupportAdvertiser   = (*LinuxDisplay)(nil)
	_ ClientListPublisher = (*LinuxDisplay)(nil)
)

// OpenLinuxDisplay opens a fresh X11 connection to the named display.
func OpenLinuxDisplay(name string) (*LinuxDisplay, error) {
	conn, err := x11.NewConnection(name)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxDisplay{conn: conn}, nil
}

// Root returns the X11 root window ID.
func (d *LinuxDisplay) Root() WindowID {
	return WindowID(d.conn.Root)
}

// SelectInput sets the event mask of a window.
func (d *LinuxDisplay) SelectInput(window WindowID, mask EventMask) error {
	err := d.conn.SelectInput(xproto.Window(window), xMask(mask))
	if errors.Is(err, x11.ErrRedirectDenied) {
		return ErrAnotherManager
	}
	return wrapWindowError(err)
}

// QueryTree lists the children of a window. Our own supporting-WM check
// window is left out.
func (d *LinuxDisplay) QueryTree(window WindowID) ([]WindowID, error) {
	children, err := d.conn.Children(xproto.Window(window))
	if err != nil {
		return nil, err
	}
	check := d.conn.CheckWindow()
	out := make([]WindowID, 0, len(children))
	for _, child := range children {
		if check != 0 && child == check {
			continue
		}
		out = append(out, WindowID(child))
	}
	return out, nil
}

// WindowAttributes fetches override-redirect and map state.
func (d *LinuxDisplay) WindowAttributes(window WindowID) (Attributes, error) {
	reply, err := d.conn.WindowAttributes(xproto.Window(window))
	if err != nil {
		return Attributes{}, wrapWindowError(err)
	}
	return Attributes{
		OverrideRedirect: reply.OverrideRedirect,
		MapState:         mapState(reply.MapState),
	}, nil
}

// TransientFor reads WM_TRANSIENT_FOR.
func (d *LinuxDisplay) TransientFor(window WindowID) (WindowID, bool) {
	owner, ok := d.conn.TransientFor(xproto.Window(window))
	return WindowID(owner), ok
}

// RaiseWindow restacks a window on top of its siblings.
func (d *LinuxDisplay) RaiseWindow(window WindowID) error {
	return wrapWindowError(d.conn.RaiseWindow(xproto.Window(window)))
}

// AddToSaveSet inserts a window into the save-set.
func (d *LinuxDisplay) AddToSaveSet(window WindowID) error {
	return wrapWindowError(d.conn.AddToSaveSet(xproto.Window(window)))
}

// ReparentWindow moves a window under parent.
func (d *LinuxDisplay) ReparentWindow(window, parent WindowID, x, y int) error {
	return wrapWindowError(d.conn.ReparentWindow(xproto.Window(window), xproto.Window(parent), x, y))
}

// MapWindow maps a window.
func (d *LinuxDisplay) MapWindow(window WindowID) error {
	return wrapWindowError(d.conn.MapWindow(xproto.Window(window)))
}

// Pending returns the number of events that can be read without blocking.
func (d *LinuxDisplay) Pending() int {
	return d.conn.Events().Pending()
}

// NextEvent pops the oldest pending event. Protocol errors from unchecked
// requests are returned as errors; ErrConnectionClosed is final.
func (d *LinuxDisplay) NextEvent() (Event, error) {
	ev, xerr, closed, ok := d.conn.Events().Next()
	switch {
	case !ok:
		return Event{}, fmt.Errorf("no pending events")
	case closed:
		return Event{}, ErrConnectionClosed
	case xerr != nil:
		return Event{}, wrapWindowError(xerr)
	}
	return translateEvent(ev), nil
}

// Ready signals that events became pending.
func (d *LinuxDisplay) Ready() <-chan struct{} {
	return d.conn.Events().Ready()
}

// Sync waits for the server to process all outstanding requests.
func (d *LinuxDisplay) Sync() error {
	return d.conn.Sync()
}

// Close disconnects from the X server.
func (d *LinuxDisplay) Close() error {
	if d != nil && d.conn != nil {
		d.conn.Close()
	}
	return nil
}

// AdvertiseSupport publishes the EWMH supporting-WM check window.
func (d *LinuxDisplay) AdvertiseSupport(name string) error {
	return d.conn.AdvertiseWM(name)
}

// PublishClientList replaces _NET_CLIENT_LIST.
func (d *LinuxDisplay) PublishClientList(windows []WindowID) error {
	ids := make([]xproto.Window, 0, len(windows))
	for _, w := range windows {
		ids = append(ids, xproto.Window(w))
	}
	return d.conn.SetClientList(ids)
}

func wrapWindowError(err error) error {
	if err == nil {
		return nil
	}
	if x11.IsBadWindow(err) {
		return fmt.Errorf("%w: %v", ErrBadWindow, err)
	}
	return err
}

func xMask(mask EventMask) uint32 {
	var out uint32
	if mask&MaskButtonPress != 0 {
		out |= xproto.EventMaskButtonPress
	}
	if mask&MaskEnterWindow != 0 {
		out |= xproto.EventMaskEnterWindow
	}
	if mask&MaskLeaveWindow != 0 {
		out |= xproto.EventMaskLeaveWindow
	}
	if mask&MaskStructureNotify != 0 {
		out |= xproto.EventMaskStructureNotify
	}
	if mask&MaskSubstructureNotify != 0 {
		out |= xproto.EventMaskSubstructureNotify
	}
	if mask&MaskSubstructureRedirect != 0 {
		out |= xproto.EventMaskSubstructureRedirect
	}
	if mask&MaskPropertyChange != 0 {
		out |= xproto.EventMaskPropertyChange
	}
	return out
}

func mapState(state byte) MapState {
	switch state {
	case xproto.MapStateViewable:
		return MapStateViewable
	case xproto.MapStateUnviewable:
		return MapStateUnviewable
	default:
		return MapStateUnmapped
	}
}

// translateEvent maps an xgb event onto the platform event. For substructure
// events Window is the affected child, not the window the event was sent to.
func translateEvent(ev xgb.Event) Event {
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		return Event{Kind: EventKeyPress, Window: WindowID(e.Event), Code: xproto.KeyPress}
	case xproto.KeyReleaseEvent:
		return Event{Kind: EventKeyRelease, Window: WindowID(e.Event), Code: xproto.KeyRelease}
	case xproto.ButtonPressEvent:
		return Event{Kind: EventButtonPress, Window: WindowID(e.Event), Code: xproto.ButtonPress}
	case xproto.ButtonReleaseEvent:
		return Event{Kind: EventButtonRelease, Window: WindowID(e.Event), Code: xproto.ButtonRelease}
	case xproto.MotionNotifyEvent:
		return Event{Kind: EventMotionNotify, Window: WindowID(e.Event), Code: xproto.MotionNotify}
	case xproto.EnterNotifyEvent:
		return Event{Kind: EventEnterNotify, Window: WindowID(e.Event), Code: xproto.EnterNotify}
	case xproto.LeaveNotifyEvent:
		return Event{Kind: EventLeaveNotify, Window: WindowID(e.Event), Code: xproto.LeaveNotify}
	case xproto.FocusInEvent:
		return Event{Kind: EventFocusIn, Window: WindowID(e.Event), Code: xproto.FocusIn}
	case xproto.FocusOutEvent:
		return Event{Kind: EventFocusOut, Window: WindowID(e.Event), Code: xproto.FocusOut}
	case xproto.ExposeEvent:
		return Event{Kind: EventExpose, Window: WindowID(e.Window), Code: xproto.Expose}
	case xproto.CreateNotifyEvent:
		return Event{Kind: EventCreateNotify, Window: WindowID(e.Window), Code: xproto.CreateNotify}
	case xproto.DestroyNotifyEvent:
		return Event{Kind: EventDestroyNotify, Window: WindowID(e.Window), Code: xproto.DestroyNotify}
	case xproto.UnmapNotifyEvent:
		return Event{Kind: EventUnmapNotify, Window: WindowID(e.Window), Code: xproto.UnmapNotify}
	case xproto.MapNotifyEvent:
		return Event{Kind: EventMapNotify, Window: WindowID(e.Window), Code: xproto.MapNotify}
	case xproto.MapRequestEvent:
		return Event{Kind: EventMapRequest, Window: WindowID(e.Window), Code: xproto.MapRequest}
	case xproto.ReparentNotifyEvent:
		return Event{Kind: EventReparentNotify, Window: WindowID(e.Window), Code: xproto.ReparentNotify}
	case xproto.ConfigureNotifyEvent:
		return Event{Kind: EventConfigureNotify, Window: WindowID(e.Window), Code: xproto.ConfigureNotify}
	case xproto.ConfigureRequestEvent:
		return Event{Kind: EventConfigureRequest, Window: WindowID(e.Window), Code: xproto.ConfigureRequest}
	case xproto.PropertyNotifyEvent:
		return Event{Kind: EventPropertyNotify, Window: WindowID(e.Window), Code: xproto.PropertyNotify}
	case xproto.ClientMessageEvent:
		return Event{Kind: EventClientMessage, Window: WindowID(e.Window), Code: xproto.ClientMessage}
	case xproto.MappingNotifyEvent:
		return Event{Kind: EventMappingNotify, Code: xproto.MappingNotify}
	default:
		return Event{Kind: EventUnknown}
	}
}
