package platform

import "errors"

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// MapState is the server-side visibility of a window.
type MapState uint8

const (
	MapStateUnmapped MapState = iota
	// MapStateUnviewable is mapped but hidden by an unmapped ancestor
	// (for example an iconified frame).
	MapStateUnviewable
	MapStateViewable
)

func (s MapState) String() string {
	switch s {
	case MapStateUnmapped:
		return "unmapped"
	case MapStateUnviewable:
		return "unviewable"
	case MapStateViewable:
		return "viewable"
	default:
		return "unknown"
	}
}

// Attributes is a snapshot of the window attributes relevant to management.
type Attributes struct {
	OverrideRedirect bool
	MapState         MapState
}

// EventMask selects which events the display delivers for a window.
type EventMask uint32

const (
	MaskButtonPress EventMask = 1 << iota
	MaskEnterWindow
	MaskLeaveWindow
	MaskStructureNotify
	MaskSubstructureNotify
	MaskSubstructureRedirect
	MaskPropertyChange
)

var (
	// ErrConnectionClosed is returned by NextEvent once the connection to the
	// display has gone away. No further events will be delivered.
	ErrConnectionClosed = errors.New("display connection closed")

	// ErrAnotherManager is returned by SelectInput when substructure
	// redirection on the root window is already held by another client.
	ErrAnotherManager = errors.New("another window manager is already running")

	// ErrBadWindow is returned when a request referenced a window that no
	// longer exists.
	ErrBadWindow = errors.New("bad window")
)

// Display abstracts the display-server connection a window manager drives.
//
// Requests are synchronous from the caller's point of view. Pending and
// NextEvent never block: Ready signals when new events have been queued.
type Display interface {
	Root() WindowID
	SelectInput(window WindowID, mask EventMask) error
	QueryTree(window WindowID) ([]WindowID, error)
	WindowAttributes(window WindowID) (Attributes, error)
	TransientFor(window WindowID) (WindowID, bool)

	RaiseWindow(window WindowID) error
	AddToSaveSet(window WindowID) error
	ReparentWindow(window, parent WindowID, x, y int) error
	MapWindow(window WindowID) error

	Pending() int
	NextEvent() (Event, error)
	// Ready receives a value whenever events became pending. Deliveries are
	// coalesced, so one receive may stand for any number of events.
	Ready() <-chan struct{}
	Sync() error
	Close() error
}

// SupportAdvertiser is implemented by displays that can announce the running
// window manager to other clients (a supporting-WM check window).
type SupportAdvertiser interface {
	AdvertiseSupport(name string) error
}

// ClientListPublisher is implemented by displays that can publish the list of
// managed windows for pagers and taskbars.
type ClientListPublisher interface {
	PublishClientList(windows []WindowID) error
}
