package platform

// EventKind identifies the type of a display event.
type EventKind uint8

const (
	EventUnknown EventKind = iota
	EventKeyPress
	EventKeyRelease
	EventButtonPress
	EventButtonRelease
	EventMotionNotify
	EventEnterNotify
	EventLeaveNotify
	EventFocusIn
	EventFocusOut
	EventExpose
	EventCreateNotify
	EventDestroyNotify
	EventUnmapNotify
	EventMapNotify
	EventMapRequest
	EventReparentNotify
	EventConfigureNotify
	EventConfigureRequest
	EventPropertyNotify
	EventClientMessage
	EventMappingNotify
)

// Event is a single event drained from the display connection.
type Event struct {
	Kind EventKind
	// Window is the window the event is about (the mapped, destroyed or
	// reparented child for substructure events), or 0.
	Window WindowID
	// Code is the raw protocol event code, kept for diagnostics.
	Code uint8
}

// EventName returns the display name of an event kind.
func EventName(kind EventKind) string {
	switch kind {
	case EventKeyPress:
		return "KeyPress"
	case EventKeyRelease:
		return "KeyRelease"
	case EventButtonPress:
		return "ButtonPress"
	case EventButtonRelease:
		return "ButtonRelease"
	case EventMotionNotify:
		return "MotionNotify"
	case EventEnterNotify:
		return "EnterNotify"
	case EventLeaveNotify:
		return "LeaveNotify"
	case EventFocusIn:
		return "FocusIn"
	case EventFocusOut:
		return "FocusOut"
	case EventExpose:
		return "Expose"
	case EventCreateNotify:
		return "CreateNotify"
	case EventDestroyNotify:
		return "DestroyNotify"
	case EventUnmapNotify:
		return "UnmapNotify"
	case EventMapNotify:
		return "MapNotify"
	case EventMapRequest:
		return "MapRequest"
	case EventReparentNotify:
		return "ReparentNotify"
	case EventConfigureNotify:
		return "ConfigureNotify"
	case EventConfigureRequest:
		return "ConfigureRequest"
	case EventPropertyNotify:
		return "PropertyNotify"
	case EventClientMessage:
		return "ClientMessage"
	case EventMappingNotify:
		return "MappingNotify"
	default:
		return "Unknown"
	}
}

func (k EventKind) String() string {
	return EventName(k)
}
