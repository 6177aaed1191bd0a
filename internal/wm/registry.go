package wm

import "github.com/1broseidon/parentwm/internal/platform"

// ManagedWindow is a top-level window under our control.
type ManagedWindow struct {
	ID platform.WindowID
	// Floating is true when the window declared WM_TRANSIENT_FOR at
	// adoption time.
	Floating bool
}

// Registry is the ordered set of managed windows, in adoption order.
//
// It does not reject duplicates: callers check Contains before Add.
type Registry struct {
	windows []ManagedWindow
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Contains reports whether id is managed.
func (r *Registry) Contains(id platform.WindowID) bool {
	return r.indexOf(id) >= 0
}

// Add appends a window.
func (r *Registry) Add(id platform.WindowID, floating bool) {
	r.windows = append(r.windows, ManagedWindow{ID: id, Floating: floating})
}

// Remove drops a window and reports whether it was present.
func (r *Registry) Remove(id platform.WindowID) bool {
	i := r.indexOf(id)
	if i < 0 {
		return false
	}
	r.windows = append(r.windows[:i], r.windows[i+1:]...)
	return true
}

// Get returns the entry for id.
func (r *Registry) Get(id platform.WindowID) (ManagedWindow, bool) {
	i := r.indexOf(id)
	if i < 0 {
		return ManagedWindow{}, false
	}
	return r.windows[i], true
}

// Len returns the number of managed windows.
func (r *Registry) Len() int {
	return len(r.windows)
}

// Windows returns a copy of the entries in adoption order.
func (r *Registry) Windows() []ManagedWindow {
	out := make([]ManagedWindow, len(r.windows))
	copy(out, r.windows)
	return out
}

// IDs returns the managed window ids in adoption order.
func (r *Registry) IDs() []platform.WindowID {
	out := make([]platform.WindowID, 0, len(r.windows))
	for _, w := range r.windows {
		out = append(out, w.ID)
	}
	return out
}

func (r *Registry) indexOf(id platform.WindowID) int {
	for i, w := range r.windows {
		if w.ID == id {
			return i
		}
	}
	return -1
}
