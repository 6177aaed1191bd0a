package wm

import (
	"errors"

	"github.com/1broseidon/parentwm/internal/platform"
)

// OnReady drains every pending event and dispatches each in delivery order
// before returning. Per-window failures are absorbed. The only error returned
// besides ErrNotManaging is platform.ErrConnectionClosed, after which the
// host should stop watching.
func (m *Manager) OnReady() error {
	if !m.managing {
		return ErrNotManaging
	}

	changed := false
	for m.display.Pending() > 0 {
		ev, err := m.display.NextEvent()
		if err != nil {
			if errors.Is(err, platform.ErrConnectionClosed) {
				if changed {
					m.publishClientList()
				}
				return err
			}
			m.logger.Debug("protocol error", "error", err)
			continue
		}
		if m.dispatch(ev) {
			changed = true
		}
	}

	if changed {
		m.publishClientList()
	}
	return nil
}

// dispatch handles one event and reports whether the registry changed.
func (m *Manager) dispatch(ev platform.Event) bool {
	m.stats.EventsHandled++
	m.observer.EventHandled(ev.Kind)
	m.logger.Debug("event",
		"event", platform.EventName(ev.Kind),
		"code", ev.Code,
		"window_id", uint32(ev.Window))

	switch ev.Kind {
	case platform.EventMapRequest:
		return m.handleMapRequest(ev.Window)
	case platform.EventDestroyNotify:
		return m.handleDestroyNotify(ev.Window)
	}
	return false
}

func (m *Manager) handleMapRequest(id platform.WindowID) bool {
	info, err := m.windowInfo(id)
	d := Classify(info, err, m.registry.Contains(id))
	if !d.Adopt {
		m.ignored(id, d.Reason)
		return false
	}
	m.adopt(id, d.Floating)
	return true
}

// handleDestroyNotify forgets a destroyed window so its id can be adopted
// again if the server reuses it. Unmaps are not handled: reparenting a
// mapped window unmaps it, and we still manage it afterwards.
func (m *Manager) handleDestroyNotify(id platform.WindowID) bool {
	if !m.forget(id) {
		return false
	}
	m.logger.Info("managed window destroyed", "window_id", uint32(id))
	return true
}
