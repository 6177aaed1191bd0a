// Package wm is the control core of a minimal reparenting window manager:
// discovery of existing windows, adoption of new ones, and draining of
// display events. All methods must be called from a single goroutine.
package wm

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/1broseidon/parentwm/internal/platform"
)

// RootEventMask is selected on the root window by Manage.
const RootEventMask = platform.MaskSubstructureRedirect |
	platform.MaskSubstructureNotify |
	platform.MaskButtonPress |
	platform.MaskEnterWindow |
	platform.MaskLeaveWindow |
	platform.MaskStructureNotify |
	platform.MaskPropertyChange

// Dialer opens the display connection.
type Dialer func() (platform.Display, error)

// Config holds configuration for the manager.
type Config struct {
	Logger   *slog.Logger
	Observer Observer
	// WMName, when set, is advertised to other clients and the client list
	// is published, if the display supports it. Empty disables both.
	WMName string
}

// Stats counts what the manager has done since Manage.
type Stats struct {
	EventsHandled uint64
	Adopted       uint64
	Ignored       uint64
	Forgotten     uint64
	StepErrors    uint64
}

// Manager adopts top-level windows of one display.
type Manager struct {
	dial     Dialer
	logger   *slog.Logger
	observer Observer
	wmName   string

	display  platform.Display
	root     platform.WindowID
	registry *Registry
	stats    Stats
	managing bool
}

// New creates a manager. No display calls happen until Manage.
func New(dial Dialer, cfg Config) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	observer := cfg.Observer
	if observer == nil {
		observer = nopObserver{}
	}
	return &Manager{
		dial:     dial,
		logger:   logger,
		observer: observer,
		wmName:   cfg.WMName,
		registry: NewRegistry(),
	}
}

// Manage opens the display, takes substructure redirection on the root,
// adopts the windows that already exist, and returns the channel the host
// should watch; call OnReady whenever it fires.
//
// Connection failures wrap ErrCannotConnect. If another manager holds the
// root the error wraps platform.ErrAnotherManager. In both cases the manager
// is left unarmed.
func (m *Manager) Manage() (<-chan struct{}, error) {
	if m.managing {
		return nil, ErrAlreadyManaging
	}

	display, err := m.dial()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCannotConnect, err)
	}
	root := display.Root()

	if err := display.SelectInput(root, RootEventMask); err != nil {
		display.Close()
		return nil, fmt.Errorf("select input on root 0x%x: %w", uint32(root), err)
	}

	m.display = display
	m.root = root
	m.managing = true
	m.stats = Stats{}

	if m.wmName != "" {
		if adv, ok := display.(platform.SupportAdvertiser); ok {
			if err := adv.AdvertiseSupport(m.wmName); err != nil {
				m.logger.Warn("failed to advertise window manager", "name", m.wmName, "error", err)
			}
		}
	}

	m.scan()

	if err := display.Sync(); err != nil {
		m.logger.Warn("sync after scan failed", "error", err)
	}
	m.publishClientList()

	m.logger.Info("managing display",
		"root", uint32(root),
		"windows", m.registry.Len())

	return display.Ready(), nil
}

// Managing reports whether Manage succeeded and Close has not been called.
func (m *Manager) Managing() bool {
	return m.managing
}

// Root returns the root window, or 0 before Manage.
func (m *Manager) Root() platform.WindowID {
	return m.root
}

// Windows returns the managed windows in adoption order.
func (m *Manager) Windows() []ManagedWindow {
	return m.registry.Windows()
}

// Stats returns counters since Manage.
func (m *Manager) Stats() Stats {
	return m.stats
}

// Reconcile re-queries every managed window and forgets the ones the server
// reports as BadWindow. It covers destroys we never saw an event for. Other
// query errors leave the window managed and are returned joined.
func (m *Manager) Reconcile() (int, error) {
	if !m.managing {
		return 0, ErrNotManaging
	}

	var vanished []platform.WindowID
	var errs []error
	for _, id := range m.registry.IDs() {
		_, err := m.display.WindowAttributes(id)
		switch {
		case err == nil:
		case errors.Is(err, platform.ErrBadWindow):
			vanished = append(vanished, id)
		default:
			errs = append(errs, fmt.Errorf("query 0x%x: %w", uint32(id), err))
		}
	}
	for _, id := range vanished {
		m.logger.Info("reconcile: managed window vanished", "window_id", uint32(id))
		m.forget(id)
	}
	if len(vanished) > 0 {
		m.publishClientList()
	}
	return len(vanished), errors.Join(errs...)
}

// Close releases the display connection.
func (m *Manager) Close() error {
	if !m.managing {
		return nil
	}
	m.managing = false
	return m.display.Close()
}

// publishClientList is gated on the same WM name as advertising, so
// _NET_CLIENT_LIST is never written without _NET_SUPPORTED.
func (m *Manager) publishClientList() {
	if m.wmName == "" {
		return
	}
	pub, ok := m.display.(platform.ClientListPublisher)
	if !ok {
		return
	}
	if err := pub.PublishClientList(m.registry.IDs()); err != nil {
		m.logger.Warn("failed to publish client list", "error", err)
	}
}

func (m *Manager) forget(id platform.WindowID) bool {
	if !m.registry.Remove(id) {
		return false
	}
	m.stats.Forgotten++
	m.observer.WindowForgotten(id)
	return true
}

// windowInfo reads what the classifier needs. The transient hint is only
// read when the attribute query succeeded.
func (m *Manager) windowInfo(id platform.WindowID) (WindowInfo, error) {
	attrs, err := m.display.WindowAttributes(id)
	if err != nil {
		return WindowInfo{}, err
	}
	owner, ok := m.display.TransientFor(id)
	return WindowInfo{
		Attributes:      attrs,
		TransientFor:    owner,
		HasTransientFor: ok,
	}, nil
}

func (m *Manager) ignored(id platform.WindowID, reason IgnoreReason) {
	m.stats.Ignored++
	m.observer.WindowIgnored(id, reason)
	m.logger.Debug("window ignored", "window_id", uint32(id), "reason", string(reason))
}
