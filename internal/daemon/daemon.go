// Package daemon hosts the window manager core: it owns the goroutine that
// waits on display readiness and is the only caller of the manager.
package daemon

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/1broseidon/parentwm/internal/ipc"
	"github.com/1broseidon/parentwm/internal/platform"
	"github.com/1broseidon/parentwm/internal/wm"
)

// ErrNotRunning is returned by queries when the host loop is not running.
var ErrNotRunning = errors.New("daemon not running")

// Config holds configuration for the daemon.
type Config struct {
	Logger *slog.Logger
	// Observer receives management events, for example a metrics recorder.
	Observer wm.Observer
	// WMName is advertised through EWMH when non-empty.
	WMName string
	// ReconcileInterval is the period between registry reconciliations.
	// Zero disables them.
	ReconcileInterval time.Duration
}

// Daemon runs the readiness loop for one display.
type Daemon struct {
	manager    *wm.Manager
	reconciler *reconciler
	logger     *slog.Logger

	queries chan func()
	running chan struct{}
	stopped chan struct{}
	started time.Time
}

// New creates a daemon. The display is opened by Run.
func New(dial wm.Dialer, cfg Config) *Daemon {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	manager := wm.New(dial, wm.Config{
		Logger:   logger.With("component", "wm"),
		Observer: cfg.Observer,
		WMName:   cfg.WMName,
	})
	return &Daemon{
		manager:    manager,
		reconciler: newReconciler(cfg.ReconcileInterval, manager, logger.With("component", "reconciler")),
		logger:     logger,
		queries:    make(chan func()),
		running:    make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

// Run takes over the display and services it until ctx is cancelled or the
// connection closes. It returns nil on cancellation.
func (d *Daemon) Run(ctx context.Context) error {
	defer close(d.stopped)

	ready, err := d.manager.Manage()
	if err != nil {
		return err
	}
	defer d.manager.Close()

	d.started = time.Now()
	close(d.running)

	tick, stopTicker := d.reconciler.ticker()
	defer stopTicker()

	d.logger.Info("entering event loop", "windows", len(d.manager.Windows()))

	// Events may already be queued from the scan.
	if err := d.drain(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("event loop stopped")
			return nil
		case <-ready:
			if err := d.drain(); err != nil {
				return err
			}
		case q := <-d.queries:
			q()
		case <-tick:
			d.reconciler.reconcile()
		}
	}
}

// Running is closed once Run has taken over the display. It is never closed
// if Manage fails.
func (d *Daemon) Running() <-chan struct{} {
	return d.running
}

// Done is closed when Run returns.
func (d *Daemon) Done() <-chan struct{} {
	return d.stopped
}

func (d *Daemon) drain() error {
	err := d.manager.OnReady()
	if errors.Is(err, platform.ErrConnectionClosed) {
		d.logger.Error("display connection closed")
		return err
	}
	if err != nil {
		d.logger.Warn("event drain failed", "error", err)
	}
	return nil
}

// do runs fn on the loop goroutine and waits for it to finish.
func (d *Daemon) do(ctx context.Context, fn func()) error {
	select {
	case <-d.running:
	case <-d.stopped:
		return ErrNotRunning
	case <-ctx.Done():
		return ctx.Err()
	}

	done := make(chan struct{})
	task := func() {
		fn()
		close(done)
	}
	select {
	case d.queries <- task:
	case <-d.stopped:
		return ErrNotRunning
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status implements ipc.Provider.
func (d *Daemon) Status(ctx context.Context) (ipc.StatusData, error) {
	ch := make(chan ipc.StatusData, 1)
	if err := d.do(ctx, func() { ch <- d.status() }); err != nil {
		return ipc.StatusData{}, err
	}
	return <-ch, nil
}

func (d *Daemon) status() ipc.StatusData {
	windows := d.manager.Windows()
	floating := 0
	for _, w := range windows {
		if w.Floating {
			floating++
		}
	}
	stats := d.manager.Stats()
	return ipc.StatusData{
		DaemonRunning:  true,
		Root:           uint32(d.manager.Root()),
		ManagedCount:   len(windows),
		FloatingCount:  floating,
		EventsHandled:  stats.EventsHandled,
		WindowsAdopted: stats.Adopted,
		WindowsIgnored: stats.Ignored,
		StepErrors:     stats.StepErrors,
		UptimeSeconds:  int64(time.Since(d.started).Seconds()),
	}
}

// Windows implements ipc.Provider.
func (d *Daemon) Windows(ctx context.Context) ([]ipc.WindowInfo, error) {
	ch := make(chan []ipc.WindowInfo, 1)
	err := d.do(ctx, func() {
		windows := d.manager.Windows()
		out := make([]ipc.WindowInfo, 0, len(windows))
		for _, w := range windows {
			out = append(out, ipc.WindowInfo{ID: uint32(w.ID), Floating: w.Floating})
		}
		ch <- out
	})
	if err != nil {
		return nil, err
	}
	return <-ch, nil
}

// ReconcileNow triggers an immediate reconciliation pass on the loop goroutine.
func (d *Daemon) ReconcileNow(ctx context.Context) error {
	return d.do(ctx, d.reconciler.reconcile)
}
