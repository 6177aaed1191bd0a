package daemon

import (
	"log/slog"
	"time"

	"github.com/1broseidon/parentwm/internal/wm"
)

// defaultReconcileInterval is used when the configured interval is negative.
const defaultReconcileInterval = 30 * time.Second

// reconciler periodically checks the registry against the server and
// forgets windows that disappeared without a destroy event reaching us.
// It runs on the host loop goroutine, never concurrently with OnReady.
type reconciler struct {
	interval time.Duration
	manager  *wm.Manager
	logger   *slog.Logger
	passes   uint64
}

func newReconciler(interval time.Duration, manager *wm.Manager, logger *slog.Logger) *reconciler {
	if interval < 0 {
		interval = defaultReconcileInterval
	}
	return &reconciler{
		interval: interval,
		manager:  manager,
		logger:   logger,
	}
}

// ticker returns the tick channel and a stop func. A zero interval disables
// reconciliation; the returned channel is then nil and never fires.
func (r *reconciler) ticker() (<-chan time.Time, func()) {
	if r.interval == 0 {
		return nil, func() {}
	}
	t := time.NewTicker(r.interval)
	return t.C, t.Stop
}

// reconcile performs a single reconciliation pass.
func (r *reconciler) reconcile() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	r.passes++
	removed, err := r.manager.Reconcile()
	if removed > 0 {
		r.logger.Info("reconciler: forgot vanished windows", "count", removed)
	}
	switch {
	case err != nil:
		r.logger.Error("reconciler: pass incomplete", "error", err)
	case removed == 0:
		r.logger.Debug("reconciler: registry in sync", "windows", len(r.manager.Windows()))
	}
}
