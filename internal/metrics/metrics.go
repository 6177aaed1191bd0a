// Package metrics exposes window manager activity as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/1broseidon/parentwm/internal/platform"
	"github.com/1broseidon/parentwm/internal/wm"
)

const namespace = "parentwm"

// Recorder implements wm.Observer on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	adopted    *prometheus.CounterVec
	ignored    *prometheus.CounterVec
	forgotten  prometheus.Counter
	events     *prometheus.CounterVec
	stepErrors *prometheus.CounterVec
	managed    prometheus.Gauge
}

var _ wm.Observer = (*Recorder)(nil)

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		adopted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "windows_adopted_total",
			Help:      "Windows brought under management",
		}, []string{"floating"}),
		ignored: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "windows_ignored_total",
			Help:      "Windows the classifier declined to adopt",
		}, []string{"reason"}),
		forgotten: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "windows_forgotten_total",
			Help:      "Managed windows removed after destruction",
		}),
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Display events dispatched by kind",
		}, []string{"event"}),
		stepErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "adoption_step_errors_total",
			Help:      "Failed adoption requests by step",
		}, []string{"step"}),
		managed: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "managed_windows",
			Help:      "Windows currently in the registry",
		}),
	}
}

// Registry returns the registry the recorder's collectors live in.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) WindowAdopted(w wm.ManagedWindow) {
	r.adopted.WithLabelValues(strconv.FormatBool(w.Floating)).Inc()
	r.managed.Inc()
}

func (r *Recorder) WindowIgnored(_ platform.WindowID, reason wm.IgnoreReason) {
	r.ignored.WithLabelValues(string(reason)).Inc()
}

func (r *Recorder) WindowForgotten(platform.WindowID) {
	r.forgotten.Inc()
	r.managed.Dec()
}

func (r *Recorder) EventHandled(kind platform.EventKind) {
	r.events.WithLabelValues(platform.EventName(kind)).Inc()
}

func (r *Recorder) AdoptionStepFailed(step wm.AdoptionStep, _ platform.WindowID, _ error) {
	r.stepErrors.WithLabelValues(string(step)).Inc()
}

// Handler serves the recorder's registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (r *Recorder) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return r.serve(ctx, ln, logger)
}

func (r *Recorder) serve(ctx context.Context, ln net.Listener, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics endpoint listening", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
