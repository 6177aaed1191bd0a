package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1broseidon/parentwm/internal/daemon"
	"github.com/1broseidon/parentwm/internal/ipc"
	"github.com/1broseidon/parentwm/internal/logging"
	"github.com/1broseidon/parentwm/internal/metrics"
	"github.com/1broseidon/parentwm/internal/wm"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Manage the display until interrupted",
		Long: `Take over window management on the configured display.

SIGINT and SIGTERM stop the manager. SIGHUP re-reads the config file and
applies the new log level.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd.Context(), opts)
		},
	}
}

func runDaemon(ctx context.Context, opts *rootOptions) error {
	cfg, err := opts.effective()
	if err != nil {
		return err
	}
	logger, level, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	if cfg.XAuthority != "" {
		os.Setenv("XAUTHORITY", cfg.XAuthority)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var observer wm.Observer
	if cfg.Metrics.Enabled {
		recorder := metrics.NewRecorder()
		observer = recorder
		go func() {
			if err := recorder.Serve(ctx, cfg.Metrics.Listen, logger.With("component", "metrics")); err != nil {
				logger.Error("metrics endpoint failed", "error", err)
			}
		}()
	}

	d := daemon.New(dialer(cfg.Display), daemon.Config{
		Logger:            logger,
		Observer:          observer,
		WMName:            cfg.AdvertisedName(),
		ReconcileInterval: cfg.ReconcileEvery(),
	})

	reloadChan := make(chan struct{}, 1)
	var srv *ipc.Server
	if cfg.IPC.Enabled {
		srv, err = ipc.NewServer(d, reloadChan, logger.With("component", "ipc"))
		if err != nil {
			return err
		}
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				logger.Info("received SIGHUP, reloading config")
				opts.reload(logger, level)
			case <-reloadChan:
				logger.Info("reload requested over IPC")
				opts.reload(logger, level)
			}
		}
	}()

	display := cfg.Display
	if display == "" {
		display = os.Getenv("DISPLAY")
	}
	logger.Info("starting parentwm", "display", display, "ipc", cfg.IPC.Enabled, "metrics", cfg.Metrics.Enabled)

	if err := serve(ctx, d, srv); err != nil {
		logger.Error("window manager stopped", "error", err)
		return err
	}
	logger.Info("shutting down parentwm")
	return nil
}

// serve runs d until ctx is cancelled. srv, when non-nil, is started only
// once the display is managed, so a run that fails to take over the display
// never touches the socket of a daemon that is already running.
func serve(ctx context.Context, d *daemon.Daemon, srv *ipc.Server) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- d.Run(ctx) }()

	select {
	case <-d.Running():
	case err := <-errc:
		return err
	}

	if srv != nil {
		if err := srv.Start(); err != nil {
			cancel()
			<-errc
			return err
		}
		defer srv.Stop()
	}
	return <-errc
}

// reload re-reads the config and applies what can change at runtime.
func (o *rootOptions) reload(logger *slog.Logger, level *slog.LevelVar) {
	cfg, err := o.effective()
	if err != nil {
		logger.Warn("config reload failed", "error", err)
		return
	}
	lvl, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warn("config reload failed", "error", err)
		return
	}
	level.Set(lvl)
	logger.Info("config reloaded", "log_level", cfg.LogLevel)
}
