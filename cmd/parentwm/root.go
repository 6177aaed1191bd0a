package main

import (
	"github.com/spf13/cobra"

	"github.com/1broseidon/parentwm/internal/config"
)

// rootOptions holds the global flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
	display    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "parentwm",
		Short: "parentwm - a minimal reparenting X11 window manager",
		Long: `parentwm takes over window management on an X display: it adopts the
windows that already exist, adopts every new top-level window that asks to be
mapped, and keeps transient dialogs floating above their owners.

While it runs, status and the managed window list are available over a local
IPC socket.`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/parentwm/config.yaml)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	pf.StringVar(&opts.display, "display", "", "X display to manage (default is $DISPLAY)")

	cmd.AddCommand(
		newRunCmd(opts),
		newStatusCmd(),
		newWindowsCmd(),
		newReloadCmd(),
		newConfigCmd(opts),
	)
	return cmd
}

// load reads the config file selected by --config.
func (o *rootOptions) load() (*config.LoadResult, error) {
	if o.configPath == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(o.configPath)
}

// effective returns the loaded config with command-line overrides applied.
func (o *rootOptions) effective() (*config.Config, error) {
	res, err := o.load()
	if err != nil {
		return nil, err
	}
	cfg := *res.Config
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.display != "" {
		cfg.Display = o.display
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
