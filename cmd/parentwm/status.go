package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/1broseidon/parentwm/internal/ipc"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status via IPC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := ipc.NewClient().GetStatus()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "daemon_running:  %v\n", status.DaemonRunning)
			fmt.Fprintf(out, "root:            0x%x\n", status.Root)
			fmt.Fprintf(out, "managed_windows: %d\n", status.ManagedCount)
			fmt.Fprintf(out, "floating:        %d\n", status.FloatingCount)
			fmt.Fprintf(out, "events_handled:  %d\n", status.EventsHandled)
			fmt.Fprintf(out, "step_errors:     %d\n", status.StepErrors)
			fmt.Fprintf(out, "uptime_seconds:  %d\n", status.UptimeSeconds)
			return nil
		},
	}
}

func newWindowsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "windows",
		Short: "List managed windows in adoption order",
		Example: `  # Table output
  parentwm windows

  # JSON output
  parentwm windows --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			windows, err := ipc.NewClient().ListWindows()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(ipc.WindowsData{Windows: windows})
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "WINDOW\tFLOATING")
			for _, win := range windows {
				fmt.Fprintf(w, "0x%x\t%v\n", win.ID, win.Floating)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func newReloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Ask the running daemon to re-read its config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ipc.NewClient().Reload(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "reload requested")
			return nil
		},
	}
}
