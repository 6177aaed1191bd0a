package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/parentwm/internal/config"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate the configuration",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "validate",
			Short: "Load the config and report errors",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := opts.load(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "config: ok")
				return nil
			},
		},
		newConfigPrintCmd(opts),
		&cobra.Command{
			Use:   "explain <yaml.path>",
			Short: "Show a setting's effective value and where it came from",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := opts.load()
				if err != nil {
					return err
				}
				value, src, err := config.Explain(res, args[0])
				if err != nil {
					return err
				}
				data, err := yaml.Marshal(value)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "path: %s\n", args[0])
				fmt.Fprintf(out, "source: %s\n", src)
				fmt.Fprintf(out, "value:\n%s", data)
				return nil
			},
		},
	)
	return cmd
}

func newConfigPrintCmd(opts *rootOptions) *cobra.Command {
	var defaults bool
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the effective config (or the built-in defaults)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if !defaults {
				res, err := opts.load()
				if err != nil {
					return err
				}
				cfg = res.Config
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, "print built-in defaults (no files)")
	return cmd
}
