package main

import (
	"io"
	"log/slog"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose bool
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "translations-cli",
		Short:         "Assemble translation forms from entity descriptors",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log debug output to stderr")
	cmd.AddCommand(newBuildCommand(flags))
	return cmd
}

// newLogger returns a slog logger backed by the charm console handler.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := charmlog.WarnLevel
	if verbose {
		level = charmlog.DebugLevel
	}
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           level,
		ReportTimestamp: verbose,
		Prefix:          "translations",
	})
	return slog.New(handler)
}
