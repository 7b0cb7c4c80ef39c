package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// NewRoot creates depscan root command
func NewRoot(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "depscan",
		Short:         "depscan: supply-chain dependency audit",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Version = version
	cmd.SetVersionTemplate("depscan {{.Version}}\n")

	cmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	cmd.PersistentFlags().String("config", "", "YAML config file, flags override its values")

	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newAnalyzeCmd())
	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
