package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"macroemu/internal/diagfmt"
	"macroemu/internal/driver"
	"macroemu/internal/observ"
)

// driverOptions builds driver options from the persistent flags.
func driverOptions(cmd *cobra.Command) (driver.Options, error) {
	flags := cmd.Root().PersistentFlags()
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get timings flag: %w", err)
	}
	opts := driver.Options{MaxDiagnostics: maxDiagnostics}
	if timings {
		opts.Timer = observ.NewTimer()
	}
	return opts, nil
}

func prettyOpts(cmd *cobra.Command) diagfmt.PrettyOpts {
	wd, _ := os.Getwd() //nolint:errcheck // пустой baseDir печатает пути как есть
	return diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		Context:   2,
		BaseDir:   wd,
		ShowNotes: true,
	}
}

func quiet(cmd *cobra.Command) bool {
	q, err := cmd.Root().PersistentFlags().GetBool("quiet")
	return err == nil && q
}

// printTimings prints the phase summary collected by opts.Timer to stderr.
func printTimings(cmd *cobra.Command, opts driver.Options) {
	if opts.Timer == nil || quiet(cmd) {
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), opts.Timer.Summary())
}
