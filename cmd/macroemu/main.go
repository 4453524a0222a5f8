package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"macroemu/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "macroemu",
	Short: "Find macro invocation sites in Rust fixtures and show their inputs",
	Long: `macroemu lexes and parses Rust fixture files, finds function-like,
attribute-like and derive-like macro invocations and prints the exact
token input each one would receive.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.Version = version.String()

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	addTraceFlags(rootCmd)
	addProfileFlags(rootCmd)
}

// main executes the root command; a failing command exits with status 1.
func main() {
	err := rootCmd.Execute()
	finish(err != nil)
	if err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	if err := setupProfiling(cmd); err != nil {
		return err
	}
	return setupTracing(cmd, args)
}

func finish(failed bool) {
	finishTracing(failed)
	finishProfiling()
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag for output going to f.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	switch colorFlag {
	case "on", "always":
		return true
	case "off", "never":
		return false
	}
	return isTerminal(f)
}
