package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"macroemu/internal/diagfmt"
	"macroemu/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.rs",
	Short: "Tokenize a Rust fixture",
	Long:  `Tokenize breaks a fixture down into the tokens macro inputs are built from`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Диагностика: в stderr
	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, prettyOpts(cmd))
	}

	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	printTimings(cmd, opts)
	if result.Bag.HasErrors() {
		return fmt.Errorf("%s: lexical errors", args[0])
	}
	return nil
}
