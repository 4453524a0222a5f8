package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"macroemu/internal/diagfmt"
	"macroemu/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.rs",
	Short: "Parse a Rust fixture and print its syntax tree",
	Long: `Parse builds the item tree the site matchers walk: items, attributes,
blocks, statements and macro calls, each with its source span`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|diagnostics)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		if result.Bag.Len() > 0 {
			diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, prettyOpts(cmd))
		}
		err = diagfmt.FormatASTPretty(out, result.Syntax, result.FileSet)
	case "json":
		if result.Bag.Len() > 0 {
			diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, prettyOpts(cmd))
		}
		err = diagfmt.FormatASTJSON(out, result.Syntax, result.FileSet)
	case "diagnostics":
		err = diagfmt.JSON(out, result.Bag, result.FileSet, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	printTimings(cmd, opts)
	if result.Failed() {
		return fmt.Errorf("%s: %d syntax error(s)", args[0], result.Errors)
	}
	return nil
}
