package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"macroemu/internal/config"
	"macroemu/internal/invocation"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Create a macroemu.toml for a fixture directory",
	Long: `Initialize a fixture project by writing macroemu.toml and a tests/
directory. If [path|name] is omitted, initializes the current directory. A
non-existing name is created as a directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("macro", "my_macro", "name of the first [[macro]] entry")
	initCmd.Flags().String("shape", "function", "shape of the macro (function|attribute|derive)")
}

// runInit writes macroemu.toml into the target directory, refusing to
// overwrite an existing one.
func runInit(cmd *cobra.Command, args []string) error {
	macro, err := cmd.Flags().GetString("macro")
	if err != nil {
		return fmt.Errorf("failed to get macro flag: %w", err)
	}
	shapeFlag, err := cmd.Flags().GetString("shape")
	if err != nil {
		return fmt.Errorf("failed to get shape flag: %w", err)
	}
	shape, err := invocation.ParseShape(shapeFlag)
	if err != nil {
		return err
	}
	if _, err := invocation.ParseMacroName(macro); err != nil {
		return err
	}

	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	target, err = filepath.Abs(target)
	if err != nil {
		return err
	}
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "fixtures"
	}

	manifestPath := filepath.Join(target, config.FileName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	content := config.Template(name, macro, shapeKeyword(shape))
	if err := os.WriteFile(manifestPath, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", manifestPath, err)
	}
	testsDir := filepath.Join(target, "tests")
	if err := os.MkdirAll(testsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", testsDir, err)
	}

	if !quiet(cmd) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Initialized %s\n", name)
		fmt.Fprintf(out, "  created %s\n", manifestPath)
		fmt.Fprintf(out, "  created %s%c\n", testsDir, filepath.Separator)
	}
	return nil
}

func shapeKeyword(s invocation.Shape) string {
	switch s {
	case invocation.AttributeLike:
		return "attribute"
	case invocation.DeriveLike:
		return "derive"
	}
	return "function"
}
