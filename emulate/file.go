package emulate

import (
	"context"
	"fmt"

	"macroemu/internal/ast"
	"macroemu/internal/driver"
	"macroemu/internal/source"
)

// File is a parsed fixture. It is read-only and may be scanned any number
// of times.
type File struct {
	path     string
	fileSet  *source.FileSet
	syntax   *ast.File
	warnings []Diagnostic
}

// Path returns the name the file was parsed under.
func (f *File) Path() string { return f.path }

// Warnings returns non-fatal diagnostics, such as identifiers that are not
// in NFC form.
func (f *File) Warnings() []Diagnostic {
	out := make([]Diagnostic, len(f.warnings))
	copy(out, f.warnings)
	return out
}

// Parse parses src under the given name.
func Parse(name string, src []byte) (*File, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	return parse(context.Background(), fs, id)
}

// ParseFile reads and parses the fixture at path.
func ParseFile(path string) (*File, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("emulate: %w", err)
	}
	return parse(context.Background(), fs, id)
}

func parse(ctx context.Context, fs *source.FileSet, id source.FileID) (*File, error) {
	res := driver.ParseFile(ctx, fs, id, driver.Options{})
	if res.Failed() {
		return nil, &ParseError{
			Path:        res.File.Path,
			Diagnostics: convertDiagnostics(fs, res.Bag.Errors()),
		}
	}
	var warnings []Diagnostic
	if res.Bag.HasWarnings() {
		all := convertDiagnostics(fs, res.Bag.Items())
		for _, d := range all {
			if d.Severity == "warning" {
				warnings = append(warnings, d)
			}
		}
	}
	return &File{path: res.File.Path, fileSet: fs, syntax: res.Syntax, warnings: warnings}, nil
}
