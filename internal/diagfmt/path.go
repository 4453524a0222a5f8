package diagfmt

import (
	"fmt"
	"path/filepath"

	"macroemu/internal/diag"
	"macroemu/internal/source"
)

func displayPath(f *source.File, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case PathModeRelative:
		return f.FormatPath("relative", baseDir)
	case PathModeBasename:
		return f.FormatPath("basename", "")
	}
	if baseDir == "" || !filepath.IsAbs(f.Path) {
		return f.Path
	}
	rel, err := filepath.Rel(baseDir, f.Path)
	if err != nil || rel == ".." || len(rel) > 2 && rel[:3] == "../" {
		return f.Path
	}
	return filepath.ToSlash(rel)
}

// formatSpan formats a span as "startLine:startCol-endLine:endCol", or as
// "span(start-end)" when fs is nil.
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

// located reports whether the primary span of d can be resolved in fs. IO
// diagnostics carry no span: the file never made it into the set.
func located(d diag.Diagnostic, fs *source.FileSet) bool {
	if fs == nil || d.Code == diag.IOLoadFileError {
		return false
	}
	return int(d.Primary.File) < fs.Len()
}
