package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"macroemu/internal/diag"
	"macroemu/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty печатает диагностики в человекочитаемом виде:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	  12 | let x = foo!(
//	     |             ^
//	  = note: <msg> (<path>:<line>:<col>)
//
// Строки контекста (opts.Context) печатаются перед основной строкой.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	sev := pal.severity(d.Severity).Sprint(d.Severity.String())
	code := pal.code.Sprint(d.Code.ID())
	if !located(d, fs) {
		fmt.Fprintf(w, "%s %s: %s\n", sev, code, d.Message)
		return
	}

	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	path := displayPath(f, opts.PathMode, opts.BaseDir)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sev, code, d.Message)

	gutterWidth := len(fmt.Sprint(start.Line))
	first := start.Line
	if ctx := uint32(max(opts.Context, 0)); ctx < first {
		first -= ctx
	} else {
		first = 1
	}
	for ln := first; ln <= start.Line; ln++ {
		line := expandTabs(f.GetLine(ln))
		if opts.Width > 0 {
			line = runewidth.Truncate(line, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), line)
	}

	raw := f.GetLine(start.Line)
	pad, width := caretColumns(raw, start.Col, end, end.Line == start.Line)
	underline := "^" + strings.Repeat("~", max(width-1, 0))
	fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), pal.caret.Sprint(underline))

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		loc := ""
		if int(n.Span.File) < fs.Len() {
			nf := fs.Get(n.Span.File)
			pos := nf.Position(n.Span.Start)
			loc = fmt.Sprintf(" (%s:%d:%d)", displayPath(nf, opts.PathMode, opts.BaseDir), pos.Line, pos.Col)
		}
		fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s =", gutterWidth, ""), pal.note.Sprint("note: ")+n.Msg, loc)
	}
}

// caretColumns returns the display column where the underline starts and
// its width. A span running past the line end is underlined to the end.
func caretColumns(line string, col uint32, end source.LineCol, sameLine bool) (pad, width int) {
	startByte := min(int(col)-1, len(line))
	endByte := len(line)
	if sameLine {
		endByte = min(max(int(end.Col)-1, startByte), len(line))
	}
	pad = runewidth.StringWidth(expandTabs(line[:startByte]))
	width = max(runewidth.StringWidth(expandTabs(line[startByte:endByte])), 1)
	return pad, width
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
