package emulate

import (
	"errors"
	"fmt"
	"strings"

	"macroemu/internal/diag"
	"macroemu/internal/invocation"
	"macroemu/internal/source"
)

// ErrInvalidMacroName is returned when the macro name is not a path.
var ErrInvalidMacroName = invocation.ErrInvalidMacroName

// Diagnostic is a lexer or parser message about a fixture.
type Diagnostic struct {
	Severity string // "error", "warning" or "info"
	Code     string // e.g. SYN2002
	Message  string
	Path     string
	Line     int
	Column   int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s %s: %s", d.Path, d.Line, d.Column, d.Severity, d.Code, d.Message)
}

func convertDiagnostics(fs *source.FileSet, items []diag.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(items))
	for _, d := range items {
		cd := Diagnostic{
			Severity: strings.ToLower(d.Severity.String()),
			Code:     d.Code.ID(),
			Message:  d.Message,
		}
		if int(d.Primary.File) < fs.Len() {
			f := fs.Get(d.Primary.File)
			pos := f.Position(d.Primary.Start)
			cd.Path, cd.Line, cd.Column = f.Path, int(pos.Line), int(pos.Col)
		}
		out = append(out, cd)
	}
	return out
}

// ParseError reports a fixture that could not be parsed. No callback has
// run when it is returned.
type ParseError struct {
	Path string
	// Diagnostics holds every error, in source order.
	Diagnostics []Diagnostic
}

func (e *ParseError) Error() string {
	if len(e.Diagnostics) == 0 {
		return e.Path + ": parse failed"
	}
	d := e.Diagnostics[0]
	msg := fmt.Sprintf("%s:%d:%d: %s", e.Path, d.Line, d.Column, d.Message)
	if n := len(e.Diagnostics) - 1; n > 0 {
		msg += fmt.Sprintf(" (and %d more errors)", n)
	}
	return msg
}

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// CallbackError reports a failure of the callback at one site.
type CallbackError struct {
	Shape  Shape
	Macro  string // macro path as written at the site
	Path   string
	Line   int
	Column int
	// Err is the callback's error; nil when the callback panicked.
	Err error
	// Panic is the recovered value when WithRecover is in effect.
	Panic any
	// Stack is the goroutine stack at the panic.
	Stack []byte
}

func (e *CallbackError) Error() string {
	where := fmt.Sprintf("%s:%d:%d: %s macro %s", e.Path, e.Line, e.Column, e.Shape, e.Macro)
	if e.Err == nil && e.Panic != nil {
		return fmt.Sprintf("%s: panic: %v", where, e.Panic)
	}
	return fmt.Sprintf("%s: %v", where, e.Err)
}

func (e *CallbackError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	if err, ok := e.Panic.(error); ok {
		return err
	}
	return nil
}
