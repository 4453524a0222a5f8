package emulate

import (
	"context"
	"fmt"
	"io"
	"runtime/debug"
	"time"

	"macroemu/internal/invocation"
	"macroemu/internal/pipeline"
	"macroemu/internal/reconstruct"
	"macroemu/internal/trace"
)

// Shape is the syntactic form of an invocation.
type Shape = invocation.Shape

const (
	ShapeFunctionLike  = invocation.FunctionLike
	ShapeAttributeLike = invocation.AttributeLike
	ShapeDeriveLike    = invocation.DeriveLike
)

// ErrUnknownShape is returned by Scan for a Shape outside the three above.
var ErrUnknownShape = invocation.ErrUnknownShape

type (
	// Tracer receives trace events of a run.
	Tracer = trace.Tracer
	// ProgressEvent reports per-file progress.
	ProgressEvent = pipeline.Event
	// ProgressSink consumes ProgressEvents.
	ProgressSink = pipeline.ProgressSink
)

// Site is a found invocation with its reconstructed input.
type Site struct {
	Shape Shape
	// Macro is the path as written at the site.
	Macro  string
	Line   int
	Column int
	// Item names the annotated declaration of attribute and derive sites.
	Item string
	// Args holds the call or attribute arguments; empty for derive sites.
	Args TokenStream
	// Input holds the declaration input of attribute and derive sites.
	Input TokenStream
}

// Option configures a Runner.
type Option func(*Runner)

// WithTracer records a span per run and an event per site.
func WithTracer(t Tracer) Option {
	return func(r *Runner) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithTraceOutput writes a text trace of every site to w.
func WithTraceOutput(w io.Writer) Option {
	return WithTracer(trace.NewStreamTracer(w, trace.LevelDebug, trace.FormatText))
}

// WithProgress reports invoke progress to sink.
func WithProgress(sink ProgressSink) Option {
	return func(r *Runner) { r.progress = sink }
}

// WithRecover turns callback panics into *CallbackError. Without it a
// panic propagates untouched so the test reports it where it happened.
func WithRecover() Option {
	return func(r *Runner) { r.recover = true }
}

// Runner drives callbacks over the sites of a file. It holds no state
// between calls and may be reused.
type Runner struct {
	tracer   Tracer
	progress ProgressSink
	recover  bool
}

func NewRunner(opts ...Option) *Runner {
	r := &Runner{tracer: trace.Nop}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRunner = NewRunner()

// FunctionLike calls fn with the arguments of every name!(..) in f.
func (r *Runner) FunctionLike(f *File, name string, fn func(TokenStream) error) error {
	return r.run(f, ShapeFunctionLike, name, nil, func(s Site) error { return fn(s.Args) })
}

// AttributeLike calls fn with the attribute arguments and the annotated
// declaration of every #[name] in f.
func (r *Runner) AttributeLike(f *File, name string, fn func(attr, item TokenStream) error) error {
	return r.run(f, ShapeAttributeLike, name, nil, func(s Site) error { return fn(s.Args, s.Input) })
}

// DeriveLike calls fn with the type declaration of every derive of name in f,
// stripped of derive attributes and of the helper attributes.
func (r *Runner) DeriveLike(f *File, name string, helpers []string, fn func(TokenStream) error) error {
	return r.run(f, ShapeDeriveLike, name, helpers, func(s Site) error { return fn(s.Input) })
}

// Scan returns the sites of name in f without calling anything.
func (r *Runner) Scan(f *File, shape Shape, name string, helpers ...string) ([]Site, error) {
	var sites []Site
	err := r.walk(f, shape, name, helpers, func(s Site) error {
		sites = append(sites, s)
		return nil
	})
	return sites, err
}

func (r *Runner) run(f *File, shape Shape, name string, helpers []string, call func(Site) error) error {
	return r.walk(f, shape, name, helpers, func(s Site) error {
		return r.invoke(f, s, call)
	})
}

func (r *Runner) walk(f *File, shape Shape, name string, helpers []string, fn func(Site) error) error {
	target, err := invocation.ParseMacroName(name)
	if err != nil {
		return err
	}
	ctx := trace.WithTracer(context.Background(), r.tracer)
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file:"+f.path)
	started := time.Now()
	pipeline.Emit(r.progress, pipeline.Event{File: f.path, Stage: pipeline.StageInvoke, Status: pipeline.StatusWorking})

	count := 0
	req := invocation.Request{Shape: shape, Name: target, Helpers: helpers}
	err = invocation.Visit(f.syntax, req, func(site invocation.Site) error {
		count++
		s := r.site(f, site)
		trace.Point(r.tracer, trace.ScopeSite, "site:"+s.Macro, fmt.Sprintf("%d:%d", s.Line, s.Column), trace.CurrentSpan(ctx))
		return fn(s)
	})

	ev := pipeline.Event{File: f.path, Stage: pipeline.StageInvoke, Status: pipeline.StatusDone, Sites: count, Elapsed: time.Since(started)}
	if err != nil {
		ev.Status, ev.Err = pipeline.StatusError, err
	}
	pipeline.Emit(r.progress, ev)
	span.WithExtra("shape", shape.String()).WithExtra("sites", fmt.Sprint(count)).End(target.String())
	return err
}

func (r *Runner) site(f *File, site invocation.Site) Site {
	toks := f.syntax.Tokens
	pos := f.syntax.Source.Position(site.Span.Start)
	s := Site{
		Shape:  site.Shape,
		Macro:  site.Path.String(),
		Line:   int(pos.Line),
		Column: int(pos.Col),
		Item:   site.ItemName,
	}
	if site.Shape != ShapeDeriveLike {
		s.Args = TokenStream{toks: reconstruct.Copy(toks, site.Args)}
	}
	if site.Shape != ShapeFunctionLike {
		s.Input = TokenStream{toks: reconstruct.Subtract(toks, site.Item, site.Exclude...)}
	}
	return s
}

// invoke calls the callback once. Errors are wrapped exactly once.
func (r *Runner) invoke(f *File, s Site, call func(Site) error) (err error) {
	if r.recover {
		defer func() {
			if p := recover(); p != nil {
				ce := callbackError(f, s, nil)
				ce.Panic, ce.Stack = p, debug.Stack()
				err = ce
			}
		}()
	}
	if cbErr := call(s); cbErr != nil {
		return callbackError(f, s, cbErr)
	}
	return nil
}

func callbackError(f *File, s Site, err error) *CallbackError {
	return &CallbackError{
		Shape:  s.Shape,
		Macro:  s.Macro,
		Path:   f.path,
		Line:   s.Line,
		Column: s.Column,
		Err:    err,
	}
}
