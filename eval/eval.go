// Package eval implements the OpenSCAD tree-walking evaluator (spec §4.3):
// it walks a *scad.Program, materializing geometry by calling the csg
// engine adapter for primitives, transforms and booleans, and propagating
// the three failure tiers (Recovered/Reported/Fatal) spec §4.3 defines.
package eval

import (
	"context"

	"github.com/gocad/scadcore/csg"
	"github.com/gocad/scadcore/plugin"
	"github.com/gocad/scadcore/scad"
	"github.com/gocad/scadcore/scope"
)

// ErrorReporter forwards System-category Reported/Fatal errors to an
// observability backend. Defined here (not imported from rpc) so eval has
// no dependency on the rpc package; rpc.SentryReporter implements this.
type ErrorReporter interface {
	ReportError(err error)
}

type noopReporter struct{}

func (noopReporter) ReportError(error) {}

// Limits carries one evaluation's memory cap (spec §5). The evaluator stores
// MaxMemoryBytes but does not measure or enforce memory use. The timeout is
// not part of Limits: it is the deadline of the ctx passed to Evaluate, which
// the evaluator checks before each statement of a block; engine calls have no
// cancellation check of their own.
type Limits struct {
	MaxMemoryBytes int64
}

// Result is everything one Evaluate call produces: the final geometry (nil
// if the program emitted none), every collected error, and echo() output.
type Result struct {
	Geometry *csg.Handle
	Errors   []*EvalError
	Echoes   []string
}

// Success reports whether no error of severity >= Reported was recorded and
// geometry was produced (spec §7 propagation policy).
func (r *Result) Success() bool {
	if r.Geometry == nil {
		return false
	}
	for _, e := range r.Errors {
		if e.Severity >= SeverityReported {
			return false
		}
	}
	return true
}

// Evaluator holds everything shared across one Evaluate call: the CSG
// engine, the plugin registry, resource limits, and collected diagnostics.
// One Evaluator is used for exactly one evaluation (spec §3.7: one-shot).
type Evaluator struct {
	engine   csg.Engine
	plugins  *plugin.Registry
	limits   Limits
	reporter ErrorReporter
	resolver FileResolver

	errors       []*EvalError
	echoes       []string
	rootOverride *csg.Handle
	rootFound    bool
}

// Option configures an Evaluator at construction.
type Option func(*Evaluator)

// WithPlugins registers a plugin registry consulted after builtins (spec §4.7).
func WithPlugins(r *plugin.Registry) Option {
	return func(e *Evaluator) { e.plugins = r }
}

// WithLimits sets resource limits (spec §5).
func WithLimits(l Limits) Option {
	return func(e *Evaluator) { e.limits = l }
}

// WithReporter sets the ErrorReporter for System-category failures (spec §7.1).
func WithReporter(r ErrorReporter) Option {
	return func(e *Evaluator) { e.reporter = r }
}

// WithFileResolver sets the include/use/import file resolver (spec §4.3).
func WithFileResolver(r FileResolver) Option {
	return func(e *Evaluator) { e.resolver = r }
}

// New constructs an Evaluator over the given CSG engine.
func New(engine csg.Engine, opts ...Option) *Evaluator {
	e := &Evaluator{
		engine:   engine,
		reporter: noopReporter{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs prog to completion and returns the collected result. It
// never panics: parser-level and evaluator-level failures are all folded
// into Result.Errors (spec §3.6, §7).
func (e *Evaluator) Evaluate(ctx context.Context, prog *scad.Program) *Result {
	root := scope.NewRoot()

	defer func() {
		if r := recover(); r != nil {
			e.errors = append(e.errors, fatalErrorf(0, "system.runtime_error", "internal error: %v", r))
		}
	}()

	geo := e.evalBlockGeometry(ctx, prog.Statements, root)
	if e.rootFound {
		geo = e.rootOverride
	}

	for _, err := range e.errors {
		if err.Category == CategorySystem && err.Severity >= SeverityReported {
			e.reporter.ReportError(err)
		}
	}

	return &Result{Geometry: geo, Errors: e.errors, Echoes: e.echoes}
}

func (e *Evaluator) addError(err *EvalError) {
	e.errors = append(e.errors, err)
}

func (e *Evaluator) checkCancel(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		e.addError(fatalErrorf(0, "system.timeout", "evaluation cancelled: %v", ctx.Err()))
		return true
	default:
		return false
	}
}

func line(n scad.Node) int {
	return n.Pos().Start.Line
}
