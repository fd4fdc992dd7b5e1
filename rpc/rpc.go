// Package rpc is the plain data/function contract a host process calls into
// (spec §6.1.1): rpc.Request, rpc.Response, rpc.EnhancedError, and
// rpc.Evaluate wiring lexer → parser → evaluator → geometry serializer.
// There is deliberately no transport code here — no HTTP handler, no
// WebSocket upgrade, no router (spec §1's explicit out-of-scope list); a
// host builds a Request from whatever transport it runs and calls Evaluate.
package rpc

import (
	"context"
	"time"

	"github.com/gocad/scadcore/config"
	"github.com/gocad/scadcore/csg"
	"github.com/gocad/scadcore/eval"
	"github.com/gocad/scadcore/geometry"
	"github.com/gocad/scadcore/plugin"
	"github.com/gocad/scadcore/scad"
)

// Language selects the front end a Request's code is written in.
type Language string

const (
	LanguageOpenSCAD   Language = "openscad"
	LanguageJavaScript Language = "javascript"
)

// Request is the evaluation RPC's input (spec §6.1).
type Request struct {
	Code     string   `json:"code"`
	Language Language `json:"language"`
	T        *float64 `json:"t,omitempty"`
}

// Response is the evaluation RPC's output (spec §6.1).
type Response struct {
	Success         bool              `json:"success"`
	Geometry        *geometry.Geometry `json:"geometry"`
	Errors          []EnhancedError   `json:"errors"`
	ExecutionTimeMs float64           `json:"execution_time_ms"`
	Language        Language          `json:"language"`
}

// Severity is EnhancedError's user-facing severity label (spec §6.5).
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Category is EnhancedError's top-level classification (spec §6.5, §7).
type Category string

const (
	CategorySyntax Category = "syntax"
	CategoryLogic  Category = "logic"
	CategorySystem Category = "system"
)

// Fixed error code strings (spec §6.5).
const (
	CodeParseError        = "syntax.parse_error"
	CodeMissingExport     = "logic.missing_export"
	CodeMissingReturn     = "logic.missing_return"
	CodeInvalidExportType = "logic.invalid_export_type"
	CodeForbiddenImport   = "logic.forbidden_import"
	CodeUndefinedVariable = "logic.undefined_variable"
	CodeNullGeometry      = "logic.null_geometry"
	CodeFontFallback      = "logic.font_fallback"
	CodeTimeout           = "system.timeout"
	CodeMemoryExceeded    = "system.memory_exceeded"
	CodeWasmCrash         = "system.wasm_crash"
	CodeRuntimeError      = "system.runtime_error"
)

// EnhancedError is the RPC's rich error payload (spec §6.5).
type EnhancedError struct {
	Category      Category `json:"category"`
	Severity      Severity `json:"severity"`
	Code          string   `json:"code"`
	Message       string   `json:"message"`
	Line          *int     `json:"line,omitempty"`
	Column        *int     `json:"column,omitempty"`
	Stack         string   `json:"stack,omitempty"`
	CodeSnippet   string   `json:"code_snippet,omitempty"`
	Context       string   `json:"context,omitempty"`
	Suggestion    string   `json:"suggestion,omitempty"`
	FixExample    string   `json:"fix_example,omitempty"`
	Documentation string   `json:"documentation,omitempty"`
}

// Options configures one Evaluate call beyond what Request carries.
type Options struct {
	Config   *config.Config
	Plugins  *plugin.Registry
	Resolver eval.FileResolver
	Reporter eval.ErrorReporter
	Engine   csg.Engine
}

// Evaluate runs the full pipeline for one Request: lex, parse, evaluate,
// serialize. It never panics — any evaluator-level panic is already folded
// into a system.runtime_error by eval.Evaluator.Evaluate, and parser errors
// are folded into the response's error list rather than returned as a Go
// error (spec §7's "parser never aborts" propagation policy).
func Evaluate(ctx context.Context, req Request, opts Options) Response {
	start := timeNow()
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	engine := opts.Engine
	if engine == nil {
		engine = csg.NewReferenceEngine()
	}

	if req.Language != LanguageOpenSCAD {
		return Response{
			Success:  false,
			Errors:   []EnhancedError{{Category: CategoryLogic, Severity: SeverityError, Code: CodeInvalidExportType, Message: "unsupported language: " + string(req.Language)}},
			Language: req.Language,
		}
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	lexer := scad.NewLexer(req.Code)
	tokens, lexErr := lexer.Tokenize()

	parser := scad.NewParser(tokens)
	prog, parseErrs := parser.Parse()

	var errs []EnhancedError
	if lexErr != nil {
		errs = append(errs, EnhancedError{Category: CategorySyntax, Severity: SeverityError, Code: CodeParseError, Message: lexErr.Error()})
	}
	for _, pe := range parseErrs {
		line := pe.Token.Line
		col := pe.Token.Column
		errs = append(errs, EnhancedError{
			Category: CategorySyntax,
			Severity: SeverityError,
			Code:     pe.Code,
			Message:  pe.Message,
			Line:     &line,
			Column:   &col,
		})
	}

	evalOpts := []eval.Option{}
	if opts.Plugins != nil {
		evalOpts = append(evalOpts, eval.WithPlugins(opts.Plugins))
	}
	if opts.Resolver != nil {
		evalOpts = append(evalOpts, eval.WithFileResolver(opts.Resolver))
	}
	if opts.Reporter != nil {
		evalOpts = append(evalOpts, eval.WithReporter(opts.Reporter))
	}
	evalOpts = append(evalOpts, eval.WithLimits(eval.Limits{MaxMemoryBytes: cfg.MemoryCapBytes}))

	evaluator := eval.New(engine, evalOpts...)
	result := evaluator.Evaluate(timeoutCtx, prog)

	for _, ee := range result.Errors {
		line := ee.Line
		errs = append(errs, EnhancedError{
			Category: toCategory(ee.Category),
			Severity: toSeverity(ee.Severity),
			Code:     ee.Code,
			Message:  ee.Message,
			Line:     &line,
		})
	}

	var geo *geometry.Geometry
	if result.Geometry != nil {
		geo = geometry.FromHandle(result.Geometry)
	}

	success := geo != nil
	for _, e := range errs {
		if e.Severity == SeverityError || e.Severity == SeverityCritical {
			success = false
		}
	}

	return Response{
		Success:         success,
		Geometry:        geo,
		Errors:          errs,
		ExecutionTimeMs: elapsedMs(start),
		Language:        req.Language,
	}
}

func toCategory(c eval.Category) Category {
	if c == eval.CategorySystem {
		return CategorySystem
	}
	return CategoryLogic
}

func toSeverity(s eval.Severity) Severity {
	switch s {
	case eval.SeverityFatal:
		return SeverityCritical
	case eval.SeverityReported:
		return SeverityError
	default:
		return SeverityWarning
	}
}

// timeNow/elapsedMs isolate the one wall-clock read Evaluate needs so the
// rest of the package stays deterministic and test-friendly.
func timeNow() time.Time { return time.Now() }
func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
