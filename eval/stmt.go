package eval

import (
	"context"

	"github.com/gocad/scadcore/csg"
	"github.com/gocad/scadcore/scad"
	"github.com/gocad/scadcore/scope"
	"github.com/gocad/scadcore/value"
)

// evalBlockGeometry runs a sequence of statements in sc, unioning every
// piece of geometry they produce (spec §4.3: `for`/sequential statements
// union their results) and honoring `!`'s short-circuit (spec §4.3, §9).
// Module/function definitions anywhere in stmts are visible to every
// statement in the block, including ones preceding the definition — a
// deliberate simplification over OpenSCAD's pure top-to-bottom scoping,
// chosen so mutually-recursive modules/functions work without a forward
// declaration syntax the language doesn't have.
func (e *Evaluator) evalBlockGeometry(ctx context.Context, stmts []scad.Stmt, sc *scope.Scope) *csg.Handle {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *scad.ModuleDefStmt:
			sc.DefineModule(s.Name, &scope.ModuleDef{Name: s.Name, Params: toValueParams(s.Params), Body: s.Body, Captured: sc})
		case *scad.FunctionDefStmt:
			sc.DefineFunction(s.Name, &scope.FunctionDef{Name: s.Name, Params: toValueParams(s.Params), Body: s.Body, Captured: sc})
		}
	}

	var result *csg.Handle
	for _, stmt := range stmts {
		if e.rootFound {
			return e.rootOverride
		}
		if e.checkCancel(ctx) {
			return result
		}
		h, tag := e.evalStmt(ctx, stmt, sc)
		if h == nil {
			continue
		}
		switch tag {
		case csg.ModifierDisable:
			continue
		case csg.ModifierRoot:
			e.rootOverride = h
			e.rootFound = true
			return h
		case csg.ModifierBackground:
			continue // rendered separately by the host; excluded from the solid result (spec §4.3)
		default:
			result = e.unionAppend(result, h)
		}
	}
	return result
}

func (e *Evaluator) unionAppend(acc, h *csg.Handle) *csg.Handle {
	if acc == nil {
		return h
	}
	return e.engine.Union(acc, h)
}

// evalStmt evaluates one statement, returning any geometry it produced and
// the modifier tag (ModifierNone for an unmodified statement) that should
// govern how the caller folds it into the block's result.
func (e *Evaluator) evalStmt(ctx context.Context, stmt scad.Stmt, sc *scope.Scope) (*csg.Handle, csg.ModifierTag) {
	switch s := stmt.(type) {
	case *scad.ModifierStmt:
		h, _ := e.evalStmt(ctx, s.Child, sc)
		return h, toModifierTag(s.Kind)

	case *scad.ModuleDefStmt, *scad.FunctionDefStmt:
		return nil, csg.ModifierNone // already hoisted

	case *scad.BlockStmt:
		return e.evalBlockGeometry(ctx, s.Statements, sc.NewChild()), csg.ModifierNone

	case *scad.AssignStmt:
		sc.SetVar(s.Name, e.evalExpr(s.Value, sc))
		return nil, csg.ModifierNone

	case *scad.IfStmt:
		if value.Truthy(e.evalExpr(s.Cond, sc)) {
			return e.evalStmt(ctx, s.Then, sc)
		}
		if s.Else != nil {
			return e.evalStmt(ctx, s.Else, sc)
		}
		return nil, csg.ModifierNone

	case *scad.ForStmt:
		return e.evalFor(ctx, s, sc), csg.ModifierNone

	case *scad.LetStmt:
		child := sc.NewChild()
		for _, b := range s.Bindings {
			child.SetVar(b.Name, e.evalExpr(b.Value, child))
		}
		return e.evalStmt(ctx, s.Body, child)

	case *scad.EchoStmt:
		e.runEcho(s, sc)
		return nil, csg.ModifierNone

	case *scad.AssertStmt:
		e.runAssert(s, sc)
		return nil, csg.ModifierNone

	case *scad.ImportStmt:
		return e.runImport(ctx, s, sc), csg.ModifierNone

	case *scad.ModuleCallStmt:
		return e.callModule(ctx, s, sc), csg.ModifierNone

	default:
		return nil, csg.ModifierNone
	}
}

func (e *Evaluator) evalFor(ctx context.Context, s *scad.ForStmt, sc *scope.Scope) *csg.Handle {
	var result *csg.Handle
	var recurse func(i int, child *scope.Scope)
	recurse = func(i int, child *scope.Scope) {
		if i >= len(s.Clauses) {
			h, tag := e.evalStmt(ctx, s.Body, child)
			if h != nil && tag != csg.ModifierDisable && tag != csg.ModifierBackground {
				result = e.unionAppend(result, h)
				if tag == csg.ModifierRoot {
					e.rootOverride = h
					e.rootFound = true
				}
			}
			return
		}
		clause := s.Clauses[i]
		rangeVal := e.evalExpr(clause.Range, child)
		for _, v := range iterate(rangeVal) {
			if e.rootFound {
				return
			}
			next := child.NewChild()
			next.SetVar(clause.Var, v)
			recurse(i+1, next)
		}
	}
	recurse(0, sc)
	return result
}

// iterate expands a Range or Vector value into its sequence of elements,
// for `for` loops and list comprehensions (spec §4.3).
func iterate(v value.Value) []value.Value {
	switch t := v.(type) {
	case value.Range:
		n := t.Len()
		out := make([]value.Value, n)
		for i := 0; i < n; i++ {
			out[i] = value.Number(t.At(i))
		}
		return out
	case value.Vector:
		return t.Elements
	default:
		return nil
	}
}

func toModifierTag(k scad.ModifierKind) csg.ModifierTag {
	switch k {
	case scad.ModifierDebug:
		return csg.ModifierDebug
	case scad.ModifierBackground:
		return csg.ModifierBackground
	case scad.ModifierRoot:
		return csg.ModifierRoot
	case scad.ModifierDisable:
		return csg.ModifierDisable
	default:
		return csg.ModifierNone
	}
}

func (e *Evaluator) runEcho(s *scad.EchoStmt, sc *scope.Scope) {
	parts := make([]string, len(s.Args))
	for i, a := range s.Args {
		parts[i] = formatValue(e.evalExpr(a, sc))
	}
	msg := "ECHO: "
	for i, p := range parts {
		if i > 0 {
			msg += ", "
		}
		msg += p
	}
	e.echoes = append(e.echoes, msg)
}

func (e *Evaluator) runAssert(s *scad.AssertStmt, sc *scope.Scope) {
	if value.Truthy(e.evalExpr(s.Cond, sc)) {
		return
	}
	msg := "assertion failed"
	if s.Message != nil {
		msg = formatValue(e.evalExpr(s.Message, sc))
	}
	e.addError(logicErrorf(line(s), "logic.undefined_variable", "%s", msg))
}
