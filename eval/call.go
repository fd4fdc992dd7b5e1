package eval

import (
	"github.com/gocad/scadcore/scad"
	"github.com/gocad/scadcore/scope"
	"github.com/gocad/scadcore/value"
)

func toValueParams(params []scad.Parameter) []value.Param {
	out := make([]value.Param, len(params))
	for i, p := range params {
		out[i] = value.Param{Name: p.Name, Default: p.Default}
	}
	return out
}

// namedArg looks up a named argument, falling back to the positional slot
// at index pos if no named arg with that name was supplied. This implements
// OpenSCAD's "positional then named" argument binding (spec §4.3): named
// arguments always win regardless of position; remaining gaps are filled
// positionally in declaration order.
func namedArg(args []scad.Argument, name string, pos int) (scad.Expr, bool) {
	positional := 0
	for _, a := range args {
		if a.Name == name {
			return a.Value, true
		}
	}
	for _, a := range args {
		if a.Name != "" {
			continue
		}
		if positional == pos {
			return a.Value, true
		}
		positional++
	}
	return nil, false
}

// bindArgs evaluates args against params in the caller's scope sc, and
// returns a fresh child of defScope (the defining scope, for default-value
// closures and default-expression evaluation) with every parameter bound.
// Missing arguments use their default (evaluated in the callee's own new
// scope, so defaults may reference earlier parameters); unknown named
// arguments are silently ignored (spec §4.3).
func (e *Evaluator) bindArgs(params []value.Param, args []scad.Argument, sc, defScope *scope.Scope) *scope.Scope {
	child := defScope.NewChild()
	for i, p := range params {
		if expr, ok := namedArg(args, p.Name, i); ok {
			child.SetVar(p.Name, e.evalExpr(expr, sc))
			continue
		}
		if p.Default != nil {
			child.SetVar(p.Name, e.evalExpr(p.Default, child))
			continue
		}
		child.SetVar(p.Name, value.TheUndef)
	}
	return child
}

// evalCall evaluates a function-call expression: a user-defined `function`
// takes priority, then the builtin math/string/list function table, else
// Undef (spec §4.3 Recovered tier — unknown name never errors).
func (e *Evaluator) evalCall(x *scad.CallExpr, sc *scope.Scope) value.Value {
	if fn, ok := sc.LookupFunction(x.Name); ok {
		child := e.bindArgs(fn.Params, x.Args, sc, fn.Captured)
		return e.evalExpr(fn.Body, child)
	}

	if builtin, ok := builtinFunctions[x.Name]; ok {
		argVals := make([]value.Value, len(x.Args))
		for i, a := range x.Args {
			argVals[i] = e.evalExpr(a.Value, sc)
		}
		return builtin(argVals)
	}

	if e.plugins != nil {
		if fn, ok := e.plugins.LookupFunction(x.Name); ok {
			argVals := make([]value.Value, len(x.Args))
			for i, a := range x.Args {
				argVals[i] = e.evalExpr(a.Value, sc)
			}
			return fn(argVals)
		}
	}

	return value.TheUndef
}
