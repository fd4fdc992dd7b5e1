package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gocad/scadcore/scad"
	"github.com/gocad/scadcore/scope"
	"github.com/gocad/scadcore/value"
)

// evalExpr evaluates expr in sc, returning a Value. It never returns an
// error: malformed expressions resolve to Undef per spec §4.3's Recovered
// tier (unknown name, bad index, etc. all degrade to Undef rather than
// aborting evaluation).
func (e *Evaluator) evalExpr(expr scad.Expr, sc *scope.Scope) value.Value {
	switch x := expr.(type) {
	case *scad.NumberLit:
		return value.Number(x.Value)
	case *scad.StringLit:
		return value.String(x.Value)
	case *scad.BoolLit:
		return value.Bool(x.Value)
	case *scad.UndefLit:
		return value.TheUndef

	case *scad.Ident:
		if v, ok := sc.Lookup(x.Name); ok {
			return v
		}
		return value.TheUndef

	case *scad.SpecialVarExpr:
		if v, ok := sc.GetSpecial(x.Name); ok {
			return v
		}
		return value.TheUndef

	case *scad.VectorLit:
		elems := make([]value.Value, len(x.Elements))
		for i, el := range x.Elements {
			elems[i] = e.evalExpr(el, sc)
		}
		return value.NewVector(elems...)

	case *scad.RangeLit:
		start := asFloat(e.evalExpr(x.Start, sc))
		end := asFloat(e.evalExpr(x.End, sc))
		step := 1.0
		if x.Step != nil {
			step = asFloat(e.evalExpr(x.Step, sc))
		}
		return value.Range{Start: start, Step: step, End: end}

	case *scad.UnaryExpr:
		v := e.evalExpr(x.Operand, sc)
		switch x.Op {
		case scad.TokenBang:
			return value.Not(v)
		case scad.TokenMinus:
			return value.Neg(v)
		case scad.TokenPlus:
			return v
		default:
			return value.TheUndef
		}

	case *scad.BinaryExpr:
		return e.evalBinary(x, sc)

	case *scad.TernaryExpr:
		if value.Truthy(e.evalExpr(x.Cond, sc)) {
			return e.evalExpr(x.Then, sc)
		}
		return e.evalExpr(x.Else, sc)

	case *scad.IndexExpr:
		target := e.evalExpr(x.Target, sc)
		idx := e.evalExpr(x.Index, sc)
		return indexInto(target, idx)

	case *scad.LetExpr:
		child := sc.NewChild()
		for _, b := range x.Bindings {
			child.SetVar(b.Name, e.evalExpr(b.Value, child))
		}
		return e.evalExpr(x.Body, child)

	case *scad.ListComprehensionExpr:
		return e.evalComprehension(x, sc)

	case *scad.CallExpr:
		return e.evalCall(x, sc)

	default:
		return value.TheUndef
	}
}

func (e *Evaluator) evalBinary(x *scad.BinaryExpr, sc *scope.Scope) value.Value {
	// && and || short-circuit; every other operator evaluates both sides.
	switch x.Op {
	case scad.TokenAmpAmp:
		if !value.Truthy(e.evalExpr(x.Left, sc)) {
			return value.Bool(false)
		}
		return value.Bool(value.Truthy(e.evalExpr(x.Right, sc)))
	case scad.TokenPipePipe:
		if value.Truthy(e.evalExpr(x.Left, sc)) {
			return value.Bool(true)
		}
		return value.Bool(value.Truthy(e.evalExpr(x.Right, sc)))
	}

	l := e.evalExpr(x.Left, sc)
	r := e.evalExpr(x.Right, sc)
	switch x.Op {
	case scad.TokenPlus:
		return value.Add(l, r)
	case scad.TokenMinus:
		return value.Sub(l, r)
	case scad.TokenStar:
		return value.Mul(l, r)
	case scad.TokenSlash:
		return value.Div(l, r)
	case scad.TokenPercent:
		return value.Mod(l, r)
	case scad.TokenEqualEqual:
		return value.Equal(l, r)
	case scad.TokenBangEqual:
		return value.NotEqual(l, r)
	case scad.TokenLess:
		return value.Less(l, r)
	case scad.TokenLessEqual:
		return value.LessEqual(l, r)
	case scad.TokenGreater:
		return value.Greater(l, r)
	case scad.TokenGreaterEqual:
		return value.GreaterEqual(l, r)
	default:
		return value.TheUndef
	}
}

// indexInto implements `target[index]`: vector/string indexing by number,
// out-of-bounds yields Undef (spec §4.3 Recovered tier).
func indexInto(target, idx value.Value) value.Value {
	n, ok := idx.(value.Number)
	if !ok {
		return value.TheUndef
	}
	i := int(n)
	switch t := target.(type) {
	case value.Vector:
		if i < 0 || i >= len(t.Elements) {
			return value.TheUndef
		}
		return t.Elements[i]
	case value.String:
		if i < 0 || i >= len(t) {
			return value.TheUndef
		}
		return value.String(t[i])
	default:
		return value.TheUndef
	}
}

func (e *Evaluator) evalComprehension(x *scad.ListComprehensionExpr, sc *scope.Scope) value.Value {
	var out []value.Value
	var recurse func(i int, child *scope.Scope)
	recurse = func(i int, child *scope.Scope) {
		if i >= len(x.Clauses) {
			out = append(out, e.evalExpr(x.Result, child))
			return
		}
		clause := x.Clauses[i]
		if clause.Cond != nil {
			if value.Truthy(e.evalExpr(clause.Cond, child)) {
				recurse(i+1, child)
			}
			return
		}
		rangeVal := e.evalExpr(clause.Range, child)
		for _, v := range iterate(rangeVal) {
			next := child.NewChild()
			next.SetVar(clause.Var, v)
			recurse(i+1, next)
		}
	}
	recurse(0, sc)
	return value.NewVector(out...)
}

func asFloat(v value.Value) float64 {
	if n, ok := v.(value.Number); ok {
		return float64(n)
	}
	return 0
}

func formatValue(v value.Value) string {
	switch t := v.(type) {
	case value.Undef:
		return "undef"
	case value.Bool:
		return fmt.Sprintf("%t", bool(t))
	case value.Number:
		return strconv.FormatFloat(float64(t), 'g', -1, 64)
	case value.String:
		return string(t)
	case value.Vector:
		parts := make([]string, len(t.Elements))
		for i, el := range t.Elements {
			parts[i] = formatValue(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case value.Range:
		if t.Step == 1 || t.Step == 0 {
			return fmt.Sprintf("[%g:%g]", t.Start, t.End)
		}
		return fmt.Sprintf("[%g:%g:%g]", t.Start, t.Step, t.End)
	default:
		return "undef"
	}
}
