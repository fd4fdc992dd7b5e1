package value

import (
	"math"
	"strings"
)

// Add implements `+`: numeric and vector addition are element-wise, and `+`
// concatenates strings. Any other combination yields Undef (spec §3.1, §4.3).
func Add(a, b Value) Value {
	switch x := a.(type) {
	case Number:
		if y, ok := b.(Number); ok {
			return Number(float64(x) + float64(y))
		}
	case String:
		if y, ok := b.(String); ok {
			return String(string(x) + string(y))
		}
	case Vector:
		if y, ok := b.(Vector); ok {
			return elementwise(x, y, Add)
		}
	}
	return TheUndef
}

// Sub implements `-`.
func Sub(a, b Value) Value {
	switch x := a.(type) {
	case Number:
		if y, ok := b.(Number); ok {
			return Number(float64(x) - float64(y))
		}
	case Vector:
		if y, ok := b.(Vector); ok {
			return elementwise(x, y, Sub)
		}
	}
	return TheUndef
}

// Mul implements `*`: number*number, number*vector (and vice versa, scaling
// each element), and vector*vector (dot product) per OpenSCAD semantics.
func Mul(a, b Value) Value {
	switch x := a.(type) {
	case Number:
		switch y := b.(type) {
		case Number:
			return Number(float64(x) * float64(y))
		case Vector:
			return scale(y, float64(x))
		}
	case Vector:
		switch y := b.(type) {
		case Number:
			return scale(x, float64(y))
		case Vector:
			return dot(x, y)
		}
	}
	return TheUndef
}

// Div implements `/`: number/number and vector/number (element-wise).
func Div(a, b Value) Value {
	switch x := a.(type) {
	case Number:
		if y, ok := b.(Number); ok {
			return Number(float64(x) / float64(y))
		}
	case Vector:
		if y, ok := b.(Number); ok {
			return scale(x, 1/float64(y))
		}
	}
	return TheUndef
}

// Mod implements `%` (floating-point remainder). A zero divisor yields Undef
// rather than panicking.
func Mod(a, b Value) Value {
	x, ok1 := a.(Number)
	y, ok2 := b.(Number)
	if !ok1 || !ok2 {
		return TheUndef
	}
	if float64(y) == 0 {
		return TheUndef
	}
	return Number(math.Mod(float64(x), float64(y)))
}

// Neg implements unary `-`.
func Neg(a Value) Value {
	switch x := a.(type) {
	case Number:
		return Number(-float64(x))
	case Vector:
		out := make([]Value, len(x.Elements))
		for i, e := range x.Elements {
			out[i] = Neg(e)
		}
		return Vector{Elements: out}
	default:
		return TheUndef
	}
}

// Not implements logical `!`.
func Not(a Value) Bool {
	return Bool(!Truthy(a))
}

// Equal implements `==`: structural equality, always a Bool (never Undef),
// matching OpenSCAD's "undef == undef" being true and cross-kind
// comparisons being false rather than propagating Undef.
func Equal(a, b Value) Bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Number:
		return Bool(float64(x) == float64(b.(Number)))
	case Bool:
		return Bool(bool(x) == bool(b.(Bool)))
	case String:
		return Bool(string(x) == string(b.(String)))
	case Undef:
		return true
	case Vector:
		y := b.(Vector)
		if len(x.Elements) != len(y.Elements) {
			return false
		}
		for i := range x.Elements {
			if !Equal(x.Elements[i], y.Elements[i]) {
				return false
			}
		}
		return true
	case Range:
		y := b.(Range)
		return Bool(x == y)
	default:
		return false
	}
}

// NotEqual implements `!=`.
func NotEqual(a, b Value) Bool {
	return !Equal(a, b)
}

// compare returns a negative, zero or positive result, or ok=false if the
// operands are incomparable (in which case relational operators yield Undef).
func compare(a, b Value) (result int, ok bool) {
	switch x := a.(type) {
	case Number:
		y, isNum := b.(Number)
		if !isNum {
			return 0, false
		}
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		default:
			return 0, true
		}
	case String:
		y, isStr := b.(String)
		if !isStr {
			return 0, false
		}
		return strings.Compare(string(x), string(y)), true
	case Vector:
		y, isVec := b.(Vector)
		if !isVec {
			return 0, false
		}
		n := len(x.Elements)
		if len(y.Elements) < n {
			n = len(y.Elements)
		}
		for i := 0; i < n; i++ {
			r, ok := compare(x.Elements[i], y.Elements[i])
			if !ok {
				return 0, false
			}
			if r != 0 {
				return r, true
			}
		}
		return len(x.Elements) - len(y.Elements), true
	default:
		return 0, false
	}
}

// Less, LessEqual, Greater, GreaterEqual implement the relational operators.
// Each returns Undef when the operands are not lexicographically comparable.
func Less(a, b Value) Value          { return relational(a, b, func(r int) bool { return r < 0 }) }
func LessEqual(a, b Value) Value     { return relational(a, b, func(r int) bool { return r <= 0 }) }
func Greater(a, b Value) Value       { return relational(a, b, func(r int) bool { return r > 0 }) }
func GreaterEqual(a, b Value) Value  { return relational(a, b, func(r int) bool { return r >= 0 }) }

func relational(a, b Value, pred func(int) bool) Value {
	r, ok := compare(a, b)
	if !ok {
		return TheUndef
	}
	return Bool(pred(r))
}

func elementwise(a, b Vector, op func(Value, Value) Value) Vector {
	n := len(a.Elements)
	if len(b.Elements) < n {
		n = len(b.Elements)
	}
	out := make([]Value, n)
	for i := 0; i < n; i++ {
		out[i] = op(a.Elements[i], b.Elements[i])
	}
	return Vector{Elements: out}
}

func scale(v Vector, s float64) Vector {
	out := make([]Value, len(v.Elements))
	for i, e := range v.Elements {
		if n, ok := e.(Number); ok {
			out[i] = Number(float64(n) * s)
		} else {
			out[i] = TheUndef
		}
	}
	return Vector{Elements: out}
}

func dot(a, b Vector) Value {
	n := len(a.Elements)
	if len(b.Elements) != n {
		return TheUndef
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		x, ok1 := a.Elements[i].(Number)
		y, ok2 := b.Elements[i].(Number)
		if !ok1 || !ok2 {
			return TheUndef
		}
		sum += float64(x) * float64(y)
	}
	return Number(sum)
}

// AsFloat64s converts a Vector of Numbers to a []float64, for call sites
// (primitive constructors, transforms) that need plain coordinates. Non-
// numeric elements become 0.
func AsFloat64s(v Vector) []float64 {
	out := make([]float64, len(v.Elements))
	for i, e := range v.Elements {
		if n, ok := e.(Number); ok {
			out[i] = float64(n)
		}
	}
	return out
}
