package eval

import (
	"math"

	"github.com/gocad/scadcore/value"
)

// builtinFn is a SCAD built-in function: it receives already-evaluated
// positional arguments and returns a Value, never an error (spec §4.3:
// malformed arguments degrade to Undef, matching the Recovered tier).
type builtinFn func(args []value.Value) value.Value

// builtinFunctions implements the §6.3 built-in math/string/list surface.
// All angles are in degrees, matching the rest of the language.
var builtinFunctions = map[string]builtinFn{
	"sin":   unaryDeg(math.Sin),
	"cos":   unaryDeg(math.Cos),
	"tan":   unaryDeg(math.Tan),
	"asin":  unaryDegInverse(math.Asin),
	"acos":  unaryDegInverse(math.Acos),
	"atan":  unaryDegInverse(math.Atan),
	"abs":   unary(math.Abs),
	"sqrt":  unary(math.Sqrt),
	"exp":   unary(math.Exp),
	"log":   unary(math.Log10),
	"ln":    unary(math.Log),
	"round": unary(math.Round),
	"floor": unary(math.Floor),
	"ceil":  unary(math.Ceil),

	"sign": func(args []value.Value) value.Value {
		n, ok := num(args, 0)
		if !ok {
			return value.TheUndef
		}
		switch {
		case n > 0:
			return value.Number(1)
		case n < 0:
			return value.Number(-1)
		default:
			return value.Number(0)
		}
	},
	"pow": func(args []value.Value) value.Value {
		a, ok1 := num(args, 0)
		b, ok2 := num(args, 1)
		if !ok1 || !ok2 {
			return value.TheUndef
		}
		return value.Number(math.Pow(a, b))
	},
	"atan2": func(args []value.Value) value.Value {
		a, ok1 := num(args, 0)
		b, ok2 := num(args, 1)
		if !ok1 || !ok2 {
			return value.TheUndef
		}
		return value.Number(math.Atan2(a, b) * 180 / math.Pi)
	},
	"min": func(args []value.Value) value.Value { return extremum(args, true) },
	"max": func(args []value.Value) value.Value { return extremum(args, false) },
	"len": func(args []value.Value) value.Value {
		if len(args) == 0 {
			return value.TheUndef
		}
		switch t := args[0].(type) {
		case value.Vector:
			return value.Number(len(t.Elements))
		case value.String:
			return value.Number(len(t))
		default:
			return value.TheUndef
		}
	},
	"str": func(args []value.Value) value.Value {
		out := ""
		for _, a := range args {
			out += formatValue(a)
		}
		return value.String(out)
	},
	"chr": func(args []value.Value) value.Value {
		n, ok := num(args, 0)
		if !ok {
			return value.TheUndef
		}
		return value.String(string(rune(int(n))))
	},
}

func num(args []value.Value, i int) (float64, bool) {
	if i >= len(args) {
		return 0, false
	}
	n, ok := args[i].(value.Number)
	return float64(n), ok
}

func unary(f func(float64) float64) builtinFn {
	return func(args []value.Value) value.Value {
		n, ok := num(args, 0)
		if !ok {
			return value.TheUndef
		}
		return value.Number(f(n))
	}
}

// unaryDeg wraps a radians-domain trig function to accept a degree argument.
func unaryDeg(f func(float64) float64) builtinFn {
	return func(args []value.Value) value.Value {
		n, ok := num(args, 0)
		if !ok {
			return value.TheUndef
		}
		return value.Number(f(n * math.Pi / 180))
	}
}

// unaryDegInverse wraps a radians-result inverse trig function to return degrees.
func unaryDegInverse(f func(float64) float64) builtinFn {
	return func(args []value.Value) value.Value {
		n, ok := num(args, 0)
		if !ok {
			return value.TheUndef
		}
		return value.Number(f(n) * 180 / math.Pi)
	}
}

func extremum(args []value.Value, wantMin bool) value.Value {
	var nums []float64
	for _, a := range args {
		switch t := a.(type) {
		case value.Number:
			nums = append(nums, float64(t))
		case value.Vector:
			for _, el := range t.Elements {
				if n, ok := el.(value.Number); ok {
					nums = append(nums, float64(n))
				}
			}
		}
	}
	if len(nums) == 0 {
		return value.TheUndef
	}
	best := nums[0]
	for _, n := range nums[1:] {
		if (wantMin && n < best) || (!wantMin && n > best) {
			best = n
		}
	}
	return value.Number(best)
}
