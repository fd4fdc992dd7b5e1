package eval

import (
	"context"

	"github.com/gocad/scadcore/csg"
	"github.com/gocad/scadcore/primitive"
	"github.com/gocad/scadcore/scad"
	"github.com/gocad/scadcore/scope"
	"github.com/gocad/scadcore/value"
)

// callModule resolves and runs a module call statement in the order spec
// §4.3 requires: user-defined modules, then builtin primitives/transforms/
// booleans, then plugin-registered extensions, then error.
func (e *Evaluator) callModule(ctx context.Context, s *scad.ModuleCallStmt, sc *scope.Scope) *csg.Handle {
	if s.Name == "children" {
		return e.callChildren(ctx, s, sc)
	}

	if def, ok := sc.LookupModule(s.Name); ok {
		return e.callUserModule(ctx, def, s, sc)
	}

	if h, handled := e.callBuiltinModule(ctx, s, sc); handled {
		return h
	}

	if e.plugins != nil {
		if ctor, ok := e.plugins.LookupPrimitive(s.Name); ok {
			return ctor(e.evalArgValues(s.Args, sc))
		}
		if xf, ok := e.plugins.LookupTransform(s.Name); ok {
			children := e.evalChildrenUnion(ctx, s, sc)
			if children == nil {
				return nil
			}
			return xf(children, e.evalArgValues(s.Args, sc))
		}
	}

	e.addError(logicErrorf(line(s), "logic.undefined_variable", "unknown module %q", s.Name))
	return nil
}

func (e *Evaluator) evalArgValues(args []scad.Argument, sc *scope.Scope) []value.Value {
	out := make([]value.Value, len(args))
	for i, a := range args {
		out[i] = e.evalExpr(a.Value, sc)
	}
	return out
}

// callUserModule establishes a fresh call scope bound from def's captured
// (lexical) scope, sets $children to the caller's child-statement count,
// records the caller's children() context, and evaluates the body.
func (e *Evaluator) callUserModule(ctx context.Context, def *scope.ModuleDef, s *scad.ModuleCallStmt, sc *scope.Scope) *csg.Handle {
	child := e.bindArgs(def.Params, s.Args, sc, def.Captured)
	child.SetSpecial("$children", value.Number(float64(len(s.Children))))
	child.SetChildren(s.Children, sc)
	return e.evalBlockGeometry(ctx, def.Body.Statements, child)
}

// callChildren evaluates children() / children(n) against the nearest
// enclosing module call's caller-scope child statements (spec §4.3).
func (e *Evaluator) callChildren(ctx context.Context, s *scad.ModuleCallStmt, sc *scope.Scope) *csg.Handle {
	children, caller, ok := sc.Children()
	if !ok {
		return nil
	}
	if len(s.Args) == 0 {
		return e.evalBlockGeometry(ctx, children, caller)
	}
	idx := int(asFloat(e.evalExpr(s.Args[0].Value, sc)))
	if idx < 0 || idx >= len(children) {
		return nil
	}
	h, _ := e.evalStmt(ctx, children[idx], caller)
	return h
}

// evalChildrenUnion evaluates a module call's own { ... } children as the
// input geometry for a builtin transform/boolean, in the caller's scope.
func (e *Evaluator) evalChildrenUnion(ctx context.Context, s *scad.ModuleCallStmt, sc *scope.Scope) *csg.Handle {
	return e.evalBlockGeometry(ctx, s.Children, sc.NewChild())
}

func (e *Evaluator) evalChildrenList(ctx context.Context, s *scad.ModuleCallStmt, sc *scope.Scope) []*csg.Handle {
	var out []*csg.Handle
	child := sc.NewChild()
	for _, stmt := range s.Children {
		if e.rootFound {
			break
		}
		h, tag := e.evalStmt(ctx, stmt, child)
		if h == nil {
			continue
		}
		switch tag {
		case csg.ModifierDisable, csg.ModifierBackground:
			continue
		case csg.ModifierRoot:
			e.rootOverride = h
			e.rootFound = true
			out = append(out, h)
		default:
			out = append(out, h)
		}
	}
	return out
}

func (e *Evaluator) quality(sc *scope.Scope) csg.Quality {
	fn, _ := sc.GetSpecial("$fn")
	fa, _ := sc.GetSpecial("$fa")
	fs, _ := sc.GetSpecial("$fs")
	return csg.Quality{Fn: asFloat(fn), Fa: asFloat(fa), Fs: asFloat(fs)}
}

// callBuiltinModule dispatches to the primitive/transform/boolean builtins
// (spec §4.4, §4.5). The returned bool reports whether the name was
// recognized at all, so callers can fall through to plugins otherwise.
func (e *Evaluator) callBuiltinModule(ctx context.Context, s *scad.ModuleCallStmt, sc *scope.Scope) (*csg.Handle, bool) {
	args := s.Args
	arg := func(name string, pos int) value.Value {
		expr, ok := namedArg(args, name, pos)
		if !ok {
			return value.TheUndef
		}
		return e.evalExpr(expr, sc)
	}
	num := func(name string, pos int, def float64) float64 {
		v := arg(name, pos)
		if n, ok := v.(value.Number); ok {
			return float64(n)
		}
		return def
	}
	boolArg := func(name string, pos int, def bool) bool {
		v := arg(name, pos)
		if b, ok := v.(value.Bool); ok {
			return bool(b)
		}
		return def
	}
	vec3 := func(v value.Value, def [3]float64) (float64, float64, float64) {
		if vv, ok := v.(value.Vector); ok {
			out := value.AsFloat64s(vv)
			x, y, z := def[0], def[1], def[2]
			if len(out) > 0 {
				x = out[0]
			}
			if len(out) > 1 {
				y = out[1]
			}
			if len(out) > 2 {
				z = out[2]
			}
			return x, y, z
		}
		if n, ok := v.(value.Number); ok {
			return float64(n), float64(n), float64(n)
		}
		return def[0], def[1], def[2]
	}

	q := e.quality(sc)

	switch s.Name {
	case "cube":
		sx, sy, sz := vec3(arg("size", 0), [3]float64{1, 1, 1})
		if sx < 0 || sy < 0 || sz < 0 {
			e.addError(logicErrorf(line(s), "logic.invalid_export_type", "cube: negative size"))
			return nil, true
		}
		return primitive.Cube(sx, sy, sz, boolArg("center", 1, false)), true

	case "sphere":
		r := num("r", 0, 1)
		if r <= 0 {
			e.addError(logicErrorf(line(s), "logic.invalid_export_type", "sphere: non-positive radius"))
			return nil, true
		}
		return primitive.Sphere(r, q.Segments(r)), true

	case "cylinder":
		h := num("h", 0, 1)
		r1, r2 := num("r1", 1, -1), num("r2", 2, -1)
		if r1 < 0 {
			r1 = num("r", 1, 1)
		}
		if r2 < 0 {
			r2 = r1
		}
		return primitive.Cylinder(h, r1, r2, q.Segments(maxf(r1, r2)), boolArg("center", 3, false)), true

	case "cone":
		h := num("h", 0, 1)
		r := num("r", 1, 1)
		return primitive.Cone(h, r, q.Segments(r), boolArg("center", 2, false)), true

	case "pyramid":
		size := num("size", 0, 1)
		sides := int(num("sides", 1, 4))
		return primitive.Pyramid(size, size/2, sides), true

	case "polyhedron":
		points := vectorArg(arg("points", 0))
		faces := indexListArg(arg("faces", 1))
		return primitive.Polyhedron(points, faces), true

	case "circle":
		r := num("r", 0, 1)
		if r <= 0 {
			e.addError(logicErrorf(line(s), "logic.invalid_export_type", "circle: non-positive radius"))
			return nil, true
		}
		return primitive.Circle(r, q.Segments(r)), true

	case "square":
		sx, sy, _ := vec3(arg("size", 0), [3]float64{1, 1, 0})
		return primitive.Square(sx, sy, boolArg("center", 1, false)), true

	case "polygon":
		points := vectorArg(arg("points", 0))
		paths := indexListArg(arg("paths", 1))
		return primitive.Polygon(points, paths), true

	case "text":
		str, _ := arg("text", 0).(value.String)
		size := num("size", 1, 10)
		return primitive.Text(string(str), size, nil, "left", "baseline"), true

	case "translate":
		x, y, z := vec3(arg("v", 0), [3]float64{0, 0, 0})
		children := e.evalChildrenUnion(ctx, s, sc)
		if children == nil {
			return nil, true
		}
		return e.engine.Translate(children, x, y, z), true

	case "rotate":
		x, y, z := vec3(arg("a", 0), [3]float64{0, 0, 0})
		children := e.evalChildrenUnion(ctx, s, sc)
		if children == nil {
			return nil, true
		}
		return e.engine.Rotate(children, x, y, z), true

	case "scale":
		x, y, z := vec3(arg("v", 0), [3]float64{1, 1, 1})
		children := e.evalChildrenUnion(ctx, s, sc)
		if children == nil {
			return nil, true
		}
		return e.engine.Scale(children, x, y, z), true

	case "mirror":
		x, y, z := vec3(arg("v", 0), [3]float64{1, 0, 0})
		children := e.evalChildrenUnion(ctx, s, sc)
		if children == nil {
			return nil, true
		}
		return e.engine.Mirror(children, x, y, z), true

	case "multmatrix":
		m := matrixArg(arg("m", 0))
		children := e.evalChildrenUnion(ctx, s, sc)
		if children == nil {
			return nil, true
		}
		return e.engine.MultMatrix(children, m), true

	case "color":
		c := colorArg(arg("c", 0), arg("alpha", 1))
		children := e.evalChildrenUnion(ctx, s, sc)
		if children == nil {
			return nil, true
		}
		return children.WithColor(c), true

	case "union":
		return e.reduceChildren(ctx, s, sc, e.engine.Union), true

	case "difference":
		list := e.evalChildrenList(ctx, s, sc)
		if len(list) == 0 {
			return nil, true
		}
		acc := list[0]
		for _, h := range list[1:] {
			acc = e.engine.Difference(acc, h)
		}
		return acc, true

	case "intersection":
		return e.reduceChildren(ctx, s, sc, e.engine.Intersection), true

	case "hull":
		list := e.evalChildrenList(ctx, s, sc)
		if len(list) == 0 {
			return nil, true
		}
		return e.engine.Hull(list), true

	case "minkowski":
		list := e.evalChildrenList(ctx, s, sc)
		if len(list) < 2 {
			if len(list) == 1 {
				return list[0], true
			}
			return nil, true
		}
		acc := list[0]
		for _, h := range list[1:] {
			acc = e.engine.Minkowski(acc, h)
		}
		return acc, true

	case "linear_extrude":
		height := num("height", 0, 1)
		twist := num("twist", 1, 0)
		sliceCount := int(num("slices", 2, 1))
		scl := num("scale", 3, 1)
		children := e.evalChildrenUnion(ctx, s, sc)
		if children == nil {
			return nil, true
		}
		if sliceCount < 1 {
			sliceCount = maxInt(1, int(twist/5)+1)
		}
		return e.engine.LinearExtrude(children, height, twist, sliceCount, scl), true

	case "rotate_extrude":
		angle := num("angle", 0, 360)
		children := e.evalChildrenUnion(ctx, s, sc)
		if children == nil {
			return nil, true
		}
		return e.engine.RotateExtrude(children, angle, q.Segments(1)), true

	case "offset":
		delta := num("delta", 0, 0)
		children := e.evalChildrenUnion(ctx, s, sc)
		if children == nil {
			return nil, true
		}
		return offsetFlat(children, delta), true

	case "projection":
		cut := boolArg("cut", 0, false)
		children := e.evalChildrenUnion(ctx, s, sc)
		if children == nil {
			return nil, true
		}
		return projectFlat(children, cut), true

	case "resize":
		nx, ny, nz := vec3(arg("newsize", 0), [3]float64{0, 0, 0})
		children := e.evalChildrenUnion(ctx, s, sc)
		if children == nil {
			return nil, true
		}
		return resizeMesh(children, nx, ny, nz), true

	default:
		return nil, false
	}
}

func (e *Evaluator) reduceChildren(ctx context.Context, s *scad.ModuleCallStmt, sc *scope.Scope, op func(a, b *csg.Handle) *csg.Handle) *csg.Handle {
	list := e.evalChildrenList(ctx, s, sc)
	if len(list) == 0 {
		return nil
	}
	acc := list[0]
	for _, h := range list[1:] {
		acc = op(acc, h)
	}
	return acc
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func vectorArg(v value.Value) []csg.Vec3 {
	vec, ok := v.(value.Vector)
	if !ok {
		return nil
	}
	out := make([]csg.Vec3, 0, len(vec.Elements))
	for _, el := range vec.Elements {
		p, ok := el.(value.Vector)
		if !ok {
			continue
		}
		coords := value.AsFloat64s(p)
		var x, y, z float64
		if len(coords) > 0 {
			x = coords[0]
		}
		if len(coords) > 1 {
			y = coords[1]
		}
		if len(coords) > 2 {
			z = coords[2]
		}
		out = append(out, csg.Vec3{X: float32(x), Y: float32(y), Z: float32(z)})
	}
	return out
}

func indexListArg(v value.Value) [][]int {
	vec, ok := v.(value.Vector)
	if !ok {
		return nil
	}
	out := make([][]int, 0, len(vec.Elements))
	for _, el := range vec.Elements {
		face, ok := el.(value.Vector)
		if !ok {
			continue
		}
		idxs := make([]int, 0, len(face.Elements))
		for _, n := range face.Elements {
			if num, ok := n.(value.Number); ok {
				idxs = append(idxs, int(num))
			}
		}
		out = append(out, idxs)
	}
	return out
}

func matrixArg(v value.Value) [16]float64 {
	m := [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	rows, ok := v.(value.Vector)
	if !ok {
		return m
	}
	for r := 0; r < len(rows.Elements) && r < 4; r++ {
		row, ok := rows.Elements[r].(value.Vector)
		if !ok {
			continue
		}
		vals := value.AsFloat64s(row)
		for c := 0; c < len(vals) && c < 4; c++ {
			m[r*4+c] = vals[c]
		}
	}
	return m
}

func colorArg(c, alpha value.Value) csg.Color {
	switch t := c.(type) {
	case value.String:
		col := csg.ParseColorName(string(t))
		if a, ok := alpha.(value.Number); ok {
			col.A = float64(a)
		}
		return col
	case value.Vector:
		vals := value.AsFloat64s(t)
		col := csg.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}
		if len(vals) > 0 {
			col.R = vals[0]
		}
		if len(vals) > 1 {
			col.G = vals[1]
		}
		if len(vals) > 2 {
			col.B = vals[2]
		}
		if len(vals) > 3 {
			col.A = vals[3]
		}
		return col
	default:
		return csg.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}
	}
}
