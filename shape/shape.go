// Package shape implements the Shape DSL (spec §4.6): an immutable,
// chainable builder covering the same constructive-modeling surface as the
// OpenSCAD evaluator, lowering directly to the csg.Engine adapter with no
// parser path of its own. Shape depends only on csg, primitive, geometry,
// plugin, config (a leaf package, for the module import allow-list) and
// value (plugin arguments) — never on eval or scad directly (spec §0's
// module-layout rule) — so the DSL and the
// SCAD front end share the CSG adapter and geometry serializer without
// sharing any scope/AST state.
package shape

import (
	"errors"
	"fmt"

	"github.com/gocad/scadcore/config"
	"github.com/gocad/scadcore/csg"
	"github.com/gocad/scadcore/geometry"
	"github.com/gocad/scadcore/plugin"
	"github.com/gocad/scadcore/primitive"
	"github.com/gocad/scadcore/value"
)

// Shape is a small, copy-by-value wrapper around a shared engine handle
// (spec §9 "Immutability in the DSL"): every method returns a new Shape: the
// underlying *csg.Handle is never mutated, only replaced.
type Shape struct {
	handle *csg.Handle
}

// Builder carries the engine, plugin registry, and import allow-list every
// Shape method needs, so Shape itself stays a plain value type with no
// embedded dependencies. Construct one Builder per evaluation/session and
// use its static constructors instead of package-level functions.
type Builder struct {
	Engine  csg.Engine
	Plugins *plugin.Registry
	Config  *config.Config
}

// NewBuilder returns a Builder over the given engine (csg.NewReferenceEngine
// if the caller has no alternative), an optional plugin registry, and the
// config whose ModuleAllowList gates FromPlugin/ApplyPlugin (spec §6.7: the
// allow-list is fixed at evaluator construction). A nil cfg allows nothing,
// matching config.Default's "empty allow-list means nothing importable".
func NewBuilder(engine csg.Engine, plugins *plugin.Registry, cfg *config.Config) *Builder {
	return &Builder{Engine: engine, Plugins: plugins, Config: cfg}
}

// ErrForbiddenImport is returned by ApplyPlugin/FromPlugin when name is not
// on the Builder's configured module allow-list (spec §6.7/§7's
// logic.forbidden_import). shape has no dependency on rpc (spec §0's
// module-layout rule runs the other way), so it cannot return an
// rpc.EnhancedError directly; callers that need the wire error code check
// errors.Is(err, ErrForbiddenImport) and translate it themselves.
var ErrForbiddenImport = errors.New("shape: module not on allow-list")

// allows reports whether name may be loaded as a plugin primitive/transform.
func (b *Builder) allows(name string) bool {
	return b.Config != nil && b.Config.AllowsModule(name)
}

func wrap(h *csg.Handle) Shape { return Shape{handle: h} }

// IsEmpty reports whether this Shape holds no geometry (e.g. the result of
// an invalid primitive call).
func (s Shape) IsEmpty() bool { return s.handle == nil }

// Handle exposes the underlying engine handle for callers (e.g. rpc) that
// need to serialize it; the Shape DSL itself never needs to inspect it.
func (s Shape) Handle() *csg.Handle { return s.handle }

// --- static constructors (spec §4.6, mirroring §4.5) ---

func (b *Builder) Cube(sx, sy, sz float64, center bool) Shape {
	return wrap(primitive.Cube(sx, sy, sz, center))
}

func (b *Builder) Sphere(radius float64, segments int) Shape {
	return wrap(primitive.Sphere(radius, segments))
}

func (b *Builder) Cylinder(height, r1, r2 float64, segments int, center bool) Shape {
	return wrap(primitive.Cylinder(height, r1, r2, segments, center))
}

func (b *Builder) Cone(height, r float64, segments int, center bool) Shape {
	return wrap(primitive.Cone(height, r, segments, center))
}

func (b *Builder) Pyramid(height, baseRadius float64, sides int) Shape {
	return wrap(primitive.Pyramid(height, baseRadius, sides))
}

func (b *Builder) Polyhedron(points []csg.Vec3, faces [][]int) Shape {
	return wrap(primitive.Polyhedron(points, faces))
}

func (b *Builder) Circle(radius float64, segments int) Shape {
	return wrap(primitive.Circle(radius, segments))
}

func (b *Builder) Square(sx, sy float64, center bool) Shape {
	return wrap(primitive.Square(sx, sy, center))
}

func (b *Builder) Polygon(points []csg.Vec3, paths [][]int) Shape {
	return wrap(primitive.Polygon(points, paths))
}

func (b *Builder) Text(s string, size float64, face *primitive.FontFace, halign, valign string) Shape {
	return wrap(primitive.Text(s, size, face, halign, valign))
}

// --- instance transforms (spec §4.6) ---

func (b *Builder) Translate(s Shape, x, y, z float64) Shape {
	if s.IsEmpty() {
		return s
	}
	return wrap(b.Engine.Translate(s.handle, x, y, z))
}

func (b *Builder) Rotate(s Shape, x, y, z float64) Shape {
	if s.IsEmpty() {
		return s
	}
	return wrap(b.Engine.Rotate(s.handle, x, y, z))
}

func (b *Builder) Scale(s Shape, x, y, z float64) Shape {
	if s.IsEmpty() {
		return s
	}
	return wrap(b.Engine.Scale(s.handle, x, y, z))
}

func (b *Builder) Mirror(s Shape, x, y, z float64) Shape {
	if s.IsEmpty() {
		return s
	}
	return wrap(b.Engine.Mirror(s.handle, x, y, z))
}

func (b *Builder) MultMatrix(s Shape, m [16]float64) Shape {
	if s.IsEmpty() {
		return s
	}
	return wrap(b.Engine.MultMatrix(s.handle, m))
}

func (b *Builder) Color(s Shape, c csg.Color) Shape {
	if s.IsEmpty() {
		return s
	}
	return wrap(s.handle.WithColor(c))
}

// --- instance CSG (spec §4.6 names these union/subtract/intersect) ---

func (b *Builder) Union(s Shape, others ...Shape) Shape {
	acc := s.handle
	for _, o := range others {
		if o.IsEmpty() {
			continue
		}
		if acc == nil {
			acc = o.handle
			continue
		}
		acc = b.Engine.Union(acc, o.handle)
	}
	return wrap(acc)
}

// Subtract implements difference, left-associative over others (spec §4.4:
// diff(a, b1, b2) = (a - b1) - b2).
func (b *Builder) Subtract(s Shape, others ...Shape) Shape {
	acc := s.handle
	for _, o := range others {
		if acc == nil || o.IsEmpty() {
			continue
		}
		acc = b.Engine.Difference(acc, o.handle)
	}
	return wrap(acc)
}

func (b *Builder) Intersect(s Shape, others ...Shape) Shape {
	acc := s.handle
	for _, o := range others {
		if o.IsEmpty() || acc == nil {
			return wrap(nil)
		}
		acc = b.Engine.Intersection(acc, o.handle)
	}
	return wrap(acc)
}

func (b *Builder) Hull(shapes ...Shape) Shape {
	var handles []*csg.Handle
	for _, s := range shapes {
		if !s.IsEmpty() {
			handles = append(handles, s.handle)
		}
	}
	if len(handles) == 0 {
		return wrap(nil)
	}
	return wrap(b.Engine.Hull(handles))
}

func (b *Builder) Minkowski(s Shape, others ...Shape) Shape {
	acc := s.handle
	for _, o := range others {
		if acc == nil || o.IsEmpty() {
			continue
		}
		acc = b.Engine.Minkowski(acc, o.handle)
	}
	return wrap(acc)
}

// --- 2D/3D ops (spec §4.6) ---

func (b *Builder) LinearExtrude(s Shape, height, twist float64, slices int, scale float64) Shape {
	if s.IsEmpty() {
		return s
	}
	return wrap(b.Engine.LinearExtrude(s.handle, height, twist, slices, scale))
}

func (b *Builder) RotateExtrude(s Shape, angle float64, segments int) Shape {
	if s.IsEmpty() {
		return s
	}
	return wrap(b.Engine.RotateExtrude(s.handle, angle, segments))
}

// --- inspection (spec §4.6) ---

func (s Shape) Bounds() (min, max csg.Vec3) {
	if s.IsEmpty() {
		return csg.Vec3{}, csg.Vec3{}
	}
	return csg.Bounds(s.handle.Mesh)
}

func (s Shape) Volume() float64 {
	if s.IsEmpty() {
		return 0
	}
	return csg.Volume(s.handle.Mesh)
}

func (s Shape) SurfaceArea() float64 {
	if s.IsEmpty() {
		return 0
	}
	return csg.SurfaceArea(s.handle.Mesh)
}

func (s Shape) Geometry() *geometry.Geometry {
	return geometry.FromHandle(s.handle)
}

// --- plugin integration (spec §4.6.1/§4.7.1: registry lookup, no
// prototype mutation, no reflection-based dispatch) ---

// ApplyPlugin runs a registered plugin transform on this shape. name must be
// on the Builder's module allow-list (spec §6.7); the registry is consulted
// only after that check passes, so a registered-but-disallowed plugin is
// still rejected.
func (b *Builder) ApplyPlugin(s Shape, name string, args ...value.Value) (Shape, error) {
	if !b.allows(name) {
		return Shape{}, fmt.Errorf("%w: %q", ErrForbiddenImport, name)
	}
	if b.Plugins == nil {
		return Shape{}, fmt.Errorf("shape: no plugin registry configured")
	}
	fn, ok := b.Plugins.LookupTransform(name)
	if !ok {
		return Shape{}, fmt.Errorf("shape: no plugin transform registered as %q", name)
	}
	return wrap(fn(s.handle, args)), nil
}

// FromPlugin runs a registered plugin primitive constructor, subject to the
// same allow-list gate as ApplyPlugin.
func (b *Builder) FromPlugin(name string, args ...value.Value) (Shape, error) {
	if !b.allows(name) {
		return Shape{}, fmt.Errorf("%w: %q", ErrForbiddenImport, name)
	}
	if b.Plugins == nil {
		return Shape{}, fmt.Errorf("shape: no plugin registry configured")
	}
	fn, ok := b.Plugins.LookupPrimitive(name)
	if !ok {
		return Shape{}, fmt.Errorf("shape: no plugin primitive registered as %q", name)
	}
	return wrap(fn(args)), nil
}
