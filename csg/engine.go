package csg

import "github.com/chewxy/math32"

// Quality carries the resolved $fn/$fa/$fs values a primitive uses to decide
// how many segments to tessellate a curved surface into (spec §4.4).
type Quality struct {
	Fn float64 // if >= 3, used directly as the segment count; values below 3 are ignored
	Fa float64 // minimum angle per fragment, degrees
	Fs float64 // minimum fragment size
}

// Segments resolves the number of segments for a circle of the given radius,
// following OpenSCAD's own formula: $fn overrides when set and >= 3,
// otherwise segments are derived from whichever of $fa/$fs yields fewer of
// them, clamped to a minimum of 5.
func (q Quality) Segments(radius float64) int {
	if q.Fn >= 3 {
		return int(q.Fn)
	}
	fa := q.Fa
	if fa <= 0 {
		fa = 12
	}
	fs := q.Fs
	if fs <= 0 {
		fs = 2
	}
	byAngle := 360.0 / fa
	byLen := (2 * 3.14159265358979 * radius) / fs
	n := byAngle
	if byLen < n {
		n = byLen
	}
	n = math32.Ceil(float32(n))
	if n < 5 {
		n = 5
	}
	return int(n)
}

// Engine performs the mesh-level operations every primitive, transform and
// boolean ultimately reduces to. It is the seam the evaluator tests against
// with a mock, keeping the tree-walker itself free of triangle math.
type Engine interface {
	Translate(h *Handle, x, y, z float64) *Handle
	Rotate(h *Handle, x, y, z float64) *Handle
	Scale(h *Handle, x, y, z float64) *Handle
	Mirror(h *Handle, x, y, z float64) *Handle
	MultMatrix(h *Handle, m [16]float64) *Handle

	Union(a, b *Handle) *Handle
	Difference(a, b *Handle) *Handle
	Intersection(a, b *Handle) *Handle
	Hull(hs []*Handle) *Handle
	Minkowski(a, b *Handle) *Handle

	LinearExtrude(h *Handle, height float64, twist float64, slices int, scale float64) *Handle
	RotateExtrude(h *Handle, angle float64, segments int) *Handle
}
