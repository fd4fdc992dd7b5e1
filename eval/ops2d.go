package eval

import (
	"github.com/chewxy/math32"

	"github.com/gocad/scadcore/csg"
)

// offsetFlat grows or shrinks a flat (z=0) outline mesh by delta along each
// vertex's outward normal approximation, derived from the centroid. This is
// a polygon-offset approximation rather than a true Minkowski-with-disc
// construction (spec §4.4 offset() — no arc/miter join library exists in the
// retrieval pack, so only simple radial offset is supported).
func offsetFlat(h *csg.Handle, delta float64) *csg.Handle {
	if h == nil || delta == 0 {
		return h
	}
	var cx, cy float32
	n := 0
	for _, t := range h.Mesh.Triangles {
		for _, v := range []csg.Vec3{t.A, t.B, t.C} {
			cx += v.X
			cy += v.Y
			n++
		}
	}
	if n == 0 {
		return h
	}
	cx /= float32(n)
	cy /= float32(n)

	grow := func(v csg.Vec3) csg.Vec3 {
		dx, dy := v.X-cx, v.Y-cy
		length := math32.Sqrt(dx*dx + dy*dy)
		if length < 1e-6 {
			return v
		}
		scale := (length + float32(delta)) / length
		return csg.Vec3{X: cx + dx*scale, Y: cy + dy*scale, Z: v.Z}
	}

	out := make([]csg.Triangle, len(h.Mesh.Triangles))
	for i, t := range h.Mesh.Triangles {
		out[i] = csg.Triangle{A: grow(t.A), B: grow(t.B), C: grow(t.C)}
	}
	result := csg.NewHandle(csg.Mesh{Triangles: out})
	result.Meta = h.Meta
	result.Meta.Op = "offset"
	return result
}

// projectFlat flattens a 3D mesh onto the XY plane (spec §4.4 projection()).
// When cut is true, only geometry intersecting z=0 contributes; the
// reference engine approximates this by keeping triangles that cross or
// touch the plane rather than computing the exact cross-section polygon.
func projectFlat(h *csg.Handle, cut bool) *csg.Handle {
	if h == nil {
		return nil
	}
	var out []csg.Triangle
	for _, t := range h.Mesh.Triangles {
		if cut && !crossesZero(t) {
			continue
		}
		out = append(out, csg.Triangle{
			A: csg.Vec3{X: t.A.X, Y: t.A.Y, Z: 0},
			B: csg.Vec3{X: t.B.X, Y: t.B.Y, Z: 0},
			C: csg.Vec3{X: t.C.X, Y: t.C.Y, Z: 0},
		})
	}
	result := csg.NewHandle(csg.Mesh{Triangles: out})
	result.Meta = h.Meta
	result.Meta.Op = "projection"
	return result
}

func crossesZero(t csg.Triangle) bool {
	pos, neg := false, false
	for _, v := range []csg.Vec3{t.A, t.B, t.C} {
		if v.Z >= 0 {
			pos = true
		}
		if v.Z <= 0 {
			neg = true
		}
	}
	return pos && neg
}

// resizeMesh rescales each axis of a mesh independently so its bounding box matches the
// requested dimensions on every axis where newsize is non-zero (spec §4.4
// resize()); axes with newsize == 0 are left at their current extent.
func resizeMesh(h *csg.Handle, nx, ny, nz float64) *csg.Handle {
	if h == nil {
		return nil
	}
	min, max := csg.Bounds(h.Mesh)
	extent := csg.Vec3{X: max.X - min.X, Y: max.Y - min.Y, Z: max.Z - min.Z}
	scaleOf := func(want float64, have float32) float32 {
		if want == 0 || have < 1e-6 {
			return 1
		}
		return float32(want) / have
	}
	sx := scaleOf(nx, extent.X)
	sy := scaleOf(ny, extent.Y)
	sz := scaleOf(nz, extent.Z)

	apply := func(v csg.Vec3) csg.Vec3 {
		return csg.Vec3{X: v.X * sx, Y: v.Y * sy, Z: v.Z * sz}
	}
	out := make([]csg.Triangle, len(h.Mesh.Triangles))
	for i, t := range h.Mesh.Triangles {
		out[i] = csg.Triangle{A: apply(t.A), B: apply(t.B), C: apply(t.C)}
	}
	result := csg.NewHandle(csg.Mesh{Triangles: out})
	result.Meta = h.Meta
	result.Meta.Op = "resize"
	return result
}
