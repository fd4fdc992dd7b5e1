package primitive

import (
	"math"

	"github.com/gocad/scadcore/csg"
)

// flatten triangulates a simple (non-self-intersecting) 2D outline as a
// triangle fan from its centroid, placing every vertex at z=0. 2D shapes
// share csg.Mesh with 3D ones (spec §3.5 note: the CSG engine treats
// profiles passed to linear_extrude/rotate_extrude as flat meshes), so
// circle/square/polygon all produce a zero-thickness slab a 3D operation
// can later extrude or (harmlessly, if never extruded) render degenerate.
func flatten(outline []csg.Vec3) []csg.Triangle {
	if len(outline) < 3 {
		return nil
	}
	var cx, cy float32
	for _, p := range outline {
		cx += p.X
		cy += p.Y
	}
	n := float32(len(outline))
	centroid := csg.Vec3{X: cx / n, Y: cy / n, Z: 0}

	tris := make([]csg.Triangle, 0, len(outline))
	for i := 0; i < len(outline); i++ {
		j := (i + 1) % len(outline)
		tris = append(tris, csg.Triangle{A: centroid, B: outline[i], C: outline[j]})
	}
	return tris
}

// Circle builds a flat circular outline of the given radius (spec §4.5 circle).
func Circle(radius float64, segments int) *csg.Handle {
	if segments < 3 {
		segments = 3
	}
	pts := make([]csg.Vec3, segments)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = csg.Vec3{X: float32(radius * math.Cos(a)), Y: float32(radius * math.Sin(a))}
	}
	return csg.NewHandle(csg.Mesh{Triangles: flatten(pts)})
}

// Square builds a flat rectangle, centered at the origin if center is true
// (spec §4.5 square).
func Square(sx, sy float64, center bool) *csg.Handle {
	var x0, y0 float64
	x1, y1 := sx, sy
	if center {
		x0, y0 = -sx/2, -sy/2
		x1, y1 = sx/2, sy/2
	}
	pts := []csg.Vec3{
		{X: float32(x0), Y: float32(y0)},
		{X: float32(x1), Y: float32(y0)},
		{X: float32(x1), Y: float32(y1)},
		{X: float32(x0), Y: float32(y1)},
	}
	return csg.NewHandle(csg.Mesh{Triangles: flatten(pts)})
}

// Polygon builds a flat outline from an explicit point list, in the order
// given (spec §4.5 polygon). The `paths` parameter, when non-empty, selects
// and orders a subset of `points` per sub-path; each sub-path is filled on
// its own and the fills are combined, so a sub-path is never subtracted as a
// hole. A single implicit path uses all points in order.
func Polygon(points []csg.Vec3, paths [][]int) *csg.Handle {
	if len(paths) == 0 {
		return csg.NewHandle(csg.Mesh{Triangles: flatten(points)})
	}
	var tris []csg.Triangle
	for _, path := range paths {
		pts := make([]csg.Vec3, 0, len(path))
		for _, idx := range path {
			if idx >= 0 && idx < len(points) {
				pts = append(pts, points[idx])
			}
		}
		tris = append(tris, flatten(pts)...)
	}
	return csg.NewHandle(csg.Mesh{Triangles: tris})
}
