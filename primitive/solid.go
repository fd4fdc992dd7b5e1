// Package primitive builds the base meshes for OpenSCAD's built-in shapes
// (spec §4.5): 3D solids, 2D outlines (flat, zero-thickness triangle fans at
// z=0 so they share the csg.Mesh representation), and the advanced text()/surface()
// forms.
package primitive

import (
	"math"

	"github.com/gocad/scadcore/csg"
)

// Cube builds an axis-aligned box of the given size, centered at the origin
// if center is true, otherwise with one corner at the origin (spec §4.5).
func Cube(sx, sy, sz float64, center bool) *csg.Handle {
	var x0, y0, z0 float64
	x1, y1, z1 := sx, sy, sz
	if center {
		x0, y0, z0 = -sx/2, -sy/2, -sz/2
		x1, y1, z1 = sx/2, sy/2, sz/2
	}
	v := func(x, y, z float64) csg.Vec3 { return csg.Vec3{X: float32(x), Y: float32(y), Z: float32(z)} }

	corners := [8]csg.Vec3{
		v(x0, y0, z0), v(x1, y0, z0), v(x1, y1, z0), v(x0, y1, z0),
		v(x0, y0, z1), v(x1, y0, z1), v(x1, y1, z1), v(x0, y1, z1),
	}
	faces := [6][4]int{
		{0, 3, 2, 1}, // bottom (-z)
		{4, 5, 6, 7}, // top (+z)
		{0, 1, 5, 4}, // -y
		{1, 2, 6, 5}, // +x
		{2, 3, 7, 6}, // +y
		{3, 0, 4, 7}, // -x
	}
	return csg.NewHandle(csg.Mesh{Triangles: quadsToTriangles(corners[:], faces[:])})
}

func quadsToTriangles(verts []csg.Vec3, quads [][4]int) []csg.Triangle {
	out := make([]csg.Triangle, 0, len(quads)*2)
	for _, q := range quads {
		a, b, c, d := verts[q[0]], verts[q[1]], verts[q[2]], verts[q[3]]
		out = append(out, csg.Triangle{A: a, B: b, C: c}, csg.Triangle{A: a, B: c, C: d})
	}
	return out
}

// Sphere builds a UV sphere of the given radius, tessellated into
// `segments` longitude divisions (spec §4.5, $fn/$fa/$fs resolved by the
// caller via csg.Quality).
func Sphere(radius float64, segments int) *csg.Handle {
	if segments < 3 {
		segments = 3
	}
	lat := segments / 2
	if lat < 2 {
		lat = 2
	}
	lon := segments

	pt := func(theta, phi float64) csg.Vec3 {
		x := radius * math.Sin(theta) * math.Cos(phi)
		y := radius * math.Sin(theta) * math.Sin(phi)
		z := radius * math.Cos(theta)
		return csg.Vec3{X: float32(x), Y: float32(y), Z: float32(z)}
	}

	var tris []csg.Triangle
	for i := 0; i < lat; i++ {
		theta0 := math.Pi * float64(i) / float64(lat)
		theta1 := math.Pi * float64(i+1) / float64(lat)
		for j := 0; j < lon; j++ {
			phi0 := 2 * math.Pi * float64(j) / float64(lon)
			phi1 := 2 * math.Pi * float64(j+1) / float64(lon)
			p00 := pt(theta0, phi0)
			p01 := pt(theta0, phi1)
			p10 := pt(theta1, phi0)
			p11 := pt(theta1, phi1)
			if i > 0 {
				tris = append(tris, csg.Triangle{A: p00, B: p10, C: p11})
			}
			if i < lat-1 {
				tris = append(tris, csg.Triangle{A: p00, B: p11, C: p01})
			}
		}
	}
	return csg.NewHandle(csg.Mesh{Triangles: tris})
}

// Cylinder builds a (possibly truncated, r1 != r2) cylinder of the given
// height, centered on Z at the origin if center is true, else resting on
// z=0. r1 is the bottom radius, r2 the top; Cone and Pyramid are both
// expressed in terms of this (spec §4.5 cylinder).
func Cylinder(height, r1, r2 float64, segments int, center bool) *csg.Handle {
	if segments < 3 {
		segments = 3
	}
	z0, z1 := 0.0, height
	if center {
		z0, z1 = -height/2, height/2
	}

	ring := func(r, z float64) []csg.Vec3 {
		out := make([]csg.Vec3, segments)
		for i := 0; i < segments; i++ {
			a := 2 * math.Pi * float64(i) / float64(segments)
			out[i] = csg.Vec3{X: float32(r * math.Cos(a)), Y: float32(r * math.Sin(a)), Z: float32(z)}
		}
		return out
	}
	bottom := ring(r1, z0)
	top := ring(r2, z1)

	var tris []csg.Triangle
	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		if r1 > 0 {
			tris = append(tris, csg.Triangle{A: bottom[i], B: bottom[j], C: top[j]})
		}
		if r2 > 0 {
			tris = append(tris, csg.Triangle{A: bottom[i], B: top[j], C: top[i]})
		}
	}
	centerBottom := csg.Vec3{X: 0, Y: 0, Z: float32(z0)}
	centerTop := csg.Vec3{X: 0, Y: 0, Z: float32(z1)}
	if r1 > 0 {
		for i := 0; i < segments; i++ {
			j := (i + 1) % segments
			tris = append(tris, csg.Triangle{A: centerBottom, B: bottom[j], C: bottom[i]})
		}
	}
	if r2 > 0 {
		for i := 0; i < segments; i++ {
			j := (i + 1) % segments
			tris = append(tris, csg.Triangle{A: centerTop, B: top[i], C: top[j]})
		}
	}
	return csg.NewHandle(csg.Mesh{Triangles: tris})
}

// Cone is sugar for Cylinder with a zero top radius (spec supplement: real
// OpenSCAD has no separate cone() primitive, but the original_source
// tutorial examples define one as cylinder(h, r1, 0); kept as a named
// convenience builtin).
func Cone(height, r float64, segments int, center bool) *csg.Handle {
	return Cylinder(height, r, 0, segments, center)
}

// Pyramid builds an n-gon based pyramid: an n-sided base tapering to a
// single apex (a cone with explicit low segment counts is visually a
// pyramid, but this variant keeps a flat base rather than a tessellated
// one, matching original_source's distinct pyramid() helper).
func Pyramid(height, baseRadius float64, sides int) *csg.Handle {
	if sides < 3 {
		sides = 3
	}
	return Cylinder(height, baseRadius, 0, sides, false)
}

// Polyhedron builds an explicit mesh from a point list and per-face vertex
// index lists, each face triangulated as a fan (spec §4.5 polyhedron).
func Polyhedron(points []csg.Vec3, faces [][]int) *csg.Handle {
	var tris []csg.Triangle
	for _, f := range faces {
		if len(f) < 3 {
			continue
		}
		for i := 1; i+1 < len(f); i++ {
			a, b, c := f[0], f[i], f[i+1]
			if a < 0 || a >= len(points) || b < 0 || b >= len(points) || c < 0 || c >= len(points) {
				continue
			}
			tris = append(tris, csg.Triangle{A: points[a], B: points[b], C: points[c]})
		}
	}
	return csg.NewHandle(csg.Mesh{Triangles: tris})
}
