package csg

import "github.com/chewxy/math32"

// LinearExtrude sweeps a 2D profile (a mesh whose triangles all lie in the
// z=0 plane, each representing a filled outline) along +Z, optionally
// twisting and scaling linearly across slices (spec §4.5 linear_extrude).
func (e *ReferenceEngine) LinearExtrude(h *Handle, height float64, twist float64, slices int, scale float64) *Handle {
	if slices < 1 {
		slices = 1
	}
	profile := outlineEdges(h.Mesh.Triangles)
	var tris []Triangle

	// Bottom and top caps (flat copies of the profile, top possibly
	// scaled/twisted).
	tris = append(tris, h.Mesh.Triangles...)
	topXform := func(v Vec3) Vec3 {
		return extrudeSlice(v, float32(height), float32(twist), float32(scale), float32(height))
	}
	for _, t := range h.Mesh.Triangles {
		top := Triangle{A: topXform(t.C), B: topXform(t.B), C: topXform(t.A)} // flip winding for the top cap
		tris = append(tris, top)
	}

	// Side walls: for each profile edge, build `slices` quads following the
	// twist/scale interpolation between z=0 and z=height.
	for _, edge := range profile {
		prevA, prevB := edge[0], edge[1]
		for i := 1; i <= slices; i++ {
			z := float32(height) * float32(i) / float32(slices)
			tw := float32(twist) * float32(i) / float32(slices)
			sc := 1 + (float32(scale)-1)*float32(i)/float32(slices)
			a := extrudeSlice(edge[0], z, tw, sc, float32(height))
			b := extrudeSlice(edge[1], z, tw, sc, float32(height))
			tris = append(tris, Triangle{A: prevA, B: prevB, C: b})
			tris = append(tris, Triangle{A: prevA, B: b, C: a})
			prevA, prevB = a, b
		}
	}

	return &Handle{Mesh: Mesh{Triangles: tris}, Meta: h.Meta}
}

func extrudeSlice(v Vec3, z, twistDeg, scale, _ float32) Vec3 {
	x, y := v.X*scale, v.Y*scale
	if twistDeg != 0 {
		a := twistDeg * 3.14159265358979 / 180
		s, c := math32.Sin(a), math32.Cos(a)
		x, y = x*c-y*s, x*s+y*c
	}
	return Vec3{x, y, z}
}

// outlineEdges returns the boundary edges of a flat 2D profile mesh (edges
// shared by exactly one triangle), in CCW order, for wall generation.
func outlineEdges(tris []Triangle) [][2]Vec3 {
	type edge struct{ a, b Vec3 }
	count := map[edge]int{}
	var order []edge
	see := func(a, b Vec3) {
		e := edge{a, b}
		if _, ok := count[e]; !ok {
			order = append(order, e)
		}
		count[e]++
	}
	for _, t := range tris {
		see(t.A, t.B)
		see(t.B, t.C)
		see(t.C, t.A)
	}
	var out [][2]Vec3
	for _, e := range order {
		rev := edge{e.b, e.a}
		if count[rev] == 0 {
			out = append(out, [2]Vec3{e.a, e.b})
		}
	}
	return out
}

// RotateExtrude revolves a 2D profile (restricted to x>=0) around the Z
// axis through `angle` degrees, in `segments` steps (spec §4.5 rotate_extrude).
func (e *ReferenceEngine) RotateExtrude(h *Handle, angle float64, segments int) *Handle {
	if segments < 3 {
		segments = 3
	}
	profile := outlineEdges(h.Mesh.Triangles)
	var tris []Triangle
	step := angle / float64(segments)
	full := angle >= 359.999

	ring := func(a float64) func(Vec3) Vec3 {
		rad := float32(a * 3.14159265358979 / 180)
		s, c := math32.Sin(rad), math32.Cos(rad)
		return func(v Vec3) Vec3 {
			return Vec3{v.X * c, v.X * s, v.Y}
		}
	}

	n := segments
	if !full {
		n = segments
	}
	for i := 0; i < n; i++ {
		a0 := step * float64(i)
		a1 := step * float64(i+1)
		if !full && i == n-1 {
			a1 = angle
		}
		x0, x1 := ring(a0), ring(a1)
		for _, edge := range profile {
			p0, p1 := x0(edge[0]), x0(edge[1])
			q0, q1 := x1(edge[0]), x1(edge[1])
			tris = append(tris, Triangle{A: p0, B: p1, C: q1})
			tris = append(tris, Triangle{A: p0, B: q1, C: q0})
		}
	}

	if !full {
		capStart := ring(0)
		capEnd := ring(angle)
		for _, t := range h.Mesh.Triangles {
			tris = append(tris, Triangle{A: capStart(t.A), B: capStart(t.B), C: capStart(t.C)})
			tris = append(tris, Triangle{A: capEnd(t.C), B: capEnd(t.B), C: capEnd(t.A)})
		}
	}

	return &Handle{Mesh: Mesh{Triangles: tris}, Meta: h.Meta}
}
