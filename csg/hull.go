package csg

// convexHull computes the 3D convex hull of points using an incremental
// algorithm: start from a seed tetrahedron, then repeatedly fold in any
// remaining point that lies outside the current hull, removing the faces it
// sees and re-triangulating the resulting hole (the standard incremental
// hull construction).
func convexHull(points []Vec3) []Triangle {
	points = dedupe(points)
	if len(points) < 4 {
		return trivialHull(points)
	}

	seed, rest := seedTetrahedron(points)
	if seed == nil {
		return trivialHull(points)
	}
	faces := seed

	for _, p := range rest {
		var visible []Triangle
		var kept []Triangle
		for _, f := range faces {
			if isAbovePlane(f, p) {
				visible = append(visible, f)
			} else {
				kept = append(kept, f)
			}
		}
		if len(visible) == 0 {
			continue // p is inside the current hull
		}
		horizon := boundaryEdges(visible)
		for _, e := range horizon {
			kept = append(kept, Triangle{A: e[0], B: e[1], C: p})
		}
		faces = kept
	}
	return faces
}

func dedupe(points []Vec3) []Vec3 {
	var out []Vec3
	for _, p := range points {
		dup := false
		for _, q := range out {
			if sub(p, q) == (Vec3{}) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

// trivialHull handles degenerate point sets (fewer than 4 points, or points
// that are coplanar) by returning a minimal closed shell.
func trivialHull(points []Vec3) []Triangle {
	switch len(points) {
	case 0, 1, 2:
		return nil
	case 3:
		return []Triangle{{A: points[0], B: points[1], C: points[2]}}
	default:
		var tris []Triangle
		for i := 1; i+1 < len(points); i++ {
			tris = append(tris, Triangle{A: points[0], B: points[i], C: points[i+1]})
		}
		return tris
	}
}

// seedTetrahedron picks four non-coplanar points to start the hull from and
// returns its four outward-facing faces, plus the remaining points.
func seedTetrahedron(points []Vec3) ([]Triangle, []Vec3) {
	if len(points) < 4 {
		return nil, nil
	}
	a, b, c := points[0], points[1], points[2]
	var d Vec3
	found := false
	idx := -1
	for i := 3; i < len(points); i++ {
		n := cross(sub(b, a), sub(c, a))
		if abs32(dot3(n, sub(points[i], a))) > epsilon {
			d = points[i]
			idx = i
			found = true
			break
		}
	}
	if !found {
		return nil, nil
	}
	centroid := scaleVec(add(add(a, b), add(c, d)), 0.25)
	faces := []Triangle{
		orient(a, b, c, centroid),
		orient(a, b, d, centroid),
		orient(a, c, d, centroid),
		orient(b, c, d, centroid),
	}
	rest := make([]Vec3, 0, len(points)-4)
	for i, p := range points {
		if i == 0 || i == 1 || i == 2 || i == idx {
			continue
		}
		rest = append(rest, p)
	}
	return faces, rest
}

// orient returns the triangle a,b,c wound so its outward normal points away
// from inside.
func orient(a, b, c, inside Vec3) Triangle {
	n := cross(sub(b, a), sub(c, a))
	if dot3(n, sub(inside, a)) > 0 {
		return Triangle{A: a, C: b, B: c}
	}
	return Triangle{A: a, B: b, C: c}
}

func isAbovePlane(t Triangle, p Vec3) bool {
	n := cross(sub(t.B, t.A), sub(t.C, t.A))
	return dot3(n, sub(p, t.A)) > epsilon
}

// boundaryEdges returns the edges of the visible-face set that border the
// rest of the hull (appear exactly once among the visible faces).
func boundaryEdges(visible []Triangle) [][2]Vec3 {
	type edge struct{ a, b Vec3 }
	count := map[edge]int{}
	order := []edge{}
	add := func(a, b Vec3) {
		e := edge{a, b}
		if _, ok := count[e]; !ok {
			order = append(order, e)
		}
		count[e]++
	}
	for _, f := range visible {
		add(f.A, f.B)
		add(f.B, f.C)
		add(f.C, f.A)
	}
	var out [][2]Vec3
	for _, e := range order {
		rev := edge{e.b, e.a}
		if count[e] == 1 && count[rev] == 0 {
			out = append(out, [2]Vec3{e.a, e.b})
		}
	}
	return out
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
