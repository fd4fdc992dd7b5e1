package csg

import "github.com/chewxy/math32"

// plane is the half-space a BSP node splits on, in point-normal form.
type plane struct {
	Normal Vec3
	W      float32 // distance from origin along Normal
}

const epsilon = 1e-5

const (
	coplanar = 0
	front    = 1
	back     = 2
	spanning = 3
)

func sub(a, b Vec3) Vec3  { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func add(a, b Vec3) Vec3  { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func scaleVec(a Vec3, s float32) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}
func dot3(a, b Vec3) float32 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func cross(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}
func normalize(a Vec3) Vec3 {
	l := math32.Sqrt(dot3(a, a))
	if l < epsilon {
		return a
	}
	return scaleVec(a, 1/l)
}
func lerpVec(a, b Vec3, t float32) Vec3 {
	return add(a, scaleVec(sub(b, a), t))
}

func planeFromTriangle(t Triangle) plane {
	n := normalize(cross(sub(t.B, t.A), sub(t.C, t.A)))
	return plane{Normal: n, W: dot3(n, t.A)}
}

// flip reverses a triangle's winding and its plane's orientation.
func flipTriangle(t Triangle) Triangle {
	return Triangle{A: t.C, B: t.B, C: t.A}
}

// splitTriangle classifies t against p and appends the resulting coplanar,
// front and back fragments (triangulating any spanning polygon into a fan),
// following the classic BSP polygon-clip algorithm.
func splitTriangle(p plane, t Triangle, coplanarFront, coplanarBack, frontOut, backOut *[]Triangle) {
	verts := [3]Vec3{t.A, t.B, t.C}
	types := [3]int{}
	polygonType := 0

	for i, v := range verts {
		d := dot3(p.Normal, v) - p.W
		switch {
		case d < -epsilon:
			types[i] = back
		case d > epsilon:
			types[i] = front
		default:
			types[i] = coplanar
		}
		polygonType |= types[i]
	}

	switch polygonType {
	case coplanar:
		n := planeFromTriangle(t).Normal
		if dot3(n, p.Normal) > 0 {
			*coplanarFront = append(*coplanarFront, t)
		} else {
			*coplanarBack = append(*coplanarBack, t)
		}
	case front:
		*frontOut = append(*frontOut, t)
	case back:
		*backOut = append(*backOut, t)
	case spanning:
		var f, b []Vec3
		for i := 0; i < 3; i++ {
			j := (i + 1) % 3
			ti, tj := types[i], types[j]
			vi, vj := verts[i], verts[j]
			if ti != back {
				f = append(f, vi)
			}
			if ti != front {
				b = append(b, vi)
			}
			if (ti | tj) == spanning {
				t := (p.W - dot3(p.Normal, vi)) / dot3(p.Normal, sub(vj, vi))
				v := lerpVec(vi, vj, t)
				f = append(f, v)
				b = append(b, v)
			}
		}
		for i := 1; i+1 < len(f); i++ {
			*frontOut = append(*frontOut, Triangle{A: f[0], B: f[i], C: f[i+1]})
		}
		for i := 1; i+1 < len(b); i++ {
			*backOut = append(*backOut, Triangle{A: b[0], B: b[i], C: b[i+1]})
		}
	}
}

// node is one node of a BSP tree built from a triangle mesh.
type node struct {
	plane    *plane
	front    *node
	back     *node
	triangles []Triangle
}

func buildBSP(triangles []Triangle) *node {
	if len(triangles) == 0 {
		return nil
	}
	n := &node{}
	n.build(triangles)
	return n
}

func (n *node) build(triangles []Triangle) {
	if len(triangles) == 0 {
		return
	}
	if n.plane == nil {
		p := planeFromTriangle(triangles[0])
		n.plane = &p
	}
	var frontList, backList []Triangle
	for _, t := range triangles {
		splitTriangle(*n.plane, t, &n.triangles, &n.triangles, &frontList, &backList)
	}
	if len(frontList) > 0 {
		if n.front == nil {
			n.front = &node{}
		}
		n.front.build(frontList)
	}
	if len(backList) > 0 {
		if n.back == nil {
			n.back = &node{}
		}
		n.back.build(backList)
	}
}

// allTriangles collects every triangle stored in the tree.
func (n *node) allTriangles() []Triangle {
	if n == nil {
		return nil
	}
	out := append([]Triangle{}, n.triangles...)
	out = append(out, n.front.allTriangles()...)
	out = append(out, n.back.allTriangles()...)
	return out
}

// invert flips the tree in place: every plane and triangle normal reverses,
// and front/back subtrees swap. Used to turn "clip A outside B" into
// "clip A inside B" for difference and intersection.
func (n *node) invert() {
	if n == nil {
		return
	}
	for i, t := range n.triangles {
		n.triangles[i] = flipTriangle(t)
	}
	if n.plane != nil {
		n.plane.Normal = scaleVec(n.plane.Normal, -1)
		n.plane.W = -n.plane.W
	}
	n.front.invert()
	n.back.invert()
	n.front, n.back = n.back, n.front
}

// clipTriangles removes the parts of triangles that lie inside this tree's
// solid region.
func (n *node) clipTriangles(triangles []Triangle) []Triangle {
	if n == nil {
		return append([]Triangle{}, triangles...)
	}
	var f, b []Triangle
	for _, t := range triangles {
		splitTriangle(*n.plane, t, &f, &b, &f, &b)
	}
	if n.front != nil {
		f = n.front.clipTriangles(f)
	}
	if n.back != nil {
		b = n.back.clipTriangles(b)
	} else {
		b = nil
	}
	return append(f, b...)
}

// clipTo removes all triangles in n that lie inside other's solid region.
func (n *node) clipTo(other *node) {
	if n == nil {
		return
	}
	n.triangles = other.clipTriangles(n.triangles)
	n.front.clipTo(other)
	n.back.clipTo(other)
}
