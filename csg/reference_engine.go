package csg

import "github.com/chewxy/math32"

// ReferenceEngine implements Engine with a BSP-tree triangle-mesh boolean
// algorithm (bsp.go) and straightforward affine transforms. It is the
// default production Engine; any future native manifold binding would
// satisfy the same interface without the evaluator or Shape DSL changing.
type ReferenceEngine struct{}

// NewReferenceEngine constructs the default Engine.
func NewReferenceEngine() *ReferenceEngine { return &ReferenceEngine{} }

func transformMesh(h *Handle, f func(Vec3) Vec3) *Handle {
	out := make([]Triangle, len(h.Mesh.Triangles))
	for i, t := range h.Mesh.Triangles {
		out[i] = Triangle{A: f(t.A), B: f(t.B), C: f(t.C)}
	}
	meta := h.Meta
	return &Handle{Mesh: Mesh{Triangles: out}, Meta: meta}
}

func (e *ReferenceEngine) Translate(h *Handle, x, y, z float64) *Handle {
	dx, dy, dz := float32(x), float32(y), float32(z)
	return transformMesh(h, func(v Vec3) Vec3 {
		return Vec3{v.X + dx, v.Y + dy, v.Z + dz}
	})
}

func (e *ReferenceEngine) Rotate(h *Handle, x, y, z float64) *Handle {
	rx, ry, rz := deg2rad(x), deg2rad(y), deg2rad(z)
	return transformMesh(h, func(v Vec3) Vec3 {
		v = rotateX(v, rx)
		v = rotateY(v, ry)
		v = rotateZ(v, rz)
		return v
	})
}

func (e *ReferenceEngine) Scale(h *Handle, x, y, z float64) *Handle {
	sx, sy, sz := float32(x), float32(y), float32(z)
	return transformMesh(h, func(v Vec3) Vec3 {
		return Vec3{v.X * sx, v.Y * sy, v.Z * sz}
	})
}

func (e *ReferenceEngine) Mirror(h *Handle, x, y, z float64) *Handle {
	n := normalize(Vec3{float32(x), float32(y), float32(z)})
	return transformMesh(h, func(v Vec3) Vec3 {
		d := 2 * dot3(v, n)
		return sub(v, scaleVec(n, d))
	})
}

func (e *ReferenceEngine) MultMatrix(h *Handle, m [16]float64) *Handle {
	return transformMesh(h, func(v Vec3) Vec3 {
		x, y, z := float64(v.X), float64(v.Y), float64(v.Z)
		nx := m[0]*x + m[1]*y + m[2]*z + m[3]
		ny := m[4]*x + m[5]*y + m[6]*z + m[7]
		nz := m[8]*x + m[9]*y + m[10]*z + m[11]
		return Vec3{float32(nx), float32(ny), float32(nz)}
	})
}

func deg2rad(d float64) float32 { return float32(d * 3.14159265358979 / 180) }

func rotateX(v Vec3, a float32) Vec3 {
	s, c := math32.Sin(a), math32.Cos(a)
	return Vec3{v.X, v.Y*c - v.Z*s, v.Y*s + v.Z*c}
}
func rotateY(v Vec3, a float32) Vec3 {
	s, c := math32.Sin(a), math32.Cos(a)
	return Vec3{v.X*c + v.Z*s, v.Y, -v.X*s + v.Z*c}
}
func rotateZ(v Vec3, a float32) Vec3 {
	s, c := math32.Sin(a), math32.Cos(a)
	return Vec3{v.X*c - v.Y*s, v.X*s + v.Y*c, v.Z}
}

// boolOp runs the classic BSP clip-and-merge algorithm: optionally invert
// either operand, union the two (clip each mesh against the other's tree,
// dropping coplanar duplicates from b), then optionally invert the result.
// Difference and intersection are unions of inverted operands by De Morgan.
func boolOp(a, b *Handle, invertA, invertB, invertResult bool) *Handle {
	treeA := buildBSP(append([]Triangle{}, a.Mesh.Triangles...))
	treeB := buildBSP(append([]Triangle{}, b.Mesh.Triangles...))

	if invertA {
		treeA.invert()
	}
	if invertB {
		treeB.invert()
	}
	treeA.clipTo(treeB)
	treeB.clipTo(treeA)
	treeB.invert()
	treeB.clipTo(treeA)
	treeB.invert()

	combined := append(treeA.allTriangles(), treeB.allTriangles()...)
	result := buildBSP(combined)
	if invertResult {
		result.invert()
	}
	return &Handle{Mesh: Mesh{Triangles: result.allTriangles()}}
}

func (e *ReferenceEngine) Union(a, b *Handle) *Handle {
	h := boolOp(a, b, false, false, false)
	h.Meta = mergeMeta(a.Meta, b.Meta, "union")
	return h
}

func (e *ReferenceEngine) Difference(a, b *Handle) *Handle {
	// a - b: keep a outside b, discard b's interior, flip b's remainder
	// to face outward (spec §4.4: left-associative, a - b - c - ...).
	h := boolOp(a, b, true, false, true)
	h.Meta = mergeMeta(a.Meta, b.Meta, "difference")
	return h
}

func (e *ReferenceEngine) Intersection(a, b *Handle) *Handle {
	h := boolOp(a, b, true, true, true)
	h.Meta = mergeMeta(a.Meta, b.Meta, "intersection")
	return h
}

// Hull computes the convex hull of every input vertex with the incremental
// convexHull routine (hull.go); the resulting mesh is a convex closed
// surface enclosing every input vertex.
func (e *ReferenceEngine) Hull(hs []*Handle) *Handle {
	var points []Vec3
	for _, h := range hs {
		for _, t := range h.Mesh.Triangles {
			points = append(points, t.A, t.B, t.C)
		}
	}
	tris := convexHull(points)
	meta := Metadata{Op: "hull"}
	if len(hs) > 0 {
		meta.Seq = hs[0].Meta.Seq
		meta.debugID = hs[0].Meta.debugID
	}
	return &Handle{Mesh: Mesh{Triangles: tris}, Meta: meta}
}

// Minkowski is approximated as the convex hull of the Minkowski sum of the
// two point clouds (exact for convex operands, a reasonable approximation
// otherwise — a full Minkowski sum needs a dedicated decomposition the
// retrieval pack has no library for).
func (e *ReferenceEngine) Minkowski(a, b *Handle) *Handle {
	var pa, pb []Vec3
	for _, t := range a.Mesh.Triangles {
		pa = append(pa, t.A, t.B, t.C)
	}
	for _, t := range b.Mesh.Triangles {
		pb = append(pb, t.A, t.B, t.C)
	}
	var sum []Vec3
	for _, p := range pa {
		for _, q := range pb {
			sum = append(sum, add(p, q))
		}
	}
	tris := convexHull(sum)
	return &Handle{Mesh: Mesh{Triangles: tris}, Meta: mergeMeta(a.Meta, b.Meta, "minkowski")}
}

func mergeMeta(a, b Metadata, op string) Metadata {
	m := a
	m.Op = op
	if m.Color == nil {
		m.Color = b.Color
	}
	return m
}
