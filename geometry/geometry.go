// Package geometry implements the external Geometry wire contract (spec
// §3.5, §6.2): flat vertex/index/normal arrays plain enough to serialize to
// JSON, plus the mesh-validity checks the evaluator and Shape DSL both rely
// on (spec §3.6, §8.1). It converts from csg.Mesh/csg.Handle, which stay in
// float32 mesh-space, to the wire contract's plain float32 slices.
package geometry

import (
	"fmt"

	"github.com/gocad/scadcore/csg"
)

// Bounds is the axis-aligned bounding box of a Geometry, [3]float32 per
// corner to match the wire contract's flat-array-of-3 convention.
type Bounds struct {
	Min [3]float32 `json:"min"`
	Max [3]float32 `json:"max"`
}

// Stats carries the summary numbers the RPC response surfaces alongside the
// full mesh (spec §3.5).
type Stats struct {
	VertexCount int     `json:"vertex_count"`
	FaceCount   int     `json:"face_count"`
	Volume      float64 `json:"volume"`
}

// Color mirrors csg.Color as a wire-friendly value (no pointer aliasing into
// engine-owned state).
type Color struct {
	R, G, B, A float64
}

// Geometry is the external, JSON-clean mesh record (spec §3.5). Vertices and
// normals are flat [x0,y0,z0,x1,y1,z1,...]; indices are flat triangle
// indices into the vertex array.
type Geometry struct {
	Vertices []float32 `json:"vertices"`
	Indices  []uint32  `json:"indices"`
	Normals  []float32 `json:"normals"`
	Bounds   Bounds    `json:"bounds"`
	Stats    Stats     `json:"stats"`
	Color    *Color    `json:"color,omitempty"`
	Modifier string    `json:"modifier,omitempty"`
}

// FromHandle serializes a csg.Handle's mesh into the external contract,
// deduplicating shared vertices so Indices/Normals reference one entry per
// unique position (rather than emitting one triangle-local vertex per
// corner, which would triple the footprint for a typical manifold).
func FromHandle(h *csg.Handle) *Geometry {
	if h == nil {
		return &Geometry{}
	}
	return FromMesh(h.Mesh, metaColor(h.Meta), modifierName(h.Meta.Modifier))
}

// FromMesh serializes a raw mesh, independent of a Handle's metadata.
func FromMesh(m csg.Mesh, color *Color, modifier string) *Geometry {
	index := make(map[csg.Vec3]uint32)
	var verts []float32
	var normalsSum [][3]float32
	var indices []uint32

	vertexOf := func(v csg.Vec3) uint32 {
		if i, ok := index[v]; ok {
			return i
		}
		i := uint32(len(verts) / 3)
		index[v] = i
		verts = append(verts, v.X, v.Y, v.Z)
		normalsSum = append(normalsSum, [3]float32{})
		return i
	}

	for _, t := range m.Triangles {
		ia, ib, ic := vertexOf(t.A), vertexOf(t.B), vertexOf(t.C)
		indices = append(indices, ia, ib, ic)
		n := faceNormal(t)
		accumulate(&normalsSum[ia], n)
		accumulate(&normalsSum[ib], n)
		accumulate(&normalsSum[ic], n)
	}

	normals := make([]float32, 0, len(normalsSum)*3)
	for _, n := range normalsSum {
		un := normalize(n)
		normals = append(normals, un[0], un[1], un[2])
	}

	min, max := csg.Bounds(m)
	g := &Geometry{
		Vertices: verts,
		Indices:  indices,
		Normals:  normals,
		Bounds:   Bounds{Min: [3]float32{min.X, min.Y, min.Z}, Max: [3]float32{max.X, max.Y, max.Z}},
		Stats: Stats{
			VertexCount: len(verts) / 3,
			FaceCount:   len(indices) / 3,
			Volume:      csg.Volume(m),
		},
		Color:    color,
		Modifier: modifier,
	}
	return g
}

func metaColor(m csg.Metadata) *Color {
	if m.Color == nil {
		return nil
	}
	return &Color{R: m.Color.R, G: m.Color.G, B: m.Color.B, A: m.Color.A}
}

func modifierName(t csg.ModifierTag) string {
	switch t {
	case csg.ModifierDebug:
		return "debug"
	case csg.ModifierBackground:
		return "background"
	case csg.ModifierRoot:
		return "root"
	case csg.ModifierDisable:
		return "disable"
	default:
		return ""
	}
}

func faceNormal(t csg.Triangle) [3]float32 {
	ux, uy, uz := t.B.X-t.A.X, t.B.Y-t.A.Y, t.B.Z-t.A.Z
	vx, vy, vz := t.C.X-t.A.X, t.C.Y-t.A.Y, t.C.Z-t.A.Z
	return [3]float32{uy*vz - uz*vy, uz*vx - ux*vz, ux*vy - uy*vx}
}

func accumulate(acc *[3]float32, n [3]float32) {
	acc[0] += n[0]
	acc[1] += n[1]
	acc[2] += n[2]
}

func normalize(n [3]float32) [3]float32 {
	length := sqrt32(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
	if length < 1e-12 {
		return [3]float32{0, 0, 1}
	}
	return [3]float32{n[0] / length, n[1] / length, n[2] / length}
}

func sqrt32(v float32) float32 {
	// Newton's method converges to float32 precision in ~4 iterations for
	// the well-conditioned magnitudes mesh normals produce; avoids pulling
	// in math32 purely for a single call in this leaf package.
	if v <= 0 {
		return 0
	}
	x := v
	for i := 0; i < 8; i++ {
		x = 0.5 * (x + v/x)
	}
	return x
}

// Validate checks the §3.6 structural invariants a rendering-bound Geometry
// must satisfy.
func Validate(g *Geometry) error {
	if len(g.Vertices)%3 != 0 {
		return fmt.Errorf("geometry: vertices length %d not a multiple of 3", len(g.Vertices))
	}
	if len(g.Indices)%3 != 0 {
		return fmt.Errorf("geometry: indices length %d not a multiple of 3", len(g.Indices))
	}
	if len(g.Normals) != len(g.Vertices) {
		return fmt.Errorf("geometry: normals length %d != vertices length %d", len(g.Normals), len(g.Vertices))
	}
	vcount := uint32(len(g.Vertices) / 3)
	for _, idx := range g.Indices {
		if idx >= vcount {
			return fmt.Errorf("geometry: index %d out of range (vertex count %d)", idx, vcount)
		}
	}
	for axis := 0; axis < 3; axis++ {
		if g.Bounds.Min[axis] > g.Bounds.Max[axis] {
			return fmt.Errorf("geometry: bounds.min > bounds.max on axis %d", axis)
		}
	}
	for i := 0; i+2 < len(g.Normals); i += 3 {
		nx, ny, nz := g.Normals[i], g.Normals[i+1], g.Normals[i+2]
		lenSq := nx*nx + ny*ny + nz*nz
		// The degenerate-triangle fallback normal [0,0,1] is itself unit
		// length, so a zero normal fails this check like any other.
		if lenSq < 0.98 || lenSq > 1.02 {
			return fmt.Errorf("geometry: normal at vertex %d is not unit length (|n|^2=%f)", i/3, lenSq)
		}
	}
	return nil
}
