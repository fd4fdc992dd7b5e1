// Package csg isolates all mesh and boolean operations behind an Engine
// interface (spec §9 design note), so the evaluator and Shape DSL never
// touch triangle data directly and can be tested against a mock engine.
// ReferenceEngine is the only production implementation: a BSP-tree
// triangle-mesh boolean algorithm, since the retrieval pack carries no
// binding to a native manifold/CGAL-class library.
package csg

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Vec3 is a mesh-space 3D vector. Mesh math uses float32 (github.com/chewxy/math32)
// to match the precision real CSG/triangle pipelines operate at; the
// evaluator and Shape DSL traffic in float64 and convert at the boundary.
type Vec3 struct {
	X, Y, Z float32
}

// Triangle is three CCW-wound vertices.
type Triangle struct {
	A, B, C Vec3
}

// Mesh is an unindexed triangle soup, the unit Engine operations work on.
type Mesh struct {
	Triangles []Triangle
}

// Metadata carries the per-object attributes that ride alongside geometry
// through the evaluation tree: display color, the modifier tag that applied
// to the statement which produced it, an ordering id, and debugging info.
//
// Seq is a cheap monotonically increasing counter assigned once per handle
// lineage (derived handles from With* keep their parent's Seq), good enough
// for sort-stable ordering within one evaluation. debugID backs a globally
// unique uuid.UUID label, but that label is only worth the allocation when
// something actually asks for it (e.g. $debug tooling), so it is computed
// lazily through DebugID.
type Metadata struct {
	Seq        uint64
	debugID    *debugCell
	Color      *Color
	Modifier   ModifierTag
	SourceLine int
	Op         string // the composite operation that produced this handle, e.g. "union", "difference"
}

// debugCell is the lazily-populated backing store for a Metadata's debug
// UUID. It's shared (by pointer) across every Metadata derived from the same
// handle, so WithColor/WithModifier/WithOp copies and the original resolve
// to the same label once computed.
type debugCell struct {
	once sync.Once
	id   uuid.UUID
}

// DebugID returns this metadata's globally-unique debug label, computing it
// on first use. Safe to call on a zero Metadata (e.g. one built outside
// NewHandle, such as Hull's synthetic metadata).
func (m *Metadata) DebugID() uuid.UUID {
	if m.debugID == nil {
		m.debugID = &debugCell{}
	}
	m.debugID.once.Do(func() { m.debugID.id = uuid.New() })
	return m.debugID.id
}

var handleSeq uint64

func nextSeq() uint64 {
	return atomic.AddUint64(&handleSeq, 1)
}

// Color is an RGBA color in [0,1], as set by the color() module.
type Color struct {
	R, G, B, A float64
}

// ModifierTag mirrors scad.ModifierKind without importing package scad (csg
// is a lower layer than the evaluator).
type ModifierTag uint8

const (
	ModifierNone ModifierTag = iota
	ModifierDebug
	ModifierBackground
	ModifierRoot
	ModifierDisable
)

// Handle is an opaque reference to a piece of geometry plus its metadata.
// value.Geometry.Handle holds a *Handle via an interface{} field to avoid an
// import cycle between value and csg.
type Handle struct {
	Mesh Mesh
	Meta Metadata
}

// NewHandle wraps a mesh with fresh metadata (a new seq, no color, no modifier).
func NewHandle(m Mesh) *Handle {
	return &Handle{
		Mesh: m,
		Meta: Metadata{Seq: nextSeq(), debugID: &debugCell{}, Modifier: ModifierNone},
	}
}

// WithColor returns a shallow copy of h with Color set; meshes are never
// mutated in place so sibling references to the same handle stay valid.
func (h *Handle) WithColor(c Color) *Handle {
	out := *h
	out.Meta.Color = &c
	return &out
}

// WithModifier returns a shallow copy of h tagged with the given modifier.
func (h *Handle) WithModifier(tag ModifierTag) *Handle {
	out := *h
	out.Meta.Modifier = tag
	return &out
}

// WithOp returns a shallow copy of h labeled with the composite operation
// that produced it (for debugging/echo output, not semantics).
func (h *Handle) WithOp(op string) *Handle {
	out := *h
	out.Meta.Op = op
	return &out
}
