package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocad/scadcore/csg"
)

// twoTriangleQuad is a unit square in the XY plane split into two triangles, used to exercise vertex
// dedup and normal accumulation without depending on the primitive package.
func twoTriangleQuad() csg.Mesh {
	v := func(x, y, z float32) csg.Vec3 { return csg.Vec3{X: x, Y: y, Z: z} }
	a, b, c, d := v(0, 0, 0), v(1, 0, 0), v(1, 1, 0), v(0, 1, 0)
	return csg.Mesh{Triangles: []csg.Triangle{
		{A: a, B: b, C: c},
		{A: a, B: c, C: d},
	}}
}

func TestFromMeshDedupesSharedVertices(t *testing.T) {
	g := FromMesh(twoTriangleQuad(), nil, "")
	// 4 unique corners, not 6 triangle-local ones.
	assert.Equal(t, 4, g.Stats.VertexCount)
	assert.Equal(t, 2, g.Stats.FaceCount)
	assert.Len(t, g.Vertices, 12)
	assert.Len(t, g.Indices, 6)
	assert.Len(t, g.Normals, 12)
}

func TestFromMeshNormalsAreUnitLength(t *testing.T) {
	g := FromMesh(twoTriangleQuad(), nil, "")
	for i := 0; i+2 < len(g.Normals); i += 3 {
		lenSq := g.Normals[i]*g.Normals[i] + g.Normals[i+1]*g.Normals[i+1] + g.Normals[i+2]*g.Normals[i+2]
		assert.InDelta(t, 1.0, lenSq, 0.02)
	}
}

func TestFromMeshColorAndModifierCarryThrough(t *testing.T) {
	g := FromMesh(twoTriangleQuad(), &Color{R: 1, A: 1}, "root")
	require.NotNil(t, g.Color)
	assert.Equal(t, 1.0, g.Color.R)
	assert.Equal(t, "root", g.Modifier)
}

func TestFromHandleNilReturnsEmptyGeometry(t *testing.T) {
	g := FromHandle(nil)
	assert.Empty(t, g.Vertices)
	assert.Empty(t, g.Indices)
}

func TestValidateAcceptsWellFormedGeometry(t *testing.T) {
	g := FromMesh(twoTriangleQuad(), nil, "")
	assert.NoError(t, Validate(g))
}

func TestValidateRejectsIndexOutOfRange(t *testing.T) {
	g := FromMesh(twoTriangleQuad(), nil, "")
	g.Indices[0] = uint32(len(g.Vertices) / 3) // one past the last valid vertex
	assert.Error(t, Validate(g))
}

func TestValidateRejectsMismatchedNormalsLength(t *testing.T) {
	g := FromMesh(twoTriangleQuad(), nil, "")
	g.Normals = g.Normals[:len(g.Normals)-3]
	assert.Error(t, Validate(g))
}

func TestValidateRejectsInvertedBounds(t *testing.T) {
	g := FromMesh(twoTriangleQuad(), nil, "")
	g.Bounds.Min[0], g.Bounds.Max[0] = g.Bounds.Max[0]+1, g.Bounds.Min[0]
	assert.Error(t, Validate(g))
}
