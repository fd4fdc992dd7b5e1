package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocad/scadcore/csg"
)

// stripOfTriangles builds n disjoint triangles along the X axis, each with 3
// unique vertices, so vertex-count-based chunking has something to split on.
func stripOfTriangles(n int) csg.Mesh {
	var tris []csg.Triangle
	for i := 0; i < n; i++ {
		x := float32(i * 10)
		a := csg.Vec3{X: x, Y: 0, Z: 0}
		b := csg.Vec3{X: x + 1, Y: 0, Z: 0}
		c := csg.Vec3{X: x, Y: 1, Z: 0}
		tris = append(tris, csg.Triangle{A: a, B: b, C: c})
	}
	return csg.Mesh{Triangles: tris}
}

func TestChunkSplitsAtVertexThreshold(t *testing.T) {
	g := FromMesh(stripOfTriangles(10), nil, "")
	require.Equal(t, 30, g.Stats.VertexCount)

	chunked := g.Chunk(12)
	assert.True(t, chunked.IsChunked)
	assert.Equal(t, 30, chunked.TotalVertices)
	assert.Equal(t, 10, chunked.TotalFaces)
	assert.Greater(t, len(chunked.Chunks), 1)

	for _, c := range chunked.Chunks {
		assert.LessOrEqual(t, len(c.Vertices)/3, 12)
	}
}

func TestChunkNeverSplitsATriangleAcrossChunks(t *testing.T) {
	g := FromMesh(stripOfTriangles(5), nil, "")
	chunked := g.Chunk(4)

	totalTris := 0
	for _, c := range chunked.Chunks {
		require.Zero(t, len(c.Indices)%3)
		totalTris += len(c.Indices) / 3
		for _, idx := range c.Indices {
			assert.Less(t, int(idx), len(c.Vertices)/3, "chunk index must reference only this chunk's own vertices")
		}
	}
	assert.Equal(t, 5, totalTris)
}

func TestChunkDefaultsThresholdWhenNonPositive(t *testing.T) {
	g := FromMesh(stripOfTriangles(3), nil, "")
	chunked := g.Chunk(0)
	assert.Len(t, chunked.Chunks, 1)
}
