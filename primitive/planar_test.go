package primitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocad/scadcore/csg"
)

func TestCircleIsFlatAndWithinRadius(t *testing.T) {
	h := Circle(3, 16)
	require.NotEmpty(t, h.Mesh.Triangles)

	min, max := csg.Bounds(h.Mesh)
	assert.InDelta(t, 0, min.Z, 1e-6)
	assert.InDelta(t, 0, max.Z, 1e-6)
	assert.InDelta(t, -3, min.X, 0.05)
	assert.InDelta(t, 3, max.X, 0.05)
}

func TestCircleMinimumSegments(t *testing.T) {
	h := Circle(1, 1)
	assert.Len(t, h.Mesh.Triangles, 3)
}

func TestSquareUncentered(t *testing.T) {
	h := Square(4, 2, false)
	min, max := csg.Bounds(h.Mesh)
	assert.InDelta(t, 0, min.X, 1e-6)
	assert.InDelta(t, 4, max.X, 1e-6)
	assert.InDelta(t, 2, max.Y, 1e-6)
}

func TestSquareCentered(t *testing.T) {
	h := Square(4, 2, true)
	min, max := csg.Bounds(h.Mesh)
	assert.InDelta(t, -2, min.X, 1e-6)
	assert.InDelta(t, 2, max.X, 1e-6)
	assert.InDelta(t, -1, min.Y, 1e-6)
	assert.InDelta(t, 1, max.Y, 1e-6)
}

func TestPolygonWithExplicitPaths(t *testing.T) {
	points := []csg.Vec3{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2},
	}
	h := Polygon(points, [][]int{{0, 1, 2, 3}})
	assert.NotEmpty(t, h.Mesh.Triangles)
}

func TestPolygonOutOfRangeIndexSkipped(t *testing.T) {
	points := []csg.Vec3{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	h := Polygon(points, [][]int{{0, 1, 2, 99}})
	assert.NotPanics(t, func() { csg.Bounds(h.Mesh) })
}
