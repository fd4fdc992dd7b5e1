package primitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocad/scadcore/csg"
)

func TestCubeDimensionsAndOrigin(t *testing.T) {
	h := Cube(2, 3, 4, false)
	require.Len(t, h.Mesh.Triangles, 12)

	min, max := csg.Bounds(h.Mesh)
	assert.InDelta(t, 0, min.X, 1e-5)
	assert.InDelta(t, 0, min.Y, 1e-5)
	assert.InDelta(t, 0, min.Z, 1e-5)
	assert.InDelta(t, 2, max.X, 1e-5)
	assert.InDelta(t, 3, max.Y, 1e-5)
	assert.InDelta(t, 4, max.Z, 1e-5)
}

func TestCubeCentered(t *testing.T) {
	h := Cube(2, 2, 2, true)
	min, max := csg.Bounds(h.Mesh)
	assert.InDelta(t, -1, min.X, 1e-5)
	assert.InDelta(t, 1, max.X, 1e-5)
}

func TestCubeVolume(t *testing.T) {
	h := Cube(2, 3, 4, false)
	assert.InDelta(t, 24, csg.Volume(h.Mesh), 1e-4)
}

func TestSphereRadiusBounds(t *testing.T) {
	h := Sphere(5, 24)
	min, max := csg.Bounds(h.Mesh)
	assert.InDelta(t, -5, min.X, 0.1)
	assert.InDelta(t, 5, max.X, 0.1)
}

func TestCylinderHeightAndRadius(t *testing.T) {
	h := Cylinder(10, 2, 2, 16, false)
	min, max := csg.Bounds(h.Mesh)
	assert.InDelta(t, 0, min.Z, 1e-5)
	assert.InDelta(t, 10, max.Z, 1e-5)
	assert.InDelta(t, -2, min.X, 0.1)
	assert.InDelta(t, 2, max.X, 0.1)
}

func TestConeTapersToPoint(t *testing.T) {
	h := Cone(10, 4, 16, false)
	min, max := csg.Bounds(h.Mesh)
	assert.InDelta(t, 0, min.Z, 1e-5)
	assert.InDelta(t, 10, max.Z, 1e-5)
}

func TestPyramidSides(t *testing.T) {
	h := Pyramid(5, 3, 4)
	require.NotEmpty(t, h.Mesh.Triangles)
	_, max := csg.Bounds(h.Mesh)
	assert.InDelta(t, 5, max.Z, 1e-5)
}

func TestPolyhedronFromExplicitFaces(t *testing.T) {
	points := []csg.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
	}
	faces := [][]int{{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {0, 3, 2}}
	h := Polyhedron(points, faces)
	assert.Len(t, h.Mesh.Triangles, 4)
}
