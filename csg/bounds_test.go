package csg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// unitCube returns a closed, outward-facing 1x1x1 cube mesh from (0,0,0) to
// (1,1,1), hand-built so Bounds/Volume/SurfaceArea can be checked against
// known values without depending on the primitive package.
func unitCube() Mesh {
	v := func(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }
	quad := func(a, b, c, d Vec3) []Triangle {
		return []Triangle{{A: a, B: b, C: c}, {A: a, B: c, C: d}}
	}
	var tris []Triangle
	tris = append(tris, quad(v(0, 0, 0), v(0, 1, 0), v(1, 1, 0), v(1, 0, 0))...) // bottom (z=0)
	tris = append(tris, quad(v(0, 0, 1), v(1, 0, 1), v(1, 1, 1), v(0, 1, 1))...) // top (z=1)
	tris = append(tris, quad(v(0, 0, 0), v(1, 0, 0), v(1, 0, 1), v(0, 0, 1))...) // front (y=0)
	tris = append(tris, quad(v(0, 1, 0), v(0, 1, 1), v(1, 1, 1), v(1, 1, 0))...) // back (y=1)
	tris = append(tris, quad(v(0, 0, 0), v(0, 0, 1), v(0, 1, 1), v(0, 1, 0))...) // left (x=0)
	tris = append(tris, quad(v(1, 0, 0), v(1, 1, 0), v(1, 1, 1), v(1, 0, 1))...) // right (x=1)
	return Mesh{Triangles: tris}
}

func TestBoundsOfCube(t *testing.T) {
	min, max := Bounds(unitCube())
	assert.Equal(t, Vec3{X: 0, Y: 0, Z: 0}, min)
	assert.Equal(t, Vec3{X: 1, Y: 1, Z: 1}, max)
}

func TestBoundsOfEmptyMesh(t *testing.T) {
	min, max := Bounds(Mesh{})
	assert.Equal(t, Vec3{}, min)
	assert.Equal(t, Vec3{}, max)
}

func TestVolumeOfUnitCube(t *testing.T) {
	assert.InDelta(t, 1.0, Volume(unitCube()), 1e-5)
}

func TestSurfaceAreaOfUnitCube(t *testing.T) {
	assert.InDelta(t, 6.0, SurfaceArea(unitCube()), 1e-5)
}
