package csg

import "github.com/chewxy/math32"

// Bounds computes the axis-aligned bounding box of a mesh. An empty mesh
// returns a zero box (Min == Max == {0,0,0}).
func Bounds(m Mesh) (min, max Vec3) {
	if len(m.Triangles) == 0 {
		return Vec3{}, Vec3{}
	}
	first := m.Triangles[0].A
	min, max = first, first
	grow := func(v Vec3) {
		if v.X < min.X {
			min.X = v.X
		}
		if v.Y < min.Y {
			min.Y = v.Y
		}
		if v.Z < min.Z {
			min.Z = v.Z
		}
		if v.X > max.X {
			max.X = v.X
		}
		if v.Y > max.Y {
			max.Y = v.Y
		}
		if v.Z > max.Z {
			max.Z = v.Z
		}
	}
	for _, t := range m.Triangles {
		grow(t.A)
		grow(t.B)
		grow(t.C)
	}
	return min, max
}

// Volume computes the signed volume of a closed triangle mesh via the
// divergence theorem (sum of signed tetrahedron volumes from the origin),
// taking its absolute value.
func Volume(m Mesh) float64 {
	var sum float64
	for _, t := range m.Triangles {
		sum += float64(dot3(t.A, cross(t.B, t.C))) / 6
	}
	if sum < 0 {
		sum = -sum
	}
	return sum
}

// SurfaceArea sums the area of every triangle.
func SurfaceArea(m Mesh) float64 {
	var sum float64
	for _, t := range m.Triangles {
		n := cross(sub(t.B, t.A), sub(t.C, t.A))
		sum += float64(vecLen(n)) / 2
	}
	return sum
}

func vecLen(v Vec3) float32 {
	return math32.Sqrt(dot3(v, v))
}
