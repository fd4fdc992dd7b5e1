package geometry

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// WriteSTLBinary writes the binary STL form (spec §6.6): an 80-byte header,
// a little-endian u32 triangle count, then per triangle a normal, three
// vertices, and a u16 attribute byte count (always 0 here).
func WriteSTLBinary(w io.Writer, g *Geometry) error {
	var header [80]byte
	copy(header[:], "scadcore binary STL export")
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	triCount := uint32(len(g.Indices) / 3)
	if err := binary.Write(w, binary.LittleEndian, triCount); err != nil {
		return err
	}
	buf := bufio.NewWriter(w)
	for i := 0; i+2 < len(g.Indices); i += 3 {
		a, b, c := g.Indices[i], g.Indices[i+1], g.Indices[i+2]
		va, vb, vc := vertexAt(g, a), vertexAt(g, b), vertexAt(g, c)
		n := triangleNormal(va, vb, vc)
		for _, f := range append(n[:], flatten(va, vb, vc)...) {
			if err := binary.Write(buf, binary.LittleEndian, f); err != nil {
				return err
			}
		}
		if err := binary.Write(buf, binary.LittleEndian, uint16(0)); err != nil {
			return err
		}
	}
	return buf.Flush()
}

// WriteSTLASCII writes the human-readable `solid ... endsolid` STL form.
func WriteSTLASCII(w io.Writer, g *Geometry, name string) error {
	if name == "" {
		name = "scadcore"
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "solid %s\n", name)
	for i := 0; i+2 < len(g.Indices); i += 3 {
		a, b, c := g.Indices[i], g.Indices[i+1], g.Indices[i+2]
		va, vb, vc := vertexAt(g, a), vertexAt(g, b), vertexAt(g, c)
		n := triangleNormal(va, vb, vc)
		fmt.Fprintf(bw, "  facet normal %s %s %s\n", f32(n[0]), f32(n[1]), f32(n[2]))
		fmt.Fprintf(bw, "    outer loop\n")
		for _, v := range [3][3]float32{va, vb, vc} {
			fmt.Fprintf(bw, "      vertex %s %s %s\n", f32(v[0]), f32(v[1]), f32(v[2]))
		}
		fmt.Fprintf(bw, "    endloop\n  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)
	return bw.Flush()
}

// WriteOBJ writes Wavefront OBJ: one `v` per vertex, one `vn` per vertex
// normal, and `f v//vn` faces (1-indexed, per the OBJ format).
func WriteOBJ(w io.Writer, g *Geometry) error {
	bw := bufio.NewWriter(w)
	for i := 0; i+2 < len(g.Vertices); i += 3 {
		fmt.Fprintf(bw, "v %s %s %s\n", f32(g.Vertices[i]), f32(g.Vertices[i+1]), f32(g.Vertices[i+2]))
	}
	for i := 0; i+2 < len(g.Normals); i += 3 {
		fmt.Fprintf(bw, "vn %s %s %s\n", f32(g.Normals[i]), f32(g.Normals[i+1]), f32(g.Normals[i+2]))
	}
	for i := 0; i+2 < len(g.Indices); i += 3 {
		a, b, c := g.Indices[i]+1, g.Indices[i+1]+1, g.Indices[i+2]+1
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
	}
	return bw.Flush()
}

func vertexAt(g *Geometry, i uint32) [3]float32 {
	base := i * 3
	return [3]float32{g.Vertices[base], g.Vertices[base+1], g.Vertices[base+2]}
}

func flatten(vs ...[3]float32) []float32 {
	out := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		out = append(out, v[0], v[1], v[2])
	}
	return out
}

func triangleNormal(a, b, c [3]float32) [3]float32 {
	ux, uy, uz := b[0]-a[0], b[1]-a[1], b[2]-a[2]
	vx, vy, vz := c[0]-a[0], c[1]-a[1], c[2]-a[2]
	nx, ny, nz := uy*vz-uz*vy, uz*vx-ux*vz, ux*vy-uy*vx
	length := float32(math.Sqrt(float64(nx*nx + ny*ny + nz*nz)))
	if length < 1e-12 {
		return [3]float32{0, 0, 1}
	}
	return [3]float32{nx / length, ny / length, nz / length}
}

func f32(v float32) string {
	return fmt.Sprintf("%g", v)
}
