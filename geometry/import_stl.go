package geometry

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/gocad/scadcore/csg"
)

// stlBinaryHeaderSize is the fixed 80-byte header every binary STL starts
// with, followed by a little-endian u32 triangle count (spec §3.9, import()
// mesh loading).
const stlBinaryHeaderSize = 80

// stlBinaryRecordSize is one triangle record: 12 floats (normal + 3
// vertices) at 4 bytes each, plus the trailing u16 attribute byte count.
const stlBinaryRecordSize = 12*4 + 2

// DecodeSTL parses either STL flavor into a csg.Mesh, the symmetric reader
// to WriteSTLBinary/WriteSTLASCII. Flavor detection can't rely on the
// "solid" prefix alone (a binary file's free-form 80-byte header is legal
// content, so it may itself start with "solid"): the reliable test is
// whether the file's length matches what the header's declared triangle
// count implies for the binary layout. Only when it doesn't do we fall back
// to the ASCII grammar.
func DecodeSTL(data []byte) (*csg.Mesh, error) {
	if looksBinarySTL(data) {
		return decodeSTLBinary(data)
	}
	return decodeSTLASCII(data)
}

func looksBinarySTL(data []byte) bool {
	if len(data) < stlBinaryHeaderSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[stlBinaryHeaderSize : stlBinaryHeaderSize+4])
	expected := stlBinaryHeaderSize + 4 + int(count)*stlBinaryRecordSize
	return expected == len(data)
}

func decodeSTLBinary(data []byte) (*csg.Mesh, error) {
	if len(data) < stlBinaryHeaderSize+4 {
		return nil, fmt.Errorf("geometry: truncated binary STL (%d bytes)", len(data))
	}
	count := binary.LittleEndian.Uint32(data[stlBinaryHeaderSize : stlBinaryHeaderSize+4])
	r := bytes.NewReader(data[stlBinaryHeaderSize+4:])
	mesh := &csg.Mesh{Triangles: make([]csg.Triangle, 0, count)}
	for i := uint32(0); i < count; i++ {
		var normal [3]float32
		if err := binary.Read(r, binary.LittleEndian, &normal); err != nil {
			return nil, fmt.Errorf("geometry: reading STL triangle %d: %w", i, err)
		}
		var verts [3][3]float32
		if err := binary.Read(r, binary.LittleEndian, &verts); err != nil {
			return nil, fmt.Errorf("geometry: reading STL triangle %d: %w", i, err)
		}
		var attr uint16
		if err := binary.Read(r, binary.LittleEndian, &attr); err != nil {
			return nil, fmt.Errorf("geometry: reading STL triangle %d: %w", i, err)
		}
		mesh.Triangles = append(mesh.Triangles, csg.Triangle{
			A: vec3(verts[0]), B: vec3(verts[1]), C: vec3(verts[2]),
		})
	}
	return mesh, nil
}

// decodeSTLASCII parses the "solid ... facet normal ... outer loop vertex
// x y z ... endloop endfacet ... endsolid" grammar. Normals are recomputed
// from vertex winding rather than trusted from the file (spec mandates no
// degenerate/garbage geometry; a malformed or absent facet normal line must
// not produce a broken mesh).
func decodeSTLASCII(data []byte) (*csg.Mesh, error) {
	mesh := &csg.Mesh{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	var verts []csg.Vec3
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "vertex":
			if len(fields) != 4 {
				return nil, fmt.Errorf("geometry: malformed STL vertex on line %d", lineNo)
			}
			v, err := parseVec3(fields[1], fields[2], fields[3])
			if err != nil {
				return nil, fmt.Errorf("geometry: line %d: %w", lineNo, err)
			}
			verts = append(verts, v)
			if len(verts) == 3 {
				mesh.Triangles = append(mesh.Triangles, csg.Triangle{A: verts[0], B: verts[1], C: verts[2]})
				verts = verts[:0]
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("geometry: scanning ASCII STL: %w", err)
	}
	if len(mesh.Triangles) == 0 {
		return nil, fmt.Errorf("geometry: ASCII STL contains no facets")
	}
	return mesh, nil
}

func parseVec3(xs, ys, zs string) (csg.Vec3, error) {
	x, err := strconv.ParseFloat(xs, 32)
	if err != nil {
		return csg.Vec3{}, err
	}
	y, err := strconv.ParseFloat(ys, 32)
	if err != nil {
		return csg.Vec3{}, err
	}
	z, err := strconv.ParseFloat(zs, 32)
	if err != nil {
		return csg.Vec3{}, err
	}
	return csg.Vec3{X: float32(x), Y: float32(y), Z: float32(z)}, nil
}

func vec3(v [3]float32) csg.Vec3 {
	return csg.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
