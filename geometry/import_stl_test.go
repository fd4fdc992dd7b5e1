package geometry

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSTLBinaryRoundTrip(t *testing.T) {
	g := sampleGeometry()
	var buf bytes.Buffer
	require.NoError(t, WriteSTLBinary(&buf, g))

	mesh, err := DecodeSTL(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 2, len(mesh.Triangles))
}

func TestDecodeSTLASCIIRoundTrip(t *testing.T) {
	g := sampleGeometry()
	var buf bytes.Buffer
	require.NoError(t, WriteSTLASCII(&buf, g, "quad"))

	mesh, err := DecodeSTL(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 2, len(mesh.Triangles))
}

func TestDecodeSTLEmptyASCIIErrors(t *testing.T) {
	_, err := DecodeSTL([]byte("solid empty\nendsolid empty\n"))
	assert.Error(t, err)
}

func TestDecodeSTLTruncatedBinaryErrors(t *testing.T) {
	_, err := DecodeSTL(make([]byte, 40))
	assert.Error(t, err)
}

func TestLooksBinarySTLDistinguishesFromASCIIStartingWithSolid(t *testing.T) {
	// An ASCII file is never mistaken for binary just because it starts
	// with "solid": its length won't match the binary layout's expected
	// size for whatever 4 bytes happen to follow the header.
	ascii := []byte("solid weirdly-named-part-thats-long-enough-to-fill-the-eighty-byte-header-field\nfacet normal 0 0 1\nouter loop\nvertex 0 0 0\nvertex 1 0 0\nvertex 0 1 0\nendloop\nendfacet\nendsolid\n")
	assert.False(t, looksBinarySTL(ascii))
}
