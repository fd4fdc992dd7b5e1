package csg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cubeHandle() *Handle {
	return NewHandle(unitCube())
}

func TestReferenceEngineTranslate(t *testing.T) {
	e := NewReferenceEngine()
	h := e.Translate(cubeHandle(), 5, 0, 0)
	min, max := Bounds(h.Mesh)
	assert.InDelta(t, 5, min.X, 1e-5)
	assert.InDelta(t, 6, max.X, 1e-5)
}

func TestReferenceEngineScale(t *testing.T) {
	e := NewReferenceEngine()
	h := e.Scale(cubeHandle(), 2, 2, 2)
	_, max := Bounds(h.Mesh)
	assert.InDelta(t, 2, max.X, 1e-5)
}

func TestReferenceEngineUnionOfDisjointCubes(t *testing.T) {
	e := NewReferenceEngine()
	a := cubeHandle()
	b := e.Translate(cubeHandle(), 5, 0, 0)

	u := e.Union(a, b)
	assert.Len(t, u.Mesh.Triangles, 24)
	assert.Equal(t, "union", u.Meta.Op)
}

func TestReferenceEngineUnionMergesColorFirstOperandWins(t *testing.T) {
	e := NewReferenceEngine()
	a := cubeHandle().WithColor(Color{R: 1, A: 1})
	b := cubeHandle().WithColor(Color{B: 1, A: 1})

	u := e.Union(a, b)
	require.NotNil(t, u.Meta.Color)
	assert.Equal(t, 1.0, u.Meta.Color.R)
}

func TestReferenceEngineDifferenceRemovesOverlap(t *testing.T) {
	e := NewReferenceEngine()
	a := cubeHandle()
	b := e.Translate(cubeHandle(), 0.5, 0, 0) // overlaps the right half of a

	d := e.Difference(a, b)
	assert.InDelta(t, 0.5, Volume(d.Mesh), 0.05)
}

func TestReferenceEngineIntersectionOfDisjointIsEmpty(t *testing.T) {
	e := NewReferenceEngine()
	a := cubeHandle()
	b := e.Translate(cubeHandle(), 5, 0, 0)

	i := e.Intersection(a, b)
	assert.InDelta(t, 0, Volume(i.Mesh), 1e-5)
}

func TestHandleWithColorDoesNotMutateOriginal(t *testing.T) {
	orig := cubeHandle()
	colored := orig.WithColor(Color{R: 1, A: 1})

	assert.Nil(t, orig.Meta.Color)
	require.NotNil(t, colored.Meta.Color)
	assert.Equal(t, 1.0, colored.Meta.Color.R)
}

func TestHandleWithModifier(t *testing.T) {
	orig := cubeHandle()
	tagged := orig.WithModifier(ModifierRoot)

	assert.Equal(t, ModifierNone, orig.Meta.Modifier)
	assert.Equal(t, ModifierRoot, tagged.Meta.Modifier)
}
