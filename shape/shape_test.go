package shape

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocad/scadcore/config"
	"github.com/gocad/scadcore/csg"
	"github.com/gocad/scadcore/plugin"
	"github.com/gocad/scadcore/value"
)

func newBuilder() *Builder {
	return NewBuilder(csg.NewReferenceEngine(), nil, nil)
}

func TestCubeBuilderAndBounds(t *testing.T) {
	b := newBuilder()
	s := b.Cube(2, 3, 4, false)
	require.False(t, s.IsEmpty())

	min, max := s.Bounds()
	assert.InDelta(t, 0, min.X, 1e-5)
	assert.InDelta(t, 2, max.X, 1e-5)
	assert.InDelta(t, 3, max.Y, 1e-5)
	assert.InDelta(t, 4, max.Z, 1e-5)
}

func TestTranslateReturnsNewShapeWithoutMutatingOriginal(t *testing.T) {
	b := newBuilder()
	original := b.Cube(1, 1, 1, false)
	moved := b.Translate(original, 10, 0, 0)

	origMin, _ := original.Bounds()
	movedMin, _ := moved.Bounds()
	assert.InDelta(t, 0, origMin.X, 1e-5)
	assert.InDelta(t, 10, movedMin.X, 1e-5)
}

func TestUnionCombinesVolumes(t *testing.T) {
	b := newBuilder()
	a := b.Cube(1, 1, 1, false)
	c := b.Translate(b.Cube(1, 1, 1, false), 5, 0, 0)

	u := b.Union(a, c)
	assert.InDelta(t, 2.0, u.Volume(), 1e-3)
}

func TestSubtractIsLeftAssociative(t *testing.T) {
	b := newBuilder()
	base := b.Cube(2, 2, 2, false)
	cut := b.Translate(b.Cube(1, 2, 2, false), 1, 0, 0)

	result := b.Subtract(base, cut)
	assert.InDelta(t, 4.0, result.Volume(), 0.2)

	// A second cutter [0,1]x[1,2]x[0,2]: (base - cut) - cut2 leaves 2, while
	// base - (cut - cut2) would leave 4.
	cut2 := b.Translate(b.Cube(1, 1, 2, false), 0, 1, 0)
	assert.InDelta(t, 2.0, b.Subtract(base, cut, cut2).Volume(), 0.2)
}

func TestEmptyShapeOperationsAreNoops(t *testing.T) {
	b := newBuilder()
	empty := Shape{}
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, 0.0, empty.Volume())
	assert.Equal(t, 0.0, empty.SurfaceArea())

	translated := b.Translate(empty, 1, 1, 1)
	assert.True(t, translated.IsEmpty())
}

func TestApplyPluginWithoutRegistryErrors(t *testing.T) {
	b := NewBuilder(csg.NewReferenceEngine(), nil, &config.Config{ModuleAllowList: []string{"gear"}})
	s := b.Cube(1, 1, 1, false)
	_, err := b.ApplyPlugin(s, "gear", nil)
	assert.Error(t, err)
}

func TestApplyPluginNotOnAllowListIsForbidden(t *testing.T) {
	registry := plugin.NewRegistry()
	require.NoError(t, registry.RegisterTransform("gear", func(h *csg.Handle, _ []value.Value) *csg.Handle { return h }))

	b := NewBuilder(csg.NewReferenceEngine(), registry, &config.Config{ModuleAllowList: []string{"other"}})
	s := b.Cube(1, 1, 1, false)
	_, err := b.ApplyPlugin(s, "gear", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbiddenImport))
}

func TestFromPluginOnAllowListReachesRegistry(t *testing.T) {
	registry := plugin.NewRegistry()
	require.NoError(t, registry.RegisterPrimitive("gear", func(_ []value.Value) *csg.Handle {
		return csg.NewHandle(csg.Mesh{})
	}))

	b := NewBuilder(csg.NewReferenceEngine(), registry, &config.Config{ModuleAllowList: []string{"gear"}})
	s, err := b.FromPlugin("gear")
	require.NoError(t, err)
	assert.False(t, s.IsEmpty())
}

func TestFromPluginWithNilConfigDeniesEverything(t *testing.T) {
	registry := plugin.NewRegistry()
	require.NoError(t, registry.RegisterPrimitive("gear", func(_ []value.Value) *csg.Handle {
		return csg.NewHandle(csg.Mesh{})
	}))

	b := NewBuilder(csg.NewReferenceEngine(), registry, nil)
	_, err := b.FromPlugin("gear")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbiddenImport))
}

func TestGeometryRoundTrip(t *testing.T) {
	b := newBuilder()
	s := b.Cube(1, 1, 1, false)
	g := s.Geometry()
	require.NotNil(t, g)
	assert.Equal(t, 12, g.Stats.FaceCount)
}
