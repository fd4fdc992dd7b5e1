package eval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocad/scadcore/csg"
	"github.com/gocad/scadcore/scad"
)

func run(t *testing.T, source string) *Result {
	t.Helper()
	lexer := scad.NewLexer(source)
	tokens, lexErr := lexer.Tokenize()
	require.NoError(t, lexErr)
	parser := scad.NewParser(tokens)
	prog, parseErrs := parser.Parse()
	require.Empty(t, parseErrs, "unexpected parse errors for %q", source)

	evaluator := New(csg.NewReferenceEngine())
	return evaluator.Evaluate(context.Background(), prog)
}

func TestScenarioSimpleCube(t *testing.T) {
	result := run(t, `cube([10, 10, 10]);`)
	require.True(t, result.Success())
	require.NotNil(t, result.Geometry)

	min, max := csg.Bounds(result.Geometry.Mesh)
	assert.InDelta(t, 0, min.X, 1e-6)
	assert.InDelta(t, 10, max.X, 1e-6)
	assert.Len(t, result.Geometry.Mesh.Triangles, 12)

	vol := csg.Volume(result.Geometry.Mesh)
	assert.InDelta(t, 1000, vol, 1e-3)
}

func TestScenarioCenteredSphereQuality(t *testing.T) {
	result := run(t, `sphere(r=5, $fn=16);`)
	require.True(t, result.Success())
	require.NotNil(t, result.Geometry)

	min, max := csg.Bounds(result.Geometry.Mesh)
	assert.InDelta(t, -5, min.X, 0.2)
	assert.InDelta(t, 5, max.X, 0.2)
}

func TestScenarioDifferenceWithHole(t *testing.T) {
	result := run(t, `difference() { cube([10,10,10], center=true); cylinder(h=20, r=2, center=true, $fn=16); }`)
	require.True(t, result.Success())
	require.NotNil(t, result.Geometry)
	assert.Greater(t, len(result.Geometry.Mesh.Triangles), 12)

	solidVol := 1000.0
	holeVol := csg.Volume(result.Geometry.Mesh)
	assert.Less(t, holeVol, solidVol)
}

func TestScenarioColoredUnionFirstOperandColorWins(t *testing.T) {
	result := run(t, `union() { color("red") cube(5); color("blue") translate([10,0,0]) cube(5); }`)
	require.True(t, result.Success())
	require.NotNil(t, result.Geometry)
	require.NotNil(t, result.Geometry.Meta.Color)
	assert.InDelta(t, 1.0, result.Geometry.Meta.Color.R, 1e-9)
}

func TestScenarioLinearExtrudeWithTwist(t *testing.T) {
	result := run(t, `linear_extrude(height=10, twist=90, slices=8) square([2,2]);`)
	require.True(t, result.Success())
	require.NotNil(t, result.Geometry)

	min, max := csg.Bounds(result.Geometry.Mesh)
	assert.InDelta(t, 0, min.Z, 1e-6)
	assert.InDelta(t, 10, max.Z, 1e-6)
}

func TestScenarioForLoopUnion(t *testing.T) {
	result := run(t, `for (i = [0:2]) translate([i*10, 0, 0]) cube(5);`)
	require.True(t, result.Success())
	require.NotNil(t, result.Geometry)
	assert.Len(t, result.Geometry.Mesh.Triangles, 36)

	min, max := csg.Bounds(result.Geometry.Mesh)
	assert.InDelta(t, 0, min.X, 1e-6)
	assert.InDelta(t, 25, max.X, 1e-6)
}

func TestScenarioModifierOverride(t *testing.T) {
	result := run(t, `union() { cube(5); !translate([20,0,0]) cube(3); }`)
	require.True(t, result.Success())
	require.NotNil(t, result.Geometry)
	assert.Len(t, result.Geometry.Mesh.Triangles, 12)

	min, max := csg.Bounds(result.Geometry.Mesh)
	assert.InDelta(t, 20, min.X, 1e-6)
	assert.InDelta(t, 23, max.X, 1e-6)
}

func TestScenarioUndefinedModuleReportsLogicError(t *testing.T) {
	result := run(t, `not_a_real_module(1, 2, 3);`)
	assert.False(t, result.Success())
	require.NotEmpty(t, result.Errors)
	found := false
	for _, e := range result.Errors {
		if e.Code == "logic.undefined_variable" {
			found = true
		}
	}
	assert.True(t, found, "expected a logic.undefined_variable error, got %+v", result.Errors)
}

func TestScenarioDifferenceLeftAssociative(t *testing.T) {
	resultABC := run(t, `difference() { cube([10,10,10]); translate([5,0,0]) cube([10,10,10]); translate([0,5,0]) cube([10,10,10]); }`)
	require.True(t, resultABC.Success())

	volABC := csg.Volume(resultABC.Geometry.Mesh)
	assert.Greater(t, volABC, 0.0)
	assert.Less(t, volABC, 1000.0)
	// ((A - B) - C) leaves the [0,5]x[0,5]x[0,10] block (250); the
	// right-associative A - (B - C) would leave 750.
	assert.InDelta(t, 250.0, volABC, 1.0)
}

func TestScenarioUnionOfOneIsIdempotent(t *testing.T) {
	result := run(t, `union() { cube(5); }`)
	require.True(t, result.Success())
	assert.Len(t, result.Geometry.Mesh.Triangles, 12)
}
