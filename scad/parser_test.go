package scad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOK(t *testing.T, source string) *Program {
	t.Helper()
	lexer := NewLexer(source)
	tokens, err := lexer.Tokenize()
	require.NoError(t, err)
	parser := NewParser(tokens)
	prog, errs := parser.Parse()
	require.Empty(t, errs, "unexpected parse errors for %q: %+v", source, errs)
	return prog
}

func TestParseModuleCallStmt(t *testing.T) {
	prog := parseOK(t, "cube([1,2,3]);")
	require.Len(t, prog.Statements, 1)
	call, ok := prog.Statements[0].(*ModuleCallStmt)
	require.True(t, ok)
	assert.Equal(t, "cube", call.Name)
	require.Len(t, call.Args, 1)
}

func TestParseModifierPrefix(t *testing.T) {
	prog := parseOK(t, "!cube(1);")
	require.Len(t, prog.Statements, 1)
	mod, ok := prog.Statements[0].(*ModifierStmt)
	require.True(t, ok)
	assert.Equal(t, ModifierRoot, mod.Kind)
}

func TestParseModuleDefinitionWithChildren(t *testing.T) {
	prog := parseOK(t, "module wrapper(x) { translate([x,0,0]) children(); }")
	require.Len(t, prog.Statements, 1)
	def, ok := prog.Statements[0].(*ModuleDefStmt)
	require.True(t, ok)
	assert.Equal(t, "wrapper", def.Name)
	require.Len(t, def.Params, 1)
	assert.Equal(t, "x", def.Params[0].Name)
}

func TestParseForLoopWithRange(t *testing.T) {
	prog := parseOK(t, "for (i = [0:2]) cube(i);")
	require.Len(t, prog.Statements, 1)
	_, ok := prog.Statements[0].(*ForStmt)
	assert.True(t, ok)
}

func TestParseAssignmentAndIf(t *testing.T) {
	prog := parseOK(t, "x = 5; if (x > 0) cube(x); else sphere(1);")
	require.Len(t, prog.Statements, 2)
	_, ok := prog.Statements[0].(*AssignStmt)
	assert.True(t, ok)
	ifStmt, ok := prog.Statements[1].(*IfStmt)
	require.True(t, ok)
	assert.NotNil(t, ifStmt.Then)
	assert.NotNil(t, ifStmt.Else)
}

func TestParseImportMeshExtractsPathAndKeepsExtraArgs(t *testing.T) {
	prog := parseOK(t, `import("part.stl", convexity=4);`)
	require.Len(t, prog.Statements, 1)
	imp, ok := prog.Statements[0].(*ImportStmt)
	require.True(t, ok)
	assert.Equal(t, ImportMesh, imp.Kind)
	assert.Equal(t, "part.stl", imp.Path)
	require.Len(t, imp.Args, 2)
	assert.Equal(t, "convexity", imp.Args[1].Name)
}

func TestParseMismatchedParenReportsError(t *testing.T) {
	lexer := NewLexer("cube([1,1,1);")
	tokens, err := lexer.Tokenize()
	require.NoError(t, err)
	parser := NewParser(tokens)
	_, errs := parser.Parse()
	assert.NotEmpty(t, errs)
}
