// Package scope implements the OpenSCAD lexical scope stack (spec §3.3): a
// chain of frames with lexical shadowing for ordinary names and dynamic
// scoping for `$`-prefixed special variables (spec §3.3, §4.3, §9).
package scope

import (
	"github.com/gocad/scadcore/scad"
	"github.com/gocad/scadcore/value"
)

// ModuleDef is a user-defined module: its parameter list, body, and the
// lexical scope it was defined in (for closures over outer variables).
type ModuleDef struct {
	Name     string
	Params   []value.Param
	Body     *scad.BlockStmt
	Captured *Scope
}

// FunctionDef is a user-defined function.
type FunctionDef struct {
	Name     string
	Params   []value.Param
	Body     scad.Expr
	Captured *Scope
}

// childrenContext records the caller's child statements for children() calls
// (spec §4.3), plus the scope those children should be evaluated in — the
// caller's scope at the point of the module call, not the module's own
// parameter scope.
type childrenContext struct {
	children []scad.Stmt
	caller   *Scope
}

// Scope is one frame of the lexical scope stack. Ordinary names are
// lexically scoped (looked up by walking outward through parent frames);
// special ($-prefixed) variables are dynamically scoped: a child frame
// starts with a copy of its parent's special variables and may rebind them
// without affecting siblings or the parent (spec §3.3, §9).
type Scope struct {
	parent    *Scope
	vars      map[string]value.Value
	modules   map[string]*ModuleDef
	functions map[string]*FunctionDef
	special   map[string]value.Value
	children  *childrenContext
}

// NewRoot creates the top-level scope with OpenSCAD's default special
// variables (spec §6.3).
func NewRoot() *Scope {
	return &Scope{
		vars:      map[string]value.Value{},
		modules:   map[string]*ModuleDef{},
		functions: map[string]*FunctionDef{},
		special: map[string]value.Value{
			"$fn":      value.Number(0),
			"$fa":      value.Number(12),
			"$fs":      value.Number(2),
			"$t":       value.Number(0),
			"$children": value.Number(0),
			"$preview": value.Bool(true),
			"$vpr":     value.NewVector(value.Number(55), value.Number(0), value.Number(25)),
			"$vpt":     value.NewVector(value.Number(0), value.Number(0), value.Number(0)),
			"$vpd":     value.Number(140),
			"$vpf":     value.Number(22.5),
		},
	}
}

// NewChild creates a fresh lexical frame: a new, empty variable/module/
// function namespace (so inner assignments shadow, never mutate, the
// parent's bindings) with special variables copied by value from the
// parent, and the caller's children() context inherited unless replaced.
func (s *Scope) NewChild() *Scope {
	special := make(map[string]value.Value, len(s.special))
	for k, v := range s.special {
		special[k] = v
	}
	return &Scope{
		parent:    s,
		vars:      map[string]value.Value{},
		modules:   map[string]*ModuleDef{},
		functions: map[string]*FunctionDef{},
		special:   special,
		children:  s.children,
	}
}

// SetVar binds name in this frame. Calling it again for the same name in
// the same frame implements "last write wins within a scope" (spec §4.3).
func (s *Scope) SetVar(name string, v value.Value) {
	s.vars[name] = v
}

// Lookup resolves an ordinary (non-$) name by walking outward through
// enclosing frames. It implements value.Environment so a Scope can be
// captured directly as a Function's closure.
func (s *Scope) Lookup(name string) (value.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// SetSpecial rebinds a `$name` special variable in this frame only; sibling
// and parent frames are unaffected (spec §9 dynamic scope note).
func (s *Scope) SetSpecial(name string, v value.Value) {
	s.special[name] = v
}

// GetSpecial resolves a `$name` special variable.
func (s *Scope) GetSpecial(name string) (value.Value, bool) {
	v, ok := s.special[name]
	return v, ok
}

// DefineModule binds a module definition in this frame.
func (s *Scope) DefineModule(name string, m *ModuleDef) {
	s.modules[name] = m
}

// LookupModule resolves a user-defined module by walking outward through
// enclosing frames. Builtins and plugins are consulted separately by the
// evaluator per the §4.3 resolution order.
func (s *Scope) LookupModule(name string) (*ModuleDef, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if m, ok := cur.modules[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// DefineFunction binds a function definition in this frame.
func (s *Scope) DefineFunction(name string, f *FunctionDef) {
	s.functions[name] = f
}

// LookupFunction resolves a user-defined function.
func (s *Scope) LookupFunction(name string) (*FunctionDef, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if f, ok := cur.functions[name]; ok {
			return f, true
		}
	}
	return nil, false
}

// SetChildren records the caller's child statements and scope for a
// children() call inside the module body currently being evaluated.
func (s *Scope) SetChildren(children []scad.Stmt, caller *Scope) {
	s.children = &childrenContext{children: children, caller: caller}
}

// Children returns the current children() context, if any.
func (s *Scope) Children() ([]scad.Stmt, *Scope, bool) {
	if s.children == nil {
		return nil, nil, false
	}
	return s.children.children, s.children.caller, true
}

// ChildCount returns len(Children()), or 0 outside of a module call.
func (s *Scope) ChildCount() int {
	children, _, ok := s.Children()
	if !ok {
		return 0
	}
	return len(children)
}
