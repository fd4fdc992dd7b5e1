package scad

// Program is the root of an OpenSCAD AST (one parsed translation unit).
type Program struct {
	Statements []Stmt
	Span       Span
}

// Node is implemented by every AST node.
type Node interface {
	Pos() Span
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	exprNode()
}

// ModifierKind identifies one of the four OpenSCAD modifier prefixes.
type ModifierKind uint8

const (
	ModifierNone ModifierKind = iota
	ModifierDebug                // #
	ModifierBackground           // %
	ModifierRoot                 // !
	ModifierDisable              // *
)

// Argument is a (possibly named) call argument: `r=5` or a bare positional value.
type Argument struct {
	Name  string // empty for positional arguments
	Value Expr
}

// ModuleCallStmt is a call to a module: a user-defined module, a builtin
// primitive/transform/boolean, or a plugin-registered extension. The
// distinction is resolved by the evaluator (see §4.3 resolution order), not
// by the parser, so that a user module can shadow a builtin of the same name.
type ModuleCallStmt struct {
	Name     string
	Args     []Argument
	Children []Stmt // empty for primitives; populated for `{ ... }` or single-child-statement forms
	Span     Span
}

func (m *ModuleCallStmt) Pos() Span { return m.Span }
func (m *ModuleCallStmt) stmtNode() {}

// ModifierStmt wraps a statement with one of the `# % ! *` modifier
// prefixes (spec §4.3). Kept as a separate wrapper, rather than a field on
// every statement kind, so any statement form can carry a modifier uniformly.
type ModifierStmt struct {
	Kind  ModifierKind
	Child Stmt
	Span  Span
}

func (m *ModifierStmt) Pos() Span { return m.Span }
func (m *ModifierStmt) stmtNode() {}

// Parameter is a module or function parameter, with an optional default.
type Parameter struct {
	Name    string
	Default Expr // nil if required
}

// ModuleDefStmt declares a user module.
type ModuleDefStmt struct {
	Name   string
	Params []Parameter
	Body   *BlockStmt
	Span   Span
}

func (m *ModuleDefStmt) Pos() Span { return m.Span }
func (m *ModuleDefStmt) stmtNode() {}

// FunctionDefStmt declares a user function.
type FunctionDefStmt struct {
	Name   string
	Params []Parameter
	Body   Expr
	Span   Span
}

func (f *FunctionDefStmt) Pos() Span { return f.Span }
func (f *FunctionDefStmt) stmtNode() {}

// BlockStmt is a `{ ... }` statement sequence.
type BlockStmt struct {
	Statements []Stmt
	Span       Span
}

func (b *BlockStmt) Pos() Span { return b.Span }
func (b *BlockStmt) stmtNode() {}

// AssignStmt binds a name in the current frame.
type AssignStmt struct {
	Name  string
	Value Expr
	Span  Span
}

func (a *AssignStmt) Pos() Span { return a.Span }
func (a *AssignStmt) stmtNode() {}

// IfStmt is a conditional statement. Else may be nil, a *BlockStmt, or a
// nested *IfStmt (for `else if`).
type IfStmt struct {
	Cond Expr
	Then *BlockStmt
	Else Stmt
	Span Span
}

func (i *IfStmt) Pos() Span { return i.Span }
func (i *IfStmt) stmtNode() {}

// ForClause is a single `var = range` clause of a (possibly multi-variable) for loop.
type ForClause struct {
	Var   string
	Range Expr
}

// ForStmt iterates over one or more ranges/vectors, unioning the geometry
// produced by each iteration of its body.
type ForStmt struct {
	Clauses []ForClause
	Body    Stmt
	Span    Span
}

func (f *ForStmt) Pos() Span { return f.Span }
func (f *ForStmt) stmtNode() {}

// LetStmt introduces a block-scoped set of bindings visible to Body.
type LetStmt struct {
	Bindings []AssignStmt
	Body     Stmt
	Span     Span
}

func (l *LetStmt) Pos() Span { return l.Span }
func (l *LetStmt) stmtNode() {}

// EchoStmt prints its evaluated arguments (a host-observable side effect,
// collected into the evaluation result rather than written to stdout).
type EchoStmt struct {
	Args []Expr
	Span Span
}

func (e *EchoStmt) Pos() Span { return e.Span }
func (e *EchoStmt) stmtNode() {}

// AssertStmt aborts evaluation with a logic error if Cond is falsy.
type AssertStmt struct {
	Cond    Expr
	Message Expr // nil if omitted
	Span    Span
}

func (a *AssertStmt) Pos() Span { return a.Span }
func (a *AssertStmt) stmtNode() {}

// ImportKind distinguishes the three file-inclusion statements.
type ImportKind uint8

const (
	ImportInclude ImportKind = iota // textually inlines the file, including its top-level geometry
	ImportUse                       // imports only module/function/const definitions
	ImportMesh                      // import(): loads an external triangle mesh (STL etc.)
)

// ImportStmt is `include <path>`, `use <path>`, or `import("path")`.
type ImportStmt struct {
	Kind ImportKind
	Path string
	Args []Argument // import() accepts extra parameters, e.g. convexity
	Span Span
}

func (i *ImportStmt) Pos() Span { return i.Span }
func (i *ImportStmt) stmtNode() {}

// Expressions

// Ident is a bare name reference (variable, or the target of member/index access).
type Ident struct {
	Name string
	Span Span
}

func (i *Ident) Pos() Span { return i.Span }
func (i *Ident) exprNode() {}

// SpecialVarExpr references a `$name` dynamically-scoped variable.
type SpecialVarExpr struct {
	Name string
	Span Span
}

func (s *SpecialVarExpr) Pos() Span { return s.Span }
func (s *SpecialVarExpr) exprNode() {}

// NumberLit is an integer or floating point literal.
type NumberLit struct {
	Value float64
	Span  Span
}

func (n *NumberLit) Pos() Span { return n.Span }
func (n *NumberLit) exprNode() {}

// StringLit is a string literal with escapes already resolved.
type StringLit struct {
	Value string
	Span  Span
}

func (s *StringLit) Pos() Span { return s.Span }
func (s *StringLit) exprNode() {}

// BoolLit is `true` or `false`.
type BoolLit struct {
	Value bool
	Span  Span
}

func (b *BoolLit) Pos() Span { return b.Span }
func (b *BoolLit) exprNode() {}

// UndefLit is the literal `undef`.
type UndefLit struct {
	Span Span
}

func (u *UndefLit) Pos() Span { return u.Span }
func (u *UndefLit) exprNode() {}

// VectorLit is a `[e1, e2, ...]` vector literal.
type VectorLit struct {
	Elements []Expr
	Span     Span
}

func (v *VectorLit) Pos() Span { return v.Span }
func (v *VectorLit) exprNode() {}

// RangeLit is `[start : end]` or `[start : step : end]`. Step is nil in the
// two-element form (implying a step of 1).
type RangeLit struct {
	Start Expr
	Step  Expr // nil for the two-argument form
	End   Expr
	Span  Span
}

func (r *RangeLit) Pos() Span { return r.Span }
func (r *RangeLit) exprNode() {}

// BinaryExpr is a binary operator application.
type BinaryExpr struct {
	Op    TokenKind
	Left  Expr
	Right Expr
	Span  Span
}

func (b *BinaryExpr) Pos() Span { return b.Span }
func (b *BinaryExpr) exprNode() {}

// UnaryExpr is a unary operator application (`!`, unary `-`, unary `+`).
type UnaryExpr struct {
	Op      TokenKind
	Operand Expr
	Span    Span
}

func (u *UnaryExpr) Pos() Span { return u.Span }
func (u *UnaryExpr) exprNode() {}

// TernaryExpr is `cond ? then : else`.
type TernaryExpr struct {
	Cond Expr
	Then Expr
	Else Expr
	Span Span
}

func (t *TernaryExpr) Pos() Span { return t.Span }
func (t *TernaryExpr) exprNode() {}

// IndexExpr is `target[index]`.
type IndexExpr struct {
	Target Expr
	Index  Expr
	Span   Span
}

func (i *IndexExpr) Pos() Span { return i.Span }
func (i *IndexExpr) exprNode() {}

// CallExpr is a function call used as an expression (a builtin math function
// or a user `function` call).
type CallExpr struct {
	Name string
	Args []Argument
	Span Span
}

func (c *CallExpr) Pos() Span { return c.Span }
func (c *CallExpr) exprNode() {}

// LetExpr is the expression form of `let`, used inside expressions and
// list comprehensions.
type LetExpr struct {
	Bindings []AssignStmt
	Body     Expr
	Span     Span
}

func (l *LetExpr) Pos() Span { return l.Span }
func (l *LetExpr) exprNode() {}

// ComprehensionClause is one clause of a list comprehension: either a `for`
// iteration or an `if` filter.
type ComprehensionClause struct {
	Var   string // empty for an `if` filter clause
	Range Expr   // set for a `for` clause
	Cond  Expr   // set for an `if` filter clause
}

// ListComprehensionExpr is `[ expr for (var = range) if (cond) ... ]`.
type ListComprehensionExpr struct {
	Result  Expr
	Clauses []ComprehensionClause
	Span    Span
}

func (l *ListComprehensionExpr) Pos() Span { return l.Span }
func (l *ListComprehensionExpr) exprNode() {}
