// Package parser turns a MiniScript token stream into an abstract
// syntax tree and defines that tree's node types, keeping node
// definitions and the recursive-descent mechanics that build them in
// one package.
//
// Nodes are built once and never mutated afterward: the tree has no
// shared subtrees and no cycles.
package parser

import (
	"miniscript/lexer"
	"miniscript/value"
)

// Stmt is implemented by every statement node.
type Stmt interface {
	stmtNode()
}

// Expr is implemented by every expression node.
type Expr interface {
	exprNode()
}

// --- Statements ---------------------------------------------------

// Block groups a sequence of statements executed in a fresh child
// environment.
type Block struct {
	Statements []Stmt
}

// VarStmt declares a local binding, shadowing any outer one of the
// same name.
type VarStmt struct {
	Name lexer.Token
	Init Expr // nil if the declaration has no initializer
}

// ExprStmt evaluates an expression for its side effects and discards
// the result.
type ExprStmt struct {
	Expr Expr
}

// FunctionStmt declares a named function, capturing the defining
// environment as its closure.
type FunctionStmt struct {
	Name   lexer.Token
	Params []lexer.Token
	Body   *Block
}

// IfStmt is a conditional with an optional else branch.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil if absent
}

// WhileStmt is a condition-checked-first loop.
type WhileStmt struct {
	Cond Expr
	Body Stmt
}

// ReturnStmt unwinds to the nearest enclosing function call with an
// optional value (defaulting to nil).
type ReturnStmt struct {
	Keyword lexer.Token
	Value   Expr // nil if bare `return;`
}

// AssertStmt raises a runtime fault carrying Message's value when
// Cond is falsy.
type AssertStmt struct {
	Keyword lexer.Token
	Cond    Expr
	Message Expr
}

// ImportStmt loads and evaluates another source file into the current
// globals environment. Namespace is non-nil only for the
// `import NAME from "PATH";` form; its semantic effect is resolved in
// DESIGN.md.
type ImportStmt struct {
	Keyword   lexer.Token
	Path      lexer.Token // STRING token
	Namespace *lexer.Token
}

// PrintStmt is a first-class statement accepting one or more
// comma-separated expressions.
type PrintStmt struct {
	Keyword lexer.Token
	Args    []Expr
}

func (*Block) stmtNode()       {}
func (*VarStmt) stmtNode()     {}
func (*ExprStmt) stmtNode()    {}
func (*FunctionStmt) stmtNode() {}
func (*IfStmt) stmtNode()      {}
func (*WhileStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode()  {}
func (*AssertStmt) stmtNode()  {}
func (*ImportStmt) stmtNode()  {}
func (*PrintStmt) stmtNode()   {}

// --- Expressions ---------------------------------------------------

// Literal is a materialized constant value produced directly by the
// parser (numbers, strings, characters, booleans, nil).
type Literal struct {
	Value value.Value
}

// Variable is a reference to a bound name, resolved against the
// environment chain at evaluation time.
type Variable struct {
	Name lexer.Token
}

// Assign stores a new value into an existing (or, failing that,
// newly-defined global) binding.
type Assign struct {
	Name  lexer.Token
	Value Expr
}

// Grouping is a parenthesized sub-expression, kept as its own node so
// pretty-printing can round-trip it.
type Grouping struct {
	Inner Expr
}

// Unary is a prefix operator (`!` or `-`) applied to one operand.
type Unary struct {
	Op      lexer.Token
	Operand Expr
}

// Binary is an arithmetic or comparison operator between two operands.
type Binary struct {
	Left  Expr
	Op    lexer.Token
	Right Expr
}

// Logical is `&&` or `||`, evaluated with short-circuiting rather
// than the uniform eager evaluation Binary gets.
type Logical struct {
	Left  Expr
	Op    lexer.Token
	Right Expr
}

// Call invokes Callee with Args, left-to-right.
type Call struct {
	Callee Expr
	Paren  lexer.Token
	Args   []Expr
}

// ListLiteral constructs a fresh mutable list from its elements.
type ListLiteral struct {
	Elements []Expr
}

// IndexGet reads Object[Index].
type IndexGet struct {
	Object  Expr
	Bracket lexer.Token
	Index   Expr
}

// IndexSet writes Value into Object[Index] and evaluates to Value.
type IndexSet struct {
	Object  Expr
	Bracket lexer.Token
	Index   Expr
	Value   Expr
}

func (*Literal) exprNode()     {}
func (*Variable) exprNode()    {}
func (*Assign) exprNode()      {}
func (*Grouping) exprNode()    {}
func (*Unary) exprNode()       {}
func (*Binary) exprNode()      {}
func (*Logical) exprNode()     {}
func (*Call) exprNode()        {}
func (*ListLiteral) exprNode() {}
func (*IndexGet) exprNode()    {}
func (*IndexSet) exprNode()    {}
