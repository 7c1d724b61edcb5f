package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miniscript/diag"
	"miniscript/lexer"
)

func parse(t *testing.T, src string) ([]Stmt, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink()
	tokens := lexer.New(src, "<test>", sink).ScanTokens()
	stmts := New(tokens, "<test>", sink).Parse()
	return stmts, sink
}

func TestParse_VarDeclAndExprStmt(t *testing.T) {
	stmts, sink := parse(t, "var x = 1 + 2; x;")
	require.False(t, sink.HadError())
	require.Len(t, stmts, 2)
	v, ok := stmts[0].(*VarStmt)
	require.True(t, ok)
	assert.Equal(t, "x", v.Name.Lexeme)
	bin, ok := v.Init.(*Binary)
	require.True(t, ok)
	assert.Equal(t, lexer.PLUS, bin.Op.Type)
}

func TestParse_FunctionDeclaration(t *testing.T) {
	stmts, sink := parse(t, "function add(a, b) { return a + b; }")
	require.False(t, sink.HadError())
	require.Len(t, stmts, 1)
	fn, ok := stmts[0].(*FunctionStmt)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name.Lexeme)
	require.Len(t, fn.Params, 2)
	require.Len(t, fn.Body.Statements, 1)
	_, ok = fn.Body.Statements[0].(*ReturnStmt)
	assert.True(t, ok)
}

func TestParse_IfElse(t *testing.T) {
	stmts, sink := parse(t, "if (x < 1) { print x; } else { print 2; }")
	require.False(t, sink.HadError())
	ifStmt, ok := stmts[0].(*IfStmt)
	require.True(t, ok)
	assert.NotNil(t, ifStmt.Then)
	assert.NotNil(t, ifStmt.Else)
}

func TestParse_WhileLoop(t *testing.T) {
	stmts, sink := parse(t, "while (true) { print 1; }")
	require.False(t, sink.HadError())
	_, ok := stmts[0].(*WhileStmt)
	assert.True(t, ok)
}

// ForLoop must desugar into a Block{initializer, While{cond, Block{body, increment}}}.
func TestParse_ForLoopDesugars(t *testing.T) {
	stmts, sink := parse(t, "for (var i = 0; i < 3; i = i + 1) { print i; }")
	require.False(t, sink.HadError())
	block, ok := stmts[0].(*Block)
	require.True(t, ok)
	require.Len(t, block.Statements, 2)
	_, ok = block.Statements[0].(*VarStmt)
	assert.True(t, ok)
	whileStmt, ok := block.Statements[1].(*WhileStmt)
	require.True(t, ok)
	innerBlock, ok := whileStmt.Body.(*Block)
	require.True(t, ok)
	require.Len(t, innerBlock.Statements, 2)
}

func TestParse_ListLiteralAndIndex(t *testing.T) {
	stmts, sink := parse(t, "var xs = [1, 2, 3]; xs[0] = 9;")
	require.False(t, sink.HadError())
	v := stmts[0].(*VarStmt)
	list, ok := v.Init.(*ListLiteral)
	require.True(t, ok)
	assert.Len(t, list.Elements, 3)
	exprStmt := stmts[1].(*ExprStmt)
	_, ok = exprStmt.Expr.(*IndexSet)
	assert.True(t, ok)
}

func TestParse_CallChain(t *testing.T) {
	stmts, sink := parse(t, "f(1)(2);")
	require.False(t, sink.HadError())
	exprStmt := stmts[0].(*ExprStmt)
	outer, ok := exprStmt.Expr.(*Call)
	require.True(t, ok)
	_, ok = outer.Callee.(*Call)
	assert.True(t, ok)
}

func TestParse_AssignToNonTargetIsError(t *testing.T) {
	_, sink := parse(t, "1 = 2;")
	assert.True(t, sink.HadError())
}

func TestParse_InvalidTokenRecoversAtNextStatement(t *testing.T) {
	stmts, sink := parse(t, "var = ; print 1;")
	assert.True(t, sink.HadError())
	// the parser should still recover and parse the following print statement.
	var foundPrint bool
	for _, s := range stmts {
		if _, ok := s.(*PrintStmt); ok {
			foundPrint = true
		}
	}
	assert.True(t, foundPrint)
}

func TestParse_ImportWithNamespace(t *testing.T) {
	stmts, sink := parse(t, `import m from "lib.ms";`)
	require.False(t, sink.HadError())
	imp, ok := stmts[0].(*ImportStmt)
	require.True(t, ok)
	require.NotNil(t, imp.Namespace)
	assert.Equal(t, "m", imp.Namespace.Lexeme)
	assert.Equal(t, "lib.ms", imp.Path.Literal)
}

func TestParse_ImportWithoutNamespace(t *testing.T) {
	stmts, sink := parse(t, `import "lib.ms";`)
	require.False(t, sink.HadError())
	imp, ok := stmts[0].(*ImportStmt)
	require.True(t, ok)
	assert.Nil(t, imp.Namespace)
}

func TestParse_AssertStmt(t *testing.T) {
	stmts, sink := parse(t, `assert x > 0, "x must be positive";`)
	require.False(t, sink.HadError())
	a, ok := stmts[0].(*AssertStmt)
	require.True(t, ok)
	assert.NotNil(t, a.Cond)
	assert.NotNil(t, a.Message)
}

func TestParse_PrecedenceOfArithmetic(t *testing.T) {
	stmts, sink := parse(t, "1 + 2 * 3;")
	require.False(t, sink.HadError())
	exprStmt := stmts[0].(*ExprStmt)
	bin := exprStmt.Expr.(*Binary)
	assert.Equal(t, lexer.PLUS, bin.Op.Type)
	_, ok := bin.Right.(*Binary)
	assert.True(t, ok, "multiplication should bind tighter than addition")
}

func TestParse_GroupingRoundTrips(t *testing.T) {
	stmts, sink := parse(t, "(1 + 2) * 3;")
	require.False(t, sink.HadError())
	exprStmt := stmts[0].(*ExprStmt)
	bin := exprStmt.Expr.(*Binary)
	assert.Equal(t, lexer.STAR, bin.Op.Type)
	_, ok := bin.Left.(*Grouping)
	assert.True(t, ok)
}
