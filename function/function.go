// Package function implements the user-defined-function side of the
// host-callable protocol, with its body executed by an injected
// Evaluator interface rather than a concrete struct, to avoid an
// import cycle with package eval.
package function

import (
	"fmt"

	"miniscript/environment"
	"miniscript/lexer"
	"miniscript/parser"
	"miniscript/value"
)

// Evaluator is the minimal surface a Function needs to run its body:
// execute a block of statements in a given environment and report
// whether a return value was produced. Package eval's Evaluator
// satisfies this.
type Evaluator interface {
	ExecBlock(stmts []parser.Stmt, env *environment.Environment) (value.Value, bool, error)
}

// Function is a MiniScript function value: its declared parameters,
// its body, and the environment active at the point it was declared
// (its closure) — captured by reference so later assignments to
// variables it closes over remain visible (late binding).
type Function struct {
	Name    string
	Params  []lexer.Token
	Body    *parser.Block
	Closure *environment.Environment
	Eval    Evaluator
}

func New(name string, params []lexer.Token, body *parser.Block, closure *environment.Environment, eval Evaluator) *Function {
	return &Function{Name: name, Params: params, Body: body, Closure: closure, Eval: eval}
}

func (*Function) Kind() value.Kind { return value.KindCallable }

func (f *Function) String() string {
	if f.Name == "" {
		return "<fn>"
	}
	return fmt.Sprintf("<fn %s>", f.Name)
}

// Arity reports the fixed number of declared parameters; MiniScript
// user-defined functions are never variadic (only host builtins are).
func (f *Function) Arity() int { return len(f.Params) }

// Call binds args to params in a fresh environment parented at the
// closure, executes the body, and unwraps a Return signal into its
// carried value, defaulting to nil.
func (f *Function) Call(_ value.Interp, args []value.Value) (value.Value, error) {
	callEnv := environment.New(f.Closure)
	for i, param := range f.Params {
		callEnv.Define(param.Lexeme, args[i])
	}

	result, didReturn, err := f.Eval.ExecBlock(f.Body.Statements, callEnv)
	if err != nil {
		return nil, err
	}
	if didReturn {
		return result, nil
	}
	return value.Nil{}, nil
}
