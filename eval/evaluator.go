// Package eval is the tree-walking evaluator for MiniScript. It
// dispatches on AST node type via exhaustive Go type switches rather
// than a reflective Visitor interface, and threads an explicit
// control-flow signal for `return` rather than using exception-like
// unwinding.
package eval

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"miniscript/diag"
	"miniscript/environment"
	"miniscript/function"
	"miniscript/lexer"
	"miniscript/module"
	"miniscript/parser"
	"miniscript/value"
)

// signal is the evaluator's explicit control-flow sum type: a
// statement sequence either falls through normally or unwinds a
// Return up to the nearest function call boundary. A third case
// (Fault) is carried separately as the ordinary Go `error` return
// rather than folded into this type, since Go already gives faults a
// dedicated channel.
type signal int

const (
	sigNormal signal = iota
	sigReturn
)

// Evaluator holds the globals environment, diagnostic sink, output
// writer, and import-tracking state for one interpreter instance.
type Evaluator struct {
	Globals *environment.Environment
	Sink    *diag.Sink
	Writer  io.Writer

	currentFile string
	loaded      map[string]bool // absolute paths already imported, to break cycles
}

// New creates an Evaluator with a fresh globals environment. writer
// receives `print` output; sink receives runtime diagnostics.
func New(sink *diag.Sink, writer io.Writer) *Evaluator {
	return &Evaluator{
		Globals:     environment.New(nil),
		Sink:        sink,
		Writer:      writer,
		currentFile: "<unknown>",
		loaded:      make(map[string]bool),
	}
}

// Interpret runs stmts under globals, reporting any runtime fault to
// Sink and aborting that top-level call — the host process and
// interpreter state both survive, which matters for the interactive
// prompt continuing after an error.
func (in *Evaluator) Interpret(stmts []parser.Stmt, file string) {
	prevFile := in.currentFile
	in.currentFile = file
	defer func() { in.currentFile = prevFile }()

	for _, stmt := range stmts {
		if _, _, err := in.exec(stmt, in.Globals); err != nil {
			in.report(err)
			return
		}
	}
}

func (in *Evaluator) report(err error) {
	if re, ok := err.(*RuntimeError); ok {
		in.Sink.Runtime(in.currentFile, re.Line, re.Msg)
		return
	}
	in.Sink.Runtime(in.currentFile, 0, err.Error())
}

// CallValue lets a host-provided builtin invoke an arbitrary
// MiniScript value as a function, satisfying value.Interp.
func (in *Evaluator) CallValue(fn value.Value, args []value.Value) (value.Value, error) {
	callable, ok := fn.(value.Callable)
	if !ok {
		return nil, runtimeErrorf(0, "Can only call functions and callables")
	}
	return callable.Call(in, args)
}

// ExecBlock runs stmts directly in env (no further child scope),
// satisfying function.Evaluator for the user-function call protocol:
// the callee already created the fresh environment, so the body's
// statements run inside it, not a nested child of it.
func (in *Evaluator) ExecBlock(stmts []parser.Stmt, env *environment.Environment) (value.Value, bool, error) {
	sig, val, err := in.execStatements(stmts, env)
	if err != nil {
		return nil, false, err
	}
	return val, sig == sigReturn, nil
}

func (in *Evaluator) execStatements(stmts []parser.Stmt, env *environment.Environment) (signal, value.Value, error) {
	for _, stmt := range stmts {
		sig, val, err := in.exec(stmt, env)
		if err != nil {
			return sigNormal, nil, err
		}
		if sig == sigReturn {
			return sig, val, nil
		}
	}
	return sigNormal, nil, nil
}

// exec dispatches one statement via an exhaustive type switch over
// every *parser.<X>Stmt variant.
func (in *Evaluator) exec(stmt parser.Stmt, env *environment.Environment) (signal, value.Value, error) {
	switch s := stmt.(type) {
	case *parser.Block:
		child := environment.New(env)
		return in.execStatements(s.Statements, child)

	case *parser.VarStmt:
		var v value.Value = value.Nil{}
		if s.Init != nil {
			var err error
			v, err = in.eval(s.Init, env)
			if err != nil {
				return sigNormal, nil, err
			}
		}
		env.Define(s.Name.Lexeme, v)
		return sigNormal, nil, nil

	case *parser.ExprStmt:
		_, err := in.eval(s.Expr, env)
		return sigNormal, nil, err

	case *parser.FunctionStmt:
		fn := function.New(s.Name.Lexeme, s.Params, s.Body, env, in)
		env.Define(s.Name.Lexeme, fn)
		return sigNormal, nil, nil

	case *parser.IfStmt:
		cond, err := in.eval(s.Cond, env)
		if err != nil {
			return sigNormal, nil, err
		}
		if value.Truthy(cond) {
			return in.exec(s.Then, env)
		}
		if s.Else != nil {
			return in.exec(s.Else, env)
		}
		return sigNormal, nil, nil

	case *parser.WhileStmt:
		for {
			cond, err := in.eval(s.Cond, env)
			if err != nil {
				return sigNormal, nil, err
			}
			if !value.Truthy(cond) {
				return sigNormal, nil, nil
			}
			sig, val, err := in.exec(s.Body, env)
			if err != nil {
				return sigNormal, nil, err
			}
			if sig == sigReturn {
				return sig, val, nil
			}
		}

	case *parser.ReturnStmt:
		var v value.Value = value.Nil{}
		if s.Value != nil {
			var err error
			v, err = in.eval(s.Value, env)
			if err != nil {
				return sigNormal, nil, err
			}
		}
		return sigReturn, v, nil

	case *parser.AssertStmt:
		cond, err := in.eval(s.Cond, env)
		if err != nil {
			return sigNormal, nil, err
		}
		if value.Truthy(cond) {
			return sigNormal, nil, nil
		}
		msg, err := in.eval(s.Message, env)
		if err != nil {
			return sigNormal, nil, err
		}
		return sigNormal, nil, runtimeErrorf(s.Keyword.Line, "Assertion failed: %s", msg.String())

	case *parser.PrintStmt:
		parts := make([]string, len(s.Args))
		for i, arg := range s.Args {
			v, err := in.eval(arg, env)
			if err != nil {
				return sigNormal, nil, err
			}
			parts[i] = v.String()
		}
		fmt.Fprintln(in.Writer, joinSpace(parts))
		return sigNormal, nil, nil

	case *parser.ImportStmt:
		return sigNormal, nil, in.execImport(s, env)

	default:
		return sigNormal, nil, runtimeErrorf(0, "unhandled statement type %T", stmt)
	}
}

func joinSpace(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " "
		}
		out += p
	}
	return out
}

// execImport resolves PATH, lexes/parses/evaluates it into the
// current globals environment, and restores the "currently executing
// file" afterward so error reporting in the importer stays correct.
// The namespace form is accepted but has no naming effect (resolved
// in DESIGN.md: definitions land in globals exactly as the
// unqualified form).
//
// Already-imported absolute paths are skipped rather than re-executed,
// a memoization choice documented in DESIGN.md that turns a mutual
// import cycle into a no-op instead of infinite recursion.
func (in *Evaluator) execImport(s *parser.ImportStmt, env *environment.Environment) error {
	path, ok := s.Path.Literal.(string)
	if !ok {
		return runtimeErrorf(s.Keyword.Line, "invalid module path")
	}

	resolved, err := module.Resolve(path, in.currentFile)
	if err != nil {
		return runtimeErrorf(s.Keyword.Line, "%s", err.Error())
	}
	if abs, err := filepath.Abs(resolved); err == nil {
		resolved = abs
	}
	if in.loaded[resolved] {
		return nil
	}
	in.loaded[resolved] = true

	src, err := os.ReadFile(resolved)
	if err != nil {
		return runtimeErrorf(s.Keyword.Line, "Cannot open file: %s", resolved)
	}

	sink := diag.NewSinkTo(in.Writer)
	tokens := lexer.New(string(src), resolved, sink).ScanTokens()
	stmts := parser.New(tokens, resolved, sink).Parse()
	if sink.HadError() {
		return runtimeErrorf(s.Keyword.Line, "errors while importing %s", path)
	}

	prevFile := in.currentFile
	in.currentFile = resolved
	_, _, execErr := in.execStatements(stmts, in.Globals)
	in.currentFile = prevFile
	return execErr
}
