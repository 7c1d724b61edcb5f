// Package std implements the host-provided side of MiniScript's
// callable protocol and a small illustrative builtin catalogue.
//
// The evaluator core never imports this package — builtins are wired
// into globals by the CLI collaborator (cmd/miniscript), keeping
// eval.Evaluator agnostic of any concrete catalogue.
package std

import (
	"fmt"
	"time"

	"miniscript/value"
)

// Builtin is a host-provided callable: a name (for diagnostics and
// introspection), a declared arity (-1 for variadic), and the Go
// function implementing it.
type Builtin struct {
	Name    string
	NumArgs int
	Fn      func(interp value.Interp, args []value.Value) (value.Value, error)
}

func (*Builtin) Kind() value.Kind { return value.KindCallable }
func (b *Builtin) String() string { return "<native fn>" }
func (b *Builtin) Arity() int     { return b.NumArgs }

func (b *Builtin) Call(interp value.Interp, args []value.Value) (value.Value, error) {
	return b.Fn(interp, args)
}

// Install registers the illustrative builtin catalogue into env.
// env only needs a Define method, so std does not need to import
// package environment's concrete type.
func Install(env interface{ Define(name string, v value.Value) }) {
	for _, b := range []*Builtin{clockBuiltin, lenBuiltin, typeBuiltin, formatBuiltin} {
		env.Define(b.Name, b)
	}
}

var clockBuiltin = &Builtin{
	Name:    "clock",
	NumArgs: 0,
	Fn: func(_ value.Interp, _ []value.Value) (value.Value, error) {
		return value.Float(float64(time.Now().Unix())), nil
	},
}

var lenBuiltin = &Builtin{
	Name:    "len",
	NumArgs: 1,
	Fn: func(_ value.Interp, args []value.Value) (value.Value, error) {
		switch v := args[0].(type) {
		case *value.List:
			return value.Int(len(v.Elements)), nil
		case value.String:
			return value.Int(len([]rune(string(v)))), nil
		default:
			return nil, fmt.Errorf("len expects a list or string")
		}
	},
}

var typeBuiltin = &Builtin{
	Name:    "type",
	NumArgs: 1,
	Fn: func(_ value.Interp, args []value.Value) (value.Value, error) {
		return value.String(args[0].Kind().String()), nil
	},
}

// formatBuiltin demonstrates variadic dispatch (arity -1): it
// concatenates the string form of every argument, distinct from the
// `print` statement.
var formatBuiltin = &Builtin{
	Name:    "format",
	NumArgs: -1,
	Fn: func(_ value.Interp, args []value.Value) (value.Value, error) {
		out := ""
		for _, a := range args {
			out += a.String()
		}
		return value.String(out), nil
	},
}
