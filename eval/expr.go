package eval

import (
	"miniscript/environment"
	"miniscript/lexer"
	"miniscript/parser"
	"miniscript/value"
)

// eval dispatches one expression via an exhaustive type switch over
// every *parser.<X> expression variant.
func (in *Evaluator) eval(expr parser.Expr, env *environment.Environment) (value.Value, error) {
	switch e := expr.(type) {
	case *parser.Literal:
		return e.Value, nil

	case *parser.Variable:
		v, ok := env.Get(e.Name.Lexeme)
		if !ok {
			return nil, runtimeErrorf(e.Name.Line, "Undefined variable '%s'", e.Name.Lexeme)
		}
		return v, nil

	case *parser.Assign:
		v, err := in.eval(e.Value, env)
		if err != nil {
			return nil, err
		}
		if !env.Assign(e.Name.Lexeme, v) {
			// Implicit global assignment: an undeclared name assigned
			// anywhere defines it at globals.
			env.Global().Define(e.Name.Lexeme, v)
		}
		return v, nil

	case *parser.Grouping:
		return in.eval(e.Inner, env)

	case *parser.Unary:
		return in.evalUnary(e, env)

	case *parser.Binary:
		return in.evalBinary(e, env)

	case *parser.Logical:
		return in.evalLogical(e, env)

	case *parser.Call:
		return in.evalCall(e, env)

	case *parser.ListLiteral:
		elems := make([]value.Value, len(e.Elements))
		for i, el := range e.Elements {
			v, err := in.eval(el, env)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return value.NewList(elems), nil

	case *parser.IndexGet:
		obj, err := in.eval(e.Object, env)
		if err != nil {
			return nil, err
		}
		idx, err := in.eval(e.Index, env)
		if err != nil {
			return nil, err
		}
		list, i, err := in.checkIndex(e.Bracket.Line, obj, idx)
		if err != nil {
			return nil, err
		}
		return list.Elements[i], nil

	case *parser.IndexSet:
		obj, err := in.eval(e.Object, env)
		if err != nil {
			return nil, err
		}
		idx, err := in.eval(e.Index, env)
		if err != nil {
			return nil, err
		}
		val, err := in.eval(e.Value, env)
		if err != nil {
			return nil, err
		}
		list, i, err := in.checkIndex(e.Bracket.Line, obj, idx)
		if err != nil {
			return nil, err
		}
		list.Elements[i] = val
		return val, nil

	default:
		return nil, runtimeErrorf(0, "unhandled expression type %T", expr)
	}
}

func (in *Evaluator) checkIndex(line int, obj, idx value.Value) (*value.List, int, error) {
	list, ok := obj.(*value.List)
	if !ok {
		return nil, 0, runtimeErrorf(line, "Only lists can be indexed")
	}
	// Arithmetic always widens to float, so a computed index such as a
	// for-loop counter arrives here as value.Float even though it
	// denotes a whole number. Accept any numeric value with no
	// fractional part as an index; anything else is rejected.
	i, ok := indexValue(idx)
	if !ok {
		return nil, 0, runtimeErrorf(line, "Index must be an integer")
	}
	if i < 0 || i >= len(list.Elements) {
		return nil, 0, runtimeErrorf(line, "Index out of range")
	}
	return list, i, nil
}

func indexValue(idx value.Value) (int, bool) {
	switch n := idx.(type) {
	case value.Int:
		return int(n), true
	case value.Float:
		if float64(n) != float64(int64(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func (in *Evaluator) evalUnary(e *parser.Unary, env *environment.Environment) (value.Value, error) {
	operand, err := in.eval(e.Operand, env)
	if err != nil {
		return nil, err
	}
	switch e.Op.Type {
	case lexer.BANG:
		return value.Bool(!value.Truthy(operand)), nil
	case lexer.MINUS:
		switch n := operand.(type) {
		case value.Int:
			return -n, nil
		case value.Float:
			return -n, nil
		default:
			return nil, runtimeErrorf(e.Op.Line, "Operand must be a number")
		}
	default:
		return nil, runtimeErrorf(e.Op.Line, "unhandled unary operator %s", e.Op.Lexeme)
	}
}

func (in *Evaluator) evalBinary(e *parser.Binary, env *environment.Environment) (value.Value, error) {
	left, err := in.eval(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case lexer.EQUAL_EQUAL:
		return value.Bool(value.Equal(left, right)), nil
	case lexer.BANG_EQUAL:
		return value.Bool(!value.Equal(left, right)), nil

	case lexer.PLUS:
		lf, lok := value.AsFloat(left)
		rf, rok := value.AsFloat(right)
		if lok && rok {
			return value.Float(lf + rf), nil
		}
		// Concatenation fallback: either operand is non-numeric.
		return value.String(left.String() + right.String()), nil

	case lexer.MINUS, lexer.STAR, lexer.SLASH:
		lf, lok := value.AsFloat(left)
		rf, rok := value.AsFloat(right)
		if !lok || !rok {
			return nil, runtimeErrorf(e.Op.Line, "Operands must be numbers")
		}
		switch e.Op.Type {
		case lexer.MINUS:
			return value.Float(lf - rf), nil
		case lexer.STAR:
			return value.Float(lf * rf), nil
		case lexer.SLASH:
			if rf == 0 {
				return nil, runtimeErrorf(e.Op.Line, "Division by zero")
			}
			return value.Float(lf / rf), nil
		}

	case lexer.LESS, lexer.LESS_EQUAL, lexer.GREATER, lexer.GREATER_EQUAL:
		lf, lok := value.AsFloat(left)
		rf, rok := value.AsFloat(right)
		if !lok || !rok {
			return nil, runtimeErrorf(e.Op.Line, "Operands must be numbers")
		}
		switch e.Op.Type {
		case lexer.LESS:
			return value.Bool(lf < rf), nil
		case lexer.LESS_EQUAL:
			return value.Bool(lf <= rf), nil
		case lexer.GREATER:
			return value.Bool(lf > rf), nil
		case lexer.GREATER_EQUAL:
			return value.Bool(lf >= rf), nil
		}
	}

	return nil, runtimeErrorf(e.Op.Line, "unhandled binary operator %s", e.Op.Lexeme)
}

func (in *Evaluator) evalLogical(e *parser.Logical, env *environment.Environment) (value.Value, error) {
	left, err := in.eval(e.Left, env)
	if err != nil {
		return nil, err
	}
	// Short-circuit, but the combined expression always yields a
	// coerced boolean, never the raw operand.
	if e.Op.Type == lexer.OR {
		if value.Truthy(left) {
			return value.Bool(true), nil
		}
	} else {
		if !value.Truthy(left) {
			return value.Bool(false), nil
		}
	}
	right, err := in.eval(e.Right, env)
	if err != nil {
		return nil, err
	}
	return value.Bool(value.Truthy(right)), nil
}

func (in *Evaluator) evalCall(e *parser.Call, env *environment.Environment) (value.Value, error) {
	calleeVal, err := in.eval(e.Callee, env)
	if err != nil {
		return nil, err
	}
	callable, ok := calleeVal.(value.Callable)
	if !ok {
		return nil, runtimeErrorf(e.Paren.Line, "Can only call functions and callables")
	}

	args := make([]value.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.eval(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	arity := callable.Arity()
	if arity >= 0 && len(args) != arity {
		return nil, runtimeErrorf(e.Paren.Line, "Expected %d arguments but got %d", arity, len(args))
	}

	result, err := callable.Call(in, args)
	if err != nil {
		if _, ok := err.(*RuntimeError); ok {
			return nil, err
		}
		return nil, runtimeErrorf(e.Paren.Line, "%s", err.Error())
	}
	return result, nil
}
