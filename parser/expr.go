package parser

import (
	"miniscript/lexer"
	"miniscript/value"
)

// expression is the entry point for the precedence climb: assignment
// binds loosest, primary tightest.
func (p *Parser) expression() Expr {
	return p.assignment()
}

// assignment parses `target = value` right-associatively, validating
// after the fact that the left-hand side is an assignable form
// (Variable or IndexGet) rather than trying to predict assignability
// up front.
func (p *Parser) assignment() Expr {
	expr := p.or()

	if p.match(lexer.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *Variable:
			return &Assign{Name: target.Name, Value: value}
		case *IndexGet:
			return &IndexSet{Object: target.Object, Bracket: target.Bracket, Index: target.Index, Value: value}
		default:
			p.sink.ParserAt(equals.Lexeme, "invalid assignment target")
			return expr
		}
	}

	return expr
}

func (p *Parser) or() Expr {
	expr := p.and()
	for p.match(lexer.OR) {
		op := p.previous()
		right := p.and()
		expr = &Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) and() Expr {
	expr := p.equality()
	for p.match(lexer.AND) {
		op := p.previous()
		right := p.equality()
		expr = &Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() Expr {
	expr := p.comparison()
	for p.match(lexer.BANG_EQUAL, lexer.EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() Expr {
	expr := p.term()
	for p.match(lexer.GREATER, lexer.GREATER_EQUAL, lexer.LESS, lexer.LESS_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = &Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() Expr {
	expr := p.factor()
	for p.match(lexer.PLUS, lexer.MINUS) {
		op := p.previous()
		right := p.factor()
		expr = &Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() Expr {
	expr := p.unary()
	for p.match(lexer.STAR, lexer.SLASH) {
		op := p.previous()
		right := p.unary()
		expr = &Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() Expr {
	if p.match(lexer.BANG, lexer.MINUS) {
		op := p.previous()
		operand := p.unary()
		return &Unary{Op: op, Operand: operand}
	}
	return p.call()
}

// call parses a primary expression followed by any chain of call and
// index-get suffixes, e.g. `f(1)(2)[0]`.
func (p *Parser) call() Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(lexer.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(lexer.LEFT_BRACK):
			bracket := p.previous()
			index := p.expression()
			p.expect(lexer.RIGHT_BRACK, "expected ']' after index")
			expr = &IndexGet{Object: expr, Bracket: bracket, Index: index}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee Expr) Expr {
	var args []Expr
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				p.sink.ParserAt(p.peek().Lexeme, "can't have more than 255 arguments")
			}
			args = append(args, p.expression())
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	paren := p.expect(lexer.RIGHT_PAREN, "expected ')' after arguments")
	return &Call{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() Expr {
	switch {
	case p.match(lexer.FALSE):
		return &Literal{Value: value.Bool(false)}
	case p.match(lexer.TRUE):
		return &Literal{Value: value.Bool(true)}
	case p.match(lexer.NIL):
		return &Literal{Value: value.Nil{}}
	case p.match(lexer.NUMBER_INT):
		return &Literal{Value: value.Int(p.previous().Literal.(int64))}
	case p.match(lexer.NUMBER_FLT):
		return &Literal{Value: value.Float(p.previous().Literal.(float64))}
	case p.match(lexer.STRING):
		return &Literal{Value: value.String(p.previous().Literal.(string))}
	case p.match(lexer.CHAR):
		return &Literal{Value: value.Char(p.previous().Literal.(rune))}
	case p.match(lexer.IDENTIFIER):
		return &Variable{Name: p.previous()}
	case p.match(lexer.LEFT_BRACK):
		return p.listLiteral()
	case p.match(lexer.LEFT_PAREN):
		inner := p.expression()
		p.expect(lexer.RIGHT_PAREN, "expected ')' after expression")
		return &Grouping{Inner: inner}
	}

	p.fail("expected expression")
	return nil
}

func (p *Parser) listLiteral() Expr {
	var elems []Expr
	if !p.check(lexer.RIGHT_BRACK) {
		for {
			elems = append(elems, p.expression())
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.expect(lexer.RIGHT_BRACK, "expected ']' after list elements")
	return &ListLiteral{Elements: elems}
}
