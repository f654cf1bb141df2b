package parser

import (
	"github.com/dl-lang/dlc/ast"
	"github.com/dl-lang/dlc/token"
)

// ParseExpr parses a single expression, for tests and REPL-less tools
// that want an expression in isolation rather than a whole module.
func (p *Parser) ParseExpr() (ast.Node, error) {
	p.err = nil
	node := p.expression()
	return node, p.err
}

// expression is the grammar's entry point: assignment, the lowest
// precedence level (spec.md §4.2).
func (p *Parser) expression() ast.Node {
	return p.assignment()
}

// assignment := logical [ ('=' | '+=') assignment ] ; right-associative,
// and only lowers to an Assignment node once the left side has been
// checked against the lvalue rule.
func (p *Parser) assignment() ast.Node {
	expr := p.logical()

	if p.match(token.EQUAL) || p.match(token.PLUSEQUAL) {
		op := p.advance()
		rhs := p.assignment()
		if !isLvalue(expr) {
			p.recover(invalidLvalue(op))
			return expr
		}
		return &ast.Assignment{Lhs: expr, Op: op, Rhs: rhs}
	}

	return expr
}

// isLvalue implements spec.md §4.2's assignment-target rule: only a
// bare Variable, an indexing expression, a `*` deref, or a `.`/`->`
// field access may appear on an assignment's left side.
func isLvalue(n ast.Node) bool {
	switch e := n.(type) {
	case *ast.Variable:
		return true
	case *ast.IndexOperator:
		return true
	case *ast.Unary:
		return e.Op.Kind == token.STAR
	case *ast.Binary:
		return e.Op.Kind == token.DOT || e.Op.Kind == token.ARROW
	default:
		return false
	}
}

// logical := equality { ('and'|'or') equality } ;
func (p *Parser) logical() ast.Node {
	expr := p.equality()
	for p.match(token.AND) || p.match(token.OR) {
		op := p.advance()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

// equality := comparison { ('=='|'!=') comparison } ;
func (p *Parser) equality() ast.Node {
	expr := p.comparison()
	for p.match(token.EQUALEQUAL) || p.match(token.BANGEQUAL) {
		op := p.advance()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// comparison := additive { ('<'|'<='|'>'|'>=') additive } ;
func (p *Parser) comparison() ast.Node {
	expr := p.additive()
	for p.match(token.LESS) || p.match(token.LESSEQUAL) || p.match(token.GREATER) || p.match(token.GREATEREQUAL) {
		op := p.advance()
		right := p.additive()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// additive := indexed { ('+'|'-'|'*'|'/') indexed } ; `*` here is
// always multiplication, since deref-`*` only ever appears in a
// unary production's prefix position, never as an infix operator this
// loop would match (spec.md §4.2).
func (p *Parser) additive() ast.Node {
	expr := p.indexed()
	for p.match(token.PLUS) || p.match(token.MINUS) || p.match(token.STAR) || p.match(token.SLASH) {
		op := p.advance()
		right := p.indexed()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// indexed := fieldacc { '[' expression ']' } ;
func (p *Parser) indexed() ast.Node {
	expr := p.fieldacc()
	for p.match(token.LEFTBRACKET) {
		p.advance()
		index := p.expression()
		p.consume(token.RIGHTBRACKET)
		expr = &ast.IndexOperator{Target: expr, Index: index}
	}
	return expr
}

// fieldacc := unary { ('.'|'->'|'::') unary } ; a `::` whose left
// operand is a bare Variable naming a registered enum produces an
// EnumExpression instead of a generic Binary (spec.md §4.2's `::`
// Open Question decision).
func (p *Parser) fieldacc() ast.Node {
	expr := p.unary()
	for p.match(token.DOT) || p.match(token.ARROW) || p.match(token.COLONCOLON) {
		op := p.advance()
		right := p.unary()

		if op.Kind == token.COLONCOLON {
			if base, ok := expr.(*ast.Variable); ok && p.isEnumName(base.Name.Lexeme) {
				expr = &ast.EnumExpression{ColonColon: op, BaseExpr: base, Variant: right}
				continue
			}
		}
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// unary := ('-'|'!'|'++'|'&'|'*') unary | call ;
func (p *Parser) unary() ast.Node {
	switch p.peek().Kind {
	case token.MINUS, token.BANG, token.PLUSPLUS, token.AMP, token.STAR:
		op := p.advance()
		return &ast.Unary{Op: op, Expr: p.unary()}
	default:
		return p.call()
	}
}

// call := primary [ '(' args ')' ] ;
func (p *Parser) call() ast.Node {
	expr := p.primary()
	if p.match(token.LEFTPAREN) {
		p.advance()
		args := p.arguments()
		p.consume(token.RIGHTPAREN)
		expr = &ast.FunctionCall{Callee: expr, Args: args}
	}
	return expr
}

func (p *Parser) arguments() []ast.Node {
	var args []ast.Node
	if p.match(token.RIGHTPAREN) {
		return args
	}
	args = append(args, p.expression())
	for p.match(token.COMMA) {
		p.advance()
		args = append(args, p.expression())
	}
	return args
}

// primary := literal | IDENT | '(' expression ')' ;
func (p *Parser) primary() ast.Node {
	switch tok := p.peek(); tok.Kind {
	case token.NUMBER, token.SINGLEQUOTEDSTRING, token.DOUBLEQUOTEDSTRING, token.TRUE, token.FALSE:
		p.advance()
		return &ast.Literal{Token: tok}
	case token.IDENTIFIER:
		p.advance()
		return &ast.Variable{Name: tok}
	case token.LEFTPAREN:
		p.advance()
		expr := p.expression()
		p.consume(token.RIGHTPAREN)
		return &ast.Grouping{Expr: expr}
	default:
		p.recover(unexpectedToken(tok, "expression"))
		return &ast.Variable{Name: tok}
	}
}
