package parser

import (
	"github.com/dl-lang/dlc/ast"
	"github.com/dl-lang/dlc/token"
	"github.com/dl-lang/dlc/types"
)

// block parses `{ statement* }`, pushing a child scope so a name
// declared inside is invisible once the block closes (spec.md §4.4:
// "each block creates a child linked to its parent").
func (p *Parser) block() *ast.BlockStatement {
	brace := p.consume(token.LEFTBRACE)
	savedScope := p.scope
	p.scope = p.env.Child(p.scope)

	p.skipNewlines()
	var stmts []ast.Node
	for !p.match(token.RIGHTBRACE) && !p.IsAtEnd() && p.err == nil {
		stmts = append(stmts, p.statement())
		p.skipNewlines()
	}
	p.consume(token.RIGHTBRACE)

	p.scope = savedScope
	return &ast.BlockStatement{LeftBrace: brace, Stmts: stmts}
}

// statement dispatches on the leading token, per spec.md §4.2: a bare
// newline is an EmptyStatement; if/return/while/for/match each start
// their own keyword; mut or a leading identifier is either a variable
// declaration or an expression statement, disambiguated by whether the
// identifier names a known type AND is not immediately followed by
// `(` (a call always wins, even when the callee shadows a type name).
func (p *Parser) statement() ast.Node {
	switch p.peek().Kind {
	case token.ENDOFLINE:
		return &ast.EmptyStatement{Pos: p.advance().Position}
	case token.IF:
		return p.ifStatement()
	case token.RETURN:
		return p.returnStatement()
	case token.WHILE:
		return p.whileStatement()
	case token.FOR:
		return p.forStatement()
	case token.MATCH:
		return p.matchStatement()
	case token.MUT:
		return p.declOrExprStatement()
	case token.IDENTIFIER:
		return p.declOrExprStatement()
	default:
		return p.expressionStatement()
	}
}

// declOrExprStatement implements the mut/identifier dispatch described
// on statement above, shared between ordinary statement parsing and a
// `for` header's init clause.
func (p *Parser) declOrExprStatement() ast.Node {
	if p.match(token.MUT) {
		return p.declarationStatement()
	}
	if p.isKnownTypeName(p.peek().Lexeme) && !p.matchNth(1, token.LEFTPAREN) {
		return p.declarationStatement()
	}
	return p.expressionStatement()
}

func (p *Parser) expressionStatement() ast.Node {
	expr := p.expression()
	return &ast.ExpressionStatement{Expr: expr}
}

// declarationStatement parses `[mut] type_name type_ext name [= init]`.
// When type_ext denotes a fixed-size array, the initializer is
// mandatory and must be a bracketed element list, producing an
// ArrayStatement instead of a VariableStatement (spec.md §4.2).
func (p *Parser) declarationStatement() ast.Node {
	var keyword token.Token
	mut := false
	if p.match(token.MUT) {
		keyword = p.advance()
		mut = true
	}

	typeTok := p.consume(token.IDENTIFIER)
	if !mut {
		keyword = typeTok
	}
	typ, ok := p.resolveTypeName(typeTok)
	if !ok {
		p.recover(unknownType(typeTok))
	}
	ext := p.typeExtension()
	nameTok := p.consume(token.IDENTIFIER)

	decl := types.VariableDeclaration{IsMutable: mut, Type: typ, TypeExtensions: ext, Name: nameTok.Lexeme}

	if decl.IsArray() {
		p.consume(token.EQUAL)
		p.consume(token.LEFTBRACKET)
		var elements []ast.Node
		if !p.match(token.RIGHTBRACKET) {
			elements = append(elements, p.expression())
			for p.match(token.COMMA) {
				p.advance()
				elements = append(elements, p.expression())
			}
		}
		p.consume(token.RIGHTBRACKET)
		p.enscope(decl)
		return &ast.ArrayStatement{Keyword: keyword, Decl: decl, Elements: elements}
	}

	var init ast.Node
	if p.match(token.EQUAL) {
		p.advance()
		init = p.expression()
	}
	p.enscope(decl)
	return &ast.VariableStatement{Keyword: keyword, Decl: decl, Init: init}
}

func (p *Parser) ifStatement() *ast.IfStatement {
	kw := p.consume(token.IF)
	p.consume(token.LEFTPAREN)
	cond := p.expression()
	p.consume(token.RIGHTPAREN)
	p.skipNewlines()
	then := p.block()

	var elseBlock *ast.BlockStatement
	saved := p.current
	p.skipNewlines()
	if p.match(token.ELSE) {
		p.advance()
		p.skipNewlines()
		elseBlock = p.block()
	} else {
		p.current = saved
	}

	return &ast.IfStatement{Keyword: kw, Cond: cond, Then: then, Else: elseBlock}
}

func (p *Parser) returnStatement() *ast.ReturnStatement {
	kw := p.consume(token.RETURN)
	if p.match(token.ENDOFLINE) || p.match(token.RIGHTBRACE) || p.IsAtEnd() {
		return &ast.ReturnStatement{Keyword: kw}
	}
	return &ast.ReturnStatement{Keyword: kw, Expr: p.expression()}
}

func (p *Parser) whileStatement() *ast.WhileStatement {
	kw := p.consume(token.WHILE)
	p.consume(token.LEFTPAREN)
	cond := p.expression()
	p.consume(token.RIGHTPAREN)
	p.skipNewlines()
	body := p.block()
	return &ast.WhileStatement{Keyword: kw, Cond: cond, Body: body}
}

// forStatement parses `for (init; cond; incr) { body }`. Any of the
// three header clauses may be empty; `;` is only meaningful here,
// never as a general statement terminator (spec.md's Open Question
// decision: newline terminates statements, `;` only inside a for
// header).
func (p *Parser) forStatement() *ast.ForStatement {
	kw := p.consume(token.FOR)
	p.consume(token.LEFTPAREN)

	var init ast.Node
	if !p.match(token.SEMICOLON) {
		init = p.declOrExprStatement()
	}
	p.consume(token.SEMICOLON)

	var cond ast.Node
	if !p.match(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON)

	var incr ast.Node
	if !p.match(token.RIGHTPAREN) {
		incr = p.expression()
	}
	p.consume(token.RIGHTPAREN)
	p.skipNewlines()
	body := p.block()

	return &ast.ForStatement{Keyword: kw, Init: init, Cond: cond, Incr: incr, Body: body}
}

// matchStatement parses `match (scrutinee) { case* }`. Each case is
// either `_ => { body }` (the default) or `Enum::Variant[(binds)] =>
// { body }`.
func (p *Parser) matchStatement() *ast.MatchStatement {
	kw := p.consume(token.MATCH)
	p.consume(token.LEFTPAREN)
	scrutinee := p.expression()
	p.consume(token.RIGHTPAREN)
	p.skipNewlines()
	p.consume(token.LEFTBRACE)
	p.skipNewlines()

	var cases []*ast.MatchCase
	for !p.match(token.RIGHTBRACE) && !p.IsAtEnd() && p.err == nil {
		cases = append(cases, p.matchCase())
		p.skipNewlines()
	}
	p.consume(token.RIGHTBRACE)

	if len(cases) == 0 {
		p.recover(noMatchCases(kw))
	}

	return &ast.MatchStatement{Keyword: kw, Scrutinee: scrutinee, Cases: cases}
}

func (p *Parser) matchCase() *ast.MatchCase {
	if p.match(token.UNDERSCORE) {
		p.advance()
		p.consume(token.FATARROW)
		p.skipNewlines()
		return &ast.MatchCase{Body: p.block()}
	}

	labelTok := p.peek()
	labelExpr := p.expression()
	label, ok := labelExpr.(*ast.EnumExpression)
	if !ok {
		p.recover(expectedEnumPath(labelTok))
	}

	// Destructured binds are visible only within this case, so they
	// live in a scope pushed here and popped once the case is done;
	// block() nests the body's own child scope inside it.
	savedScope := p.scope
	p.scope = p.env.Child(p.scope)

	var destructuring []string
	if label != nil {
		for _, arg := range label.VariantArgs() {
			if v, ok := arg.(*ast.Variable); ok {
				destructuring = append(destructuring, v.Name.Lexeme)
				p.enscope(types.VariableDeclaration{Name: v.Name.Lexeme})
			}
		}
	}

	p.consume(token.FATARROW)
	p.skipNewlines()
	body := p.block()
	p.scope = savedScope

	return &ast.MatchCase{Label: label, Destructuring: destructuring, Body: body}
}
