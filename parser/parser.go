// Package parser implements DL's recursive-descent, precedence
// climbing parser (spec.md §4.2): a token stream in, a ModuleStatement
// AST out, plus the list of `import` names the driver must resolve
// and splice in before this module. It owns the user-type registry
// (struct/enum name to declaring Node) that later parses in the same
// compilation consult to disambiguate a statement-leading identifier
// as a type name or a plain expression, and the Environment that
// tracks each function's local variable scopes as they are parsed.
//
// The Parser struct and its match/consume/recover helpers follow a
// standard recursive-descent shape; every production below is DL's
// own grammar.
package parser

import (
	"errors"

	"github.com/dl-lang/dlc/ast"
	"github.com/dl-lang/dlc/environment"
	"github.com/dl-lang/dlc/token"
	"github.com/dl-lang/dlc/types"
)

// Registry maps a user-defined type name to the Node that declared it.
// A compilation shares one Registry across every file its imports
// pull in, so a struct or enum declared in an imported module resolves
// correctly in the module that imports it.
type Registry map[types.CustomType]ast.Node

// ImportDecl is one `import name` appearing at a module's top level.
// The parser only records it; resolving and splicing the imported
// file's module is the driver's job (spec.md §1: file I/O is an
// external collaborator, not something the parser touches).
type ImportDecl struct {
	Name  string
	Token token.Token
}

// Parser turns a token stream into a ModuleStatement.
type Parser struct {
	tokens  []token.Token
	current int
	err     error

	registry Registry
	env      *environment.Environment
	scope    environment.Scope
}

// New creates a Parser over tokens, sharing registry with every other
// Parser in the same compilation so cross-file type declarations
// resolve. Pass a fresh Registry{} for a standalone parse (e.g. tests).
func New(tokens []token.Token, registry Registry) *Parser {
	env, root := environment.New()
	return &Parser{tokens: tokens, registry: registry, env: env, scope: root}
}

// ParseModule parses the whole token stream as one compilation unit
// and returns its ModuleStatement, the `import` declarations found at
// its top level, and any accumulated parse errors joined together.
func (p *Parser) ParseModule() (*ast.ModuleStatement, []ImportDecl, error) {
	p.err = nil
	mod := &ast.ModuleStatement{}
	var imports []ImportDecl

	p.skipNewlines()
	for !p.IsAtEnd() {
		switch p.peek().Kind {
		case token.IMPORT:
			importTok := p.advance()
			nameTok := p.consume(token.IDENTIFIER)
			imports = append(imports, ImportDecl{Name: nameTok.Lexeme, Token: importTok})
		case token.MODULE:
			p.advance()
			nameTok := p.consume(token.IDENTIFIER)
			if mod.Name == "" {
				mod.Name = nameTok.Lexeme
			}
		case token.INCLUDE:
			p.advance()
			pathTok := p.consume(token.DOUBLEQUOTEDSTRING)
			mod.Includes = append(mod.Includes, unquote(pathTok.Lexeme))
		case token.STRUCT:
			mod.Structs = append(mod.Structs, p.structDecl())
		case token.ENUM:
			mod.Enums = append(mod.Enums, p.enumDecl())
		case token.FN:
			mod.Functions = append(mod.Functions, p.functionDecl())
		default:
			p.recover(unexpectedToken(p.peek(), "`import`", "`module`", "`include`", "`struct`", "`enum`", "`fn`"))
			p.advance()
		}
		p.skipNewlines()
	}

	return mod, imports, p.err
}

func unquote(lexeme string) string {
	if len(lexeme) >= 2 {
		return lexeme[1 : len(lexeme)-1]
	}
	return lexeme
}

// structDecl parses `struct Name { type_name type_ext field }*`. The
// name is registered as soon as the full declaration is parsed, so
// forward references to a struct from within its own body are treated
// the same as any other unknown type (spec.md's Open Question decision:
// no forward references, single-pass registration).
func (p *Parser) structDecl() *ast.StructStatement {
	p.consume(token.STRUCT)
	nameTok := p.consume(token.IDENTIFIER)
	p.consume(token.LEFTBRACE)
	p.skipNewlines()

	var members []types.VariableDeclaration
	for !p.match(token.RIGHTBRACE) && !p.IsAtEnd() && p.err == nil {
		memberTypeTok := p.consume(token.IDENTIFIER)
		typ, ok := p.resolveTypeName(memberTypeTok)
		if !ok {
			p.recover(unknownStructMemberType(memberTypeTok))
		}
		ext := p.typeExtension()
		fieldNameTok := p.consume(token.IDENTIFIER)
		members = append(members, types.VariableDeclaration{Type: typ, TypeExtensions: ext, Name: fieldNameTok.Lexeme})
		p.skipNewlines()
	}
	p.consume(token.RIGHTBRACE)

	stmt := &ast.StructStatement{Name: nameTok, Members: members}
	p.registry[types.CustomType{Name: nameTok.Lexeme, Kind: types.Struct}] = stmt
	return stmt
}

// enumDecl parses `enum Name { Variant [( type_name (, type_name)* )] }*`.
func (p *Parser) enumDecl() *ast.EnumStatement {
	p.consume(token.ENUM)
	nameTok := p.consume(token.IDENTIFIER)
	p.consume(token.LEFTBRACE)
	p.skipNewlines()

	order := []string{}
	variants := map[string][]types.Type{}
	for !p.match(token.RIGHTBRACE) && !p.IsAtEnd() && p.err == nil {
		variantTok := p.consume(token.IDENTIFIER)
		var fields []types.Type
		if p.match(token.LEFTPAREN) {
			p.advance()
			if !p.match(token.RIGHTPAREN) {
				fields = append(fields, p.enumFieldType())
				for p.match(token.COMMA) {
					p.advance()
					fields = append(fields, p.enumFieldType())
				}
			}
			p.consume(token.RIGHTPAREN)
		}
		order = append(order, variantTok.Lexeme)
		variants[variantTok.Lexeme] = fields
		p.skipNewlines()
	}
	p.consume(token.RIGHTBRACE)

	stmt := &ast.EnumStatement{Name: nameTok, VariantOrder: order, Variants: variants}
	p.registry[types.CustomType{Name: nameTok.Lexeme, Kind: types.Enum}] = stmt
	return stmt
}

func (p *Parser) enumFieldType() types.Type {
	tok := p.consume(token.IDENTIFIER)
	typ, ok := p.resolveTypeName(tok)
	if !ok {
		p.recover(unknownType(tok))
	}
	return typ
}

// functionDecl parses `fn name(params) [-> returnType] { body }`. The
// return type name is also looked up in the registry, the same way a
// param type is, so the emitter can tell a registered enum's return
// type apart from a struct's or an unrecognized name (`void` and
// other C-only spellings, which stay unresolved and are emitted
// verbatim per spec.md §4.3) — but an unresolved return type is never
// rejected the way an unresolved param type is.
func (p *Parser) functionDecl() *ast.FunctionStatement {
	p.consume(token.FN)
	nameTok := p.consume(token.IDENTIFIER)
	p.consume(token.LEFTPAREN)

	var params []types.VariableDeclaration
	if !p.match(token.RIGHTPAREN) {
		params = append(params, p.paramDecl())
		for p.match(token.COMMA) {
			p.advance()
			params = append(params, p.paramDecl())
		}
	}
	p.consume(token.RIGHTPAREN)

	returnTypeName := "void"
	var returnType types.Type
	if p.match(token.ARROW) {
		p.advance()
		returnTypeTok := p.consume(token.IDENTIFIER)
		returnTypeName = returnTypeTok.Lexeme
		if resolved, ok := p.resolveTypeName(returnTypeTok); ok {
			returnType = resolved
		}
	}
	p.skipNewlines()

	savedScope := p.scope
	p.scope = p.env.NewRoot()
	for _, param := range params {
		p.env.Enscope(p.scope, param)
	}
	body := p.block()
	p.scope = savedScope

	return &ast.FunctionStatement{Name: nameTok, Params: params, ReturnTypeName: returnTypeName, ReturnType: returnType, Body: body}
}

func (p *Parser) paramDecl() types.VariableDeclaration {
	mut := false
	if p.match(token.MUT) {
		p.advance()
		mut = true
	}
	typeTok := p.consume(token.IDENTIFIER)
	typ, ok := p.resolveTypeName(typeTok)
	if !ok {
		p.recover(unknownType(typeTok))
	}
	ext := p.typeExtension()
	nameTok := p.consume(token.IDENTIFIER)
	return types.VariableDeclaration{IsMutable: mut, Type: typ, TypeExtensions: ext, Name: nameTok.Lexeme}
}

// typeExtension parses the literal suffix between a type name and the
// variable it types: zero or more `*` for pointer depth, or a single
// `[N]` for a fixed-size array. spec.md §3 stores this as the raw
// source text rather than a structured value.
func (p *Parser) typeExtension() string {
	if p.match(token.LEFTBRACKET) {
		p.advance()
		size := p.consume(token.NUMBER)
		p.consume(token.RIGHTBRACKET)
		return "[" + size.Lexeme + "]"
	}
	ext := ""
	for p.match(token.STAR) {
		p.advance()
		ext += "*"
	}
	return ext
}

// resolveTypeName looks up name as a builtin scalar or a previously
// registered struct/enum. ok is false when neither matches.
func (p *Parser) resolveTypeName(tok token.Token) (types.Type, bool) {
	if b := types.LookupBuiltin(tok.Lexeme); b != types.None {
		return types.FromBuiltin(b), true
	}
	if ct, ok := p.lookupCustom(tok.Lexeme); ok {
		return types.FromCustom(ct), true
	}
	return types.Type{}, false
}

func (p *Parser) lookupCustom(name string) (types.CustomType, bool) {
	if ct := (types.CustomType{Name: name, Kind: types.Struct}); p.registry[ct] != nil {
		return ct, true
	}
	if ct := (types.CustomType{Name: name, Kind: types.Enum}); p.registry[ct] != nil {
		return ct, true
	}
	return types.CustomType{}, false
}

// isKnownTypeName reports whether name already resolves to a builtin
// or a registered struct/enum, without recording an error when it
// doesn't. Statement parsing uses this to decide whether a
// leading identifier starts a variable declaration.
func (p *Parser) isKnownTypeName(name string) bool {
	if types.LookupBuiltin(name) != types.None {
		return true
	}
	_, ok := p.lookupCustom(name)
	return ok
}

func (p *Parser) isEnumName(name string) bool {
	_, isEnum := p.registry[types.CustomType{Name: name, Kind: types.Enum}]
	return isEnum
}

// ---- token-stream primitives ----

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) peekNth(n int) token.Token {
	idx := p.current + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) advance() token.Token {
	if !p.IsAtEnd() {
		p.current++
	}
	return p.previous()
}

// IsAtEnd reports whether the parser has reached the synthetic EOF
// token appended by the lexer.
func (p *Parser) IsAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) match(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) matchNth(n int, kind token.Kind) bool {
	if p.current+n >= len(p.tokens) {
		return false
	}
	return p.tokens[p.current+n].Kind == kind
}

func (p *Parser) consume(kind token.Kind) token.Token {
	if p.match(kind) {
		return p.advance()
	}
	p.recover(unexpectedToken(p.peek(), "`"+kind.String()+"`"))
	return p.peek()
}

func (p *Parser) recover(err error) {
	p.err = errors.Join(p.err, err)
}

// skipNewlines consumes zero or more END_OF_LINE tokens. Newlines
// terminate statements (spec.md §4.1), so every production that ends
// a statement or opens a block calls this before looking for the next
// one.
func (p *Parser) skipNewlines() {
	for p.match(token.ENDOFLINE) {
		p.advance()
	}
}

func (p *Parser) enscope(decl types.VariableDeclaration) {
	p.env.Enscope(p.scope, decl)
}
