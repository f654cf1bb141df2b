// Package ast defines DL's two polymorphic node families —
// Expression and Statement — as a single Node interface implemented
// by tagged-variant structs (spec.md §3), following the Design Notes'
// recommendation (spec.md §9) to represent the source's dynamically
// dispatched class hierarchy as Go sum types the emitter switches over
// exhaustively, instead of virtual `evaluate()`/`as<T>()` downcasting.
package ast

import (
	"fmt"
	"strings"

	"github.com/dl-lang/dlc/token"
	"github.com/dl-lang/dlc/types"
)

// Node is implemented by every Expression and Statement variant.
// Base returns the Position of the node's originating token, so every
// node can be attributed to a source span even when Position is not
// itself a stored field (spec.md §3 invariant).
type Node interface {
	fmt.Stringer
	Base() token.Position
	// Children returns the node's immediate child nodes, in
	// declaration order, for generic traversal (Walk/Universe). It
	// does not include tokens (e.g. member names) since those are
	// not themselves Nodes.
	Children() []Node
}

// Walk calls visit on n and then recursively on every descendant, in
// depth-first pre-order.
func Walk(n Node, visit func(Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children() {
		Walk(c, visit)
	}
}

// Universe returns n and every descendant of n, in depth-first
// pre-order.
func Universe(n Node) []Node {
	var nodes []Node
	Walk(n, func(n Node) { nodes = append(nodes, n) })
	return nodes
}

// ---- Expressions ----

// Literal is a NUMBER, SINGLE_QUOTED_STRING, DOUBLE_QUOTED_STRING,
// TRUE, or FALSE token used as a value.
type Literal struct {
	Token token.Token
}

func (l *Literal) Base() token.Position { return l.Token.Position }
func (l *Literal) Children() []Node     { return nil }
func (l *Literal) String() string       { return parenthesize("literal", tok(l.Token)) }

// Variable is a bare identifier reference.
type Variable struct {
	Name token.Token
}

func (v *Variable) Base() token.Position { return v.Name.Position }
func (v *Variable) Children() []Node     { return nil }
func (v *Variable) String() string       { return parenthesize("var", tok(v.Name)) }

// Unary is a prefix operator application: `-x`, `!x`, `++x`, `&x`, `*x`.
type Unary struct {
	Op   token.Token
	Expr Node
}

func (u *Unary) Base() token.Position { return u.Op.Position }
func (u *Unary) Children() []Node     { return []Node{u.Expr} }
func (u *Unary) String() string       { return parenthesize("unary", tok(u.Op), u.Expr) }

// Binary is a two-operand operator application, including field
// access (`.`), pointer access (`->`), and namespace access (`::`)
// when the left side does not resolve to a registered enum name.
type Binary struct {
	Left  Node
	Op    token.Token
	Right Node
}

func (b *Binary) Base() token.Position { return b.Op.Position }
func (b *Binary) Children() []Node     { return []Node{b.Left, b.Right} }
func (b *Binary) String() string       { return parenthesize("binary", b.Left, tok(b.Op), b.Right) }

// Logical is `and`/`or`, kept distinct from Binary because it must
// short-circuit in emission (`&&`/`||`) rather than call an operator.
type Logical struct {
	Left  Node
	Op    token.Token
	Right Node
}

func (l *Logical) Base() token.Position { return l.Op.Position }
func (l *Logical) Children() []Node     { return []Node{l.Left, l.Right} }
func (l *Logical) String() string       { return parenthesize("logical", l.Left, tok(l.Op), l.Right) }

// Grouping is a parenthesized expression, kept as its own node so the
// emitter can reproduce the parentheses rather than re-derive them
// from precedence.
type Grouping struct {
	Expr Node
}

func (g *Grouping) Base() token.Position { return g.Expr.Base() }
func (g *Grouping) Children() []Node     { return []Node{g.Expr} }
func (g *Grouping) String() string       { return parenthesize("group", g.Expr) }

// FunctionCall is `callee(args...)`.
type FunctionCall struct {
	Callee Node
	Args   []Node
}

func (c *FunctionCall) Base() token.Position { return c.Callee.Base() }
func (c *FunctionCall) Children() []Node     { return append([]Node{c.Callee}, c.Args...) }
func (c *FunctionCall) String() string {
	return parenthesize("call", c.Callee, concat(c.Args))
}

// IndexOperator is `target[index]`.
type IndexOperator struct {
	Target Node
	Index  Node
}

func (i *IndexOperator) Base() token.Position { return i.Target.Base() }
func (i *IndexOperator) Children() []Node     { return []Node{i.Target, i.Index} }
func (i *IndexOperator) String() string       { return parenthesize("index", i.Target, i.Index) }

// Assignment is `lhs = rhs` or `lhs += rhs`. Op.Kind is always
// token.EQUAL or token.PLUSEQUAL; the parser never constructs any
// other operator here (spec.md §4.2 lvalue rule).
type Assignment struct {
	Lhs Node
	Op  token.Token
	Rhs Node
}

func (a *Assignment) Base() token.Position { return a.Op.Position }
func (a *Assignment) Children() []Node     { return []Node{a.Lhs, a.Rhs} }
func (a *Assignment) String() string {
	return parenthesize("assign", a.Lhs, tok(a.Op), a.Rhs)
}

// EnumExpression is `Base::Variant` or `Base::Variant(args...)`,
// produced when the parser recognizes Base as a registered enum name.
// Variant is either a Variable (unit variant) or a FunctionCall whose
// Callee is a Variable (data-carrying variant, constructed).
type EnumExpression struct {
	ColonColon token.Token
	BaseExpr   *Variable
	Variant    Node
}

func (e *EnumExpression) Base() token.Position { return e.ColonColon.Position }
func (e *EnumExpression) Children() []Node     { return []Node{e.BaseExpr, e.Variant} }
func (e *EnumExpression) String() string {
	return parenthesize("enum", e.BaseExpr, e.Variant)
}

// VariantName returns the bare variant identifier, whether Variant is
// a unit reference or a constructor call.
func (e *EnumExpression) VariantName() token.Token {
	switch v := e.Variant.(type) {
	case *Variable:
		return v.Name
	case *FunctionCall:
		if callee, ok := v.Callee.(*Variable); ok {
			return callee.Name
		}
	}
	return token.Token{}
}

// VariantArgs returns the constructor arguments if Variant is a
// FunctionCall, or nil for a unit variant reference.
func (e *EnumExpression) VariantArgs() []Node {
	if call, ok := e.Variant.(*FunctionCall); ok {
		return call.Args
	}
	return nil
}

// ---- Statements ----

// EmptyStatement is produced by a bare newline; it emits nothing.
type EmptyStatement struct {
	Pos token.Position
}

func (e *EmptyStatement) Base() token.Position { return e.Pos }
func (e *EmptyStatement) Children() []Node     { return nil }
func (e *EmptyStatement) String() string       { return "()" }

// BlockStatement is a `{ ... }` sequence of statements.
type BlockStatement struct {
	LeftBrace token.Token
	Stmts     []Node
}

func (b *BlockStatement) Base() token.Position { return b.LeftBrace.Position }
func (b *BlockStatement) Children() []Node     { return b.Stmts }
func (b *BlockStatement) String() string       { return parenthesize("block", concat(b.Stmts)) }

// ModuleStatement is a compilation unit: raw includes, then structs,
// enums, and functions, in declaration order within each group.
type ModuleStatement struct {
	Name      string
	Includes  []string
	Structs   []Node
	Enums     []Node
	Functions []Node
}

func (m *ModuleStatement) Base() token.Position { return token.Position{} }
func (m *ModuleStatement) Children() []Node {
	var children []Node
	children = append(children, m.Structs...)
	children = append(children, m.Enums...)
	children = append(children, m.Functions...)
	return children
}

func (m *ModuleStatement) String() string {
	return parenthesize("module "+m.Name, concat(m.Children()))
}

// FunctionStatement is `fn name(params) [-> returnType] { body }`.
// ReturnType is the registry-resolved type when the return type names
// a builtin or a previously declared struct/enum; ReturnTypeName is
// the raw spelling, used verbatim when ReturnType does not resolve
// (`void`, or any other name the registry does not know).
type FunctionStatement struct {
	Name           token.Token
	Params         []types.VariableDeclaration
	ReturnTypeName string
	ReturnType     types.Type
	Body           *BlockStatement
}

func (f *FunctionStatement) Base() token.Position { return f.Name.Position }
func (f *FunctionStatement) Children() []Node     { return []Node{f.Body} }
func (f *FunctionStatement) String() string {
	return parenthesize("fn "+f.Name.Lexeme, f.Body)
}

// IfStatement is `if (cond) { then } [else { else }]`. Else is nil
// when there is no else clause.
type IfStatement struct {
	Keyword token.Token
	Cond    Node
	Then    *BlockStatement
	Else    *BlockStatement
}

func (i *IfStatement) Base() token.Position { return i.Keyword.Position }
func (i *IfStatement) Children() []Node {
	children := []Node{i.Cond, i.Then}
	if i.Else != nil {
		children = append(children, i.Else)
	}
	return children
}

func (i *IfStatement) String() string {
	if i.Else != nil {
		return parenthesize("if", i.Cond, i.Then, i.Else)
	}
	return parenthesize("if", i.Cond, i.Then)
}

// ReturnStatement is `return [expr]`. Expr is nil for a bare return.
type ReturnStatement struct {
	Keyword token.Token
	Expr    Node
}

func (r *ReturnStatement) Base() token.Position { return r.Keyword.Position }
func (r *ReturnStatement) Children() []Node {
	if r.Expr == nil {
		return nil
	}
	return []Node{r.Expr}
}

func (r *ReturnStatement) String() string {
	if r.Expr == nil {
		return "(return)"
	}
	return parenthesize("return", r.Expr)
}

// VariableStatement is `[mut] type ext name = initializer`.
type VariableStatement struct {
	Keyword token.Token
	Decl    types.VariableDeclaration
	Init    Node
}

func (v *VariableStatement) Base() token.Position { return v.Keyword.Position }
func (v *VariableStatement) Children() []Node {
	if v.Init == nil {
		return nil
	}
	return []Node{v.Init}
}

func (v *VariableStatement) String() string {
	if v.Init == nil {
		return parenthesize("def "+v.Decl.Name, tok(v.Keyword))
	}
	return parenthesize("def "+v.Decl.Name, v.Init)
}

// WhileStatement is `while (cond) { body }`.
type WhileStatement struct {
	Keyword token.Token
	Cond    Node
	Body    *BlockStatement
}

func (w *WhileStatement) Base() token.Position { return w.Keyword.Position }
func (w *WhileStatement) Children() []Node     { return []Node{w.Cond, w.Body} }
func (w *WhileStatement) String() string       { return parenthesize("while", w.Cond, w.Body) }

// ForStatement is `for (init; cond; incr) { body }`. Init, Cond, and
// Incr may each be nil for the omitted-clause form.
type ForStatement struct {
	Keyword token.Token
	Init    Node
	Cond    Node
	Incr    Node
	Body    *BlockStatement
}

func (f *ForStatement) Base() token.Position { return f.Keyword.Position }
func (f *ForStatement) Children() []Node {
	var children []Node
	for _, n := range []Node{f.Init, f.Cond, f.Incr} {
		if n != nil {
			children = append(children, n)
		}
	}
	return append(children, f.Body)
}

func (f *ForStatement) String() string {
	return parenthesize("for", concat(f.Children()))
}

// ExpressionStatement is an expression used for its side effect.
type ExpressionStatement struct {
	Expr Node
}

func (e *ExpressionStatement) Base() token.Position { return e.Expr.Base() }
func (e *ExpressionStatement) Children() []Node     { return []Node{e.Expr} }
func (e *ExpressionStatement) String() string       { return parenthesize("expr", e.Expr) }

// ArrayStatement is `type[N] name = [e0, e1, ...]`.
type ArrayStatement struct {
	Keyword  token.Token
	Decl     types.VariableDeclaration
	Elements []Node
}

func (a *ArrayStatement) Base() token.Position { return a.Keyword.Position }
func (a *ArrayStatement) Children() []Node     { return a.Elements }
func (a *ArrayStatement) String() string {
	return parenthesize("array "+a.Decl.Name, concat(a.Elements))
}

// StructStatement is `struct Name { members }`.
type StructStatement struct {
	Name    token.Token
	Members []types.VariableDeclaration
}

func (s *StructStatement) Base() token.Position { return s.Name.Position }
func (s *StructStatement) Children() []Node     { return nil }
func (s *StructStatement) String() string {
	names := make([]string, len(s.Members))
	for i, m := range s.Members {
		names[i] = m.Name
	}
	return parenthesize("struct "+s.Name.Lexeme, plainString(strings.Join(names, " ")))
}

// EnumStatement is `enum Name { V1 V2(t1, t2) ... }`. VariantOrder
// preserves declaration order; Variants maps a variant name to its
// (possibly empty) field type list. VariantOrder is the source of
// truth for iteration order (spec.md §3 invariant): Variants is a
// plain map and must never be iterated directly by callers that care
// about order.
type EnumStatement struct {
	Name         token.Token
	VariantOrder []string
	Variants     map[string][]types.Type
}

func (e *EnumStatement) Base() token.Position { return e.Name.Position }
func (e *EnumStatement) Children() []Node     { return nil }
func (e *EnumStatement) String() string {
	return parenthesize("enum "+e.Name.Lexeme, plainString(strings.Join(e.VariantOrder, " ")))
}

// MatchCase is one `Label(destructuring) => { body }` arm, or the
// default arm `_ => { body }` when Label is nil.
type MatchCase struct {
	Label         *EnumExpression
	Destructuring []string
	Body          *BlockStatement
}

// IsDefault reports whether this is the `_` catch-all arm.
func (c *MatchCase) IsDefault() bool { return c.Label == nil }

// MatchStatement is `match (scrutinee) { case* }`.
type MatchStatement struct {
	Keyword   token.Token
	Scrutinee Node
	Cases     []*MatchCase
}

func (m *MatchStatement) Base() token.Position { return m.Keyword.Position }
func (m *MatchStatement) Children() []Node {
	children := []Node{m.Scrutinee}
	for _, c := range m.Cases {
		children = append(children, c.Body)
	}
	return children
}

func (m *MatchStatement) String() string {
	return parenthesize("match", concat(m.Children()))
}

// ---- rendering helpers (debug String() only, not target emission) ----

type stringerToken struct{ t token.Token }

func (s stringerToken) String() string { return s.t.Lexeme }

func tok(t token.Token) fmt.Stringer { return stringerToken{t} }

type plainString string

func (p plainString) String() string { return string(p) }

// parenthesize renders a debug s-expression: a head label followed by
// its space-separated elements, all wrapped in parens. Used only by
// Node.String() for tests and diagnostics, never by the emitter.
func parenthesize(head string, elems ...fmt.Stringer) string {
	var b strings.Builder
	b.WriteString("(")
	elemsStr := concat(elems).String()
	if head != "" {
		b.WriteString(head)
	}
	if elemsStr != "" {
		if head != "" {
			b.WriteString(" ")
		}
		b.WriteString(elemsStr)
	}
	b.WriteString(")")
	return b.String()
}

func concat[T fmt.Stringer](elems []T) fmt.Stringer {
	var b strings.Builder
	for i, elem := range elems {
		str := elem.String()
		if str == "" {
			continue
		}
		if i != 0 {
			b.WriteString(" ")
		}
		b.WriteString(str)
	}
	return plainString(b.String())
}

var (
	_ Node = (*Literal)(nil)
	_ Node = (*Variable)(nil)
	_ Node = (*Unary)(nil)
	_ Node = (*Binary)(nil)
	_ Node = (*Logical)(nil)
	_ Node = (*Grouping)(nil)
	_ Node = (*FunctionCall)(nil)
	_ Node = (*IndexOperator)(nil)
	_ Node = (*Assignment)(nil)
	_ Node = (*EnumExpression)(nil)
	_ Node = (*EmptyStatement)(nil)
	_ Node = (*BlockStatement)(nil)
	_ Node = (*ModuleStatement)(nil)
	_ Node = (*FunctionStatement)(nil)
	_ Node = (*IfStatement)(nil)
	_ Node = (*ReturnStatement)(nil)
	_ Node = (*VariableStatement)(nil)
	_ Node = (*WhileStatement)(nil)
	_ Node = (*ForStatement)(nil)
	_ Node = (*ExpressionStatement)(nil)
	_ Node = (*ArrayStatement)(nil)
	_ Node = (*StructStatement)(nil)
	_ Node = (*EnumStatement)(nil)
	_ Node = (*MatchStatement)(nil)
)
