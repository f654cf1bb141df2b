// Package emitter renders a DL AST as C++17-compatible target source
// (spec.md §4.3). Emission is a pure function of the tree — no new
// semantic checks run here, and the driver only calls into this
// package once the diagnostic sink is empty after parsing.
//
// Dispatch is one exhaustive type switch over ast.Node from outside
// the ast package (spec.md §9), rather than a virtual-dispatch
// `evaluate()` method on each node type.
package emitter

import (
	"fmt"
	"log"
	"strings"

	"github.com/dl-lang/dlc/ast"
	"github.com/dl-lang/dlc/token"
	"github.com/dl-lang/dlc/types"
)

// Emit renders a single AST node to target text. It recurses into
// child nodes as needed; callers at statement boundaries are
// responsible for adding the trailing `;` or wrapping braces the
// emission table assigns to their own node type, not to their
// children.
func Emit(n ast.Node) string {
	switch node := n.(type) {

	// ---- expressions ----
	case *ast.Literal:
		return emitLiteral(node)
	case *ast.Variable:
		return node.Name.Lexeme
	case *ast.Unary:
		return fmt.Sprintf("(%s%s)", node.Op.Lexeme, Emit(node.Expr))
	case *ast.Binary:
		return emitBinary(node)
	case *ast.Logical:
		return fmt.Sprintf("%s %s %s", Emit(node.Left), logicalOp(node.Op), Emit(node.Right))
	case *ast.Grouping:
		return fmt.Sprintf("(%s)", Emit(node.Expr))
	case *ast.FunctionCall:
		return fmt.Sprintf("%s(%s)", Emit(node.Callee), joinEmit(node.Args, ", "))
	case *ast.IndexOperator:
		return fmt.Sprintf("%s[%s]", Emit(node.Target), Emit(node.Index))
	case *ast.Assignment:
		return fmt.Sprintf("%s %s %s", Emit(node.Lhs), node.Op.Lexeme, Emit(node.Rhs))
	case *ast.EnumExpression:
		return emitEnumExpression(node)

	// ---- statements ----
	case *ast.EmptyStatement:
		return ""
	case *ast.BlockStatement:
		return emitBlockBody(node)
	case *ast.ModuleStatement:
		return EmitModule(node)
	case *ast.FunctionStatement:
		return emitFunction(node)
	case *ast.IfStatement:
		return emitIf(node)
	case *ast.ReturnStatement:
		return emitReturn(node)
	case *ast.VariableStatement:
		return emitVariable(node)
	case *ast.WhileStatement:
		return fmt.Sprintf("while (%s) %s", Emit(node.Cond), braced(emitBlockBody(node.Body)))
	case *ast.ForStatement:
		return emitFor(node)
	case *ast.ExpressionStatement:
		return Emit(node.Expr) + ";"
	case *ast.ArrayStatement:
		return emitArray(node)
	case *ast.StructStatement:
		return emitStruct(node)
	case *ast.EnumStatement:
		return emitEnum(node)
	case *ast.MatchStatement:
		return emitMatch(node)
	default:
		log.Panicf("emitter: unhandled node type %T", n)
		return ""
	}
}

// emitLiteral lowers TRUE/FALSE to C++17's own bool literals, per the
// Emission table's Open Question decision (the target has a real bool
// type, so there is no need for the 1/0 encoding an untyped target
// would require).
func emitLiteral(l *ast.Literal) string {
	switch l.Token.Kind {
	case token.TRUE:
		return "true"
	case token.FALSE:
		return "false"
	default:
		return l.Token.Lexeme
	}
}

// emitBinary implements the emission table's `.`/`->`/`::`/other split
// (spec.md §4.3): field accessors never gain outer parentheses, every
// other binary operator always does (spec.md §8's testable property).
func emitBinary(b *ast.Binary) string {
	switch b.Op.Kind {
	case token.DOT:
		return fmt.Sprintf("%s.%s", Emit(b.Left), Emit(b.Right))
	case token.ARROW:
		return fmt.Sprintf("%s->%s", Emit(b.Left), Emit(b.Right))
	case token.COLONCOLON:
		return fmt.Sprintf("%s::%s", Emit(b.Left), Emit(b.Right))
	default:
		return fmt.Sprintf("(%s %s %s)", Emit(b.Left), b.Op.Lexeme, Emit(b.Right))
	}
}

func logicalOp(op token.Token) string {
	if op.Kind == token.AND {
		return "&&"
	}
	return "||"
}

// emitEnumExpression renders a standalone `Base::Variant[(args)]`
// reference — i.e. an EnumExpression used as an ordinary expression,
// not a match case label (match lowering renders its labels itself;
// see emitMatch) — as a call into the backing `__dl_` struct's
// namespace, per spec.md §4.3's EnumExpression row.
func emitEnumExpression(e *ast.EnumExpression) string {
	backing := "__dl_" + e.BaseExpr.Name.Lexeme
	variant := e.VariantName().Lexeme
	if args := e.VariantArgs(); args != nil {
		return fmt.Sprintf("%s::%s(%s)", backing, variant, joinEmit(args, ", "))
	}
	return fmt.Sprintf("%s::%s", backing, variant)
}

func joinEmit(nodes []ast.Node, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = Emit(n)
	}
	return strings.Join(parts, sep)
}

// emitBlockBody concatenates a block's statements with `\n` between
// non-empty renderings (spec.md §4.3's Block row); it does not add the
// surrounding braces, since every construct that owns a block spells
// those itself (Function, If, While, For, match case).
func emitBlockBody(b *ast.BlockStatement) string {
	var lines []string
	for _, stmt := range b.Stmts {
		if rendered := Emit(stmt); rendered != "" {
			lines = append(lines, rendered)
		}
	}
	return strings.Join(lines, "\n")
}

func braced(body string) string {
	if body == "" {
		return "{\n}"
	}
	return "{\n" + indent(body) + "\n}"
}

// indent shifts every line of s one level in, for the (cosmetic only)
// nesting the emitter produces; emission correctness never depends on
// exact indentation, only on the substrings spec.md §8's scenarios name.
func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "    " + line
		}
	}
	return strings.Join(lines, "\n")
}

func emitIf(i *ast.IfStatement) string {
	out := fmt.Sprintf("if (%s) %s", Emit(i.Cond), braced(emitBlockBody(i.Then)))
	if i.Else != nil {
		out += fmt.Sprintf(" else %s", braced(emitBlockBody(i.Else)))
	}
	return out
}

func emitReturn(r *ast.ReturnStatement) string {
	if r.Expr == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", Emit(r.Expr))
}

// emitVariable implements the Variable row: `[const ]<type><ext>
// <name> = <init>;`. The parser also accepts a declaration with no
// initializer; that one is emitted without the `= <init>` clause.
func emitVariable(v *ast.VariableStatement) string {
	decl := qualifiedType(v.Decl)
	if v.Init == nil {
		return fmt.Sprintf("%s %s;", decl, v.Decl.Name)
	}
	return fmt.Sprintf("%s %s = %s;", decl, v.Decl.Name, Emit(v.Init))
}

func emitFor(f *ast.ForStatement) string {
	init, cond, incr := "", "", ""
	if f.Init != nil {
		init = strings.TrimSuffix(Emit(f.Init), ";")
	}
	if f.Cond != nil {
		cond = Emit(f.Cond)
	}
	if f.Incr != nil {
		incr = Emit(f.Incr)
	}
	return fmt.Sprintf("for (%s; %s; %s) %s", init, cond, incr, braced(emitBlockBody(f.Body)))
}

// emitArray implements the Array row: `[const ]<type> <name><ext> = {
// e0, e1, … };` — note the extension follows the name here, unlike
// every other declaration form, matching spec.md §8 scenario 3.
func emitArray(a *ast.ArrayStatement) string {
	qualifier := ""
	if !a.Decl.IsMutable {
		qualifier = "const "
	}
	return fmt.Sprintf("%s%s %s%s = {%s};", qualifier, a.Decl.Type.CType(), a.Decl.Name, a.Decl.TypeExtensions, joinEmit(a.Elements, ", "))
}

// qualifiedType renders `[const ]<ctype><ext>` for a parameter, local,
// or struct member: `const` unless the declaration is `mut`.
func qualifiedType(v types.VariableDeclaration) string {
	qualifier := ""
	if !v.IsMutable {
		qualifier = "const "
	}
	return qualifier + v.Type.CType() + v.TypeExtensions
}
