package parser

import (
	"fmt"

	"github.com/dl-lang/dlc/diagnostic"
	"github.com/dl-lang/dlc/token"
)

// UnexpectedTokenError reports a token that does not start any
// production the parser was trying to match, naming what it expected
// instead.
type UnexpectedTokenError struct {
	Expected []string
}

func (e UnexpectedTokenError) Error() string {
	msg := ""
	for i, ex := range e.Expected {
		if i > 0 {
			msg += ", "
		}
		msg += ex
	}
	return "unexpected token: expected " + msg
}

func unexpectedToken(t token.Token, expected ...string) error {
	return diagnostic.ErrorAt{Where: t, Err: UnexpectedTokenError{Expected: expected}}
}

// UnknownTypeError reports a type name that resolves to neither a
// builtin scalar nor a previously declared struct/enum.
type UnknownTypeError struct {
	Name token.Token
}

func (e UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type: %s", e.Name.Lexeme)
}

func unknownType(t token.Token) error {
	return diagnostic.ErrorAt{Where: t, Err: UnknownTypeError{Name: t}}
}

// UnknownStructMemberTypeError is spec.md §4.2's "unknown variable
// type in struct member" diagnostic, kept distinct from
// UnknownTypeError because the source text names this exact context.
type UnknownStructMemberTypeError struct {
	Name token.Token
}

func (e UnknownStructMemberTypeError) Error() string {
	return fmt.Sprintf("unknown variable type in struct member: %s", e.Name.Lexeme)
}

func unknownStructMemberType(t token.Token) error {
	return diagnostic.ErrorAt{Where: t, Err: UnknownStructMemberTypeError{Name: t}}
}

// InvalidLvalueError is raised when an assignment's left side is
// anything other than a Variable, an IndexOperator, a deref Unary, or
// a `.`/`->` field access (spec.md §4.2 Lvalue rule).
type InvalidLvalueError struct{}

func (e InvalidLvalueError) Error() string {
	return "expected variable on left side of assignment while parsing"
}

func invalidLvalue(t token.Token) error {
	return diagnostic.ErrorAt{Where: t, Err: InvalidLvalueError{}}
}

// NoMatchCasesError reports a `match` statement whose body holds no
// case arms.
type NoMatchCasesError struct{}

func (e NoMatchCasesError) Error() string {
	return "match statement has no cases"
}

func noMatchCases(t token.Token) error {
	return diagnostic.ErrorAt{Where: t, Err: NoMatchCasesError{}}
}

// ExpectedEnumPathError reports a match case label that did not parse
// to an EnumExpression (`Enum::Variant` or `Enum::Variant(args)`).
type ExpectedEnumPathError struct{}

func (e ExpectedEnumPathError) Error() string {
	return "expected an enum variant path (`Enum::Variant`) as a match case label"
}

func expectedEnumPath(t token.Token) error {
	return diagnostic.ErrorAt{Where: t, Err: ExpectedEnumPathError{}}
}
