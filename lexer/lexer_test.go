package lexer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dl-lang/dlc/lexer"
	"github.com/dl-lang/dlc/token"
)

func kinds(t *testing.T, source string) []token.Kind {
	t.Helper()
	toks, err := lexer.Lex(source)
	if err != nil {
		t.Fatalf("Lex(%q) returned error: %v", source, err)
	}
	kinds := make([]token.Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	return kinds
}

func TestLexPunctuationAndOperators(t *testing.T) {
	t.Parallel()
	got := kinds(t, "( ) { } [ ] , . ; & * + - :: -> => == != <= >= += -- ++")
	want := []token.Kind{
		token.LEFTPAREN, token.RIGHTPAREN, token.LEFTBRACE, token.RIGHTBRACE,
		token.LEFTBRACKET, token.RIGHTBRACKET, token.COMMA, token.DOT,
		token.SEMICOLON, token.AMP, token.STAR, token.PLUS, token.MINUS,
		token.COLONCOLON, token.ARROW, token.FATARROW, token.EQUALEQUAL,
		token.BANGEQUAL, token.LESSEQUAL, token.GREATEREQUAL, token.PLUSEQUAL,
		token.MINUSMINUS, token.PLUSPLUS, token.EOF,
	}
	assertKinds(t, got, want)
}

func TestLexIdentifiersAndKeywords(t *testing.T) {
	t.Parallel()
	got := kinds(t, "fn mut if else while for return struct enum match include module import and or true false x")
	want := []token.Kind{
		token.FN, token.MUT, token.IF, token.ELSE, token.WHILE, token.FOR,
		token.RETURN, token.STRUCT, token.ENUM, token.MATCH, token.INCLUDE,
		token.MODULE, token.IMPORT, token.AND, token.OR, token.TRUE, token.FALSE,
		token.IDENTIFIER, token.EOF,
	}
	assertKinds(t, got, want)
}

func TestLexNewlineIsSignificant(t *testing.T) {
	t.Parallel()
	got := kinds(t, "x\ny")
	want := []token.Kind{token.IDENTIFIER, token.ENDOFLINE, token.IDENTIFIER, token.EOF}
	assertKinds(t, got, want)
}

func TestLexLineCommentSkipped(t *testing.T) {
	t.Parallel()
	got := kinds(t, "x // a comment with :: and -> in it\ny")
	want := []token.Kind{token.IDENTIFIER, token.ENDOFLINE, token.IDENTIFIER, token.EOF}
	assertKinds(t, got, want)
}

func TestLexNumber(t *testing.T) {
	t.Parallel()
	toks, err := lexer.Lex("12345")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Kind != token.NUMBER || toks[0].Lexeme != "12345" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestLexSingleQuotedString(t *testing.T) {
	t.Parallel()
	toks, err := lexer.Lex("'a'")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Kind != token.SINGLEQUOTEDSTRING || toks[0].Lexeme != "'a'" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestLexEmptySingleQuotedIsError(t *testing.T) {
	t.Parallel()
	_, err := lexer.Lex("''")
	if err == nil {
		t.Fatalf("expected error for empty single-quoted string")
	}
}

func TestLexUnterminatedSingleQuotedIsError(t *testing.T) {
	t.Parallel()
	_, err := lexer.Lex("'ab'")
	if err == nil {
		t.Fatalf("expected error: single-quoted literal holds exactly one character")
	}
}

func TestLexDoubleQuotedString(t *testing.T) {
	t.Parallel()
	toks, err := lexer.Lex(`"stdio.h"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Kind != token.DOUBLEQUOTEDSTRING || toks[0].Lexeme != `"stdio.h"` {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestLexUnterminatedDoubleQuotedAcrossNewlineIsError(t *testing.T) {
	t.Parallel()
	_, err := lexer.Lex("\"abc\ndef\"")
	if err == nil {
		t.Fatalf("expected error: unescaped newline inside double-quoted string")
	}
}

func TestLexUnterminatedDoubleQuotedAtEOFIsError(t *testing.T) {
	t.Parallel()
	_, err := lexer.Lex(`"abc`)
	if err == nil {
		t.Fatalf("expected error: unterminated double-quoted string")
	}
}

func TestLexNoEscapeProcessing(t *testing.T) {
	t.Parallel()
	// A backslash is an ordinary character; the lexer performs no
	// escape processing (spec.md §4.1), so `\"` does not escape the
	// closing quote and the following quote does end the literal.
	toks, err := lexer.Lex(`"a\"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Kind != token.DOUBLEQUOTEDSTRING || toks[0].Lexeme != `"a\"` {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestLexReconstructsSourceUpToWhitespace(t *testing.T) {
	t.Parallel()
	source := "fn id(i32 x) -> i32 { return x }"
	toks, err := lexer.Lex(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var rebuilt string
	for _, tok := range toks {
		if tok.Kind == token.EOF || tok.Kind == token.ENDOFLINE {
			continue
		}
		rebuilt += tok.Lexeme + " "
	}
	want := "fn id ( i32 x ) -> i32 { return x } "
	if rebuilt != want {
		t.Fatalf("got %q, want %q", rebuilt, want)
	}
}

func TestLexUnexpectedCharacterIsError(t *testing.T) {
	t.Parallel()
	_, err := lexer.Lex("x @ y")
	if err == nil {
		t.Fatalf("expected error for unrecognized character")
	}
}

func assertKinds(t *testing.T, got, want []token.Kind) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token kinds mismatch (-want +got):\n%s", diff)
	}
}
