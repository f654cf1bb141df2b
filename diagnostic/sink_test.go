package diagnostic_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/dl-lang/dlc/diagnostic"
	"github.com/dl-lang/dlc/token"
)

func TestRenderThreeLineReport(t *testing.T) {
	t.Parallel()
	source := "fn f() -> void {\n\t1 = 2\n}\n"
	sink := diagnostic.NewSink(source, "/proj")
	sink.NoColor = true

	pos := token.Position{Start: 18, End: 19, Line: 2, Col: 2}
	d := diagnostic.Diagnostic{Message: "expected variable on left side of assignment", Position: pos}

	rendered := sink.Render(d)
	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected a 3-line report plus caret line, got %d lines:\n%s", len(lines), rendered)
	}
	if lines[0] != "error: expected variable on left side of assignment" {
		t.Fatalf("got message line %q", lines[0])
	}
	if lines[1] != "--> 2:2" {
		t.Fatalf("got location line %q", lines[1])
	}
	if lines[2] != "\t1 = 2" {
		t.Fatalf("got source line %q", lines[2])
	}
	if !strings.Contains(lines[3], "^") {
		t.Fatalf("expected a caret line, got %q", lines[3])
	}
}

func TestRenderColoredByDefault(t *testing.T) {
	t.Parallel()
	sink := diagnostic.NewSink("x\n", "/proj")
	d := diagnostic.Diagnostic{Message: "boom", Position: token.Position{Start: 0, End: 1, Line: 1, Col: 1}}
	rendered := sink.Render(d)
	if !strings.Contains(rendered, "\x1b[") {
		t.Fatalf("expected ANSI escape codes by default, got:\n%q", rendered)
	}
}

func TestSinkPushErrorAccumulatesInOrder(t *testing.T) {
	t.Parallel()
	sink := diagnostic.NewSink("", "/proj")
	if sink.HasErrors() {
		t.Fatalf("expected a fresh sink to have no errors")
	}
	sink.PushError("first", token.Position{})
	sink.PushError("second", token.Position{})
	if !sink.HasErrors() {
		t.Fatalf("expected HasErrors after PushError")
	}
	errs := sink.Errors()
	if len(errs) != 2 || errs[0].Message != "first" || errs[1].Message != "second" {
		t.Fatalf("got %+v", errs)
	}
}

func TestDumpErrorsClearsSink(t *testing.T) {
	t.Parallel()
	sink := diagnostic.NewSink("x\n", "/proj")
	sink.PushError("boom", token.Position{Start: 0, End: 1, Line: 1, Col: 1})

	var buf strings.Builder
	sink.DumpErrors(&buf)

	if !strings.Contains(buf.String(), "boom") {
		t.Fatalf("expected the diagnostic printed, got:\n%s", buf.String())
	}
	if sink.HasErrors() {
		t.Fatalf("expected DumpErrors to clear the sink")
	}
}

func TestErrorAtMessageAtEOF(t *testing.T) {
	t.Parallel()
	err := diagnostic.ErrorAt{Where: token.Token{Kind: token.EOF}, Err: errors.New("unexpected end")}
	if err.Error() != "at end: unexpected end" {
		t.Fatalf("got %q", err.Error())
	}
}

func TestErrorAtMessageWithToken(t *testing.T) {
	t.Parallel()
	tok := token.Token{Kind: token.IDENTIFIER, Lexeme: "x", Position: token.Position{Line: 3, Col: 5}}
	err := diagnostic.ErrorAt{Where: tok, Err: errors.New("unexpected identifier")}
	want := "at 3:5: `x`, unexpected identifier"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}

func TestFlattenSingleError(t *testing.T) {
	t.Parallel()
	err := errors.New("solo")
	leaves := diagnostic.Flatten(err)
	if len(leaves) != 1 || leaves[0] != err {
		t.Fatalf("got %v", leaves)
	}
}

func TestFlattenJoinedErrors(t *testing.T) {
	t.Parallel()
	a := errors.New("a")
	b := errors.New("b")
	c := errors.New("c")
	joined := errors.Join(errors.Join(a, b), c)

	leaves := diagnostic.Flatten(joined)
	if len(leaves) != 3 || leaves[0] != a || leaves[1] != b || leaves[2] != c {
		t.Fatalf("got %v", leaves)
	}
}

func TestFlattenNil(t *testing.T) {
	t.Parallel()
	if leaves := diagnostic.Flatten(nil); leaves != nil {
		t.Fatalf("expected nil, got %v", leaves)
	}
}

func TestPositionOfErrorAt(t *testing.T) {
	t.Parallel()
	tok := token.Token{Kind: token.IDENTIFIER, Position: token.Position{Line: 4, Col: 1}}
	pos, ok := diagnostic.PositionOf(diagnostic.ErrorAt{Where: tok, Err: errors.New("bad")})
	if !ok || pos.Line != 4 || pos.Col != 1 {
		t.Fatalf("got %+v, %v", pos, ok)
	}
}

func TestPositionOfUnpositionedError(t *testing.T) {
	t.Parallel()
	_, ok := diagnostic.PositionOf(errors.New("plain"))
	if ok {
		t.Fatalf("expected ok=false for an error with no position")
	}
}
