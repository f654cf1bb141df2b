// Package diagnostic implements the append-only error collector
// ("supervisor") shared by every phase of the compiler, and the
// line/caret rendering used to report it to the user.
package diagnostic

import (
	"fmt"
	"io"
	"strings"

	"github.com/dl-lang/dlc/token"
)

const (
	colorRed   = "\x1b[31m"
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// Diagnostic is a single reported error.
type Diagnostic struct {
	Message  string
	Position token.Position
}

// Sink owns the source buffer and the project root for a single
// compilation, and accumulates diagnostics in the order they are
// pushed. The errors list is only ever appended to, except when
// DumpErrors clears it after printing; cmd/dlc is the only caller of
// DumpErrors.
type Sink struct {
	source      string
	projectRoot string
	errors      []Diagnostic
	NoColor     bool
}

// NewSink creates a Sink over source, rooted at projectRoot (the
// directory `import` resolves relative to).
func NewSink(source, projectRoot string) *Sink {
	return &Sink{source: source, projectRoot: projectRoot}
}

// PushError records a diagnostic. Order is preserved.
func (s *Sink) PushError(message string, pos token.Position) {
	s.errors = append(s.errors, Diagnostic{Message: message, Position: pos})
}

// HasErrors reports whether any diagnostic has been pushed.
func (s *Sink) HasErrors() bool {
	return len(s.errors) > 0
}

// Errors returns the accumulated diagnostics without clearing them.
func (s *Sink) Errors() []Diagnostic {
	return s.errors
}

// ProjectRoot returns the directory `import` resolves relative to.
func (s *Sink) ProjectRoot() string {
	return s.projectRoot
}

// Source returns the buffer the Sink was created over.
func (s *Sink) Source() string {
	return s.source
}

// DumpErrors prints every accumulated diagnostic to w and clears the
// list, as the only sink mutation permitted outside PushError.
func (s *Sink) DumpErrors(w io.Writer) {
	for _, d := range s.errors {
		fmt.Fprint(w, s.Render(d))
	}
	s.errors = nil
}

// Render produces the three-line "error: msg" / "--> line:col" /
// source-excerpt-with-caret report for a single diagnostic.
func (s *Sink) Render(d Diagnostic) string {
	var b strings.Builder

	fmt.Fprintf(&b, "error: %s\n", d.Message)
	fmt.Fprintf(&b, "--> %d:%d\n", d.Position.Line, d.Position.Col)

	line, lineStart := s.lineContaining(d.Position.Start)
	fmt.Fprintf(&b, "%s\n", line)

	caretStart := d.Position.Start - lineStart
	caretEnd := d.Position.End - lineStart
	if caretEnd > len(line) {
		caretEnd = len(line)
	}
	if caretEnd <= caretStart {
		caretEnd = caretStart + 1
	}

	b.WriteString(strings.Repeat(" ", caretStart))
	caret := strings.Repeat("^", caretEnd-caretStart)
	if s.NoColor {
		b.WriteString(caret)
	} else {
		b.WriteString(colorBold)
		b.WriteString(colorRed)
		b.WriteString(caret)
		b.WriteString(colorReset)
	}
	b.WriteString("\n")

	return b.String()
}

// ErrorAt attaches a source token to an underlying error, so a phase
// can build plain Go errors and still recover a Position for
// PushError once the error reaches the driver.
type ErrorAt struct {
	Where token.Token
	Err   error
}

func (e ErrorAt) Error() string {
	if e.Where.Kind == token.EOF {
		return fmt.Sprintf("at end: %s", e.Err.Error())
	}
	return fmt.Sprintf("at %d:%d: `%s`, %s", e.Where.Position.Line, e.Where.Position.Col, e.Where.Lexeme, e.Err.Error())
}

func (e ErrorAt) Unwrap() error { return e.Err }

// Flatten walks err's errors.Join tree (if any) and returns every leaf
// error in encounter order, so a driver can push one diagnostic per
// leaf instead of one diagnostic for the whole joined message.
func Flatten(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var leaves []error
		for _, e := range joined.Unwrap() {
			leaves = append(leaves, Flatten(e)...)
		}
		return leaves
	}
	return []error{err}
}

// positioned is implemented by any leaf error that can name its own
// source location without being wrapped in ErrorAt (the lexer's error
// types, which already carry a Pos field).
type positioned interface {
	Position() token.Position
}

// PositionOf recovers a Position from a leaf error, whether it arrived
// wrapped in ErrorAt (every parser error) or already implements
// positioned itself (every lexer error). ok is false for an error that
// carries no position at all.
func PositionOf(err error) (token.Position, bool) {
	switch e := err.(type) {
	case ErrorAt:
		return e.Where.Position, true
	case positioned:
		return e.Position(), true
	default:
		return token.Position{}, false
	}
}

// lineContaining returns the full source line containing byte offset
// pos, and the byte offset of that line's first character.
func (s *Sink) lineContaining(pos int) (string, int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(s.source) {
		pos = len(s.source)
	}

	start := strings.LastIndexByte(s.source[:pos], '\n') + 1

	end := strings.IndexByte(s.source[pos:], '\n')
	if end == -1 {
		end = len(s.source)
	} else {
		end += pos
	}

	return s.source[start:end], start
}
