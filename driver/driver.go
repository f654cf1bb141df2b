// Package driver orchestrates one compilation: lex, parse (resolving
// and splicing every transitive `import`), and emit. It is the file
// I/O boundary spec.md §1 keeps out of the lexer/parser/emitter core
// (all three take and return in-memory values only). DL has no
// transform-pass pipeline to run between parse and emit (Non-goals,
// spec.md §1), so CompileFile composes lex -> parse -> emit directly
// and adds the import splicing/cycle-rejection a single-file compile
// has no need for.
package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dl-lang/dlc/ast"
	"github.com/dl-lang/dlc/diagnostic"
	"github.com/dl-lang/dlc/emitter"
	"github.com/dl-lang/dlc/lexer"
	"github.com/dl-lang/dlc/parser"
	"github.com/dl-lang/dlc/token"
)

// ImportCycleError reports an `import` chain that returns to a file
// still being resolved.
type ImportCycleError struct {
	Name string
}

func (e ImportCycleError) Error() string {
	return fmt.Sprintf("import cycle detected: %s", e.Name)
}

// ImportNotFoundError reports an `import name` whose
// `<project_root>/name.dl` does not exist.
type ImportNotFoundError struct {
	Name string
}

func (e ImportNotFoundError) Error() string {
	return fmt.Sprintf("import not found: %s.dl", e.Name)
}

// Compilation collects one diagnostic.Sink per file touched while
// resolving a root file's transitive imports, in visit order, since
// each file's diagnostics must render against that file's own source
// buffer rather than the root's.
type Compilation struct {
	sinks map[string]*diagnostic.Sink
	order []string
}

func newCompilation() *Compilation {
	return &Compilation{sinks: map[string]*diagnostic.Sink{}}
}

func (c *Compilation) sinkFor(path, source, projectRoot string) *diagnostic.Sink {
	if s, ok := c.sinks[path]; ok {
		return s
	}
	s := diagnostic.NewSink(source, projectRoot)
	c.sinks[path] = s
	c.order = append(c.order, path)
	return s
}

// HasErrors reports whether any visited file accumulated a diagnostic.
func (c *Compilation) HasErrors() bool {
	for _, p := range c.order {
		if c.sinks[p].HasErrors() {
			return true
		}
	}
	return false
}

// Sinks returns every visited file's Sink, in visit order.
func (c *Compilation) Sinks() []*diagnostic.Sink {
	out := make([]*diagnostic.Sink, len(c.order))
	for i, p := range c.order {
		out[i] = c.sinks[p]
	}
	return out
}

// Result is the outcome of compiling one root file.
type Result struct {
	Output      string
	MainTokens  []token.Token
	Compilation *Compilation
}

// CompileFile lexes, parses, and emits path, recursively resolving
// every transitive `import` first so cross-file struct/enum names are
// registered before the file that uses them is parsed. Emission never
// runs while any visited file's sink holds a diagnostic (spec.md §7:
// partial ASTs are never emitted).
func CompileFile(path string) (*Result, error) {
	comp := newCompilation()
	registry := parser.Registry{}
	importing := map[string]bool{}

	mod, tokens := compileModule(path, registry, importing, comp)

	result := &Result{MainTokens: tokens, Compilation: comp}
	if mod == nil || comp.HasErrors() {
		failed := 0
		for _, s := range comp.Sinks() {
			if s.HasErrors() {
				failed++
			}
		}
		return result, fmt.Errorf("compilation failed with diagnostics in %d file(s)", failed)
	}

	result.Output = emitter.EmitModule(mod)
	return result, nil
}

// compileModule reads, lexes, resolves imports for, and parses one
// file, returning its module (nil if the file could not be read or
// parsed at all) and its own token stream.
func compileModule(path string, registry parser.Registry, importing map[string]bool, comp *Compilation) (*ast.ModuleStatement, []token.Token) {
	absPath := abs(path)

	source, err := os.ReadFile(absPath)
	if err != nil {
		sink := comp.sinkFor(absPath, "", filepath.Dir(absPath))
		sink.PushError(fmt.Sprintf("cannot read %s: %v", absPath, err), token.Position{})
		return nil, nil
	}

	projectRoot := filepath.Dir(absPath)
	sink := comp.sinkFor(absPath, string(source), projectRoot)

	importing[absPath] = true
	defer delete(importing, absPath)

	tokens, lexErr := lexer.Lex(string(source))
	pushFlattened(sink, lexErr)

	// Every transitive import is compiled, and its types registered,
	// before this file is parsed for real: the parser resolves a type
	// name against the registry as it parses, so an import's struct or
	// enum must already be there by the time a use of it is reached.
	var importedMods []*ast.ModuleStatement
	for _, imp := range scanImports(tokens) {
		importPath := filepath.Join(projectRoot, imp.name+".dl")
		importAbs := abs(importPath)

		if importing[importAbs] {
			sink.PushError(ImportCycleError{Name: imp.name}.Error(), imp.tok.Position)
			continue
		}
		if _, statErr := os.Stat(importAbs); statErr != nil {
			sink.PushError(ImportNotFoundError{Name: imp.name}.Error(), imp.tok.Position)
			continue
		}

		importedMod, _ := compileModule(importAbs, registry, importing, comp)
		if importedMod != nil {
			importedMods = append(importedMods, importedMod)
		}
	}

	mod, _, parseErr := parser.New(tokens, registry).ParseModule()
	pushFlattened(sink, parseErr)
	if mod == nil {
		return nil, tokens
	}

	// Spliced in import order, so a chain of imports renders with the
	// earliest-declared dependency first in the emitted file.
	// Each import is prepended, so walking them last-to-first leaves
	// them in the order they were declared.
	for i := len(importedMods) - 1; i >= 0; i-- {
		imported := importedMods[i]
		mod.Includes = append(append([]string{}, imported.Includes...), mod.Includes...)
		mod.Enums = append(append([]ast.Node{}, imported.Enums...), mod.Enums...)
		mod.Structs = append(append([]ast.Node{}, imported.Structs...), mod.Structs...)
		mod.Functions = append(append([]ast.Node{}, imported.Functions...), mod.Functions...)
	}

	return mod, tokens
}

type importRef struct {
	name string
	tok  token.Token
}

// scanImports finds every `import name` pair in tokens by looking for
// an IMPORT token directly followed by an IDENTIFIER, without a full
// parse. IMPORT is a reserved keyword that never appears anywhere else
// in DL's grammar, so this simple adjacency scan is exact: it is used
// only to discover what must be resolved and registered before the
// real parse runs, not to validate syntax (the real parse still
// reports a malformed `import` itself).
func scanImports(tokens []token.Token) []importRef {
	var refs []importRef
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i].Kind == token.IMPORT && tokens[i+1].Kind == token.IDENTIFIER {
			refs = append(refs, importRef{name: tokens[i+1].Lexeme, tok: tokens[i]})
		}
	}
	return refs
}

func pushFlattened(sink *diagnostic.Sink, err error) {
	for _, leaf := range diagnostic.Flatten(err) {
		pos, _ := diagnostic.PositionOf(leaf)
		sink.PushError(leaf.Error(), pos)
	}
}

func abs(path string) string {
	if a, err := filepath.Abs(path); err == nil {
		return a
	}
	return path
}
