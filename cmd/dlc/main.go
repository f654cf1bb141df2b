// Command dlc is dl's compiler front-end: it lexes, parses, and emits
// C++17-compatible source for one root `.dl` file, splicing in every
// transitive `import`. It stops short of invoking a C/C++ toolchain or
// a REPL: DL's Non-goals (spec.md §1) name those as external
// collaborators, not part of this front-end.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/dl-lang/dlc/driver"
	"github.com/dl-lang/dlc/lexer"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if flags.compileAndRun {
		fmt.Fprintln(os.Stderr, "dlc: -r/--compile-and-run requires a C++ toolchain; invoke one on the emitted output yourself")
		return 1
	}

	if flags.tokens {
		if err := dumpTokens(flags.file); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	result, err := driver.CompileFile(flags.file)
	if err != nil {
		for _, sink := range result.Compilation.Sinks() {
			sink.DumpErrors(os.Stderr)
		}
		return 1
	}

	outPath := flags.output
	if outPath == "" && flags.intermediates {
		outPath = filepath.Join(xdg.CacheHome, "dlc", filepath.Base(flags.file)+".cpp")
	}

	switch {
	case flags.stdout:
		fmt.Println(result.Output)
	case outPath != "":
		if err := writeOutput(outPath, result.Output); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	default:
		if err := writeOutput("a.out.cpp", result.Output); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	return 0
}

func writeOutput(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && filepath.Dir(path) != "." {
		return fmt.Errorf("dlc: %w", err)
	}
	if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("dlc: %w", err)
	}
	return nil
}

func dumpTokens(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("dlc: %w", err)
	}
	tokens, lexErr := lexer.Lex(string(source))
	for _, tok := range tokens {
		fmt.Fprintln(os.Stderr, tok.String())
	}
	if lexErr != nil {
		return fmt.Errorf("dlc: %w", lexErr)
	}
	return nil
}
