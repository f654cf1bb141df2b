package main

import (
	"flag"
	"fmt"
)

// cliFlags is the flag set from spec.md §6's CLI surface that is
// in-core for this front-end (no C/C++ toolchain invocation).
type cliFlags struct {
	file          string
	output        string
	stdout        bool
	tokens        bool
	intermediates bool
	compileAndRun bool
}

// parseFlags registers flag.StringVar/BoolVar twice per option, once
// under its long name and once under its one-letter shorthand, both
// writing into the same variable.
func parseFlags(args []string) (cliFlags, error) {
	fs := flag.NewFlagSet("dlc", flag.ContinueOnError)

	var f cliFlags
	const (
		outputUsage        = "write emitted C++ source to this path"
		stdoutUsage        = "write emitted C++ source to stdout instead of a file"
		tokensUsage        = "dump the lexed token stream to stderr before compiling"
		intermediatesUsage = "keep the emitted C++ as a named intermediate artifact"
		compileRunUsage    = "compile and run the emitted source (requires an external C++ toolchain)"
	)
	fs.StringVar(&f.output, "output", "", outputUsage)
	fs.StringVar(&f.output, "o", "", outputUsage+" (shorthand)")
	fs.BoolVar(&f.stdout, "output-to-stdout", false, stdoutUsage)
	fs.BoolVar(&f.stdout, "L", false, stdoutUsage+" (shorthand)")
	fs.BoolVar(&f.tokens, "tokens", false, tokensUsage)
	fs.BoolVar(&f.tokens, "T", false, tokensUsage+" (shorthand)")
	fs.BoolVar(&f.intermediates, "intermediates", false, intermediatesUsage)
	fs.BoolVar(&f.intermediates, "I", false, intermediatesUsage+" (shorthand)")
	fs.BoolVar(&f.compileAndRun, "compile-and-run", false, compileRunUsage)
	fs.BoolVar(&f.compileAndRun, "r", false, compileRunUsage+" (shorthand)")

	if err := fs.Parse(args); err != nil {
		return cliFlags{}, err
	}

	if fs.NArg() != 1 {
		return cliFlags{}, fmt.Errorf("dlc: expected exactly one input file, got %d", fs.NArg())
	}
	f.file = fs.Arg(0)

	return f, nil
}
