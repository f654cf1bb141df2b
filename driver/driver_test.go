package driver_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dl-lang/dlc/driver"
	"github.com/dl-lang/dlc/testutil"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
	return path
}

func TestCompileFileSingleFunction(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	main := writeFile(t, dir, "main.dl", "fn id(i32 x) -> i32 {\n\treturn x\n}\n")

	result, err := driver.CompileFile(main)
	if err != nil {
		t.Fatalf("CompileFile: %v", err)
	}
	if !strings.Contains(result.Output, "int id(const int x)") {
		t.Fatalf("got output:\n%s", result.Output)
	}
}

func TestCompileFileResolvesImportedStruct(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "point.dl", "struct Point {\n\ti32 x\n\ti32 y\n}\n")
	// getX's `Point p` parameter only parses if Point is already
	// registered when main.dl's own function declarations are parsed,
	// which requires the import to be resolved before that parse runs.
	main := writeFile(t, dir, "main.dl", "import point\nfn getX(Point p) -> i32 {\n\treturn p.x\n}\n")

	result, err := driver.CompileFile(main)
	if err != nil {
		t.Fatalf("CompileFile: %v", err)
	}
	if !strings.Contains(result.Output, "struct Point {") {
		t.Fatalf("expected imported struct spliced into output, got:\n%s", result.Output)
	}
	if !strings.Contains(result.Output, "int getX(const Point p)") {
		t.Fatalf("expected the importing function to resolve Point as a known type, got:\n%s", result.Output)
	}
}

func TestCompileFileReportsImportCycle(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "a.dl", "import b\nfn f() -> void {\n}\n")
	main := writeFile(t, dir, "b.dl", "import a\nfn g() -> void {\n}\n")

	result, err := driver.CompileFile(main)
	if err == nil {
		t.Fatalf("expected an error for an import cycle")
	}
	if !result.Compilation.HasErrors() {
		t.Fatalf("expected the compilation to have accumulated diagnostics")
	}

	found := false
	for _, sink := range result.Compilation.Sinks() {
		for _, d := range sink.Errors() {
			if strings.Contains(d.Message, "import cycle") {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected an import cycle diagnostic somewhere in the compilation")
	}
}

func TestCompileFileReportsMissingImport(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	main := writeFile(t, dir, "main.dl", "import nope\nfn f() -> void {\n}\n")

	result, err := driver.CompileFile(main)
	if err == nil {
		t.Fatalf("expected an error for a missing import")
	}

	sinks := result.Compilation.Sinks()
	if len(sinks) != 1 {
		t.Fatalf("expected exactly one file's sink, got %d", len(sinks))
	}
	found := false
	for _, d := range sinks[0].Errors() {
		if strings.Contains(d.Message, "import not found") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an import-not-found diagnostic, got %+v", sinks[0].Errors())
	}
}

func TestCompileFileFromTestData(t *testing.T) {
	t.Parallel()
	raw, err := os.ReadFile("testdata/testcase.yaml")
	if err != nil {
		t.Fatalf("ReadFile(testdata/testcase.yaml): %v", err)
	}
	cases := testutil.ReadTestData(raw)
	if len(cases) == 0 {
		t.Fatalf("expected at least one enabled case in testdata/testcase.yaml")
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.Label, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			main := writeFile(t, dir, "main.dl", tc.Input)

			result, err := driver.CompileFile(main)
			if err != nil {
				t.Fatalf("CompileFile(%s): %v", tc.Label, err)
			}
			for _, want := range tc.Expected["emitter"] {
				if !strings.Contains(result.Output, want) {
					t.Fatalf("%s: output missing %q, got:\n%s", tc.Label, want, result.Output)
				}
			}
		})
	}
}

func TestCompileFileNeverEmitsOnParseError(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	main := writeFile(t, dir, "main.dl", "fn f() -> void {\n\t1 = 2\n}\n")

	result, err := driver.CompileFile(main)
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	if result.Output != "" {
		t.Fatalf("expected no output when the sink is non-empty, got:\n%s", result.Output)
	}
}
