package environment_test

import (
	"testing"

	"github.com/dl-lang/dlc/environment"
	"github.com/dl-lang/dlc/types"
)

func decl(name string) types.VariableDeclaration {
	return types.VariableDeclaration{Type: types.FromBuiltin(types.I32), Name: name}
}

func TestFindLocalScope(t *testing.T) {
	t.Parallel()
	env, root := environment.New()
	env.Enscope(root, decl("x"))

	got, ok := env.Find(root, "x")
	if !ok {
		t.Fatalf("expected to find x")
	}
	if got.Name != "x" {
		t.Fatalf("got %+v", got)
	}
}

func TestFindWalksParentChain(t *testing.T) {
	t.Parallel()
	env, root := environment.New()
	env.Enscope(root, decl("x"))
	child := env.Child(root)

	got, ok := env.Find(child, "x")
	if !ok || got.Name != "x" {
		t.Fatalf("expected to find x via parent, got %+v ok=%v", got, ok)
	}
}

func TestFindMostRecentShadows(t *testing.T) {
	t.Parallel()
	env, root := environment.New()
	env.Enscope(root, types.VariableDeclaration{Type: types.FromBuiltin(types.I32), Name: "x"})
	env.Enscope(root, types.VariableDeclaration{Type: types.FromBuiltin(types.F64), Name: "x"})

	got, ok := env.Find(root, "x")
	if !ok {
		t.Fatalf("expected to find x")
	}
	if got.Type.Builtin != types.F64 {
		t.Fatalf("expected most recently enscoped declaration to win, got %+v", got)
	}
}

func TestFindMissingReturnsFalse(t *testing.T) {
	t.Parallel()
	env, root := environment.New()

	if _, ok := env.Find(root, "nope"); ok {
		t.Fatalf("expected not found")
	}
}

func TestChildDoesNotLeakToParent(t *testing.T) {
	t.Parallel()
	env, root := environment.New()
	child := env.Child(root)
	env.Enscope(child, decl("y"))

	if _, ok := env.Find(root, "y"); ok {
		t.Fatalf("child declaration must not be visible from parent scope")
	}
}
