// Package environment implements the lexically-scoped symbol table of
// VariableDeclarations described in spec.md §4.4: an ordered list of
// declarations per scope, plus an optional parent, searched by
// walking the parent chain.
//
// Scopes are stored in a single Environment as an arena indexed by
// scope id, each record naming an optional parent id, per the Design
// Notes' recommendation (spec.md §9): this makes the "parent chain
// terminates, never cyclic" invariant true by construction, since a
// scope can only name a parent created before it.
package environment

import "github.com/dl-lang/dlc/types"

// noParent marks a scope with no parent (the root of a chain).
const noParent = -1

type scope struct {
	parent int
	decls  []types.VariableDeclaration
}

// Environment is an arena of scopes. The zero value is not usable;
// construct one with New.
type Environment struct {
	scopes []scope
}

// Scope identifies one scope record within an Environment.
type Scope int

// New creates an Environment containing a single root scope and
// returns it.
func New() (*Environment, Scope) {
	env := &Environment{}
	root := env.newScope(noParent)
	return env, root
}

func (e *Environment) newScope(parent int) Scope {
	e.scopes = append(e.scopes, scope{parent: parent})
	return Scope(len(e.scopes) - 1)
}

// NewRoot creates a new parentless scope within e, for a function
// body's fresh environment (spec.md §4.4: "each function body creates
// a fresh root environment"). Unlike New, it does not allocate a new
// Environment, so all of a compilation's scopes share one arena.
func (e *Environment) NewRoot() Scope {
	return e.newScope(noParent)
}

// Child creates a new scope whose parent is s, and returns it. A
// child scope is destroyed simply by no longer being referenced once
// its caller returns to s.
func (e *Environment) Child(s Scope) Scope {
	return e.newScope(int(s))
}

// Enscope appends decl to s's declaration list. Declarations are
// never removed.
func (e *Environment) Enscope(s Scope, decl types.VariableDeclaration) {
	e.scopes[s].decls = append(e.scopes[s].decls, decl)
}

// Find searches s, then s's parent chain, for the most-recently
// enscoped declaration named name. It returns ok=false if no scope in
// the chain declares name.
func (e *Environment) Find(s Scope, name string) (types.VariableDeclaration, bool) {
	for cur := int(s); cur != noParent; cur = e.scopes[cur].parent {
		decls := e.scopes[cur].decls
		for i := len(decls) - 1; i >= 0; i-- {
			if decls[i].Name == name {
				return decls[i], true
			}
		}
	}
	return types.VariableDeclaration{}, false
}

// Declarations returns the declarations directly enscoped in s, in
// enscope order, without walking the parent chain.
func (e *Environment) Declarations(s Scope) []types.VariableDeclaration {
	return append([]types.VariableDeclaration(nil), e.scopes[s].decls...)
}
