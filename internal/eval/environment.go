// Package eval implements the evaluator (§4.3): lexically scoped
// Environments, compile/call, evaluation of every IR node kind, the
// higher-order container built-ins that need to invoke function values,
// and Await, which evaluates its operand to completion: no evaluation
// suspends, and platform callbacks run synchronously. Shape and naming
// follow the teacher's evaluator package (internal/interp/runtime/
// environment.go for the scope-chain, internal/interp/evaluator for the
// tree-walking dispatch style), generalized from DWScript's
// statement/expression grammar to East's IR and specialized away from
// DWScript's case-insensitive identifiers — East's IR is loaded from a
// value tree, never parsed from source text, so there is no lexing
// convention to preserve casing for.
package eval

import (
	"github.com/elaraai/east-go/internal/values"
)

// Environment is a lexically scoped binding chain (§4.3.1): a mapping
// from name to Value plus a reference to its parent. Environments are
// reference-counted; a captured closure retains its defining environment
// for as long as the closure itself is retained.
//
// returning is a box shared by every Environment within one function call
// frame (NewChild propagates the same box; NewCallFrame starts a fresh
// one). evalBlock consults it to stop evaluating a Block's remaining
// statements once a nested Return has fired, implementing §3.3's "Return
// unwinds to the nearest enclosing function frame" without needing a
// panic/recover or threading an extra return value through every eval
// function's signature — closer to the teacher's own exitSignal flag
// (internal/interp/statements.go) than to exception-style unwinding.
type Environment struct {
	vars      map[string]values.Value
	parent    *Environment
	refCount  int32
	returning *bool
}

// NewEnvironment returns a new root environment with no parent.
func NewEnvironment() *Environment {
	fired := false
	return &Environment{vars: make(map[string]values.Value), refCount: 1, returning: &fired}
}

// NewChild returns a new environment enclosed by e, retaining e as its
// parent and sharing e's function-frame return signal.
func (e *Environment) NewChild() *Environment {
	e.Retain()
	return &Environment{vars: make(map[string]values.Value), parent: e, refCount: 1, returning: e.returning}
}

// NewCallFrame returns a new environment enclosed by e, retaining e as its
// parent, but starting a fresh return signal: this is the boundary a
// function call crosses into a new frame (§4.3.3), as opposed to NewChild's
// same-frame Let/Match scoping.
func (e *Environment) NewCallFrame() *Environment {
	e.Retain()
	fired := false
	return &Environment{vars: make(map[string]values.Value), parent: e, refCount: 1, returning: &fired}
}

// returnFired reports whether a Return has already unwound within this
// environment's function frame.
func (e *Environment) returnFired() bool {
	return e.returning != nil && *e.returning
}

// fireReturn marks this environment's function frame as having received a
// Return.
func (e *Environment) fireReturn() {
	if e.returning != nil {
		*e.returning = true
	}
}

// Retain increments e's reference count and returns e for chaining.
func (e *Environment) Retain() *Environment {
	e.refCount++
	return e
}

// Release decrements e's reference count, releasing every bound value
// and the parent link once it reaches zero.
func (e *Environment) Release() {
	e.refCount--
	if e.refCount > 0 {
		return
	}
	for _, v := range e.vars {
		v.Release()
	}
	if e.parent != nil {
		e.parent.Release()
	}
}

// Get walks the scope chain outward from e, returning the nearest
// binding for name (§4.3.1).
func (e *Environment) Get(name string) (values.Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set binds name in e's own scope, overwriting any existing binding in
// this scope (shadowing an outer one, if any) (§4.3.1).
func (e *Environment) Set(name string, v values.Value) {
	if old, ok := e.vars[name]; ok {
		old.Release()
	}
	e.vars[name] = v.Retain()
}

// Update finds the nearest enclosing binding for name and mutates it in
// place; if no scope in the chain already binds name, it behaves like Set
// in e's own scope (§4.3.1).
func (e *Environment) Update(name string, v values.Value) {
	for env := e; env != nil; env = env.parent {
		if old, ok := env.vars[name]; ok {
			env.vars[name] = v.Retain()
			old.Release()
			return
		}
	}
	e.Set(name, v)
}

// Parent returns e's enclosing environment, or nil at the root.
func (e *Environment) Parent() *Environment { return e.parent }
