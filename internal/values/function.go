package values

import (
	"fmt"
	"strings"

	"github.com/elaraai/east-go/internal/types"
)

// Function is a closure value: a compiled body, a captured environment,
// parameter names, and a function type (§3.2). Body and Env are stored as
// interface{} rather than concrete internal/ir / internal/eval types to
// avoid an import cycle (internal/eval necessarily imports internal/values
// to produce and consume these; this package cannot import it back) —
// the same tradeoff the teacher documents for its own cross-package class
// handles (internal/interp/types/type_system.go: "Class interface{} //
// *ClassInfo (avoiding import cycle)"). internal/eval is the only package
// that type-asserts Body and Env back to concrete types.
type Function struct {
	fnType   *types.Type
	params   []string
	Body     interface{}
	Env      interface{}
	release  func() // optional: releases values captured by Env, set by internal/eval
	refCount int32
}

// NewFunction returns a Function closure of fnType over body/env. release,
// if non-nil, is invoked exactly once when the closure's reference count
// reaches zero, giving internal/eval a hook to release captured values.
func NewFunction(fnType *types.Type, params []string, body, env interface{}, release func()) *Function {
	return &Function{
		fnType:   fnType.Retain(),
		params:   append([]string(nil), params...),
		Body:     body,
		Env:      env,
		release:  release,
		refCount: 1,
	}
}

func (f *Function) Type() *types.Type { return f.fnType.Retain() }

func (f *Function) String() string {
	var b strings.Builder
	b.WriteString("function(")
	b.WriteString(strings.Join(f.params, ", "))
	fmt.Fprintf(&b, ") @%p", f)
	return b.String()
}

func (f *Function) Retain() Value { f.refCount++; return f }

func (f *Function) Release() {
	f.refCount--
	if f.refCount > 0 {
		return
	}
	if f.release != nil {
		f.release()
	}
	f.fnType.Release()
}

// Params returns the closure's declared parameter names.
func (f *Function) Params() []string { return f.params }

// fingerprintPointer returns a fingerprint fragment for reference-identity
// values (Ref, Function) for which structural equality degenerates to
// pointer identity.
func fingerprintPointer(p interface{}) string {
	return fmt.Sprintf("p%p", p)
}
