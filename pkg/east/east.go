// Package east is the public facade over the East runtime: an Engine that
// owns a program's builtin and platform registries, compiles top-level IR
// into callable programs, and serializes values through the four codecs.
//
// Grounded on pkg/dwscript's test-visible shape (New(opts...), a
// functional-options Engine, RegisterFunction, a Result carrying success)
// — adapted for East's own scope: East builds its IR directly (§1
// Non-goals: no source-text compilation), so where the teacher's Engine
// takes a script string, this Engine's Compile takes an already-built
// ir.Node.
package east

import (
	"github.com/elaraai/east-go/internal/codec/beast"
	"github.com/elaraai/east-go/internal/codec/beast2"
	"github.com/elaraai/east-go/internal/codec/east"
	"github.com/elaraai/east-go/internal/codec/json"
	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/eval"
	"github.com/elaraai/east-go/internal/ir"
	"github.com/elaraai/east-go/internal/registry"
	"github.com/elaraai/east-go/internal/types"
	"github.com/elaraai/east-go/internal/values"
)

// Engine holds the builtin and platform registries a compiled Program
// evaluates against. The zero value is not usable; construct one with New.
type Engine struct {
	builtins *registry.BuiltinRegistry
	platform *registry.PlatformRegistry
}

// Option configures an Engine during New.
type Option func(*Engine) error

// New returns an Engine with every canonical built-in (§4.3.4, plus the
// higher-order container operations) already registered, then applies
// opts in order — typically a series of WithPlatformFunc calls binding the
// host callbacks a program's CallPlatform nodes will invoke (§4.3.5).
func New(opts ...Option) (*Engine, error) {
	builtinReg, err := eval.NewBuiltinRegistry()
	if err != nil {
		return nil, err
	}
	e := &Engine{
		builtins: builtinReg,
		platform: registry.NewPlatformRegistry(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// WithPlatformFunc registers a host platform callback under name (§4.3.5).
// async is stored on the registry entry; the evaluator runs every platform
// callback synchronously, whatever its async flag.
func WithPlatformFunc(name string, fn registry.PlatformFunc, async bool) Option {
	return func(e *Engine) error {
		return e.platform.Register(name, registry.PlatformEntry{Callback: fn, Async: async})
	}
}

// WithBuiltin registers an additional pure built-in beyond the canonical
// set — an escape hatch for host-specific pure functions that don't need
// platform-call semantics (no suspension, no side effects).
func WithBuiltin(name string, fn registry.BuiltinFunc) Option {
	return func(e *Engine) error {
		return e.builtins.Register(name, fn)
	}
}

// RegisterPlatformFunc registers a platform callback on an already-built
// Engine, for hosts that assemble their platform surface incrementally
// rather than entirely through New's options.
func (e *Engine) RegisterPlatformFunc(name string, fn registry.PlatformFunc, async bool) error {
	return e.platform.Register(name, registry.PlatformEntry{Callback: fn, Async: async})
}

// BuiltinNames returns the names of every registered pure built-in, sorted.
func (e *Engine) BuiltinNames() []string { return e.builtins.Names() }

// PlatformNames returns the names of every registered platform call, sorted.
func (e *Engine) PlatformNames() []string { return e.platform.Names() }

// Builtins returns e's underlying builtin registry, for packages (such as
// pkg/testplatform) that register additional pure built-ins directly rather
// than through a WithBuiltin option.
func (e *Engine) Builtins() *registry.BuiltinRegistry { return e.builtins }

// PlatformRegistry returns e's underlying platform registry, for packages
// (such as pkg/testplatform) that register platform calls directly rather
// than through a WithPlatformFunc option.
func (e *Engine) PlatformRegistry() *registry.PlatformRegistry { return e.platform }

// CallFunction invokes a Function/AsyncFunction value with args — the
// primitive a platform callback uses to call back into a function-value
// argument it was handed (§4.3.5).
func (e *Engine) CallFunction(fn *values.Function, args ...values.Value) errs.Result {
	return eval.Call(fn, args)
}

// Program is a compiled top-level Function or AsyncFunction (§4.3.2),
// ready to be invoked with Call. It owns a runtime environment and must be
// released with Release once the caller is done with it.
type Program struct {
	compiled *eval.CompiledFn
}

// Compile builds a Program from a top-level Function or AsyncFunction IR
// node, against e's builtin and platform registries. A Function whose body
// contains Await outside an AsyncFunction is a structuralError (§4.3.3).
func (e *Engine) Compile(top ir.Node) (*Program, error) {
	compiled, err := eval.Compile(top, e.platform, e.builtins)
	if err != nil {
		return nil, err
	}
	return &Program{compiled: compiled}, nil
}

// Call invokes the program with args, evaluating its body to a Result
// (§4.3.3): either a value or a structured *errs.Error.
func (p *Program) Call(args ...values.Value) errs.Result {
	return p.compiled.Call(args)
}

// Release drops the Program's underlying closure and root environment.
func (p *Program) Release() { p.compiled.Release() }

// Format names one of the four serialization formats §4.4 defines.
type Format int

const (
	// FormatEast is the human-readable textual literal format.
	FormatEast Format = iota
	// FormatJSON is the JSON mapping built on gjson/sjson/pretty.
	FormatJSON
	// FormatBeast is the schema-less compact binary format.
	FormatBeast
	// FormatBeast2 is the self-describing binary format with an embedded
	// type header.
	FormatBeast2
)

// Encode serializes v (of type t) to format. t is required for every
// format; Beast2 also writes t into its embedded type header, which its
// Decode checks against the t it is given (DecodeBeast2Header reads the
// header without one).
func Encode(v values.Value, t *types.Type, format Format) ([]byte, *errs.Error) {
	switch format {
	case FormatEast:
		return east.Encode(v, t)
	case FormatJSON:
		return json.Encode(v, t)
	case FormatBeast:
		return beast.Encode(v, t)
	case FormatBeast2:
		return beast2.Encode(v, t)
	default:
		return nil, errs.New(errs.FormatError, "unknown codec format %d", format)
	}
}

// Decode deserializes data as type t via format.
func Decode(data []byte, t *types.Type, format Format) (values.Value, *errs.Error) {
	switch format {
	case FormatEast:
		return east.Decode(data, t)
	case FormatJSON:
		return json.Decode(data, t)
	case FormatBeast:
		return beast.Decode(data, t)
	case FormatBeast2:
		return beast2.Decode(data, t)
	default:
		return nil, errs.New(errs.FormatError, "unknown codec format %d", format)
	}
}

// DecodeBeast2Header inspects a Beast2 payload's embedded type header
// without decoding its value section — used by tooling that wants to know
// a blob's type before committing to a full decode.
func DecodeBeast2Header(data []byte) (*types.Type, []byte, *errs.Error) {
	return beast2.DecodeHeader(data)
}
