// Package testplatform is a deterministic in-memory test-harness platform:
// "describe"/"test" platform calls that invoke a Function value's body via
// call, plus "assertEqual"/"assertTrue" built-ins a test body calls into,
// recording one Case per "test" block instead of printing anything (§4.3.5's
// parenthetical on describe/test).
//
// Grounded on pkg/dwscript's FFI test files (ffi_callbacks_test.go,
// ffi_test.go), which exercise exactly this shape — a host function handed
// a script-level function value and calling back into it — adapted from
// Go-native callback signatures to East's CallFunction/call primitive.
package testplatform

import (
	"strings"

	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/eval"
	"github.com/elaraai/east-go/internal/registry"
	"github.com/elaraai/east-go/internal/values"
	"github.com/elaraai/east-go/pkg/east"
)

// Case is the outcome of one "test" block.
type Case struct {
	// Name is the test's own name, prefixed with any enclosing "describe"
	// names joined by " > ".
	Name   string
	Passed bool
	Err    *errs.Error
}

// Platform collects Case results as a program's "describe"/"test" platform
// calls run. The zero value is ready to use.
type Platform struct {
	groups  []string
	Cases   []Case
}

// NewPlatform returns an empty Platform.
func NewPlatform() *Platform {
	return &Platform{}
}

// RegisterAll registers "describe" and "test" as platform calls on
// platformReg, and "assertEqual"/"assertTrue" as pure built-ins on
// builtinReg.
func (p *Platform) RegisterAll(builtinReg *registry.BuiltinRegistry, platformReg *registry.PlatformRegistry) error {
	if err := platformReg.Register("describe", registry.PlatformEntry{Callback: p.describe, Async: false}); err != nil {
		return err
	}
	if err := platformReg.Register("test", registry.PlatformEntry{Callback: p.test, Async: false}); err != nil {
		return err
	}
	if err := builtinReg.Register("assertEqual", assertEqual); err != nil {
		return err
	}
	return builtinReg.Register("assertTrue", assertTrue)
}

// Register wires p's "describe"/"test" platform calls and "assertEqual"/
// "assertTrue" built-ins into an already-constructed east.Engine, for hosts
// that build their Engine first and add the test harness afterward.
func (p *Platform) Register(e *east.Engine) error {
	return p.RegisterAll(e.Builtins(), e.PlatformRegistry())
}

// Passed reports whether every recorded Case passed (vacuously true if no
// "test" block ever ran).
func (p *Platform) Passed() bool {
	for _, c := range p.Cases {
		if !c.Passed {
			return false
		}
	}
	return true
}

func funcArg(name string, args []values.Value, i int) (*values.Function, *errs.Error) {
	if i >= len(args) {
		return nil, errs.New(errs.ArityError, "%s: expected at least %d argument(s), got %d", name, i+1, len(args))
	}
	fn, ok := args[i].(*values.Function)
	if !ok {
		return nil, errs.New(errs.TypeMismatch, "%s: expected a function argument, got %T", name, args[i])
	}
	return fn, nil
}

func nameArg(name string, args []values.Value, i int) (string, *errs.Error) {
	if i >= len(args) {
		return "", errs.New(errs.ArityError, "%s: expected at least %d argument(s), got %d", name, i+1, len(args))
	}
	s, ok := args[i].(values.Str)
	if !ok {
		return "", errs.New(errs.TypeMismatch, "%s: expected a String name argument, got %T", name, args[i])
	}
	return string(s), nil
}

// describe(name: String, body: Function): Null groups the "test" blocks
// body's own call-outs register under name, then releases the group.
func (p *Platform) describe(args []values.Value) errs.Result {
	if len(args) != 2 {
		return errs.Err(errs.New(errs.ArityError, "describe: expected 2 argument(s), got %d", len(args)))
	}
	name, err := nameArg("describe", args, 0)
	if err != nil {
		return errs.Err(err)
	}
	body, err := funcArg("describe", args, 1)
	if err != nil {
		return errs.Err(err)
	}

	p.groups = append(p.groups, name)
	res := eval.Call(body, nil)
	p.groups = p.groups[:len(p.groups)-1]

	if res.IsError() {
		return res
	}
	return errs.OK(values.Null)
}

// test(name: String, body: Function): Null calls body and records a Case
// under the enclosing describe groups plus name. A body that returns an
// error of any kind records a failing Case with that error rather than
// propagating it, so a single failing test does not abort the rest of the
// program; test itself returns an error only for bad arguments.
func (p *Platform) test(args []values.Value) errs.Result {
	if len(args) != 2 {
		return errs.Err(errs.New(errs.ArityError, "test: expected 2 argument(s), got %d", len(args)))
	}
	name, err := nameArg("test", args, 0)
	if err != nil {
		return errs.Err(err)
	}
	body, err := funcArg("test", args, 1)
	if err != nil {
		return errs.Err(err)
	}

	full := name
	if len(p.groups) > 0 {
		full = strings.Join(p.groups, " > ") + " > " + name
	}

	res := eval.Call(body, nil)
	if res.IsError() {
		p.Cases = append(p.Cases, Case{Name: full, Passed: false, Err: res.Error()})
	} else {
		p.Cases = append(p.Cases, Case{Name: full, Passed: true})
	}
	return errs.OK(values.Null)
}

// assertEqual(actual, expected: T): Null fails with a structuralError if
// actual and expected are not structurally equal (§3's value equality).
func assertEqual(args []values.Value) errs.Result {
	if len(args) != 2 {
		return errs.Err(errs.New(errs.ArityError, "assertEqual: expected 2 argument(s), got %d", len(args)))
	}
	if !values.Equal(args[0], args[1]) {
		return errs.Err(errs.New(errs.StructuralError, "assertEqual: %v != %v", args[0], args[1]))
	}
	return errs.OK(values.Null)
}

// assertTrue(cond: Boolean): Null fails with a structuralError if cond is
// false.
func assertTrue(args []values.Value) errs.Result {
	if len(args) != 1 {
		return errs.Err(errs.New(errs.ArityError, "assertTrue: expected 1 argument(s), got %d", len(args)))
	}
	b, ok := args[0].(values.Bool)
	if !ok {
		return errs.Err(errs.New(errs.TypeMismatch, "assertTrue: expected a Boolean argument, got %T", args[0]))
	}
	if !b {
		return errs.Err(errs.New(errs.StructuralError, "assertTrue: condition was false"))
	}
	return errs.OK(values.Null)
}
