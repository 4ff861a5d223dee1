package eval

import (
	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/ir"
	"github.com/elaraai/east-go/internal/registry"
	"github.com/elaraai/east-go/internal/types"
	"github.com/elaraai/east-go/internal/values"
)

// closure is what a values.Function's opaque Body/Env fields hold: the
// IR body to evaluate, its parameter names, and the registries it was
// compiled against. Env holds the captured *Environment.
type closure struct {
	body     ir.Expr
	params   []string
	builtins *registry.BuiltinRegistry
	platform *registry.PlatformRegistry
}

// CompiledFn is a runnable top-level program entry point (§4.3.2):
// compile's result, wrapping a values.Function closed over a fresh root
// environment.
type CompiledFn struct {
	fn *values.Function
}

// Compile produces a CompiledFn from a top-level Function or
// AsyncFunction IR node (§4.3.2). A Function whose body contains Await is
// a structuralError (§4.3.3): "a Function containing Await is a
// compile-time error".
func Compile(top ir.Node, platformReg *registry.PlatformRegistry, builtinReg *registry.BuiltinRegistry) (*CompiledFn, error) {
	switch n := top.(type) {
	case *ir.Function:
		if ir.ContainsAwait(n.Body) {
			return nil, errs.New(errs.StructuralError, "function %q body contains Await outside an async function", n.Name)
		}
		return newCompiledFn(n.Params, n.Body, n.ExprType(), platformReg, builtinReg), nil
	case *ir.AsyncFunction:
		return newCompiledFn(n.Params, n.Body, n.ExprType(), platformReg, builtinReg), nil
	default:
		return nil, errs.New(errs.StructuralError, "compile: top-level IR node must be Function or AsyncFunction, got %T", top)
	}
}

func newCompiledFn(params []ir.Param, body ir.Expr, fnType *types.Type, platformReg *registry.PlatformRegistry, builtinReg *registry.BuiltinRegistry) *CompiledFn {
	paramNames := make([]string, len(params))
	for i, p := range params {
		paramNames[i] = p.Name
	}
	env := NewEnvironment()
	c := &closure{body: body, params: paramNames, builtins: builtinReg, platform: platformReg}
	fn := values.NewFunction(fnType, paramNames, c, env, func() { env.Release() })
	return &CompiledFn{fn: fn}
}

// Call invokes c's wrapped closure with args, per §4.3.3: binds args to
// paramNames in a fresh child environment of the closure's defining
// environment, then evaluates the body.
func (c *CompiledFn) Call(args []values.Value) errs.Result {
	return callFunction(c.fn, args)
}

// Release releases the CompiledFn's underlying closure value, in turn
// releasing its root environment (§5's "owned environments and values
// are released as normal when the CompiledFn is dropped").
func (c *CompiledFn) Release() { c.fn.Release() }

// newClosureValue wraps an ir.Function/AsyncFunction literal encountered
// mid-evaluation into a values.Function, capturing env (the environment
// live at the point the literal is evaluated) — this is how East gets
// closures, as distinct from Compile's fresh root environment for a
// top-level program.
func newClosureValue(params []ir.Param, body ir.Expr, fnType *types.Type, env *Environment, builtins *registry.BuiltinRegistry, platform *registry.PlatformRegistry) *values.Function {
	paramNames := make([]string, len(params))
	for i, p := range params {
		paramNames[i] = p.Name
	}
	captured := env.Retain()
	c := &closure{body: body, params: paramNames, builtins: builtins, platform: platform}
	return values.NewFunction(fnType, paramNames, c, captured, func() { captured.Release() })
}

// Call invokes a function value with args — the exported entry point a
// platform callback uses to invoke a Function/AsyncFunction argument it
// was handed (§4.3.5's "the callback may itself invoke `call` on function
// values passed as arguments"). Identical to what Call IR nodes and
// map/filter/fold already do internally via callFunction.
func Call(fn *values.Function, args []values.Value) errs.Result {
	return callFunction(fn, args)
}

// callFunction is the shared Call implementation used both by
// CompiledFn.Call (the program entry point) and by the evaluator's Call
// node (invoking a closure value produced by a nested Function/
// AsyncFunction literal).
func callFunction(fn *values.Function, args []values.Value) errs.Result {
	c, ok := fn.Body.(*closure)
	if !ok {
		return errs.Err(errs.New(errs.TypeMismatch, "call: function value has no compiled body"))
	}
	if len(args) != len(c.params) {
		return errs.Err(errs.New(errs.ArityError, "expected %d argument(s), got %d", len(c.params), len(args)))
	}
	parentEnv, ok := fn.Env.(*Environment)
	if !ok {
		return errs.Err(errs.New(errs.TypeMismatch, "call: function value has no captured environment"))
	}

	callEnv := parentEnv.NewCallFrame()
	defer callEnv.Release()
	for i, name := range c.params {
		callEnv.Set(name, args[i])
	}

	return Eval(c.body, callEnv, c.builtins, c.platform)
}
