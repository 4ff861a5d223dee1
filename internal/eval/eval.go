package eval

import (
	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/ir"
	"github.com/elaraai/east-go/internal/registry"
	"github.com/elaraai/east-go/internal/types"
	"github.com/elaraai/east-go/internal/values"
)

// Eval evaluates node in env against the given registries, implementing
// the evaluation rules of §4.3.3 node by node. Every error path prepends
// node's own source location before returning, so the final report's
// location stack starts at the outermost node and ends at the innermost one
// (§7's "Propagation").
func Eval(node ir.Expr, env *Environment, builtins *registry.BuiltinRegistry, platform *registry.PlatformRegistry) errs.Result {
	res := evalNode(node, env, builtins, platform)
	if res.IsError() {
		return res.WithLocation(node.Pos())
	}
	return res
}

func evalNode(node ir.Expr, env *Environment, builtins *registry.BuiltinRegistry, platform *registry.PlatformRegistry) errs.Result {
	switch n := node.(type) {
	case *ir.NullLit:
		return errs.OK(values.Null)
	case *ir.BoolLit:
		return errs.OK(values.Bool(n.Value))
	case *ir.IntLit:
		return errs.OK(values.Int(n.Value))
	case *ir.FloatLit:
		return errs.OK(values.Float(n.Value))
	case *ir.StrLit:
		return errs.OK(values.Str(n.Value))
	case *ir.BlobLit:
		return errs.OK(values.Blob(n.Value))

	case *ir.ArrayLit:
		return evalArrayLit(n, env, builtins, platform)
	case *ir.SetLit:
		return evalSetLit(n, env, builtins, platform)
	case *ir.DictLit:
		return evalDictLit(n, env, builtins, platform)
	case *ir.StructLit:
		return evalStructLit(n, env, builtins, platform)
	case *ir.VariantLit:
		return evalVariantLit(n, env, builtins, platform)

	case *ir.Var:
		v, ok := env.Get(n.Name)
		if !ok {
			return errs.Err(errs.New(errs.NameError, "unknown variable %q", n.Name))
		}
		return errs.OK(v)

	case *ir.Let:
		return evalLet(n, env, builtins, platform)

	case *ir.If:
		return evalIf(n, env, builtins, platform)

	case *ir.Match:
		return evalMatch(n, env, builtins, platform)

	case *ir.Block:
		return evalBlock(n, env, builtins, platform)

	case *ir.Return:
		res := Eval(n.Value, env, builtins, platform)
		if !res.IsError() {
			env.fireReturn()
		}
		return res

	case *ir.Await:
		// Await's suspension is delegated entirely to the host: since
		// evaluating n.Value already runs to completion (including any
		// blocking platform I/O the callback performs), there is nothing
		// further for the core to do beyond evaluate and return — the
		// evaluator "yields" exactly for as long as that evaluation
		// blocks, which is indistinguishable here from any other call.
		return Eval(n.Value, env, builtins, platform)

	case *ir.Call:
		return evalCall(n, env, builtins, platform)
	case *ir.CallBuiltin:
		return evalCallBuiltin(n, env, builtins, platform)
	case *ir.CallPlatform:
		return evalCallPlatform(n, env, builtins, platform)

	case *ir.Function:
		return errs.OK(newClosureValue(n.Params, n.Body, n.ExprType(), env, builtins, platform))
	case *ir.AsyncFunction:
		return errs.OK(newClosureValue(n.Params, n.Body, n.ExprType(), env, builtins, platform))

	default:
		return errs.Err(errs.New(errs.StructuralError, "eval: unsupported IR node %T", node))
	}
}

func evalLet(n *ir.Let, env *Environment, builtins *registry.BuiltinRegistry, platform *registry.PlatformRegistry) errs.Result {
	val := Eval(n.Value, env, builtins, platform)
	if val.IsError() {
		return val
	}
	child := env.NewChild()
	defer child.Release()
	child.Set(n.Name, val.Value())
	return Eval(n.Body, child, builtins, platform)
}

func evalIf(n *ir.If, env *Environment, builtins *registry.BuiltinRegistry, platform *registry.PlatformRegistry) errs.Result {
	cond := Eval(n.Cond, env, builtins, platform)
	if cond.IsError() {
		return cond
	}
	b, ok := cond.Value().(values.Bool)
	if !ok {
		return errs.Err(errs.New(errs.TypeMismatch, "if: condition must be Boolean, got %T", cond.Value()))
	}
	if b {
		return Eval(n.Then, env, builtins, platform)
	}
	return Eval(n.Else, env, builtins, platform)
}

func evalMatch(n *ir.Match, env *Environment, builtins *registry.BuiltinRegistry, platform *registry.PlatformRegistry) errs.Result {
	scrut := Eval(n.Scrutinee, env, builtins, platform)
	if scrut.IsError() {
		return scrut
	}
	v, ok := scrut.Value().(*values.Variant)
	if !ok {
		return errs.Err(errs.New(errs.TypeMismatch, "match: scrutinee must be a Variant, got %T", scrut.Value()))
	}
	for _, c := range n.Cases {
		if c.CaseName != v.Case() {
			continue
		}
		if v.Payload() == nil {
			return Eval(c.Body, env, builtins, platform)
		}
		child := env.NewChild()
		defer child.Release()
		child.Set(c.BindName, v.Payload())
		return Eval(c.Body, child, builtins, platform)
	}
	return errs.Err(errs.New(errs.NonExhaustive, "no case matches %q", v.Case()))
}

func evalBlock(n *ir.Block, env *Environment, builtins *registry.BuiltinRegistry, platform *registry.PlatformRegistry) errs.Result {
	if len(n.Stmts) == 0 {
		return errs.OK(values.Null)
	}
	var last errs.Result
	for _, s := range n.Stmts {
		last = Eval(s, env, builtins, platform)
		if last.IsError() {
			return last
		}
		if env.returnFired() {
			return last
		}
	}
	return last
}

func evalCall(n *ir.Call, env *Environment, builtins *registry.BuiltinRegistry, platform *registry.PlatformRegistry) errs.Result {
	calleeRes := Eval(n.Callee, env, builtins, platform)
	if calleeRes.IsError() {
		return calleeRes
	}
	fn, ok := calleeRes.Value().(*values.Function)
	if !ok {
		return errs.Err(errs.New(errs.TypeMismatch, "call: callee must be a function value, got %T", calleeRes.Value()))
	}
	args, err := evalArgs(n.Args, env, builtins, platform)
	if err.IsError() {
		return err
	}
	return callFunction(fn, args)
}

func evalCallBuiltin(n *ir.CallBuiltin, env *Environment, builtins *registry.BuiltinRegistry, platform *registry.PlatformRegistry) errs.Result {
	fn, ok := builtins.Lookup(n.Name)
	if !ok {
		return errs.Err(errs.New(errs.NameError, "unregistered builtin %q", n.Name))
	}
	args, err := evalArgs(n.Args, env, builtins, platform)
	if err.IsError() {
		return err
	}
	return fn(args)
}

func evalCallPlatform(n *ir.CallPlatform, env *Environment, builtins *registry.BuiltinRegistry, platform *registry.PlatformRegistry) errs.Result {
	entry, ok := platform.Lookup(n.Name)
	if !ok {
		return errs.Err(errs.New(errs.NameError, "unregistered platform call %q", n.Name))
	}
	args, err := evalArgs(n.Args, env, builtins, platform)
	if err.IsError() {
		return err
	}
	res := entry.Callback(args)
	if res.IsError() && res.Error().Kind != errs.PlatformError {
		// A platform callback's own internal errors are reported as
		// platformError (§7) regardless of what kind the host happened
		// to construct, so a faulty host can't masquerade a platform
		// failure as e.g. a typeMismatch the caller might mishandle.
		return errs.Err(errs.New(errs.PlatformError, "%s", res.Error().Message))
	}
	return res
}

func evalArgs(exprs []ir.Expr, env *Environment, builtins *registry.BuiltinRegistry, platform *registry.PlatformRegistry) ([]values.Value, errs.Result) {
	out := make([]values.Value, len(exprs))
	for i, e := range exprs {
		res := Eval(e, env, builtins, platform)
		if res.IsError() {
			return nil, res
		}
		out[i] = res.Value()
	}
	return out, errs.Result{}
}

func evalArrayLit(n *ir.ArrayLit, env *Environment, builtins *registry.BuiltinRegistry, platform *registry.PlatformRegistry) errs.Result {
	args, err := evalArgs(n.Elems, env, builtins, platform)
	if err.IsError() {
		return err
	}
	return errs.OK(values.NewArray(elemTypeOf(n.ExprType()), args...))
}

func evalSetLit(n *ir.SetLit, env *Environment, builtins *registry.BuiltinRegistry, platform *registry.PlatformRegistry) errs.Result {
	args, err := evalArgs(n.Elems, env, builtins, platform)
	if err.IsError() {
		return err
	}
	return errs.OK(values.NewSet(elemTypeOf(n.ExprType()), args...))
}

func elemTypeOf(t *types.Type) *types.Type {
	return t.Elem()
}

func evalDictLit(n *ir.DictLit, env *Environment, builtins *registry.BuiltinRegistry, platform *registry.PlatformRegistry) errs.Result {
	keyType, valType := n.ExprType().KeyValue()
	d := values.NewDict(keyType, valType)
	for _, entry := range n.Entries {
		k := Eval(entry.Key, env, builtins, platform)
		if k.IsError() {
			return k
		}
		v := Eval(entry.Value, env, builtins, platform)
		if v.IsError() {
			return v
		}
		d.Set(k.Value(), v.Value())
	}
	return errs.OK(d)
}

func evalStructLit(n *ir.StructLit, env *Environment, builtins *registry.BuiltinRegistry, platform *registry.PlatformRegistry) errs.Result {
	names := make([]string, len(n.Fields))
	vals := make([]values.Value, len(n.Fields))
	for i, f := range n.Fields {
		res := Eval(f.Value, env, builtins, platform)
		if res.IsError() {
			return res
		}
		names[i] = f.Name
		vals[i] = res.Value()
	}
	return errs.OK(values.NewStruct(n.ExprType(), names, vals))
}

func evalVariantLit(n *ir.VariantLit, env *Environment, builtins *registry.BuiltinRegistry, platform *registry.PlatformRegistry) errs.Result {
	if n.Payload == nil {
		return errs.OK(values.NewVariant(n.ExprType(), n.CaseName, nil))
	}
	res := Eval(n.Payload, env, builtins, platform)
	if res.IsError() {
		return res
	}
	return errs.OK(values.NewVariant(n.ExprType(), n.CaseName, res.Value()))
}
