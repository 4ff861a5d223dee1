package eval

import (
	"github.com/elaraai/east-go/internal/builtins"
	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/registry"
	"github.com/elaraai/east-go/internal/types"
	"github.com/elaraai/east-go/internal/values"
)

// NewBuiltinRegistry returns a BuiltinRegistry populated with every pure
// built-in from internal/builtins plus the three higher-order container
// operations named by §4.3.4 (`map`, `filter`, `fold`) that internal/builtins
// cannot itself register without importing this package back (it needs
// Call capability over a function value argument).
func NewBuiltinRegistry() (*registry.BuiltinRegistry, error) {
	reg := registry.NewBuiltinRegistry()
	if err := builtins.RegisterAll(reg); err != nil {
		return nil, err
	}
	entries := map[string]registry.BuiltinFunc{
		"map":    mapBuiltin,
		"filter": filterBuiltin,
		"fold":   foldBuiltin,
	}
	for name, fn := range entries {
		if err := reg.Register(name, fn); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func asFunction(name string, v values.Value) (*values.Function, *errs.Error) {
	fn, ok := v.(*values.Function)
	if !ok {
		return nil, errs.New(errs.TypeMismatch, "%s: expected a function value, got %T", name, v)
	}
	return fn, nil
}

func sequenceItems(name string, v values.Value) ([]values.Value, *errs.Error) {
	switch x := v.(type) {
	case *values.Array:
		return x.Items(), nil
	case *values.Vector:
		return x.Items(), nil
	case *values.Set:
		return x.Items(), nil
	default:
		return nil, errs.New(errs.TypeMismatch, "%s: expected Array, Vector or Set, got %T", name, v)
	}
}

// sequenceElemType returns the declared element type of an Array, Vector,
// or Set value, without allocating a fresh wrapper Type the way calling
// v.Type() and unwrapping it would.
func sequenceElemType(v values.Value) *types.Type {
	switch x := v.(type) {
	case *values.Array:
		return x.ElemType()
	case *values.Vector:
		return x.ElemType()
	case *values.Set:
		return x.ElemType()
	default:
		return nil
	}
}

// mapBuiltin implements `map(container, fn)`: applies fn to every element,
// returning a new Array of fn's declared result type. §4.3.4 lists `map`
// among the container operations; element order matches the source
// container's iteration order (insertion order for Set).
func mapBuiltin(args []values.Value) errs.Result {
	if len(args) != 2 {
		return errs.Err(errs.New(errs.ArityError, "map: expected 2 argument(s), got %d", len(args)))
	}
	items, err := sequenceItems("map", args[0])
	if err != nil {
		return errs.Err(err)
	}
	fn, err := asFunction("map", args[1])
	if err != nil {
		return errs.Err(err)
	}
	fnType := fn.Type()
	defer fnType.Release()
	resultType := fnType.Result()

	out := make([]values.Value, 0, len(items))
	for _, item := range items {
		res := callFunction(fn, []values.Value{item})
		if res.IsError() {
			return res
		}
		out = append(out, res.Value())
	}
	return errs.OK(values.NewArray(resultType, out...))
}

// filterBuiltin implements `filter(container, predicate)`: keeps elements
// for which predicate returns true, preserving the source container's
// element type and iteration order.
func filterBuiltin(args []values.Value) errs.Result {
	if len(args) != 2 {
		return errs.Err(errs.New(errs.ArityError, "filter: expected 2 argument(s), got %d", len(args)))
	}
	items, err := sequenceItems("filter", args[0])
	if err != nil {
		return errs.Err(err)
	}
	fn, err := asFunction("filter", args[1])
	if err != nil {
		return errs.Err(err)
	}
	elemType := sequenceElemType(args[0])

	out := make([]values.Value, 0, len(items))
	for _, item := range items {
		res := callFunction(fn, []values.Value{item})
		if res.IsError() {
			return res
		}
		keep, ok := res.Value().(values.Bool)
		if !ok {
			return errs.Err(errs.New(errs.TypeMismatch, "filter: predicate must return Boolean, got %T", res.Value()))
		}
		if keep {
			out = append(out, item)
		}
	}
	return errs.OK(values.NewArray(elemType, out...))
}

// foldBuiltin implements `fold(container, initial, fn)`: left-to-right
// accumulation, `fn(accumulator, element) -> accumulator`.
func foldBuiltin(args []values.Value) errs.Result {
	if len(args) != 3 {
		return errs.Err(errs.New(errs.ArityError, "fold: expected 3 argument(s), got %d", len(args)))
	}
	items, err := sequenceItems("fold", args[0])
	if err != nil {
		return errs.Err(err)
	}
	fn, err := asFunction("fold", args[2])
	if err != nil {
		return errs.Err(err)
	}

	acc := args[1]
	for _, item := range items {
		res := callFunction(fn, []values.Value{acc, item})
		if res.IsError() {
			return res
		}
		acc = res.Value()
	}
	return errs.OK(acc)
}
