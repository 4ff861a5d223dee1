package builtins

import (
	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/values"
)

// sequence returns the backing items of any sequence-shaped value (Array,
// Vector, Set), or nil with false if v is none of those.
func sequence(v values.Value) ([]values.Value, bool) {
	switch x := v.(type) {
	case *values.Array:
		return x.Items(), true
	case *values.Vector:
		return x.Items(), true
	case *values.Set:
		return x.Items(), true
	default:
		return nil, false
	}
}

// Len implements the `len` built-in over Array/Vector/Set/Dict/String.
func Len(args []values.Value) errs.Result {
	if e := arity("len", args, 1); e != nil {
		return errs.Err(e)
	}
	switch v := args[0].(type) {
	case values.Str:
		return errs.OK(values.Int(len(v)))
	case *values.Dict:
		return errs.OK(values.Int(v.Len()))
	default:
		if items, ok := sequence(v); ok {
			return errs.OK(values.Int(len(items)))
		}
		return errs.Err(errs.New(errs.TypeMismatch, "len: unsupported type %T", args[0]))
	}
}

// Get implements the `get` built-in: array/vector index access, or dict
// lookup by key.
func Get(args []values.Value) errs.Result {
	if e := arity("get", args, 2); e != nil {
		return errs.Err(e)
	}
	switch v := args[0].(type) {
	case *values.Dict:
		val, ok := v.Get(args[1])
		if !ok {
			return errs.Err(errs.New(errs.KeyNotFound, "key not found: %s", args[1].String()))
		}
		return errs.OK(val)
	default:
		items, ok := sequence(v)
		if !ok {
			return errs.Err(errs.New(errs.TypeMismatch, "get: unsupported type %T", args[0]))
		}
		idx, ok := args[1].(values.Int)
		if !ok {
			return errs.Err(errs.New(errs.TypeMismatch, "get: index must be Integer, got %T", args[1]))
		}
		if int64(idx) < 0 || int64(idx) >= int64(len(items)) {
			return errs.Err(errs.New(errs.IndexOutOfRange, "index %d out of range [0, %d)", idx, len(items)))
		}
		return errs.OK(items[idx])
	}
}

// Append implements the `append` built-in: returns a new Array with v
// appended, leaving the original untouched (§4.2's functional-update
// convention for owned containers).
func Append(args []values.Value) errs.Result {
	if e := arity("append", args, 2); e != nil {
		return errs.Err(e)
	}
	arr, ok := args[0].(*values.Array)
	if !ok {
		return errs.Err(errs.New(errs.TypeMismatch, "append: expected Array, got %T", args[0]))
	}
	out := values.NewArray(arr.ElemType(), append(append([]values.Value(nil), arr.Items()...), args[1])...)
	return errs.OK(out)
}

// Contains implements the `contains` built-in over Array/Vector/Set
// (structural equality) and Dict (key membership).
func Contains(args []values.Value) errs.Result {
	if e := arity("contains", args, 2); e != nil {
		return errs.Err(e)
	}
	if d, ok := args[0].(*values.Dict); ok {
		_, found := d.Get(args[1])
		return errs.OK(values.Bool(found))
	}
	items, ok := sequence(args[0])
	if !ok {
		return errs.Err(errs.New(errs.TypeMismatch, "contains: unsupported type %T", args[0]))
	}
	for _, item := range items {
		if values.Equal(item, args[1]) {
			return errs.OK(values.Bool(true))
		}
	}
	return errs.OK(values.Bool(false))
}
