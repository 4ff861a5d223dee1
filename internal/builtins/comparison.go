package builtins

import (
	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/values"
)

// Eq implements the `eq` built-in: structural equality on all values
// (§4.3.4).
func Eq(args []values.Value) errs.Result {
	if e := arity("eq", args, 2); e != nil {
		return errs.Err(e)
	}
	return errs.OK(values.Bool(values.Equal(args[0], args[1])))
}

// Lt implements the `lt` built-in: Integer/Float/String ordering.
func Lt(args []values.Value) errs.Result {
	return compareOrdered("lt", args, func(c int) bool { return c < 0 })
}

// Leq implements the `leq` built-in.
func Leq(args []values.Value) errs.Result {
	return compareOrdered("leq", args, func(c int) bool { return c <= 0 })
}

func compareOrdered(name string, args []values.Value, accept func(c int) bool) errs.Result {
	if e := arity(name, args, 2); e != nil {
		return errs.Err(e)
	}
	c, e := compare(name, args[0], args[1])
	if e != nil {
		return errs.Err(e)
	}
	return errs.OK(values.Bool(accept(c)))
}

func compare(name string, a, b values.Value) (int, *errs.Error) {
	switch av := a.(type) {
	case values.Int:
		bv, ok := b.(values.Int)
		if !ok {
			return 0, errs.New(errs.TypeMismatch, "%s: expected Integer, got %T", name, b)
		}
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	case values.Float:
		bv, ok := b.(values.Float)
		if !ok {
			return 0, errs.New(errs.TypeMismatch, "%s: expected Float, got %T", name, b)
		}
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	case values.Str:
		bv, ok := b.(values.Str)
		if !ok {
			return 0, errs.New(errs.TypeMismatch, "%s: expected String, got %T", name, b)
		}
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	default:
		return 0, errs.New(errs.TypeMismatch, "%s: unorderable type %T", name, a)
	}
}
