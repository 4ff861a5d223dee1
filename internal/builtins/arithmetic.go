// Package builtins implements the canonical set of pure operations the
// evaluator dispatches by name (§4.3.4): arithmetic, comparison, container
// operations, string operations, blob operations, and conversions. Each
// function has the registry.BuiltinFunc shape and is arity/type-checked
// the way the teacher's migrated built-ins check argument count and kind
// before operating (internal/builtins/ordinal.go, internal/builtins/
// datetime_calc.go), adapted from a Context-based calling convention to
// East's plain (args []values.Value) -> errs.Result built-ins.
package builtins

import (
	"math"

	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/values"
)

func arity(name string, args []values.Value, n int) *errs.Error {
	if len(args) != n {
		return errs.New(errs.ArityError, "%s expects %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

// numericPair extracts a matching pair of either Int or Float operands,
// reporting typeMismatch if the arguments are not both Integer or both
// Float.
func numericPair(name string, a, b values.Value) (ai, bi values.Int, af, bf values.Float, isFloat bool, err *errs.Error) {
	switch av := a.(type) {
	case values.Int:
		bv, ok := b.(values.Int)
		if !ok {
			return 0, 0, 0, 0, false, errs.New(errs.TypeMismatch, "%s: expected Integer, got %T", name, b)
		}
		return av, bv, 0, 0, false, nil
	case values.Float:
		bv, ok := b.(values.Float)
		if !ok {
			return 0, 0, 0, 0, false, errs.New(errs.TypeMismatch, "%s: expected Float, got %T", name, b)
		}
		return 0, 0, av, bv, true, nil
	default:
		return 0, 0, 0, 0, false, errs.New(errs.TypeMismatch, "%s: expected Integer or Float, got %T", name, a)
	}
}

// Add implements the `add` built-in: integer/float polymorphic addition.
func Add(args []values.Value) errs.Result {
	if e := arity("add", args, 2); e != nil {
		return errs.Err(e)
	}
	ai, bi, af, bf, isFloat, e := numericPair("add", args[0], args[1])
	if e != nil {
		return errs.Err(e)
	}
	if isFloat {
		return errs.OK(af + bf)
	}
	return errs.OK(ai + bi)
}

// Sub implements the `sub` built-in.
func Sub(args []values.Value) errs.Result {
	if e := arity("sub", args, 2); e != nil {
		return errs.Err(e)
	}
	ai, bi, af, bf, isFloat, e := numericPair("sub", args[0], args[1])
	if e != nil {
		return errs.Err(e)
	}
	if isFloat {
		return errs.OK(af - bf)
	}
	return errs.OK(ai - bi)
}

// Mul implements the `mul` built-in.
func Mul(args []values.Value) errs.Result {
	if e := arity("mul", args, 2); e != nil {
		return errs.Err(e)
	}
	ai, bi, af, bf, isFloat, e := numericPair("mul", args[0], args[1])
	if e != nil {
		return errs.Err(e)
	}
	if isFloat {
		return errs.OK(af * bf)
	}
	return errs.OK(ai * bi)
}

// Div implements the `div` built-in. Integer division by zero is
// divisionByZero; float division by zero follows IEEE 754 (inf/nan), per
// §3.1's Float kind explicitly including those values.
func Div(args []values.Value) errs.Result {
	if e := arity("div", args, 2); e != nil {
		return errs.Err(e)
	}
	ai, bi, af, bf, isFloat, e := numericPair("div", args[0], args[1])
	if e != nil {
		return errs.Err(e)
	}
	if isFloat {
		return errs.OK(af / bf)
	}
	if bi == 0 {
		return errs.Err(errs.New(errs.DivisionByZero, "integer division by zero"))
	}
	return errs.OK(ai / bi)
}

// Mod implements the `mod` built-in, integer/float polymorphic.
func Mod(args []values.Value) errs.Result {
	if e := arity("mod", args, 2); e != nil {
		return errs.Err(e)
	}
	ai, bi, af, bf, isFloat, e := numericPair("mod", args[0], args[1])
	if e != nil {
		return errs.Err(e)
	}
	if isFloat {
		return errs.OK(values.Float(math.Mod(float64(af), float64(bf))))
	}
	if bi == 0 {
		return errs.Err(errs.New(errs.DivisionByZero, "integer modulo by zero"))
	}
	return errs.OK(ai % bi)
}
