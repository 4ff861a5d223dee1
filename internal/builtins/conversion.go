package builtins

import (
	"strconv"

	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/values"
)

// ToString implements the `toString` built-in: a debug-quality textual
// rendering of any value, not one of the §4.4 wire encodings.
func ToString(args []values.Value) errs.Result {
	if e := arity("toString", args, 1); e != nil {
		return errs.Err(e)
	}
	return errs.OK(values.Str(args[0].String()))
}

// ParseInt implements the `parseInt` built-in: a lossless Integer parse,
// failing with formatError (not typeMismatch — the input is a well-typed
// String whose *content* is malformed) on non-integral text.
func ParseInt(args []values.Value) errs.Result {
	if e := arity("parseInt", args, 1); e != nil {
		return errs.Err(e)
	}
	s, ok := args[0].(values.Str)
	if !ok {
		return errs.Err(errs.New(errs.TypeMismatch, "parseInt: expected String, got %T", args[0]))
	}
	n, err := strconv.ParseInt(string(s), 10, 64)
	if err != nil {
		return errs.Err(errs.New(errs.FormatError, "parseInt: %v", err))
	}
	return errs.OK(values.Int(n))
}
