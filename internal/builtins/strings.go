package builtins

import (
	"strings"

	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/types"
	"github.com/elaraai/east-go/internal/values"
)

// Concat implements the `concat` built-in: String concatenation.
func Concat(args []values.Value) errs.Result {
	if e := arity("concat", args, 2); e != nil {
		return errs.Err(e)
	}
	a, ok := args[0].(values.Str)
	if !ok {
		return errs.Err(errs.New(errs.TypeMismatch, "concat: expected String, got %T", args[0]))
	}
	b, ok := args[1].(values.Str)
	if !ok {
		return errs.Err(errs.New(errs.TypeMismatch, "concat: expected String, got %T", args[1]))
	}
	return errs.OK(a + b)
}

// Slice implements the `slice` built-in: `slice(s, start, end)` over a
// String, by Unicode code point (rune) offsets.
func Slice(args []values.Value) errs.Result {
	if e := arity("slice", args, 3); e != nil {
		return errs.Err(e)
	}
	s, ok := args[0].(values.Str)
	if !ok {
		return errs.Err(errs.New(errs.TypeMismatch, "slice: expected String, got %T", args[0]))
	}
	start, ok := args[1].(values.Int)
	if !ok {
		return errs.Err(errs.New(errs.TypeMismatch, "slice: start must be Integer, got %T", args[1]))
	}
	end, ok := args[2].(values.Int)
	if !ok {
		return errs.Err(errs.New(errs.TypeMismatch, "slice: end must be Integer, got %T", args[2]))
	}
	runes := []rune(string(s))
	if start < 0 || end > values.Int(len(runes)) || start > end {
		return errs.Err(errs.New(errs.IndexOutOfRange, "slice(%d, %d) out of range [0, %d]", start, end, len(runes)))
	}
	return errs.OK(values.Str(string(runes[start:end])))
}

// Split implements the `split` built-in: `split(s, sep)` returns an
// Array<String>.
func Split(args []values.Value) errs.Result {
	if e := arity("split", args, 2); e != nil {
		return errs.Err(e)
	}
	s, ok := args[0].(values.Str)
	if !ok {
		return errs.Err(errs.New(errs.TypeMismatch, "split: expected String, got %T", args[0]))
	}
	sep, ok := args[1].(values.Str)
	if !ok {
		return errs.Err(errs.New(errs.TypeMismatch, "split: separator must be String, got %T", args[1]))
	}
	parts := strings.Split(string(s), string(sep))
	items := make([]values.Value, len(parts))
	for i, p := range parts {
		items[i] = values.Str(p)
	}
	return errs.OK(values.NewArray(types.String, items...))
}
