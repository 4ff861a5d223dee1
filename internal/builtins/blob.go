package builtins

import (
	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/values"
)

// BlobLen implements the `blobLen` built-in.
func BlobLen(args []values.Value) errs.Result {
	if e := arity("blobLen", args, 1); e != nil {
		return errs.Err(e)
	}
	b, ok := args[0].(values.Blob)
	if !ok {
		return errs.Err(errs.New(errs.TypeMismatch, "blobLen: expected Blob, got %T", args[0]))
	}
	return errs.OK(values.Int(len(b)))
}

// BlobSlice implements the `blobSlice` built-in: `blobSlice(b, start, end)`
// over raw bytes.
func BlobSlice(args []values.Value) errs.Result {
	if e := arity("blobSlice", args, 3); e != nil {
		return errs.Err(e)
	}
	b, ok := args[0].(values.Blob)
	if !ok {
		return errs.Err(errs.New(errs.TypeMismatch, "blobSlice: expected Blob, got %T", args[0]))
	}
	start, ok := args[1].(values.Int)
	if !ok {
		return errs.Err(errs.New(errs.TypeMismatch, "blobSlice: start must be Integer, got %T", args[1]))
	}
	end, ok := args[2].(values.Int)
	if !ok {
		return errs.Err(errs.New(errs.TypeMismatch, "blobSlice: end must be Integer, got %T", args[2]))
	}
	if start < 0 || end > values.Int(len(b)) || start > end {
		return errs.Err(errs.New(errs.IndexOutOfRange, "blobSlice(%d, %d) out of range [0, %d]", start, end, len(b)))
	}
	return errs.OK(values.Blob(append([]byte(nil), b[start:end]...)))
}

// BlobConcat implements the `blobConcat` built-in.
func BlobConcat(args []values.Value) errs.Result {
	if e := arity("blobConcat", args, 2); e != nil {
		return errs.Err(e)
	}
	a, ok := args[0].(values.Blob)
	if !ok {
		return errs.Err(errs.New(errs.TypeMismatch, "blobConcat: expected Blob, got %T", args[0]))
	}
	b, ok := args[1].(values.Blob)
	if !ok {
		return errs.Err(errs.New(errs.TypeMismatch, "blobConcat: expected Blob, got %T", args[1]))
	}
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return errs.OK(values.Blob(out))
}
