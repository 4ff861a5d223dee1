package builtins

import (
	"github.com/tidwall/match"

	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/registry"
	"github.com/elaraai/east-go/internal/values"
)

// RegisterAll inserts every pure built-in named by §4.3.4 into reg. It is
// the one place that must reproduce every name the IR may call
// (internal/eval additionally registers `map`/`filter`/`fold`, which need
// to invoke function values and so cannot live in this package without an
// import cycle — see internal/eval/higher_order.go).
func RegisterAll(reg *registry.BuiltinRegistry) error {
	entries := map[string]registry.BuiltinFunc{
		"add": Add,
		"sub": Sub,
		"mul": Mul,
		"div": Div,
		"mod": Mod,

		"eq":  Eq,
		"lt":  Lt,
		"leq": Leq,

		"len":      Len,
		"get":      Get,
		"append":   Append,
		"contains": Contains,

		"concat": Concat,
		"slice":  Slice,
		"split":  Split,

		"blobLen":    BlobLen,
		"blobSlice":  BlobSlice,
		"blobConcat": BlobConcat,

		"toString": ToString,
		"parseInt": ParseInt,

		"matchesGlob": MatchesGlob,
	}

	for name, fn := range entries {
		if err := reg.Register(name, fn); err != nil {
			return err
		}
	}
	return nil
}

// MatchesGlob implements the `matchesGlob` built-in: `matchesGlob(s,
// pattern)` tests s against a shell-style glob pattern (`*`, `?`,
// `[...]`), via tidwall/match — the same globbing the teacher's JSON
// path tooling (internal/builtins/json.go, via tidwall/gjson) is itself
// layered on. Not named in §4.3.4's canonical list; it supplements the
// string built-ins with a predicate that front-ends commonly lower
// record/field filters to.
func MatchesGlob(args []values.Value) errs.Result {
	if e := arity("matchesGlob", args, 2); e != nil {
		return errs.Err(e)
	}
	s, ok := args[0].(values.Str)
	if !ok {
		return errs.Err(errs.New(errs.TypeMismatch, "matchesGlob: expected String, got %T", args[0]))
	}
	pattern, ok := args[1].(values.Str)
	if !ok {
		return errs.Err(errs.New(errs.TypeMismatch, "matchesGlob: pattern must be String, got %T", args[1]))
	}
	return errs.OK(values.Bool(match.Match(string(s), string(pattern))))
}
