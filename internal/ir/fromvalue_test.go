package ir_test

import (
	"testing"

	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/eval"
	"github.com/elaraai/east-go/internal/ir"
	"github.com/elaraai/east-go/internal/types"
	"github.com/elaraai/east-go/internal/values"
)

// node builds a NodeType Variant value for case name with the given
// Struct-field values, mirroring what a loader would produce after
// decoding program bytes into a generic value tree.
func node(t *testing.T, nt *types.Type, name string, fieldNames []string, fieldVals []values.Value) *values.Variant {
	t.Helper()
	caseType, ok := nt.Inner().Case(name)
	if !ok {
		t.Fatalf("node type has no case %q", name)
	}
	if caseType == types.Null {
		return values.NewVariant(nt, name, nil)
	}
	return values.NewVariant(nt, name, values.NewStruct(caseType, fieldNames, fieldVals))
}

// TestFromValueDecodesAndRunsAddFunction builds, by hand, the value-tree
// encoding of function add(a, b) := add(a, b) and checks that decoding and
// running it through Compile/Call behaves exactly like the ir.NewX-built
// equivalent (east_test.go's addProgram).
func TestFromValueDecodesAndRunsAddFunction(t *testing.T) {
	nt := ir.NodeType()

	varA := node(t, nt, "Var", []string{"Type", "Name"}, []values.Value{values.Str("Integer"), values.Str("a")})
	varB := node(t, nt, "Var", []string{"Type", "Name"}, []values.Value{values.Str("Integer"), values.Str("b")})

	args := values.NewArray(nt, varA, varB)
	callAdd := node(t, nt, "CallBuiltin",
		[]string{"Type", "Name", "Args"},
		[]values.Value{values.Str("Integer"), values.Str("add"), args},
	)

	paramElemType := mustElemType(t, nt, "Function", "Params")
	params := values.NewArray(paramElemType,
		values.NewStruct(paramElemType, []string{"Name", "Type"}, []values.Value{values.Str("a"), values.Str("Integer")}),
		values.NewStruct(paramElemType, []string{"Name", "Type"}, []values.Value{values.Str("b"), values.Str("Integer")}),
	)
	top := node(t, nt, "Function",
		[]string{"Name", "Params", "Body", "ReturnType"},
		[]values.Value{values.Str("add"), params, callAdd, values.Str("Integer")},
	)

	decoded, derr := ir.FromValue(top)
	if derr != nil {
		t.Fatalf("FromValue: %v", derr)
	}
	fn, ok := decoded.(*ir.Function)
	if !ok {
		t.Fatalf("FromValue returned %T, want *Function", decoded)
	}

	builtinReg, err := eval.NewBuiltinRegistry()
	if err != nil {
		t.Fatalf("NewBuiltinRegistry: %v", err)
	}
	compiled, err := eval.Compile(fn, nil, builtinReg)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer compiled.Release()

	res := compiled.Call([]values.Value{values.Int(40), values.Int(2)})
	if res.IsError() {
		t.Fatalf("Call: %v", res.Error())
	}
	if res.Value() != values.Int(42) {
		t.Fatalf("Call = %v, want 42", res.Value())
	}
}

func mustStructType(t *testing.T, nt *types.Type, caseName, fieldName string) *types.Type {
	t.Helper()
	caseType, ok := nt.Inner().Case(caseName)
	if !ok {
		t.Fatalf("no case %q", caseName)
	}
	ft, ok := caseType.Field(fieldName)
	if !ok {
		t.Fatalf("case %q has no field %q", caseName, fieldName)
	}
	return ft
}

func mustElemType(t *testing.T, nt *types.Type, caseName, fieldName string) *types.Type {
	t.Helper()
	return mustStructType(t, nt, caseName, fieldName).Elem()
}

func TestFromValueRejectsUnknownCase(t *testing.T) {
	bogus := values.NewVariant(types.NewVariant(types.Case{Name: "Bogus", Type: types.Null}), "Bogus", nil)
	_, derr := ir.FromValue(bogus)
	if derr == nil {
		t.Fatal("FromValue: expected an error for an unknown node case")
	}
	if derr.Kind != errs.FormatError {
		t.Fatalf("FromValue error kind = %v, want formatError", derr.Kind)
	}
}
