package ir

import (
	"testing"

	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/types"
)

func TestLiteralExprTypes(t *testing.T) {
	if NewIntLit(errs.Location{}, 1).ExprType() != types.Integer {
		t.Fatal("IntLit should have type Integer")
	}
	if NewStrLit(errs.Location{}, "x").ExprType() != types.String {
		t.Fatal("StrLit should have type String")
	}
}

func TestLetStringForm(t *testing.T) {
	let := NewLet(errs.Location{}, "x", NewIntLit(errs.Location{}, 1), NewVar(errs.Location{}, types.Integer, "x"))
	want := "let x = 1 in x"
	if got := let.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestFunctionTypeIsFunctionKind(t *testing.T) {
	fn := NewFunction(errs.Location{}, "id", []Param{{Name: "x", Type: types.Integer}},
		NewVar(errs.Location{}, types.Integer, "x"), types.Integer)

	want := types.NewFunction(types.Integer, types.Integer)
	defer want.Release()
	if !types.Equal(fn.ExprType(), want) {
		t.Fatalf("Function type = %v, want %v", fn.ExprType(), want)
	}
}

func TestAsyncFunctionTypeIsAsyncFunctionKind(t *testing.T) {
	afn := NewAsyncFunction(errs.Location{}, "fetch", nil,
		NewAwait(errs.Location{}, NewCallPlatform(errs.Location{}, types.String, "fs.read")), types.String)

	if afn.ExprType().Kind() != types.KindAsyncFunction {
		t.Fatalf("AsyncFunction type kind = %v, want KindAsyncFunction", afn.ExprType().Kind())
	}
}

func TestContainsAwaitDetectsNestedAwait(t *testing.T) {
	await := NewAwait(errs.Location{}, NewCallPlatform(errs.Location{}, types.Integer, "clock.now"))
	let := NewLet(errs.Location{}, "x", await, NewVar(errs.Location{}, types.Integer, "x"))

	if !ContainsAwait(let) {
		t.Fatal("expected ContainsAwait to find the nested Await")
	}
}

func TestContainsAwaitFalseWithoutAwait(t *testing.T) {
	let := NewLet(errs.Location{}, "x", NewIntLit(errs.Location{}, 1), NewVar(errs.Location{}, types.Integer, "x"))
	if ContainsAwait(let) {
		t.Fatal("did not expect ContainsAwait to find an Await")
	}
}

func TestContainsAwaitDoesNotDescendIntoNestedFunction(t *testing.T) {
	inner := NewFunction(errs.Location{}, "", nil,
		NewAwait(errs.Location{}, NewCallPlatform(errs.Location{}, types.Integer, "clock.now")), types.Integer)
	block := NewBlock(errs.Location{}, inner, NewIntLit(errs.Location{}, 0))

	if ContainsAwait(block) {
		t.Fatal("ContainsAwait must not descend into a nested Function/AsyncFunction literal")
	}
}

func TestMatchStringForm(t *testing.T) {
	m := NewMatch(errs.Location{}, NewVar(errs.Location{}, types.Integer, "v"),
		MatchCase{CaseName: "ok", BindName: "x", Body: NewVar(errs.Location{}, types.Integer, "x")},
		MatchCase{CaseName: "err", BindName: "e", Body: NewIntLit(errs.Location{}, -1)},
	)
	got := m.String()
	if got == "" {
		t.Fatal("expected non-empty Match string form")
	}
}
