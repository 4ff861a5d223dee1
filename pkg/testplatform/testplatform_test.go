package testplatform

import (
	"testing"

	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/ir"
	"github.com/elaraai/east-go/internal/types"
	"github.com/elaraai/east-go/internal/values"
	"github.com/elaraai/east-go/pkg/east"
)

var noLoc = errs.Location{}

func testBody(loc errs.Location, assertion ir.Expr) *ir.Function {
	return ir.NewFunction(loc, "", nil, assertion, types.Null)
}

func TestDescribeAndPassingTest(t *testing.T) {
	engine, err := east.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tp := NewPlatform()
	if err := tp.Register(engine); err != nil {
		t.Fatalf("Register: %v", err)
	}

	passing := testBody(noLoc, ir.NewCallBuiltin(noLoc, types.Null, "assertEqual",
		ir.NewCallBuiltin(noLoc, types.Integer, "add", ir.NewIntLit(noLoc, 1), ir.NewIntLit(noLoc, 1)),
		ir.NewIntLit(noLoc, 2),
	))

	inner := ir.NewFunction(noLoc, "", nil,
		ir.NewCallPlatform(noLoc, types.Null, "test", ir.NewStrLit(noLoc, "1+1=2"), passing),
		types.Null,
	)
	top := ir.NewFunction(noLoc, "run", nil,
		ir.NewCallPlatform(noLoc, types.Null, "describe", ir.NewStrLit(noLoc, "arithmetic"), inner),
		types.Null,
	)

	program, cerr := engine.Compile(top)
	if cerr != nil {
		t.Fatalf("Compile: %v", cerr)
	}
	defer program.Release()

	if res := program.Call(); res.IsError() {
		t.Fatalf("Call: %v", res.Error())
	}

	if len(tp.Cases) != 1 {
		t.Fatalf("Cases = %v, want 1 case", tp.Cases)
	}
	if !tp.Cases[0].Passed {
		t.Fatalf("Cases[0] = %+v, want Passed", tp.Cases[0])
	}
	if tp.Cases[0].Name != "arithmetic > 1+1=2" {
		t.Fatalf("Cases[0].Name = %q, want \"arithmetic > 1+1=2\"", tp.Cases[0].Name)
	}
	if !tp.Passed() {
		t.Fatal("Passed() = false, want true")
	}
}

func TestFailingTestRecordsCaseWithoutAbortingProgram(t *testing.T) {
	engine, err := east.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tp := NewPlatform()
	if err := tp.Register(engine); err != nil {
		t.Fatalf("Register: %v", err)
	}

	failing := testBody(noLoc, ir.NewCallBuiltin(noLoc, types.Null, "assertTrue", ir.NewBoolLit(noLoc, false)))
	second := testBody(noLoc, ir.NewCallBuiltin(noLoc, types.Null, "assertTrue", ir.NewBoolLit(noLoc, true)))

	body := ir.NewBlock(noLoc,
		ir.NewCallPlatform(noLoc, types.Null, "test", ir.NewStrLit(noLoc, "fails"), failing),
		ir.NewCallPlatform(noLoc, types.Null, "test", ir.NewStrLit(noLoc, "passes"), second),
	)
	top := ir.NewFunction(noLoc, "run", nil, body, types.Null)

	program, cerr := engine.Compile(top)
	if cerr != nil {
		t.Fatalf("Compile: %v", cerr)
	}
	defer program.Release()

	if res := program.Call(); res.IsError() {
		t.Fatalf("Call: %v", res.Error())
	}

	if len(tp.Cases) != 2 {
		t.Fatalf("Cases = %v, want 2 cases", tp.Cases)
	}
	if tp.Cases[0].Passed || tp.Cases[0].Err == nil {
		t.Fatalf("Cases[0] = %+v, want a failing Case with an Err", tp.Cases[0])
	}
	if !tp.Cases[1].Passed {
		t.Fatalf("Cases[1] = %+v, want Passed", tp.Cases[1])
	}
	if tp.Passed() {
		t.Fatal("Passed() = true, want false")
	}
}

func TestAssertEqualMismatch(t *testing.T) {
	res := assertEqual([]values.Value{values.Int(1), values.Int(2)})
	if !res.IsError() {
		t.Fatal("assertEqual(1, 2): expected an error")
	}
	if res.Error().Kind != errs.StructuralError {
		t.Fatalf("assertEqual error kind = %v, want structuralError", res.Error().Kind)
	}
}

func TestAssertTrueWrongType(t *testing.T) {
	res := assertTrue([]values.Value{values.Int(1)})
	if !res.IsError() || res.Error().Kind != errs.TypeMismatch {
		t.Fatalf("assertTrue(1): expected typeMismatch, got %v", res)
	}
}
