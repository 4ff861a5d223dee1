package east

import (
	"testing"

	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/ir"
	"github.com/elaraai/east-go/internal/types"
	"github.com/elaraai/east-go/internal/values"
)

var noLoc = errs.Location{}

// addProgram builds add(a, b) := add(a, b) — a trivial top-level program
// exercising New, Compile, and Call without any platform surface.
func addProgram() *ir.Function {
	return ir.NewFunction(noLoc, "add",
		[]ir.Param{{Name: "a", Type: types.Integer}, {Name: "b", Type: types.Integer}},
		ir.NewCallBuiltin(noLoc, types.Integer, "add",
			ir.NewVar(noLoc, types.Integer, "a"),
			ir.NewVar(noLoc, types.Integer, "b"),
		),
		types.Integer,
	)
}

func TestCompileAndCall(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	program, cerr := engine.Compile(addProgram())
	if cerr != nil {
		t.Fatalf("Compile: %v", cerr)
	}
	defer program.Release()

	res := program.Call(values.Int(40), values.Int(2))
	if res.IsError() {
		t.Fatalf("Call: %v", res.Error())
	}
	if res.Value() != values.Int(42) {
		t.Fatalf("Call = %v, want 42", res.Value())
	}
}

func TestCompileRejectsAwaitOutsideAsync(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	fn := ir.NewFunction(noLoc, "bad", nil,
		ir.NewAwait(noLoc, ir.NewCallPlatform(noLoc, types.Integer, "wait")),
		types.Integer,
	)
	_, cerr := engine.Compile(fn)
	if cerr == nil {
		t.Fatal("Compile: expected structuralError for Await outside async function")
	}
}

func TestPlatformCallbackInvokesFunctionArgument(t *testing.T) {
	var seen []values.Value
	// engine is assigned after New returns; the callback closure captures
	// the variable itself, not its (not-yet-set) value, and only runs
	// later via program.Call(), by which point it is set.
	var engine *Engine

	callback := func(args []values.Value) errs.Result {
		fn, ok := args[0].(*values.Function)
		if !ok {
			return errs.Err(errs.New(errs.TypeMismatch, "record: expected a function argument"))
		}
		res := engine.CallFunction(fn, values.Int(7))
		if res.IsError() {
			return res
		}
		seen = append(seen, res.Value())
		return errs.OK(values.Null)
	}

	var err error
	engine, err = New(WithPlatformFunc("record", callback, false))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	inner := ir.NewFunction(noLoc, "", []ir.Param{{Name: "x", Type: types.Integer}},
		ir.NewCallBuiltin(noLoc, types.Integer, "add", ir.NewVar(noLoc, types.Integer, "x"), ir.NewIntLit(noLoc, 1)),
		types.Integer,
	)
	top := ir.NewFunction(noLoc, "run", nil, ir.NewCallPlatform(noLoc, types.Null, "record", inner), types.Null)

	program, cerr := engine.Compile(top)
	if cerr != nil {
		t.Fatalf("Compile: %v", cerr)
	}
	defer program.Release()

	res := program.Call()
	if res.IsError() {
		t.Fatalf("Call: %v", res.Error())
	}
	if len(seen) != 1 || seen[0] != values.Int(8) {
		t.Fatalf("platform callback saw %v, want [8]", seen)
	}
}

func TestRegisterPlatformFuncAfterNew(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := engine.RegisterPlatformFunc("noop", func(args []values.Value) errs.Result {
		return errs.OK(values.Null)
	}, false); err != nil {
		t.Fatalf("RegisterPlatformFunc: %v", err)
	}
	found := false
	for _, name := range engine.PlatformNames() {
		if name == "noop" {
			found = true
		}
	}
	if !found {
		t.Fatalf("PlatformNames() = %v, want to contain \"noop\"", engine.PlatformNames())
	}
}

func TestDuplicateBuiltinRegistrationIsRegistryError(t *testing.T) {
	_, err := New(WithBuiltin("add", func(args []values.Value) errs.Result {
		return errs.OK(values.Null)
	}))
	if err == nil {
		t.Fatal("New: expected registryError for duplicate builtin name")
	}
}

func TestEncodeDecodeEveryFormat(t *testing.T) {
	v := values.Int(99)
	for _, format := range []Format{FormatEast, FormatJSON, FormatBeast, FormatBeast2} {
		data, eerr := Encode(v, types.Integer, format)
		if eerr != nil {
			t.Fatalf("Encode(format=%d): %v", format, eerr)
		}
		got, derr := Decode(data, types.Integer, format)
		if derr != nil {
			t.Fatalf("Decode(format=%d): %v", format, derr)
		}
		if got != v {
			t.Fatalf("Decode(format=%d) = %v, want %v", format, got, v)
		}
	}
}

func TestDecodeBeast2HeaderWithoutFullDecode(t *testing.T) {
	data, eerr := Encode(values.Str("hi"), types.String, FormatBeast2)
	if eerr != nil {
		t.Fatalf("Encode: %v", eerr)
	}
	headerType, _, herr := DecodeBeast2Header(data)
	if herr != nil {
		t.Fatalf("DecodeBeast2Header: %v", herr)
	}
	if headerType.String() != types.String.String() {
		t.Fatalf("DecodeBeast2Header type = %s, want %s", headerType, types.String)
	}
}
