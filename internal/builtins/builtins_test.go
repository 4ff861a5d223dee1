package builtins

import (
	"testing"

	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/registry"
	"github.com/elaraai/east-go/internal/types"
	"github.com/elaraai/east-go/internal/values"
)

func TestArithmeticIntegerAndFloat(t *testing.T) {
	res := Add([]values.Value{values.Int(2), values.Int(3)})
	if res.IsError() || res.Value() != values.Int(5) {
		t.Fatalf("Add(2,3) = %+v", res)
	}
	res = Mul([]values.Value{values.Float(1.5), values.Float(2)})
	if res.IsError() || res.Value() != values.Float(3) {
		t.Fatalf("Mul(1.5,2) = %+v", res)
	}
}

func TestDivisionByZero(t *testing.T) {
	res := Div([]values.Value{values.Int(1), values.Int(0)})
	if !res.IsError() || res.Error().Kind != errs.DivisionByZero {
		t.Fatalf("Div(1,0) = %+v, want divisionByZero", res)
	}
}

func TestArithmeticTypeMismatch(t *testing.T) {
	res := Add([]values.Value{values.Int(1), values.Str("x")})
	if !res.IsError() || res.Error().Kind != errs.TypeMismatch {
		t.Fatalf("Add(1,\"x\") = %+v, want typeMismatch", res)
	}
}

func TestEqIsStructural(t *testing.T) {
	a := values.NewArray(types.Integer, values.Int(1), values.Int(2))
	b := values.NewArray(types.Integer, values.Int(1), values.Int(2))
	defer a.Release()
	defer b.Release()

	res := Eq([]values.Value{a, b})
	if res.IsError() || res.Value() != values.Bool(true) {
		t.Fatalf("Eq(a,b) = %+v, want true", res)
	}
}

func TestLtOrdersStrings(t *testing.T) {
	res := Lt([]values.Value{values.Str("a"), values.Str("b")})
	if res.IsError() || res.Value() != values.Bool(true) {
		t.Fatalf("Lt(\"a\",\"b\") = %+v, want true", res)
	}
}

func TestLenAndGetAndContains(t *testing.T) {
	arr := values.NewArray(types.Integer, values.Int(10), values.Int(20), values.Int(30))
	defer arr.Release()

	if res := Len([]values.Value{arr}); res.IsError() || res.Value() != values.Int(3) {
		t.Fatalf("Len(arr) = %+v, want 3", res)
	}
	if res := Get([]values.Value{arr, values.Int(1)}); res.IsError() || res.Value() != values.Int(20) {
		t.Fatalf("Get(arr,1) = %+v, want 20", res)
	}
	if res := Get([]values.Value{arr, values.Int(99)}); !res.IsError() || res.Error().Kind != errs.IndexOutOfRange {
		t.Fatalf("Get(arr,99) = %+v, want indexOutOfRange", res)
	}
	if res := Contains([]values.Value{arr, values.Int(20)}); res.IsError() || res.Value() != values.Bool(true) {
		t.Fatalf("Contains(arr,20) = %+v, want true", res)
	}
}

func TestAppendDoesNotMutateOriginal(t *testing.T) {
	arr := values.NewArray(types.Integer, values.Int(1))
	defer arr.Release()

	res := Append([]values.Value{arr, values.Int(2)})
	if res.IsError() {
		t.Fatalf("Append failed: %v", res.Error())
	}
	appended := res.Value().(*values.Array)
	defer appended.Release()

	if arr.Len() != 1 {
		t.Fatalf("original array mutated, Len() = %d, want 1", arr.Len())
	}
	if appended.Len() != 2 {
		t.Fatalf("appended array Len() = %d, want 2", appended.Len())
	}
}

func TestDictGetKeyNotFound(t *testing.T) {
	d := values.NewDict(types.String, types.Integer)
	defer d.Release()
	d.Set(values.Str("a"), values.Int(1))

	if res := Get([]values.Value{d, values.Str("a")}); res.IsError() || res.Value() != values.Int(1) {
		t.Fatalf("Get(d,\"a\") = %+v, want 1", res)
	}
	if res := Get([]values.Value{d, values.Str("missing")}); !res.IsError() || res.Error().Kind != errs.KeyNotFound {
		t.Fatalf("Get(d,\"missing\") = %+v, want keyNotFound", res)
	}
}

func TestStringBuiltins(t *testing.T) {
	if res := Concat([]values.Value{values.Str("foo"), values.Str("bar")}); res.IsError() || res.Value() != values.Str("foobar") {
		t.Fatalf("Concat = %+v", res)
	}
	if res := Slice([]values.Value{values.Str("hello"), values.Int(1), values.Int(3)}); res.IsError() || res.Value() != values.Str("el") {
		t.Fatalf("Slice = %+v", res)
	}
	res := Split([]values.Value{values.Str("a,b,c"), values.Str(",")})
	if res.IsError() {
		t.Fatalf("Split failed: %v", res.Error())
	}
	arr := res.Value().(*values.Array)
	defer arr.Release()
	if arr.Len() != 3 {
		t.Fatalf("Split produced %d parts, want 3", arr.Len())
	}
}

func TestBlobBuiltins(t *testing.T) {
	b := values.Blob([]byte("hello"))
	if res := BlobLen([]values.Value{b}); res.IsError() || res.Value() != values.Int(5) {
		t.Fatalf("BlobLen = %+v", res)
	}
	if res := BlobSlice([]values.Value{b, values.Int(1), values.Int(3)}); res.IsError() {
		t.Fatalf("BlobSlice failed: %v", res.Error())
	}
}

func TestConversionBuiltins(t *testing.T) {
	if res := ToString([]values.Value{values.Int(42)}); res.IsError() || res.Value() != values.Str("42") {
		t.Fatalf("ToString(42) = %+v", res)
	}
	if res := ParseInt([]values.Value{values.Str("123")}); res.IsError() || res.Value() != values.Int(123) {
		t.Fatalf("ParseInt(\"123\") = %+v", res)
	}
	if res := ParseInt([]values.Value{values.Str("not a number")}); !res.IsError() || res.Error().Kind != errs.FormatError {
		t.Fatalf("ParseInt(\"not a number\") = %+v, want formatError", res)
	}
}

func TestMatchesGlob(t *testing.T) {
	if res := MatchesGlob([]values.Value{values.Str("report_2026.csv"), values.Str("report_*.csv")}); res.IsError() || res.Value() != values.Bool(true) {
		t.Fatalf("MatchesGlob = %+v, want true", res)
	}
	if res := MatchesGlob([]values.Value{values.Str("report.txt"), values.Str("report_*.csv")}); res.IsError() || res.Value() != values.Bool(false) {
		t.Fatalf("MatchesGlob = %+v, want false", res)
	}
}

func TestRegisterAllPopulatesRegistry(t *testing.T) {
	reg := registry.NewBuiltinRegistry()
	if err := RegisterAll(reg); err != nil {
		t.Fatalf("RegisterAll failed: %v", err)
	}
	for _, name := range []string{"add", "eq", "len", "concat", "blobLen", "toString", "matchesGlob"} {
		if _, ok := reg.Lookup(name); !ok {
			t.Errorf("expected %q to be registered", name)
		}
	}
}
