package east

import (
	"math"
	"testing"
	"time"

	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/types"
	"github.com/elaraai/east-go/internal/values"
)

func roundTrip(t *testing.T, v values.Value, typ *types.Type) values.Value {
	t.Helper()
	data, err := Encode(v, typ)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, derr := Decode(data, typ)
	if derr != nil {
		t.Fatalf("Decode: %v (text: %s)", derr, data)
	}
	if !values.Equal(v, got) {
		t.Fatalf("round trip mismatch: want %v, got %v (text: %s)", v, got, data)
	}
	return got
}

func TestRoundTripScalars(t *testing.T) {
	roundTrip(t, values.Null, types.Null)
	roundTrip(t, values.Bool(true), types.Boolean)
	roundTrip(t, values.Bool(false), types.Boolean)
	roundTrip(t, values.Int(-42), types.Integer)
	roundTrip(t, values.Float(3.25), types.Float)
	roundTrip(t, values.Str("hello \"world\"\nnew line"), types.String)
	roundTrip(t, values.Blob([]byte{0xde, 0xad, 0xbe, 0xef}), types.Blob)

	now := values.NewDateTime(time.Date(2026, 7, 31, 9, 15, 0, 0, time.UTC))
	roundTrip(t, now, types.DateTime)
}

func TestRoundTripNonFiniteFloats(t *testing.T) {
	data, err := Encode(values.Float(math.Inf(1)), types.Float)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(data) != "inf" {
		t.Fatalf("Encode(+inf) = %q, want \"inf\"", data)
	}
	got, derr := Decode(data, types.Float)
	if derr != nil {
		t.Fatalf("Decode: %v", derr)
	}
	if f, ok := got.(values.Float); !ok || !math.IsInf(float64(f), 1) {
		t.Fatalf("Decode(inf) = %v, want +inf", got)
	}
}

func TestRoundTripArrayAndVector(t *testing.T) {
	arrType := types.NewArray(types.Integer)
	arr := values.NewArray(types.Integer, values.Int(1), values.Int(2), values.Int(3))
	roundTrip(t, arr, arrType)

	vecType := types.NewVector(types.Float)
	vec := values.NewVector(types.Float, values.Float(1.5), values.Float(2.5))
	roundTrip(t, vec, vecType)
}

func TestSetEncodesInFingerprintOrder(t *testing.T) {
	setType := types.NewSet(types.String)
	set := values.NewSet(types.String, values.Str("zebra"), values.Str("apple"), values.Str("mango"))
	data, err := Encode(set, setType)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// "apple" < "mango" < "zebra" lexically, and fingerprints for strings
	// preserve that ordering (the 's' tag plus raw bytes).
	want := `{"apple", "mango", "zebra"}`
	if string(data) != want {
		t.Fatalf("Encode(set) = %q, want %q", data, want)
	}
	roundTrip(t, set, setType)
}

func TestRoundTripMatrix(t *testing.T) {
	matType := types.NewMatrix(types.Integer)
	m := values.NewMatrix(types.Integer, 2, 2, []values.Value{values.Int(1), values.Int(2), values.Int(3), values.Int(4)})
	roundTrip(t, m, matType)
}

func TestRoundTripDictPreservesInsertionOrder(t *testing.T) {
	dictType := types.NewDict(types.String, types.Integer)
	d := values.NewDict(types.String, types.Integer)
	d.Set(values.Str("z"), values.Int(1))
	d.Set(values.Str("a"), values.Int(2))
	data, err := Encode(d, dictType)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `{"z": 1, "a": 2}`
	if string(data) != want {
		t.Fatalf("Encode(dict) = %q, want %q", data, want)
	}
	roundTrip(t, d, dictType)
}

func TestRoundTripStruct(t *testing.T) {
	structType := types.NewStruct(
		types.Field{Name: "x", Type: types.Integer},
		types.Field{Name: "y", Type: types.String},
	)
	s := values.NewStruct(structType, []string{"x", "y"}, []values.Value{values.Int(5), values.Str("five")})
	roundTrip(t, s, structType)
}

func TestRoundTripVariant(t *testing.T) {
	variantType := types.NewVariant(
		types.Case{Name: "None", Type: types.Null},
		types.Case{Name: "Some", Type: types.Integer},
	)
	data, err := Encode(values.NewVariant(variantType, "None", nil), variantType)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(data) != "Variant.None" {
		t.Fatalf("Encode(None) = %q, want bare case form", data)
	}
	roundTrip(t, values.NewVariant(variantType, "Some", values.Int(7)), variantType)
	roundTrip(t, values.NewVariant(variantType, "None", nil), variantType)
}

func TestDecodeTruncatedStringIsFormatError(t *testing.T) {
	_, derr := Decode([]byte(`"unterminated`), types.String)
	if derr == nil || derr.Kind != errs.FormatError {
		t.Fatalf("Decode(unterminated string) = %v, want formatError", derr)
	}
}

func TestDecodeUnicodeEscape(t *testing.T) {
	got, derr := Decode([]byte(`"\u{48}\u{65}\u{6C}\u{6C}\u{6F}"`), types.String)
	if derr != nil {
		t.Fatalf("Decode: %v", derr)
	}
	if got != values.Str("Hello") {
		t.Fatalf("Decode(\\u{} escapes) = %v, want Hello", got)
	}
}

func TestDecodeWrongLiteralIsFormatError(t *testing.T) {
	_, derr := Decode([]byte("nil"), types.Null)
	if derr == nil || derr.Kind != errs.FormatError {
		t.Fatalf("Decode(\"nil\" as Null) = %v, want formatError", derr)
	}
}

func TestDecodeUnknownVariantCaseIsStructuralError(t *testing.T) {
	variantType := types.NewVariant(
		types.Case{Name: "A", Type: types.Null},
	)
	_, derr := Decode([]byte("Variant.B"), variantType)
	if derr == nil || derr.Kind != errs.StructuralError {
		t.Fatalf("Decode(unknown case) = %v, want structuralError", derr)
	}
}

func TestDecodeTrailingInputIsFormatError(t *testing.T) {
	_, derr := Decode([]byte("null null"), types.Null)
	if derr == nil || derr.Kind != errs.FormatError {
		t.Fatalf("Decode(trailing input) = %v, want formatError", derr)
	}
}

func TestEncodeFunctionIsUnsupported(t *testing.T) {
	fnType := types.NewFunction(types.Integer, types.Integer)
	_, err := Encode(values.Null, fnType)
	if err == nil || err.Kind != errs.UnsupportedValue {
		t.Fatalf("Encode(Function type) = %v, want unsupportedValue", err)
	}
}
