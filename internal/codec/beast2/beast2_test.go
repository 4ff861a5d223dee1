package beast2

import (
	"testing"

	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/types"
	"github.com/elaraai/east-go/internal/values"
)

func TestRoundTripPrimitive(t *testing.T) {
	data, err := Encode(values.Int(42), types.Integer)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, derr := Decode(data, types.Integer)
	if derr != nil {
		t.Fatalf("Decode: %v", derr)
	}
	if got != values.Int(42) {
		t.Fatalf("Decode = %v, want 42", got)
	}
}

func TestRoundTripContainerType(t *testing.T) {
	dictType := types.NewDict(types.String, types.NewArray(types.Integer))
	d := values.NewDict(types.String, types.NewArray(types.Integer))
	d.Set(values.Str("a"), values.NewArray(types.Integer, values.Int(1), values.Int(2)))

	data, err := Encode(d, dictType)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, derr := Decode(data, dictType)
	if derr != nil {
		t.Fatalf("Decode: %v", derr)
	}
	if !values.Equal(d, got) {
		t.Fatalf("round trip mismatch: want %v, got %v", d, got)
	}
}

func TestHeaderHoldsRoundTrippableType(t *testing.T) {
	structType := types.NewStruct(
		types.Field{Name: "id", Type: types.Integer},
		types.Field{Name: "name", Type: types.String},
	)
	s := values.NewStruct(structType, []string{"id", "name"}, []values.Value{values.Int(1), values.Str("a")})

	data, err := Encode(s, structType)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	headerType, _, herr := DecodeHeader(data)
	if herr != nil {
		t.Fatalf("DecodeHeader: %v", herr)
	}
	if headerType.String() != structType.String() {
		t.Fatalf("DecodeHeader type = %s, want %s", headerType, structType)
	}
}

func TestRoundTripRecursiveType(t *testing.T) {
	// A linked-list-shaped type: Variant { Nil: Null | Cons: Struct { head:
	// Integer, tail: <back to the Variant itself> } }.
	wrapper := types.NewRecursive()
	consStruct := types.NewStruct(
		types.Field{Name: "head", Type: types.Integer},
		types.Field{Name: "tail", Type: wrapper},
	)
	inner := types.NewVariant(
		types.Case{Name: "Nil", Type: types.Null},
		types.Case{Name: "Cons", Type: consStruct},
	)
	listType := wrapper.Bind(inner)

	nilVal := values.NewVariant(listType, "Nil", nil)
	consVal := values.NewStruct(consStruct, []string{"head", "tail"}, []values.Value{values.Int(1), nilVal})
	listVal := values.NewVariant(listType, "Cons", consVal)

	data, err := Encode(listVal, listType)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, derr := Decode(data, listType)
	if derr != nil {
		t.Fatalf("Decode: %v", derr)
	}
	if !values.Equal(listVal, got) {
		t.Fatalf("round trip mismatch: want %v, got %v", listVal, got)
	}
}

func TestDecodeBadMagicIsFormatError(t *testing.T) {
	data, err := Encode(values.Int(1), types.Integer)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	data[0] = 'X'
	_, derr := Decode(data, types.Integer)
	if derr == nil || derr.Kind != errs.FormatError {
		t.Fatalf("Decode(bad magic) = %v, want formatError", derr)
	}
}

func TestDecodeIncompatibleVersionIsFormatError(t *testing.T) {
	data, err := Encode(values.Int(1), types.Integer)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	data[len(MagicNumber)] = VersionMajor + 1
	_, derr := Decode(data, types.Integer)
	if derr == nil || derr.Kind != errs.FormatError {
		t.Fatalf("Decode(future major version) = %v, want formatError", derr)
	}
}

func TestDecodeTypeMismatch(t *testing.T) {
	data, err := Encode(values.Int(1), types.Integer)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	_, derr := Decode(data, types.String)
	if derr == nil || derr.Kind != errs.TypeMismatch {
		t.Fatalf("Decode(mismatched expected type) = %v, want typeMismatch", derr)
	}
}

func TestDecodeTruncatedHeaderIsFormatError(t *testing.T) {
	_, derr := Decode([]byte{'E', 'A'}, types.Integer)
	if derr == nil || derr.Kind != errs.FormatError {
		t.Fatalf("Decode(truncated header) = %v, want formatError", derr)
	}
}
