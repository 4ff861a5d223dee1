// Package beast implements East's compact binary serialization format
// (§4.4 "beast"): schema-less, no type header — decoding always requires
// the caller to supply the exact Type the bytes were encoded against.
// Every value is `(tag:u8, payload)`, tag a copy of the declared Type's
// Kind byte as a cheap self-check rather than a discriminant the decoder
// actually branches on (the decoder branches on the supplied Type, the
// same way the teacher's own bytecode reader (internal/bytecode/
// serializer.go) trusts its header version rather than re-deriving shape
// from the bytes alone). Integers are varint/ZigZag via
// encoding/binary.AppendVarint, strings and blobs are length-prefixed
// (varint), containers are length-prefixed then elements, and Variant
// writes its case's canonical sort index (§3.1 invariant 2) before the
// payload.
package beast

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/types"
	"github.com/elaraai/east-go/internal/values"
)

// timeFromUnixNano reconstructs a UTC time.Time from nanoseconds since the
// Unix epoch, the same resolution DateTime's varint wire encoding stores.
func timeFromUnixNano(nanos int64) time.Time {
	return time.Unix(0, nanos).UTC()
}

// Encode serializes v (of type t) into beast's compact binary form.
func Encode(v values.Value, t *types.Type) ([]byte, *errs.Error) {
	var buf []byte
	return appendValue(buf, v, t)
}

// Decode parses data as a value of type t, per beast's schema-less,
// type-directed contract (§4.4): "the decoder requires the exact matching
// Type to interpret tags."
func Decode(data []byte, t *types.Type) (values.Value, *errs.Error) {
	v, rest, err := readValue(data, t)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, errs.New(errs.FormatError, "beast: %d trailing byte(s) after value", len(rest))
	}
	return v, nil
}

func resolveType(t *types.Type) *types.Type {
	for t != nil && t.Kind() == types.KindRecursive {
		t = t.Inner()
	}
	return t
}

func appendValue(buf []byte, v values.Value, t *types.Type) ([]byte, *errs.Error) {
	t = resolveType(t)
	buf = append(buf, byte(t.Kind()))

	switch t.Kind() {
	case types.KindNull:
		return buf, nil

	case types.KindBoolean:
		b, ok := v.(values.Bool)
		if !ok {
			return nil, errs.New(errs.TypeMismatch, "beast: expected Boolean, got %T", v)
		}
		if b {
			return append(buf, 1), nil
		}
		return append(buf, 0), nil

	case types.KindInteger:
		i, ok := v.(values.Int)
		if !ok {
			return nil, errs.New(errs.TypeMismatch, "beast: expected Integer, got %T", v)
		}
		return binary.AppendVarint(buf, int64(i)), nil

	case types.KindFloat:
		f, ok := v.(values.Float)
		if !ok {
			return nil, errs.New(errs.TypeMismatch, "beast: expected Float, got %T", v)
		}
		return binary.LittleEndian.AppendUint64(buf, math.Float64bits(float64(f))), nil

	case types.KindString:
		s, ok := v.(values.Str)
		if !ok {
			return nil, errs.New(errs.TypeMismatch, "beast: expected String, got %T", v)
		}
		buf = binary.AppendVarint(buf, int64(len(s)))
		return append(buf, s...), nil

	case types.KindDateTime:
		d, ok := v.(values.DateTimeValue)
		if !ok {
			return nil, errs.New(errs.TypeMismatch, "beast: expected DateTime, got %T", v)
		}
		return binary.AppendVarint(buf, d.Instant.UnixNano()), nil

	case types.KindBlob:
		b, ok := v.(values.Blob)
		if !ok {
			return nil, errs.New(errs.TypeMismatch, "beast: expected Blob, got %T", v)
		}
		buf = binary.AppendVarint(buf, int64(len(b)))
		return append(buf, b...), nil

	case types.KindArray, types.KindVector, types.KindSet:
		items, elemType, err := sequenceOf(v, t)
		if err != nil {
			return nil, err
		}
		buf = binary.AppendVarint(buf, int64(len(items)))
		for _, item := range items {
			var aerr *errs.Error
			buf, aerr = appendValue(buf, item, elemType)
			if aerr != nil {
				return nil, aerr
			}
		}
		return buf, nil

	case types.KindMatrix:
		m, ok := v.(*values.Matrix)
		if !ok {
			return nil, errs.New(errs.TypeMismatch, "beast: expected Matrix, got %T", v)
		}
		rows, cols := m.Dims()
		buf = binary.AppendVarint(buf, int64(rows))
		buf = binary.AppendVarint(buf, int64(cols))
		elemType := t.Elem()
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				cell, _ := m.At(r, c)
				var merr *errs.Error
				buf, merr = appendValue(buf, cell, elemType)
				if merr != nil {
					return nil, merr
				}
			}
		}
		return buf, nil

	case types.KindRef:
		r, ok := v.(*values.Ref)
		if !ok {
			return nil, errs.New(errs.TypeMismatch, "beast: expected Ref, got %T", v)
		}
		return appendValue(buf, r.Get(), t.Elem())

	case types.KindDict:
		d, ok := v.(*values.Dict)
		if !ok {
			return nil, errs.New(errs.TypeMismatch, "beast: expected Dict, got %T", v)
		}
		keyType, valType := t.KeyValue()
		buf = binary.AppendVarint(buf, int64(d.Len()))
		for _, k := range d.Keys() {
			val, _ := d.Get(k)
			var kerr, verr *errs.Error
			buf, kerr = appendValue(buf, k, keyType)
			if kerr != nil {
				return nil, kerr
			}
			buf, verr = appendValue(buf, val, valType)
			if verr != nil {
				return nil, verr
			}
		}
		return buf, nil

	case types.KindStruct:
		s, ok := v.(*values.Struct)
		if !ok {
			return nil, errs.New(errs.TypeMismatch, "beast: expected Struct, got %T", v)
		}
		for _, f := range t.Fields() {
			fv, found := s.Field(f.Name)
			if !found {
				return nil, errs.New(errs.StructuralError, "beast: struct value missing field %q", f.Name)
			}
			var ferr *errs.Error
			buf, ferr = appendValue(buf, fv, f.Type)
			if ferr != nil {
				return nil, ferr
			}
		}
		return buf, nil

	case types.KindVariant:
		variant, ok := v.(*values.Variant)
		if !ok {
			return nil, errs.New(errs.TypeMismatch, "beast: expected Variant, got %T", v)
		}
		cases := t.Cases()
		idx := -1
		for i, c := range cases {
			if c.Name == variant.Case() {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, errs.New(errs.StructuralError, "beast: unknown variant case %q", variant.Case())
		}
		buf = binary.AppendVarint(buf, int64(idx))
		if cases[idx].Type.Kind() == types.KindNull {
			return buf, nil
		}
		return appendValue(buf, variant.Payload(), cases[idx].Type)

	default:
		return nil, errs.New(errs.UnsupportedValue, "beast: %s values are not serializable", t.Kind())
	}
}

// sequenceOf returns the backing items and declared element type of an
// Array/Vector/Set value.
func sequenceOf(v values.Value, t *types.Type) ([]values.Value, *types.Type, *errs.Error) {
	elemType := t.Elem()
	switch x := v.(type) {
	case *values.Array:
		return x.Items(), elemType, nil
	case *values.Vector:
		return x.Items(), elemType, nil
	case *values.Set:
		return x.Items(), elemType, nil
	default:
		return nil, nil, errs.New(errs.TypeMismatch, "beast: expected a sequence value, got %T", v)
	}
}

func readValue(data []byte, t *types.Type) (values.Value, []byte, *errs.Error) {
	t = resolveType(t)
	if len(data) == 0 {
		return nil, nil, errs.New(errs.FormatError, "beast: unexpected end of input")
	}
	gotTag, rest := data[0], data[1:]
	if gotTag != byte(t.Kind()) {
		return nil, nil, errs.New(errs.FormatError, "beast: tag %d does not match expected type %s", gotTag, t)
	}

	switch t.Kind() {
	case types.KindNull:
		return values.Null, rest, nil

	case types.KindBoolean:
		if len(rest) < 1 {
			return nil, nil, errs.New(errs.FormatError, "beast: unexpected end reading Boolean")
		}
		return values.Bool(rest[0] != 0), rest[1:], nil

	case types.KindInteger:
		i, n := binary.Varint(rest)
		if n <= 0 {
			return nil, nil, errs.New(errs.FormatError, "beast: malformed Integer varint")
		}
		return values.Int(i), rest[n:], nil

	case types.KindFloat:
		if len(rest) < 8 {
			return nil, nil, errs.New(errs.FormatError, "beast: unexpected end reading Float")
		}
		bits := binary.LittleEndian.Uint64(rest[:8])
		return values.Float(math.Float64frombits(bits)), rest[8:], nil

	case types.KindString:
		n, body, err := readLengthPrefixed(rest)
		if err != nil {
			return nil, nil, err
		}
		return values.Str(body[:n]), body[n:], nil

	case types.KindDateTime:
		nanos, n := binary.Varint(rest)
		if n <= 0 {
			return nil, nil, errs.New(errs.FormatError, "beast: malformed DateTime varint")
		}
		return values.NewDateTime(timeFromUnixNano(nanos)), rest[n:], nil

	case types.KindBlob:
		n, body, err := readLengthPrefixed(rest)
		if err != nil {
			return nil, nil, err
		}
		blob := append([]byte(nil), body[:n]...)
		return values.Blob(blob), body[n:], nil

	case types.KindArray, types.KindVector, types.KindSet:
		count, n := binary.Varint(rest)
		if n <= 0 || count < 0 {
			return nil, nil, errs.New(errs.FormatError, "beast: malformed sequence length")
		}
		rest = rest[n:]
		elemType := t.Elem()
		items := make([]values.Value, 0, count)
		for i := int64(0); i < count; i++ {
			var item values.Value
			var err *errs.Error
			item, rest, err = readValue(rest, elemType)
			if err != nil {
				return nil, nil, err
			}
			items = append(items, item)
		}
		switch t.Kind() {
		case types.KindVector:
			return values.NewVector(elemType, items...), rest, nil
		case types.KindSet:
			return values.NewSet(elemType, items...), rest, nil
		default:
			return values.NewArray(elemType, items...), rest, nil
		}

	case types.KindMatrix:
		rows, n1 := binary.Varint(rest)
		if n1 <= 0 || rows < 0 {
			return nil, nil, errs.New(errs.FormatError, "beast: malformed Matrix row count")
		}
		rest = rest[n1:]
		cols, n2 := binary.Varint(rest)
		if n2 <= 0 || cols < 0 {
			return nil, nil, errs.New(errs.FormatError, "beast: malformed Matrix col count")
		}
		rest = rest[n2:]
		elemType := t.Elem()
		data := make([]values.Value, 0, rows*cols)
		for i := int64(0); i < rows*cols; i++ {
			var cell values.Value
			var err *errs.Error
			cell, rest, err = readValue(rest, elemType)
			if err != nil {
				return nil, nil, err
			}
			data = append(data, cell)
		}
		return values.NewMatrix(elemType, int(rows), int(cols), data), rest, nil

	case types.KindRef:
		elemType := t.Elem()
		inner, after, err := readValue(rest, elemType)
		if err != nil {
			return nil, nil, err
		}
		return values.NewRef(elemType, inner), after, nil

	case types.KindDict:
		count, n := binary.Varint(rest)
		if n <= 0 || count < 0 {
			return nil, nil, errs.New(errs.FormatError, "beast: malformed Dict length")
		}
		rest = rest[n:]
		keyType, valType := t.KeyValue()
		d := values.NewDict(keyType, valType)
		for i := int64(0); i < count; i++ {
			var key, val values.Value
			var err *errs.Error
			key, rest, err = readValue(rest, keyType)
			if err != nil {
				return nil, nil, err
			}
			val, rest, err = readValue(rest, valType)
			if err != nil {
				return nil, nil, err
			}
			d.Set(key, val)
		}
		return d, rest, nil

	case types.KindStruct:
		fields := t.Fields()
		names := make([]string, len(fields))
		vals := make([]values.Value, len(fields))
		for i, f := range fields {
			var fv values.Value
			var err *errs.Error
			fv, rest, err = readValue(rest, f.Type)
			if err != nil {
				return nil, nil, err
			}
			names[i] = f.Name
			vals[i] = fv
		}
		return values.NewStruct(t, names, vals), rest, nil

	case types.KindVariant:
		idx, n := binary.Varint(rest)
		if n <= 0 {
			return nil, nil, errs.New(errs.FormatError, "beast: malformed Variant case index")
		}
		rest = rest[n:]
		cases := t.Cases()
		if idx < 0 || int(idx) >= len(cases) {
			return nil, nil, errs.New(errs.FormatError, "beast: variant case index %d out of range", idx)
		}
		c := cases[idx]
		if c.Type.Kind() == types.KindNull {
			return values.NewVariant(t, c.Name, nil), rest, nil
		}
		payload, after, err := readValue(rest, c.Type)
		if err != nil {
			return nil, nil, err
		}
		return values.NewVariant(t, c.Name, payload), after, nil

	default:
		return nil, nil, errs.New(errs.UnsupportedValue, "beast: %s values are not serializable", t.Kind())
	}
}

func readLengthPrefixed(data []byte) (int, []byte, *errs.Error) {
	length, n := binary.Varint(data)
	if n <= 0 || length < 0 {
		return 0, nil, errs.New(errs.FormatError, "beast: malformed length prefix")
	}
	body := data[n:]
	if int64(len(body)) < length {
		return 0, nil, errs.New(errs.FormatError, "beast: unexpected end of input")
	}
	return int(length), body, nil
}
