// Package json implements East's JSON serialization format (§4.4
// "json"): a type-directed mapping between typed values and JSON text.
// Decoding walks a parsed github.com/tidwall/gjson tree recursively per
// Type kind instead of round-tripping through an intermediate
// map[string]any; encoding assembles JSON text bottom-up, using
// github.com/tidwall/sjson's value-literal encoding for every scalar leaf
// so that string escaping/number formatting is never hand-rolled, and
// github.com/tidwall/pretty for the canonical pretty-printed output
// invariant.
package json

import (
	"encoding/base64"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/types"
	"github.com/elaraai/east-go/internal/values"
)

var prettyOptions = &pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

// Encode serializes v (of type t) as canonical pretty-printed JSON (§4.4,
// §8 invariant 1).
func Encode(v values.Value, t *types.Type) ([]byte, *errs.Error) {
	raw, err := encodeValue(v, t)
	if err != nil {
		return nil, err
	}
	return pretty.PrettyOptions([]byte(raw), prettyOptions), nil
}

// Decode parses data as a value of type t.
func Decode(data []byte, t *types.Type) (values.Value, *errs.Error) {
	if !gjson.ValidBytes(data) {
		return nil, errs.New(errs.FormatError, "json: invalid JSON input")
	}
	return decodeValue(gjson.ParseBytes(data), t)
}

func resolveType(t *types.Type) *types.Type {
	for t != nil && t.Kind() == types.KindRecursive {
		t = t.Inner()
	}
	return t
}

// jsonLeaf turns a Go scalar into its properly escaped/formatted JSON
// text representation, by round-tripping it through sjson's own value
// encoder rather than hand-rolling string escaping.
func jsonLeaf(v interface{}) (string, *errs.Error) {
	buf, err := sjson.SetBytes([]byte("{}"), "v", v)
	if err != nil {
		return "", errs.New(errs.FormatError, "json: %v", err)
	}
	return gjson.GetBytes(buf, "v").Raw, nil
}

const (
	posInfLiteral = "Infinity"
	negInfLiteral = "-Infinity"
	nanLiteral    = "NaN"
)

func encodeValue(v values.Value, t *types.Type) (string, *errs.Error) {
	t = resolveType(t)

	switch t.Kind() {
	case types.KindNull:
		return "null", nil

	case types.KindBoolean:
		b, ok := v.(values.Bool)
		if !ok {
			return "", errs.New(errs.TypeMismatch, "json: expected Boolean, got %T", v)
		}
		return jsonLeaf(bool(b))

	case types.KindInteger:
		i, ok := v.(values.Int)
		if !ok {
			return "", errs.New(errs.TypeMismatch, "json: expected Integer, got %T", v)
		}
		// Written as raw decimal text, not routed through sjson/gjson's
		// float64-based Set, so values beyond float64's 53-bit mantissa
		// stay lossless.
		return strconv.FormatInt(int64(i), 10), nil

	case types.KindFloat:
		f, ok := v.(values.Float)
		if !ok {
			return "", errs.New(errs.TypeMismatch, "json: expected Float, got %T", v)
		}
		switch {
		case math.IsNaN(float64(f)):
			return jsonLeaf(nanLiteral)
		case math.IsInf(float64(f), 1):
			return jsonLeaf(posInfLiteral)
		case math.IsInf(float64(f), -1):
			return jsonLeaf(negInfLiteral)
		default:
			return jsonLeaf(float64(f))
		}

	case types.KindString:
		s, ok := v.(values.Str)
		if !ok {
			return "", errs.New(errs.TypeMismatch, "json: expected String, got %T", v)
		}
		return jsonLeaf(string(s))

	case types.KindDateTime:
		d, ok := v.(values.DateTimeValue)
		if !ok {
			return "", errs.New(errs.TypeMismatch, "json: expected DateTime, got %T", v)
		}
		return jsonLeaf(d.Instant.Format(time.RFC3339Nano))

	case types.KindBlob:
		b, ok := v.(values.Blob)
		if !ok {
			return "", errs.New(errs.TypeMismatch, "json: expected Blob, got %T", v)
		}
		return jsonLeaf(base64.StdEncoding.EncodeToString(b))

	case types.KindArray, types.KindVector, types.KindSet:
		items, err := sequenceOf(v)
		if err != nil {
			return "", err
		}
		elemType := t.Elem()
		parts := make([]string, len(items))
		for i, item := range items {
			raw, ierr := encodeValue(item, elemType)
			if ierr != nil {
				return "", ierr
			}
			parts[i] = raw
		}
		return "[" + strings.Join(parts, ",") + "]", nil

	case types.KindMatrix:
		m, ok := v.(*values.Matrix)
		if !ok {
			return "", errs.New(errs.TypeMismatch, "json: expected Matrix, got %T", v)
		}
		rows, cols := m.Dims()
		elemType := t.Elem()
		rowStrs := make([]string, rows)
		for r := 0; r < rows; r++ {
			cellStrs := make([]string, cols)
			for c := 0; c < cols; c++ {
				cell, _ := m.At(r, c)
				raw, cerr := encodeValue(cell, elemType)
				if cerr != nil {
					return "", cerr
				}
				cellStrs[c] = raw
			}
			rowStrs[r] = "[" + strings.Join(cellStrs, ",") + "]"
		}
		return "[" + strings.Join(rowStrs, ",") + "]", nil

	case types.KindDict:
		d, ok := v.(*values.Dict)
		if !ok {
			return "", errs.New(errs.TypeMismatch, "json: expected Dict, got %T", v)
		}
		keyType, valType := t.KeyValue()
		if keyType.Kind() == types.KindString {
			var b strings.Builder
			b.WriteString("{")
			for i, k := range d.Keys() {
				if i > 0 {
					b.WriteString(",")
				}
				keyRaw, kerr := jsonLeaf(string(k.(values.Str)))
				if kerr != nil {
					return "", kerr
				}
				val, _ := d.Get(k)
				valRaw, verr := encodeValue(val, valType)
				if verr != nil {
					return "", verr
				}
				b.WriteString(keyRaw)
				b.WriteString(":")
				b.WriteString(valRaw)
			}
			b.WriteString("}")
			return b.String(), nil
		}
		pairs := make([]string, d.Len())
		for i, k := range d.Keys() {
			keyRaw, kerr := encodeValue(k, keyType)
			if kerr != nil {
				return "", kerr
			}
			val, _ := d.Get(k)
			valRaw, verr := encodeValue(val, valType)
			if verr != nil {
				return "", verr
			}
			pairs[i] = "[" + keyRaw + "," + valRaw + "]"
		}
		return "[" + strings.Join(pairs, ",") + "]", nil

	case types.KindStruct:
		s, ok := v.(*values.Struct)
		if !ok {
			return "", errs.New(errs.TypeMismatch, "json: expected Struct, got %T", v)
		}
		fields := t.Fields()
		parts := make([]string, len(fields))
		for i, f := range fields {
			fv, found := s.Field(f.Name)
			if !found {
				return "", errs.New(errs.StructuralError, "json: struct value missing field %q", f.Name)
			}
			keyRaw, kerr := jsonLeaf(f.Name)
			if kerr != nil {
				return "", kerr
			}
			valRaw, verr := encodeValue(fv, f.Type)
			if verr != nil {
				return "", verr
			}
			parts[i] = keyRaw + ":" + valRaw
		}
		return "{" + strings.Join(parts, ",") + "}", nil

	case types.KindVariant:
		variant, ok := v.(*values.Variant)
		if !ok {
			return "", errs.New(errs.TypeMismatch, "json: expected Variant, got %T", v)
		}
		caseType, found := t.Case(variant.Case())
		if !found {
			return "", errs.New(errs.StructuralError, "json: unknown variant case %q", variant.Case())
		}
		keyRaw, kerr := jsonLeaf(variant.Case())
		if kerr != nil {
			return "", kerr
		}
		var valRaw string
		if caseType.Kind() == types.KindNull {
			valRaw = "null"
		} else {
			var verr *errs.Error
			valRaw, verr = encodeValue(variant.Payload(), caseType)
			if verr != nil {
				return "", verr
			}
		}
		return "{" + keyRaw + ":" + valRaw + "}", nil

	default:
		return "", errs.New(errs.UnsupportedValue, "json: %s values are not JSON-serializable", t.Kind())
	}
}

func sequenceOf(v values.Value) ([]values.Value, *errs.Error) {
	switch x := v.(type) {
	case *values.Array:
		return x.Items(), nil
	case *values.Vector:
		return x.Items(), nil
	case *values.Set:
		return x.Items(), nil
	default:
		return nil, errs.New(errs.TypeMismatch, "json: expected a sequence value, got %T", v)
	}
}

func decodeValue(r gjson.Result, t *types.Type) (values.Value, *errs.Error) {
	t = resolveType(t)

	switch t.Kind() {
	case types.KindNull:
		if r.Type != gjson.Null {
			return nil, errs.New(errs.TypeMismatch, "json: expected null, got %s", r.Raw)
		}
		return values.Null, nil

	case types.KindBoolean:
		if r.Type != gjson.True && r.Type != gjson.False {
			return nil, errs.New(errs.TypeMismatch, "json: expected Boolean, got %s", r.Raw)
		}
		return values.Bool(r.Bool()), nil

	case types.KindInteger:
		if r.Type != gjson.Number {
			return nil, errs.New(errs.TypeMismatch, "json: expected Integer, got %s", r.Raw)
		}
		if strings.ContainsAny(r.Raw, ".eE") {
			return nil, errs.New(errs.TypeMismatch, "json: %s is not an integral number", r.Raw)
		}
		i, err := strconv.ParseInt(r.Raw, 10, 64)
		if err != nil {
			return nil, errs.New(errs.FormatError, "json: malformed Integer %q: %v", r.Raw, err)
		}
		return values.Int(i), nil

	case types.KindFloat:
		if r.Type == gjson.String {
			switch r.Str {
			case posInfLiteral:
				return values.Float(math.Inf(1)), nil
			case negInfLiteral:
				return values.Float(math.Inf(-1)), nil
			case nanLiteral:
				return values.Float(math.NaN()), nil
			}
			return nil, errs.New(errs.TypeMismatch, "json: unrecognized Float string %q", r.Str)
		}
		if r.Type != gjson.Number {
			return nil, errs.New(errs.TypeMismatch, "json: expected Float, got %s", r.Raw)
		}
		return values.Float(r.Num), nil

	case types.KindString:
		if r.Type != gjson.String {
			return nil, errs.New(errs.TypeMismatch, "json: expected String, got %s", r.Raw)
		}
		return values.Str(r.Str), nil

	case types.KindDateTime:
		if r.Type != gjson.String {
			return nil, errs.New(errs.TypeMismatch, "json: expected DateTime string, got %s", r.Raw)
		}
		parsed, err := time.Parse(time.RFC3339Nano, r.Str)
		if err != nil {
			return nil, errs.New(errs.FormatError, "json: malformed DateTime %q: %v", r.Str, err)
		}
		return values.NewDateTime(parsed), nil

	case types.KindBlob:
		if r.Type != gjson.String {
			return nil, errs.New(errs.TypeMismatch, "json: expected Blob string, got %s", r.Raw)
		}
		decoded, err := base64.StdEncoding.DecodeString(r.Str)
		if err != nil {
			return nil, errs.New(errs.FormatError, "json: malformed base64 Blob: %v", err)
		}
		return values.Blob(decoded), nil

	case types.KindArray, types.KindVector, types.KindSet:
		if !r.IsArray() {
			return nil, errs.New(errs.TypeMismatch, "json: expected array, got %s", r.Raw)
		}
		elemType := t.Elem()
		elems := r.Array()
		items := make([]values.Value, 0, len(elems))
		for _, e := range elems {
			item, err := decodeValue(e, elemType)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		switch t.Kind() {
		case types.KindVector:
			return values.NewVector(elemType, items...), nil
		case types.KindSet:
			return values.NewSet(elemType, items...), nil
		default:
			return values.NewArray(elemType, items...), nil
		}

	case types.KindMatrix:
		if !r.IsArray() {
			return nil, errs.New(errs.TypeMismatch, "json: expected array of rows, got %s", r.Raw)
		}
		elemType := t.Elem()
		rowResults := r.Array()
		rows := len(rowResults)
		cols := 0
		if rows > 0 {
			if !rowResults[0].IsArray() {
				return nil, errs.New(errs.TypeMismatch, "json: expected Matrix row to be an array, got %s", rowResults[0].Raw)
			}
			cols = len(rowResults[0].Array())
		}
		data := make([]values.Value, 0, rows*cols)
		for _, rowResult := range rowResults {
			if !rowResult.IsArray() {
				return nil, errs.New(errs.TypeMismatch, "json: expected Matrix row to be an array, got %s", rowResult.Raw)
			}
			cellResults := rowResult.Array()
			if len(cellResults) != cols {
				return nil, errs.New(errs.FormatError, "json: ragged Matrix row (want %d columns, got %d)", cols, len(cellResults))
			}
			for _, cellResult := range cellResults {
				cell, err := decodeValue(cellResult, elemType)
				if err != nil {
					return nil, err
				}
				data = append(data, cell)
			}
		}
		return values.NewMatrix(elemType, rows, cols, data), nil

	case types.KindDict:
		keyType, valType := t.KeyValue()
		d := values.NewDict(keyType, valType)
		if keyType.Kind() == types.KindString {
			if !r.IsObject() {
				return nil, errs.New(errs.TypeMismatch, "json: expected object, got %s", r.Raw)
			}
			var decodeErr *errs.Error
			r.ForEach(func(key, val gjson.Result) bool {
				v, err := decodeValue(val, valType)
				if err != nil {
					decodeErr = err
					return false
				}
				d.Set(values.Str(key.Str), v)
				return true
			})
			if decodeErr != nil {
				return nil, decodeErr
			}
			return d, nil
		}
		if !r.IsArray() {
			return nil, errs.New(errs.TypeMismatch, "json: expected array of [key,value] pairs, got %s", r.Raw)
		}
		for _, pairResult := range r.Array() {
			pair := pairResult.Array()
			if len(pair) != 2 {
				return nil, errs.New(errs.FormatError, "json: expected a 2-element [key,value] pair, got %s", pairResult.Raw)
			}
			key, err := decodeValue(pair[0], keyType)
			if err != nil {
				return nil, err
			}
			val, err := decodeValue(pair[1], valType)
			if err != nil {
				return nil, err
			}
			d.Set(key, val)
		}
		return d, nil

	case types.KindStruct:
		if !r.IsObject() {
			return nil, errs.New(errs.TypeMismatch, "json: expected object, got %s", r.Raw)
		}
		fieldMap := r.Map()
		fields := t.Fields()
		names := make([]string, len(fields))
		vals := make([]values.Value, len(fields))
		for i, f := range fields {
			raw, ok := fieldMap[f.Name]
			if !ok {
				return nil, errs.New(errs.StructuralError, "json: object missing field %q", f.Name)
			}
			fv, err := decodeValue(raw, f.Type)
			if err != nil {
				return nil, err
			}
			names[i] = f.Name
			vals[i] = fv
		}
		return values.NewStruct(t, names, vals), nil

	case types.KindVariant:
		if !r.IsObject() {
			return nil, errs.New(errs.TypeMismatch, "json: expected single-key object, got %s", r.Raw)
		}
		fieldMap := r.Map()
		if len(fieldMap) != 1 {
			return nil, errs.New(errs.FormatError, "json: variant object must have exactly one key, got %d", len(fieldMap))
		}
		var caseName string
		var payloadRaw gjson.Result
		for k, v := range fieldMap {
			caseName, payloadRaw = k, v
		}
		caseType, found := t.Case(caseName)
		if !found {
			return nil, errs.New(errs.StructuralError, "json: unknown variant case %q", caseName)
		}
		if caseType.Kind() == types.KindNull {
			return values.NewVariant(t, caseName, nil), nil
		}
		payload, err := decodeValue(payloadRaw, caseType)
		if err != nil {
			return nil, err
		}
		return values.NewVariant(t, caseName, payload), nil

	default:
		return nil, errs.New(errs.UnsupportedValue, "json: %s values are not JSON-serializable", t.Kind())
	}
}

