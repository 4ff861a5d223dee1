// Package beast2 implements East's self-describing binary serialization
// format (§4.4 "beast2"): a header carrying the value's own Type followed
// by beast's schema-less value encoding, so a decoder can check the
// payload was written against the expected shape before trusting it.
//
// The header format mirrors the teacher's bytecode file header
// (internal/bytecode/serializer.go): a 4-byte magic number followed by a
// three-part version triple, with major-version-exact / minor-version-
// backward compatibility exactly like SerializerVersion.IsCompatible.
package beast2

import (
	"encoding/binary"
	"fmt"

	"github.com/elaraai/east-go/internal/codec/beast"
	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/types"
	"github.com/elaraai/east-go/internal/values"
)

const (
	// MagicNumber identifies beast2-framed East values.
	MagicNumber = "EAB\x00"

	VersionMajor uint8 = 1
	VersionMinor uint8 = 0
	VersionPatch uint8 = 0
)

// Version is a beast2 format version triple.
type Version struct {
	Major, Minor, Patch uint8
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// IsCompatible reports whether a decoder built for v can read data written
// at other's version: the major version must match exactly, and other's
// minor version must not be newer.
func (v Version) IsCompatible(other Version) bool {
	if v.Major != other.Major {
		return false
	}
	return other.Minor <= v.Minor
}

// CurrentVersion is the beast2 version this package writes.
func CurrentVersion() Version {
	return Version{Major: VersionMajor, Minor: VersionMinor, Patch: VersionPatch}
}

// Encode writes v (of type t) as `magic | version | typeSection |
// valueSection`.
func Encode(v values.Value, t *types.Type) ([]byte, *errs.Error) {
	buf := make([]byte, 0, 64)
	buf = append(buf, MagicNumber...)
	buf = append(buf, VersionMajor, VersionMinor, VersionPatch)
	buf = appendType(buf, t)
	valueBytes, err := beast.Encode(v, t)
	if err != nil {
		return nil, err
	}
	buf = append(buf, valueBytes...)
	return buf, nil
}

// Decode parses data's header, checks the embedded Type against
// expectedType, and decodes the value section using beast's schema-less
// decoder. Returns a typeMismatch error if the embedded type does not
// structurally match expectedType (§3.1's structural equality, via
// printer.go's canonical String()).
func Decode(data []byte, expectedType *types.Type) (values.Value, *errs.Error) {
	headerType, rest, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	if headerType.String() != expectedType.String() {
		return nil, errs.New(errs.TypeMismatch, "beast2: encoded type %s does not match expected type %s", headerType, expectedType)
	}
	return beast.Decode(rest, expectedType)
}

// DecodeHeader parses data's magic number, version, and type section,
// returning the embedded Type and the remaining (value-section) bytes.
// Callers that already know the expected Type should prefer Decode;
// DecodeHeader is for tooling that wants to inspect a beast2 blob's type
// without committing to decoding its value (e.g. a `east inspect` CLI
// command).
func DecodeHeader(data []byte) (*types.Type, []byte, *errs.Error) {
	if len(data) < len(MagicNumber)+3 {
		return nil, nil, errs.New(errs.FormatError, "beast2: unexpected end of input reading header")
	}
	if string(data[:len(MagicNumber)]) != MagicNumber {
		return nil, nil, errs.New(errs.FormatError, "beast2: bad magic number")
	}
	rest := data[len(MagicNumber):]
	fileVersion := Version{Major: rest[0], Minor: rest[1], Patch: rest[2]}
	rest = rest[3:]
	if !CurrentVersion().IsCompatible(fileVersion) {
		return nil, nil, errs.New(errs.FormatError, "beast2: incompatible format version %s (reader is %s)", fileVersion, CurrentVersion())
	}
	t, rest, err := readType(rest)
	if err != nil {
		return nil, nil, err
	}
	return t, rest, nil
}

// appendType recursively encodes t's structure (§3.1): a tag byte per
// Kind, followed by whatever sub-Types and names that Kind carries.
// Recursive types are encoded via a back-reference table: the first time a
// wrapper is seen its slot index is recorded, and a later encounter (a
// back-edge) is written as a reference to that index instead of
// recursing again.
func appendType(buf []byte, t *types.Type) []byte {
	return appendTypeWithTable(buf, t, map[*types.Type]int{})
}

func appendTypeWithTable(buf []byte, t *types.Type, seen map[*types.Type]int) []byte {
	if t.Kind() == types.KindRecursive {
		if idx, ok := seen[t]; ok {
			buf = append(buf, byte(recursiveBackref))
			return binary.AppendVarint(buf, int64(idx))
		}
		seen[t] = len(seen)
		buf = append(buf, byte(types.KindRecursive))
		return appendTypeWithTable(buf, t.Inner(), seen)
	}

	buf = append(buf, byte(t.Kind()))
	switch t.Kind() {
	case types.KindArray, types.KindSet, types.KindVector, types.KindMatrix, types.KindRef:
		return appendTypeWithTable(buf, t.Elem(), seen)

	case types.KindDict:
		key, val := t.KeyValue()
		buf = appendTypeWithTable(buf, key, seen)
		return appendTypeWithTable(buf, val, seen)

	case types.KindStruct:
		fields := t.Fields()
		buf = binary.AppendVarint(buf, int64(len(fields)))
		for _, f := range fields {
			buf = appendString(buf, f.Name)
			buf = appendTypeWithTable(buf, f.Type, seen)
		}
		return buf

	case types.KindVariant:
		cases := t.Cases()
		buf = binary.AppendVarint(buf, int64(len(cases)))
		for _, c := range cases {
			buf = appendString(buf, c.Name)
			buf = appendTypeWithTable(buf, c.Type, seen)
		}
		return buf

	case types.KindFunction, types.KindAsyncFunction:
		params := t.Params()
		buf = binary.AppendVarint(buf, int64(len(params)))
		for _, p := range params {
			buf = appendTypeWithTable(buf, p, seen)
		}
		return appendTypeWithTable(buf, t.Result(), seen)

	default:
		// Primitive kind: the tag byte alone fully determines the type.
		return buf
	}
}

// recursiveBackref is a synthetic tag (outside types.Kind's own range)
// marking a back-edge to an already-seen Recursive wrapper rather than a
// fresh Recursive node.
const recursiveBackref = types.Kind(0xff)

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendVarint(buf, int64(len(s)))
	return append(buf, s...)
}

func readType(data []byte) (*types.Type, []byte, *errs.Error) {
	return readTypeWithTable(data, map[int]*types.Type{})
}

func readTypeWithTable(data []byte, table map[int]*types.Type) (*types.Type, []byte, *errs.Error) {
	if len(data) == 0 {
		return nil, nil, errs.New(errs.FormatError, "beast2: unexpected end of input reading type")
	}
	tag, rest := types.Kind(data[0]), data[1:]

	if tag == recursiveBackref {
		idx, n := binary.Varint(rest)
		if n <= 0 {
			return nil, nil, errs.New(errs.FormatError, "beast2: malformed recursive back-reference")
		}
		t, ok := table[int(idx)]
		if !ok {
			return nil, nil, errs.New(errs.FormatError, "beast2: recursive back-reference %d has no matching wrapper", idx)
		}
		return t, rest[n:], nil
	}

	switch tag {
	case types.KindNull:
		return types.Null, rest, nil
	case types.KindBoolean:
		return types.Boolean, rest, nil
	case types.KindInteger:
		return types.Integer, rest, nil
	case types.KindFloat:
		return types.Float, rest, nil
	case types.KindString:
		return types.String, rest, nil
	case types.KindDateTime:
		return types.DateTime, rest, nil
	case types.KindBlob:
		return types.Blob, rest, nil

	case types.KindArray, types.KindSet, types.KindVector, types.KindMatrix, types.KindRef:
		elem, after, err := readTypeWithTable(rest, table)
		if err != nil {
			return nil, nil, err
		}
		switch tag {
		case types.KindArray:
			return types.NewArray(elem), after, nil
		case types.KindSet:
			return types.NewSet(elem), after, nil
		case types.KindVector:
			return types.NewVector(elem), after, nil
		case types.KindMatrix:
			return types.NewMatrix(elem), after, nil
		default:
			return types.NewRef(elem), after, nil
		}

	case types.KindDict:
		key, after, err := readTypeWithTable(rest, table)
		if err != nil {
			return nil, nil, err
		}
		val, after2, err := readTypeWithTable(after, table)
		if err != nil {
			return nil, nil, err
		}
		return types.NewDict(key, val), after2, nil

	case types.KindStruct:
		count, n := binary.Varint(rest)
		if n <= 0 || count < 0 {
			return nil, nil, errs.New(errs.FormatError, "beast2: malformed struct field count")
		}
		rest = rest[n:]
		fields := make([]types.Field, count)
		for i := int64(0); i < count; i++ {
			var name string
			var err *errs.Error
			name, rest, err = readStringType(rest)
			if err != nil {
				return nil, nil, err
			}
			var fieldType *types.Type
			fieldType, rest, err = readTypeWithTable(rest, table)
			if err != nil {
				return nil, nil, err
			}
			fields[i] = types.Field{Name: name, Type: fieldType}
		}
		return types.NewStruct(fields...), rest, nil

	case types.KindVariant:
		count, n := binary.Varint(rest)
		if n <= 0 || count < 0 {
			return nil, nil, errs.New(errs.FormatError, "beast2: malformed variant case count")
		}
		rest = rest[n:]
		cases := make([]types.Case, count)
		for i := int64(0); i < count; i++ {
			var name string
			var err *errs.Error
			name, rest, err = readStringType(rest)
			if err != nil {
				return nil, nil, err
			}
			var caseType *types.Type
			caseType, rest, err = readTypeWithTable(rest, table)
			if err != nil {
				return nil, nil, err
			}
			cases[i] = types.Case{Name: name, Type: caseType}
		}
		return types.NewVariant(cases...), rest, nil

	case types.KindFunction, types.KindAsyncFunction:
		count, n := binary.Varint(rest)
		if n <= 0 || count < 0 {
			return nil, nil, errs.New(errs.FormatError, "beast2: malformed function parameter count")
		}
		rest = rest[n:]
		params := make([]*types.Type, count)
		for i := int64(0); i < count; i++ {
			var err *errs.Error
			params[i], rest, err = readTypeWithTable(rest, table)
			if err != nil {
				return nil, nil, err
			}
		}
		result, after, err := readTypeWithTable(rest, table)
		if err != nil {
			return nil, nil, err
		}
		if tag == types.KindFunction {
			return types.NewFunction(result, params...), after, nil
		}
		return types.NewAsyncFunction(result, params...), after, nil

	case types.KindRecursive:
		wrapper := types.NewRecursive()
		table[len(table)] = wrapper
		inner, after, err := readTypeWithTable(rest, table)
		if err != nil {
			return nil, nil, err
		}
		return wrapper.Bind(inner), after, nil

	default:
		return nil, nil, errs.New(errs.FormatError, "beast2: unknown type tag %d", tag)
	}
}

func readStringType(data []byte) (string, []byte, *errs.Error) {
	n, n2 := binary.Varint(data)
	if n2 <= 0 || n < 0 {
		return "", nil, errs.New(errs.FormatError, "beast2: malformed type name length")
	}
	data = data[n2:]
	if int64(len(data)) < n {
		return "", nil, errs.New(errs.FormatError, "beast2: unexpected end of input reading type name")
	}
	return string(data[:n]), data[n:], nil
}
