package values

import (
	"strings"

	"github.com/elaraai/east-go/internal/types"
)

// Struct is a product value: a fixed set of named fields, each holding a
// value of the corresponding field's declared type (§3.1, §3.2).
type Struct struct {
	structType *types.Type
	order      []string
	fields     map[string]Value
	refCount   int32
}

// NewStruct returns a Struct value of structType with the given field
// values, retaining each. names and values must correspond positionally
// and names must match structType's declared fields; callers (the
// compiler/evaluator) are responsible for that invariant.
func NewStruct(structType *types.Type, names []string, vals []Value) *Struct {
	s := &Struct{
		structType: structType.Retain(),
		order:      append([]string(nil), names...),
		fields:     make(map[string]Value, len(names)),
		refCount:   1,
	}
	for i, name := range names {
		s.fields[name] = vals[i].Retain()
	}
	return s
}

func (s *Struct) Type() *types.Type { return s.structType.Retain() }

func (s *Struct) String() string {
	var b strings.Builder
	b.WriteString("{ ")
	for i, name := range s.order {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(s.fields[name].String())
	}
	b.WriteString(" }")
	return b.String()
}

func (s *Struct) Retain() Value { s.refCount++; return s }

func (s *Struct) Release() {
	s.refCount--
	if s.refCount > 0 {
		return
	}
	for _, name := range s.order {
		s.fields[name].Release()
	}
	s.structType.Release()
}

// Field returns the named field's value. The second result is false if no
// such field exists, which the evaluator surfaces as a structural error
// (§4.2) rather than a panic.
func (s *Struct) Field(name string) (Value, bool) {
	v, ok := s.fields[name]
	return v, ok
}

// FieldNames returns the struct's field names in declaration order.
func (s *Struct) FieldNames() []string { return s.order }

// WithField returns a new Struct identical to s except that field name now
// holds v, leaving s unmodified (structs are updated functionally, per
// §4.2's "an update produces a new Struct value").
func (s *Struct) WithField(name string, v Value) *Struct {
	out := &Struct{
		structType: s.structType.Retain(),
		order:      append([]string(nil), s.order...),
		fields:     make(map[string]Value, len(s.order)),
		refCount:   1,
	}
	for _, n := range s.order {
		if n == name {
			out.fields[n] = v.Retain()
		} else {
			out.fields[n] = s.fields[n].Retain()
		}
	}
	return out
}

// Variant is a sum value: a single active case, selected by name, holding
// a payload of that case's declared type (or no payload for a unit case).
type Variant struct {
	variantType *types.Type
	caseName    string
	payload     Value // nil for a payload-less case
	refCount    int32
}

// NewVariant returns a Variant value of variantType in case caseName,
// holding payload (retained). payload may be nil.
func NewVariant(variantType *types.Type, caseName string, payload Value) *Variant {
	v := &Variant{variantType: variantType.Retain(), caseName: caseName, refCount: 1}
	if payload != nil {
		v.payload = payload.Retain()
	}
	return v
}

func (v *Variant) Type() *types.Type { return v.variantType.Retain() }

func (v *Variant) String() string {
	if v.payload == nil {
		return v.caseName
	}
	return v.caseName + "(" + v.payload.String() + ")"
}

func (v *Variant) Retain() Value { v.refCount++; return v }

func (v *Variant) Release() {
	v.refCount--
	if v.refCount > 0 {
		return
	}
	if v.payload != nil {
		v.payload.Release()
	}
	v.variantType.Release()
}

// Case returns the active case's name.
func (v *Variant) Case() string { return v.caseName }

// Payload returns the active case's payload, or nil if it carries none.
func (v *Variant) Payload() Value { return v.payload }
