// Package types implements East's structural type system: primitive, parametric,
// product, sum, functional, and recursive types under reference-counted
// lifetimes.
//
// Every Type is identified structurally, never nominally. Primitive types are
// process-wide singletons; every other kind is heap-allocated and
// reference-counted via Retain/Release.
package types

import "fmt"

// Kind identifies which of the structural variants a Type is.
type Kind uint8

const (
	KindNever Kind = iota
	KindNull
	KindBoolean
	KindInteger
	KindFloat
	KindString
	KindDateTime
	KindBlob
	KindArray
	KindSet
	KindVector
	KindMatrix
	KindRef
	KindDict
	KindStruct
	KindVariant
	KindFunction
	KindAsyncFunction
	KindRecursive
)

func (k Kind) String() string {
	switch k {
	case KindNever:
		return "Never"
	case KindNull:
		return "Null"
	case KindBoolean:
		return "Boolean"
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindDateTime:
		return "DateTime"
	case KindBlob:
		return "Blob"
	case KindArray:
		return "Array"
	case KindSet:
		return "Set"
	case KindVector:
		return "Vector"
	case KindMatrix:
		return "Matrix"
	case KindRef:
		return "Ref"
	case KindDict:
		return "Dict"
	case KindStruct:
		return "Struct"
	case KindVariant:
		return "Variant"
	case KindFunction:
		return "Function"
	case KindAsyncFunction:
		return "AsyncFunction"
	case KindRecursive:
		return "Recursive"
	default:
		return "Unknown"
	}
}

// Field is one named member of a Struct type, in declaration order.
type Field struct {
	Name string
	Type *Type
}

// Case is one named alternative of a Variant type. Case lists are kept
// canonically sorted by Name once a Variant is constructed.
type Case struct {
	Name string
	Type *Type
}

// Type is a node in a structural type tree. Non-primitive Types are
// reference-counted: Retain on construction/sharing, Release on disuse.
// See refcount.go for the Retain/Release/Bind machinery and
// Recursive's cycle-breaking destruction.
type Type struct {
	kind     Kind
	refCount int32

	elem   *Type   // Array, Set, Vector, Matrix, Ref
	key    *Type   // Dict
	value  *Type   // Dict
	fields []Field // Struct
	cases  []Case  // Variant, sorted by Name
	params []*Type // Function, AsyncFunction
	result *Type   // Function, AsyncFunction
	inner  *Type   // Recursive (may contain back-edges to this wrapper)
}

func isPrimitiveKind(k Kind) bool {
	switch k {
	case KindNever, KindNull, KindBoolean, KindInteger, KindFloat, KindString, KindDateTime, KindBlob:
		return true
	default:
		return false
	}
}

// Kind reports which structural variant this Type is.
func (t *Type) Kind() Kind {
	if t == nil {
		return KindNever
	}
	return t.kind
}

// Primitive singletons (invariant 1 of §3.1): retain/release on these is a
// no-op, so they never need construction helpers.
var (
	Never    = &Type{kind: KindNever}
	Null     = &Type{kind: KindNull}
	Boolean  = &Type{kind: KindBoolean}
	Integer  = &Type{kind: KindInteger}
	Float    = &Type{kind: KindFloat}
	String   = &Type{kind: KindString}
	DateTime = &Type{kind: KindDateTime}
	Blob     = &Type{kind: KindBlob}
)

// NewArray returns an Array<Elem> type, retaining elem.
func NewArray(elem *Type) *Type { return &Type{kind: KindArray, elem: elem.Retain(), refCount: 1} }

// NewSet returns a Set<Elem> type, retaining elem.
func NewSet(elem *Type) *Type { return &Type{kind: KindSet, elem: elem.Retain(), refCount: 1} }

// NewVector returns a Vector<Elem> type, retaining elem. Semantically
// identical to Array but tagged for numeric intent (§3.1).
func NewVector(elem *Type) *Type { return &Type{kind: KindVector, elem: elem.Retain(), refCount: 1} }

// NewMatrix returns a Matrix<Elem> type, retaining elem.
func NewMatrix(elem *Type) *Type { return &Type{kind: KindMatrix, elem: elem.Retain(), refCount: 1} }

// NewRef returns a Ref<Elem> type, retaining elem.
func NewRef(elem *Type) *Type { return &Type{kind: KindRef, elem: elem.Retain(), refCount: 1} }

// NewDict returns a Dict<Key,Value> type, retaining both.
func NewDict(key, value *Type) *Type {
	return &Type{kind: KindDict, key: key.Retain(), value: value.Retain(), refCount: 1}
}

// NewStruct returns a Struct type over fields, in declaration order. Field
// names must be unique; NewStruct retains every field's Type. Panics on a
// duplicate field name, mirroring the well-formedness the IR loader must
// already have enforced before reaching the type layer.
func NewStruct(fields ...Field) *Type {
	seen := make(map[string]bool, len(fields))
	out := make([]Field, len(fields))
	for i, f := range fields {
		if seen[f.Name] {
			panic(fmt.Sprintf("types: duplicate struct field %q", f.Name))
		}
		seen[f.Name] = true
		out[i] = Field{Name: f.Name, Type: f.Type.Retain()}
	}
	return &Type{kind: KindStruct, fields: out, refCount: 1}
}

// NewVariant returns a Variant type over cases. Case names must be unique;
// cases are sorted canonically by name (invariant 2 of §3.1) regardless of
// the order passed in. NewVariant retains every case's Type.
func NewVariant(cases ...Case) *Type {
	seen := make(map[string]bool, len(cases))
	out := make([]Case, len(cases))
	for i, c := range cases {
		if seen[c.Name] {
			panic(fmt.Sprintf("types: duplicate variant case %q", c.Name))
		}
		seen[c.Name] = true
		out[i] = Case{Name: c.Name, Type: c.Type.Retain()}
	}
	sortCases(out)
	return &Type{kind: KindVariant, cases: out, refCount: 1}
}

// NewFunction returns a Function(params...) -> result type, retaining every
// param and the result.
func NewFunction(result *Type, params ...*Type) *Type {
	return newCallable(KindFunction, result, params)
}

// NewAsyncFunction returns an AsyncFunction(params...) -> result type,
// retaining every param and the result.
func NewAsyncFunction(result *Type, params ...*Type) *Type {
	return newCallable(KindAsyncFunction, result, params)
}

func newCallable(kind Kind, result *Type, params []*Type) *Type {
	out := make([]*Type, len(params))
	for i, p := range params {
		out[i] = p.Retain()
	}
	return &Type{kind: kind, params: out, result: result.Retain(), refCount: 1}
}

// NewRecursive returns an unbound Recursive wrapper. Callers build the inner
// subtree (which may reference the wrapper itself to form back-edges) and
// then call Bind to attach it and run cycle finalization; see refcount.go.
func NewRecursive() *Type {
	return &Type{kind: KindRecursive, refCount: 1}
}

// Elem returns the element type of an Array, Set, Vector, Matrix, or Ref
// type, or nil for any other kind.
func (t *Type) Elem() *Type {
	if t == nil {
		return nil
	}
	switch t.kind {
	case KindArray, KindSet, KindVector, KindMatrix, KindRef:
		return t.elem
	default:
		return nil
	}
}

// KeyValue returns the key and value types of a Dict type, or (nil, nil)
// for any other kind.
func (t *Type) KeyValue() (*Type, *Type) {
	if t == nil || t.kind != KindDict {
		return nil, nil
	}
	return t.key, t.value
}

// Fields returns the declared fields of a Struct type, in declaration
// order, or nil for any other kind. The returned slice must not be mutated.
func (t *Type) Fields() []Field {
	if t == nil || t.kind != KindStruct {
		return nil
	}
	return t.fields
}

// Field returns the named field of a Struct type and whether it exists.
func (t *Type) Field(name string) (*Type, bool) {
	for _, f := range t.Fields() {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// Cases returns the canonically sorted cases of a Variant type, or nil for
// any other kind. The returned slice must not be mutated.
func (t *Type) Cases() []Case {
	if t == nil || t.kind != KindVariant {
		return nil
	}
	return t.cases
}

// Case returns the named case of a Variant type and whether it exists.
func (t *Type) Case(name string) (*Type, bool) {
	for _, c := range t.Cases() {
		if c.Name == name {
			return c.Type, true
		}
	}
	return nil, false
}

// Params returns the parameter types of a Function or AsyncFunction type,
// or nil for any other kind. The returned slice must not be mutated.
func (t *Type) Params() []*Type {
	if t == nil || (t.kind != KindFunction && t.kind != KindAsyncFunction) {
		return nil
	}
	return t.params
}

// Result returns the return type of a Function or AsyncFunction type, or
// nil for any other kind.
func (t *Type) Result() *Type {
	if t == nil || (t.kind != KindFunction && t.kind != KindAsyncFunction) {
		return nil
	}
	return t.result
}

// Inner returns the bound inner subtree of a Recursive type, or nil if it
// has not yet been Bind-ed, or if t is not a Recursive type.
func (t *Type) Inner() *Type {
	if t == nil || t.kind != KindRecursive {
		return nil
	}
	return t.inner
}

func sortCases(cases []Case) {
	// Insertion sort: case lists are small and this keeps the dependency
	// surface of this file to the stdlib only.
	for i := 1; i < len(cases); i++ {
		for j := i; j > 0 && cases[j].Name < cases[j-1].Name; j-- {
			cases[j], cases[j-1] = cases[j-1], cases[j]
		}
	}
}
