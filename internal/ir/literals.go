package ir

import (
	"fmt"
	"strings"

	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/types"
)

// NullLit, BoolLit, IntLit, FloatLit, StrLit, BlobLit are literal nodes
// for each primitive type (§3.3).
type NullLit struct{ base }
type BoolLit struct {
	base
	Value bool
}
type IntLit struct {
	base
	Value int64
}
type FloatLit struct {
	base
	Value float64
}
type StrLit struct {
	base
	Value string
}
type BlobLit struct {
	base
	Value []byte
}

func NewNullLit(loc errs.Location) *NullLit { return &NullLit{base{Loc: loc, Typ: types.Null}} }
func NewBoolLit(loc errs.Location, v bool) *BoolLit {
	return &BoolLit{base{Loc: loc, Typ: types.Boolean}, v}
}
func NewIntLit(loc errs.Location, v int64) *IntLit {
	return &IntLit{base{Loc: loc, Typ: types.Integer}, v}
}
func NewFloatLit(loc errs.Location, v float64) *FloatLit {
	return &FloatLit{base{Loc: loc, Typ: types.Float}, v}
}
func NewStrLit(loc errs.Location, v string) *StrLit {
	return &StrLit{base{Loc: loc, Typ: types.String}, v}
}
func NewBlobLit(loc errs.Location, v []byte) *BlobLit {
	return &BlobLit{base{Loc: loc, Typ: types.Blob}, append([]byte(nil), v...)}
}

func (n *NullLit) String() string  { return "null" }
func (n *BoolLit) String() string  { return fmt.Sprintf("%v", n.Value) }
func (n *IntLit) String() string   { return fmt.Sprintf("%d", n.Value) }
func (n *FloatLit) String() string { return fmt.Sprintf("%g", n.Value) }
func (n *StrLit) String() string   { return fmt.Sprintf("%q", n.Value) }
func (n *BlobLit) String() string  { return fmt.Sprintf("blob(%d bytes)", len(n.Value)) }

// ArrayLit, SetLit, DictEntry/DictLit, StructField/StructLit, VariantLit
// are the per-constructor container literal nodes (§3.3).
type ArrayLit struct {
	base
	Elems []Expr
}

func NewArrayLit(loc errs.Location, elemType *types.Type, elems ...Expr) *ArrayLit {
	return &ArrayLit{base{Loc: loc, Typ: types.NewArray(elemType)}, elems}
}

func (n *ArrayLit) String() string { return joinNodes("[", n.Elems, "]") }

type SetLit struct {
	base
	Elems []Expr
}

func NewSetLit(loc errs.Location, elemType *types.Type, elems ...Expr) *SetLit {
	return &SetLit{base{Loc: loc, Typ: types.NewSet(elemType)}, elems}
}

func (n *SetLit) String() string { return joinNodes("{", n.Elems, "}") }

// DictEntry is one key/value pair within a DictLit.
type DictEntry struct {
	Key   Expr
	Value Expr
}

type DictLit struct {
	base
	Entries []DictEntry
}

func NewDictLit(loc errs.Location, keyType, valType *types.Type, entries ...DictEntry) *DictLit {
	return &DictLit{base{Loc: loc, Typ: types.NewDict(keyType, valType)}, entries}
}

func (n *DictLit) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, e := range n.Entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.Key.String())
		b.WriteString(": ")
		b.WriteString(e.Value.String())
	}
	b.WriteString("}")
	return b.String()
}

// StructFieldInit is one field initializer within a StructLit.
type StructFieldInit struct {
	Name  string
	Value Expr
}

type StructLit struct {
	base
	Fields []StructFieldInit
}

func NewStructLit(loc errs.Location, structType *types.Type, fields ...StructFieldInit) *StructLit {
	return &StructLit{base{Loc: loc, Typ: structType}, fields}
}

func (n *StructLit) String() string {
	var b strings.Builder
	b.WriteString("Struct { ")
	for i, f := range n.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(f.Value.String())
	}
	b.WriteString(" }")
	return b.String()
}

// VariantLit constructs a value of one case of a Variant type; Payload
// is nil for a Null-typed (unit) case.
type VariantLit struct {
	base
	CaseName string
	Payload  Expr
}

func NewVariantLit(loc errs.Location, variantType *types.Type, caseName string, payload Expr) *VariantLit {
	return &VariantLit{base{Loc: loc, Typ: variantType}, caseName, payload}
}

func (n *VariantLit) String() string {
	if n.Payload == nil {
		return n.CaseName
	}
	return n.CaseName + "(" + n.Payload.String() + ")"
}

func joinNodes(open string, elems []Expr, closing string) string {
	var b strings.Builder
	b.WriteString(open)
	for i, e := range elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteString(closing)
	return b.String()
}
