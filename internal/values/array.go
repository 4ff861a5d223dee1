package values

import (
	"strings"

	"github.com/elaraai/east-go/internal/types"
)

// Array is a finite ordered sequence of values of a single element type.
// It owns its elements: Release recursively releases every item.
type Array struct {
	elemType *types.Type
	items    []Value
	refCount int32
}

// NewArray returns an Array<elemType> containing a copy of items, retaining
// each item and the element type.
func NewArray(elemType *types.Type, items ...Value) *Array {
	a := &Array{elemType: elemType.Retain(), items: append([]Value(nil), items...), refCount: 1}
	for _, v := range a.items {
		v.Retain()
	}
	return a
}

func (a *Array) Type() *types.Type { return types.NewArray(a.elemType) }

func (a *Array) String() string {
	var b strings.Builder
	b.WriteString("[")
	for i, v := range a.items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.String())
	}
	b.WriteString("]")
	return b.String()
}

func (a *Array) Retain() Value { a.refCount++; return a }

func (a *Array) Release() {
	a.refCount--
	if a.refCount > 0 {
		return
	}
	for _, v := range a.items {
		v.Release()
	}
	a.elemType.Release()
}

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.items) }

// Get returns the element at index, or (nil, false) if index is out of range.
func (a *Array) Get(index int) (Value, bool) {
	if index < 0 || index >= len(a.items) {
		return nil, false
	}
	return a.items[index], true
}

// Append appends v (retained) to the array, growing it by one element.
func (a *Array) Append(v Value) {
	a.items = append(a.items, v.Retain())
}

// Items returns the backing slice; callers must treat it as read-only.
func (a *Array) Items() []Value { return a.items }

// ElemType returns the array's declared element type.
func (a *Array) ElemType() *types.Type { return a.elemType }

// Vector is semantically identical to Array but tagged for numeric intent
// (§3.1); it reuses Array's storage and owns its elements the same way.
type Vector struct {
	Array
}

// NewVector returns a Vector<elemType> containing a copy of items.
func NewVector(elemType *types.Type, items ...Value) *Vector {
	return &Vector{Array: *NewArray(elemType, items...)}
}

func (v *Vector) Type() *types.Type { return types.NewVector(v.elemType) }
func (v *Vector) Retain() Value     { v.refCount++; return v }

// Matrix is a 2-D rectangular sequence stored row-major.
type Matrix struct {
	elemType   *types.Type
	rows, cols int
	data       []Value // len == rows*cols
	refCount   int32
}

// NewMatrix returns a rows x cols Matrix<elemType>. data must have exactly
// rows*cols entries in row-major order; each is retained.
func NewMatrix(elemType *types.Type, rows, cols int, data []Value) *Matrix {
	if len(data) != rows*cols {
		panic("values: matrix data length does not match rows*cols")
	}
	m := &Matrix{elemType: elemType.Retain(), rows: rows, cols: cols, data: append([]Value(nil), data...), refCount: 1}
	for _, v := range m.data {
		v.Retain()
	}
	return m
}

func (m *Matrix) Type() *types.Type { return types.NewMatrix(m.elemType) }

func (m *Matrix) String() string {
	var b strings.Builder
	b.WriteString("[")
	for r := 0; r < m.rows; r++ {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteString("[")
		for c := 0; c < m.cols; c++ {
			if c > 0 {
				b.WriteString(", ")
			}
			b.WriteString(m.data[r*m.cols+c].String())
		}
		b.WriteString("]")
	}
	b.WriteString("]")
	return b.String()
}

func (m *Matrix) Retain() Value { m.refCount++; return m }

func (m *Matrix) Release() {
	m.refCount--
	if m.refCount > 0 {
		return
	}
	for _, v := range m.data {
		v.Release()
	}
	m.elemType.Release()
}

// Dims returns the matrix's row and column counts.
func (m *Matrix) Dims() (rows, cols int) { return m.rows, m.cols }

// At returns the element at (row, col), or false if out of range.
func (m *Matrix) At(row, col int) (Value, bool) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return nil, false
	}
	return m.data[row*m.cols+col], true
}

// Ref is an indirect mutable cell holding exactly one value of its element
// type.
type Ref struct {
	elemType *types.Type
	cell     Value
	refCount int32
}

// NewRef returns a Ref<elemType> cell initialized to v (retained).
func NewRef(elemType *types.Type, v Value) *Ref {
	return &Ref{elemType: elemType.Retain(), cell: v.Retain(), refCount: 1}
}

func (r *Ref) Type() *types.Type { return types.NewRef(r.elemType) }
func (r *Ref) String() string    { return "ref(" + r.cell.String() + ")" }
func (r *Ref) Retain() Value     { r.refCount++; return r }

func (r *Ref) Release() {
	r.refCount--
	if r.refCount > 0 {
		return
	}
	r.cell.Release()
	r.elemType.Release()
}

// Get returns the cell's current value.
func (r *Ref) Get() Value { return r.cell }

// Set replaces the cell's value, releasing the old one and retaining the
// new one.
func (r *Ref) Set(v Value) {
	old := r.cell
	r.cell = v.Retain()
	old.Release()
}
