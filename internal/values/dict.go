package values

import (
	"strings"

	"github.com/elaraai/east-go/internal/types"
)

// Set is an unordered collection of distinct values, deduplicated by
// structural equality (§3.1, §4.2). Insertion order is preserved for
// iteration, matching Dict's convention.
type Set struct {
	elemType *types.Type
	items    []Value
	index    map[string]int // fingerprint(v) -> position in items
	refCount int32
}

// NewSet returns a Set<elemType> containing the distinct (by structural
// equality) values among items, retaining the first occurrence of each.
func NewSet(elemType *types.Type, items ...Value) *Set {
	s := &Set{elemType: elemType.Retain(), index: make(map[string]int), refCount: 1}
	for _, v := range items {
		s.Add(v)
	}
	return s
}

func (s *Set) Type() *types.Type { return types.NewSet(s.elemType) }

func (s *Set) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, v := range s.items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.String())
	}
	b.WriteString("}")
	return b.String()
}

func (s *Set) Retain() Value { s.refCount++; return s }

func (s *Set) Release() {
	s.refCount--
	if s.refCount > 0 {
		return
	}
	for _, v := range s.items {
		v.Release()
	}
	s.elemType.Release()
}

// Len returns the number of distinct elements.
func (s *Set) Len() int { return len(s.items) }

// Items returns the backing slice in insertion order; treat as read-only.
func (s *Set) Items() []Value { return s.items }

// ElemType returns the set's declared element type.
func (s *Set) ElemType() *types.Type { return s.elemType }

// contains reports whether an element structurally equal to v is present.
func (s *Set) contains(v Value) bool {
	_, ok := s.index[fingerprint(v)]
	return ok
}

// Add inserts v if no structurally equal element is already present,
// retaining it. Reports whether v was newly inserted.
func (s *Set) Add(v Value) bool {
	key := fingerprint(v)
	if _, ok := s.index[key]; ok {
		return false
	}
	s.index[key] = len(s.items)
	s.items = append(s.items, v.Retain())
	return true
}

// Remove deletes the element structurally equal to v, if present,
// releasing it. Reports whether an element was removed.
func (s *Set) Remove(v Value) bool {
	key := fingerprint(v)
	pos, ok := s.index[key]
	if !ok {
		return false
	}
	removed := s.items[pos]
	s.items = append(s.items[:pos], s.items[pos+1:]...)
	delete(s.index, key)
	for k, i := range s.index {
		if i > pos {
			s.index[k] = i - 1
		}
	}
	removed.Release()
	return true
}

// Dict is an insertion-ordered mapping from keys to values, with keys
// deduplicated and looked up by structural equality (§3.1, §4.2).
type Dict struct {
	keyType, valType *types.Type
	keys             []Value
	values           []Value
	index            map[string]int // fingerprint(key) -> position
	refCount         int32
}

// NewDict returns an empty Dict<keyType, valType>.
func NewDict(keyType, valType *types.Type) *Dict {
	return &Dict{
		keyType:  keyType.Retain(),
		valType:  valType.Retain(),
		index:    make(map[string]int),
		refCount: 1,
	}
}

func (d *Dict) Type() *types.Type { return types.NewDict(d.keyType, d.valType) }

func (d *Dict) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, k := range d.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k.String())
		b.WriteString(": ")
		b.WriteString(d.values[i].String())
	}
	b.WriteString("}")
	return b.String()
}

func (d *Dict) Retain() Value { d.refCount++; return d }

func (d *Dict) Release() {
	d.refCount--
	if d.refCount > 0 {
		return
	}
	for i := range d.keys {
		d.keys[i].Release()
		d.values[i].Release()
	}
	d.keyType.Release()
	d.valType.Release()
}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.keys) }

// Keys returns the keys in insertion order; treat as read-only.
func (d *Dict) Keys() []Value { return d.keys }

// lookup returns the value associated with a key structurally equal to k.
func (d *Dict) lookup(k Value) (Value, bool) {
	pos, ok := d.index[fingerprint(k)]
	if !ok {
		return nil, false
	}
	return d.values[pos], true
}

// Get returns the value for k, matching by structural equality.
func (d *Dict) Get(k Value) (Value, bool) { return d.lookup(k) }

// Set inserts or replaces the entry for k with v. If a structurally equal
// key already exists, its value is replaced (the old value released);
// otherwise a new entry is appended, preserving insertion order.
func (d *Dict) Set(k, v Value) {
	key := fingerprint(k)
	if pos, ok := d.index[key]; ok {
		old := d.values[pos]
		d.values[pos] = v.Retain()
		old.Release()
		return
	}
	d.index[key] = len(d.keys)
	d.keys = append(d.keys, k.Retain())
	d.values = append(d.values, v.Retain())
}

// Delete removes the entry for k, if present, releasing both the key and
// value. Reports whether an entry was removed.
func (d *Dict) Delete(k Value) bool {
	pos, ok := d.index[fingerprint(k)]
	if !ok {
		return false
	}
	oldKey, oldVal := d.keys[pos], d.values[pos]
	d.keys = append(d.keys[:pos], d.keys[pos+1:]...)
	d.values = append(d.values[:pos], d.values[pos+1:]...)
	delete(d.index, fingerprint(k))
	for key, i := range d.index {
		if i > pos {
			d.index[key] = i - 1
		}
	}
	oldKey.Release()
	oldVal.Release()
	return true
}
