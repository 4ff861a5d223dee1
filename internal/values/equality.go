package values

// Equal reports whether a and b are structurally equal values (§4.3.4's
// `eq` built-in is exactly this, exposed to IR). It is the same notion of
// equality Set and Dict use to deduplicate and look up keys.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case nullValue:
		_, ok := b.(nullValue)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Float:
		bv, ok := b.(Float)
		if !ok {
			return false
		}
		if av != av && bv != bv {
			return true // nan == nan structurally
		}
		return av == bv
	case Str:
		bv, ok := b.(Str)
		return ok && av == bv
	case DateTimeValue:
		bv, ok := b.(DateTimeValue)
		return ok && av.Instant.Equal(bv.Instant)
	case Blob:
		bv, ok := b.(Blob)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case *Array:
		bv, ok := b.(*Array)
		return ok && equalSequence(av.items, bv.items)
	case *Vector:
		bv, ok := b.(*Vector)
		return ok && equalSequence(av.items, bv.items)
	case *Matrix:
		bv, ok := b.(*Matrix)
		return ok && av.rows == bv.rows && av.cols == bv.cols && equalSequence(av.data, bv.data)
	case *Set:
		bv, ok := b.(*Set)
		return ok && equalSet(av, bv)
	case *Dict:
		bv, ok := b.(*Dict)
		return ok && equalDict(av, bv)
	case *Struct:
		bv, ok := b.(*Struct)
		return ok && equalStruct(av, bv)
	case *Variant:
		bv, ok := b.(*Variant)
		return ok && av.caseName == bv.caseName && equalOptional(av.payload, bv.payload)
	case *Ref:
		// Ref identity: two distinct cells are never structurally equal
		// even with the same contents, since a Ref denotes a mutable
		// location, not a value.
		bv, ok := b.(*Ref)
		return ok && av == bv
	case *Function:
		bv, ok := b.(*Function)
		return ok && av == bv
	default:
		return false
	}
}

func equalOptional(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Equal(a, b)
}

func equalSequence(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalSet(a, b *Set) bool {
	if len(a.items) != len(b.items) {
		return false
	}
	for _, v := range a.items {
		if !b.contains(v) {
			return false
		}
	}
	return true
}

func equalDict(a, b *Dict) bool {
	if len(a.keys) != len(b.keys) {
		return false
	}
	for _, k := range a.keys {
		bv, ok := b.lookup(k)
		if !ok {
			return false
		}
		av, _ := a.lookup(k)
		if !Equal(av, bv) {
			return false
		}
	}
	return true
}

func equalStruct(a, b *Struct) bool {
	if len(a.order) != len(b.order) {
		return false
	}
	for _, name := range a.order {
		av, aok := a.fields[name]
		bv, bok := b.fields[name]
		if !aok || !bok || !Equal(av, bv) {
			return false
		}
	}
	return true
}

// fingerprint returns a canonical string uniquely determined by v's
// structural value, used to key Set/Dict's hash index. It is not a wire
// format: only equality of the fingerprint (not its content) is load
// bearing.
func fingerprint(v Value) string {
	var b []byte
	b = appendFingerprint(b, v)
	return string(b)
}

// Fingerprint exposes fingerprint to other internal packages (notably
// internal/codec/east, which sorts a Set's elements by structural hash to
// produce §4.4's canonical round-trip form) without giving them a way to
// construct or compare on anything but the string itself.
func Fingerprint(v Value) string { return fingerprint(v) }

func appendFingerprint(b []byte, v Value) []byte {
	switch x := v.(type) {
	case nullValue:
		return append(b, "n"...)
	case Bool:
		if x {
			return append(b, "T"...)
		}
		return append(b, "F"...)
	case Int:
		return append(b, 'i', byte(x), byte(x>>8), byte(x>>16), byte(x>>24), byte(x>>32), byte(x>>40), byte(x>>48), byte(x>>56))
	case Float:
		return append(append(b, 'f'), []byte(x.String())...)
	case Str:
		return append(append(b, 's'), []byte(x)...)
	case DateTimeValue:
		return append(append(b, 'd'), []byte(x.Instant.UTC().Format("20060102T150405.999999999Z"))...)
	case Blob:
		return append(append(b, 'B'), x...)
	case *Array:
		b = append(b, '[')
		for _, e := range x.items {
			b = appendFingerprint(b, e)
			b = append(b, ',')
		}
		return append(b, ']')
	case *Vector:
		return appendFingerprint(b, &x.Array)
	case *Matrix:
		b = append(b, 'M')
		for _, e := range x.data {
			b = appendFingerprint(b, e)
			b = append(b, ',')
		}
		return b
	case *Set:
		b = append(b, '{')
		for _, e := range x.items {
			b = appendFingerprint(b, e)
			b = append(b, ',')
		}
		return append(b, '}')
	case *Dict:
		b = append(b, 'D')
		for _, k := range x.keys {
			b = appendFingerprint(b, k)
			b = append(b, ':')
			val, _ := x.lookup(k)
			b = appendFingerprint(b, val)
			b = append(b, ',')
		}
		return b
	case *Struct:
		b = append(b, 'S')
		for _, name := range x.order {
			b = append(append(b, name...), '=')
			b = appendFingerprint(b, x.fields[name])
			b = append(b, ',')
		}
		return b
	case *Variant:
		b = append(append(b, 'V'), x.caseName...)
		if x.payload != nil {
			b = append(b, '(')
			b = appendFingerprint(b, x.payload)
			b = append(b, ')')
		}
		return b
	case *Ref:
		return append(b, []byte(fingerprintPointer(x))...)
	case *Function:
		return append(b, []byte(fingerprintPointer(x))...)
	default:
		return b
	}
}
