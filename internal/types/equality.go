package types

// Equal reports whether a and b are structurally the same type (§3.1). Two
// Recursive wrappers are equal only if they are the same wrapper instance
// (invariant 4): comparing by identity is what lets Equal terminate on
// cyclic type graphs instead of looping forever trying to compare inner
// trees that refer back to themselves.
func Equal(a, b *Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.kind == KindRecursive || b.kind == KindRecursive {
		return false // identity already checked above and failed
	}
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case KindNever, KindNull, KindBoolean, KindInteger, KindFloat, KindString, KindDateTime, KindBlob:
		return true
	case KindArray, KindSet, KindVector, KindMatrix, KindRef:
		return Equal(a.elem, b.elem)
	case KindDict:
		return Equal(a.key, b.key) && Equal(a.value, b.value)
	case KindStruct:
		if len(a.fields) != len(b.fields) {
			return false
		}
		for i := range a.fields {
			if a.fields[i].Name != b.fields[i].Name || !Equal(a.fields[i].Type, b.fields[i].Type) {
				return false
			}
		}
		return true
	case KindVariant:
		if len(a.cases) != len(b.cases) {
			return false
		}
		for i := range a.cases {
			if a.cases[i].Name != b.cases[i].Name || !Equal(a.cases[i].Type, b.cases[i].Type) {
				return false
			}
		}
		return true
	case KindFunction, KindAsyncFunction:
		if len(a.params) != len(b.params) {
			return false
		}
		for i := range a.params {
			if !Equal(a.params[i], b.params[i]) {
				return false
			}
		}
		return Equal(a.result, b.result)
	default:
		return false
	}
}
