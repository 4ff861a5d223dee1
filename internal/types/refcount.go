package types

// Retain increments t's reference count and returns t, for chaining into a
// constructor argument. Primitive singletons and nil are no-ops (§3.1
// invariant 1).
func (t *Type) Retain() *Type {
	if t == nil || isPrimitiveKind(t.kind) {
		return t
	}
	t.refCount++
	return t
}

// Release decrements t's reference count, destroying t once it reaches
// zero. Primitive singletons and nil are no-ops.
func (t *Type) Release() {
	if t == nil || isPrimitiveKind(t.kind) {
		return
	}
	t.refCount--
	if t.refCount > 0 {
		return
	}
	t.destroy()
}

// RefCount returns the current reference count, for tests. Primitives
// report 0 since they are never counted.
func (t *Type) RefCount() int32 {
	if t == nil || isPrimitiveKind(t.kind) {
		return 0
	}
	return t.refCount
}

// destroy releases t's children. A Recursive wrapper must break its cycle
// first: every back-edge inside its inner tree that points at t is set to
// absent before the inner tree itself is released, so the recursive
// release below never walks back into t (§3.1).
func (t *Type) destroy() {
	switch t.kind {
	case KindArray, KindSet, KindVector, KindMatrix, KindRef:
		t.elem.Release()
	case KindDict:
		t.key.Release()
		t.value.Release()
	case KindStruct:
		for _, f := range t.fields {
			f.Type.Release()
		}
	case KindVariant:
		for _, c := range t.cases {
			c.Type.Release()
		}
	case KindFunction, KindAsyncFunction:
		for _, p := range t.params {
			p.Release()
		}
		t.result.Release()
	case KindRecursive:
		breakCycle(t.inner, t, make(map[*Type]bool))
		t.inner.Release()
		t.inner = nil
	}
}

// Bind attaches inner as the Recursive wrapper's inner subtree and
// finalizes it: it walks inner counting back-edges that point at t (edges
// created when inner's own constructors retained t as a child) and deducts
// that count from t's reference count, so the cycle's internal edges do
// not keep t alive on their own (§3.1, §4.1 "Rationale for cycle-breaking
// design"). Bind takes ownership of the single reference inner already
// holds; callers must not separately Release inner. Bind is a no-op on a
// nil receiver or a non-Recursive type.
func (t *Type) Bind(inner *Type) *Type {
	if t == nil || t.kind != KindRecursive {
		return t
	}
	t.inner = inner
	backEdges := walk(inner, t, make(map[*Type]bool), false)
	t.refCount -= int32(backEdges)
	return t
}

// walk traverses the type tree rooted at t, looking for direct child
// pointers equal to target. When found, it either counts the edge (break
// == false) or severs it by setting the field to nil (break == true). It
// never descends across an edge it has just matched, so it never loops
// back through the cycle it is meant to terminate. visited guards against
// re-walking shared DAG subtrees more than once.
func walk(t, target *Type, visited map[*Type]bool, breakEdges bool) int {
	if t == nil || visited[t] {
		return 0
	}
	visited[t] = true

	count := 0
	follow := func(child **Type) {
		if *child == target {
			count++
			if breakEdges {
				*child = nil
			}
			return
		}
		count += walk(*child, target, visited, breakEdges)
	}

	switch t.kind {
	case KindArray, KindSet, KindVector, KindMatrix, KindRef:
		follow(&t.elem)
	case KindDict:
		follow(&t.key)
		follow(&t.value)
	case KindStruct:
		for i := range t.fields {
			follow(&t.fields[i].Type)
		}
	case KindVariant:
		for i := range t.cases {
			follow(&t.cases[i].Type)
		}
	case KindFunction, KindAsyncFunction:
		for i := range t.params {
			follow(&t.params[i])
		}
		follow(&t.result)
	case KindRecursive:
		follow(&t.inner)
	}
	return count
}

// breakCycle severs every back-edge to target found while walking t,
// mutating the tree in place.
func breakCycle(t, target *Type, visited map[*Type]bool) {
	walk(t, target, visited, true)
}
