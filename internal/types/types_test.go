package types

import (
	"strings"
	"testing"

	"github.com/kr/pretty"
)

func TestPrimitiveSingletonsAreNoOpRefcounted(t *testing.T) {
	Integer.Retain()
	Integer.Retain()
	Integer.Release()
	if Integer.RefCount() != 0 {
		t.Fatalf("primitive refcount = %d, want 0 (untracked)", Integer.RefCount())
	}
}

func TestEqualPrimitives(t *testing.T) {
	if !Equal(Integer, Integer) {
		t.Fatal("Integer should equal itself")
	}
	if Equal(Integer, String) {
		t.Fatal("Integer should not equal String")
	}
}

func TestEqualParametric(t *testing.T) {
	a := NewArray(String)
	b := NewArray(String)
	c := NewArray(Integer)
	defer a.Release()
	defer b.Release()
	defer c.Release()

	if !Equal(a, b) {
		t.Fatal("Array<String> should equal a distinct Array<String>")
	}
	if Equal(a, c) {
		t.Fatal("Array<String> should not equal Array<Integer>")
	}
}

func TestVariantCasesSortedByName(t *testing.T) {
	v := NewVariant(Case{Name: "ok", Type: Integer}, Case{Name: "err", Type: String})
	defer v.Release()

	cases := v.Cases()
	if len(cases) != 2 || cases[0].Name != "err" || cases[1].Name != "ok" {
		t.Fatalf("cases not sorted: %+v", cases)
	}
}

func TestStructFieldOrderPreserved(t *testing.T) {
	s := NewStruct(Field{Name: "b", Type: String}, Field{Name: "a", Type: Integer})
	defer s.Release()

	fields := s.Fields()
	if fields[0].Name != "b" || fields[1].Name != "a" {
		t.Fatalf("struct fields reordered: %+v", fields)
	}
}

func TestPrinterCanonicalForms(t *testing.T) {
	cases := []struct {
		build func() *Type
		want  string
	}{
		{func() *Type { return Integer }, "Integer"},
		{func() *Type { return NewArray(String) }, "Array<String>"},
		{func() *Type { return NewDict(String, Integer) }, "Dict<String, Integer>"},
		{func() *Type {
			return NewStruct(Field{Name: "a", Type: Integer}, Field{Name: "b", Type: String})
		}, "Struct { a: Integer, b: String }"},
		{func() *Type {
			return NewVariant(Case{Name: "ok", Type: Integer}, Case{Name: "err", Type: String})
		}, "Variant { err: String | ok: Integer }"},
		{func() *Type {
			return NewFunction(Boolean, Integer, String)
		}, "Function(Integer, String) -> Boolean"},
	}

	for _, c := range cases {
		ty := c.build()
		got := ty.String()
		if got != c.want {
			t.Errorf("String() mismatch:\n%s", strings.Join(pretty.Diff(c.want, got), "\n"))
		}
		ty.Release()
	}
}

func TestParseRoundTripsAcyclicTypes(t *testing.T) {
	originals := []*Type{
		Integer,
		NewArray(String),
		NewDict(String, Integer),
		NewStruct(Field{Name: "a", Type: Integer}, Field{Name: "b", Type: NewArray(Boolean)}),
		NewVariant(Case{Name: "ok", Type: Integer}, Case{Name: "err", Type: String}),
		NewFunction(Boolean, Integer, String),
		NewAsyncFunction(Integer),
	}

	for _, original := range originals {
		printed := original.String()
		parsed, err := Parse(printed)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", printed, err)
		}
		if !Equal(original, parsed) {
			t.Errorf("Parse(%q) = %v, not structurally equal to original", printed, parsed)
		}
		if parsed.String() != printed {
			t.Errorf("re-printed form %q != original print %q", parsed.String(), printed)
		}
	}
}

// buildTree returns a wrapper for Tree = Recursive(Variant{ leaf: Null | node: Struct{ l: Tree, r: Tree } }).
func buildTree() *Type {
	wrapper := NewRecursive()
	node := NewStruct(Field{Name: "l", Type: wrapper}, Field{Name: "r", Type: wrapper})
	inner := NewVariant(Case{Name: "leaf", Type: Null}, Case{Name: "node", Type: node})
	node.Release() // inner's variant case retained it; release our local handle
	wrapper.Bind(inner)
	return wrapper
}

func TestRecursiveTypeConstructionAndRefcount(t *testing.T) {
	tree := buildTree()
	defer tree.Release()

	if tree.RefCount() != 1 {
		t.Fatalf("after Bind, wrapper refcount = %d, want 1 (back-edges neutralized)", tree.RefCount())
	}

	node, ok := tree.Inner().Case("node")
	if !ok {
		t.Fatal("expected a 'node' case on the bound inner variant")
	}
	l, ok := node.Field("l")
	if !ok || l != tree {
		t.Fatal("expected field 'l' to be a back-edge to the wrapper itself")
	}
}

func TestRecursiveTypeDestructionBreaksCycle(t *testing.T) {
	tree := buildTree()
	extra := tree.Retain() // simulate an external value still pinning the wrapper... but we release both below.
	_ = extra

	tree.Release()
	tree.Release()
	// No assertion beyond "this does not hang or panic": destruction must
	// sever the back-edges before releasing the inner tree so that the
	// recursive Release() calls terminate.
}

func TestEqualRecursiveIsIdentityOnly(t *testing.T) {
	a := buildTree()
	b := buildTree()
	defer a.Release()
	defer b.Release()

	if Equal(a, b) {
		t.Fatal("two distinct Recursive wrappers with identical shape must not be Equal (identity only)")
	}
	if !Equal(a, a) {
		t.Fatal("a Recursive wrapper must equal itself")
	}
}

func TestPrinterRecursiveDoesNotLoop(t *testing.T) {
	tree := buildTree()
	defer tree.Release()

	got := tree.String()
	if got == "" {
		t.Fatal("expected non-empty printed form")
	}
	// Must terminate (the test itself timing out would indicate otherwise)
	// and must mention the elided self-reference.
	if want := "Recursive(...)"; !contains(got, want) {
		t.Errorf("printed form %q does not contain elided back-edge %q", got, want)
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
