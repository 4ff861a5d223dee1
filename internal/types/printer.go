package types

import "strings"

// String returns the canonical textual form of t, e.g. "Array<String>",
// "Dict<String, Integer>", "Struct { a: Integer, b: String }",
// "Variant { err: String | ok: Integer }" (cases always printed in their
// canonical sorted order), "Function(Integer, String) -> Boolean", and
// "Recursive(...)". This is the form §8 invariant 3 round-trips through
// Parse.
func (t *Type) String() string {
	var b strings.Builder
	printType(&b, t, nil)
	return b.String()
}

// printType writes t's canonical form to b. active tracks the Recursive
// wrappers currently being expanded on the path from the root, so a
// back-edge into one of them prints as an elided self-reference instead of
// recursing forever.
func printType(b *strings.Builder, t *Type, active []*Type) {
	if t == nil {
		b.WriteString("<nil>")
		return
	}
	for _, a := range active {
		if a == t {
			b.WriteString("Recursive(...)")
			return
		}
	}

	switch t.kind {
	case KindNever, KindNull, KindBoolean, KindInteger, KindFloat, KindString, KindDateTime, KindBlob:
		b.WriteString(t.kind.String())
	case KindArray:
		writeParam1(b, "Array", t.elem, active)
	case KindSet:
		writeParam1(b, "Set", t.elem, active)
	case KindVector:
		writeParam1(b, "Vector", t.elem, active)
	case KindMatrix:
		writeParam1(b, "Matrix", t.elem, active)
	case KindRef:
		writeParam1(b, "Ref", t.elem, active)
	case KindDict:
		b.WriteString("Dict<")
		printType(b, t.key, active)
		b.WriteString(", ")
		printType(b, t.value, active)
		b.WriteString(">")
	case KindStruct:
		b.WriteString("Struct { ")
		for i, f := range t.fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteString(": ")
			printType(b, f.Type, active)
		}
		b.WriteString(" }")
	case KindVariant:
		b.WriteString("Variant { ")
		for i, c := range t.cases {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(c.Name)
			b.WriteString(": ")
			printType(b, c.Type, active)
		}
		b.WriteString(" }")
	case KindFunction:
		writeCallable(b, "Function", t, active)
	case KindAsyncFunction:
		writeCallable(b, "AsyncFunction", t, active)
	case KindRecursive:
		b.WriteString("Recursive(")
		printType(b, t.inner, append(active, t))
		b.WriteString(")")
	default:
		b.WriteString("?")
	}
}

func writeParam1(b *strings.Builder, name string, elem *Type, active []*Type) {
	b.WriteString(name)
	b.WriteString("<")
	printType(b, elem, active)
	b.WriteString(">")
}

func writeCallable(b *strings.Builder, name string, t *Type, active []*Type) {
	b.WriteString(name)
	b.WriteString("(")
	for i, p := range t.params {
		if i > 0 {
			b.WriteString(", ")
		}
		printType(b, p, active)
	}
	b.WriteString(") -> ")
	printType(b, t.result, active)
}
