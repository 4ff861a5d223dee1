package types

import (
	"fmt"
	"strings"
	"unicode"
)

// Parse parses the canonical textual form produced by Type.String() back
// into a Type (§8 testable property 3). This is a small recursive-descent
// parser over the printer's own grammar only — it is not IR-from-source
// compilation (out of scope per §1) and never sees expressions or
// statements, only type syntax.
//
// Parse cannot reconstruct a Recursive type's back-edges from its printed
// "Recursive(...)" placeholder, since that form is deliberately lossy
// (printType elides the cycle to terminate). Parsing a type that prints
// with an elided back-edge returns a Recursive wrapper whose inner subtree
// substitutes Never at the elision point; round-tripping acyclic types is
// exact.
func Parse(s string) (*Type, error) {
	p := &typeParser{input: s}
	p.skipSpace()
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("types: unexpected trailing input %q", p.input[p.pos:])
	}
	return t, nil
}

type typeParser struct {
	input string
	pos   int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) peekByte() (byte, bool) {
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *typeParser) expect(b byte) error {
	p.skipSpace()
	c, ok := p.peekByte()
	if !ok || c != b {
		return fmt.Errorf("types: expected %q at offset %d", b, p.pos)
	}
	p.pos++
	return nil
}

func (p *typeParser) ident() string {
	start := p.pos
	for p.pos < len(p.input) {
		c := rune(p.input[p.pos])
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' {
			break
		}
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *typeParser) parseType() (*Type, error) {
	p.skipSpace()
	name := p.ident()
	if name == "" {
		return nil, fmt.Errorf("types: expected type name at offset %d", p.pos)
	}

	switch name {
	case "Never":
		return Never, nil
	case "Null":
		return Null, nil
	case "Boolean":
		return Boolean, nil
	case "Integer":
		return Integer, nil
	case "Float":
		return Float, nil
	case "String":
		return String, nil
	case "DateTime":
		return DateTime, nil
	case "Blob":
		return Blob, nil
	case "Array", "Set", "Vector", "Ref":
		elem, err := p.parseAngleOne()
		if err != nil {
			return nil, err
		}
		switch name {
		case "Array":
			return NewArray(elem), nil
		case "Set":
			return NewSet(elem), nil
		case "Vector":
			return NewVector(elem), nil
		default:
			return NewRef(elem), nil
		}
	case "Matrix":
		elem, err := p.parseAngleOne()
		if err != nil {
			return nil, err
		}
		return NewMatrix(elem), nil
	case "Dict":
		if err := p.expect('<'); err != nil {
			return nil, err
		}
		key, err := p.parseType()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if err := p.expect(','); err != nil {
			return nil, err
		}
		value, err := p.parseType()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if err := p.expect('>'); err != nil {
			return nil, err
		}
		return NewDict(key, value), nil
	case "Struct":
		return p.parseStructOrVariant(true)
	case "Variant":
		return p.parseStructOrVariant(false)
	case "Function":
		return p.parseCallable(false)
	case "AsyncFunction":
		return p.parseCallable(true)
	case "Recursive":
		if err := p.expect('('); err != nil {
			return nil, err
		}
		p.skipSpace()
		if strings.HasPrefix(p.input[p.pos:], "...") {
			// Elided back-edge: Never stands in at the elision point.
			p.pos += 3
			return Never, p.expect(')')
		}
		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		rec := NewRecursive()
		rec.Bind(inner)
		return rec, nil
	default:
		return nil, fmt.Errorf("types: unknown type name %q", name)
	}
}

func (p *typeParser) parseAngleOne() (*Type, error) {
	if err := p.expect('<'); err != nil {
		return nil, err
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if err := p.expect('>'); err != nil {
		return nil, err
	}
	return t, nil
}

func (p *typeParser) parseStructOrVariant(isStruct bool) (*Type, error) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}
	p.skipSpace()
	var fields []Field
	var cases []Case
	if c, ok := p.peekByte(); !ok || c != '}' {
		for {
			p.skipSpace()
			name := p.ident()
			if name == "" {
				return nil, fmt.Errorf("types: expected field/case name at offset %d", p.pos)
			}
			if err := p.expect(':'); err != nil {
				return nil, err
			}
			memberType, err := p.parseType()
			if err != nil {
				return nil, err
			}
			if isStruct {
				fields = append(fields, Field{Name: name, Type: memberType})
			} else {
				cases = append(cases, Case{Name: name, Type: memberType})
			}
			p.skipSpace()
			sep, ok := p.peekByte()
			if !ok {
				return nil, fmt.Errorf("types: unterminated %s", map[bool]string{true: "Struct", false: "Variant"}[isStruct])
			}
			wantSep := byte(',')
			if !isStruct {
				wantSep = '|'
			}
			if sep == wantSep {
				p.pos++
				continue
			}
			break
		}
	}
	p.skipSpace()
	if err := p.expect('}'); err != nil {
		return nil, err
	}
	if isStruct {
		return NewStruct(fields...), nil
	}
	return NewVariant(cases...), nil
}

func (p *typeParser) parseCallable(isAsync bool) (*Type, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	p.skipSpace()
	var params []*Type
	if c, ok := p.peekByte(); !ok || c != ')' {
		for {
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			params = append(params, t)
			p.skipSpace()
			c, ok := p.peekByte()
			if !ok {
				return nil, fmt.Errorf("types: unterminated parameter list")
			}
			if c == ',' {
				p.pos++
				continue
			}
			break
		}
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	p.skipSpace()
	if !strings.HasPrefix(p.input[p.pos:], "->") {
		return nil, fmt.Errorf("types: expected '->' at offset %d", p.pos)
	}
	p.pos += 2
	result, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if isAsync {
		return NewAsyncFunction(result, params...), nil
	}
	return NewFunction(result, params...), nil
}
