// Package east implements East's human-readable textual serialization
// format (§4.4 "east"): literals, bracket/brace container syntax, and
// `Struct { ... }` / `Variant.case(...)` forms, type-directed the same
// way the other three codecs are. Decoded string content is NFC-
// normalized via golang.org/x/text/unicode/norm, so two byte-distinct but
// canonically-equivalent Unicode spellings of the same string decode to
// the same value.
package east

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/types"
	"github.com/elaraai/east-go/internal/values"
)

// Encode renders v (of type t) as east text.
func Encode(v values.Value, t *types.Type) ([]byte, *errs.Error) {
	var b strings.Builder
	if err := printValue(&b, v, t); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

// Decode parses data as a value of type t.
func Decode(data []byte, t *types.Type) (values.Value, *errs.Error) {
	p := &parser{data: []rune(string(data))}
	v, err := parseValue(p, t)
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.atEnd() {
		return nil, errs.New(errs.FormatError, "east: trailing input at position %d", p.pos)
	}
	return v, nil
}

func resolveType(t *types.Type) *types.Type {
	for t != nil && t.Kind() == types.KindRecursive {
		t = t.Inner()
	}
	return t
}

// --- printing ---

func printValue(b *strings.Builder, v values.Value, t *types.Type) *errs.Error {
	t = resolveType(t)

	switch t.Kind() {
	case types.KindNull:
		b.WriteString("null")
		return nil

	case types.KindBoolean:
		bv, ok := v.(values.Bool)
		if !ok {
			return errs.New(errs.TypeMismatch, "east: expected Boolean, got %T", v)
		}
		b.WriteString(bv.String())
		return nil

	case types.KindInteger:
		iv, ok := v.(values.Int)
		if !ok {
			return errs.New(errs.TypeMismatch, "east: expected Integer, got %T", v)
		}
		b.WriteString(iv.String())
		return nil

	case types.KindFloat:
		fv, ok := v.(values.Float)
		if !ok {
			return errs.New(errs.TypeMismatch, "east: expected Float, got %T", v)
		}
		b.WriteString(fv.String())
		return nil

	case types.KindString:
		sv, ok := v.(values.Str)
		if !ok {
			return errs.New(errs.TypeMismatch, "east: expected String, got %T", v)
		}
		b.WriteString(quoteString(string(sv)))
		return nil

	case types.KindDateTime:
		dv, ok := v.(values.DateTimeValue)
		if !ok {
			return errs.New(errs.TypeMismatch, "east: expected DateTime, got %T", v)
		}
		// Quoted, unlike the unquoted numeric literals: RFC 3339's time
		// portion contains ':', which would otherwise collide with the
		// ':' separating a Dict entry's key from its value.
		b.WriteString(quoteString(dv.Instant.Format(time.RFC3339Nano)))
		return nil

	case types.KindBlob:
		bv, ok := v.(values.Blob)
		if !ok {
			return errs.New(errs.TypeMismatch, "east: expected Blob, got %T", v)
		}
		b.WriteString(`blob"`)
		b.WriteString(hex.EncodeToString(bv))
		b.WriteString(`"`)
		return nil

	case types.KindArray, types.KindVector:
		items, err := sequenceOf(v)
		if err != nil {
			return err
		}
		return printBracketed(b, "[", "]", items, t.Elem())

	case types.KindSet:
		items, err := sequenceOf(v)
		if err != nil {
			return err
		}
		sorted := append([]values.Value(nil), items...)
		sortByFingerprint(sorted)
		return printBracketed(b, "{", "}", sorted, t.Elem())

	case types.KindMatrix:
		mv, ok := v.(*values.Matrix)
		if !ok {
			return errs.New(errs.TypeMismatch, "east: expected Matrix, got %T", v)
		}
		rows, cols := mv.Dims()
		elemType := t.Elem()
		b.WriteString("[")
		for r := 0; r < rows; r++ {
			if r > 0 {
				b.WriteString(", ")
			}
			rowItems := make([]values.Value, cols)
			for c := 0; c < cols; c++ {
				cell, _ := mv.At(r, c)
				rowItems[c] = cell
			}
			if err := printBracketed(b, "[", "]", rowItems, elemType); err != nil {
				return err
			}
		}
		b.WriteString("]")
		return nil

	case types.KindDict:
		dv, ok := v.(*values.Dict)
		if !ok {
			return errs.New(errs.TypeMismatch, "east: expected Dict, got %T", v)
		}
		keyType, valType := t.KeyValue()
		b.WriteString("{")
		for i, k := range dv.Keys() {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := printValue(b, k, keyType); err != nil {
				return err
			}
			b.WriteString(": ")
			val, _ := dv.Get(k)
			if err := printValue(b, val, valType); err != nil {
				return err
			}
		}
		b.WriteString("}")
		return nil

	case types.KindStruct:
		sv, ok := v.(*values.Struct)
		if !ok {
			return errs.New(errs.TypeMismatch, "east: expected Struct, got %T", v)
		}
		b.WriteString("Struct { ")
		for i, f := range t.Fields() {
			if i > 0 {
				b.WriteString(", ")
			}
			fv, found := sv.Field(f.Name)
			if !found {
				return errs.New(errs.StructuralError, "east: struct value missing field %q", f.Name)
			}
			b.WriteString(f.Name)
			b.WriteString(": ")
			if err := printValue(b, fv, f.Type); err != nil {
				return err
			}
		}
		b.WriteString(" }")
		return nil

	case types.KindVariant:
		vv, ok := v.(*values.Variant)
		if !ok {
			return errs.New(errs.TypeMismatch, "east: expected Variant, got %T", v)
		}
		caseType, found := t.Case(vv.Case())
		if !found {
			return errs.New(errs.StructuralError, "east: unknown variant case %q", vv.Case())
		}
		b.WriteString("Variant.")
		b.WriteString(vv.Case())
		if caseType.Kind() != types.KindNull {
			b.WriteString("(")
			if err := printValue(b, vv.Payload(), caseType); err != nil {
				return err
			}
			b.WriteString(")")
		}
		return nil

	default:
		return errs.New(errs.UnsupportedValue, "east: %s values are not serializable", t.Kind())
	}
}

func printBracketed(b *strings.Builder, open, close string, items []values.Value, elemType *types.Type) *errs.Error {
	b.WriteString(open)
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		if err := printValue(b, item, elemType); err != nil {
			return err
		}
	}
	b.WriteString(close)
	return nil
}

func sequenceOf(v values.Value) ([]values.Value, *errs.Error) {
	switch x := v.(type) {
	case *values.Array:
		return x.Items(), nil
	case *values.Vector:
		return x.Items(), nil
	case *values.Set:
		return x.Items(), nil
	default:
		return nil, errs.New(errs.TypeMismatch, "east: expected a sequence value, got %T", v)
	}
}

func sortByFingerprint(items []values.Value) {
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && values.Fingerprint(items[j]) < values.Fingerprint(items[j-1]); j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			if r < 0x20 || r == utf8.RuneError {
				fmt.Fprintf(&b, `\u{%x}`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// --- parsing ---

type parser struct {
	data []rune
	pos  int
}

func (p *parser) atEnd() bool { return p.pos >= len(p.data) }

func (p *parser) peek() rune {
	if p.atEnd() {
		return 0
	}
	return p.data[p.pos]
}

func (p *parser) skipSpace() {
	for !p.atEnd() {
		switch p.data[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) expect(r rune) *errs.Error {
	p.skipSpace()
	if p.atEnd() || p.data[p.pos] != r {
		return errs.New(errs.FormatError, "east: expected %q at position %d", r, p.pos)
	}
	p.pos++
	return nil
}

func (p *parser) tryConsume(r rune) bool {
	p.skipSpace()
	if !p.atEnd() && p.data[p.pos] == r {
		p.pos++
		return true
	}
	return false
}

func (p *parser) consumeLiteral(lit string) bool {
	p.skipSpace()
	runes := []rune(lit)
	if p.pos+len(runes) > len(p.data) {
		return false
	}
	for i, r := range runes {
		if p.data[p.pos+i] != r {
			return false
		}
	}
	p.pos += len(runes)
	return true
}

// readIdent reads a run of letters, digits, and underscores (identifiers:
// Struct/Variant field and case names).
func (p *parser) readIdent() string {
	p.skipSpace()
	start := p.pos
	for !p.atEnd() {
		r := p.data[p.pos]
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			p.pos++
			continue
		}
		break
	}
	return string(p.data[start:p.pos])
}

// readToken reads a run of non-delimiter characters, for numeric
// literals not quoted. ':' is a delimiter here since it only ever
// follows a numeric token inside a Dict entry or Struct field.
func (p *parser) readToken() string {
	p.skipSpace()
	start := p.pos
	for !p.atEnd() {
		switch p.data[p.pos] {
		case ' ', '\t', '\n', '\r', ',', ']', '}', ')', ':':
			return string(p.data[start:p.pos])
		}
		p.pos++
	}
	return string(p.data[start:p.pos])
}


func parseValue(p *parser, t *types.Type) (values.Value, *errs.Error) {
	t = resolveType(t)
	p.skipSpace()

	switch t.Kind() {
	case types.KindNull:
		if !p.consumeLiteral("null") {
			return nil, errs.New(errs.FormatError, "east: expected null at position %d", p.pos)
		}
		return values.Null, nil

	case types.KindBoolean:
		if p.consumeLiteral("true") {
			return values.Bool(true), nil
		}
		if p.consumeLiteral("false") {
			return values.Bool(false), nil
		}
		return nil, errs.New(errs.FormatError, "east: expected true/false at position %d", p.pos)

	case types.KindInteger:
		tok := p.readToken()
		if tok == "" {
			return nil, errs.New(errs.FormatError, "east: unexpected end of input reading Integer")
		}
		i, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, errs.New(errs.FormatError, "east: malformed Integer %q: %v", tok, err)
		}
		return values.Int(i), nil

	case types.KindFloat:
		tok := p.readToken()
		switch tok {
		case "inf":
			return values.Float(math.Inf(1)), nil
		case "-inf":
			return values.Float(math.Inf(-1)), nil
		case "nan":
			return values.Float(math.NaN()), nil
		}
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, errs.New(errs.FormatError, "east: malformed Float %q: %v", tok, err)
		}
		return values.Float(f), nil

	case types.KindString:
		s, err := parseQuotedString(p)
		if err != nil {
			return nil, err
		}
		return values.Str(norm.NFC.String(s)), nil

	case types.KindDateTime:
		tok, err := parseQuotedString(p)
		if err != nil {
			return nil, err
		}
		parsed, perr := time.Parse(time.RFC3339Nano, tok)
		if perr != nil {
			return nil, errs.New(errs.FormatError, "east: malformed DateTime %q: %v", tok, perr)
		}
		return values.NewDateTime(parsed), nil

	case types.KindBlob:
		if !p.consumeLiteral("blob") {
			return nil, errs.New(errs.FormatError, "east: expected blob\"...\" at position %d", p.pos)
		}
		hexStr, err := parseQuotedString(p)
		if err != nil {
			return nil, err
		}
		decoded, herr := hex.DecodeString(hexStr)
		if herr != nil {
			return nil, errs.New(errs.FormatError, "east: malformed blob hex: %v", herr)
		}
		return values.Blob(decoded), nil

	case types.KindArray, types.KindVector, types.KindSet:
		open, close := byte('['), byte(']')
		if t.Kind() == types.KindSet {
			open, close = '{', '}'
		}
		items, err := parseBracketed(p, rune(open), rune(close), t.Elem())
		if err != nil {
			return nil, err
		}
		switch t.Kind() {
		case types.KindVector:
			return values.NewVector(t.Elem(), items...), nil
		case types.KindSet:
			return values.NewSet(t.Elem(), items...), nil
		default:
			return values.NewArray(t.Elem(), items...), nil
		}

	case types.KindMatrix:
		if err := p.expect('['); err != nil {
			return nil, err
		}
		elemType := t.Elem()
		var data []values.Value
		rows, cols := 0, -1
		for {
			p.skipSpace()
			if p.tryConsume(']') {
				break
			}
			if rows > 0 {
				if err := p.expect(','); err != nil {
					return nil, err
				}
			}
			row, err := parseBracketed(p, '[', ']', elemType)
			if err != nil {
				return nil, err
			}
			if cols == -1 {
				cols = len(row)
			} else if len(row) != cols {
				return nil, errs.New(errs.FormatError, "east: ragged Matrix row (want %d columns, got %d)", cols, len(row))
			}
			data = append(data, row...)
			rows++
		}
		if cols == -1 {
			cols = 0
		}
		return values.NewMatrix(elemType, rows, cols, data), nil

	case types.KindDict:
		keyType, valType := t.KeyValue()
		if err := p.expect('{'); err != nil {
			return nil, err
		}
		d := values.NewDict(keyType, valType)
		first := true
		for {
			p.skipSpace()
			if p.tryConsume('}') {
				break
			}
			if !first {
				if err := p.expect(','); err != nil {
					return nil, err
				}
			}
			first = false
			key, err := parseValue(p, keyType)
			if err != nil {
				return nil, err
			}
			if err := p.expect(':'); err != nil {
				return nil, err
			}
			val, err := parseValue(p, valType)
			if err != nil {
				return nil, err
			}
			d.Set(key, val)
		}
		return d, nil

	case types.KindStruct:
		if !p.consumeLiteral("Struct") {
			return nil, errs.New(errs.FormatError, "east: expected Struct at position %d", p.pos)
		}
		if err := p.expect('{'); err != nil {
			return nil, err
		}
		fields := t.Fields()
		names := make([]string, 0, len(fields))
		vals := make([]values.Value, 0, len(fields))
		first := true
		for {
			p.skipSpace()
			if p.tryConsume('}') {
				break
			}
			if !first {
				if err := p.expect(','); err != nil {
					return nil, err
				}
			}
			first = false
			name := p.readIdent()
			fieldType, found := t.Field(name)
			if !found {
				return nil, errs.New(errs.StructuralError, "east: unknown struct field %q", name)
			}
			if err := p.expect(':'); err != nil {
				return nil, err
			}
			val, err := parseValue(p, fieldType)
			if err != nil {
				return nil, err
			}
			names = append(names, name)
			vals = append(vals, val)
		}
		return values.NewStruct(t, names, vals), nil

	case types.KindVariant:
		if !p.consumeLiteral("Variant") {
			return nil, errs.New(errs.FormatError, "east: expected Variant at position %d", p.pos)
		}
		if err := p.expect('.'); err != nil {
			return nil, err
		}
		caseName := p.readIdent()
		caseType, found := t.Case(caseName)
		if !found {
			return nil, errs.New(errs.StructuralError, "east: unknown variant case %q", caseName)
		}
		if caseType.Kind() == types.KindNull {
			return values.NewVariant(t, caseName, nil), nil
		}
		if err := p.expect('('); err != nil {
			return nil, err
		}
		payload, err := parseValue(p, caseType)
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return values.NewVariant(t, caseName, payload), nil

	default:
		return nil, errs.New(errs.UnsupportedValue, "east: %s values are not serializable", t.Kind())
	}
}

func parseBracketed(p *parser, open, close rune, elemType *types.Type) ([]values.Value, *errs.Error) {
	if err := p.expect(open); err != nil {
		return nil, err
	}
	var items []values.Value
	first := true
	for {
		p.skipSpace()
		if p.tryConsume(close) {
			break
		}
		if !first {
			if err := p.expect(','); err != nil {
				return nil, err
			}
		}
		first = false
		v, err := parseValue(p, elemType)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

func parseQuotedString(p *parser) (string, *errs.Error) {
	if err := p.expect('"'); err != nil {
		return "", err
	}
	var b strings.Builder
	for {
		if p.atEnd() {
			return "", errs.New(errs.FormatError, "east: unexpected end of input in string literal")
		}
		r := p.data[p.pos]
		if r == '"' {
			p.pos++
			return b.String(), nil
		}
		if r != '\\' {
			b.WriteRune(r)
			p.pos++
			continue
		}
		p.pos++
		if p.atEnd() {
			return "", errs.New(errs.FormatError, "east: unexpected end of input in string escape")
		}
		esc := p.data[p.pos]
		p.pos++
		switch esc {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case 'u':
			if err := p.expect('{'); err != nil {
				return "", err
			}
			start := p.pos
			for !p.atEnd() && p.data[p.pos] != '}' {
				p.pos++
			}
			if p.atEnd() {
				return "", errs.New(errs.FormatError, "east: unterminated \\u{...} escape")
			}
			hexDigits := string(p.data[start:p.pos])
			p.pos++ // consume '}'
			code, err := strconv.ParseInt(hexDigits, 16, 32)
			if err != nil {
				return "", errs.New(errs.FormatError, "east: malformed \\u{...} escape %q: %v", hexDigits, err)
			}
			b.WriteRune(rune(code))
		default:
			return "", errs.New(errs.FormatError, "east: unknown string escape '\\%c'", esc)
		}
	}
}
