package ir

import (
	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/types"
	"github.com/elaraai/east-go/internal/values"
)

// NodeType returns the Variant type a program's IR tree is encoded as when
// it travels through the value-level loader API (§6: loadIR/irFromValue):
// one case per concrete node kind (named after its Go type), holding a
// Struct of that kind's own fields. Sub-expressions, parameter lists, and
// match/dict/struct entries are encoded recursively using this same type,
// so a whole Function/AsyncFunction program is a single NodeType value.
//
// Type annotations (a node's declared ExprType, a Param's Type, and so on)
// are carried as their canonical printed form (types.Type.String) and
// reconstructed with types.Parse — the same round-trip the canonical
// printer's own tests rely on, reused here rather than inventing a second
// type encoding. Source locations are not carried; a decoded tree's nodes
// all report a zero Location.
func NodeType() *types.Type {
	node := types.NewRecursive()
	str := types.String
	nodeArr := types.NewArray(node)

	boolLit := types.NewStruct(types.Field{Name: "Value", Type: types.Boolean})
	intLit := types.NewStruct(types.Field{Name: "Value", Type: types.Integer})
	floatLit := types.NewStruct(types.Field{Name: "Value", Type: types.Float})
	strLit := types.NewStruct(types.Field{Name: "Value", Type: str})
	blobLit := types.NewStruct(types.Field{Name: "Value", Type: types.Blob})

	arrayLit := types.NewStruct(types.Field{Name: "ElemType", Type: str}, types.Field{Name: "Elems", Type: nodeArr})
	setLit := types.NewStruct(types.Field{Name: "ElemType", Type: str}, types.Field{Name: "Elems", Type: nodeArr})

	dictEntryType := types.NewStruct(types.Field{Name: "Key", Type: node}, types.Field{Name: "Value", Type: node})
	dictLit := types.NewStruct(
		types.Field{Name: "KeyType", Type: str},
		types.Field{Name: "ValType", Type: str},
		types.Field{Name: "Entries", Type: types.NewArray(dictEntryType)},
	)

	structFieldType := types.NewStruct(types.Field{Name: "Name", Type: str}, types.Field{Name: "Value", Type: node})
	structLit := types.NewStruct(
		types.Field{Name: "StructType", Type: str},
		types.Field{Name: "Fields", Type: types.NewArray(structFieldType)},
	)

	variantLit := types.NewStruct(
		types.Field{Name: "VariantType", Type: str},
		types.Field{Name: "CaseName", Type: str},
		types.Field{Name: "HasPayload", Type: types.Boolean},
		types.Field{Name: "Payload", Type: node},
	)

	varNode := types.NewStruct(types.Field{Name: "Type", Type: str}, types.Field{Name: "Name", Type: str})
	letNode := types.NewStruct(
		types.Field{Name: "Name", Type: str},
		types.Field{Name: "Value", Type: node},
		types.Field{Name: "Body", Type: node},
	)

	callNode := types.NewStruct(
		types.Field{Name: "Type", Type: str},
		types.Field{Name: "Callee", Type: node},
		types.Field{Name: "Args", Type: nodeArr},
	)
	callBuiltin := types.NewStruct(
		types.Field{Name: "Type", Type: str},
		types.Field{Name: "Name", Type: str},
		types.Field{Name: "Args", Type: nodeArr},
	)
	callPlatform := types.NewStruct(
		types.Field{Name: "Type", Type: str},
		types.Field{Name: "Name", Type: str},
		types.Field{Name: "Args", Type: nodeArr},
	)

	ifNode := types.NewStruct(
		types.Field{Name: "Cond", Type: node},
		types.Field{Name: "Then", Type: node},
		types.Field{Name: "Else", Type: node},
	)
	matchCaseType := types.NewStruct(
		types.Field{Name: "CaseName", Type: str},
		types.Field{Name: "BindName", Type: str},
		types.Field{Name: "Body", Type: node},
	)
	matchNode := types.NewStruct(
		types.Field{Name: "Scrutinee", Type: node},
		types.Field{Name: "Cases", Type: types.NewArray(matchCaseType)},
	)
	blockNode := types.NewStruct(types.Field{Name: "Stmts", Type: nodeArr})
	returnNode := types.NewStruct(types.Field{Name: "Value", Type: node})
	awaitNode := types.NewStruct(types.Field{Name: "Value", Type: node})

	paramType := types.NewStruct(types.Field{Name: "Name", Type: str}, types.Field{Name: "Type", Type: str})
	fnFields := []types.Field{
		{Name: "Name", Type: str},
		{Name: "Params", Type: types.NewArray(paramType)},
		{Name: "Body", Type: node},
		{Name: "ReturnType", Type: str},
	}
	functionNode := types.NewStruct(fnFields...)
	asyncFunctionNode := types.NewStruct(fnFields...)

	return node.Bind(types.NewVariant(
		types.Case{Name: "NullLit", Type: types.Null},
		types.Case{Name: "BoolLit", Type: boolLit},
		types.Case{Name: "IntLit", Type: intLit},
		types.Case{Name: "FloatLit", Type: floatLit},
		types.Case{Name: "StrLit", Type: strLit},
		types.Case{Name: "BlobLit", Type: blobLit},
		types.Case{Name: "ArrayLit", Type: arrayLit},
		types.Case{Name: "SetLit", Type: setLit},
		types.Case{Name: "DictLit", Type: dictLit},
		types.Case{Name: "StructLit", Type: structLit},
		types.Case{Name: "VariantLit", Type: variantLit},
		types.Case{Name: "Var", Type: varNode},
		types.Case{Name: "Let", Type: letNode},
		types.Case{Name: "Call", Type: callNode},
		types.Case{Name: "CallBuiltin", Type: callBuiltin},
		types.Case{Name: "CallPlatform", Type: callPlatform},
		types.Case{Name: "If", Type: ifNode},
		types.Case{Name: "Match", Type: matchNode},
		types.Case{Name: "Block", Type: blockNode},
		types.Case{Name: "Return", Type: returnNode},
		types.Case{Name: "Await", Type: awaitNode},
		types.Case{Name: "Function", Type: functionNode},
		types.Case{Name: "AsyncFunction", Type: asyncFunctionNode},
	))
}

func parseType(s string) (*types.Type, *errs.Error) {
	t, err := types.Parse(s)
	if err != nil {
		return nil, errs.New(errs.FormatError, "ir: invalid type annotation %q: %s", s, err)
	}
	return t, nil
}

func field(s *values.Struct, name string) (values.Value, *errs.Error) {
	v, ok := s.Field(name)
	if !ok {
		return nil, errs.New(errs.FormatError, "ir: missing field %q", name)
	}
	return v, nil
}

func fieldStr(s *values.Struct, name string) (string, *errs.Error) {
	v, err := field(s, name)
	if err != nil {
		return "", err
	}
	str, ok := v.(values.Str)
	if !ok {
		return "", errs.New(errs.FormatError, "ir: field %q: expected String, got %T", name, v)
	}
	return string(str), nil
}

func fieldBool(s *values.Struct, name string) (bool, *errs.Error) {
	v, err := field(s, name)
	if err != nil {
		return false, err
	}
	b, ok := v.(values.Bool)
	if !ok {
		return false, errs.New(errs.FormatError, "ir: field %q: expected Boolean, got %T", name, v)
	}
	return bool(b), nil
}

func fieldNode(s *values.Struct, name string) (Expr, *errs.Error) {
	v, err := field(s, name)
	if err != nil {
		return nil, err
	}
	n, err := fromValue(v)
	if err != nil {
		return nil, err
	}
	expr, ok := n.(Expr)
	if !ok {
		return nil, errs.New(errs.FormatError, "ir: field %q: node kind %T is not an expression", name, n)
	}
	return expr, nil
}

func fieldNodeArr(s *values.Struct, name string) ([]Expr, *errs.Error) {
	v, err := field(s, name)
	if err != nil {
		return nil, err
	}
	arr, ok := v.(*values.Array)
	if !ok {
		return nil, errs.New(errs.FormatError, "ir: field %q: expected Array, got %T", name, v)
	}
	out := make([]Expr, len(arr.Items()))
	for i, item := range arr.Items() {
		n, err := fromValue(item)
		if err != nil {
			return nil, err
		}
		expr, ok := n.(Expr)
		if !ok {
			return nil, errs.New(errs.FormatError, "ir: field %q[%d]: node kind %T is not an expression", name, i, n)
		}
		out[i] = expr
	}
	return out, nil
}

// FromValue decodes a Node tree out of v, which must be shaped as
// NodeType() describes (§6's irFromValue). v is typically the result of
// decode(bytes, NodeType(), format) for one of the four wire formats.
func FromValue(v values.Value) (Node, *errs.Error) {
	return fromValue(v)
}

func fromValue(v values.Value) (Node, *errs.Error) {
	variant, ok := v.(*values.Variant)
	if !ok {
		return nil, errs.New(errs.FormatError, "ir: expected a Variant node value, got %T", v)
	}

	loc := errs.Location{}
	kind := variant.Case()

	if kind == "NullLit" {
		return NewNullLit(loc), nil
	}

	payload, ok := variant.Payload().(*values.Struct)
	if !ok {
		return nil, errs.New(errs.FormatError, "ir: node case %q: expected a Struct payload, got %T", kind, variant.Payload())
	}

	switch kind {
	case "BoolLit":
		b, err := fieldBool(payload, "Value")
		if err != nil {
			return nil, err
		}
		return NewBoolLit(loc, b), nil
	case "IntLit":
		v, err := field(payload, "Value")
		if err != nil {
			return nil, err
		}
		i, ok := v.(values.Int)
		if !ok {
			return nil, errs.New(errs.FormatError, "ir: IntLit.Value: expected Integer, got %T", v)
		}
		return NewIntLit(loc, int64(i)), nil
	case "FloatLit":
		v, err := field(payload, "Value")
		if err != nil {
			return nil, err
		}
		f, ok := v.(values.Float)
		if !ok {
			return nil, errs.New(errs.FormatError, "ir: FloatLit.Value: expected Float, got %T", v)
		}
		return NewFloatLit(loc, float64(f)), nil
	case "StrLit":
		s, err := fieldStr(payload, "Value")
		if err != nil {
			return nil, err
		}
		return NewStrLit(loc, s), nil
	case "BlobLit":
		v, err := field(payload, "Value")
		if err != nil {
			return nil, err
		}
		b, ok := v.(values.Blob)
		if !ok {
			return nil, errs.New(errs.FormatError, "ir: BlobLit.Value: expected Blob, got %T", v)
		}
		return NewBlobLit(loc, []byte(b)), nil

	case "ArrayLit", "SetLit":
		elemTypeStr, err := fieldStr(payload, "ElemType")
		if err != nil {
			return nil, err
		}
		elemType, err := parseType(elemTypeStr)
		if err != nil {
			return nil, err
		}
		elems, err := fieldNodeArr(payload, "Elems")
		if err != nil {
			return nil, err
		}
		if kind == "ArrayLit" {
			return NewArrayLit(loc, elemType, elems...), nil
		}
		return NewSetLit(loc, elemType, elems...), nil

	case "DictLit":
		keyTypeStr, err := fieldStr(payload, "KeyType")
		if err != nil {
			return nil, err
		}
		valTypeStr, err := fieldStr(payload, "ValType")
		if err != nil {
			return nil, err
		}
		keyType, err := parseType(keyTypeStr)
		if err != nil {
			return nil, err
		}
		valType, err := parseType(valTypeStr)
		if err != nil {
			return nil, err
		}
		entriesVal, err := field(payload, "Entries")
		if err != nil {
			return nil, err
		}
		entriesArr, ok := entriesVal.(*values.Array)
		if !ok {
			return nil, errs.New(errs.FormatError, "ir: DictLit.Entries: expected Array, got %T", entriesVal)
		}
		entries := make([]DictEntry, len(entriesArr.Items()))
		for i, item := range entriesArr.Items() {
			es, ok := item.(*values.Struct)
			if !ok {
				return nil, errs.New(errs.FormatError, "ir: DictLit.Entries[%d]: expected Struct, got %T", i, item)
			}
			k, err := fieldNode(es, "Key")
			if err != nil {
				return nil, err
			}
			val, err := fieldNode(es, "Value")
			if err != nil {
				return nil, err
			}
			entries[i] = DictEntry{Key: k, Value: val}
		}
		return NewDictLit(loc, keyType, valType, entries...), nil

	case "StructLit":
		structTypeStr, err := fieldStr(payload, "StructType")
		if err != nil {
			return nil, err
		}
		structType, err := parseType(structTypeStr)
		if err != nil {
			return nil, err
		}
		fieldsVal, err := field(payload, "Fields")
		if err != nil {
			return nil, err
		}
		fieldsArr, ok := fieldsVal.(*values.Array)
		if !ok {
			return nil, errs.New(errs.FormatError, "ir: StructLit.Fields: expected Array, got %T", fieldsVal)
		}
		inits := make([]StructFieldInit, len(fieldsArr.Items()))
		for i, item := range fieldsArr.Items() {
			fs, ok := item.(*values.Struct)
			if !ok {
				return nil, errs.New(errs.FormatError, "ir: StructLit.Fields[%d]: expected Struct, got %T", i, item)
			}
			name, err := fieldStr(fs, "Name")
			if err != nil {
				return nil, err
			}
			val, err := fieldNode(fs, "Value")
			if err != nil {
				return nil, err
			}
			inits[i] = StructFieldInit{Name: name, Value: val}
		}
		return NewStructLit(loc, structType, inits...), nil

	case "VariantLit":
		variantTypeStr, err := fieldStr(payload, "VariantType")
		if err != nil {
			return nil, err
		}
		variantType, err := parseType(variantTypeStr)
		if err != nil {
			return nil, err
		}
		caseName, err := fieldStr(payload, "CaseName")
		if err != nil {
			return nil, err
		}
		hasPayload, err := fieldBool(payload, "HasPayload")
		if err != nil {
			return nil, err
		}
		var payloadExpr Expr
		if hasPayload {
			payloadExpr, err = fieldNode(payload, "Payload")
			if err != nil {
				return nil, err
			}
		}
		return NewVariantLit(loc, variantType, caseName, payloadExpr), nil

	case "Var":
		typeStr, err := fieldStr(payload, "Type")
		if err != nil {
			return nil, err
		}
		resultType, err := parseType(typeStr)
		if err != nil {
			return nil, err
		}
		name, err := fieldStr(payload, "Name")
		if err != nil {
			return nil, err
		}
		return NewVar(loc, resultType, name), nil

	case "Let":
		name, err := fieldStr(payload, "Name")
		if err != nil {
			return nil, err
		}
		val, err := fieldNode(payload, "Value")
		if err != nil {
			return nil, err
		}
		body, err := fieldNode(payload, "Body")
		if err != nil {
			return nil, err
		}
		return NewLet(loc, name, val, body), nil

	case "Call":
		typeStr, err := fieldStr(payload, "Type")
		if err != nil {
			return nil, err
		}
		resultType, err := parseType(typeStr)
		if err != nil {
			return nil, err
		}
		callee, err := fieldNode(payload, "Callee")
		if err != nil {
			return nil, err
		}
		args, err := fieldNodeArr(payload, "Args")
		if err != nil {
			return nil, err
		}
		return NewCall(loc, resultType, callee, args...), nil

	case "CallBuiltin", "CallPlatform":
		typeStr, err := fieldStr(payload, "Type")
		if err != nil {
			return nil, err
		}
		resultType, err := parseType(typeStr)
		if err != nil {
			return nil, err
		}
		name, err := fieldStr(payload, "Name")
		if err != nil {
			return nil, err
		}
		args, err := fieldNodeArr(payload, "Args")
		if err != nil {
			return nil, err
		}
		if kind == "CallBuiltin" {
			return NewCallBuiltin(loc, resultType, name, args...), nil
		}
		return NewCallPlatform(loc, resultType, name, args...), nil

	case "If":
		cond, err := fieldNode(payload, "Cond")
		if err != nil {
			return nil, err
		}
		then, err := fieldNode(payload, "Then")
		if err != nil {
			return nil, err
		}
		els, err := fieldNode(payload, "Else")
		if err != nil {
			return nil, err
		}
		return NewIf(loc, cond, then, els), nil

	case "Match":
		scrutinee, err := fieldNode(payload, "Scrutinee")
		if err != nil {
			return nil, err
		}
		casesVal, err := field(payload, "Cases")
		if err != nil {
			return nil, err
		}
		casesArr, ok := casesVal.(*values.Array)
		if !ok {
			return nil, errs.New(errs.FormatError, "ir: Match.Cases: expected Array, got %T", casesVal)
		}
		cases := make([]MatchCase, len(casesArr.Items()))
		for i, item := range casesArr.Items() {
			cs, ok := item.(*values.Struct)
			if !ok {
				return nil, errs.New(errs.FormatError, "ir: Match.Cases[%d]: expected Struct, got %T", i, item)
			}
			caseName, err := fieldStr(cs, "CaseName")
			if err != nil {
				return nil, err
			}
			bindName, err := fieldStr(cs, "BindName")
			if err != nil {
				return nil, err
			}
			body, err := fieldNode(cs, "Body")
			if err != nil {
				return nil, err
			}
			cases[i] = MatchCase{CaseName: caseName, BindName: bindName, Body: body}
		}
		return NewMatch(loc, scrutinee, cases...), nil

	case "Block":
		stmts, err := fieldNodeArr(payload, "Stmts")
		if err != nil {
			return nil, err
		}
		return NewBlock(loc, stmts...), nil

	case "Return":
		val, err := fieldNode(payload, "Value")
		if err != nil {
			return nil, err
		}
		return NewReturn(loc, val), nil

	case "Await":
		val, err := fieldNode(payload, "Value")
		if err != nil {
			return nil, err
		}
		return NewAwait(loc, val), nil

	case "Function", "AsyncFunction":
		name, err := fieldStr(payload, "Name")
		if err != nil {
			return nil, err
		}
		paramsVal, err := field(payload, "Params")
		if err != nil {
			return nil, err
		}
		paramsArr, ok := paramsVal.(*values.Array)
		if !ok {
			return nil, errs.New(errs.FormatError, "ir: %s.Params: expected Array, got %T", kind, paramsVal)
		}
		params := make([]Param, len(paramsArr.Items()))
		for i, item := range paramsArr.Items() {
			ps, ok := item.(*values.Struct)
			if !ok {
				return nil, errs.New(errs.FormatError, "ir: %s.Params[%d]: expected Struct, got %T", kind, i, item)
			}
			pname, err := fieldStr(ps, "Name")
			if err != nil {
				return nil, err
			}
			ptypeStr, err := fieldStr(ps, "Type")
			if err != nil {
				return nil, err
			}
			ptype, err := parseType(ptypeStr)
			if err != nil {
				return nil, err
			}
			params[i] = Param{Name: pname, Type: ptype}
		}
		body, err := fieldNode(payload, "Body")
		if err != nil {
			return nil, err
		}
		returnTypeStr, err := fieldStr(payload, "ReturnType")
		if err != nil {
			return nil, err
		}
		returnType, err := parseType(returnTypeStr)
		if err != nil {
			return nil, err
		}
		if kind == "Function" {
			return NewFunction(loc, name, params, body, returnType), nil
		}
		return NewAsyncFunction(loc, name, params, body, returnType), nil

	default:
		return nil, errs.New(errs.FormatError, "ir: unknown node case %q", kind)
	}
}
