package ir

import (
	"strings"

	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/types"
)

// Param is one declared parameter of a Function or AsyncFunction node.
type Param struct {
	Name string
	Type *types.Type
}

// Function is a synchronous function node: an optional Name (anonymous
// when empty), Params, a Body expression, and a ReturnType (§3.3). A
// runnable program's IR top level is a Function or AsyncFunction node
// (§3.3); the runner extracts Body for compilation. A Function body must
// not contain Await — that is enforced at compile time (§4.3.3), not
// here, since it requires a tree walk over Body.
type Function struct {
	base
	Name       string
	Params     []Param
	Body       Expr
	ReturnType *types.Type
}

func NewFunction(loc errs.Location, name string, params []Param, body Expr, returnType *types.Type) *Function {
	paramTypes := make([]*types.Type, len(params))
	for i, p := range params {
		paramTypes[i] = p.Type
	}
	return &Function{
		base:       base{Loc: loc, Typ: types.NewFunction(returnType, paramTypes...)},
		Name:       name,
		Params:     params,
		Body:       body,
		ReturnType: returnType,
	}
}

func (n *Function) String() string { return "function " + n.Name + paramList(n.Params) }

// AsyncFunction is Function's async counterpart: its Body may contain
// Await expressions, and its declared type is an AsyncFunction, not a
// Function (§3.3, §5).
type AsyncFunction struct {
	base
	Name       string
	Params     []Param
	Body       Expr
	ReturnType *types.Type
}

func NewAsyncFunction(loc errs.Location, name string, params []Param, body Expr, returnType *types.Type) *AsyncFunction {
	paramTypes := make([]*types.Type, len(params))
	for i, p := range params {
		paramTypes[i] = p.Type
	}
	return &AsyncFunction{
		base:       base{Loc: loc, Typ: types.NewAsyncFunction(returnType, paramTypes...)},
		Name:       name,
		Params:     params,
		Body:       body,
		ReturnType: returnType,
	}
}

func (n *AsyncFunction) String() string { return "async function " + n.Name + paramList(n.Params) }

func paramList(params []Param) string {
	var b strings.Builder
	b.WriteString("(")
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
	}
	b.WriteString(")")
	return b.String()
}
