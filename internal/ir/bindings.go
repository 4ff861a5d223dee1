package ir

import (
	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/types"
)

// Var is a variable reference node (§3.3): `env.get(Name)` at evaluation.
type Var struct {
	base
	Name string
}

func NewVar(loc errs.Location, resultType *types.Type, name string) *Var {
	return &Var{base{Loc: loc, Typ: resultType}, name}
}

func (n *Var) String() string { return n.Name }

// Let binds Name to the evaluated Value in a fresh scope, then evaluates
// Body in that scope (§3.3, §4.3.3).
type Let struct {
	base
	Name  string
	Value Expr
	Body  Expr
}

func NewLet(loc errs.Location, name string, value, body Expr) *Let {
	return &Let{base{Loc: loc, Typ: body.ExprType()}, name, value, body}
}

func (n *Let) String() string {
	return "let " + n.Name + " = " + n.Value.String() + " in " + n.Body.String()
}
