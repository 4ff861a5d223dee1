package ir

import (
	"strings"

	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/types"
)

// Call invokes a function value produced by Callee with Args bound
// left-to-right to the callee's parameter names (§3.3, §4.3.3).
type Call struct {
	base
	Callee Expr
	Args   []Expr
}

func NewCall(loc errs.Location, resultType *types.Type, callee Expr, args ...Expr) *Call {
	return &Call{base{Loc: loc, Typ: resultType}, callee, args}
}

func (n *Call) String() string { return n.Callee.String() + argList(n.Args) }

// CallBuiltin dispatches to a registered, pure built-in by Name (§3.3,
// §4.3.4); built-ins never suspend.
type CallBuiltin struct {
	base
	Name string
	Args []Expr
}

func NewCallBuiltin(loc errs.Location, resultType *types.Type, name string, args ...Expr) *CallBuiltin {
	return &CallBuiltin{base{Loc: loc, Typ: resultType}, name, args}
}

func (n *CallBuiltin) String() string { return n.Name + argList(n.Args) }

// CallPlatform dispatches to a registered host callback by Name (§3.3,
// §4.3.5). The callback runs synchronously to completion, whatever the
// registered entry's async flag.
type CallPlatform struct {
	base
	Name string
	Args []Expr
}

func NewCallPlatform(loc errs.Location, resultType *types.Type, name string, args ...Expr) *CallPlatform {
	return &CallPlatform{base{Loc: loc, Typ: resultType}, name, args}
}

func (n *CallPlatform) String() string { return "platform:" + n.Name + argList(n.Args) }

func argList(args []Expr) string {
	var b strings.Builder
	b.WriteString("(")
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteString(")")
	return b.String()
}
