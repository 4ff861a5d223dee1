package ir

import (
	"strings"

	"github.com/elaraai/east-go/internal/errs"
)

// If evaluates Cond (must be Boolean) and evaluates only the chosen
// branch (§3.3, §4.3.3).
type If struct {
	base
	Cond Expr
	Then Expr
	Else Expr
}

func NewIf(loc errs.Location, cond, then, els Expr) *If {
	return &If{base{Loc: loc, Typ: then.ExprType()}, cond, then, els}
}

func (n *If) String() string {
	return "if " + n.Cond.String() + " then " + n.Then.String() + " else " + n.Else.String()
}

// MatchCase is one arm of a Match node: the variant case it matches, the
// name its payload is bound to (ignored if the case carries none), and
// the body to evaluate when selected.
type MatchCase struct {
	CaseName string
	BindName string
	Body     Expr
}

// Match evaluates Scrutinee (must be a Variant), selects the MatchCase
// whose CaseName equals the active case, binds its payload to BindName,
// and evaluates that case's Body. No matching case is a nonExhaustive
// error (§3.3, §4.3.3).
type Match struct {
	base
	Scrutinee Expr
	Cases     []MatchCase
}

func NewMatch(loc errs.Location, scrutinee Expr, cases ...MatchCase) *Match {
	m := &Match{Scrutinee: scrutinee, Cases: cases}
	m.Loc = loc
	if len(cases) > 0 {
		m.Typ = cases[0].Body.ExprType()
	}
	return m
}

func (n *Match) String() string {
	var b strings.Builder
	b.WriteString("match ")
	b.WriteString(n.Scrutinee.String())
	b.WriteString(" { ")
	for i, c := range n.Cases {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.CaseName)
		if c.BindName != "" {
			b.WriteString("(")
			b.WriteString(c.BindName)
			b.WriteString(")")
		}
		b.WriteString(": ")
		b.WriteString(c.Body.String())
	}
	b.WriteString(" }")
	return b.String()
}

// Block sequences Stmts and evaluates to the last one's value, the
// "sequence / block" form of §3.3. An empty Block evaluates to Null.
type Block struct {
	base
	Stmts []Expr
}

func NewBlock(loc errs.Location, stmts ...Expr) *Block {
	b := &Block{Stmts: stmts}
	b.Loc = loc
	if len(stmts) > 0 {
		b.Typ = stmts[len(stmts)-1].ExprType()
	}
	return b
}

func (n *Block) String() string {
	var b strings.Builder
	b.WriteString("{ ")
	for i, s := range n.Stmts {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(s.String())
	}
	b.WriteString(" }")
	return b.String()
}

// Return unwinds to the nearest enclosing function frame with Value
// (§3.3, §4.3.3).
type Return struct {
	base
	Value Expr
}

func NewReturn(loc errs.Location, value Expr) *Return {
	return &Return{base{Loc: loc, Typ: value.ExprType()}, value}
}

func (n *Return) String() string { return "return " + n.Value.String() }

// Await evaluates Value (itself typically a platform or async call result)
// to completion and yields its result; the evaluator does not suspend at
// it. Only valid within an AsyncFunction body (§3.3, §5).
type Await struct {
	base
	Value Expr
}

func NewAwait(loc errs.Location, value Expr) *Await {
	return &Await{base{Loc: loc, Typ: value.ExprType()}, value}
}

func (n *Await) String() string { return "await " + n.Value.String() }
