// Package ir defines East's intermediate-representation node taxonomy
// (§3.3): expression nodes and function nodes, each carrying a Type
// annotation and optional source location. Node shapes follow the
// teacher's AST node conventions (internal/ast/ast.go: one concrete Go
// struct per node kind, a shared Node interface, position-carrying
// fields) generalized from DWScript's statement/expression grammar to
// East's smaller, typed IR vocabulary — there is no token literal here,
// since IR is loaded from a value tree (§6's loadIR/irFromValue), never
// lexed from source text.
package ir

import (
	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/types"
)

// Node is the base interface every IR node implements.
type Node interface {
	// Pos returns the node's source location, if the producer attached
	// one. A zero Location (all fields empty/zero) means "unknown".
	Pos() errs.Location
	// String returns a debug representation, not a serialization format.
	String() string
}

// Expr is any node that evaluates to a Value.
type Expr interface {
	Node
	// ExprType returns the node's declared result type.
	ExprType() *types.Type
	exprNode()
}

// base embeds common fields every concrete node carries, the way the
// teacher embeds a lexer.Token on every AST node for TokenLiteral/Pos.
type base struct {
	Loc errs.Location
	Typ *types.Type
}

func (b base) Pos() errs.Location     { return b.Loc }
func (b base) ExprType() *types.Type  { return b.Typ }
func (base) exprNode()                {}
