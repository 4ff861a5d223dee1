package ir

// ContainsAwait reports whether node's subtree contains an Await
// expression without descending into a nested Function/AsyncFunction
// (a nested function's own Await-ness is checked independently when it
// is itself compiled). This backs the compile-time structuralError check
// for "a Function containing Await" (§4.3.3).
func ContainsAwait(node Expr) bool {
	if node == nil {
		return false
	}
	switch n := node.(type) {
	case *Await:
		return true
	case *Let:
		return ContainsAwait(n.Value) || ContainsAwait(n.Body)
	case *If:
		return ContainsAwait(n.Cond) || ContainsAwait(n.Then) || ContainsAwait(n.Else)
	case *Match:
		if ContainsAwait(n.Scrutinee) {
			return true
		}
		for _, c := range n.Cases {
			if ContainsAwait(c.Body) {
				return true
			}
		}
		return false
	case *Block:
		for _, s := range n.Stmts {
			if ContainsAwait(s) {
				return true
			}
		}
		return false
	case *Return:
		return ContainsAwait(n.Value)
	case *Call:
		if ContainsAwait(n.Callee) {
			return true
		}
		return anyContainsAwait(n.Args)
	case *CallBuiltin:
		return anyContainsAwait(n.Args)
	case *CallPlatform:
		return anyContainsAwait(n.Args)
	case *ArrayLit:
		return anyContainsAwait(n.Elems)
	case *SetLit:
		return anyContainsAwait(n.Elems)
	case *DictLit:
		for _, e := range n.Entries {
			if ContainsAwait(e.Key) || ContainsAwait(e.Value) {
				return true
			}
		}
		return false
	case *StructLit:
		for _, f := range n.Fields {
			if ContainsAwait(f.Value) {
				return true
			}
		}
		return false
	case *VariantLit:
		return ContainsAwait(n.Payload)
	// Function, AsyncFunction: a nested function literal's Await-ness is
	// checked when that function itself is compiled, not from outside.
	default:
		return false
	}
}

func anyContainsAwait(exprs []Expr) bool {
	for _, e := range exprs {
		if ContainsAwait(e) {
			return true
		}
	}
	return false
}
