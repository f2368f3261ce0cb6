package optimize

import (
	"github.com/xuyisen-x/oxidice/internal/ast"
	"github.com/xuyisen-x/oxidice/internal/hir"
)

// mergeDice walks the subtree rooted at id, folding "a·d_f + b·d_f" into
// "(a+b)·d_f" wherever both dice operands carry no modifiers and an
// identical, statically comparable face spec (spec.md §4.4). The
// rewritten node keeps its original Type so the surrounding expression's
// typing is untouched — only its Kind changes, from a binary addition to
// a single dice source with a summed count. Returns whether anything
// changed.
func mergeDice(mod *hir.Module, id hir.NodeID) bool {
	n := mod.Get(id)
	if n == nil {
		return false
	}
	changed := false
	for _, child := range children(n) {
		if child.IsValid() && mergeDice(mod, child) {
			changed = true
		}
	}
	if n.Kind != hir.HBinary || n.BinOp != hir.BinAdd {
		return changed
	}
	lhs, rhs := mod.Get(n.LHS), mod.Get(n.RHS)
	if lhs == nil || rhs == nil || lhs.Kind != hir.HDice || rhs.Kind != hir.HDice {
		return changed
	}
	if !sameFace(mod, lhs, rhs) {
		return changed
	}
	count := mod.New(hir.Node{
		Kind: hir.HBinary, Type: hir.TNumber, BinOp: hir.BinAdd,
		LHS: diceCount(mod, lhs), RHS: diceCount(mod, rhs), Span: n.Span,
	})
	originalType := n.Type
	*n = hir.Node{
		Kind: hir.HDice, Type: originalType, Count: count,
		Face: lhs.Face, FaceExpr: lhs.FaceExpr, Span: n.Span,
	}
	return true
}

// diceCount returns d's count node, synthesizing a literal 1 for the
// default (omitted) count.
func diceCount(mod *hir.Module, d *hir.Node) hir.NodeID {
	if d.Count.IsValid() {
		return d.Count
	}
	return mod.New(hir.Node{Kind: hir.HInt, Type: hir.TNumber, IntVal: 1, Span: d.Span})
}

// sameFace reports whether a and b specify an identical face set,
// statically: the same face kind, and for concrete faces, the same
// literal value. A dynamic face expression (e.g. "1d(1d4+2)") can never
// be proven identical without evaluating it, so it is conservatively
// treated as different — refusing the merge, never merging incorrectly.
func sameFace(mod *hir.Module, a, b *hir.Node) bool {
	if a.Face != b.Face {
		return false
	}
	if a.Face != ast.FaceConcrete {
		return true
	}
	av, aok := literalInt(mod, a.FaceExpr)
	bv, bok := literalInt(mod, b.FaceExpr)
	return aok && bok && av == bv
}

func literalInt(mod *hir.Module, id hir.NodeID) (int64, bool) {
	n := mod.Get(id)
	if n == nil || n.Kind != hir.HInt {
		return 0, false
	}
	return n.IntVal, true
}
