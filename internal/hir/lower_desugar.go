package hir

import (
	"github.com/xuyisen-x/oxidice/internal/ast"
	"github.com/xuyisen-x/oxidice/internal/token"
)

// rpdiceRewriter performs the "rpdice(e)" structural AST rewrite required
// by spec.md §4.2: every dice node inside e has its count doubled, and
// the rpdice call itself disappears (it does not evaluate). Grounded on
// the same arena-rebuild idiom the teacher uses for AST-to-AST desugaring
// passes ahead of typing.
type rpdiceRewriter struct {
	tree *ast.Tree
}

// desugarRPDice rewrites every rpdice(...) call reachable from tree.Root,
// replacing tree.Root if the rewrite touches it. Run before lowering so
// the typer never sees an rpdice call with a valid single argument.
func desugarRPDice(tree *ast.Tree) {
	tree.Root = (&rpdiceRewriter{tree: tree}).rewrite(tree.Root, false)
}

// rewrite returns an ExprID equivalent to id. When double is true, every
// dice node's count is doubled (spec.md §4.2's "(c*2) d f" rewrite). A
// nested rpdice(...) call always starts its own doubled region regardless
// of the ambient double state.
func (r *rpdiceRewriter) rewrite(id ast.ExprID, double bool) ast.ExprID {
	e := r.tree.Get(id)
	if e == nil {
		return id
	}
	switch e.Kind {
	case ast.EInt, ast.EFloat:
		return id

	case ast.EList:
		elems, changed := r.rewriteList(e.Elems, double)
		if !changed && !double {
			return id
		}
		ne := *e
		ne.Elems = elems
		return r.tree.New(ne)

	case ast.ECall:
		if e.Name == "rpdice" && len(e.Args) == 1 {
			// rpdice never itself evaluates; it is replaced entirely by
			// its (doubled) argument.
			return r.rewrite(e.Args[0], true)
		}
		args, changed := r.rewriteList(e.Args, double)
		if !changed && !double {
			return id
		}
		ne := *e
		ne.Args = args
		return r.tree.New(ne)

	case ast.EFilterCall:
		args, changed := r.rewriteList(e.Args, double)
		operand := r.rewrite(e.FilterCmp.Operand, double)
		if operand != e.FilterCmp.Operand {
			changed = true
		}
		if !changed && !double {
			return id
		}
		ne := *e
		ne.Args = args
		ne.FilterCmp.Operand = operand
		return r.tree.New(ne)

	case ast.EDice:
		count := e.Count
		if double {
			base := count
			if base.IsValid() {
				base = r.rewrite(base, false)
			} else {
				base = r.tree.New(ast.Expr{Kind: ast.EInt, IntVal: 1, Span: e.Span})
			}
			two := r.tree.New(ast.Expr{Kind: ast.EInt, IntVal: 2, Span: e.Span})
			count = r.tree.New(ast.Expr{Kind: ast.EBinary, BinOp: token.Star, LHS: base, RHS: two, Span: e.Span})
		} else if count.IsValid() {
			count = r.rewrite(count, false)
		}
		faceExpr := e.FaceExpr
		if e.Face == ast.FaceConcrete {
			faceExpr = r.rewrite(faceExpr, false)
		}
		if !double && count == e.Count && faceExpr == e.FaceExpr {
			return id
		}
		ne := *e
		ne.Count = count
		ne.FaceExpr = faceExpr
		return r.tree.New(ne)

	case ast.EModified:
		base := r.rewrite(e.Base, double)
		mod := e.Mod
		mod.N = r.rewrite(mod.N, false)
		mod.X = r.rewrite(mod.X, false)
		mod.Cmp.Operand = r.rewrite(mod.Cmp.Operand, false)
		mod.Limit.LT = r.rewrite(mod.Limit.LT, false)
		mod.Limit.LC = r.rewrite(mod.Limit.LC, false)
		if base == e.Base && mod == e.Mod {
			return id
		}
		ne := *e
		ne.Base = base
		ne.Mod = mod
		return r.tree.New(ne)

	case ast.EUnary:
		operand := r.rewrite(e.Operand, double)
		if operand == e.Operand {
			return id
		}
		ne := *e
		ne.Operand = operand
		return r.tree.New(ne)

	case ast.EBinary:
		lhs := r.rewrite(e.LHS, double)
		rhs := r.rewrite(e.RHS, double)
		if lhs == e.LHS && rhs == e.RHS {
			return id
		}
		ne := *e
		ne.LHS = lhs
		ne.RHS = rhs
		return r.tree.New(ne)

	default:
		return id
	}
}

func (r *rpdiceRewriter) rewriteList(ids []ast.ExprID, double bool) ([]ast.ExprID, bool) {
	if len(ids) == 0 {
		return ids, false
	}
	out := make([]ast.ExprID, len(ids))
	changed := false
	for i, id := range ids {
		out[i] = r.rewrite(id, double)
		if out[i] != id {
			changed = true
		}
	}
	return out, changed
}

// evalConstInt attempts to fold id to a compile-time integer constant
// using only literals and pure arithmetic (no dice, no calls), for the
// "lst ** n" repeat-count check (spec.md §3, §4.2). Division/modulo by a
// folded zero fails the fold rather than panicking; the caller reports
// DesugarError either way since a non-positive n is also rejected.
func evalConstInt(tree *ast.Tree, id ast.ExprID) (int64, bool) {
	e := tree.Get(id)
	if e == nil {
		return 0, false
	}
	switch e.Kind {
	case ast.EInt:
		return e.IntVal, true
	case ast.EFloat:
		return int64(e.FloatVal), true
	case ast.EUnary:
		v, ok := evalConstInt(tree, e.Operand)
		if !ok {
			return 0, false
		}
		if e.UnaryOp == token.Minus {
			return -v, true
		}
		return v, true
	case ast.EBinary:
		l, ok := evalConstInt(tree, e.LHS)
		if !ok {
			return 0, false
		}
		r, ok := evalConstInt(tree, e.RHS)
		if !ok {
			return 0, false
		}
		switch e.BinOp {
		case token.Plus:
			return l + r, true
		case token.Minus:
			return l - r, true
		case token.Star:
			return l * r, true
		case token.Slash, token.SlashSlash:
			if r == 0 {
				return 0, false
			}
			return l / r, true
		case token.Percent:
			if r == 0 {
				return 0, false
			}
			return l % r, true
		default:
			return 0, false
		}
	default:
		return 0, false
	}
}
