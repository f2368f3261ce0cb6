package hir

import (
	"github.com/xuyisen-x/oxidice/internal/ast"
	"github.com/xuyisen-x/oxidice/internal/diag"
)

// lowerModified validates modifier applicability against the base
// operand's stamped Type (spec.md §4.2/§4.3) and stamps the result type:
// rank/clamp/reroll/explode/compound/sf stay DicePool; df/cs coerce to
// SuccessPool.
func (lo *lowerer) lowerModified(e *ast.Expr) NodeID {
	base := lo.lowerExpr(e.Base)
	baseType := lo.nodeType(base)

	mod := Modifier{Kind: e.Mod.Kind, Span: e.Mod.Span}
	mod.N = lo.lowerOptional(e.Mod.N)
	mod.X = lo.lowerOptional(e.Mod.X)
	mod.Cmp = lo.lowerCmpSpec(e.Mod.Cmp)
	mod.Limit = LimitSpec{
		LT: lo.lowerOptional(e.Mod.Limit.LT),
		LC: lo.lowerOptional(e.Mod.Limit.LC),
	}

	switch e.Mod.Kind {
	case ast.ModKH, ast.ModKL, ast.ModDH, ast.ModDL, ast.ModMin, ast.ModMax,
		ast.ModReroll, ast.ModExplode, ast.ModCompound, ast.ModSF:
		if baseType != TPool {
			return lo.errorf(diag.TypeModifierMisuse, e.Span,
				"'%s' requires a DicePool, got %s", e.Mod.Kind, baseType)
		}
		return lo.mod.New(Node{Kind: HModified, Type: TPool, Base: base, Mod: mod, Span: e.Span})

	case ast.ModDF, ast.ModCS:
		if baseType != TPool && baseType != TSuccessPool {
			return lo.errorf(diag.TypeModifierMisuse, e.Span,
				"'%s' requires a DicePool or SuccessPool, got %s", e.Mod.Kind, baseType)
		}
		return lo.mod.New(Node{Kind: HModified, Type: TSuccessPool, Base: base, Mod: mod, Span: e.Span})

	default:
		return lo.errorf(diag.TypeModifierMisuse, e.Span, "unrecognized modifier")
	}
}

func (lo *lowerer) lowerOptional(id ast.ExprID) NodeID {
	if !id.IsValid() {
		return NoNodeID
	}
	return lo.lowerExpr(id)
}

func (lo *lowerer) lowerCmpSpec(c ast.CmpSpec) CmpSpec {
	if c.Op == ast.CmpNone {
		return CmpSpec{Op: CmpNone, Operand: NoNodeID}
	}
	return CmpSpec{Op: c.Op, Operand: lo.lowerExpr(c.Operand)}
}
