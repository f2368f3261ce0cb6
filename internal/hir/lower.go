package hir

import (
	"fmt"

	"github.com/xuyisen-x/oxidice/internal/ast"
	"github.com/xuyisen-x/oxidice/internal/diag"
	"github.com/xuyisen-x/oxidice/internal/source"
	"github.com/xuyisen-x/oxidice/internal/token"
)

// lowerer carries the per-call state for Lower, grounded on the teacher
// compiler's surge/internal/hir lowering pass shape (a single struct
// walking an AST arena into a parallel typed arena).
type lowerer struct {
	tree     *ast.Tree
	mod      *Module
	reporter diag.Reporter
	failed   bool
}

// Lower resolves function identifiers, validates modifier applicability,
// and stamps every node with exactly one Type (spec.md §4.2). It also
// desugars "rpdice(e)" before typing; "lst ** n" is lowered to an
// HRepeat node during typing. ok is false if any TypeError/DesugarError
// was reported.
func Lower(tree *ast.Tree, reporter diag.Reporter) (*Module, bool) {
	desugarRPDice(tree)
	lo := &lowerer{tree: tree, mod: NewModule(), reporter: reporter}
	root := lo.lowerExpr(tree.Root)
	lo.mod.Root = root
	return lo.mod, !lo.failed
}

func (lo *lowerer) errorf(code diag.Code, sp source.Span, format string, args ...any) NodeID {
	lo.failed = true
	diag.ReportError(lo.reporter, code, sp, fmt.Sprintf(format, args...)).Emit()
	return lo.mod.New(Node{Kind: HInvalid, Type: TInvalid, Span: sp})
}

func (lo *lowerer) nodeType(id NodeID) Type {
	n := lo.mod.Get(id)
	if n == nil {
		return TInvalid
	}
	return n.Type
}

func (lo *lowerer) lowerExpr(id ast.ExprID) NodeID {
	e := lo.tree.Get(id)
	if e == nil {
		return lo.errorf(diag.TypeMismatch, source.Span{}, "missing expression")
	}
	switch e.Kind {
	case ast.EInt:
		return lo.mod.New(Node{Kind: HInt, Type: TNumber, IntVal: e.IntVal, Span: e.Span})
	case ast.EFloat:
		return lo.mod.New(Node{Kind: HFloat, Type: TNumber, FloatVal: e.FloatVal, Span: e.Span})
	case ast.EList:
		return lo.lowerList(e)
	case ast.ECall:
		return lo.lowerCall(e)
	case ast.EFilterCall:
		return lo.lowerFilterCall(e)
	case ast.EDice:
		return lo.lowerDice(e)
	case ast.EModified:
		return lo.lowerModified(e)
	case ast.EUnary:
		return lo.lowerUnary(e)
	case ast.EBinary:
		return lo.lowerBinary(e)
	case ast.EInvalid:
		// Already reported by the parser; propagate quietly.
		lo.failed = true
		return lo.mod.New(Node{Kind: HInvalid, Type: TInvalid, Span: e.Span})
	default:
		return lo.errorf(diag.TypeMismatch, e.Span, "unrecognized expression")
	}
}

func (lo *lowerer) lowerList(e *ast.Expr) NodeID {
	elems := make([]NodeID, len(e.Elems))
	for i, el := range e.Elems {
		elems[i] = lo.lowerExpr(el)
		if lo.nodeType(elems[i]) == TList {
			lo.errorf(diag.TypeMismatch, e.Span, "lists cannot contain other lists")
		}
	}
	return lo.mod.New(Node{Kind: HList, Type: TList, Elems: elems, Span: e.Span})
}

func (lo *lowerer) lowerDice(e *ast.Expr) NodeID {
	var count NodeID = NoNodeID
	if e.Count.IsValid() {
		count = lo.lowerExpr(e.Count)
		if t := lo.nodeType(count); !t.CollapsesToNumber() {
			lo.errorf(diag.TypeMismatch, e.Span, "dice count must be Number-like, got %s", t)
		}
	}
	var faceExpr NodeID = NoNodeID
	if e.Face == ast.FaceConcrete {
		faceExpr = lo.lowerExpr(e.FaceExpr)
		if t := lo.nodeType(faceExpr); !t.CollapsesToNumber() {
			lo.errorf(diag.TypeMismatch, e.Span, "dice face must be Number-like, got %s", t)
		}
	}
	return lo.mod.New(Node{Kind: HDice, Type: TPool, Count: count, Face: e.Face, FaceExpr: faceExpr, Span: e.Span})
}

func (lo *lowerer) lowerUnary(e *ast.Expr) NodeID {
	operand := lo.lowerExpr(e.Operand)
	t := lo.nodeType(operand)
	var resultType Type
	switch {
	case t == TList:
		resultType = TList
	case t.CollapsesToNumber():
		resultType = TNumber
	default:
		lo.errorf(diag.TypeMismatch, e.Span, "unary operator requires a Number-like or List operand, got %s", t)
		resultType = TInvalid
	}
	op := UnaryMinus
	if e.UnaryOp == token.Plus {
		op = UnaryPlus
	}
	return lo.mod.New(Node{Kind: HUnary, Type: resultType, UnaryOp: op, Operand: operand, Span: e.Span})
}

func binOpFromToken(k token.Kind) BinOp {
	switch k {
	case token.Minus:
		return BinSub
	case token.Star:
		return BinMul
	case token.Slash:
		return BinDiv
	case token.SlashSlash:
		return BinFloorDiv
	case token.Percent:
		return BinMod
	default:
		return BinAdd
	}
}

func (lo *lowerer) lowerBinary(e *ast.Expr) NodeID {
	if e.BinOp == token.StarStar {
		return lo.lowerListRepeat(e)
	}
	lhs := lo.lowerExpr(e.LHS)
	rhs := lo.lowerExpr(e.RHS)
	lt, rt := lo.nodeType(lhs), lo.nodeType(rhs)
	var resultType Type
	switch {
	case lt == TList || rt == TList:
		resultType = TList
	case lt.CollapsesToNumber() && rt.CollapsesToNumber():
		resultType = TNumber
	default:
		lo.errorf(diag.TypeMismatch, e.Span, "operator requires Number-like or List operands, got %s and %s", lt, rt)
		resultType = TInvalid
	}
	return lo.mod.New(Node{Kind: HBinary, Type: resultType, BinOp: binOpFromToken(e.BinOp), LHS: lhs, RHS: rhs, Span: e.Span})
}

func (lo *lowerer) lowerListRepeat(e *ast.Expr) NodeID {
	lhs := lo.lowerExpr(e.LHS)
	if t := lo.nodeType(lhs); t != TList {
		lo.errorf(diag.TypeMismatch, e.Span, "'**' requires a List on the left, got %s", t)
	}
	n, ok := evalConstInt(lo.tree, e.RHS)
	if !ok || n <= 0 {
		lo.failed = true
		diag.ReportError(lo.reporter, diag.DesugarListRepeatNotConst, e.Span,
			"'**' repeat count must fold to a positive integer constant").Emit()
		return lo.mod.New(Node{Kind: HInvalid, Type: TInvalid, Span: e.Span})
	}
	return lo.mod.New(Node{Kind: HRepeat, Type: TList, RepeatList: lhs, RepeatN: int32(n), Span: e.Span})
}
