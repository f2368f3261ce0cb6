package hir

import (
	"github.com/xuyisen-x/oxidice/internal/ast"
	"github.com/xuyisen-x/oxidice/internal/diag"
)

// lowerCall resolves e.Name against the closed builtin set and applies
// the function-specific typing rules of spec.md §4.2.
func (lo *lowerer) lowerCall(e *ast.Expr) NodeID {
	b, ok := LookupBuiltin(e.Name)
	if !ok {
		return lo.errorf(diag.TypeUnknownFunction, e.NameSpan, "unknown function %q", e.Name)
	}
	args := make([]NodeID, len(e.Args))
	for i, a := range e.Args {
		args[i] = lo.lowerExpr(a)
	}
	switch b {
	case BFloor, BCeil, BRound, BAbs:
		return lo.lowerMathFn(e, b, args)
	case BMax, BMin:
		return lo.lowerMaxMin(e, b, args)
	case BSum, BAvg, BLen:
		return lo.lowerReduceFn(e, b, args)
	case BSort, BSortD:
		return lo.lowerSortFn(e, b, args)
	case BToList:
		return lo.lowerToList(e, args)
	case BRPDice:
		// A syntactically valid rpdice(arg) call was already rewritten
		// away by desugarRPDice before lowering ran (spec.md §4.2); one
		// reaching here has the wrong arity.
		return lo.errorf(diag.TypeArityMismatch, e.Span, "rpdice takes exactly 1 argument")
	default:
		return lo.errorf(diag.TypeUnknownFunction, e.NameSpan, "%q is not a callable function", e.Name)
	}
}

// lowerMathFn types floor/ceil/round/abs: one Number-like argument,
// Number result.
func (lo *lowerer) lowerMathFn(e *ast.Expr, b Builtin, args []NodeID) NodeID {
	if len(args) != 1 {
		return lo.errorf(diag.TypeArityMismatch, e.Span, "%s takes exactly 1 argument", b)
	}
	if t := lo.nodeType(args[0]); !t.CollapsesToNumber() {
		return lo.errorf(diag.TypeMismatch, e.Span, "%s requires a Number-like argument, got %s", b, t)
	}
	return lo.mod.New(Node{Kind: HCall, Type: TNumber, Builtin: b, Args: args, Span: e.Span})
}

// lowerMaxMin types max/min, which are overloaded (spec.md §4.2, §8
// scenario 4): max(list) reduces to Number; max(list, n) selects the top
// n elements and stays a List; max(a, b, c, ...) over scalar Number-like
// operands folds its varargs into one virtual list and reduces to Number.
func (lo *lowerer) lowerMaxMin(e *ast.Expr, b Builtin, args []NodeID) NodeID {
	if len(args) == 0 {
		return lo.errorf(diag.TypeArityMismatch, e.Span, "%s requires at least 1 argument", b)
	}
	if lo.nodeType(args[0]) == TList {
		switch len(args) {
		case 1:
			return lo.mod.New(Node{Kind: HCall, Type: TNumber, Builtin: b, Args: args, Span: e.Span})
		case 2:
			if t := lo.nodeType(args[1]); !t.CollapsesToNumber() {
				return lo.errorf(diag.TypeMismatch, e.Span, "%s(list, n) requires n to be Number-like, got %s", b, t)
			}
			return lo.mod.New(Node{Kind: HCall, Type: TList, Builtin: b, Args: args, Span: e.Span})
		default:
			return lo.errorf(diag.TypeArityMismatch, e.Span, "%s(list, n) takes 1 or 2 arguments", b)
		}
	}
	for _, a := range args {
		if t := lo.nodeType(a); !t.CollapsesToNumber() {
			return lo.errorf(diag.TypeMismatch, e.Span, "%s requires Number-like arguments, got %s", b, t)
		}
	}
	return lo.mod.New(Node{Kind: HCall, Type: TNumber, Builtin: b, Args: args, Span: e.Span})
}

// lowerReduceFn types sum/avg/len: a single List argument, or varargs
// folded into one, reducing to Number (empty folds to 0 at runtime).
func (lo *lowerer) lowerReduceFn(e *ast.Expr, b Builtin, args []NodeID) NodeID {
	if len(args) == 1 && lo.nodeType(args[0]) == TList {
		return lo.mod.New(Node{Kind: HCall, Type: TNumber, Builtin: b, Args: args, Span: e.Span})
	}
	for _, a := range args {
		if t := lo.nodeType(a); !t.CollapsesToNumber() {
			return lo.errorf(diag.TypeMismatch, e.Span, "%s requires Number-like arguments, got %s", b, t)
		}
	}
	return lo.mod.New(Node{Kind: HCall, Type: TNumber, Builtin: b, Args: args, Span: e.Span})
}

// lowerSortFn types sort/sortd: same list-or-varargs folding as
// lowerReduceFn, but the result stays a List.
func (lo *lowerer) lowerSortFn(e *ast.Expr, b Builtin, args []NodeID) NodeID {
	if len(args) == 1 && lo.nodeType(args[0]) == TList {
		return lo.mod.New(Node{Kind: HCall, Type: TList, Builtin: b, Args: args, Span: e.Span})
	}
	for _, a := range args {
		if t := lo.nodeType(a); !t.CollapsesToNumber() {
			return lo.errorf(diag.TypeMismatch, e.Span, "%s requires Number-like arguments, got %s", b, t)
		}
	}
	return lo.mod.New(Node{Kind: HCall, Type: TList, Builtin: b, Args: args, Span: e.Span})
}

// lowerToList types tolist: the only path from a Pool/SuccessPool to List
// (spec.md §3).
func (lo *lowerer) lowerToList(e *ast.Expr, args []NodeID) NodeID {
	if len(args) != 1 {
		return lo.errorf(diag.TypeArityMismatch, e.Span, "tolist takes exactly 1 argument")
	}
	t := lo.nodeType(args[0])
	if t != TPool && t != TSuccessPool {
		return lo.errorf(diag.TypeToListRequiresPool, e.Span, "tolist requires a DicePool or SuccessPool, got %s", t)
	}
	return lo.mod.New(Node{Kind: HCall, Type: TList, Builtin: BToList, Args: args, Span: e.Span})
}

// lowerFilterCall types the "filter<cmp><atom>(args)" special form: args
// fold into a list the same way as sum/sort, and the comparison operand
// must be Number-like.
func (lo *lowerer) lowerFilterCall(e *ast.Expr) NodeID {
	args := make([]NodeID, len(e.Args))
	for i, a := range e.Args {
		args[i] = lo.lowerExpr(a)
	}
	if !(len(args) == 1 && lo.nodeType(args[0]) == TList) {
		for _, a := range args {
			if t := lo.nodeType(a); !t.CollapsesToNumber() {
				lo.errorf(diag.TypeMismatch, e.Span, "filter requires Number-like arguments, got %s", t)
			}
		}
	}
	if e.FilterCmp.Op == ast.CmpNone {
		lo.errorf(diag.TypeMismatch, e.Span, "filter requires a comparison operator")
	}
	operand := lo.lowerExpr(e.FilterCmp.Operand)
	if t := lo.nodeType(operand); !t.CollapsesToNumber() {
		lo.errorf(diag.TypeMismatch, e.Span, "filter comparison operand must be Number-like, got %s", t)
	}
	return lo.mod.New(Node{
		Kind: HCall, Type: TList, Builtin: BFilter, Args: args,
		FilterCmp: CmpSpec{Op: e.FilterCmp.Op, Operand: operand},
		Span:      e.Span,
	})
}
