package ast

import (
	"github.com/xuyisen-x/oxidice/internal/source"
	"github.com/xuyisen-x/oxidice/internal/token"
)

// ExprKind discriminates the Expr union, one case per spec grammar
// production (spec.md §4.1).
type ExprKind uint8

const (
	EInvalid ExprKind = iota
	EInt
	EFloat
	EList
	ECall
	EFilterCall
	EDice
	EModified
	EUnary
	EBinary
)

// DiceFaceKind discriminates a dice expression's face specifier.
type DiceFaceKind uint8

const (
	FaceConcrete DiceFaceKind = iota // face is an arbitrary atom, e.g. 1d(1d4+2)
	FaceFate                         // dF
	FaceCoin                         // dC
)

// ModKind discriminates the closed set of postfix modifiers (spec §4.3).
type ModKind uint8

const (
	ModKH ModKind = iota
	ModKL
	ModDH
	ModDL
	ModMin
	ModMax
	ModReroll
	ModExplode
	ModCompound
	ModSF
	ModDF
	ModCS
)

func (k ModKind) String() string {
	switch k {
	case ModKH:
		return "kh"
	case ModKL:
		return "kl"
	case ModDH:
		return "dh"
	case ModDL:
		return "dl"
	case ModMin:
		return "min"
	case ModMax:
		return "max"
	case ModReroll:
		return "r"
	case ModExplode:
		return "!"
	case ModCompound:
		return "!!"
	case ModSF:
		return "sf"
	case ModDF:
		return "df"
	case ModCS:
		return "cs"
	default:
		return "?"
	}
}

// CmpOp is a comparison operator, usable only inside mod_param/filter.
type CmpOp uint8

const (
	CmpNone CmpOp = iota
	CmpEq
	CmpNe
	CmpLe
	CmpLt
	CmpGe
	CmpGt
)

// CmpFromToken maps a comparator token.Kind to a CmpOp, or CmpNone if k is
// not a comparator.
func CmpFromToken(k token.Kind) CmpOp {
	switch k {
	case token.Eq:
		return CmpEq
	case token.Ne:
		return CmpNe
	case token.Le:
		return CmpLe
	case token.Lt:
		return CmpLt
	case token.Ge:
		return CmpGe
	case token.Gt:
		return CmpGt
	default:
		return CmpNone
	}
}

// CmpSpec is a mod_param: a comparison against an operand atom. Operand
// is NoExprID when Op is CmpNone (the modifier takes no comparison, e.g.
// min/max take a bare value X instead).
type CmpSpec struct {
	Op      CmpOp
	Operand ExprID
}

// LimitSpec is the optional "lt<atom> lc<atom>" suffix on r/!/!!.
type LimitSpec struct {
	LT ExprID // NoExprID if absent
	LC ExprID // NoExprID if absent
}

// Modifier is one postfix modifier application.
type Modifier struct {
	Kind  ModKind
	Span  source.Span
	N     ExprID // kh/kl/dh/dl count, NoExprID => default 1
	X     ExprID // min/max clamp value
	Cmp   CmpSpec
	Limit LimitSpec
}

// Expr is a single AST node. Only the fields relevant to Kind are
// meaningful; this mirrors the teacher compiler's tagged-node-by-Kind
// layout (surge/internal/ast/exprs.go) rather than one Go type per kind,
// which keeps the Arena monomorphic.
type Expr struct {
	Kind ExprKind
	Span source.Span

	IntVal   int64   // EInt
	FloatVal float64 // EFloat

	Elems []ExprID // EList

	Name      string      // ECall, EFilterCall
	NameSpan  source.Span // ECall, EFilterCall
	Args      []ExprID    // ECall, EFilterCall
	FilterCmp CmpSpec     // EFilterCall

	Count    ExprID // EDice; NoExprID => default count 1
	Face     DiceFaceKind
	FaceExpr ExprID // EDice, when Face == FaceConcrete

	Base ExprID   // EModified
	Mod  Modifier // EModified

	UnaryOp token.Kind // EUnary: Plus or Minus
	Operand ExprID     // EUnary

	BinOp token.Kind // EBinary
	LHS   ExprID     // EBinary
	RHS   ExprID     // EBinary
}

// Tree owns the arena for a single parsed expression.
type Tree struct {
	Exprs *Arena[Expr]
	Root  ExprID
}

// NewTree returns an empty Tree ready to receive nodes.
func NewTree() *Tree {
	return &Tree{Exprs: NewArena[Expr](32)}
}

// New allocates expr and returns its ExprID.
func (t *Tree) New(expr Expr) ExprID {
	return ExprID(t.Exprs.Allocate(expr))
}

// Get returns the node for id.
func (t *Tree) Get(id ExprID) *Expr {
	return t.Exprs.Get(uint32(id))
}
