package hir

import (
	"github.com/xuyisen-x/oxidice/internal/ast"
	"github.com/xuyisen-x/oxidice/internal/source"
)

// NodeID addresses a node in a Module's node arena. Zero is the
// sentinel "no node" value.
type NodeID uint32

// NoNodeID marks an absent optional child.
const NoNodeID NodeID = 0

// IsValid reports whether id refers to an allocated node.
func (id NodeID) IsValid() bool { return id != NoNodeID }

// NodeKind discriminates the HIR node union. It mirrors ast.ExprKind
// (spec.md §4.2 lowering is mostly a 1:1 walk that adds types) plus
// HRepeat, the pre-HIR desugaring of "lst ** n" (spec.md §3, §4.2).
type NodeKind uint8

const (
	HInvalid NodeKind = iota
	HInt
	HFloat
	HList
	HCall
	HDice
	HModified
	HUnary
	HBinary
	HRepeat
)

// Node is a single HIR node: the AST shape, generalized with a stamped
// Type and resolved semantic metadata (builtin identity, validated
// modifier kind) that the parser could not have known.
type Node struct {
	Kind NodeKind
	Type Type
	Span source.Span

	IntVal   int64
	FloatVal float64

	Elems []NodeID // HList

	Builtin   Builtin  // HCall
	Args      []NodeID // HCall
	FilterCmp CmpSpec  // HCall when Builtin == BFilter

	Count    NodeID // HDice; NoNodeID => default count 1
	Face     ast.DiceFaceKind
	FaceExpr NodeID // HDice, when Face == FaceConcrete

	Base NodeID   // HModified
	Mod  Modifier // HModified

	UnaryOp UnaryOp // HUnary
	Operand NodeID  // HUnary

	BinOp BinOp // HBinary
	LHS   NodeID
	RHS   NodeID

	RepeatList NodeID // HRepeat
	RepeatN    int32  // HRepeat, already folded to a positive constant
}

// UnaryOp is the resolved unary operator (+ or -).
type UnaryOp uint8

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
)

// BinOp is the resolved binary operator.
type BinOp uint8

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinDiv
	BinFloorDiv
	BinMod
)

// CmpOp mirrors ast.CmpOp at HIR level (re-exported to avoid every
// caller importing both packages for one enum).
type CmpOp = ast.CmpOp

const (
	CmpNone = ast.CmpNone
	CmpEq   = ast.CmpEq
	CmpNe   = ast.CmpNe
	CmpLe   = ast.CmpLe
	CmpLt   = ast.CmpLt
	CmpGe   = ast.CmpGe
	CmpGt   = ast.CmpGt
)

// CmpSpec is a resolved comparison against a lowered operand node.
type CmpSpec struct {
	Op      CmpOp
	Operand NodeID
}

// LimitSpec is the resolved lt/lc suffix on r/!/!!.
type LimitSpec struct {
	LT NodeID // NoNodeID if absent
	LC NodeID // NoNodeID if absent
}

// Modifier is one resolved postfix modifier (spec.md §4.3), validated
// against its operand's Type at lowering time.
type Modifier struct {
	Kind  ast.ModKind
	Span  source.Span
	N     NodeID // kh/kl/dh/dl rank count, NoNodeID => default 1
	X     NodeID // min/max clamp value
	Cmp   CmpSpec
	Limit LimitSpec
}

// Module is the output of lowering a single expression: a typed node
// arena plus its root.
type Module struct {
	Nodes *ast.Arena[Node]
	Root  NodeID
}

// NewModule returns an empty Module.
func NewModule() *Module {
	return &Module{Nodes: ast.NewArena[Node](32)}
}

// New allocates n and returns its NodeID.
func (m *Module) New(n Node) NodeID {
	return NodeID(m.Nodes.Allocate(n))
}

// Get returns the node for id.
func (m *Module) Get(id NodeID) *Node {
	return m.Nodes.Get(uint32(id))
}
