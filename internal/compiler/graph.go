// Package compiler lowers a typed, optimized HIR module into an
// evaluation graph: a DAG of Pure nodes (operators and function
// applications, resolved the instant their inputs are) and Dice-source
// nodes (count_input, face_spec, modifier_pipeline, resolved only by
// drawing from an rng.Source across one or more runtime rounds), per
// spec.md §4.5. Grounded on the teacher compiler's surge/internal/mir
// (typed-IR to flat-node translation) with internal/ast.Arena reused
// verbatim as the graph's storage.
package compiler

import (
	"github.com/xuyisen-x/oxidice/internal/ast"
	"github.com/xuyisen-x/oxidice/internal/hir"
)

// NodeID addresses a node in a Graph's arena. Zero is the sentinel "no
// node" value, following internal/ast and internal/hir's convention.
type NodeID uint32

// NoNodeID marks an absent optional child.
const NoNodeID NodeID = 0

// IsValid reports whether id refers to an allocated node.
func (id NodeID) IsValid() bool { return id != NoNodeID }

// Kind discriminates the evaluation graph's two node species (spec.md
// §4.5): KDice is the only species that ever consumes a runtime round or
// draws from the rng.Source; every other kind is Pure.
type Kind uint8

const (
	KInvalid Kind = iota
	KConst
	KList
	KCall
	KUnary
	KBinary
	KRepeat
	KDice
)

// IsDiceSource reports whether k is the graph's one dice-source species.
func (k Kind) IsDiceSource() bool { return k == KDice }

// CmpSpec is a resolved comparison against a compiled operand node,
// mirroring hir.CmpSpec one level down the pipeline.
type CmpSpec struct {
	Op      ast.CmpOp
	Operand NodeID
}

// LimitSpec is the resolved lt/lc suffix on r/!/!!, mirroring
// hir.LimitSpec.
type LimitSpec struct {
	LT NodeID
	LC NodeID
}

// Modifier is one step of a dice-source node's modifier pipeline, in
// left-to-right application order (the reverse of the nested HModified
// wrapping order the parser produces).
type Modifier struct {
	Kind  ast.ModKind
	N     NodeID
	X     NodeID
	Cmp   CmpSpec
	Limit LimitSpec
}

// Node is a single evaluation graph node: the tagged-union-by-Kind shape
// used throughout this codebase (internal/ast.Expr, internal/hir.Node).
type Node struct {
	Kind Kind
	Type hir.Type

	ConstValue int32   // KConst
	ConstFloat float64 // KConst: pre-collapse exact value (see runtime.Value.Exact)

	Elems []NodeID // KList

	Builtin   hir.Builtin // KCall
	Args      []NodeID
	FilterCmp CmpSpec

	UnaryOp hir.UnaryOp // KUnary
	Operand NodeID

	BinOp hir.BinOp // KBinary
	LHS   NodeID
	RHS   NodeID

	RepeatList NodeID // KRepeat
	RepeatN    int32

	Count    NodeID // KDice: NoNodeID means default count 1
	Face     ast.DiceFaceKind
	FaceExpr NodeID     // KDice, when Face == FaceConcrete
	Mods     []Modifier // KDice: the flattened, left-to-right modifier pipeline
}

// Graph is the compiled evaluation DAG for one expression. Children
// always carry a lower NodeID than their parents, so ranging over Nodes
// in index order visits every node in a valid topological order.
type Graph struct {
	Nodes *ast.Arena[Node]
	Root  NodeID
}

// New allocates n and returns its NodeID.
func (g *Graph) New(n Node) NodeID {
	return NodeID(g.Nodes.Allocate(n))
}

// Get returns the node for id, or nil for NoNodeID.
func (g *Graph) Get(id NodeID) *Node {
	if !id.IsValid() {
		return nil
	}
	return g.Nodes.Get(uint32(id))
}

// Len returns the number of allocated nodes.
func (g *Graph) Len() uint32 { return g.Nodes.Len() }
