package compiler

import (
	"github.com/xuyisen-x/oxidice/internal/ast"
	"github.com/xuyisen-x/oxidice/internal/hir"
	"github.com/xuyisen-x/oxidice/internal/numeric"
)

// Compile translates a typed, optimized hir.Module into an evaluation
// Graph (spec.md §4.5). mod is assumed to have already passed through
// internal/optimize; Compile performs no folding or validation of its
// own, only structural translation.
func Compile(mod *hir.Module) *Graph {
	c := &compilerState{
		hir:   mod,
		graph: &Graph{Nodes: ast.NewArena[Node](uint(mod.Nodes.Len()))},
		memo:  make(map[hir.NodeID]NodeID, mod.Nodes.Len()),
	}
	c.graph.Root = c.compile(mod.Root)
	return c.graph
}

type compilerState struct {
	hir   *hir.Module
	graph *Graph
	memo  map[hir.NodeID]NodeID
}

func (c *compilerState) compile(id hir.NodeID) NodeID {
	if !id.IsValid() {
		return NoNodeID
	}
	if cid, ok := c.memo[id]; ok {
		return cid
	}
	n := c.hir.Get(id)
	var cid NodeID
	switch n.Kind {
	case hir.HInt:
		v := numeric.FromInt64(n.IntVal)
		cid = c.graph.New(Node{Kind: KConst, Type: n.Type, ConstValue: v, ConstFloat: float64(v)})
	case hir.HFloat:
		// ConstFloat keeps the literal's fraction alive for floor/ceil/round
		// (spec.md §4.6); ConstValue is still the truncated int32 every
		// other consumer reads through Value.AsNumber.
		cid = c.graph.New(Node{Kind: KConst, Type: n.Type, ConstValue: numeric.FromFloat(n.FloatVal), ConstFloat: n.FloatVal})
	case hir.HList:
		elems := make([]NodeID, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = c.compile(e)
		}
		cid = c.graph.New(Node{Kind: KList, Type: n.Type, Elems: elems})
	case hir.HCall:
		args := make([]NodeID, len(n.Args))
		for i, a := range n.Args {
			args[i] = c.compile(a)
		}
		cid = c.graph.New(Node{
			Kind: KCall, Type: n.Type, Builtin: n.Builtin, Args: args,
			FilterCmp: c.compileCmp(n.FilterCmp),
		})
	case hir.HUnary:
		cid = c.graph.New(Node{Kind: KUnary, Type: n.Type, UnaryOp: n.UnaryOp, Operand: c.compile(n.Operand)})
	case hir.HBinary:
		cid = c.graph.New(Node{Kind: KBinary, Type: n.Type, BinOp: n.BinOp, LHS: c.compile(n.LHS), RHS: c.compile(n.RHS)})
	case hir.HRepeat:
		cid = c.graph.New(Node{Kind: KRepeat, Type: n.Type, RepeatList: c.compile(n.RepeatList), RepeatN: n.RepeatN})
	case hir.HDice:
		cid = c.compileDice(n, nil, n.Type)
	case hir.HModified:
		baseID, mods := collectModifierChain(c.hir, id)
		base := c.hir.Get(baseID)
		cid = c.compileDice(base, mods, n.Type)
	default:
		cid = c.graph.New(Node{Kind: KInvalid, Type: n.Type})
	}
	c.memo[id] = cid
	return cid
}

// compileDice flattens one dice-source node and its modifier pipeline
// (already unwrapped in left-to-right order by collectModifierChain, or
// empty for a bare, unmodified HDice) into a single KDice node.
func (c *compilerState) compileDice(base *hir.Node, chain []hir.Modifier, finalType hir.Type) NodeID {
	mods := make([]Modifier, len(chain))
	for i, m := range chain {
		mods[i] = Modifier{
			Kind: m.Kind,
			N:    c.compile(m.N),
			X:    c.compile(m.X),
			Cmp:  c.compileCmp(m.Cmp),
			Limit: LimitSpec{
				LT: c.compile(m.Limit.LT),
				LC: c.compile(m.Limit.LC),
			},
		}
	}
	return c.graph.New(Node{
		Kind: KDice, Type: finalType,
		Count: c.compile(base.Count), Face: base.Face, FaceExpr: c.compile(base.FaceExpr),
		Mods: mods,
	})
}

func (c *compilerState) compileCmp(spec hir.CmpSpec) CmpSpec {
	return CmpSpec{Op: spec.Op, Operand: c.compile(spec.Operand)}
}

// collectModifierChain unwinds a chain of nested HModified nodes down to
// its underlying HDice base, returning the modifiers in left-to-right
// application order. The parser builds this chain outside-in (the
// outermost HModified is the last-parsed, last-applied modifier), so the
// walk collects outside-in and then reverses (spec.md §4.3: modifiers
// apply strictly left to right). Every HModified chain bottoms out at an
// HDice node: DicePool/SuccessPool, the only types a modifier accepts,
// are produced exclusively by dice expressions.
func collectModifierChain(mod *hir.Module, id hir.NodeID) (hir.NodeID, []hir.Modifier) {
	var mods []hir.Modifier
	n := mod.Get(id)
	for n.Kind == hir.HModified {
		mods = append(mods, n.Mod)
		id = n.Base
		n = mod.Get(id)
	}
	for i, j := 0, len(mods)-1; i < j; i, j = i+1, j-1 {
		mods[i], mods[j] = mods[j], mods[i]
	}
	return id, mods
}
