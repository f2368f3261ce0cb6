// Package render turns a completed runtime.Result's trace into a
// display-ready tree and a styled terminal rendering (spec.md §2, §4.7).
// Grounded on the teacher compiler's internal/diagfmt (pretty-printing a
// diagnostic bag) and internal/hir/print.go (indented IR tree printing),
// combined here into one walk over trace.Event grouped by graph node.
package render

import "github.com/xuyisen-x/oxidice/internal/trace"

// DisplayRoll is one rolled die formatted for display.
type DisplayRoll struct {
	RollIndex int32
	Value     int32
	ChainKind string // "" | "reroll" | "explode" | "compound"
	Dropped   bool
	Removed   bool
}

// DisplayNode is one graph node's contribution to the rendered tree:
// its resolved value, the rolls it drew (if it was a dice source), and
// the modifier outcomes applied to it, in application order.
type DisplayNode struct {
	NodeID    uint32
	Label     string
	Value     int32
	Rolls     []DisplayRoll
	Modifiers []string // e.g. "kh: dropped 2 of 4 live dice"
	Children  []*DisplayNode
}

// DisplayTree is the root of a rendered result: the per-node tree
// assembled from the trace plus the highest round number it saw.
type DisplayTree struct {
	Root   *DisplayNode
	Rounds int
}

// Render walks events (in emission order) and assembles one DisplayNode
// per distinct NodeID encountered. The trace carries no explicit edges —
// only per-node events keyed by NodeID, spec.md §4.6 — and no
// parent/child links between graph nodes are rebuilt: every node is
// placed, in first-seen order, directly under a synthetic "result" root,
// and when only one node appears it is returned as the root itself.
// Dropped and Removed on each DisplayRoll are left unset.
func Render(events []trace.Event) *DisplayTree {
	nodes := map[uint32]*DisplayNode{}
	var order []uint32
	maxRound := int32(0)

	get := func(id uint32) *DisplayNode {
		n, ok := nodes[id]
		if !ok {
			n = &DisplayNode{NodeID: id}
			nodes[id] = n
			order = append(order, id)
		}
		return n
	}

	for _, ev := range events {
		if ev.Round > maxRound {
			maxRound = ev.Round
		}
		switch ev.Kind {
		case trace.KindRollDrawn:
			n := get(ev.NodeID)
			n.Rolls = append(n.Rolls, DisplayRoll{
				RollIndex: ev.RollIndex, Value: ev.Value, ChainKind: ev.ChainKind,
			})
		case trace.KindModifierApplied:
			n := get(ev.NodeID)
			n.Modifiers = append(n.Modifiers, ev.ModKind+": "+ev.Detail)
		case trace.KindValueResolved:
			n := get(ev.NodeID)
			n.Value = ev.ResolvedValue
			n.Label = labelFor(n)
		}
	}

	root := &DisplayNode{Label: "result"}
	for _, id := range order {
		root.Children = append(root.Children, nodes[id])
	}
	if len(root.Children) == 1 {
		root = root.Children[0]
	}
	return &DisplayTree{Root: root, Rounds: int(maxRound)}
}

func labelFor(n *DisplayNode) string {
	if len(n.Rolls) > 0 {
		return "dice"
	}
	return "value"
}
