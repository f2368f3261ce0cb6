package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuyisen-x/oxidice/internal/render"
	"github.com/xuyisen-x/oxidice/internal/trace"
)

func TestRenderSingleDiceNode(t *testing.T) {
	events := []trace.Event{
		{Seq: 1, Round: 1, Kind: trace.KindRoundBoundary, NodeID: 1},
		{Seq: 2, Round: 1, Kind: trace.KindRollDrawn, NodeID: 1, RollIndex: 0, Value: 5, ParentIndex: -1},
		{Seq: 3, Round: 1, Kind: trace.KindRollDrawn, NodeID: 1, RollIndex: 1, Value: 3, ParentIndex: -1},
		{Seq: 4, Round: 1, Kind: trace.KindValueResolved, NodeID: 1, ResolvedValue: 8},
	}
	tree := render.Render(events)
	if tree.Root == nil {
		t.Fatalf("expected a non-nil root")
	}
	if tree.Root.Value != 8 {
		t.Fatalf("root value = %d, want 8", tree.Root.Value)
	}
	if len(tree.Root.Rolls) != 2 {
		t.Fatalf("root rolls = %d, want 2", len(tree.Root.Rolls))
	}
	if tree.Root.Label != "dice" {
		t.Fatalf("root label = %q, want %q", tree.Root.Label, "dice")
	}
	if tree.Rounds != 1 {
		t.Fatalf("rounds = %d, want 1", tree.Rounds)
	}
}

func TestRenderMultipleRootsSynthesizesParent(t *testing.T) {
	events := []trace.Event{
		{Seq: 1, Round: 1, Kind: trace.KindRoundBoundary, NodeID: 1},
		{Seq: 2, Round: 1, Kind: trace.KindRollDrawn, NodeID: 1, Value: 4, ParentIndex: -1},
		{Seq: 3, Round: 1, Kind: trace.KindValueResolved, NodeID: 1, ResolvedValue: 4},
		{Seq: 4, Round: 2, Kind: trace.KindRoundBoundary, NodeID: 2},
		{Seq: 5, Round: 2, Kind: trace.KindRollDrawn, NodeID: 2, Value: 6, ParentIndex: -1},
		{Seq: 6, Round: 2, Kind: trace.KindValueResolved, NodeID: 2, ResolvedValue: 6},
	}
	tree := render.Render(events)
	if tree.Root.Label != "result" {
		t.Fatalf("root label = %q, want %q", tree.Root.Label, "result")
	}
	if len(tree.Root.Children) != 2 {
		t.Fatalf("root children = %d, want 2", len(tree.Root.Children))
	}
	if tree.Rounds != 2 {
		t.Fatalf("rounds = %d, want 2", tree.Rounds)
	}
}

func TestPrintWritesRoundsFooter(t *testing.T) {
	events := []trace.Event{
		{Seq: 1, Round: 1, Kind: trace.KindRoundBoundary, NodeID: 1},
		{Seq: 2, Round: 1, Kind: trace.KindRollDrawn, NodeID: 1, Value: 5, ParentIndex: -1},
		{Seq: 3, Round: 1, Kind: trace.KindValueResolved, NodeID: 1, ResolvedValue: 5},
	}
	tree := render.Render(events)
	var buf bytes.Buffer
	render.Print(&buf, tree, render.PrintOpts{Color: false})
	out := buf.String()
	if !strings.Contains(out, "1 round(s)") {
		t.Fatalf("output %q missing round footer", out)
	}
}
