package compiler_test

import (
	"testing"

	"github.com/xuyisen-x/oxidice/internal/ast"
	"github.com/xuyisen-x/oxidice/internal/compiler"
	"github.com/xuyisen-x/oxidice/internal/diag"
	"github.com/xuyisen-x/oxidice/internal/hir"
	"github.com/xuyisen-x/oxidice/internal/optimize"
	"github.com/xuyisen-x/oxidice/internal/parser"
	"github.com/xuyisen-x/oxidice/internal/source"
)

func compileSource(t *testing.T, src string) *compiler.Graph {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.Add("<test>", src)
	bag := diag.NewBag()
	reporter := diag.BagReporter{Bag: bag}

	tree := parser.Parse(fileID, src, reporter)
	if bag.HasErrors() {
		t.Fatalf("parse %q: %v", src, bag)
	}
	mod, ok := hir.Lower(tree, reporter)
	if !ok {
		t.Fatalf("lower %q: %v", src, bag)
	}
	optimize.Optimize(mod)
	return compiler.Compile(mod)
}

// A chain of modifiers nests outside-in at the HIR level (the last
// parsed is the outermost HModified); compileDice must flatten that
// chain back to left-to-right application order.
func TestModifierChainFlattensLeftToRight(t *testing.T) {
	graph := compileSource(t, "3d20kh2dl1")
	root := graph.Get(graph.Root)
	if root.Kind != compiler.KDice {
		t.Fatalf("root kind = %v, want KDice", root.Kind)
	}
	if len(root.Mods) != 2 {
		t.Fatalf("mods = %v, want 2 entries", root.Mods)
	}
	if root.Mods[0].Kind != ast.ModKH {
		t.Fatalf("mods[0].Kind = %v, want ModKH", root.Mods[0].Kind)
	}
	if root.Mods[1].Kind != ast.ModDL {
		t.Fatalf("mods[1].Kind = %v, want ModDL", root.Mods[1].Kind)
	}
}

// A dice source with no modifiers compiles straight to a KDice node with
// an empty pipeline.
func TestBareDiceHasNoModifiers(t *testing.T) {
	graph := compileSource(t, "2d6")
	root := graph.Get(graph.Root)
	if root.Kind != compiler.KDice {
		t.Fatalf("root kind = %v, want KDice", root.Kind)
	}
	if len(root.Mods) != 0 {
		t.Fatalf("mods = %v, want none", root.Mods)
	}
}

// A nested dice count ((1d6)d8) compiles the inner dice expression to
// its own KDice node reachable through the outer node's Count field.
func TestNestedDiceCount(t *testing.T) {
	graph := compileSource(t, "(1d6)d8")
	root := graph.Get(graph.Root)
	if root.Kind != compiler.KDice {
		t.Fatalf("root kind = %v, want KDice", root.Kind)
	}
	if !root.Count.IsValid() {
		t.Fatalf("expected a compiled Count node")
	}
	count := graph.Get(root.Count)
	if count.Kind != compiler.KDice {
		t.Fatalf("count kind = %v, want KDice", count.Kind)
	}
}

// Identical dice subexpressions reached via different HIR node IDs are
// not the same case as sharing: compile does not deduplicate structurally
// equal but distinct HIR nodes, only memoizes each HIR id once (verified
// here as documentation of that boundary rather than an equality claim).
// Subtraction keeps both operands: the optimizer merges "1d6 + 1d6" into
// a single 2d6 node, but never merges across "-".
func TestEachOperandCompilesOnce(t *testing.T) {
	graph := compileSource(t, "1d6 - 1d6")
	root := graph.Get(graph.Root)
	if root.Kind != compiler.KBinary {
		t.Fatalf("root kind = %v, want KBinary", root.Kind)
	}
	if root.LHS == root.RHS {
		t.Fatalf("expected two distinct dice nodes for two distinct dice literals, got the same NodeID")
	}
}
