package optimize_test

import (
	"testing"

	"github.com/xuyisen-x/oxidice/internal/diag"
	"github.com/xuyisen-x/oxidice/internal/hir"
	"github.com/xuyisen-x/oxidice/internal/optimize"
	"github.com/xuyisen-x/oxidice/internal/parser"
)

func lowerSource(t *testing.T, src string) *hir.Module {
	t.Helper()
	bag := diag.NewBag()
	reporter := diag.BagReporter{Bag: bag}
	tree := parser.Parse(1, src, reporter)
	mod, ok := hir.Lower(tree, reporter)
	if !ok || bag.HasErrors() {
		t.Fatalf("lower %q failed: %+v", src, bag.All())
	}
	return mod
}

// A purely numeric subtree with no dice source folds to a single
// literal (spec.md §4.4 constant folding).
func TestFoldConstantsCollapsesPureArithmetic(t *testing.T) {
	mod := lowerSource(t, "1 + 2 * 3")
	optimize.Optimize(mod)
	root := mod.Get(mod.Root)
	if root.Kind != hir.HInt || root.IntVal != 7 {
		t.Fatalf("root = %+v, want HInt(7)", root)
	}
}

// 1d6 + 1d6 merges into a single dice source with a summed count, since
// both operands share a face spec and carry no modifiers.
func TestMergeDiceCombinesIdenticalFaces(t *testing.T) {
	mod := lowerSource(t, "1d6 + 1d6")
	optimize.Optimize(mod)
	root := mod.Get(mod.Root)
	if root.Kind != hir.HDice {
		t.Fatalf("root kind = %v, want HDice after merging", root.Kind)
	}
	count := mod.Get(root.Count)
	if count.Kind != hir.HInt || count.IntVal != 2 {
		t.Fatalf("merged count = %+v, want HInt(2)", count)
	}
}

// A dice-bearing subtree is left alone by folding, since its value
// depends on an unobserved roll.
func TestFoldConstantsLeavesDiceUntouched(t *testing.T) {
	mod := lowerSource(t, "1d6 + 1")
	optimize.Optimize(mod)
	root := mod.Get(mod.Root)
	if root.Kind != hir.HBinary {
		t.Fatalf("root kind = %v, want HBinary (dice operand blocks folding)", root.Kind)
	}
}

// Optimization preserves every node's stamped Type (spec.md §8 "type
// preservation under optimization").
func TestOptimizePreservesRootType(t *testing.T) {
	mod := lowerSource(t, "1d6 + 1d6")
	wantType := mod.Get(mod.Root).Type
	optimize.Optimize(mod)
	if got := mod.Get(mod.Root).Type; got != wantType {
		t.Fatalf("root type changed from %v to %v", wantType, got)
	}
}

// floor/ceil/round constant-fold against the literal's real fraction
// rather than an int32 already truncated on the way in (spec.md §4.6).
func TestFoldMathFnsUseRealFraction(t *testing.T) {
	cases := []struct {
		src  string
		want int64
	}{
		{"floor(2.7)", 2},
		{"ceil(2.3)", 3},
		{"round(2.7)", 3},
		{"round(2.3)", 2},
		{"ceil(-2.3)", -2},
		{"floor(-2.3)", -3},
		{"ceil(avg([1, 2]))", 2},
	}
	for _, c := range cases {
		mod := lowerSource(t, c.src)
		optimize.Optimize(mod)
		root := mod.Get(mod.Root)
		if root.Kind != hir.HInt || root.IntVal != c.want {
			t.Fatalf("%q folded to %+v, want HInt(%d)", c.src, root, c.want)
		}
	}
}
