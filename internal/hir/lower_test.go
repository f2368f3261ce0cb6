package hir_test

import (
	"testing"

	"github.com/xuyisen-x/oxidice/internal/diag"
	"github.com/xuyisen-x/oxidice/internal/hir"
	"github.com/xuyisen-x/oxidice/internal/parser"
)

func lowerSource(t *testing.T, src string) (*hir.Module, bool, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag()
	reporter := diag.BagReporter{Bag: bag}
	tree := parser.Parse(1, src, reporter)
	if bag.HasErrors() {
		t.Fatalf("parse %q: %+v", src, bag.All())
	}
	mod, ok := hir.Lower(tree, reporter)
	return mod, ok, bag
}

func TestLowerBareDiceStampsPoolType(t *testing.T) {
	mod, ok, bag := lowerSource(t, "4d6")
	if !ok || bag.HasErrors() {
		t.Fatalf("Lower failed: %+v", bag.All())
	}
	root := mod.Get(mod.Root)
	if root.Kind != hir.HDice {
		t.Fatalf("root kind = %v, want HDice", root.Kind)
	}
	if root.Type != hir.TPool {
		t.Fatalf("root type = %v, want TPool", root.Type)
	}
}

func TestLowerArithmeticCollapsesPoolToNumber(t *testing.T) {
	mod, ok, bag := lowerSource(t, "3d6 + 1")
	if !ok || bag.HasErrors() {
		t.Fatalf("Lower failed: %+v", bag.All())
	}
	root := mod.Get(mod.Root)
	if root.Kind != hir.HBinary {
		t.Fatalf("root kind = %v, want HBinary", root.Kind)
	}
	if root.Type != hir.TNumber {
		t.Fatalf("root type = %v, want TNumber (Pool+Number collapses to Number)", root.Type)
	}
}

func TestLowerResolvesBuiltinIdentity(t *testing.T) {
	mod, ok, bag := lowerSource(t, "sum([1, 2, 3])")
	if !ok || bag.HasErrors() {
		t.Fatalf("Lower failed: %+v", bag.All())
	}
	root := mod.Get(mod.Root)
	if root.Kind != hir.HCall || root.Builtin != hir.BSum {
		t.Fatalf("root = %+v, want HCall(BSum)", root)
	}
	if root.Type != hir.TNumber {
		t.Fatalf("root type = %v, want TNumber", root.Type)
	}
}

func TestLowerToListRejectsNumberOperand(t *testing.T) {
	_, ok, bag := lowerSource(t, "tolist(3)")
	if ok || !bag.HasErrors() {
		t.Fatalf("expected a type error for tolist(3)")
	}
	d, found := bag.FirstError()
	if !found || d.Code != diag.TypeToListRequiresPool {
		t.Fatalf("first error = %+v, want code %v", d, diag.TypeToListRequiresPool)
	}
}

func TestLowerUnknownFunctionIsATypeError(t *testing.T) {
	_, ok, bag := lowerSource(t, "bogus(1)")
	if ok || !bag.HasErrors() {
		t.Fatalf("expected a type error for an unknown function")
	}
}
