package runtime_test

import (
	"testing"

	"github.com/xuyisen-x/oxidice/internal/compiler"
	"github.com/xuyisen-x/oxidice/internal/diag"
	"github.com/xuyisen-x/oxidice/internal/hir"
	"github.com/xuyisen-x/oxidice/internal/optimize"
	"github.com/xuyisen-x/oxidice/internal/parser"
	"github.com/xuyisen-x/oxidice/internal/rng"
	"github.com/xuyisen-x/oxidice/internal/source"
)

// compileSource runs the full parse/lower/optimize/compile pipeline,
// failing the test on any diagnostic, so runtime tests can exercise the
// engine against real compiled graphs instead of hand-built ones.
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

// fixedSource returns each value in seq in order, then repeats the last
// value forever, so an unbounded-reroll test can keep drawing without
// pre-sizing the exact draw count.
type fixedSource struct {
	seq []int32
	i   int
}

func (f *fixedSource) Draw(rng.DieSpec) int32 {
	if len(f.seq) == 0 {
		return 0
	}
	v := f.seq[f.i]
	if f.i < len(f.seq)-1 {
		f.i++
	}
	return v
}
