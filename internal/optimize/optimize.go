// Package optimize implements the two HIR-to-HIR rewrites of spec.md
// §4.4: constant folding and homogeneous-dice-node merging, each run
// repeatedly to a fixpoint. Grounded on the teacher compiler's
// repeated-rewrite-until-no-change idiom in
// surge/internal/mir/simplify_cfg.go, adapted from control-flow
// simplification to expression-level folding.
package optimize

import "github.com/xuyisen-x/oxidice/internal/hir"

// Optimize mutates mod in place, applying constant fold and dice-merge
// until neither pass reports a change. Both passes preserve every node's
// stamped Type (spec.md §8 "type preservation under optimization").
func Optimize(mod *hir.Module) {
	for {
		changed := foldConstants(mod, mod.Root)
		if mergeDice(mod, mod.Root) {
			changed = true
		}
		if !changed {
			return
		}
	}
}
