package runtime

import (
	"fmt"
	"sort"

	"github.com/xuyisen-x/oxidice/internal/ast"
	"github.com/xuyisen-x/oxidice/internal/compiler"
	"github.com/xuyisen-x/oxidice/internal/numeric"
	"github.com/xuyisen-x/oxidice/internal/rng"
)

// applyRank implements kh/kl/dh/dl (spec.md §4.3): ranks the pool's live
// dice by value, ties broken by ascending original roll index (a stable
// sort over dice already ordered by roll index achieves this), and
// drops every die outside the kept/dropped selection. A negative n is
// tolerated as zero (spec.md §7); keeping or dropping at least as many
// dice as are live is a no-op for kh/kl and drops everything live for
// dh/dl.
func (st *state) applyRank(id compiler.NodeID, pool *Pool, kind ast.ModKind, n int32) {
	if n < 0 {
		n = 0
	}
	live := liveIndices(pool)
	sorted := append([]int(nil), live...)
	switch kind {
	case ast.ModKH, ast.ModDH:
		sort.SliceStable(sorted, func(i, j int) bool { return pool.Rolls[sorted[i]].Value > pool.Rolls[sorted[j]].Value })
	default: // ModKL, ModDL
		sort.SliceStable(sorted, func(i, j int) bool { return pool.Rolls[sorted[i]].Value < pool.Rolls[sorted[j]].Value })
	}

	var dropped []int
	switch kind {
	case ast.ModKH, ast.ModKL:
		if int(n) < len(sorted) {
			dropped = sorted[n:]
		}
	case ast.ModDH, ast.ModDL:
		if int(n) > len(sorted) {
			n = int32(len(sorted))
		}
		dropped = sorted[:n]
	}
	for _, idx := range dropped {
		pool.Rolls[idx].Dropped = true
	}
	st.emitModifierApplied(id, kind.String(), fmt.Sprintf("dropped %d of %d live dice", len(dropped), len(sorted)))
}

// applyClamp implements min/max (spec.md §4.3): clamps every live die's
// value into [x, +inf) or (-inf, x].
func (st *state) applyClamp(id compiler.NodeID, pool *Pool, kind ast.ModKind, x int32) {
	clamped := 0
	for i := range pool.Rolls {
		r := &pool.Rolls[i]
		if r.Dropped || r.Removed {
			continue
		}
		switch {
		case kind == ast.ModMin && r.Value < x:
			r.ClampedFrom, r.Clamped, r.Value = r.Value, true, x
			clamped++
		case kind == ast.ModMax && r.Value > x:
			r.ClampedFrom, r.Clamped, r.Value = r.Value, true, x
			clamped++
		}
	}
	st.emitModifierApplied(id, kind.String(), fmt.Sprintf("clamped %d dice to %d", clamped, x))
}

// applyStrike implements sf: removes (not drops) every not-yet-removed
// die matching cmp, dropped dice included, erasing it from the pool for every later modifier and from the
// collapse (spec.md §4.3).
func (st *state) applyStrike(id compiler.NodeID, pool *Pool, cmp func(int32) bool) {
	removed := 0
	for i := range pool.Rolls {
		r := &pool.Rolls[i]
		if r.Removed {
			continue
		}
		if cmp(r.Value) {
			r.Removed = true
			removed++
		}
	}
	st.emitModifierApplied(id, "sf", fmt.Sprintf("struck %d dice", removed))
}

// applyTag implements df/cs: coerces the pool to a SuccessPool on first
// use (every non-removed die tagged Normal), then retags every matching
// die (spec.md §4.3, §9's open-question resolution that a die already
// dropped by an earlier rank modifier still carries a drop mark into the
// SuccessPool, so it stays excluded from the collapse regardless of its
// tag).
func (st *state) applyTag(id compiler.NodeID, pool *Pool, cmp func(int32) bool, tag Tag, name string) {
	if !pool.IsSuccess {
		for i := range pool.Rolls {
			if !pool.Rolls[i].Removed {
				pool.Rolls[i].Tag = TagNormal
			}
		}
		pool.IsSuccess = true
	}
	matched := 0
	for i := range pool.Rolls {
		r := &pool.Rolls[i]
		if r.Removed {
			continue
		}
		if cmp(r.Value) {
			r.Tag = tag
			matched++
		}
	}
	st.emitModifierApplied(id, name, fmt.Sprintf("tagged %d dice", matched))
}

// applyRerollLike implements r, !, and !! (spec.md §4.3, §4.6): each
// round, every live die still matching cmp is redrawn in one batch, and
// the result is folded back in according to which of the three modifiers
// this is. The loop continues until no live die matches, or until the lt
// (round count) or lc (new-die count) limit is exhausted, whichever
// comes first; both default to unbounded, bounded only by the global
// recursion_limit and dice_count_limit.
//
// r and !! settle naturally: a reroll overwrites the die's own value in
// place, and a compound accumulates onto it, so the next round's match
// check sees the new value. ! instead appends a fresh die and leaves the
// triggering die's value untouched; without Roll.Exploded that die would
// re-match forever, so it is marked once it has fired and excluded from
// further ! matching, while the die it produced remains eligible to
// chain its own explosion.
func (st *state) applyRerollLike(id compiler.NodeID, pool *Pool, mod compiler.Modifier, spec rng.DieSpec, maxFace int32, explodeLike, compound bool) error {
	cmp, err := st.evalCmp(mod.Cmp, maxFace, explodeLike)
	if err != nil {
		return err
	}
	ltLimit, err := st.evalOptionalLimit(mod.Limit.LT)
	if err != nil {
		return err
	}
	lcLimit, err := st.evalOptionalLimit(mod.Limit.LC)
	if err != nil {
		return err
	}

	name := "r"
	if compound {
		name = "!!"
	} else if explodeLike {
		name = "!"
	}

	rounds, drawn := int64(0), int64(0)
	for {
		var matches []int
		for i := range pool.Rolls {
			r := &pool.Rolls[i]
			if r.Dropped || r.Removed {
				continue
			}
			if explodeLike && !compound && r.Exploded {
				continue
			}
			if cmp(r.Value) {
				matches = append(matches, i)
			}
		}
		if len(matches) == 0 {
			break
		}
		if ltLimit >= 0 && rounds >= ltLimit {
			break
		}
		if lcLimit >= 0 {
			remaining := lcLimit - drawn
			if remaining <= 0 {
				break
			}
			if int64(len(matches)) > remaining {
				matches = matches[:remaining]
			}
		}
		if err := st.chargeRound(); err != nil {
			return err
		}
		vals, err := st.draw(len(matches), spec)
		if err != nil {
			return err
		}
		for k, idx := range matches {
			v := vals[k]
			switch {
			case compound:
				pool.Rolls[idx].Value = numeric.Add(pool.Rolls[idx].Value, v)
				pool.Rolls[idx].Origin = "compound"
				st.emitRoll(id, int32(idx), v, int32(idx), "compound")
			case explodeLike:
				pool.Rolls[idx].Exploded = true
				pool.Rolls = append(pool.Rolls, Roll{Value: v, Origin: "explode", RerolledFrom: idx})
				st.emitRoll(id, int32(len(pool.Rolls)-1), v, int32(idx), "explode")
			default:
				pool.Rolls[idx].Value = v
				pool.Rolls[idx].Origin = "reroll"
				st.emitRoll(id, int32(idx), v, int32(idx), "reroll")
			}
		}
		rounds++
		drawn += int64(len(matches))
	}
	st.emitModifierApplied(id, name, fmt.Sprintf("settled after %d round(s), %d new dice", rounds, drawn))
	return nil
}

func (st *state) evalOptionalLimit(id compiler.NodeID) (int64, error) {
	if !id.IsValid() {
		return -1, nil
	}
	v, err := st.evalNumber(id, 0)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		v = 0
	}
	return int64(v), nil
}
