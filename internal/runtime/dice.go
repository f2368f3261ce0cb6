package runtime

import (
	"github.com/xuyisen-x/oxidice/internal/ast"
	"github.com/xuyisen-x/oxidice/internal/compiler"
	"github.com/xuyisen-x/oxidice/internal/rng"
)

// evalDice resolves one dice-source node: draws its initial pool, then
// applies its modifier pipeline left to right (spec.md §4.3, §4.6). Each
// initial batch and each reroll/explode/compound continuation consumes
// one runtime round; rank, clamp, sf, df, and cs modifiers apply
// instantly once the pool they see is stable and never consume a round.
func (st *state) evalDice(id compiler.NodeID, n *compiler.Node) (Value, error) {
	count, err := st.evalNumber(n.Count, 1)
	if err != nil {
		return Value{}, err
	}
	spec, maxFace, err := st.faceSpecOf(n)
	if err != nil {
		return Value{}, err
	}

	pool := &Pool{}
	shouldDraw := count > 0 && (spec.Kind != rng.FaceCount || maxFace > 0)
	if shouldDraw {
		if err := st.chargeRound(); err != nil {
			return Value{}, err
		}
		vals, err := st.draw(int(count), spec)
		if err != nil {
			return Value{}, err
		}
		for i, v := range vals {
			pool.Rolls = append(pool.Rolls, Roll{Value: v, RerolledFrom: -1})
			st.emitRoll(id, int32(i), v, -1, "")
		}
	}

	for _, mod := range n.Mods {
		if err := st.applyModifier(id, pool, mod, spec, maxFace); err != nil {
			return Value{}, err
		}
	}

	val := Value{Kind: n.Type, Pool: pool}
	st.emitValueResolved(id, val.AsNumber())
	return val, nil
}

// faceSpecOf resolves a dice-source node's face specifier to a
// draw-ready rng.DieSpec plus that face's maximum value (used by
// explode/compound's implicit "matches the maximum face" default,
// spec.md §4.3).
func (st *state) faceSpecOf(n *compiler.Node) (rng.DieSpec, int32, error) {
	switch n.Face {
	case ast.FaceFate:
		return rng.Fate(), 1, nil
	case ast.FaceCoin:
		return rng.Coin(), 1, nil
	default:
		faces, err := st.evalNumber(n.FaceExpr, 0)
		if err != nil {
			return rng.DieSpec{}, 0, err
		}
		return rng.Faces(faces), faces, nil
	}
}

// chargeRound advances the global round counter and enforces
// RecursionLimit (spec.md §6).
func (st *state) chargeRound() error {
	st.round++
	if st.round > st.opts.RecursionLimit {
		return &LimitExceededError{Kind: "rounds", Limit: st.opts.RecursionLimit}
	}
	st.emitRoundBoundary()
	return nil
}

// draw charges n draws against DiceCountLimit and pulls them from src.
func (st *state) draw(n int, spec rng.DieSpec) ([]int32, error) {
	if n <= 0 {
		return nil, nil
	}
	if st.dice+int64(n) > st.opts.DiceCountLimit {
		return nil, &LimitExceededError{Kind: "dice_count", Limit: st.opts.DiceCountLimit}
	}
	st.dice += int64(n)
	out := make([]int32, n)
	for i := range out {
		out[i] = st.rng.Draw(spec)
	}
	return out, nil
}

func (st *state) applyModifier(id compiler.NodeID, pool *Pool, mod compiler.Modifier, spec rng.DieSpec, maxFace int32) error {
	switch mod.Kind {
	case ast.ModKH, ast.ModKL, ast.ModDH, ast.ModDL:
		n, err := st.evalNumber(mod.N, 1)
		if err != nil {
			return err
		}
		st.applyRank(id, pool, mod.Kind, n)
	case ast.ModMin, ast.ModMax:
		x, err := st.evalNumber(mod.X, 0)
		if err != nil {
			return err
		}
		st.applyClamp(id, pool, mod.Kind, x)
	case ast.ModReroll:
		return st.applyRerollLike(id, pool, mod, spec, maxFace, false, false)
	case ast.ModExplode:
		return st.applyRerollLike(id, pool, mod, spec, maxFace, true, false)
	case ast.ModCompound:
		return st.applyRerollLike(id, pool, mod, spec, maxFace, true, true)
	case ast.ModSF:
		cmp, err := st.evalCmp(mod.Cmp, maxFace, false)
		if err != nil {
			return err
		}
		st.applyStrike(id, pool, cmp)
	case ast.ModDF:
		cmp, err := st.evalCmp(mod.Cmp, maxFace, false)
		if err != nil {
			return err
		}
		st.applyTag(id, pool, cmp, TagFailure, "df")
	case ast.ModCS:
		cmp, err := st.evalCmp(mod.Cmp, maxFace, false)
		if err != nil {
			return err
		}
		st.applyTag(id, pool, cmp, TagSuccess, "cs")
	default:
		return &InternalError{Msg: "unknown modifier kind"}
	}
	return nil
}
