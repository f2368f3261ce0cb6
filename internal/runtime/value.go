// Package runtime evaluates a compiled evaluation graph against an
// rng.Source, one round at a time (spec.md §4.6), producing a Result and
// a complete execution trace. Grounded on the teacher compiler's
// surge/internal/vm dispatch loop, adapted from a linear bytecode
// dispatcher to a graph walk since this engine's "instructions" are DAG
// nodes rather than a flat program.
package runtime

import (
	"github.com/xuyisen-x/oxidice/internal/hir"
	"github.com/xuyisen-x/oxidice/internal/numeric"
)

// Tag marks a SuccessPool die's contribution to its collapse.
type Tag uint8

const (
	TagNone Tag = iota
	TagNormal
	TagSuccess
	TagFailure
)

// Roll is one die in a Pool, live or otherwise. Only fields relevant to
// its history are meaningful, following this codebase's tagged-struct
// convention.
type Roll struct {
	Value        int32
	Dropped      bool // excluded from collapse by a rank modifier, still present in the pool
	Removed      bool // erased by sf; excluded from collapse and every later modifier's view
	Clamped      bool
	ClampedFrom  int32
	Tag          Tag
	Origin       string // "" | "reroll" | "explode" | "compound"
	RerolledFrom int    // index of the die this one replaces or exploded from; -1 for an original roll
	Exploded     bool   // this die has already triggered one "!" explosion; excluded from further explode matching
}

// Pool is a DicePool or SuccessPool value (spec.md §3): the same
// representation serves both, discriminated by IsSuccess, since df/cs
// only add tags to an existing pool rather than building a new value.
type Pool struct {
	Rolls     []Roll
	IsSuccess bool
}

// Collapse reduces the pool to a Number: the sum of live dice values for
// a DicePool, or the signed sum of live +1/-1/0 tags for a SuccessPool
// (spec.md §3).
func (p *Pool) Collapse() int32 {
	var total int32
	for _, r := range p.Rolls {
		if r.Dropped || r.Removed {
			continue
		}
		if p.IsSuccess {
			switch r.Tag {
			case TagSuccess:
				total = numeric.Add(total, 1)
			case TagFailure:
				total = numeric.Add(total, -1)
			}
		} else {
			total = numeric.Add(total, r.Value)
		}
	}
	return total
}

// liveIndices returns the indices of every die still contributing to the
// pool (neither dropped nor removed), in ascending original-roll order.
func liveIndices(p *Pool) []int {
	var out []int
	for i, r := range p.Rolls {
		if !r.Dropped && !r.Removed {
			out = append(out, i)
		}
	}
	return out
}

// Value is the tagged-union runtime value flowing through the
// evaluation graph: exactly one of Number, Pool, or List is meaningful,
// selected by Kind.
type Value struct {
	Kind   hir.Type
	Number int32
	Exact  float64 // TNumber only: the pre-collapse float this Number was rounded from
	Pool   *Pool
	List   []int32
}

// AsNumber coerces v to Number per spec.md §3's coercion rules. The
// caller is responsible for never invoking this on a List value; the
// type checker guarantees no such call is ever compiled.
func (v Value) AsNumber() int32 {
	switch v.Kind {
	case hir.TNumber:
		return v.Number
	case hir.TPool, hir.TSuccessPool:
		return v.Pool.Collapse()
	default:
		return 0
	}
}

// AsFloat returns v's exact value before its final int32 collapse: the
// raw literal for a float atom, the true quotient for an avg reduction,
// or Number itself once an arithmetic operator has already forced the
// int32 domain (spec.md §4.6). Only floor/ceil/round consume this;
// every other consumer uses AsNumber.
func (v Value) AsFloat() float64 {
	switch v.Kind {
	case hir.TNumber:
		return v.Exact
	case hir.TPool, hir.TSuccessPool:
		return float64(v.Pool.Collapse())
	default:
		return 0
	}
}
