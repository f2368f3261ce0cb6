// Package trace records the runtime's execution narrative: every roll
// drawn, every modifier outcome, and every round boundary (spec.md §4.6,
// §7's "every runtime error includes whatever partial trace was
// accumulated"). Grounded on the teacher compiler's internal/trace
// (Event/Tracer/Kind/Level shape) with a domain vocabulary of dice
// events instead of compiler-pass events, and no wall-clock timestamps —
// this trace must be byte-identical across runs given the same seed
// (spec.md §8's determinism property), so nothing time-dependent is
// recorded.
package trace

// Kind discriminates a trace Event, one case per runtime happening spec.md
// §4.6 names as animatable.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindRollDrawn records a single die draw.
	KindRollDrawn
	// KindModifierApplied records one modifier's outcome on a pool.
	KindModifierApplied
	// KindRoundBoundary marks the start of a new runtime round.
	KindRoundBoundary
	// KindValueResolved records a graph node reaching its final value.
	KindValueResolved
)

func (k Kind) String() string {
	switch k {
	case KindRollDrawn:
		return "roll_drawn"
	case KindModifierApplied:
		return "modifier_applied"
	case KindRoundBoundary:
		return "round_boundary"
	case KindValueResolved:
		return "value_resolved"
	default:
		return "invalid"
	}
}

// Event is a single recorded happening. Only the fields relevant to Kind
// are meaningful, following the same tagged-struct convention as
// internal/ast.Expr and internal/hir.Node.
type Event struct {
	Seq   uint64 // global sequence number, assigned by the Tracer
	Round int32  // runtime round this event belongs to (spec.md §4.6)
	Kind  Kind

	NodeID uint32 // compiler graph node this event concerns

	// KindRollDrawn
	RollIndex   int32  // 0-based index of this die within its pool
	Value       int32  // rolled value
	ParentIndex int32  // -1 for an original roll; otherwise the index of the die this one replaces or is exploded from
	ChainKind   string // "reroll" | "explode" | "compound" | "" for an original roll

	// KindModifierApplied
	ModKind string // e.g. "kh", "r", "cs"
	Detail  string // short human-readable summary, e.g. "dropped 1 of 3 live dice"

	// KindValueResolved
	ResolvedValue int32
}
