// Package rng isolates the engine's one nondeterministic collaborator
// (spec.md §6, "the random bit source (pluggable)") behind a synchronous
// interface, the way the teacher compiler isolates wall-clock access
// behind its own narrow interfaces rather than calling into the stdlib
// directly from business logic.
package rng

import "math/rand/v2"

// FaceKind discriminates a DieSpec's face set.
type FaceKind uint8

const (
	// FaceCount draws a uniform integer in [1, N].
	FaceCount FaceKind = iota
	// FaceFate draws a uniform value in {-1, 0, +1}.
	FaceFate
	// FaceCoin draws a uniform value in {0, 1}.
	FaceCoin
)

// DieSpec is the closed sum type describing what a single draw samples
// from (spec.md §6).
type DieSpec struct {
	Kind  FaceKind
	Faces int32 // meaningful only when Kind == FaceCount
}

// Faces returns a DieSpec for an n-sided numbered die.
func Faces(n int32) DieSpec { return DieSpec{Kind: FaceCount, Faces: n} }

// Fate returns the DieSpec for a Fate/Fudge die.
func Fate() DieSpec { return DieSpec{Kind: FaceFate} }

// Coin returns the DieSpec for a coin-flip die.
func Coin() DieSpec { return DieSpec{Kind: FaceCoin} }

// Source is the synchronous RNG contract every evaluation draws through.
// Implementations must be safe to reuse across evaluations (no
// cross-call mutable state beyond their own seed) but need not be
// goroutine-safe, matching spec.md §5's single-threaded-per-call model.
type Source interface {
	Draw(spec DieSpec) int32
}

// MathRand is the one concrete Source this module ships, built on
// math/rand/v2's PCG algorithm. spec.md's Non-goals keep any specific RNG
// algorithm out of the engine core's responsibility; this is simply the
// idiomatic stdlib choice, seedable for the determinism property (spec.md
// §8).
type MathRand struct {
	r *rand.Rand
}

// NewMathRand returns a MathRand seeded deterministically from seed.
func NewMathRand(seed uint64) *MathRand {
	return &MathRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Draw implements Source.
func (m *MathRand) Draw(spec DieSpec) int32 {
	switch spec.Kind {
	case FaceFate:
		return int32(m.r.IntN(3)) - 1
	case FaceCoin:
		return int32(m.r.IntN(2))
	default:
		if spec.Faces <= 0 {
			return 0
		}
		return int32(m.r.IntN(int(spec.Faces))) + 1
	}
}
