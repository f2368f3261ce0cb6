package runtime_test

import (
	"errors"
	"testing"

	"github.com/xuyisen-x/oxidice/internal/runtime"
	"github.com/xuyisen-x/oxidice/internal/trace"
)

func mustRun(t *testing.T, src string, seq []int32, opts runtime.Options) *runtime.Result {
	t.Helper()
	graph := compileSource(t, src)
	tr := trace.NewRingTracer(16)
	result, err := runtime.Run(graph, opts, &fixedSource{seq: seq}, tr)
	if err != nil {
		t.Fatalf("Run(%q): %v", src, err)
	}
	return result
}

func defaultOpts() runtime.Options {
	return runtime.Options{RecursionLimit: 1000, DiceCountLimit: 100000}
}

// spec.md §8 scenario 1: 3d20dl + 1, rolls [5,19,7], expect the lowest
// (5) dropped and a collapsed value of 27.
func TestDropLowestThenAdd(t *testing.T) {
	result := mustRun(t, "3d20dl + 1", []int32{5, 19, 7}, defaultOpts())
	if got := result.Value.AsNumber(); got != 27 {
		t.Fatalf("value = %d, want 27", got)
	}
}

// spec.md §8 scenario 2: 4d20cs>=5df>19 + 1, rolls [5,20,7,1], expect
// tags [S,F,S,N] and a collapsed value of 2 (2 successes - 1 failure = 1,
// +1 = 2).
func TestSuccessAndFailureTagging(t *testing.T) {
	result := mustRun(t, "4d20cs>=5df>19 + 1", []int32{5, 20, 7, 1}, defaultOpts())
	if got := result.Value.AsNumber(); got != 2 {
		t.Fatalf("value = %d, want 2", got)
	}
}

// A nested dice-source count: (1d6)d8! draws its count from a prior
// dice roll, then explodes at least once. Verified against this
// implementation's own explode-termination rule (Roll.Exploded) rather
// than spec.md's illustrative numbers, since only the die that most
// recently exploded remains eligible to re-trigger.
func TestNestedDiceCountWithExplode(t *testing.T) {
	// draws: 1d6 -> 2; 2d8 -> [8,3]; explode(die0=8) -> 8; explode(newest=8) -> 2
	result := mustRun(t, "(1d6)d8!", []int32{2, 8, 3, 8, 2}, defaultOpts())
	if got := result.Value.AsNumber(); got != 21 {
		t.Fatalf("value = %d, want 21 (8+3+8+2)", got)
	}
	if result.Rounds != 4 {
		t.Fatalf("rounds = %d, want 4", result.Rounds)
	}
}

// spec.md §8 scenario 4: max([1d6,2d6,3d6], 2) with rolls 1d6->4,
// 2d6->[3,5]=8, 3d6->[1,2,6]=9: the top two collapsed values are {8,9},
// returned in their original list order (index 1 before index 2).
func TestMaxTopTwoOfList(t *testing.T) {
	result := mustRun(t, "max([1d6,2d6,3d6], 2)", []int32{4, 3, 5, 1, 2, 6}, defaultOpts())
	if result.Value.List == nil {
		t.Fatalf("expected a list result, got %+v", result.Value)
	}
	want := []int32{8, 9}
	if len(result.Value.List) != len(want) {
		t.Fatalf("list = %v, want %v", result.Value.List, want)
	}
	for i := range want {
		if result.Value.List[i] != want[i] {
			t.Fatalf("list = %v, want %v", result.Value.List, want)
		}
	}
}

// spec.md §8 scenario 6: 1d6r<8 with recursion_limit=5 fails with
// LimitExceeded(rounds) once the reroll never stops matching (every d6
// face is < 8), and the trace records every roll charged before failure.
func TestRerollExhaustsRecursionLimit(t *testing.T) {
	graph := compileSource(t, "1d6r<8")
	tr := trace.NewRingTracer(16)
	src := &fixedSource{seq: []int32{3}} // repeats 3 forever; always < 8
	_, err := runtime.Run(graph, runtime.Options{RecursionLimit: 5, DiceCountLimit: 1000}, src, tr)
	if err == nil {
		t.Fatalf("expected a LimitExceededError, got nil")
	}
	var limitErr *runtime.LimitExceededError
	if !errors.As(err, &limitErr) {
		t.Fatalf("error = %v (%T), want *runtime.LimitExceededError", err, err)
	}
	if limitErr.Kind != "rounds" {
		t.Fatalf("limit kind = %q, want %q", limitErr.Kind, "rounds")
	}

	rolls := 0
	for _, ev := range tr.Events() {
		if ev.Kind == trace.KindRollDrawn {
			rolls++
		}
	}
	if rolls != 5 {
		t.Fatalf("recorded rolls = %d, want 5", rolls)
	}
}

// spec.md §7: a runtime error still carries whatever partial trace,
// round count, and dice count were accumulated before the failure,
// instead of discarding them along with the error.
func TestRunReturnsPartialResultOnError(t *testing.T) {
	graph := compileSource(t, "1d6r<8")
	tr := trace.NewRingTracer(16)
	src := &fixedSource{seq: []int32{3}} // always < 8, so r never settles
	result, err := runtime.Run(graph, runtime.Options{RecursionLimit: 5, DiceCountLimit: 1000}, src, tr)
	if err == nil {
		t.Fatalf("expected a LimitExceededError, got nil")
	}
	if result == nil {
		t.Fatalf("Run returned a nil *Result alongside a runtime error; the partial trace is lost")
	}
	// chargeRound increments the round counter before checking the limit,
	// so the failing call still leaves its mark: 1 initial roll + 4
	// settled rerolls (5 dice drawn) + the 6th round that trips the limit.
	if result.Rounds != 6 {
		t.Fatalf("result.Rounds = %d, want 6", result.Rounds)
	}
	if result.Dice != 5 {
		t.Fatalf("result.Dice = %d, want 5", result.Dice)
	}
	rolls := 0
	for _, ev := range result.Trace {
		if ev.Kind == trace.KindRollDrawn {
			rolls++
		}
	}
	if rolls != 5 {
		t.Fatalf("result.Trace recorded %d rolls, want 5", rolls)
	}
}

// The tolerant domain property (spec.md §8): for x<=0 or y<=0, "x d y"
// collapses to 0 rather than drawing or erroring.
func TestTolerantDomainNonPositiveDice(t *testing.T) {
	cases := []string{"0d6", "3d0", "(1-3)d6"}
	for _, src := range cases {
		result := mustRun(t, src, nil, defaultOpts())
		if got := result.Value.AsNumber(); got != 0 {
			t.Fatalf("%q collapsed to %d, want 0", src, got)
		}
		if result.Dice != 0 {
			t.Fatalf("%q drew %d dice, want 0", src, result.Dice)
		}
	}
}

// DivisionByZeroError for / against a zero-collapsing right-hand side
// (spec.md §7).
func TestDivisionByZero(t *testing.T) {
	graph := compileSource(t, "5 / 0")
	tr := trace.NewRingTracer(4)
	_, err := runtime.Run(graph, defaultOpts(), &fixedSource{}, tr)
	var divErr *runtime.DivisionByZeroError
	if !errors.As(err, &divErr) {
		t.Fatalf("error = %v (%T), want *runtime.DivisionByZeroError", err, err)
	}
}

// max/min raise EmptyReductionError on an empty list, but sum/avg/len
// tolerate it (spec.md §4.2 builtin table).
func TestEmptyReductionErrorVsTolerantBuiltins(t *testing.T) {
	graph := compileSource(t, "max(filter>0([]))")
	tr := trace.NewRingTracer(4)
	_, err := runtime.Run(graph, defaultOpts(), &fixedSource{}, tr)
	var emptyErr *runtime.EmptyReductionError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("error = %v (%T), want *runtime.EmptyReductionError", err, err)
	}

	for _, src := range []string{"sum(filter>0([]))", "avg(filter>0([]))", "len(filter>0([]))"} {
		result := mustRun(t, src, nil, defaultOpts())
		if got := result.Value.AsNumber(); got != 0 {
			t.Fatalf("%q = %d, want 0", src, got)
		}
	}
}

// Bare "!!" (compound) with no explicit mod_param defaults to exact
// equality against the face max (spec.md §4.3), not "at or above": once
// the accumulated value exceeds the face max after one compound, it
// must stop matching rather than keep compounding forever.
func TestCompoundDefaultComparatorStopsAtExactMax(t *testing.T) {
	result := mustRun(t, "1d6!!", []int32{6, 6}, defaultOpts())
	if got := result.Value.AsNumber(); got != 12 {
		t.Fatalf("value = %d, want 12 (6 initial + 6 compounded, then stop)", got)
	}
	if result.Rounds != 2 {
		t.Fatalf("rounds = %d, want 2", result.Rounds)
	}
}

// floor/ceil/round read the float literal's real fraction instead of an
// int32 already truncated toward zero on the way in (spec.md §4.6;
// ground truth: original_source/src/runtime_engine.rs:211-222). avg's
// internal division stays exact until a consumer like ceil collapses it.
func TestMathFnsUseRealFraction(t *testing.T) {
	cases := []struct {
		src  string
		want int32
	}{
		{"floor(2.7)", 2},
		{"ceil(2.3)", 3},
		{"round(2.7)", 3},
		{"round(2.3)", 2},
		{"ceil(-2.3)", -2},
		{"floor(-2.3)", -3},
		{"ceil(avg([1, 2]))", 2},
		{"floor(avg([1, 2]))", 1},
		{"abs(-2.3)", 2},
	}
	for _, c := range cases {
		result := mustRun(t, c.src, nil, defaultOpts())
		if got := result.Value.AsNumber(); got != c.want {
			t.Fatalf("%q = %d, want %d", c.src, got, c.want)
		}
	}
}

// The same fix exercised through the runtime's own floor/ceil/avg path
// (internal/runtime/calls.go) rather than the optimizer's constant-fold
// path (internal/optimize/fold.go): a dice-dependent avg can never fold
// at compile time, so this is the only way a literal source ever reaches
// applyMathFn/avgFloat with a genuine fraction still attached.
func TestMathFnsUseRealFractionThroughDice(t *testing.T) {
	// 1d6 -> 3, 2d6 -> [2,4] (sum 6): avg([3,6]) = 4.5.
	seq := []int32{3, 2, 4}
	if got := mustRun(t, "ceil(avg([1d6, 2d6]))", seq, defaultOpts()).Value.AsNumber(); got != 5 {
		t.Fatalf("ceil(avg(...)) = %d, want 5", got)
	}
	if got := mustRun(t, "floor(avg([1d6, 2d6]))", seq, defaultOpts()).Value.AsNumber(); got != 4 {
		t.Fatalf("floor(avg(...)) = %d, want 4", got)
	}
	if got := mustRun(t, "round(avg([1d6, 2d6]))", seq, defaultOpts()).Value.AsNumber(); got != 5 {
		t.Fatalf("round(avg(...)) = %d, want 5 (math.Round rounds half away from zero)", got)
	}
}

// Determinism (spec.md §8): the same source and the same draw sequence
// always resolve to the same value and identical trace kinds.
func TestDeterminism(t *testing.T) {
	graph := compileSource(t, "4d6kh3 + 2")
	seq := []int32{6, 1, 4, 3}
	a, err := runtime.Run(graph, defaultOpts(), &fixedSource{seq: append([]int32(nil), seq...)}, trace.NewRingTracer(8))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	b, err := runtime.Run(graph, defaultOpts(), &fixedSource{seq: append([]int32(nil), seq...)}, trace.NewRingTracer(8))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if a.Value.AsNumber() != b.Value.AsNumber() {
		t.Fatalf("nondeterministic value: %d vs %d", a.Value.AsNumber(), b.Value.AsNumber())
	}
	if len(a.Trace) != len(b.Trace) {
		t.Fatalf("nondeterministic trace length: %d vs %d", len(a.Trace), len(b.Trace))
	}
	for i := range a.Trace {
		if a.Trace[i].Kind != b.Trace[i].Kind {
			t.Fatalf("trace[%d] kind mismatch: %v vs %v", i, a.Trace[i].Kind, b.Trace[i].Kind)
		}
	}
}
