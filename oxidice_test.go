package oxidice_test

import (
	"errors"
	"testing"

	"github.com/xuyisen-x/oxidice"
	"github.com/xuyisen-x/oxidice/internal/rng"
)

func TestOptionsValidation(t *testing.T) {
	cases := []oxidice.Options{
		{RecursionLimit: 0, DiceCountLimit: 100},
		{RecursionLimit: 100, DiceCountLimit: 0},
		{RecursionLimit: -1, DiceCountLimit: 100},
	}
	for _, opts := range cases {
		if _, err := oxidice.Validate("1d6", opts); err == nil {
			t.Fatalf("Validate(%+v) = nil error, want a validation error", opts)
		}
	}
}

func validOpts() oxidice.Options {
	return oxidice.Options{RecursionLimit: 1000, DiceCountLimit: 100000}
}

func TestValidateAcceptsWellFormedExpression(t *testing.T) {
	prog, err := oxidice.Validate("3d6kh2 + 1", validOpts())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if prog.Module == nil {
		t.Fatalf("expected a non-nil lowered module")
	}
}

func TestValidateRejectsSyntaxError(t *testing.T) {
	_, err := oxidice.Validate("3d +", validOpts())
	var parseErr *oxidice.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("err = %v (%T), want *oxidice.ParseError", err, err)
	}
}

func TestValidateRejectsTypeError(t *testing.T) {
	// tolist requires a DicePool or SuccessPool operand, not a bare Number.
	_, err := oxidice.Validate("tolist(3)", validOpts())
	var typeErr *oxidice.TypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("err = %v (%T), want *oxidice.TypeError", err, err)
	}
}

type stepSource struct {
	seq []int32
	i   int
}

func (s *stepSource) Draw(rng.DieSpec) int32 {
	if len(s.seq) == 0 {
		return 0
	}
	v := s.seq[s.i]
	if s.i < len(s.seq)-1 {
		s.i++
	}
	return v
}

func TestEvaluateAndRender(t *testing.T) {
	result, err := oxidice.Evaluate("2d6 + 1", validOpts(), &stepSource{seq: []int32{3, 4}})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got := result.Value.AsNumber(); got != 8 {
		t.Fatalf("value = %d, want 8", got)
	}
	tree := oxidice.Render(result)
	if tree.Root == nil {
		t.Fatalf("Render returned a nil root")
	}
}

func TestEvaluateReusesCompiledGraph(t *testing.T) {
	// Two evaluations of the same source with different draw sequences
	// must each resolve against their own draws, proving the cached
	// compiled graph carries no per-run state.
	a, err := oxidice.Evaluate("1d6", validOpts(), &stepSource{seq: []int32{2}})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	b, err := oxidice.Evaluate("1d6", validOpts(), &stepSource{seq: []int32{5}})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if a.Value.AsNumber() != 2 {
		t.Fatalf("a = %d, want 2", a.Value.AsNumber())
	}
	if b.Value.AsNumber() != 5 {
		t.Fatalf("b = %d, want 5", b.Value.AsNumber())
	}
}
