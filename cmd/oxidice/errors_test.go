package main

import (
	"errors"
	"testing"

	"github.com/xuyisen-x/oxidice"
	"github.com/xuyisen-x/oxidice/internal/diag"
	"github.com/xuyisen-x/oxidice/internal/runtime"
)

func TestExitCodeForClassifiesErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"parse", wrapError(&oxidice.ParseError{Bag: diag.NewBag()}), 2},
		{"type", wrapError(&oxidice.TypeError{Bag: diag.NewBag()}), 2},
		{"runtime-limit", wrapError(&runtime.LimitExceededError{Kind: "rounds", Limit: 5}), 3},
		{"runtime-div", wrapError(&runtime.DivisionByZeroError{}), 3},
		{"other", errors.New("boom"), 1},
	}
	for _, tc := range cases {
		if got := exitCodeFor(tc.err); got != tc.want {
			t.Fatalf("%s: exitCodeFor = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestWrapErrorPassesThroughUnknownErrors(t *testing.T) {
	if wrapError(nil) != nil {
		t.Fatalf("wrapError(nil) != nil")
	}
	plain := errors.New("flag parse error")
	if got := wrapError(plain); got != plain {
		t.Fatalf("wrapError(plain) = %v, want the same error unwrapped", got)
	}
}
