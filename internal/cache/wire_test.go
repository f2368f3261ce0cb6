package cache_test

import (
	"reflect"
	"testing"

	"github.com/xuyisen-x/oxidice/internal/cache"
	"github.com/xuyisen-x/oxidice/internal/trace"
)

func TestEncodeDecodeTraceRoundTrips(t *testing.T) {
	events := []trace.Event{
		{Seq: 1, Round: 1, Kind: trace.KindRoundBoundary, NodeID: 3},
		{Seq: 2, Round: 1, Kind: trace.KindRollDrawn, NodeID: 3, RollIndex: 0, Value: 6, ParentIndex: -1},
		{Seq: 3, Round: 1, Kind: trace.KindModifierApplied, NodeID: 3, ModKind: "kh", Detail: "dropped 0 of 1 live dice"},
		{Seq: 4, Round: 1, Kind: trace.KindValueResolved, NodeID: 3, ResolvedValue: 6},
	}

	data, err := cache.EncodeTrace(events)
	if err != nil {
		t.Fatalf("EncodeTrace: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("EncodeTrace returned no bytes")
	}

	got, err := cache.DecodeTrace(data)
	if err != nil {
		t.Fatalf("DecodeTrace: %v", err)
	}
	if !reflect.DeepEqual(events, got) {
		t.Fatalf("round-trip mismatch:\n got  %+v\n want %+v", got, events)
	}
}

func TestEncodeDecodeEmptyTrace(t *testing.T) {
	data, err := cache.EncodeTrace(nil)
	if err != nil {
		t.Fatalf("EncodeTrace: %v", err)
	}
	got, err := cache.DecodeTrace(data)
	if err != nil {
		t.Fatalf("DecodeTrace: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d events, want 0", len(got))
	}
}
