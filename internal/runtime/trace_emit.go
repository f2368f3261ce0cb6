package runtime

import (
	"github.com/xuyisen-x/oxidice/internal/compiler"
	"github.com/xuyisen-x/oxidice/internal/trace"
)

func (st *state) emitRoll(id compiler.NodeID, rollIndex, value, parentIndex int32, chainKind string) {
	st.tracer.Emit(trace.Event{
		Round: int32(st.round), Kind: trace.KindRollDrawn, NodeID: uint32(id),
		RollIndex: rollIndex, Value: value, ParentIndex: parentIndex, ChainKind: chainKind,
	})
}

func (st *state) emitRoundBoundary() {
	st.tracer.Emit(trace.Event{Round: int32(st.round), Kind: trace.KindRoundBoundary})
}

func (st *state) emitModifierApplied(id compiler.NodeID, modKind, detail string) {
	st.tracer.Emit(trace.Event{
		Round: int32(st.round), Kind: trace.KindModifierApplied, NodeID: uint32(id),
		ModKind: modKind, Detail: detail,
	})
}

func (st *state) emitValueResolved(id compiler.NodeID, value int32) {
	st.tracer.Emit(trace.Event{
		Round: int32(st.round), Kind: trace.KindValueResolved, NodeID: uint32(id),
		ResolvedValue: value,
	})
}
