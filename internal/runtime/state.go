package runtime

import (
	"github.com/xuyisen-x/oxidice/internal/ast"
	"github.com/xuyisen-x/oxidice/internal/compiler"
	"github.com/xuyisen-x/oxidice/internal/hir"
	"github.com/xuyisen-x/oxidice/internal/numeric"
	"github.com/xuyisen-x/oxidice/internal/rng"
	"github.com/xuyisen-x/oxidice/internal/trace"
)

// Options bounds one evaluation (spec.md §6): both limits are required
// and must be strictly positive, enforced by the caller (the top-level
// oxidice package) before Run is ever invoked.
type Options struct {
	RecursionLimit int64 // max runtime rounds
	DiceCountLimit int64 // max total RNG draws, including rerolls and explosions
}

// Result is the outcome of an evaluation: the resolved root value and
// the trace of how it was reached. When Run also returns an error, Value
// is meaningless and the trace is the part recorded before the failure.
type Result struct {
	Value  Value
	Trace  []trace.Event
	Rounds int64
	Dice   int64
}

// Run evaluates graph against src, honoring opts' budgets, and returns
// the resolved root value and its trace. On error, the returned error is
// one of *DivisionByZeroError, *EmptyReductionError, *LimitExceededError,
// or *InternalError (spec.md §7); the returned *Result is still
// non-nil and holds whatever partial trace, round count, and dice count
// were accumulated before the failure (its Value is the zero Value and
// must not be read), so a caller can still show progress on failure.
func Run(graph *compiler.Graph, opts Options, src rng.Source, tr trace.Tracer) (*Result, error) {
	st := &state{
		graph: graph, opts: opts, rng: src, tracer: tr,
		cache: make(map[compiler.NodeID]Value, graph.Len()),
	}
	val, err := st.eval(graph.Root)
	result := &Result{Value: val, Trace: tr.Events(), Rounds: st.round, Dice: st.dice}
	if err != nil {
		return result, err
	}
	return result, nil
}

// state carries one evaluation's mutable progress: the round and dice
// budget counters, the memoized resolved value of every graph node
// visited so far, and the collaborators (rng.Source, trace.Tracer) every
// dice-source node draws and reports through.
type state struct {
	graph  *compiler.Graph
	opts   Options
	rng    rng.Source
	tracer trace.Tracer
	cache  map[compiler.NodeID]Value
	round  int64
	dice   int64
}

// eval resolves id's Value, memoizing the result. Pure nodes resolve as
// soon as their children do; a KDice node runs its own round loop
// in-line the first (and only) time it is visited (spec.md §4.6). Nodes
// in this graph are single-parent (compiled 1:1 from a tree-shaped HIR
// module) so the memo exists for uniformity with the rest of the
// pipeline's Get-by-ID convention, not because sharing occurs in
// practice.
func (st *state) eval(id compiler.NodeID) (Value, error) {
	if !id.IsValid() {
		return Value{}, nil
	}
	if v, ok := st.cache[id]; ok {
		return v, nil
	}
	n := st.graph.Get(id)
	var val Value
	var err error
	switch n.Kind {
	case compiler.KConst:
		val = Value{Kind: n.Type, Number: n.ConstValue, Exact: n.ConstFloat}
	case compiler.KList:
		val, err = st.evalList(n)
	case compiler.KUnary:
		val, err = st.evalUnary(n)
	case compiler.KBinary:
		val, err = st.evalBinary(n)
	case compiler.KRepeat:
		val, err = st.evalRepeat(n)
	case compiler.KCall:
		val, err = st.evalCall(n)
	case compiler.KDice:
		val, err = st.evalDice(id, n)
	default:
		err = &InternalError{Msg: "unreachable evaluation graph node kind"}
	}
	if err != nil {
		return Value{}, err
	}
	st.cache[id] = val
	return val, nil
}

func (st *state) evalNumber(id compiler.NodeID, defaultValue int32) (int32, error) {
	if !id.IsValid() {
		return defaultValue, nil
	}
	v, err := st.eval(id)
	if err != nil {
		return 0, err
	}
	return v.AsNumber(), nil
}

func (st *state) evalList(n *compiler.Node) (Value, error) {
	list := make([]int32, len(n.Elems))
	for i, e := range n.Elems {
		v, err := st.eval(e)
		if err != nil {
			return Value{}, err
		}
		list[i] = v.AsNumber()
	}
	return Value{Kind: hir.TList, List: list}, nil
}

func (st *state) evalUnary(n *compiler.Node) (Value, error) {
	v, err := st.eval(n.Operand)
	if err != nil {
		return Value{}, err
	}
	if v.Kind == hir.TList {
		out := make([]int32, len(v.List))
		for i, x := range v.List {
			out[i] = applyUnary(n.UnaryOp, x)
		}
		return Value{Kind: hir.TList, List: out}, nil
	}
	exact := v.AsFloat()
	if n.UnaryOp == hir.UnaryMinus {
		exact = -exact
	}
	return Value{Kind: hir.TNumber, Number: applyUnary(n.UnaryOp, v.AsNumber()), Exact: exact}, nil
}

func applyUnary(op hir.UnaryOp, v int32) int32 {
	if op == hir.UnaryMinus {
		return numeric.Neg(v)
	}
	return v
}

func (st *state) evalBinary(n *compiler.Node) (Value, error) {
	l, err := st.eval(n.LHS)
	if err != nil {
		return Value{}, err
	}
	r, err := st.eval(n.RHS)
	if err != nil {
		return Value{}, err
	}
	if l.Kind == hir.TList || r.Kind == hir.TList {
		return st.evalBinaryList(n.BinOp, l, r)
	}
	v, err := st.applyBinOp(n.BinOp, l.AsNumber(), r.AsNumber())
	if err != nil {
		return Value{}, err
	}
	// Every binary operator forces the int32 domain (spec.md's Non-goals),
	// so nothing downstream needs more precision than v itself carries.
	return Value{Kind: hir.TNumber, Number: v, Exact: float64(v)}, nil
}

func (st *state) applyBinOp(op hir.BinOp, l, r int32) (int32, error) {
	switch op {
	case hir.BinAdd:
		return numeric.Add(l, r), nil
	case hir.BinSub:
		return numeric.Sub(l, r), nil
	case hir.BinMul:
		return numeric.Mul(l, r), nil
	case hir.BinDiv:
		if r == 0 {
			return 0, &DivisionByZeroError{}
		}
		return numeric.TruncDiv(l, r), nil
	case hir.BinFloorDiv:
		if r == 0 {
			return 0, &DivisionByZeroError{}
		}
		return numeric.FloorDiv(l, r), nil
	case hir.BinMod:
		if r == 0 {
			return 0, &DivisionByZeroError{}
		}
		return numeric.Mod(l, r), nil
	default:
		return 0, &InternalError{Msg: "unknown binary operator"}
	}
}

func (st *state) evalBinaryList(op hir.BinOp, l, r Value) (Value, error) {
	if l.Kind == hir.TList && r.Kind == hir.TList {
		if op != hir.BinAdd {
			return Value{}, &InternalError{Msg: "list-list operator other than + reached the runtime"}
		}
		out := append(append([]int32{}, l.List...), r.List...)
		return Value{Kind: hir.TList, List: out}, nil
	}
	if l.Kind == hir.TList {
		out := make([]int32, len(l.List))
		rv := r.AsNumber()
		for i, v := range l.List {
			res, err := st.applyBinOp(op, v, rv)
			if err != nil {
				return Value{}, err
			}
			out[i] = res
		}
		return Value{Kind: hir.TList, List: out}, nil
	}
	out := make([]int32, len(r.List))
	lv := l.AsNumber()
	for i, v := range r.List {
		res, err := st.applyBinOp(op, lv, v)
		if err != nil {
			return Value{}, err
		}
		out[i] = res
	}
	return Value{Kind: hir.TList, List: out}, nil
}

func (st *state) evalRepeat(n *compiler.Node) (Value, error) {
	v, err := st.eval(n.RepeatList)
	if err != nil {
		return Value{}, err
	}
	if n.RepeatN <= 0 {
		return Value{Kind: hir.TList, List: nil}, nil
	}
	out := make([]int32, 0, len(v.List)*int(n.RepeatN))
	for i := int32(0); i < n.RepeatN; i++ {
		out = append(out, v.List...)
	}
	return Value{Kind: hir.TList, List: out}, nil
}

// evalCmp compiles a CmpSpec into a predicate. hasDefault permits the
// explode/compound default of "matches the face's maximum" when the
// modifier omitted its comparison (spec.md §4.3); sf/df/cs/reroll always
// require an explicit comparison and pass hasDefault=false.
func (st *state) evalCmp(spec compiler.CmpSpec, maxFace int32, hasDefault bool) (func(int32) bool, error) {
	if spec.Op == ast.CmpNone {
		if !hasDefault {
			return func(int32) bool { return false }, nil
		}
		return func(v int32) bool { return v == maxFace }, nil
	}
	operand, err := st.evalNumber(spec.Operand, 0)
	if err != nil {
		return nil, err
	}
	switch spec.Op {
	case ast.CmpEq:
		return func(v int32) bool { return v == operand }, nil
	case ast.CmpNe:
		return func(v int32) bool { return v != operand }, nil
	case ast.CmpLe:
		return func(v int32) bool { return v <= operand }, nil
	case ast.CmpLt:
		return func(v int32) bool { return v < operand }, nil
	case ast.CmpGe:
		return func(v int32) bool { return v >= operand }, nil
	case ast.CmpGt:
		return func(v int32) bool { return v > operand }, nil
	default:
		return nil, &InternalError{Msg: "unknown comparison operator"}
	}
}
