package runtime

import (
	"math"
	"sort"

	"github.com/xuyisen-x/oxidice/internal/compiler"
	"github.com/xuyisen-x/oxidice/internal/hir"
	"github.com/xuyisen-x/oxidice/internal/numeric"
)

// evalCall evaluates one of the closed builtin functions (spec.md §4.2)
// against already-evaluated argument Values.
func (st *state) evalCall(n *compiler.Node) (Value, error) {
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := st.eval(a)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	switch n.Builtin {
	case hir.BFloor, hir.BCeil, hir.BRound, hir.BAbs:
		v := applyMathFn(n.Builtin, args[0])
		return Value{Kind: hir.TNumber, Number: v, Exact: float64(v)}, nil
	case hir.BMax, hir.BMin:
		return st.evalMaxMin(n, args)
	case hir.BAvg:
		avg := avgFloat(foldFloats(args))
		return Value{Kind: hir.TNumber, Number: numeric.FromFloat(avg), Exact: avg}, nil
	case hir.BSum, hir.BLen:
		vs := foldNumbers(args)
		v := reduceFn(n.Builtin, vs)
		return Value{Kind: hir.TNumber, Number: v, Exact: float64(v)}, nil
	case hir.BSort, hir.BSortD:
		vs := append([]int32(nil), foldNumbers(args)...)
		if n.Builtin == hir.BSort {
			sort.Slice(vs, func(i, j int) bool { return vs[i] < vs[j] })
		} else {
			sort.Slice(vs, func(i, j int) bool { return vs[i] > vs[j] })
		}
		return Value{Kind: hir.TList, List: vs}, nil
	case hir.BToList:
		return Value{Kind: hir.TList, List: poolToList(args[0])}, nil
	case hir.BFilter:
		return st.evalFilter(n, args)
	default:
		return Value{}, &InternalError{Msg: "unreachable builtin " + n.Builtin.String()}
	}
}

// foldNumbers folds a builtin call's arguments the same way lowering
// typed them: a single List argument stands for its elements, otherwise
// every scalar Number-like argument in order (spec.md §4.2).
func foldNumbers(args []Value) []int32 {
	if len(args) == 1 && args[0].Kind == hir.TList {
		return args[0].List
	}
	out := make([]int32, len(args))
	for i, a := range args {
		out[i] = a.AsNumber()
	}
	return out
}

// foldFloats is foldNumbers' exact-value counterpart, used only by avg so
// a fractional argument (a float literal, or another avg call) survives
// to feed a later floor/ceil/round rather than truncating early.
func foldFloats(args []Value) []float64 {
	if len(args) == 1 && args[0].Kind == hir.TList {
		out := make([]float64, len(args[0].List))
		for i, v := range args[0].List {
			out[i] = float64(v)
		}
		return out
	}
	out := make([]float64, len(args))
	for i, a := range args {
		out[i] = a.AsFloat()
	}
	return out
}

func avgFloat(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var total float64
	for _, v := range vs {
		total += v
	}
	return total / float64(len(vs))
}

func poolToList(v Value) []int32 {
	if v.Pool == nil {
		return nil
	}
	var out []int32
	for _, r := range v.Pool.Rolls {
		if r.Dropped || r.Removed {
			continue
		}
		out = append(out, r.Value)
	}
	return out
}

// applyMathFn implements floor/ceil/round/abs (spec.md §4.2). floor/ceil/
// round read v's pre-collapse exact value and round with the real math
// functions before the int32 collapse; abs commutes with the domain's
// truncate-toward-zero coercion so it can stay in the int32 domain
// (ground truth: original_source/src/runtime_engine.rs:211-222).
func applyMathFn(b hir.Builtin, v Value) int32 {
	switch b {
	case hir.BAbs:
		return numeric.Abs(v.AsNumber())
	case hir.BFloor:
		return numeric.FromFloat(math.Floor(v.AsFloat()))
	case hir.BCeil:
		return numeric.FromFloat(math.Ceil(v.AsFloat()))
	case hir.BRound:
		return numeric.FromFloat(math.Round(v.AsFloat()))
	default:
		return v.AsNumber()
	}
}

func (st *state) evalMaxMin(n *compiler.Node, args []Value) (Value, error) {
	if args[0].Kind == hir.TList {
		switch len(args) {
		case 1:
			if len(args[0].List) == 0 {
				return Value{}, &EmptyReductionError{Builtin: n.Builtin.String()}
			}
			v := reduceMaxMin(n.Builtin, args[0].List)
			return Value{Kind: hir.TNumber, Number: v, Exact: float64(v)}, nil
		case 2:
			k := args[1].AsNumber()
			return Value{Kind: hir.TList, List: topN(n.Builtin, args[0].List, k)}, nil
		}
	}
	vs := foldNumbers(args)
	if len(vs) == 0 {
		return Value{}, &EmptyReductionError{Builtin: n.Builtin.String()}
	}
	v := reduceMaxMin(n.Builtin, vs)
	return Value{Kind: hir.TNumber, Number: v, Exact: float64(v)}, nil
}

func reduceMaxMin(b hir.Builtin, vs []int32) int32 {
	best := vs[0]
	for _, v := range vs[1:] {
		if (b == hir.BMax && v > best) || (b == hir.BMin && v < best) {
			best = v
		}
	}
	return best
}

// reduceFn implements sum/len. avg has its own float-preserving path
// (see foldFloats/avgFloat) so ceil(avg(...)) sees the true quotient
// rather than one truncated on the way in.
func reduceFn(b hir.Builtin, vs []int32) int32 {
	switch b {
	case hir.BLen:
		return numeric.FromInt64(int64(len(vs)))
	case hir.BSum:
		var total int32
		for _, v := range vs {
			total = numeric.Add(total, v)
		}
		return total
	default:
		return 0
	}
}

// topN selects the k most extreme elements of vs, then re-sorts the
// selection back to original index order (ground truth:
// top_n_preserve_order in the reference typechecker).
func topN(b hir.Builtin, vs []int32, k int32) []int32 {
	idx := make([]int, len(vs))
	for i := range idx {
		idx[i] = i
	}
	if b == hir.BMax {
		sort.Slice(idx, func(i, j int) bool { return vs[idx[i]] > vs[idx[j]] })
	} else {
		sort.Slice(idx, func(i, j int) bool { return vs[idx[i]] < vs[idx[j]] })
	}
	if k < 0 {
		k = 0
	}
	if int(k) < len(idx) {
		idx = idx[:k]
	}
	sort.Ints(idx)
	out := make([]int32, len(idx))
	for i, j := range idx {
		out[i] = vs[j]
	}
	return out
}

func (st *state) evalFilter(n *compiler.Node, args []Value) (Value, error) {
	vs := foldNumbers(args)
	cmp, err := st.evalCmp(n.FilterCmp, 0, false)
	if err != nil {
		return Value{}, err
	}
	var out []int32
	for _, v := range vs {
		if cmp(v) {
			out = append(out, v)
		}
	}
	return Value{Kind: hir.TList, List: out}, nil
}
