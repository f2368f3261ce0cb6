package optimize

import (
	"math"
	"sort"

	"github.com/xuyisen-x/oxidice/internal/hir"
	"github.com/xuyisen-x/oxidice/internal/numeric"
)

// foldConstants walks the subtree rooted at id bottom-up, collapsing any
// node whose value can be computed without dice or without observing a
// modifier outcome into a literal HInt/HList node (spec.md §4.4); a
// Number whose exact value has a fraction becomes an HFloat instead, so
// an enclosing floor/ceil/round still sees the fraction. It returns
// whether anything changed.
func foldConstants(mod *hir.Module, id hir.NodeID) bool {
	n := mod.Get(id)
	if n == nil {
		return false
	}
	changed := false
	for _, child := range children(n) {
		if child.IsValid() && foldConstants(mod, child) {
			changed = true
		}
	}
	switch n.Type {
	case hir.TNumber:
		if v, ok := evalNumber(mod, id); ok {
			if f, fok := evalFloat(mod, id); fok && f != float64(v) {
				if n.Kind != hir.HFloat || n.FloatVal != f {
					*n = hir.Node{Kind: hir.HFloat, Type: hir.TNumber, FloatVal: f, Span: n.Span}
					changed = true
				}
			} else if n.Kind != hir.HInt || n.IntVal != int64(v) {
				*n = hir.Node{Kind: hir.HInt, Type: hir.TNumber, IntVal: int64(v), Span: n.Span}
				changed = true
			}
		}
	case hir.TList:
		if vs, ok := evalList(mod, id); ok {
			if !isLiteralList(mod, n, vs) {
				elems := make([]hir.NodeID, len(vs))
				for i, v := range vs {
					elems[i] = mod.New(hir.Node{Kind: hir.HInt, Type: hir.TNumber, IntVal: int64(v), Span: n.Span})
				}
				*n = hir.Node{Kind: hir.HList, Type: hir.TList, Elems: elems, Span: n.Span}
				changed = true
			}
		}
	}
	return changed
}

func isLiteralList(mod *hir.Module, n *hir.Node, vs []int32) bool {
	if n.Kind != hir.HList || len(n.Elems) != len(vs) {
		return false
	}
	for i, e := range n.Elems {
		en := mod.Get(e)
		if en == nil || en.Kind != hir.HInt || en.IntVal != int64(vs[i]) {
			return false
		}
	}
	return true
}

// children returns every NodeID field relevant to n's Kind, used to walk
// the tree generically regardless of node shape.
func children(n *hir.Node) []hir.NodeID {
	var out []hir.NodeID
	out = append(out, n.Elems...)
	out = append(out, n.Args...)
	if n.FilterCmp.Operand.IsValid() {
		out = append(out, n.FilterCmp.Operand)
	}
	out = append(out, n.Count, n.FaceExpr, n.Base, n.Operand, n.LHS, n.RHS, n.RepeatList)
	out = append(out, n.Mod.N, n.Mod.X, n.Mod.Cmp.Operand, n.Mod.Limit.LT, n.Mod.Limit.LC)
	return out
}

// evalNumber returns the folded Number value of a node whose children
// have already been folded (or were already literal), or false if id's
// subtree still depends on dice or a modifier outcome.
func evalNumber(mod *hir.Module, id hir.NodeID) (int32, bool) {
	n := mod.Get(id)
	if n == nil {
		return 0, false
	}
	switch n.Kind {
	case hir.HInt:
		return numeric.FromInt64(n.IntVal), true
	case hir.HFloat:
		return numeric.FromFloat(n.FloatVal), true
	case hir.HUnary:
		v, ok := evalNumber(mod, n.Operand)
		if !ok {
			return 0, false
		}
		if n.UnaryOp == hir.UnaryMinus {
			return numeric.Neg(v), true
		}
		return v, true
	case hir.HBinary:
		return evalBinaryNumber(mod, n)
	case hir.HCall:
		return evalCallNumber(mod, n)
	default:
		return 0, false
	}
}

// evalFloat is evalNumber's exact-value counterpart: it lets a fractional
// HFloat literal (or an avg of literals) survive arithmetic-free until a
// floor/ceil/round call actually consumes it, instead of being truncated
// to int32 the instant it is folded (spec.md §4.6; ground truth:
// original_source/src/runtime_engine.rs:211-222, typecheck.rs:550-557).
// Everything else funnels through evalNumber, since binary arithmetic
// forces the int32 domain regardless of which operand started as a float.
func evalFloat(mod *hir.Module, id hir.NodeID) (float64, bool) {
	n := mod.Get(id)
	if n == nil {
		return 0, false
	}
	switch n.Kind {
	case hir.HFloat:
		return n.FloatVal, true
	case hir.HInt:
		return float64(numeric.FromInt64(n.IntVal)), true
	case hir.HUnary:
		f, ok := evalFloat(mod, n.Operand)
		if !ok {
			return 0, false
		}
		if n.UnaryOp == hir.UnaryMinus {
			return -f, true
		}
		return f, true
	case hir.HCall:
		if n.Builtin == hir.BAvg {
			fs, ok := constArgsAsFloats(mod, n)
			if !ok {
				return 0, false
			}
			return avgFloat(fs), true
		}
		v, ok := evalCallNumber(mod, n)
		return float64(v), ok
	default:
		v, ok := evalNumber(mod, id)
		return float64(v), ok
	}
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

func evalBinaryNumber(mod *hir.Module, n *hir.Node) (int32, bool) {
	l, ok := evalNumber(mod, n.LHS)
	if !ok {
		return 0, false
	}
	r, ok := evalNumber(mod, n.RHS)
	if !ok {
		return 0, false
	}
	return applyBinOp(n.BinOp, l, r)
}

func applyBinOp(op hir.BinOp, l, r int32) (int32, bool) {
	switch op {
	case hir.BinAdd:
		return numeric.Add(l, r), true
	case hir.BinSub:
		return numeric.Sub(l, r), true
	case hir.BinMul:
		return numeric.Mul(l, r), true
	case hir.BinDiv:
		if r == 0 {
			return 0, false // leave DivisionByZero for the runtime to raise
		}
		return numeric.TruncDiv(l, r), true
	case hir.BinFloorDiv:
		if r == 0 {
			return 0, false
		}
		return numeric.FloorDiv(l, r), true
	case hir.BinMod:
		if r == 0 {
			return 0, false
		}
		return numeric.Mod(l, r), true
	default:
		return 0, false
	}
}

// evalList returns the folded List value of a node, or false if any
// element still depends on dice.
func evalList(mod *hir.Module, id hir.NodeID) ([]int32, bool) {
	n := mod.Get(id)
	if n == nil {
		return nil, false
	}
	switch n.Kind {
	case hir.HList:
		out := make([]int32, len(n.Elems))
		for i, e := range n.Elems {
			v, ok := evalNumber(mod, e)
			if !ok {
				return nil, false
			}
			out[i] = v
		}
		return out, true
	case hir.HRepeat:
		base, ok := evalList(mod, n.RepeatList)
		if !ok {
			return nil, false
		}
		out := make([]int32, 0, len(base)*int(n.RepeatN))
		for i := int32(0); i < n.RepeatN; i++ {
			out = append(out, base...)
		}
		return out, true
	case hir.HUnary:
		vs, ok := evalList(mod, n.Operand)
		if !ok {
			return nil, false
		}
		out := make([]int32, len(vs))
		for i, v := range vs {
			if n.UnaryOp == hir.UnaryMinus {
				out[i] = numeric.Neg(v)
			} else {
				out[i] = v
			}
		}
		return out, true
	case hir.HBinary:
		return evalBinaryList(mod, n)
	case hir.HCall:
		return evalCallList(mod, n)
	default:
		return nil, false
	}
}

func evalBinaryList(mod *hir.Module, n *hir.Node) ([]int32, bool) {
	lt, rt := mod.Get(n.LHS).Type, mod.Get(n.RHS).Type
	switch {
	case lt == hir.TList && rt == hir.TList:
		if n.BinOp != hir.BinAdd {
			return nil, false // only "+" (concatenation) is defined for List+List
		}
		l, ok := evalList(mod, n.LHS)
		if !ok {
			return nil, false
		}
		r, ok := evalList(mod, n.RHS)
		if !ok {
			return nil, false
		}
		return append(append([]int32{}, l...), r...), true
	case lt == hir.TList:
		l, ok := evalList(mod, n.LHS)
		if !ok {
			return nil, false
		}
		r, ok := evalNumber(mod, n.RHS)
		if !ok {
			return nil, false
		}
		return broadcast(n.BinOp, l, r)
	default: // rt == TList
		r, ok := evalList(mod, n.RHS)
		if !ok {
			return nil, false
		}
		l, ok := evalNumber(mod, n.LHS)
		if !ok {
			return nil, false
		}
		out := make([]int32, len(r))
		for i, v := range r {
			res, ok := applyBinOp(n.BinOp, l, v)
			if !ok {
				return nil, false
			}
			out[i] = res
		}
		return out, true
	}
}

func broadcast(op hir.BinOp, l []int32, r int32) ([]int32, bool) {
	out := make([]int32, len(l))
	for i, v := range l {
		res, ok := applyBinOp(op, v, r)
		if !ok {
			return nil, false
		}
		out[i] = res
	}
	return out, true
}

// evalCallNumber folds the Number-producing builtin calls with all-const
// arguments (spec.md §4.4: "max/min/sum/avg/len/sort/sortd/floor/ceil/
// round/abs with all-literal list arguments fold").
func evalCallNumber(mod *hir.Module, n *hir.Node) (int32, bool) {
	switch n.Builtin {
	case hir.BFloor, hir.BCeil, hir.BRound:
		f, ok := evalFloat(mod, n.Args[0])
		if !ok {
			return 0, false
		}
		return applyUnaryMathFn(n.Builtin, f), true
	case hir.BAbs:
		v, ok := evalNumber(mod, n.Args[0])
		if !ok {
			return 0, false
		}
		return numeric.Abs(v), true
	case hir.BMax, hir.BMin:
		vs, ok := constArgsAsNumbers(mod, n)
		if !ok || len(vs) == 0 {
			return 0, false
		}
		return reduceMaxMin(n.Builtin, vs), true
	case hir.BAvg:
		fs, ok := constArgsAsFloats(mod, n)
		if !ok {
			return 0, false
		}
		return numeric.FromFloat(avgFloat(fs)), true
	case hir.BSum, hir.BLen:
		vs, ok := constArgsAsNumbers(mod, n)
		if !ok {
			return 0, false
		}
		return reduceFn(n.Builtin, vs), true
	default:
		return 0, false
	}
}

func evalCallList(mod *hir.Module, n *hir.Node) ([]int32, bool) {
	switch n.Builtin {
	case hir.BSort, hir.BSortD:
		vs, ok := constArgsAsNumbers(mod, n)
		if !ok {
			return nil, false
		}
		out := append([]int32{}, vs...)
		if n.Builtin == hir.BSort {
			sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
		} else {
			sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
		}
		return out, true
	case hir.BMax, hir.BMin:
		if len(n.Args) != 2 {
			return nil, false
		}
		list, ok := evalList(mod, n.Args[0])
		if !ok {
			return nil, false
		}
		k, ok := evalNumber(mod, n.Args[1])
		if !ok {
			return nil, false
		}
		return topN(n.Builtin, list, k), true
	default:
		return nil, false
	}
}

// constArgsAsNumbers folds n's arguments as either a single all-const
// List argument or all-const scalar varargs (spec.md §4.2's "take a list
// or fold their varargs into one").
func constArgsAsNumbers(mod *hir.Module, n *hir.Node) ([]int32, bool) {
	if len(n.Args) == 1 && mod.Get(n.Args[0]).Type == hir.TList {
		return evalList(mod, n.Args[0])
	}
	out := make([]int32, len(n.Args))
	for i, a := range n.Args {
		v, ok := evalNumber(mod, a)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// constArgsAsFloats is constArgsAsNumbers' exact-value counterpart, used
// only by avg so a fractional literal argument keeps its fraction.
func constArgsAsFloats(mod *hir.Module, n *hir.Node) ([]float64, bool) {
	if len(n.Args) == 1 && mod.Get(n.Args[0]).Type == hir.TList {
		vs, ok := evalList(mod, n.Args[0])
		if !ok {
			return nil, false
		}
		out := make([]float64, len(vs))
		for i, v := range vs {
			out[i] = float64(v)
		}
		return out, true
	}
	out := make([]float64, len(n.Args))
	for i, a := range n.Args {
		f, ok := evalFloat(mod, a)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// applyUnaryMathFn implements floor/ceil/round with the real math
// functions on f's exact value, before the int32 collapse (spec.md
// §4.6). abs stays in evalCallNumber's int32-domain branch since it
// commutes with truncate-toward-zero coercion.
func applyUnaryMathFn(b hir.Builtin, f float64) int32 {
	switch b {
	case hir.BFloor:
		return numeric.FromFloat(math.Floor(f))
	case hir.BCeil:
		return numeric.FromFloat(math.Ceil(f))
	default: // hir.BRound
		return numeric.FromFloat(math.Round(f))
	}
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
// (see constArgsAsFloats/avgFloat) so ceil(avg(...)) folds against the
// true quotient rather than one truncated on the way in.
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
