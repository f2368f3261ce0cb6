package hir

// Builtin identifies one of the closed set of built-in functions
// resolvable by the lowerer (spec.md §4.2). The set is closed: no
// user-defined functions exist (spec.md §1 Non-goals).
type Builtin uint8

const (
	BInvalid Builtin = iota
	BFloor
	BCeil
	BRound
	BAbs
	BMax
	BMin
	BSum
	BAvg
	BLen
	BRPDice
	BSortD
	BSort
	BToList
	BFilter
)

var builtinNames = map[string]Builtin{
	"floor":  BFloor,
	"ceil":   BCeil,
	"round":  BRound,
	"abs":    BAbs,
	"max":    BMax,
	"min":    BMin,
	"sum":    BSum,
	"avg":    BAvg,
	"len":    BLen,
	"rpdice": BRPDice,
	"sortd":  BSortD,
	"sort":   BSort,
	"tolist": BToList,
	"filter": BFilter,
}

// LookupBuiltin resolves a function identifier against the closed set.
func LookupBuiltin(name string) (Builtin, bool) {
	b, ok := builtinNames[name]
	return b, ok
}

func (b Builtin) String() string {
	for name, k := range builtinNames {
		if k == b {
			return name
		}
	}
	return "<unknown>"
}
