package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/xuyisen-x/oxidice/internal/hir"
	"github.com/xuyisen-x/oxidice/internal/runtime"
)

// rollJSON is the --format json payload: the resolved value, its
// numeric collapse, and the budget counters an automated caller (a bot,
// a test harness) needs without parsing the pretty-printed tree.
type rollJSON struct {
	Value  int32   `json:"value"`
	List   []int32 `json:"list,omitempty"`
	Rounds int64   `json:"rounds"`
	Dice   int64   `json:"dice"`
}

func printRollJSON(cmd *cobra.Command, result *runtime.Result) error {
	payload := rollJSON{
		Value:  result.Value.AsNumber(),
		Rounds: result.Rounds,
		Dice:   result.Dice,
	}
	if result.Value.Kind == hir.TList {
		payload.List = result.Value.List
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
