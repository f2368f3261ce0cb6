// Command oxidice is the dice-expression engine's CLI: one-shot roll and
// validate subcommands plus an interactive REPL, grounded on the teacher
// compiler's cmd/surge root command (a bare cobra.Command with
// persistent flags, no subcommand-specific main funcs).
package main

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "oxidice",
	Short: "A dice-expression evaluator",
	Long:  "oxidice parses, validates, and evaluates dice-notation expressions.",
}

func main() {
	rootCmd.Version = version

	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(replCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int64("seed", 0, "RNG seed (0 picks a random seed)")
	rootCmd.PersistentFlags().Int64("recursion-limit", 1000, "max runtime rounds")
	rootCmd.PersistentFlags().Int64("dice-count-limit", 100000, "max total dice drawn")
	rootCmd.PersistentFlags().String("format", "pretty", "output format (pretty|json)")
	rootCmd.PersistentFlags().String("config", "", "path to oxidice.toml (defaults searched if unset)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps a top-level command error to spec.md §6's exit code
// contract: 0 success (never reached here, Execute only errors), 2
// parse/type error, 3 runtime error.
func exitCodeFor(err error) int {
	switch err.(type) {
	case *cliParseError, *cliTypeError:
		return 2
	case *cliRuntimeError:
		return 3
	default:
		return 1
	}
}
