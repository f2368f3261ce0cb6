package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/xuyisen-x/oxidice"
	"github.com/xuyisen-x/oxidice/internal/rng"
)

// runOptions collects one invocation's resolved flag/config values:
// cobra flags win over oxidice.toml, which wins over the built-in
// defaults set on the persistent flags themselves.
type runOptions struct {
	opts  oxidice.Options
	seed  int64
	color bool
}

func resolveOptions(cmd *cobra.Command) (runOptions, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(configPath)
	if err != nil {
		return runOptions{}, fmt.Errorf("loading config: %w", err)
	}

	recursionLimit, _ := cmd.Flags().GetInt64("recursion-limit")
	if !cmd.Flags().Changed("recursion-limit") && cfg.RecursionLimit > 0 {
		recursionLimit = cfg.RecursionLimit
	}
	diceCountLimit, _ := cmd.Flags().GetInt64("dice-count-limit")
	if !cmd.Flags().Changed("dice-count-limit") && cfg.DiceCountLimit > 0 {
		diceCountLimit = cfg.DiceCountLimit
	}
	seed, _ := cmd.Flags().GetInt64("seed")
	if !cmd.Flags().Changed("seed") && cfg.Seed != 0 {
		seed = cfg.Seed
	}
	colorMode, _ := cmd.Flags().GetString("color")
	if !cmd.Flags().Changed("color") && cfg.Color != "" {
		colorMode = cfg.Color
	}

	return runOptions{
		opts: oxidice.Options{
			RecursionLimit: recursionLimit,
			DiceCountLimit: diceCountLimit,
		},
		seed:  seed,
		color: resolveColor(colorMode),
	}, nil
}

// resolveColor mirrors the teacher's isTerminal-gated auto-color
// resolution: "on"/"off" are explicit, "auto" colorizes only when stdout
// is a terminal.
func resolveColor(mode string) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}

// newSource builds the RNG source for one evaluation, seeding from seed
// when nonzero and from the wall clock otherwise (spec.md §6: "0 picks a
// random seed").
func newSource(seed int64) rng.Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rng.NewMathRand(uint64(seed))
}
