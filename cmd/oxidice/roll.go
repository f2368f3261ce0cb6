package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/xuyisen-x/oxidice"
	"github.com/xuyisen-x/oxidice/internal/render"
)

var rollCmd = &cobra.Command{
	Use:   "roll [expression]",
	Short: "Evaluate a dice expression and print the resolved value",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRoll,
}

func runRoll(cmd *cobra.Command, args []string) error {
	source := strings.Join(args, " ")

	runOpts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	result, err := oxidice.Evaluate(source, runOpts.opts, newSource(runOpts.seed))
	if err != nil {
		return wrapError(err)
	}

	format, _ := cmd.Flags().GetString("format")
	if format == "json" {
		return printRollJSON(cmd, result)
	}

	tree := oxidice.Render(result)
	render.Print(cmd.OutOrStdout(), tree, render.PrintOpts{Color: runOpts.color})
	return nil
}
