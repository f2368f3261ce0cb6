package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xuyisen-x/oxidice"
)

var validateCmd = &cobra.Command{
	Use:   "validate [expression]",
	Short: "Parse and type-check a dice expression without evaluating it",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	source := strings.Join(args, " ")

	runOpts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	if _, err := oxidice.Validate(source, runOpts.opts); err != nil {
		return wrapError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}
