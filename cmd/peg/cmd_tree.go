package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/peg"
	"github.com/dhamidi/peg/lang/calc"
	"github.com/dhamidi/peg/lang/json"
)

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <json|calc>",
		Short: "Print a bundled grammar as a parser tree",
		Long: "Tree walks a bundled grammar and prints every parser node, marking\n" +
			"recursive back-edges and shared sub-parsers.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var root peg.Parser
			switch args[0] {
			case "json":
				root = json.Grammar()
			case "calc":
				root = calc.Grammar()
			default:
				return fmt.Errorf("unknown grammar: %s", args[0])
			}
			fmt.Print(peg.Sprint(root))
			return nil
		},
	}
	return cmd
}
