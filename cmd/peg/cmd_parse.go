package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/peg"
	"github.com/dhamidi/peg/lang/json"
)

func newParseCmd() *cobra.Command {
	var callStack bool
	var trace bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a JSON document and report the outcome",
		Long: "Parse runs the bundled JSON grammar over a file (or stdin) and prints\n" +
			"the engine's outcome report: match size or furthest-error location, the\n" +
			"expected set, and the value stack.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if len(args) == 1 {
				data, err = os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
			} else {
				data, err = io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			}

			var opts []peg.Option
			if callStack {
				opts = append(opts, peg.WithCallStackRecording())
			}
			if trace {
				opts = append(opts, peg.WithTracing())
			}

			src := string(data)
			result, err := peg.RunString(json.Grammar(), src, opts...)
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}

			fmt.Print(result.Report(peg.NewLineMap(src)))
			if trace {
				for _, entry := range result.Trace {
					fmt.Println(entry)
				}
			}
			if !result.FullMatch {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&callStack, "call-stack", false, "record parser call stacks for error reports")
	cmd.Flags().BoolVar(&trace, "trace", false, "print a per-step parse trace")
	return cmd
}
