package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/dhamidi/peg/lang/calc"
)

func newReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Evaluate calculator expressions interactively",
		Long: "Repl reads arithmetic expressions, parses them with the left-recursive\n" +
			"calculator grammar and prints the result. Exit with \"exit\" or Ctrl-D.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			line := liner.NewLiner()
			defer line.Close()
			line.SetCtrlCAborts(true)

			historyPath := filepath.Join(os.TempDir(), ".peg_repl_history")
			if f, err := os.Open(historyPath); err == nil {
				line.ReadHistory(f)
				f.Close()
			}
			defer func() {
				if f, err := os.Create(historyPath); err == nil {
					line.WriteHistory(f)
					f.Close()
				}
			}()

			for {
				input, err := line.Prompt("> ")
				if err == liner.ErrPromptAborted || err == io.EOF {
					return nil
				}
				if err != nil {
					return fmt.Errorf("read line: %w", err)
				}

				input = strings.TrimSpace(input)
				if input == "" {
					continue
				}
				if input == "exit" || input == "quit" {
					return nil
				}
				line.AppendHistory(input)

				value, err := calc.Eval(input)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					continue
				}
				fmt.Println(value)
			}
		},
	}
	return cmd
}
