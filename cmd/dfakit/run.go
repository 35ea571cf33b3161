package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/dfakit/internal/presentation/tui"
	"github.com/aretw0/dfakit/pkg/domain"
	"github.com/aretw0/dfakit/pkg/ports"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var runCmd = &cobra.Command{
	Use:   "run SOURCE [INPUT...]",
	Short: "Test input strings against a DFA",
	Long: `Loads a DFA and prints the verdict of every INPUT.
Without INPUT arguments, inputs are read from stdin, one per line.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")

		eng, closeStore, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		ctx := cmd.Context()
		a, err := loadSource(ctx, cmd, eng, args[0])
		if err != nil {
			return err
		}

		inputs := args[1:]
		if len(inputs) == 0 {
			if args[0] == "-" {
				return fmt.Errorf("inputs are required when the descriptor is read from stdin")
			}
			if inputs, err = readInputs(ctx, ports.NewReaderLines(cmd.InOrStdin())); err != nil {
				return err
			}
		}

		results, err := eng.RunAll(ctx, a, inputs)
		if err != nil {
			return err
		}

		if jsonMode {
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, res := range results {
				if err := enc.Encode(res); err != nil {
					return err
				}
			}
			return nil
		}

		styler := tui.NewStyler(term.IsTerminal(int(os.Stdout.Fd())))
		for _, res := range results {
			line := fmt.Sprintf("%q\t%s", res.Input, styler.Verdict(res.Verdict))
			if res.Stuck() {
				line += "\t" + styler.Notice(fmt.Sprintf("(no transition from %s on %q)", res.State, res.Symbol))
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

func readInputs(ctx context.Context, src ports.LineReader) ([]string, error) {
	var inputs []string
	for {
		line, err := src.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return inputs, nil
			}
			return nil, fmt.Errorf("%w: %w", domain.ErrFileUnreadable, err)
		}
		inputs = append(inputs, line)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	addSourceFlags(runCmd)
	runCmd.Flags().Bool("json", false, "Print one JSON result per line")
}
