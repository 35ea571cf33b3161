package main

import (
	"fmt"
	"os"

	"github.com/aretw0/dfakit/pkg/domain"
	"github.com/aretw0/dfakit/pkg/ports"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a descriptor for consistency",
	Long: `Builds the descriptor and reports every problem: duplicate or unknown states,
malformed or conflicting transitions, dangling endpoints and a missing initial state.
With --permissive, tolerated problems are listed as warnings.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeStore, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrFileUnreadable, args[0], err)
		}
		defer f.Close()

		a, b, err := eng.Build(cmd.Context(), ports.NewReaderLines(f))
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, w := range b.Warnings() {
			fmt.Fprintf(out, "warning: %v\n", w)
		}
		if err := a.Validate(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		fmt.Fprintf(out, "Automaton is valid! ✅ (%d states, %d transitions)\n", len(a.States()), len(a.Transitions()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
