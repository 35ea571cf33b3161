package main

import (
	"fmt"

	"github.com/aretw0/dfakit/pkg/descriptor"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a DFA from flags and write its descriptor",
	Example: `  dfakit build --states q0,q1 --initial q0 --finals q1 \
    -t q0,a,q1 -t q1,a,q1 -o ends-in-a.dfa`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		states, _ := cmd.Flags().GetString("states")
		initial, _ := cmd.Flags().GetString("initial")
		finals, _ := cmd.Flags().GetString("finals")
		transitions, _ := cmd.Flags().GetStringArray("transition")
		output, _ := cmd.Flags().GetString("output")
		save, _ := cmd.Flags().GetString("save")

		eng, closeStore, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		b := eng.NewBuilder()
		if err := b.DeclareStates(states); err != nil {
			return err
		}
		if initial != "" {
			if err := b.SetInitial(initial); err != nil {
				return err
			}
		}
		if err := b.SetFinal(finals); err != nil && b.Strict() {
			return err
		}
		for _, t := range transitions {
			if err := b.AddTransition(t); err != nil {
				return fmt.Errorf("transition %q: %w", t, err)
			}
		}

		a, err := b.Build()
		if err != nil {
			return err
		}
		for _, w := range b.Warnings() {
			logger.Warn("automaton accepted with warning", "warning", w)
		}

		if save != "" {
			if err := eng.Save(cmd.Context(), save, a); err != nil {
				return err
			}
			logger.Info("automaton stored", "name", save, "backend", cfg.Store.Backend)
		}
		if output != "" {
			return eng.WriteFile(output, a)
		}
		if save == "" {
			return descriptor.Encode(cmd.OutOrStdout(), a)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().String("states", "", "Comma-separated state names")
	buildCmd.Flags().String("initial", "", "Initial state")
	buildCmd.Flags().String("finals", "", "Comma-separated accepting states")
	buildCmd.Flags().StringArrayP("transition", "t", nil, "Transition as from,symbol,to (repeatable)")
	buildCmd.Flags().StringP("output", "o", "", "Write the descriptor to this file")
	buildCmd.Flags().String("save", "", "Store the automaton under this name")
	_ = buildCmd.MarkFlagRequired("states")
}
