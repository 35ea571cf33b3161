package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/dfakit/internal/presentation/tui"
	"github.com/aretw0/dfakit/pkg/descriptor"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe SOURCE",
	Short: "Show the states and transition table of a DFA",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yamlMode, _ := cmd.Flags().GetBool("yaml")
		raw, _ := cmd.Flags().GetBool("raw")

		eng, closeStore, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		a, err := loadSource(cmd.Context(), cmd, eng, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if yamlMode {
			return descriptor.EncodeYAML(out, a)
		}

		name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		markdown := tui.Describe(name, a)
		if raw {
			fmt.Fprint(out, markdown)
			return nil
		}

		rendered, err := tui.NewRenderer()(markdown)
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)

	addSourceFlags(describeCmd)
	describeCmd.Flags().Bool("yaml", false, "Print the automaton as YAML")
	describeCmd.Flags().Bool("raw", false, "Print markdown without terminal rendering")
}
