package main

import (
	"fmt"

	"github.com/aretw0/dfakit/pkg/descriptor"
	"github.com/spf13/cobra"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage stored automata",
	Long:  `Lists, reads, writes and deletes automata in the configured store (memory, file or redis).`,
}

var storeListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List stored automata",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeStore, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		names, err := eng.Store().List(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var storeGetCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Print the descriptor of a stored automaton",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeStore, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		a, err := eng.Fetch(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return descriptor.Encode(cmd.OutOrStdout(), a)
	},
}

var storePutCmd = &cobra.Command{
	Use:   "put NAME FILE",
	Short: "Validate a descriptor file (or - for stdin) and store it under NAME",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeStore, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		a, err := loadSource(cmd.Context(), cmd, eng, args[1])
		if err != nil {
			return err
		}
		if err := eng.Save(cmd.Context(), args[0], a); err != nil {
			return err
		}
		logger.Info("automaton stored", "name", args[0], "backend", cfg.Store.Backend)
		return nil
	},
}

var storeRemoveCmd = &cobra.Command{
	Use:     "rm NAME",
	Aliases: []string{"delete"},
	Short:   "Delete a stored automaton",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeStore, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		return eng.Store().Delete(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storeListCmd, storeGetCmd, storePutCmd, storeRemoveCmd)
}
