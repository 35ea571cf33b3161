package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/dfakit"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of dfakit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dfakit version %s\n", strings.TrimSpace(dfakit.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
