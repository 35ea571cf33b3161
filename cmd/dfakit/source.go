package main

import (
	"context"

	"github.com/aretw0/dfakit"
	"github.com/aretw0/dfakit/pkg/domain"
	"github.com/spf13/cobra"
)

// addSourceFlags registers the flags shared by commands reading one automaton.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("stored", "s", false, "Treat SOURCE as the name of a stored automaton instead of a file")
}

// loadSource resolves SOURCE: a stored name with --stored, "-" for stdin, a descriptor file otherwise.
func loadSource(ctx context.Context, cmd *cobra.Command, eng *dfakit.Engine, source string) (*domain.Automaton, error) {
	if stored, _ := cmd.Flags().GetBool("stored"); stored {
		return eng.Fetch(ctx, source)
	}
	if source == "-" {
		return eng.Load(ctx, cmd.InOrStdin())
	}
	return eng.LoadFile(ctx, source)
}
