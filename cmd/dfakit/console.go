package main

import (
	"os"

	"github.com/aretw0/dfakit"
	"github.com/aretw0/dfakit/internal/cli"
	"github.com/aretw0/dfakit/internal/presentation/tui"
	"github.com/aretw0/dfakit/pkg/ports"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Create or load a DFA interactively and test strings against it",
	Long: `Prompts for a DFA (entered state by state or read from a descriptor file),
offers to save it, then tests input strings until you answer anything but 'y'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeStore, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		out := cmd.OutOrStdout()
		tty := term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
		if tty {
			tui.PrintBanner(out, dfakit.Version)
		}

		c := cli.NewConsole(eng, ports.NewReaderLines(cmd.InOrStdin()), out)
		c.Styler = tui.NewStyler(tty)
		c.Logger = logger

		err = c.Run(cmd.Context())
		if cli.IsInterrupted(err) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)

	// The console is the default when no command is provided.
	rootCmd.RunE = consoleCmd.RunE
}
