package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/dfakit"
	"github.com/aretw0/dfakit/internal/cli"
	"github.com/aretw0/dfakit/internal/config"
	"github.com/aretw0/dfakit/pkg/domain"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dfakit",
	Short: "dfakit builds and simulates deterministic finite automata",
	Long: `dfakit builds deterministic finite automata from descriptor files or interactive
prompts, tests input strings against them and serves them over HTTP and MCP.

Without a subcommand it starts the interactive console.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if permissive, _ := cmd.Flags().GetBool("permissive"); permissive {
			loaded.Strict = false
		}
		debug, _ := cmd.Flags().GetBool("debug")

		cfg = loaded
		logger = cli.NewLogger(cfg.Log, debug)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./"+config.DefaultPath+" when present)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging and step tracing on stderr")
	rootCmd.PersistentFlags().Bool("permissive", false, "Accept descriptors with unknown states or conflicting transitions, logging warnings")
}

// openEngine builds an engine from the resolved configuration.
func openEngine(cmd *cobra.Command, hooks ...domain.LifecycleHooks) (*dfakit.Engine, func() error, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.NewEngine(cli.EngineOptions{
		Config: cfg,
		Debug:  debug,
		Hooks:  hooks,
	}, logger)
}
