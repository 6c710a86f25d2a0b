package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
	out    *Output
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "cornhole",
		Short: "CLI tool for the cornhole scorekeeper",
		Long: `cornhole is a CLI tool for the cornhole scorekeeper daemon.

It drives the game in progress, manages the cached login, and reads the
local archive, roster and per-player statistics.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL)
			out = NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: CORNHOLE_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newRosterCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newUploadCmd())
	rootCmd.AddCommand(newMetaCmd())

	return rootCmd
}

// Execute runs the root command. An interrupt cancels the request in flight.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		if out == nil {
			out = NewOutput(cfg.Output, os.Stdout, os.Stderr)
		}
		out.PrintError(err)
		stop()
		os.Exit(1)
	}
}
