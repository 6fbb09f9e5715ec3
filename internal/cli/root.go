// Package cli implements the stockctl command tree.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"stock_tracker/internal/app/di"
	"stock_tracker/internal/config"
)

// Builder assembles the application for one command invocation.
type Builder func(ctx context.Context, configPath string) (*di.App, error)

// DefaultBuilder loads and validates config, then wires the application graph.
func DefaultBuilder(ctx context.Context, configPath string) (*di.App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return di.Build(ctx, cfg)
}

// NewRootCmd creates the root command. build is called once before any subcommand runs and
// the resulting app is closed when the subcommand returns, whether or not it failed.
func NewRootCmd(build Builder) *cobra.Command {
	var (
		configPath string
		app        *di.App
	)

	rootCmd := &cobra.Command{
		Use:           "stockctl",
		Short:         "Quotes, price history and local portfolio/watchlist tracking",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := build(cmd.Context(), configPath)
			if err != nil {
				return err
			}
			app = a
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Configuration file path")

	get := func() *di.App { return app }
	rootCmd.AddCommand(newQuoteCmd(get))
	rootCmd.AddCommand(newHistoryCmd(get))
	rootCmd.AddCommand(newSearchCmd(get))
	rootCmd.AddCommand(newPortfolioCmd(get))
	rootCmd.AddCommand(newWatchlistCmd(get))
	rootCmd.AddCommand(newCacheCmd(get))

	closeAfterRun(rootCmd, func() error {
		if app == nil {
			return nil
		}
		a := app
		app = nil
		return a.Close()
	})
	return rootCmd
}

// closeAfterRun wraps every RunE in the tree so release runs on both the success and
// the error path. Cobra skips post-run hooks when RunE fails.
func closeAfterRun(cmd *cobra.Command, release func() error) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) (err error) {
			defer func() { err = errors.Join(err, release()) }()
			return run(cmd, args)
		}
	}
	for _, sub := range cmd.Commands() {
		closeAfterRun(sub, release)
	}
}

func newCacheCmd(app func() *di.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the shared response cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every cached quote, history and search response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cleared, err := app().ClearCache(cmd.Context())
			if err != nil {
				return err
			}
			if !cleared {
				fmt.Fprintln(cmd.OutOrStdout(), "no shared cache configured")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
			return nil
		},
	})
	return cmd
}
