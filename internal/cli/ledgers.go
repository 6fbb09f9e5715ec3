package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"stock_tracker/internal/app/di"
	portfolioentity "stock_tracker/internal/feature/portfolio/domain/entity"
	watchlistentity "stock_tracker/internal/feature/watchlist/domain/entity"
)

func newPortfolioCmd(app func() *di.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Manage owned positions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			positions := app().Portfolio.Positions()
			if len(positions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "portfolio is empty")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SYMBOL\tSHARES\tAVG PRICE\tCOST\tPURCHASED")
			for _, p := range positions {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					p.Symbol, p.Shares, p.AveragePrice.StringFixed(2), p.Cost().StringFixed(2), p.PurchaseDate)
			}
			return w.Flush()
		},
	})

	var date string
	add := &cobra.Command{
		Use:   "add SYMBOL SHARES PRICE",
		Short: "Record a buy; repeat buys are merged at the weighted average price",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			shares, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid shares %q: %w", args[1], err)
			}
			price, err := decimal.NewFromString(args[2])
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", args[2], err)
			}
			if date == "" {
				date = time.Now().Format(time.DateOnly)
			} else if _, err := time.Parse(time.DateOnly, date); err != nil {
				return fmt.Errorf("invalid date format, use YYYY-MM-DD: %w", err)
			}

			return app().Portfolio.Add(cmd.Context(), portfolioentity.Position{
				Symbol:       strings.ToUpper(args[0]),
				Shares:       shares,
				AveragePrice: price,
				PurchaseDate: date,
			})
		},
	}
	add.Flags().StringVar(&date, "date", "", "Purchase date in YYYY-MM-DD format (today if not provided)")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "set SYMBOL SHARES",
		Short: "Set the share count of a position; 0 removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			shares, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid shares %q: %w", args[1], err)
			}
			return app().Portfolio.UpdateShares(cmd.Context(), strings.ToUpper(args[0]), shares)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove SYMBOL",
		Short: "Remove a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().Portfolio.Remove(cmd.Context(), strings.ToUpper(args[0]))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "total",
		Short: "Show total invested (shares x average price)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), app().Portfolio.TotalInvestment().StringFixed(2))
			return nil
		},
	})

	return cmd
}

func newWatchlistCmd(app func() *di.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Manage tracked symbols",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tracked symbols",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items := app().Watchlist.Items()
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "watchlist is empty")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SYMBOL\tNAME\tADDED")
			for _, i := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\n", i.Symbol, i.Name, i.AddedAt.Format(time.DateOnly))
			}
			return w.Flush()
		},
	})

	var name string
	add := &cobra.Command{
		Use:   "add SYMBOL",
		Short: "Track a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := strings.ToUpper(args[0])
			added, err := app().Watchlist.Add(cmd.Context(), watchlistentity.WatchlistItem{Symbol: symbol, Name: name})
			if err != nil {
				return err
			}
			if !added {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already on the watchlist\n", symbol)
			}
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "Display name")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove SYMBOL",
		Short: "Stop tracking a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().Watchlist.Remove(cmd.Context(), strings.ToUpper(args[0]))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "has SYMBOL",
		Short: "Report whether a symbol is tracked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), app().Watchlist.Contains(strings.ToUpper(args[0])))
			return nil
		},
	})

	return cmd
}
