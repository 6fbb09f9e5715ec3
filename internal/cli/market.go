package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"stock_tracker/internal/app/di"
	"stock_tracker/internal/feature/market/usecase"
)

func newQuoteCmd(app func() *di.App) *cobra.Command {
	return &cobra.Command{
		Use:   "quote SYMBOL",
		Short: "Show the latest quote for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := app().Market.GetQuote(cmd.Context(), strings.ToUpper(args[0]))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Symbol\t%s\n", q.Symbol)
			fmt.Fprintf(w, "Price\t%s\n", q.Price)
			fmt.Fprintf(w, "Change\t%s (%s%%)\n", q.Change, q.ChangePercent)
			fmt.Fprintf(w, "Open\t%s\n", q.Open)
			fmt.Fprintf(w, "High\t%s\n", q.High)
			fmt.Fprintf(w, "Low\t%s\n", q.Low)
			fmt.Fprintf(w, "Previous close\t%s\n", q.PreviousClose)
			fmt.Fprintf(w, "Volume\t%d\n", q.Volume)
			return w.Flush()
		},
	}
}

func newHistoryCmd(app func() *di.App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "history SYMBOL",
		Short: "Show daily closing prices, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := app().Market.GetHistory(cmd.Context(), strings.ToUpper(args[0]), days)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tCLOSE")
			for _, p := range points {
				fmt.Fprintf(w, "%s\t%s\n", p.Date, p.Close)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&days, "days", usecase.DefaultHistoryDays, "Number of most recent trading days")
	return cmd
}

func newSearchCmd(app func() *di.App) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Search symbols by keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matches, err := app().Market.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no matches")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SYMBOL\tNAME\tTYPE\tREGION\tCURRENCY")
			for _, m := range matches {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", m.Symbol, m.Name, m.Type, m.Region, m.Currency)
			}
			return w.Flush()
		},
	}
}
