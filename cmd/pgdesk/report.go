package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pgdesk/internal/analytics"
)

func reportCmd(a *app) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the trailing financial report",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.backend.Console.FinancialReport(cmd.Context(), a.months)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create report file: %w", err)
				}
				defer f.Close()
				w = f
			}

			switch format {
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			case "text":
				return writeReportText(w, view, a.cfg.CurrencySymbol)
			default:
				return fmt.Errorf("unknown format %q: must be json or text", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	return cmd
}

func writeReportText(w io.Writer, view analytics.FinancialReportView, currency string) error {
	fmt.Fprintf(w, "Financial report as of %s (%d months)\n\n", view.AsOf, view.Months)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Month\tRevenue\tExpenses\tProfit\t")
	for _, p := range view.Series {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
			p.Label, p.Revenue.Format(currency), p.Expenses.Format(currency), p.Profit.Format(currency))
	}
	fmt.Fprintf(tw, "Total\t%s\t%s\t%s\t\n",
		view.TotalRevenue.Format(currency), view.TotalExpenses.Format(currency), view.NetProfit.Format(currency))
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nAverage monthly profit: %s\nProfit margin: %.1f%%\n",
		view.AverageProfit.Format(currency), view.ProfitMargin)
	return err
}
