package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func exportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the financial report to the configured export backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := a.backend.Console.ExportReport(cmd.Context(), a.backend.Sink, a.months, a.cfg.CurrencySymbol)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ref)
			return nil
		},
	}
}
