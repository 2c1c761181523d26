package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func sweepCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Mark pending payments past their due date as overdue",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.backend.Console.SweepOverdue(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d payment(s) marked overdue\n", n)
			return nil
		},
	}
}
