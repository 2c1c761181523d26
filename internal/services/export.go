package services

import (
	"context"
	"errors"
	"fmt"

	"pgdesk/internal/log"
	"pgdesk/internal/sheets"
)

// ExportReport writes the trailing financial report to w and returns the
// reference the writer assigned to it.
func (c *Console) ExportReport(ctx context.Context, w sheets.ReportWriter, months int, currency string) (string, error) {
	if w == nil {
		return "", errors.New("export: no report writer configured")
	}
	view, err := c.FinancialReport(ctx, months)
	if err != nil {
		return "", err
	}

	ref, err := w.WriteReport(ctx, sheets.Report{
		AsOf:          view.AsOf,
		Currency:      currency,
		Points:        view.Series,
		TotalRevenue:  view.TotalRevenue,
		TotalExpenses: view.TotalExpenses,
		NetProfit:     view.NetProfit,
		ProfitMargin:  view.ProfitMargin,
	})
	if err != nil {
		c.audit.LogError(ctx, "Report export failed", err, log.ComponentSheets, log.OpExport,
			log.LogFields{log.FieldMonths: view.Months})
		return "", fmt.Errorf("export report: %w", err)
	}

	c.logger.InfoContext(ctx, "Report exported",
		log.FieldOperation, log.OpExport,
		log.FieldMonths, view.Months,
		log.FieldSheetsRef, ref)
	return ref, nil
}
