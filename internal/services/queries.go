package services

import (
	"context"
	"fmt"

	"pgdesk/internal/analytics"
	"pgdesk/internal/core"
	"pgdesk/internal/query"
)

// Aggregation kinds accepted by Aggregate.
const (
	AggTotalSum          = "totalSum"
	AggStatusTotals      = "statusTotals"
	AggTrailingSeries    = "trailingSeries"
	AggCategoryBreakdown = "categoryBreakdown"
	AggMonthOverMonth    = "monthOverMonth"
)

// MaxTrailingMonths bounds the series window a caller may ask for.
const MaxTrailingMonths = 36

// AggregationKinds lists the supported aggregation kinds.
func AggregationKinds() []string {
	return []string{AggTotalSum, AggStatusTotals, AggTrailingSeries, AggCategoryBreakdown, AggMonthOverMonth}
}

// AggregateParams narrows an aggregation. Filter selects the records the
// aggregation runs over; Months overrides the default series window.
type AggregateParams struct {
	Filter query.Filter
	Months int
}

// AggregateResult wraps an aggregation value with what produced it.
type AggregateResult struct {
	Kind        core.Kind `json:"kind"`
	Aggregation string    `json:"aggregation"`
	AsOf        core.Date `json:"asOf"`
	Months      int       `json:"months,omitempty"`
	Value       any       `json:"value"`
}

// ListFiltered returns the records of kind matching f, in insertion order.
// The concrete result is a slice of the kind's entity type.
func (c *Console) ListFiltered(_ context.Context, kind core.Kind, f query.Filter) (any, error) {
	if !kind.Valid() {
		return nil, core.Invalid(kind, "kind", "is not a known entity kind")
	}
	if err := f.Validate(kind); err != nil {
		return nil, err
	}
	switch kind {
	case core.KindRoom:
		return query.Apply(c.store.Rooms(), f), nil
	case core.KindTenant:
		return query.Apply(c.store.Tenants(), f), nil
	case core.KindPayment:
		return query.Apply(c.store.Payments(), f), nil
	case core.KindExpense:
		return query.Apply(c.store.Expenses(), f), nil
	default:
		return query.Apply(c.store.MaintenanceRequests(), f), nil
	}
}

// Get returns one record by kind and id.
func (c *Console) Get(_ context.Context, kind core.Kind, id string) (any, error) {
	switch kind {
	case core.KindRoom:
		return c.store.Room(id)
	case core.KindTenant:
		return c.store.Tenant(id)
	case core.KindPayment:
		return c.store.Payment(id)
	case core.KindExpense:
		return c.store.Expense(id)
	case core.KindMaintenance:
		return c.store.Maintenance(id)
	}
	return nil, core.Invalid(kind, "kind", "is not a known entity kind")
}

func (c *Console) window(months int) (int, error) {
	switch {
	case months == 0:
		return c.months, nil
	case months < 0 || months > MaxTrailingMonths:
		return 0, core.Invalid("", "months", fmt.Sprintf("must be between 1 and %d", MaxTrailingMonths))
	}
	return months, nil
}

// Aggregate computes aggregation over the records of kind that match
// params.Filter, evaluated at today's date.
func (c *Console) Aggregate(ctx context.Context, kind core.Kind, aggregation string, params AggregateParams) (AggregateResult, error) {
	months, err := c.window(params.Months)
	if err != nil {
		return AggregateResult{}, err
	}
	records, err := c.ListFiltered(ctx, kind, params.Filter)
	if err != nil {
		return AggregateResult{}, err
	}

	now := c.Today()
	res := AggregateResult{Kind: kind, Aggregation: aggregation, AsOf: now}

	var value any
	switch v := records.(type) {
	case []core.Room:
		value, err = aggregateRooms(v, aggregation)
	case []core.Tenant:
		value, err = aggregateTenants(v, aggregation, now, months)
	case []core.Payment:
		value, err = aggregatePayments(v, aggregation, now, months)
	case []core.Expense:
		value, err = aggregateExpenses(v, aggregation, now, months)
	case []core.MaintenanceRequest:
		value, err = aggregateRequests(v, aggregation, now, months)
	}
	if err != nil {
		return AggregateResult{}, err
	}
	if aggregation == AggTrailingSeries {
		res.Months = months
	}
	res.Value = value
	return res, nil
}

func unsupported(kind core.Kind, aggregation string) error {
	return core.Invalid(kind, "aggregation", fmt.Sprintf("%q is not supported", aggregation))
}

func aggregateRooms(rooms []core.Room, aggregation string) (any, error) {
	switch aggregation {
	case AggTotalSum:
		return analytics.Sum(rooms, func(r core.Room) core.Money { return r.MonthlyRent }), nil
	case AggStatusTotals:
		return analytics.RoomOccupancy(rooms), nil
	}
	return nil, unsupported(core.KindRoom, aggregation)
}

func aggregateTenants(tenants []core.Tenant, aggregation string, now core.Date, months int) (any, error) {
	switch aggregation {
	case AggTotalSum:
		return analytics.Sum(tenants, func(t core.Tenant) core.Money { return t.MonthlyRent }), nil
	case AggTrailingSeries:
		// rent contracted by tenants checking in each month
		return analytics.TrailingMonths(tenants,
			func(t core.Tenant) core.Date { return t.CheckInDate },
			func(t core.Tenant) core.Money { return t.MonthlyRent },
			now, months), nil
	}
	return nil, unsupported(core.KindTenant, aggregation)
}

func aggregatePayments(payments []core.Payment, aggregation string, now core.Date, months int) (any, error) {
	switch aggregation {
	case AggTotalSum:
		return analytics.Sum(payments, func(p core.Payment) core.Money { return p.Amount }), nil
	case AggStatusTotals:
		return analytics.PaymentStatusTotals(payments), nil
	case AggTrailingSeries:
		return analytics.RevenueTrend(payments, now, months), nil
	case AggCategoryBreakdown:
		return analytics.PaymentTypeBreakdown(payments), nil
	case AggMonthOverMonth:
		return analytics.RevenueMonthOverMonth(payments, now), nil
	}
	return nil, unsupported(core.KindPayment, aggregation)
}

func aggregateExpenses(expenses []core.Expense, aggregation string, now core.Date, months int) (any, error) {
	switch aggregation {
	case AggTotalSum:
		return analytics.TotalExpenses(expenses), nil
	case AggTrailingSeries:
		return analytics.ExpenseTrend(expenses, now, months), nil
	case AggCategoryBreakdown:
		return analytics.ExpenseCategoryBreakdown(expenses), nil
	case AggMonthOverMonth:
		return analytics.ExpenseMonthOverMonth(expenses, now), nil
	}
	return nil, unsupported(core.KindExpense, aggregation)
}

func aggregateRequests(requests []core.MaintenanceRequest, aggregation string, now core.Date, months int) (any, error) {
	actual := func(m core.MaintenanceRequest) core.Money {
		if m.ActualCost == nil {
			return core.Money{}
		}
		return *m.ActualCost
	}
	switch aggregation {
	case AggTotalSum:
		return analytics.Sum(requests, actual), nil
	case AggStatusTotals:
		return analytics.CountRequests(requests), nil
	case AggTrailingSeries:
		return analytics.TrailingMonths(requests,
			func(m core.MaintenanceRequest) core.Date { return m.CompletedDate },
			actual, now, months), nil
	}
	return nil, unsupported(core.KindMaintenance, aggregation)
}

// Dashboard builds the landing summary at today's date.
func (c *Console) Dashboard(_ context.Context) analytics.DashboardView {
	return analytics.Dashboard(c.store.Snapshot(), c.Today(), c.months)
}

// FinancialReport builds the trailing financial report. months == 0 uses
// the default window.
func (c *Console) FinancialReport(_ context.Context, months int) (analytics.FinancialReportView, error) {
	n, err := c.window(months)
	if err != nil {
		return analytics.FinancialReportView{}, err
	}
	return analytics.FinancialReport(c.store.Snapshot(), c.Today(), n), nil
}

// TenantLedger joins a tenant with its room, payments and requests.
func (c *Console) TenantLedger(_ context.Context, tenantID string) (analytics.TenantLedger, error) {
	t, err := c.store.Tenant(tenantID)
	if err != nil {
		return analytics.TenantLedger{}, err
	}
	return analytics.Ledger(c.store.Snapshot(), t), nil
}
