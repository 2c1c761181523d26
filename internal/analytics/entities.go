package analytics

import "pgdesk/internal/core"

// Field accessors shared by the composite views.

func expenseAmount(e core.Expense) core.Money  { return e.Amount }
func expenseDate(e core.Expense) core.Date     { return e.Date }
func paymentAmount(p core.Payment) core.Money  { return p.Amount }
func paymentDueDate(p core.Payment) core.Date  { return p.DueDate }
func paymentPaidDate(p core.Payment) core.Date { return p.PaidDate }

// TotalExpenses sums every expense.
func TotalExpenses(expenses []core.Expense) core.Money {
	return Sum(expenses, expenseAmount)
}

// ExpenseCategoryBreakdown sums expenses per category, zero totals omitted.
func ExpenseCategoryBreakdown(expenses []core.Expense) []core.CategoryAmount {
	return Breakdown(expenses, core.ExpenseCategories(),
		func(e core.Expense) core.ExpenseCategory { return e.Category },
		expenseAmount, core.MetaExpenseCategory)
}

// PaymentTypeBreakdown sums payments per type, zero totals omitted.
func PaymentTypeBreakdown(payments []core.Payment) []core.CategoryAmount {
	return Breakdown(payments, core.PaymentTypes(),
		func(p core.Payment) core.PaymentType { return p.Type },
		paymentAmount, core.MetaPaymentType)
}

// ExpenseTrend is the trailing monthly expense series.
func ExpenseTrend(expenses []core.Expense, now core.Date, n int) []core.MonthPoint {
	return TrailingMonths(expenses, expenseDate, expenseAmount, now, n)
}

// ExpenseMonthOverMonth compares this month's expenses with last month's.
func ExpenseMonthOverMonth(expenses []core.Expense, now core.Date) core.MonthComparison {
	return MonthOverMonth(expenses, expenseDate, expenseAmount, now)
}

// Revenue counts paid payments only, in the month they were paid.
func Revenue(payments []core.Payment) []core.Payment {
	out := make([]core.Payment, 0, len(payments))
	for _, p := range payments {
		if p.Status == core.PaymentPaid && !p.PaidDate.IsEmpty() {
			out = append(out, p)
		}
	}
	return out
}

// RevenueTrend is the trailing monthly series of collected payments.
func RevenueTrend(payments []core.Payment, now core.Date, n int) []core.MonthPoint {
	return TrailingMonths(Revenue(payments), paymentPaidDate, paymentAmount, now, n)
}

// RevenueMonthOverMonth compares collected revenue month on month.
func RevenueMonthOverMonth(payments []core.Payment, now core.Date) core.MonthComparison {
	return MonthOverMonth(Revenue(payments), paymentPaidDate, paymentAmount, now)
}

// BilledTrend is the trailing series of all payments by due date.
func BilledTrend(payments []core.Payment, now core.Date, n int) []core.MonthPoint {
	return TrailingMonths(payments, paymentDueDate, paymentAmount, now, n)
}

// PaymentStatusTotals partitions payment amounts by status.
func PaymentStatusTotals(payments []core.Payment) core.StatusTotals {
	var t core.StatusTotals
	for _, p := range payments {
		t.Total = t.Total.Add(p.Amount)
		switch p.Status {
		case core.PaymentPaid:
			t.Paid = t.Paid.Add(p.Amount)
		case core.PaymentPending:
			t.Pending = t.Pending.Add(p.Amount)
		case core.PaymentOverdue:
			t.Overdue = t.Overdue.Add(p.Amount)
		}
	}
	return t
}

// CountRequests counts maintenance requests per status. Urgent counts every
// urgent request regardless of status.
func CountRequests(requests []core.MaintenanceRequest) core.RequestCounts {
	var c core.RequestCounts
	for _, m := range requests {
		switch m.Status {
		case core.RequestPending:
			c.Pending++
		case core.RequestInProgress:
			c.InProgress++
		case core.RequestCompleted:
			c.Completed++
		case core.RequestCancelled:
			c.Cancelled++
		}
		if m.Priority == core.PriorityUrgent {
			c.Urgent++
		}
	}
	return c
}

// RoomOccupancy counts rooms per status. Rate is the occupied share in
// percent, 0 for an empty property.
func RoomOccupancy(rooms []core.Room) core.Occupancy {
	o := core.Occupancy{Total: len(rooms)}
	for _, r := range rooms {
		switch r.Status {
		case core.RoomOccupied:
			o.Occupied++
		case core.RoomVacant:
			o.Vacant++
		case core.RoomMaintenance:
			o.Maintenance++
		}
	}
	if o.Total > 0 {
		o.Rate = float64(o.Occupied) / float64(o.Total) * 100
	}
	return o
}

// MaintenanceCostTotals sums estimated and actual costs where present.
func MaintenanceCostTotals(requests []core.MaintenanceRequest) (estimated, actual core.Money) {
	for _, m := range requests {
		if m.EstimatedCost != nil {
			estimated = estimated.Add(*m.EstimatedCost)
		}
		if m.ActualCost != nil {
			actual = actual.Add(*m.ActualCost)
		}
	}
	return estimated, actual
}
