package analytics

import (
	"pgdesk/internal/core"
)

// DashboardView is the operator's landing summary.
type DashboardView struct {
	AsOf            core.Date             `json:"asOf"`
	Occupancy       core.Occupancy        `json:"occupancy"`
	ActiveTenants   int                   `json:"activeTenants"`
	MonthlyRevenue  core.MonthComparison  `json:"monthlyRevenue"`
	MonthlyExpenses core.MonthComparison  `json:"monthlyExpenses"`
	PendingDues     core.Money            `json:"pendingDues"`
	OverdueDues     core.Money            `json:"overdueDues"`
	OpenRequests    int                   `json:"openRequests"`
	Requests        core.RequestCounts    `json:"requests"`
	Trend           []core.FinancialPoint `json:"trend"`
	OccupancySlices []StatusSlice         `json:"occupancySlices"`
}

// FinancialSeries pairs trailing revenue and expense totals month by month.
func FinancialSeries(payments []core.Payment, expenses []core.Expense, now core.Date, n int) []core.FinancialPoint {
	revenue := RevenueTrend(payments, now, n)
	spent := ExpenseTrend(expenses, now, n)
	out := make([]core.FinancialPoint, len(revenue))
	for i := range revenue {
		out[i] = core.FinancialPoint{
			Month:    revenue[i].Month,
			Label:    revenue[i].Label,
			Revenue:  revenue[i].Total,
			Expenses: spent[i].Total,
			Profit:   revenue[i].Total.Sub(spent[i].Total),
		}
	}
	return out
}

// Dashboard builds the landing summary from a snapshot.
func Dashboard(ds core.Dataset, now core.Date, months int) DashboardView {
	dues := PaymentStatusTotals(ds.Payments)
	requests := CountRequests(ds.Maintenance)
	occ := RoomOccupancy(ds.Rooms)

	active := 0
	for _, t := range ds.Tenants {
		if t.Status == core.TenantActive {
			active++
		}
	}

	return DashboardView{
		AsOf:            now,
		Occupancy:       occ,
		ActiveTenants:   active,
		MonthlyRevenue:  RevenueMonthOverMonth(ds.Payments, now),
		MonthlyExpenses: ExpenseMonthOverMonth(ds.Expenses, now),
		PendingDues:     dues.Pending,
		OverdueDues:     dues.Overdue,
		OpenRequests:    requests.Pending + requests.InProgress,
		Requests:        requests,
		Trend:           FinancialSeries(ds.Payments, ds.Expenses, now, months),
		OccupancySlices: occupancySlices(occ),
	}
}

// StatusSlice is a room count for one status, used for the occupancy chart.
type StatusSlice struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

func occupancySlices(occ core.Occupancy) []StatusSlice {
	counts := []struct {
		status core.RoomStatus
		n      int
	}{
		{core.RoomOccupied, occ.Occupied},
		{core.RoomVacant, occ.Vacant},
		{core.RoomMaintenance, occ.Maintenance},
	}
	out := make([]StatusSlice, 0, len(counts))
	for _, c := range counts {
		if c.n == 0 {
			continue
		}
		m, _ := core.Meta(core.MetaRoomStatus, string(c.status))
		out = append(out, StatusSlice{Name: string(c.status), Label: m.Label, Color: m.Color, Count: c.n})
	}
	return out
}

// FinancialReportView is the trailing revenue, expense and profit report.
type FinancialReportView struct {
	AsOf           core.Date             `json:"asOf"`
	Months         int                   `json:"months"`
	Series         []core.FinancialPoint `json:"series"`
	TotalRevenue   core.Money            `json:"totalRevenue"`
	TotalExpenses  core.Money            `json:"totalExpenses"`
	NetProfit      core.Money            `json:"netProfit"`
	AverageProfit  core.Money            `json:"averageMonthlyProfit"`
	ProfitMargin   float64               `json:"profitMargin"`
	ExpenseByType  []core.CategoryAmount `json:"expensesByCategory"`
	RevenueByType  []core.CategoryAmount `json:"revenueByType"`
	Tenants        TenantSummary         `json:"tenants"`
	Property       PropertySummary       `json:"property"`
	MaintenanceEst core.Money            `json:"maintenanceEstimated"`
	MaintenanceAct core.Money            `json:"maintenanceActual"`
}

// TenantSummary is the tenant section of a report.
type TenantSummary struct {
	Active        int     `json:"active"`
	NewThisMonth  int     `json:"newThisMonth"`
	OccupancyRate float64 `json:"occupancyRate"`
}

// PropertySummary is the room and upkeep section of a report.
type PropertySummary struct {
	TotalRooms   int `json:"totalRooms"`
	Available    int `json:"available"`
	OpenRequests int `json:"openRequests"`
}

// FinancialReport aggregates the window of months ending at now. Category
// and type breakdowns only consider records dated inside the window.
func FinancialReport(ds core.Dataset, now core.Date, months int) FinancialReportView {
	series := FinancialSeries(ds.Payments, ds.Expenses, now, months)

	var revenue, spent core.Money
	for _, p := range series {
		revenue = revenue.Add(p.Revenue)
		spent = spent.Add(p.Expenses)
	}
	profit := revenue.Sub(spent)

	window := MonthWindow(now, months)
	inWindow := func(d core.Date) bool {
		if len(window) == 0 || d.IsEmpty() {
			return false
		}
		k := d.MonthKey()
		return !k.Before(window[0]) && !window[len(window)-1].Before(k)
	}

	var windowExpenses []core.Expense
	for _, e := range ds.Expenses {
		if inWindow(e.Date) {
			windowExpenses = append(windowExpenses, e)
		}
	}
	var windowRevenue []core.Payment
	for _, p := range Revenue(ds.Payments) {
		if inWindow(p.PaidDate) {
			windowRevenue = append(windowRevenue, p)
		}
	}

	view := FinancialReportView{
		AsOf:          now,
		Months:        len(series),
		Series:        series,
		TotalRevenue:  revenue,
		TotalExpenses: spent,
		NetProfit:     profit,
		ExpenseByType: ExpenseCategoryBreakdown(windowExpenses),
		RevenueByType: PaymentTypeBreakdown(windowRevenue),
		Tenants:       summarizeTenants(ds, now),
		Property:      summarizeProperty(ds),
	}
	if len(series) > 0 {
		view.AverageProfit = core.Money{Minor: profit.Minor / int64(len(series))}
	}
	if revenue.Minor != 0 {
		view.ProfitMargin = float64(profit.Minor) / float64(revenue.Minor) * 100
	}
	view.MaintenanceEst, view.MaintenanceAct = MaintenanceCostTotals(ds.Maintenance)
	return view
}

func summarizeTenants(ds core.Dataset, now core.Date) TenantSummary {
	month := now.MonthKey()
	var s TenantSummary
	for _, t := range ds.Tenants {
		if t.Status == core.TenantActive {
			s.Active++
		}
		if month.Contains(t.CheckInDate) {
			s.NewThisMonth++
		}
	}
	s.OccupancyRate = RoomOccupancy(ds.Rooms).Rate
	return s
}

func summarizeProperty(ds core.Dataset) PropertySummary {
	occ := RoomOccupancy(ds.Rooms)
	counts := CountRequests(ds.Maintenance)
	return PropertySummary{
		TotalRooms:   occ.Total,
		Available:    occ.Vacant,
		OpenRequests: counts.Pending + counts.InProgress,
	}
}
