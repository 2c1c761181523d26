package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Color  string `json:"color"`
	Amount Money  `json:"amount"`
}

// MonthPoint is one entry of a trailing month series.
type MonthPoint struct {
	Key   MonthKey `json:"-"`
	Month string   `json:"month"` // YYYY-MM
	Label string   `json:"label"` // "Jan 2024"
	Total Money    `json:"total"`
}

// FinancialPoint pairs revenue and expenses for one month.
type FinancialPoint struct {
	Month    string `json:"month"`
	Label    string `json:"label"`
	Revenue  Money  `json:"revenue"`
	Expenses Money  `json:"expenses"`
	Profit   Money  `json:"profit"`
}

// MonthComparison is a this-month versus last-month delta.
type MonthComparison struct {
	Current       Money   `json:"current"`
	Previous      Money   `json:"previous"`
	PercentChange float64 `json:"percentChange"`
}

// StatusTotals partitions payment amounts by status.
type StatusTotals struct {
	Total   Money `json:"total"`
	Paid    Money `json:"paid"`
	Pending Money `json:"pending"`
	Overdue Money `json:"overdue"`
}

// RequestCounts counts maintenance requests by status, plus urgent ones.
type RequestCounts struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
	Urgent     int `json:"urgent"`
}

// Occupancy summarises room status counts.
type Occupancy struct {
	Total       int     `json:"total"`
	Occupied    int     `json:"occupied"`
	Vacant      int     `json:"vacant"`
	Maintenance int     `json:"maintenance"`
	Rate        float64 `json:"rate"` // percent of rooms occupied
}
