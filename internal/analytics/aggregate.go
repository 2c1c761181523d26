// Package analytics derives numeric views from entity snapshots. Every
// function is pure: the same records and evaluation date give the same result
// and nothing is mutated.
package analytics

import (
	"pgdesk/internal/core"
)

// DefaultTrailingMonths is the window used by the dashboard and reports.
const DefaultTrailingMonths = 6

// Amount extracts the summed quantity from a record.
type Amount[T any] func(T) core.Money

// DateOf extracts the date a record is bucketed by.
type DateOf[T any] func(T) core.Date

// Sum adds up amount over every record.
func Sum[T any](records []T, amount Amount[T]) core.Money {
	var total core.Money
	for _, r := range records {
		total = total.Add(amount(r))
	}
	return total
}

// SumWhere adds up amount over the records pred accepts.
func SumWhere[T any](records []T, pred func(T) bool, amount Amount[T]) core.Money {
	var total core.Money
	for _, r := range records {
		if pred(r) {
			total = total.Add(amount(r))
		}
	}
	return total
}

// BucketByMonth groups records by the calendar month of their own date.
// Records with no date are left out.
func BucketByMonth[T any](records []T, date DateOf[T]) map[core.MonthKey][]T {
	out := make(map[core.MonthKey][]T)
	for _, r := range records {
		d := date(r)
		if d.IsEmpty() {
			continue
		}
		k := d.MonthKey()
		out[k] = append(out[k], r)
	}
	return out
}

// MonthWindow returns the n months ending at (and including) the month of now,
// oldest first. n <= 0 yields an empty window.
func MonthWindow(now core.Date, n int) []core.MonthKey {
	if n <= 0 {
		return []core.MonthKey{}
	}
	end := now.MonthKey()
	out := make([]core.MonthKey, n)
	for i := 0; i < n; i++ {
		out[i] = end.Add(i - (n - 1))
	}
	return out
}

// TrailingMonths sums amount per calendar month over the n months ending at
// now. The series always has exactly n points in chronological order, with
// zero totals for months that have no records.
func TrailingMonths[T any](records []T, date DateOf[T], amount Amount[T], now core.Date, n int) []core.MonthPoint {
	totals := make(map[core.MonthKey]core.Money)
	for _, r := range records {
		d := date(r)
		if d.IsEmpty() {
			continue
		}
		k := d.MonthKey()
		totals[k] = totals[k].Add(amount(r))
	}

	window := MonthWindow(now, n)
	out := make([]core.MonthPoint, len(window))
	for i, k := range window {
		out[i] = core.MonthPoint{Key: k, Month: k.String(), Label: k.Label(), Total: totals[k]}
	}
	return out
}

// PctChange is (current - previous) / previous * 100. When previous is zero
// the result is 0 by policy rather than an infinity or an error.
func PctChange(current, previous core.Money) float64 {
	if previous.Minor == 0 {
		return 0
	}
	return float64(current.Minor-previous.Minor) / float64(previous.Minor) * 100
}

// MonthOverMonth compares the month of now with the month before it.
func MonthOverMonth[T any](records []T, date DateOf[T], amount Amount[T], now core.Date) core.MonthComparison {
	this := now.MonthKey()
	last := this.Add(-1)
	cur := SumWhere(records, func(r T) bool { return this.Contains(date(r)) }, amount)
	prev := SumWhere(records, func(r T) bool { return last.Contains(date(r)) }, amount)
	return core.MonthComparison{Current: cur, Previous: prev, PercentChange: PctChange(cur, prev)}
}

// Breakdown sums amount per key over a fixed, ordered key set and drops every
// key whose total is exactly zero. Records with keys outside the set are
// ignored. Labels and colours come from the metadata group.
func Breakdown[T any, K ~string](records []T, keys []K, key func(T) K, amount Amount[T], group string) []core.CategoryAmount {
	totals := make(map[K]core.Money, len(keys))
	for _, r := range records {
		k := key(r)
		totals[k] = totals[k].Add(amount(r))
	}

	out := make([]core.CategoryAmount, 0, len(keys))
	for _, k := range keys {
		total := totals[k]
		if total.IsZero() {
			continue
		}
		ca := core.CategoryAmount{Name: string(k), Label: string(k), Amount: total}
		if m, ok := core.Meta(group, string(k)); ok {
			ca.Label = m.Label
			ca.Color = m.Color
		}
		out = append(out, ca)
	}
	return out
}
