package core

import (
	"fmt"
	"time"
)

// MonthKey identifies one calendar month. Two dates share a bucket iff both
// Year and Month match.
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthOf returns the bucket containing t, read in t's own location.
func MonthOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// MonthKey returns the bucket of a calendar date.
func (d Date) MonthKey() MonthKey {
	return MonthOf(d.Time)
}

// Add shifts the key by n months. The month index is zero-based and carried
// into the year with floor division, so Jan 2024 minus one is Dec 2023.
func (k MonthKey) Add(n int) MonthKey {
	idx := k.Year*12 + int(k.Month) - 1 + n
	year := floorDiv(idx, 12)
	return MonthKey{Year: year, Month: time.Month(idx - year*12 + 1)}
}

// Before reports whether k is an earlier month than o.
func (k MonthKey) Before(o MonthKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	return k.Month < o.Month
}

// Contains reports whether d falls in month k.
func (k MonthKey) Contains(d Date) bool {
	return !d.IsEmpty() && d.MonthKey() == k
}

// Start returns the first day of the month at UTC midnight.
func (k MonthKey) Start() Date {
	return NewDate(k.Year, int(k.Month), 1)
}

// End returns the last day of the month.
func (k MonthKey) End() Date {
	return k.Add(1).Start().addDays(-1)
}

// Label renders "Jan 2024".
func (k MonthKey) Label() string {
	return fmt.Sprintf("%s %d", k.Month.String()[:3], k.Year)
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// ParseMonthKey parses "2024-01".
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return MonthKey{}, ErrInvalidMonth
	}
	return MonthOf(t), nil
}

func (d Date) addDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
