// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing monetary amounts from strings
// and converting between minor units and display representations.
package core

import (
	"bytes"
	"strconv"
	"strings"
)

// ParseDecimalToMinor converts a decimal string to minor units with proper rounding.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and performs
// half-up rounding on the third decimal place. Returns an error for invalid
// formats, negative values, or zero amounts.
//
// Examples:
//
//	ParseDecimalToMinor("15000")    -> 1500000, nil
//	ParseDecimalToMinor("12,34")    -> 1234, nil
//	ParseDecimalToMinor("12.345")   -> 1235, nil (rounds up)
//	ParseDecimalToMinor("12.344")   -> 1234, nil (rounds down)
func ParseDecimalToMinor(s string) (int64, error) {
	v, err := parseMinor(s)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// ParseAmount parses a positive amount into Money.
func ParseAmount(s string) (Money, error) {
	v, err := ParseDecimalToMinor(s)
	if err != nil {
		return Money{}, err
	}
	return Money{Minor: v}, nil
}

func parseMinor(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv >= maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				frac++
			}
		}
	}
	return iv*100 + frac, nil
}

func (m Money) Validate() error {
	if m.Minor <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{Minor: m.Minor + o.Minor}
}

// Sub returns m - o.
func (m Money) Sub(o Money) Money {
	return Money{Minor: m.Minor - o.Minor}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Minor == 0
}

// Major returns the value in major units as a float64 for display and ratios.
// Use Minor for arithmetic.
func (m Money) Major() float64 {
	return float64(m.Minor) / 100.0
}

// Decimal renders the amount as a plain decimal, dropping a zero fraction
// ("15000", "15000.50", "-12.05").
func (m Money) Decimal() string {
	v := m.Minor
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatInt(v/100, 10)
	if rem := v % 100; rem != 0 {
		s += "." + strconv.FormatInt(rem/10, 10) + strconv.FormatInt(rem%10, 10)
	}
	if neg {
		return "-" + s
	}
	return s
}

func (m Money) String() string {
	return m.Decimal()
}

// Format renders the amount with a currency symbol and thousands separators,
// e.g. Format("₹") -> "₹15,000" or "-₹1,250.50".
func (m Money) Format(symbol string) string {
	v := m.Minor
	neg := v < 0
	if neg {
		v = -v
	}
	digits := strconv.FormatInt(v/100, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if rem := v % 100; rem != 0 {
		b.WriteByte('.')
		b.WriteString(strconv.FormatInt(rem/10, 10))
		b.WriteString(strconv.FormatInt(rem%10, 10))
	}
	if neg {
		return "-" + symbol + b.String()
	}
	return symbol + b.String()
}

// MarshalJSON encodes the amount as a JSON number in major units.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal()), nil
}

// UnmarshalJSON accepts a JSON number or string in major units. Zero is
// accepted here; entity validation decides whether it is allowed.
func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		*m = Money{}
		return nil
	}
	s := strings.Trim(string(b), `"`)
	v, err := parseMinor(s)
	if err != nil {
		return err
	}
	m.Minor = v
	return nil
}
