// Package core holds the domain types shared by the local record stores,
// the aggregation functions and the report exporters.
//
// Amounts are decimal strings at rest. ParseAmount is the strict,
// producer-side parse used before anything is persisted; AmountValue is the
// lenient display-side parse used by aggregation, where a bad amount must
// degrade to zero instead of failing the whole view.
package core

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a decimal amount string strictly. It accepts both dot
// and comma decimal separators and rejects anything that is not a finite
// decimal number.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// AmountValue parses an amount string for aggregation. Invalid input, NaN
// and infinities all contribute zero.
func AmountValue(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
