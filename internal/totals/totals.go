// Package totals holds the shared line-total arithmetic used by every table
// (sourcing, petty cash, liquidation). Amounts are plain float64s: the data
// contract is quantity × price with no rounding policy on top.
package totals

import (
	"math"
	"strings"
)

// CalcTotal returns quantity * price, substituting 0 for any non-finite
// input. It never fails.
func CalcTotal(quantity, price float64) float64 {
	q := quantity
	if math.IsNaN(q) || math.IsInf(q, 0) {
		q = 0
	}
	p := price
	if math.IsNaN(p) || math.IsInf(p, 0) {
		p = 0
	}
	return q * p
}

// Totaler is anything carrying a derived line total.
type Totaler interface {
	LineTotal() float64
}

// CalcGrandTotal sums the line totals of the given items. Empty input yields 0.
func CalcGrandTotal[T Totaler](items []T) float64 {
	var sum float64
	for _, item := range items {
		t := item.LineTotal()
		if math.IsNaN(t) || math.IsInf(t, 0) {
			t = 0
		}
		sum += t
	}
	return sum
}

// SafeText trims surrounding whitespace from free-form user input.
func SafeText(value string) string {
	return strings.TrimSpace(value)
}
