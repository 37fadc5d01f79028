package totals

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testRow struct {
	total float64
}

func (r testRow) LineTotal() float64 { return r.total }

func TestCalcTotal(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		price    float64
		expected float64
	}{
		{name: "Basic Case", quantity: 3, price: 150, expected: 450},
		{name: "Zero Quantity", quantity: 0, price: 99.5, expected: 0},
		{name: "Decimal Amounts", quantity: 2.5, price: 10.2, expected: 25.5},
		{name: "NaN Quantity Treated As Zero", quantity: math.NaN(), price: 100, expected: 0},
		{name: "Infinite Price Treated As Zero", quantity: 4, price: math.Inf(1), expected: 0},
		{name: "Negative Infinity Treated As Zero", quantity: math.Inf(-1), price: math.Inf(-1), expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalcTotal(tt.quantity, tt.price))
		})
	}
}

func TestCalcGrandTotal(t *testing.T) {
	tests := []struct {
		name     string
		rows     []testRow
		expected float64
	}{
		{name: "Empty Set", rows: []testRow{}, expected: 0},
		{name: "Single Row", rows: []testRow{{total: 450}}, expected: 450},
		{name: "Multiple Rows", rows: []testRow{{total: 450}, {total: 25.5}, {total: 100}}, expected: 575.5},
		{name: "NaN Total Treated As Zero", rows: []testRow{{total: math.NaN()}, {total: 10}}, expected: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalcGrandTotal(tt.rows))
		})
	}
}

func TestCalcGrandTotalOrderIndependent(t *testing.T) {
	forward := []testRow{{total: 1.25}, {total: 2.5}, {total: 3.75}}
	backward := []testRow{{total: 3.75}, {total: 2.5}, {total: 1.25}}

	assert.Equal(t, CalcGrandTotal(forward), CalcGrandTotal(backward))
}

func TestSafeText(t *testing.T) {
	assert.Equal(t, "Plywood 18mm", SafeText("  Plywood 18mm \n"))
	assert.Equal(t, "", SafeText("   "))
}
