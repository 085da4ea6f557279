package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuotationNumber(t *testing.T) {
	day := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "05/03/2026/1", QuotationNumber(day, 1))
	assert.Equal(t, "05/03/2026/3", QuotationNumber(day, 3))

	nextDay := day.AddDate(0, 0, 1)
	assert.Equal(t, "06/03/2026/1", QuotationNumber(nextDay, 1))
}

func TestQuotation_RecomputeTotals(t *testing.T) {
	q := Quotation{
		Items: []QuotationItem{
			{Description: "Full day coverage", Quantity: 1, UnitPrice: 1200},
			{Description: "Edited prints", Quantity: 21, UnitPrice: 150},
		},
	}

	q.RecomputeTotals()

	assert.Equal(t, 1200.0, q.Items[0].Total)
	assert.Equal(t, 3150.0, q.Items[1].Total)
	assert.Equal(t, 4350.0, q.Subtotal)
	assert.Equal(t, q.Subtotal, q.Total)
}

func TestQuotation_RecomputeTotals_OverwritesStale(t *testing.T) {
	q := Quotation{
		Items: []QuotationItem{
			{Description: "Session", Quantity: 10, UnitPrice: 150, Total: 9999},
		},
		Subtotal: 9999,
		Total:    9999,
	}

	q.RecomputeTotals()

	assert.Equal(t, 1500.0, q.Items[0].Total)
	assert.Equal(t, 1500.0, q.Subtotal)
	assert.Equal(t, 1500.0, q.Total)
}

func TestQuotation_RecomputeTotals_Empty(t *testing.T) {
	q := Quotation{}

	q.RecomputeTotals()

	assert.Zero(t, q.Subtotal)
	assert.Zero(t, q.Total)
}
