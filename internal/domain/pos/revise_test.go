package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/models"
)

func twoLineSale() *models.Sale {
	return &models.Sale{
		ID:    1,
		Total: 25,
		Items: []models.SaleItem{
			{ProductID: 1, Quantity: 2, UnitPrice: 10, Subtotal: 20},
			{ProductID: 2, Quantity: 1, UnitPrice: 5, Subtotal: 5},
		},
	}
}

func TestReviseAmounts_Discount(t *testing.T) {
	sale := twoLineSale()

	revisions, total, err := ReviseAmounts(sale, []AmountOverride{
		{ProductID: 1, Subtotal: 15},
	})

	require.NoError(t, err)
	require.Len(t, revisions, 1)

	// Quantity preserved, unit price recomputed.
	assert.Equal(t, uint(1), revisions[0].ProductID)
	assert.Equal(t, 7.5, revisions[0].UnitPrice)
	assert.Equal(t, 15.0, revisions[0].Subtotal)

	// The untouched line keeps its subtotal in the new total.
	assert.Equal(t, 20.0, total)
}

func TestReviseAmounts_UnitPriceRounding(t *testing.T) {
	sale := &models.Sale{
		Items: []models.SaleItem{
			{ProductID: 1, Quantity: 3, UnitPrice: 10, Subtotal: 30},
		},
	}

	revisions, total, err := ReviseAmounts(sale, []AmountOverride{
		{ProductID: 1, Subtotal: 20},
	})

	require.NoError(t, err)
	assert.Equal(t, 6.67, revisions[0].UnitPrice)
	assert.Equal(t, 20.0, total)
}

func TestReviseAmounts_Validation(t *testing.T) {
	t.Run("no overrides", func(t *testing.T) {
		_, _, err := ReviseAmounts(twoLineSale(), nil)
		assert.True(t, httperr.IsBusiness(err, "no_overrides"))
	})

	t.Run("non-positive subtotal", func(t *testing.T) {
		_, _, err := ReviseAmounts(twoLineSale(), []AmountOverride{
			{ProductID: 1, Subtotal: 0},
		})
		assert.True(t, httperr.IsBusiness(err, "invalid_subtotal"))
	})

	t.Run("product outside the sale", func(t *testing.T) {
		_, _, err := ReviseAmounts(twoLineSale(), []AmountOverride{
			{ProductID: 99, Subtotal: 10},
		})
		assert.True(t, httperr.IsBusiness(err, "product_not_in_sale"))
	})

	t.Run("duplicate override", func(t *testing.T) {
		_, _, err := ReviseAmounts(twoLineSale(), []AmountOverride{
			{ProductID: 1, Subtotal: 10},
			{ProductID: 1, Subtotal: 12},
		})
		assert.True(t, httperr.IsBusiness(err, "duplicate_override"))
	})
}

func TestReviseAmounts_EveryLineOverridden(t *testing.T) {
	sale := twoLineSale()

	_, total, err := ReviseAmounts(sale, []AmountOverride{
		{ProductID: 1, Subtotal: 18},
		{ProductID: 2, Subtotal: 4},
	})

	require.NoError(t, err)
	assert.Equal(t, 22.0, total)
}
