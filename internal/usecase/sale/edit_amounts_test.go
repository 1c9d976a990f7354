package sale

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shearbook/shearbook/internal/domain/pos"
	"github.com/shearbook/shearbook/internal/httperr"
)

func TestEditAmounts_Discount(t *testing.T) {
	repo := newFakeRepo()
	dispatcher, notifier := testCollaborators()
	create := NewCreateSale(repo, dispatcher, notifier)
	edit := NewEditAmounts(repo, dispatcher, notifier)

	sale, err := create.Execute(context.Background(), saleInput())
	require.NoError(t, err)
	require.Equal(t, 25.0, sale.Total)

	updated, err := edit.Execute(context.Background(), EditAmountsInput{
		BarbershopID: 1,
		UserID:       2,
		SaleID:       sale.ID,
		Overrides:    []pos.AmountOverride{{ProductID: 1, Subtotal: 15}},
	})
	require.NoError(t, err)

	assert.Equal(t, 20.0, updated.Total)

	for _, item := range updated.Items {
		switch item.ProductID {
		case 1:
			// Quantity kept, unit price recomputed from the override.
			assert.Equal(t, 2, item.Quantity)
			assert.Equal(t, 7.5, item.UnitPrice)
			assert.Equal(t, 15.0, item.Subtotal)
		case 2:
			assert.Equal(t, 5.0, item.Subtotal)
		}
	}

	// Stock is untouched by an amount edit.
	assert.Equal(t, 6, repo.products[1].Stock)
}

func TestEditAmounts_ValidationBeforeWrite(t *testing.T) {
	repo := newFakeRepo()
	dispatcher, notifier := testCollaborators()
	create := NewCreateSale(repo, dispatcher, notifier)
	edit := NewEditAmounts(repo, dispatcher, notifier)

	sale, err := create.Execute(context.Background(), saleInput())
	require.NoError(t, err)

	_, err = edit.Execute(context.Background(), EditAmountsInput{
		BarbershopID: 1,
		SaleID:       sale.ID,
		Overrides:    []pos.AmountOverride{{ProductID: 99, Subtotal: 10}},
	})
	assert.True(t, httperr.IsBusiness(err, "product_not_in_sale"))

	// The sale is unchanged after the rejected edit.
	stored, err := repo.GetSale(context.Background(), 1, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, 25.0, stored.Total)
}

func TestEditAmounts_UnknownSale(t *testing.T) {
	repo := newFakeRepo()
	dispatcher, notifier := testCollaborators()
	edit := NewEditAmounts(repo, dispatcher, notifier)

	_, err := edit.Execute(context.Background(), EditAmountsInput{
		BarbershopID: 1,
		SaleID:       999,
		Overrides:    []pos.AmountOverride{{ProductID: 1, Subtotal: 10}},
	})
	assert.True(t, httperr.IsBusiness(err, "sale_not_found"))
}
