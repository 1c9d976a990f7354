package sale

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shearbook/shearbook/internal/httperr"
)

func saleInput() CreateSaleInput {
	return CreateSaleInput{
		BarbershopID: 1,
		BarberID:     2,
		Items: []CreateSaleItemInput{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
	}
}

func TestCreateSale_CapturesPricesAndDecrementsStock(t *testing.T) {
	repo := newFakeRepo()
	dispatcher, notifier := testCollaborators()
	uc := NewCreateSale(repo, dispatcher, notifier)

	sale, err := uc.Execute(context.Background(), saleInput())
	require.NoError(t, err)

	assert.Equal(t, 25.0, sale.Total)
	require.Len(t, sale.Items, 2)

	assert.Equal(t, 10.0, sale.Items[0].UnitPrice)
	assert.Equal(t, 20.0, sale.Items[0].Subtotal)
	assert.Equal(t, 0.1, sale.Items[0].CommissionRate)

	assert.Equal(t, 6, repo.products[1].Stock)
	assert.Equal(t, 2, repo.products[2].Stock)
}

func TestCreateSale_Validation(t *testing.T) {
	repo := newFakeRepo()
	dispatcher, notifier := testCollaborators()
	uc := NewCreateSale(repo, dispatcher, notifier)

	in := saleInput()
	in.Items = nil
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "no_items"))

	in = saleInput()
	in.Items[0].Quantity = 0
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_quantity"))

	in = saleInput()
	in.Items[0].ProductID = 99
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "product_not_found"))

	in = saleInput()
	in.Items[0].ProductID = 3
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "product_inactive"))
}

func TestCreateSale_InsufficientStockLeavesEverythingUntouched(t *testing.T) {
	repo := newFakeRepo()
	dispatcher, notifier := testCollaborators()
	uc := NewCreateSale(repo, dispatcher, notifier)

	in := saleInput()
	in.Items[1].Quantity = 10 // only 3 in stock

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "insufficient_stock"))

	// The sufficient line was not decremented either.
	assert.Equal(t, 8, repo.products[1].Stock)
	assert.Equal(t, 3, repo.products[2].Stock)
	assert.Empty(t, repo.sales)
}

func TestDeleteSale_RestoresStock(t *testing.T) {
	repo := newFakeRepo()
	dispatcher, notifier := testCollaborators()
	create := NewCreateSale(repo, dispatcher, notifier)
	del := NewDeleteSale(repo, dispatcher, notifier)

	sale, err := create.Execute(context.Background(), saleInput())
	require.NoError(t, err)
	assert.Equal(t, 6, repo.products[1].Stock)

	require.NoError(t, del.Execute(context.Background(), 1, 2, sale.ID))

	assert.Equal(t, 8, repo.products[1].Stock)
	assert.Equal(t, 3, repo.products[2].Stock)
	assert.Empty(t, repo.sales)
}
