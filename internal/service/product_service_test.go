package service_test

import (
	"context"
	"testing"

	"smartpos/internal/dto"
	"smartpos/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddProduct(t *testing.T) {
	repo := newStubProductRepo()
	svc := service.NewProductService(repo)

	resp, err := svc.Add(context.Background(), 1, dto.AddProductRequest{
		Name:        "Sugar 1kg",
		Price:       dec("120.00"),
		BuyingPrice: decPtr("95.50"),
		Quantity:    40,
	})
	require.NoError(t, err)

	assert.Equal(t, "Sugar 1kg", resp.Name)
	assert.True(t, resp.Price.Equal(dec("120.00")))
	assert.Equal(t, 40, resp.Quantity)
	require.NotNil(t, resp.BuyingPrice)
	assert.True(t, resp.BuyingPrice.Equal(dec("95.50")))
}

func TestAddProductRejectsDuplicateNameWithinBusiness(t *testing.T) {
	repo := newStubProductRepo()
	svc := service.NewProductService(repo)

	req := dto.AddProductRequest{Name: "Sugar 1kg", Price: dec("120"), Quantity: 10}
	_, err := svc.Add(context.Background(), 1, req)
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), 1, req)
	assert.ErrorIs(t, err, service.ErrConflict)

	// The same name in another business is fine.
	_, err = svc.Add(context.Background(), 2, req)
	assert.NoError(t, err)
}

func TestAddProductRejectsPriceBelowBuyingPrice(t *testing.T) {
	repo := newStubProductRepo()
	svc := service.NewProductService(repo)

	_, err := svc.Add(context.Background(), 1, dto.AddProductRequest{
		Name:        "Loss maker",
		Price:       dec("90"),
		BuyingPrice: decPtr("100"),
	})
	assert.ErrorIs(t, err, service.ErrInvalidPrice)

	// Equal is allowed: the floor is inclusive.
	_, err = svc.Add(context.Background(), 1, dto.AddProductRequest{
		Name:        "Break even",
		Price:       dec("100"),
		BuyingPrice: decPtr("100"),
	})
	assert.NoError(t, err)
}

func TestAddProductWithoutBuyingPriceHasNoFloor(t *testing.T) {
	repo := newStubProductRepo()
	svc := service.NewProductService(repo)

	_, err := svc.Add(context.Background(), 1, dto.AddProductRequest{
		Name:  "No cost tracking",
		Price: dec("1"),
	})
	assert.NoError(t, err)
}

func TestUpdateStockPartialPatch(t *testing.T) {
	repo := newStubProductRepo()
	svc := service.NewProductService(repo)

	created, err := svc.Add(context.Background(), 1, dto.AddProductRequest{
		Name:        "Rice 2kg",
		Price:       dec("250"),
		BuyingPrice: decPtr("200"),
		Quantity:    10,
	})
	require.NoError(t, err)

	qty := 25
	resp, err := svc.UpdateStock(context.Background(), 1, created.ID, dto.UpdateStockRequest{
		Quantity: &qty,
	})
	require.NoError(t, err)

	// Only the supplied field changed.
	assert.Equal(t, 25, resp.Quantity)
	assert.True(t, resp.Price.Equal(dec("250")))
	require.NotNil(t, resp.BuyingPrice)
	assert.True(t, resp.BuyingPrice.Equal(dec("200")))
}

func TestUpdateStockReenforcesPriceFloor(t *testing.T) {
	repo := newStubProductRepo()
	svc := service.NewProductService(repo)

	created, err := svc.Add(context.Background(), 1, dto.AddProductRequest{
		Name:        "Beans",
		Price:       dec("250"),
		BuyingPrice: decPtr("200"),
	})
	require.NoError(t, err)

	low := dec("150")
	_, err = svc.UpdateStock(context.Background(), 1, created.ID, dto.UpdateStockRequest{
		Price: &low,
	})
	assert.ErrorIs(t, err, service.ErrInvalidPrice)

	// Raising the buying price above the current price fails too.
	highBuying := dec("300")
	_, err = svc.UpdateStock(context.Background(), 1, created.ID, dto.UpdateStockRequest{
		BuyingPrice: &highBuying,
	})
	assert.ErrorIs(t, err, service.ErrInvalidPrice)
}

func TestUpdateStockUnknownProduct(t *testing.T) {
	repo := newStubProductRepo()
	svc := service.NewProductService(repo)

	qty := 5
	_, err := svc.UpdateStock(context.Background(), 1, 999, dto.UpdateStockRequest{Quantity: &qty})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpdateStockIsTenantScoped(t *testing.T) {
	repo := newStubProductRepo()
	svc := service.NewProductService(repo)

	created, err := svc.Add(context.Background(), 1, dto.AddProductRequest{
		Name:  "Private stock",
		Price: dec("50"),
	})
	require.NoError(t, err)

	// Business 2 addressing business 1's product id gets the same answer as
	// a missing product.
	qty := 99
	_, err = svc.UpdateStock(context.Background(), 2, created.ID, dto.UpdateStockRequest{Quantity: &qty})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestListProductsIsTenantScoped(t *testing.T) {
	repo := newStubProductRepo()
	svc := service.NewProductService(repo)

	for _, p := range []struct {
		biz  uint
		name string
	}{
		{1, "Salt"},
		{1, "Pepper"},
		{2, "Cinnamon"},
	} {
		_, err := svc.Add(context.Background(), p.biz, dto.AddProductRequest{
			Name:  p.name,
			Price: dec("10"),
		})
		require.NoError(t, err)
	}

	mine, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, p := range mine {
		assert.NotEqual(t, "Cinnamon", p.Name)
	}

	theirs, err := svc.List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, "Cinnamon", theirs[0].Name)
}
