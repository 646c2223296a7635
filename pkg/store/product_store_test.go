package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/storefront/pkg/model"
)

func TestProductStoreCreateAndGet(t *testing.T) {
	s := NewProductStore(newTestDB(t))
	ctx := context.Background()

	p := &model.Product{
		Name:          "widget",
		Price:         decimal.RequireFromString("19.99"),
		StockQuantity: 5,
	}
	require.NoError(t, s.Create(ctx, p))
	require.NotEmpty(t, p.ID)

	got, err := s.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "widget", got.Name)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("19.99")), "price %s", got.Price)
	assert.Equal(t, 5, got.StockQuantity)
}

func TestProductStoreGetMissing(t *testing.T) {
	s := NewProductStore(newTestDB(t))

	got, err := s.GetByID(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductStoreUpdatePartial(t *testing.T) {
	s := NewProductStore(newTestDB(t))
	ctx := context.Background()

	p := &model.Product{
		Name:          "widget",
		Price:         decimal.RequireFromString("19.99"),
		StockQuantity: 5,
	}
	require.NoError(t, s.Create(ctx, p))

	newPrice := decimal.RequireFromString("24.50")
	updated, err := s.Update(ctx, p.ID, ProductPatch{Price: &newPrice})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, updated.Price.Equal(newPrice))
	assert.Equal(t, "widget", updated.Name)
	assert.Equal(t, 5, updated.StockQuantity)
}

func TestProductStoreUpdateMissing(t *testing.T) {
	s := NewProductStore(newTestDB(t))

	updated, err := s.Update(context.Background(), "no-such-id", ProductPatch{Name: strPtr("x")})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestProductStoreDecrementStock(t *testing.T) {
	s := NewProductStore(newTestDB(t))
	ctx := context.Background()

	p := &model.Product{
		Name:          "widget",
		Price:         decimal.RequireFromString("1.00"),
		StockQuantity: 5,
	}
	require.NoError(t, s.Create(ctx, p))

	ok, err := s.DecrementStock(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.StockQuantity)

	// More than remains: the guard refuses and the stock stays put.
	ok, err = s.DecrementStock(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err = s.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.StockQuantity)

	// Exactly what remains drains the stock to zero.
	ok, err = s.DecrementStock(ctx, p.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = s.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.StockQuantity)
}

func TestProductStoreDecrementStockMissing(t *testing.T) {
	s := NewProductStore(newTestDB(t))

	ok, err := s.DecrementStock(context.Background(), "no-such-id", 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProductStoreDelete(t *testing.T) {
	s := NewProductStore(newTestDB(t))
	ctx := context.Background()

	p := &model.Product{Name: "widget", Price: decimal.RequireFromString("1.00")}
	require.NoError(t, s.Create(ctx, p))

	require.NoError(t, s.Delete(ctx, p.ID))

	got, err := s.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Delete(ctx, p.ID))
}
