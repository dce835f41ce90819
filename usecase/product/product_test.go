package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/crm/domain"
	"github.com/fastygo/crm/repository"
	"github.com/fastygo/crm/repository/memory"
)

func TestCreate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := New(store.Products(), nil)

	created, err := uc.Create(ctx, CreateInput{
		Name:  "Blue Widget",
		Price: decimal.RequireFromString("19.99"),
		Stock: 5,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("19.99")))
	assert.Equal(t, 5, created.Stock)
}

func TestCreateRejectsNonPositivePrice(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := New(store.Products(), nil)

	for _, price := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := uc.Create(ctx, CreateInput{Name: "Widget", Price: price, Stock: 1})
		assert.ErrorIs(t, err, domain.ErrInvalidPrice)
	}

	listed, err := uc.List(ctx, repository.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCreateRejectsNegativeStock(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := New(store.Products(), nil)

	_, err := uc.Create(ctx, CreateInput{Name: "Widget", Price: decimal.NewFromInt(1), Stock: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidStock)
}

func TestCreateAllowsZeroStock(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := New(store.Products(), nil)

	created, err := uc.Create(ctx, CreateInput{Name: "Widget", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)
	assert.Zero(t, created.Stock)
}

func TestReplenishLowStock(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := New(store.Products(), nil)

	stocks := map[string]int{"apple": 3, "banana": 12, "cherry": 9}
	for name, stock := range stocks {
		_, err := uc.Create(ctx, CreateInput{Name: name, Price: decimal.NewFromInt(2), Stock: stock})
		require.NoError(t, err)
	}

	updated, message, err := uc.ReplenishLowStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Successfully updated stock for 2 products.", message)

	require.Len(t, updated, 2)
	assert.Equal(t, "apple", updated[0].Name)
	assert.Equal(t, 13, updated[0].Stock)
	assert.Equal(t, "cherry", updated[1].Name)
	assert.Equal(t, 19, updated[1].Stock)

	// products at or above the threshold are untouched
	listed, err := uc.List(ctx, repository.ProductFilter{})
	require.NoError(t, err)
	for _, product := range listed {
		if product.Name == "banana" {
			assert.Equal(t, 12, product.Stock)
		}
	}
}

func TestReplenishLowStockNoneQualifying(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := New(store.Products(), nil)

	_, err := uc.Create(ctx, CreateInput{Name: "plenty", Price: decimal.NewFromInt(1), Stock: 50})
	require.NoError(t, err)

	updated, message, err := uc.ReplenishLowStock(ctx)
	require.NoError(t, err)
	assert.Empty(t, updated)
	assert.Equal(t, "Successfully updated stock for 0 products.", message)
}
