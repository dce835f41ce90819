package memory

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/crm/domain"
	"github.com/fastygo/crm/repository"
)

func TestCustomerFilters(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.Customers()

	seed := []domain.Customer{
		{Name: "Alice Johnson", Email: "alice@example.com", Phone: "+11234567890"},
		{Name: "Bob Smith", Email: "bob@shop.org", Phone: "555-123-4567"},
		{Name: "Carla Jones", Email: "carla@example.com"},
	}
	for i := range seed {
		_, err := repo.Create(ctx, &seed[i])
		require.NoError(t, err)
	}

	byName, err := repo.List(ctx, repository.CustomerFilter{NameContains: "jo"})
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	byEmail, err := repo.List(ctx, repository.CustomerFilter{EmailContains: "EXAMPLE"})
	require.NoError(t, err)
	assert.Len(t, byEmail, 2)

	byPhone, err := repo.List(ctx, repository.CustomerFilter{PhonePrefix: "555"})
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "Bob Smith", byPhone[0].Name)
}

func TestCustomerOrderingDoubleReverse(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.Customers()

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 30; i++ {
		customer := domain.Customer{
			Name:  fmt.Sprintf("customer-%03d", rng.Intn(1000)),
			Email: fmt.Sprintf("c%d@example.com", i),
		}
		_, err := repo.Create(ctx, &customer)
		require.NoError(t, err)
	}

	asc, err := repo.List(ctx, repository.CustomerFilter{OrderBy: []repository.SortField{{Field: "name"}}})
	require.NoError(t, err)
	desc, err := repo.List(ctx, repository.CustomerFilter{OrderBy: []repository.SortField{{Field: "name", Desc: true}}})
	require.NoError(t, err)

	require.Equal(t, len(asc), len(desc))
	for i := range asc {
		assert.Equal(t, asc[i].Name, desc[len(desc)-1-i].Name)
	}
}

func TestProductLowStockFilter(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.Products()

	rng := rand.New(rand.NewSource(42))
	expected := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		product := domain.Product{
			Name:  fmt.Sprintf("product-%d", i),
			Price: decimal.NewFromInt(int64(i + 1)),
			Stock: rng.Intn(25),
		}
		_, err := repo.Create(ctx, &product)
		require.NoError(t, err)
		if product.Stock < domain.LowStockThreshold {
			expected[product.ID] = struct{}{}
		}
	}

	low, err := repo.List(ctx, repository.ProductFilter{LowStock: true})
	require.NoError(t, err)

	assert.Len(t, low, len(expected))
	for _, product := range low {
		assert.Less(t, product.Stock, domain.LowStockThreshold)
		assert.Contains(t, expected, product.ID)
	}
}

func TestProductStockBounds(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.Products()

	for i, stock := range []int{0, 5, 10, 20} {
		product := domain.Product{Name: fmt.Sprintf("p%d", i), Price: decimal.NewFromInt(1), Stock: stock}
		_, err := repo.Create(ctx, &product)
		require.NoError(t, err)
	}

	eq := 10
	exact, err := repo.List(ctx, repository.ProductFilter{StockEq: &eq})
	require.NoError(t, err)
	assert.Len(t, exact, 1)

	min := 5
	max := 10
	ranged, err := repo.List(ctx, repository.ProductFilter{StockMin: &min, StockMax: &max})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)
}

func TestOrderProductFiltersNoDuplicates(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	customer := domain.Customer{Name: "Dana", Email: "dana@example.com"}
	_, err := store.Customers().Create(ctx, &customer)
	require.NoError(t, err)

	order := domain.Order{
		CustomerID: customer.ID,
		Products: []domain.OrderProduct{
			{ID: "p1", Name: "blue widget", Price: decimal.NewFromInt(10)},
			{ID: "p2", Name: "red widget", Price: decimal.NewFromInt(15)},
		},
		TotalAmount: decimal.NewFromInt(25),
	}
	_, err = store.Orders().Create(ctx, &order)
	require.NoError(t, err)

	// both products match "widget" but the order appears once
	matched, err := store.Orders().List(ctx, repository.OrderFilter{ProductNameContains: "widget"})
	require.NoError(t, err)
	assert.Len(t, matched, 1)

	byID, err := store.Orders().List(ctx, repository.OrderFilter{ProductID: "p2"})
	require.NoError(t, err)
	assert.Len(t, byID, 1)

	none, err := store.Orders().List(ctx, repository.OrderFilter{ProductID: "p9"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOrderDateRangeFilter(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	customer := domain.Customer{Name: "Eve", Email: "eve@example.com"}
	_, err := store.Customers().Create(ctx, &customer)
	require.NoError(t, err)

	now := time.Now()
	for _, age := range []time.Duration{24 * time.Hour, 10 * 24 * time.Hour} {
		order := domain.Order{
			CustomerID:  customer.ID,
			Products:    []domain.OrderProduct{{ID: "p1", Name: "thing", Price: decimal.NewFromInt(1)}},
			OrderDate:   now.Add(-age),
			TotalAmount: decimal.NewFromInt(1),
		}
		_, err := store.Orders().Create(ctx, &order)
		require.NoError(t, err)
	}

	since := now.AddDate(0, 0, -7)
	recent, err := store.Orders().List(ctx, repository.OrderFilter{DateFrom: &since})
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestListedEntitiesRoundTripByID(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.Customers()

	for i := 0; i < 10; i++ {
		customer := domain.Customer{
			Name:  fmt.Sprintf("Customer %d", i),
			Email: fmt.Sprintf("rt%d@example.com", i),
			Phone: "1234567890",
		}
		_, err := repo.Create(ctx, &customer)
		require.NoError(t, err)
	}

	listed, err := repo.List(ctx, repository.CustomerFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 10)

	for _, customer := range listed {
		fetched, err := repo.GetByID(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, customer, *fetched)
	}
}

func TestPagination(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.Customers()

	for i := 0; i < 7; i++ {
		customer := domain.Customer{
			Name:  fmt.Sprintf("pg-%d", i),
			Email: fmt.Sprintf("pg%d@example.com", i),
		}
		_, err := repo.Create(ctx, &customer)
		require.NoError(t, err)
	}

	first, err := repo.List(ctx, repository.CustomerFilter{
		OrderBy: []repository.SortField{{Field: "name"}},
		Limit:   3,
	})
	require.NoError(t, err)
	assert.Len(t, first, 3)

	rest, err := repo.List(ctx, repository.CustomerFilter{
		OrderBy: []repository.SortField{{Field: "name"}},
		Limit:   10,
		Offset:  3,
	})
	require.NoError(t, err)
	assert.Len(t, rest, 4)
	assert.NotEqual(t, first[0].ID, rest[0].ID)
}
