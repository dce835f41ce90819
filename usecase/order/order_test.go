package order

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/crm/domain"
	"github.com/fastygo/crm/repository/memory"
)

type fixture struct {
	store    *memory.Store
	uc       *UseCase
	customer *domain.Customer
	products map[string]*domain.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	customer, err := store.Customers().Create(ctx, &domain.Customer{
		Name:  "Alice Johnson",
		Email: "alice@example.com",
	})
	require.NoError(t, err)

	products := make(map[string]*domain.Product)
	for name, price := range map[string]string{"widget": "10", "gadget": "15.50"} {
		product, err := store.Products().Create(ctx, &domain.Product{
			Name:  name,
			Price: decimal.RequireFromString(price),
			Stock: 5,
		})
		require.NoError(t, err)
		products[name] = product
	}

	return &fixture{
		store:    store,
		uc:       New(store.Orders(), store.Customers(), store.Products(), nil, nil),
		customer: customer,
		products: products,
	}
}

func TestCreateComputesTotal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.uc.Create(ctx, CreateInput{
		CustomerID: f.customer.ID,
		ProductIDs: []string{f.products["widget"].ID, f.products["gadget"].ID},
	})
	require.NoError(t, err)

	assert.True(t, created.TotalAmount.Equal(decimal.RequireFromString("25.50")),
		"got total %s", created.TotalAmount)
	assert.Len(t, created.Products, 2)
	assert.Equal(t, f.customer.Name, created.CustomerName)
	assert.False(t, created.OrderDate.IsZero())
}

func TestCreateDuplicateIDsPricedTwice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	widget := f.products["widget"].ID
	created, err := f.uc.Create(ctx, CreateInput{
		CustomerID: f.customer.ID,
		ProductIDs: []string{widget, widget},
	})
	require.NoError(t, err)

	// a repeated id contributes its price per occurrence, but the snapshot
	// holds the product once
	assert.True(t, created.TotalAmount.Equal(decimal.NewFromInt(20)))
	assert.Len(t, created.Products, 1)
}

func TestCreateEmptyProductList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.uc.Create(ctx, CreateInput{CustomerID: f.customer.ID})
	assert.ErrorIs(t, err, domain.ErrEmptyProductList)
}

func TestCreateUnknownProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.uc.Create(ctx, CreateInput{
		CustomerID: f.customer.ID,
		ProductIDs: []string{f.products["widget"].ID, "missing-id"},
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	count, err := f.uc.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateUnknownCustomer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.uc.Create(ctx, CreateInput{
		CustomerID: "missing-customer",
		ProductIDs: []string{f.products["widget"].ID},
	})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCreateExplicitOrderDate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	when := time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC)
	created, err := f.uc.Create(ctx, CreateInput{
		CustomerID: f.customer.ID,
		ProductIDs: []string{f.products["widget"].ID},
		OrderDate:  when,
	})
	require.NoError(t, err)
	assert.True(t, created.OrderDate.Equal(when))
}

func TestGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.uc.Create(ctx, CreateInput{
		CustomerID: f.customer.ID,
		ProductIDs: []string{f.products["gadget"].ID},
	})
	require.NoError(t, err)

	fetched, err := f.uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.True(t, created.TotalAmount.Equal(fetched.TotalAmount))
}
