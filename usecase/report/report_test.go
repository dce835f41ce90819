package report

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

func TestFormatLine(t *testing.T) {
	r := Report{
		Customers:   12,
		Orders:      34,
		Revenue:     decimal.RequireFromString("1234.5"),
		GeneratedAt: time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "2025-06-01 06:00:00 - Report: 12 customers, 34 orders, 1234.50 revenue.", r.FormatLine())
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	customer, err := store.Customers().Create(ctx, &domain.Customer{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	for _, total := range []string{"10.25", "5.75"} {
		_, err := store.Orders().Create(ctx, &domain.Order{
			CustomerID:  customer.ID,
			Products:    []domain.OrderProduct{{ID: "p1", Name: "widget", Price: decimal.NewFromInt(1)}},
			TotalAmount: decimal.RequireFromString(total),
		})
		require.NoError(t, err)
	}

	uc := New(store.Customers(), store.Orders(), nil, nil)
	fixed := time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }

	snapshot, err := uc.Snapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, snapshot.Customers)
	assert.Equal(t, 2, snapshot.Orders)
	assert.True(t, snapshot.Revenue.Equal(decimal.RequireFromString("16.00")))
	assert.Equal(t, fixed, snapshot.GeneratedAt)
	assert.Equal(t, "2025-06-01 06:00:00 - Report: 1 customers, 2 orders, 16.00 revenue.", snapshot.FormatLine())
}

func TestSnapshotEmpty(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := New(store.Customers(), store.Orders(), nil, nil)

	snapshot, err := uc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Zero(t, snapshot.Customers)
	assert.Zero(t, snapshot.Orders)
	assert.True(t, snapshot.Revenue.IsZero())
}
