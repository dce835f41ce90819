package jobs

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/crm/domain"
	"github.com/fastygo/crm/repository"
	"github.com/fastygo/crm/repository/memory"
	orderUC "github.com/fastygo/crm/usecase/order"
	productUC "github.com/fastygo/crm/usecase/product"
	reportUC "github.com/fastygo/crm/usecase/report"
)

type memSink struct {
	lines map[string][]string
}

func newMemSink() *memSink {
	return &memSink{lines: make(map[string][]string)}
}

func (s *memSink) Append(job, line string) error {
	s.lines[job] = append(s.lines[job], line)
	return nil
}

var fixedNow = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func newJobs(t *testing.T, store *memory.Store, sink Sink) *Jobs {
	t.Helper()
	products := productUC.New(store.Products(), nil)
	orders := orderUC.New(store.Orders(), store.Customers(), store.Products(), nil, nil)
	report := reportUC.New(store.Customers(), store.Orders(), nil, nil)

	j := New(products, orders, report, sink, nil, Config{})
	j.now = func() time.Time { return fixedNow }
	return j
}

func TestHeartbeat(t *testing.T) {
	sink := newMemSink()
	j := newJobs(t, memory.NewStore(), sink)

	j.Heartbeat()

	require.Len(t, sink.lines[SinkHeartbeat], 1)
	assert.Equal(t, "01-06-2025 08:00:00 CRM is alive", sink.lines[SinkHeartbeat][0])
}

func TestLowStockSweep(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	sink := newMemSink()

	for name, stock := range map[string]int{"apple": 3, "banana": 12} {
		_, err := store.Products().Create(ctx, &domain.Product{
			Name:  name,
			Price: decimal.NewFromInt(1),
			Stock: stock,
		})
		require.NoError(t, err)
	}

	j := newJobs(t, store, sink)
	j.LowStockSweep(ctx)

	lines := sink.lines[SinkLowStock]
	require.Len(t, lines, 2)
	assert.Equal(t, "2025-06-01 08:00:00 - Successfully updated stock for 1 products.", lines[0])
	assert.Equal(t, "Updated: apple, New Stock: 13", lines[1])
}

func TestOrderReminderScan(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	sink := newMemSink()

	customer, err := store.Customers().Create(ctx, &domain.Customer{
		Name:  "Alice",
		Email: "alice@example.com",
	})
	require.NoError(t, err)

	products := []domain.OrderProduct{{ID: "p1", Name: "widget", Price: decimal.NewFromInt(1)}}
	recent, err := store.Orders().Create(ctx, &domain.Order{
		CustomerID:  customer.ID,
		Products:    products,
		OrderDate:   fixedNow.AddDate(0, 0, -2),
		TotalAmount: decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	_, err = store.Orders().Create(ctx, &domain.Order{
		CustomerID:  customer.ID,
		Products:    products,
		OrderDate:   fixedNow.AddDate(0, 0, -30),
		TotalAmount: decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	j := newJobs(t, store, sink)
	j.OrderReminderScan(ctx)

	lines := sink.lines[SinkReminders]
	require.Len(t, lines, 2)
	assert.Equal(t, "Processing reminders at 2025-06-01 08:00:00", lines[0])
	assert.Equal(t, fmt.Sprintf("REMINDER: Order ID %s for customer alice@example.com", recent.ID), lines[1])
}

func TestOrderReminderScanEmpty(t *testing.T) {
	sink := newMemSink()
	j := newJobs(t, memory.NewStore(), sink)

	j.OrderReminderScan(context.Background())

	lines := sink.lines[SinkReminders]
	require.Len(t, lines, 2)
	assert.Equal(t, "Processing reminders at 2025-06-01 08:00:00", lines[0])
	assert.Equal(t, "No pending orders found.", lines[1])
}

func TestNightlyReport(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	sink := newMemSink()

	customer, err := store.Customers().Create(ctx, &domain.Customer{
		Name:  "Alice",
		Email: "alice@example.com",
	})
	require.NoError(t, err)
	_, err = store.Orders().Create(ctx, &domain.Order{
		CustomerID:  customer.ID,
		Products:    []domain.OrderProduct{{ID: "p1", Name: "widget", Price: decimal.NewFromInt(1)}},
		TotalAmount: decimal.RequireFromString("42.5"),
	})
	require.NoError(t, err)

	j := newJobs(t, store, sink)
	j.NightlyReport(ctx)

	lines := sink.lines[SinkReport]
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Report: 1 customers, 1 orders, 42.50 revenue.")
}

type pruningSink struct {
	memSink
	prunedBefore time.Time
}

func (s *pruningSink) Cleanup(olderThan time.Time) error {
	s.prunedBefore = olderThan
	return nil
}

func TestTrimLog(t *testing.T) {
	sink := &pruningSink{memSink: *newMemSink()}
	store := memory.NewStore()

	products := productUC.New(store.Products(), nil)
	orders := orderUC.New(store.Orders(), store.Customers(), store.Products(), nil, nil)
	report := reportUC.New(store.Customers(), store.Orders(), nil, nil)

	j := New(products, orders, report, sink, nil, Config{Retention: 48 * time.Hour})
	j.now = func() time.Time { return fixedNow }

	j.TrimLog()

	assert.Equal(t, fixedNow.Add(-48*time.Hour), sink.prunedBefore)
}

func TestTrimLogDisabledWithoutRetention(t *testing.T) {
	sink := &pruningSink{memSink: *newMemSink()}
	j := newJobs(t, memory.NewStore(), sink)

	j.TrimLog()

	assert.True(t, sink.prunedBefore.IsZero())
}

type failingOrders struct{}

var errStoreDown = errors.New("store unavailable")

func (failingOrders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return nil, errStoreDown
}

func (failingOrders) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	return nil, errStoreDown
}

func (failingOrders) Count(ctx context.Context) (int, error) { return 0, errStoreDown }

func (failingOrders) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	return nil, errStoreDown
}

func (failingOrders) SumTotalAmount(ctx context.Context) (decimal.Decimal, error) {
	return decimal.Zero, errStoreDown
}

func TestOrderReminderScanError(t *testing.T) {
	store := memory.NewStore()
	sink := newMemSink()

	products := productUC.New(store.Products(), nil)
	orders := orderUC.New(failingOrders{}, store.Customers(), store.Products(), nil, nil)
	report := reportUC.New(store.Customers(), store.Orders(), nil, nil)

	j := New(products, orders, report, sink, nil, Config{MaxRetries: 2})
	j.now = func() time.Time { return fixedNow }

	j.OrderReminderScan(context.Background())

	lines := sink.lines[SinkReminders]
	require.Len(t, lines, 1)
	assert.Equal(t, "[2025-06-01 08:00:00] ERROR: Could not process reminders. Error: store unavailable", lines[0])
}
