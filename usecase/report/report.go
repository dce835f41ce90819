package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fastygo/crm/repository"
	"github.com/fastygo/crm/usecase"
)

// Report is the aggregated business snapshot used by the nightly report job
// and the report endpoint.
type Report struct {
	Customers   int             `json:"customers"`
	Orders      int             `json:"orders"`
	Revenue     decimal.Decimal `json:"revenue"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// FormatLine renders the canonical one-line report.
func (r Report) FormatLine() string {
	return fmt.Sprintf("%s - Report: %d customers, %d orders, %s revenue.",
		r.GeneratedAt.Format("2006-01-02 15:04:05"),
		r.Customers,
		r.Orders,
		r.Revenue.StringFixed(2))
}

type UseCase struct {
	customers repository.CustomerRepository
	orders    repository.OrderRepository
	cache     usecase.CountCache
	logger    *zap.Logger
	now       func() time.Time
}

func New(customers repository.CustomerRepository, orders repository.OrderRepository, cache usecase.CountCache, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		customers: customers,
		orders:    orders,
		cache:     cache,
		logger:    logger,
		now:       time.Now,
	}
}

// Snapshot aggregates customer count, order count and total revenue.
func (uc *UseCase) Snapshot(ctx context.Context) (Report, error) {
	customers, err := uc.count(ctx, usecase.CacheEntityCustomers, uc.customers.Count)
	if err != nil {
		return Report{}, err
	}
	orders, err := uc.count(ctx, usecase.CacheEntityOrders, uc.orders.Count)
	if err != nil {
		return Report{}, err
	}
	revenue, err := uc.orders.SumTotalAmount(ctx)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Customers:   customers,
		Orders:      orders,
		Revenue:     revenue,
		GeneratedAt: uc.now(),
	}, nil
}

func (uc *UseCase) count(ctx context.Context, entity string, fetch func(context.Context) (int, error)) (int, error) {
	if uc.cache != nil {
		if count, ok := uc.cache.Get(ctx, entity); ok {
			return count, nil
		}
	}
	count, err := fetch(ctx)
	if err != nil {
		return 0, err
	}
	if uc.cache != nil {
		uc.cache.Set(ctx, entity, count)
	}
	return count, nil
}
