package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fastygo/crm/domain"
	"github.com/fastygo/crm/repository"
	"github.com/fastygo/crm/usecase"
)

// CreateInput carries the fields accepted by order creation. A zero OrderDate
// defaults to creation time.
type CreateInput struct {
	CustomerID string
	ProductIDs []string
	OrderDate  time.Time
}

type UseCase struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
	cache     usecase.CountCache
	logger    *zap.Logger
}

func New(
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	cache usecase.CountCache,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		orders:    orders,
		customers: customers,
		products:  products,
		cache:     cache,
		logger:    logger,
	}
}

// Create validates the customer and product references, computes the total
// over the given id list (a duplicated id contributes its price once per
// occurrence) and persists the order atomically.
func (uc *UseCase) Create(ctx context.Context, input CreateInput) (*domain.Order, error) {
	if _, err := uc.customers.GetByID(ctx, input.CustomerID); err != nil {
		return nil, err
	}
	if err := domain.ValidateProductIDs(input.ProductIDs); err != nil {
		return nil, err
	}

	unique := dedupe(input.ProductIDs)
	resolved, err := uc.products.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(resolved) < len(unique) {
		return nil, domain.ErrProductNotFound
	}

	total := decimal.Zero
	for _, id := range input.ProductIDs {
		total = total.Add(resolved[id].Price)
	}

	snapshots := make([]domain.OrderProduct, 0, len(unique))
	for _, id := range unique {
		product := resolved[id]
		snapshots = append(snapshots, domain.OrderProduct{
			ID:    product.ID,
			Name:  product.Name,
			Price: product.Price,
		})
	}

	created, err := uc.orders.Create(ctx, &domain.Order{
		CustomerID:  input.CustomerID,
		Products:    snapshots,
		OrderDate:   input.OrderDate,
		TotalAmount: total,
	})
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, usecase.CacheEntityOrders)
	}
	uc.logger.Info("order created",
		zap.String("order_id", created.ID),
		zap.String("customer_id", created.CustomerID),
		zap.String("total_amount", created.TotalAmount.String()))
	return created, nil
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Order, error) {
	return uc.orders.GetByID(ctx, id)
}

func (uc *UseCase) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	return uc.orders.List(ctx, filter)
}

func (uc *UseCase) Count(ctx context.Context) (int, error) {
	if uc.cache != nil {
		if count, ok := uc.cache.Get(ctx, usecase.CacheEntityOrders); ok {
			return count, nil
		}
	}
	count, err := uc.orders.Count(ctx)
	if err != nil {
		return 0, err
	}
	if uc.cache != nil {
		uc.cache.Set(ctx, usecase.CacheEntityOrders, count)
	}
	return count, nil
}

// dedupe preserves first-occurrence order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	var unique []string
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
