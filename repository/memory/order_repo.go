package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fastygo/crm/domain"
	"github.com/fastygo/crm/repository"
)

type orderRepo struct {
	store *Store
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	order, ok := r.store.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return &order, nil
}

func (r *orderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []domain.Order
	for _, order := range r.store.orders {
		if filter.CustomerNameContains != "" && !containsFold(order.CustomerName, filter.CustomerNameContains) {
			continue
		}
		if filter.ProductNameContains != "" && !anyProduct(order, func(p domain.OrderProduct) bool {
			return containsFold(p.Name, filter.ProductNameContains)
		}) {
			continue
		}
		if filter.ProductID != "" && !anyProduct(order, func(p domain.OrderProduct) bool {
			return p.ID == filter.ProductID
		}) {
			continue
		}
		if filter.TotalMin != nil && order.TotalAmount.LessThan(*filter.TotalMin) {
			continue
		}
		if filter.TotalMax != nil && order.TotalAmount.GreaterThan(*filter.TotalMax) {
			continue
		}
		if filter.DateFrom != nil && order.OrderDate.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && order.OrderDate.After(*filter.DateTo) {
			continue
		}
		matched = append(matched, order)
	}

	orderSlice(matched, filter.OrderBy, func(a, b domain.Order, field string) int {
		switch field {
		case "total_amount":
			return a.TotalAmount.Cmp(b.TotalAmount)
		case "order_date":
			return compareTimes(a.OrderDate, b.OrderDate)
		case "customer_name":
			return compareStrings(a.CustomerName, b.CustomerName)
		default:
			return 0
		}
	}, func(o domain.Order) string { return o.ID })

	return paginate(matched, filter.Limit, filter.Offset), nil
}

func (r *orderRepo) Count(ctx context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.orders), nil
}

func (r *orderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil || order.CustomerID == "" || len(order.Products) == 0 {
		return nil, domain.ErrInvalidPayload
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if order.ID == "" {
		order.ID = newID()
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = r.store.now()
	}
	if customer, ok := r.store.customers[order.CustomerID]; ok {
		order.CustomerName = customer.Name
		order.CustomerEmail = customer.Email
	}
	r.store.orders[order.ID] = *order
	return order, nil
}

func (r *orderRepo) SumTotalAmount(ctx context.Context) (decimal.Decimal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	sum := decimal.Zero
	for _, order := range r.store.orders {
		sum = sum.Add(order.TotalAmount)
	}
	return sum, nil
}

func anyProduct(order domain.Order, match func(domain.OrderProduct) bool) bool {
	for _, product := range order.Products {
		if match(product) {
			return true
		}
	}
	return false
}
