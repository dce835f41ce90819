package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fastygo/crm/domain"
)

// OrderFilter narrows an order list query. Product filters match any
// associated product without duplicating order rows.
type OrderFilter struct {
	CustomerNameContains string
	ProductNameContains  string
	ProductID            string
	TotalMin             *decimal.Decimal
	TotalMax             *decimal.Decimal
	DateFrom             *time.Time
	DateTo               *time.Time
	OrderBy              []SortField
	Limit                int
	Offset               int
}

type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
	Count(ctx context.Context) (int, error)
	// Create persists the order and its product associations in one atomic
	// transaction.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	SumTotalAmount(ctx context.Context) (decimal.Decimal, error)
}
