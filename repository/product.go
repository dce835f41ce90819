package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fastygo/crm/domain"
)

// ProductFilter narrows a product list query.
type ProductFilter struct {
	NameContains string
	PriceMin     *decimal.Decimal
	PriceMax     *decimal.Decimal
	StockEq      *int
	StockMin     *int
	StockMax     *int
	LowStock     bool
	OrderBy      []SortField
	Limit        int
	Offset       int
}

type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// GetByIDs resolves the deduplicated id set; missing ids are simply absent
	// from the result.
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	// ReplenishLowStock increments stock on every product below the threshold
	// in one atomic transaction and returns the updated rows.
	ReplenishLowStock(ctx context.Context, threshold, amount int) ([]domain.Product, error)
}
