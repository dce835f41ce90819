package usecase

import "context"

// Cache entity keys shared by count caching and invalidation.
const (
	CacheEntityCustomers = "customers"
	CacheEntityOrders    = "orders"
)

// CountCache abstracts the count cache so use cases stay storage-agnostic.
// A nil implementation is a valid no-op.
type CountCache interface {
	Get(ctx context.Context, entity string) (int, bool)
	Set(ctx context.Context, entity string, count int)
	Invalidate(ctx context.Context, entities ...string)
}
