package memory

import (
	"context"
	"sort"

	"github.com/fastygo/crm/domain"
	"github.com/fastygo/crm/repository"
)

type productRepo struct {
	store *Store
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	product, ok := r.store.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &product, nil
}

func (r *productRepo) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	resolved := make(map[string]domain.Product)
	for _, id := range ids {
		if product, ok := r.store.products[id]; ok {
			resolved[id] = product
		}
	}
	return resolved, nil
}

func (r *productRepo) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []domain.Product
	for _, product := range r.store.products {
		if filter.NameContains != "" && !containsFold(product.Name, filter.NameContains) {
			continue
		}
		if filter.PriceMin != nil && product.Price.LessThan(*filter.PriceMin) {
			continue
		}
		if filter.PriceMax != nil && product.Price.GreaterThan(*filter.PriceMax) {
			continue
		}
		if filter.StockEq != nil && product.Stock != *filter.StockEq {
			continue
		}
		if filter.StockMin != nil && product.Stock < *filter.StockMin {
			continue
		}
		if filter.StockMax != nil && product.Stock > *filter.StockMax {
			continue
		}
		if filter.LowStock && product.Stock >= domain.LowStockThreshold {
			continue
		}
		matched = append(matched, product)
	}

	orderSlice(matched, filter.OrderBy, func(a, b domain.Product, field string) int {
		switch field {
		case "name":
			return compareStrings(a.Name, b.Name)
		case "price":
			return a.Price.Cmp(b.Price)
		case "stock":
			return a.Stock - b.Stock
		default:
			return 0
		}
	}, func(p domain.Product) string { return p.ID })

	return paginate(matched, filter.Limit, filter.Offset), nil
}

func (r *productRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, domain.ErrInvalidPayload
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if product.ID == "" {
		product.ID = newID()
	}
	r.store.products[product.ID] = *product
	return product, nil
}

func (r *productRepo) ReplenishLowStock(ctx context.Context, threshold, amount int) ([]domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var updated []domain.Product
	for id, product := range r.store.products {
		if product.Stock >= threshold {
			continue
		}
		product.Stock += amount
		r.store.products[id] = product
		updated = append(updated, product)
	}

	sort.Slice(updated, func(i, j int) bool { return updated[i].Name < updated[j].Name })
	return updated, nil
}
