package memory

import (
	"context"
	"strings"

	"github.com/fastygo/crm/domain"
	"github.com/fastygo/crm/repository"
)

type customerRepo struct {
	store *Store
}

func (r *customerRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	customer, ok := r.store.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return &customer, nil
}

func (r *customerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, customer := range r.store.customers {
		if customer.Email == email {
			copied := customer
			return &copied, nil
		}
	}
	return nil, domain.ErrCustomerNotFound
}

func (r *customerRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, customer := range r.store.customers {
		if customer.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *customerRepo) List(ctx context.Context, filter repository.CustomerFilter) ([]domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []domain.Customer
	for _, customer := range r.store.customers {
		if filter.NameContains != "" && !containsFold(customer.Name, filter.NameContains) {
			continue
		}
		if filter.EmailContains != "" && !containsFold(customer.Email, filter.EmailContains) {
			continue
		}
		if filter.PhonePrefix != "" && !strings.HasPrefix(customer.Phone, filter.PhonePrefix) {
			continue
		}
		if filter.CreatedFrom != nil && customer.CreatedAt.Before(*filter.CreatedFrom) {
			continue
		}
		if filter.CreatedTo != nil && customer.CreatedAt.After(*filter.CreatedTo) {
			continue
		}
		matched = append(matched, customer)
	}

	orderSlice(matched, filter.OrderBy, func(a, b domain.Customer, field string) int {
		switch field {
		case "name":
			return compareStrings(a.Name, b.Name)
		case "email":
			return compareStrings(a.Email, b.Email)
		case "created_at":
			return compareTimes(a.CreatedAt, b.CreatedAt)
		default:
			return 0
		}
	}, func(c domain.Customer) string { return c.ID })

	return paginate(matched, filter.Limit, filter.Offset), nil
}

func (r *customerRepo) Count(ctx context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.customers), nil
}

func (r *customerRepo) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer == nil {
		return nil, domain.ErrInvalidPayload
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if customer.ID == "" {
		customer.ID = newID()
	}
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = r.store.now()
	}
	r.store.customers[customer.ID] = *customer
	return customer, nil
}

func (r *customerRepo) BulkCreate(ctx context.Context, customers []domain.Customer) ([]domain.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range customers {
		if customers[i].ID == "" {
			customers[i].ID = newID()
		}
		if customers[i].CreatedAt.IsZero() {
			customers[i].CreatedAt = r.store.now()
		}
		r.store.customers[customers[i].ID] = customers[i]
	}
	return customers, nil
}
