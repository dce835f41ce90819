package repository

import (
	"context"
	"time"

	"github.com/fastygo/crm/domain"
)

// CustomerFilter narrows a customer list query. All set fields are combined
// with logical AND.
type CustomerFilter struct {
	NameContains  string
	EmailContains string
	PhonePrefix   string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	OrderBy       []SortField
	Limit         int
	Offset        int
}

type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter CustomerFilter) ([]domain.Customer, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	BulkCreate(ctx context.Context, customers []domain.Customer) ([]domain.Customer, error)
}
