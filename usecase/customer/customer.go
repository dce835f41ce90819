package customer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/crm/domain"
	"github.com/fastygo/crm/repository"
	"github.com/fastygo/crm/usecase"
)

// CreatedMessage is returned alongside every successfully created customer.
const CreatedMessage = "Customer created successfully."

// CreateInput carries the fields accepted by customer creation.
type CreateInput struct {
	Name  string
	Email string
	Phone string
}

type UseCase struct {
	customers repository.CustomerRepository
	cache     usecase.CountCache
	logger    *zap.Logger
}

func New(customers repository.CustomerRepository, cache usecase.CountCache, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		customers: customers,
		cache:     cache,
		logger:    logger,
	}
}

// Create validates and persists a single customer. Any validation failure
// aborts before the write.
func (uc *UseCase) Create(ctx context.Context, input CreateInput) (*domain.Customer, string, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, "", err
	}
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, "", err
	}
	if err := domain.ValidatePhone(input.Phone); err != nil {
		return nil, "", err
	}

	exists, err := uc.customers.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", domain.ErrDuplicateEmail
	}

	created, err := uc.customers.Create(ctx, &domain.Customer{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	})
	if err != nil {
		return nil, "", err
	}

	uc.invalidateCount(ctx)
	uc.logger.Info("customer created", zap.String("customer_id", created.ID))
	return created, CreatedMessage, nil
}

// BulkCreate processes records in input order with per-record partial-failure
// reporting: a record whose email collides with an existing customer or with
// an earlier record in the batch is skipped with an error string, and the
// remaining records are persisted in one bulk insert. Phone format is not
// checked on this path.
func (uc *UseCase) BulkCreate(ctx context.Context, inputs []CreateInput) ([]domain.Customer, []string, error) {
	var queued []domain.Customer
	var errorList []string
	seenInBatch := make(map[string]struct{}, len(inputs))

	for i, input := range inputs {
		_, inBatch := seenInBatch[input.Email]
		exists := inBatch
		if !exists {
			var err error
			exists, err = uc.customers.EmailExists(ctx, input.Email)
			if err != nil {
				return nil, nil, err
			}
		}
		if exists {
			errorList = append(errorList, fmt.Sprintf("Record %d: Email '%s' already exists.", i, input.Email))
			continue
		}

		seenInBatch[input.Email] = struct{}{}
		queued = append(queued, domain.Customer{
			Name:  input.Name,
			Email: input.Email,
			Phone: input.Phone,
		})
	}

	if len(queued) == 0 {
		return nil, errorList, nil
	}

	created, err := uc.customers.BulkCreate(ctx, queued)
	if err != nil {
		return nil, nil, err
	}

	uc.invalidateCount(ctx)
	uc.logger.Info("customers bulk created",
		zap.Int("created", len(created)),
		zap.Int("skipped", len(errorList)))
	return created, errorList, nil
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return uc.customers.GetByID(ctx, id)
}

func (uc *UseCase) List(ctx context.Context, filter repository.CustomerFilter) ([]domain.Customer, error) {
	return uc.customers.List(ctx, filter)
}

func (uc *UseCase) Count(ctx context.Context) (int, error) {
	if uc.cache != nil {
		if count, ok := uc.cache.Get(ctx, usecase.CacheEntityCustomers); ok {
			return count, nil
		}
	}
	count, err := uc.customers.Count(ctx)
	if err != nil {
		return 0, err
	}
	if uc.cache != nil {
		uc.cache.Set(ctx, usecase.CacheEntityCustomers, count)
	}
	return count, nil
}

func (uc *UseCase) invalidateCount(ctx context.Context) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, usecase.CacheEntityCustomers)
	}
}
