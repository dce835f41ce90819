package product

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fastygo/crm/domain"
	"github.com/fastygo/crm/repository"
)

// CreateInput carries the fields accepted by product creation. Stock defaults
// to zero.
type CreateInput struct {
	Name  string
	Price decimal.Decimal
	Stock int
}

type UseCase struct {
	products repository.ProductRepository
	logger   *zap.Logger
}

func New(products repository.ProductRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		products: products,
		logger:   logger,
	}
}

// Create validates and persists a product; any validation failure aborts
// before the write.
func (uc *UseCase) Create(ctx context.Context, input CreateInput) (*domain.Product, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidatePrice(input.Price); err != nil {
		return nil, err
	}
	if err := domain.ValidateStock(input.Stock); err != nil {
		return nil, err
	}

	created, err := uc.products.Create(ctx, &domain.Product{
		Name:  input.Name,
		Price: input.Price,
		Stock: input.Stock,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("product created", zap.String("product_id", created.ID))
	return created, nil
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Product, error) {
	return uc.products.GetByID(ctx, id)
}

func (uc *UseCase) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	return uc.products.List(ctx, filter)
}

// ReplenishLowStock bumps every product below the threshold by the replenish
// amount inside one transaction. Zero qualifying products is still a success.
func (uc *UseCase) ReplenishLowStock(ctx context.Context) ([]domain.Product, string, error) {
	updated, err := uc.products.ReplenishLowStock(ctx, domain.LowStockThreshold, domain.ReplenishAmount)
	if err != nil {
		return nil, "", err
	}

	message := fmt.Sprintf("Successfully updated stock for %d products.", len(updated))
	uc.logger.Info("low stock replenished", zap.Int("updated", len(updated)))
	return updated, message, nil
}
