package postgres

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/crm/domain"
	"github.com/fastygo/crm/repository"
)

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a Postgres-backed implementation of ProductRepository.
func NewProductRepository(pool *pgxpool.Pool) repository.ProductRepository {
	return &productRepository{pool: pool}
}

var productSortColumns = map[string]string{
	"name":  "name",
	"price": "price",
	"stock": "stock",
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const query = `
	SELECT id, name, price, stock
	FROM products
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanProduct(row)
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	if len(ids) == 0 {
		return map[string]domain.Product{}, nil
	}

	const query = `
	SELECT id, name, price, stock
	FROM products
	WHERE id = ANY($1)
	`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resolved := make(map[string]domain.Product)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		resolved[product.ID] = *product
	}
	return resolved, rows.Err()
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	b := &condBuilder{}
	if filter.NameContains != "" {
		b.add("name ILIKE '%' || $? || '%'", filter.NameContains)
	}
	if filter.PriceMin != nil {
		b.add("price >= $?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		b.add("price <= $?", *filter.PriceMax)
	}
	if filter.StockEq != nil {
		b.add("stock = $?", *filter.StockEq)
	}
	if filter.StockMin != nil {
		b.add("stock >= $?", *filter.StockMin)
	}
	if filter.StockMax != nil {
		b.add("stock <= $?", *filter.StockMax)
	}
	if filter.LowStock {
		b.add("stock < $?", domain.LowStockThreshold)
	}

	query := `SELECT id, name, price, stock FROM products` +
		b.where() +
		orderBy(filter.OrderBy, productSortColumns, "id") +
		" LIMIT " + b.next(clampLimit(filter.Limit)) +
		" OFFSET " + b.next(filter.Offset)

	rows, err := r.pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, domain.ErrInvalidPayload
	}
	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO products (id, name, price, stock)
	VALUES ($1, $2, $3, $4)
	`
	if _, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Price,
		product.Stock,
	); err != nil {
		return nil, err
	}

	return product, nil
}

// ReplenishLowStock bumps every product under threshold in a single
// transaction so readers never observe a half-applied sweep.
func (r *productRepository) ReplenishLowStock(ctx context.Context, threshold, amount int) ([]domain.Product, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const query = `
	UPDATE products
	SET stock = stock + $2
	WHERE stock < $1
	RETURNING id, name, price, stock
	`
	rows, err := tx.Query(ctx, query, threshold, amount)
	if err != nil {
		return nil, err
	}

	var updated []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		updated = append(updated, *product)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	// UPDATE ... RETURNING has no stable order
	sort.Slice(updated, func(i, j int) bool { return updated[i].Name < updated[j].Name })
	return updated, nil
}

func scanProduct(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Product, error) {
	var product domain.Product
	if err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Stock,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}
