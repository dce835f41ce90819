package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fastygo/crm/domain"
	"github.com/fastygo/crm/repository"
)

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a Postgres-backed implementation of OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) repository.OrderRepository {
	return &orderRepository{pool: pool}
}

var orderSortColumns = map[string]string{
	"total_amount":  "o.total_amount",
	"order_date":    "o.order_date",
	"customer_name": "c.name",
}

const orderSelect = `
	SELECT o.id, o.customer_id, c.name, c.email, o.order_date, o.total_amount
	FROM orders o
	JOIN customers c ON c.id = o.customer_id
	`

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		return nil, err
	}
	if err := r.attachProducts(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	b := &condBuilder{}
	if filter.CustomerNameContains != "" {
		b.add("c.name ILIKE '%' || $? || '%'", filter.CustomerNameContains)
	}
	if filter.ProductNameContains != "" {
		// EXISTS keeps one row per order even when several products match
		b.add(`EXISTS (
			SELECT 1 FROM order_products op
			JOIN products p ON p.id = op.product_id
			WHERE op.order_id = o.id AND p.name ILIKE '%' || $? || '%')`, filter.ProductNameContains)
	}
	if filter.ProductID != "" {
		b.add(`EXISTS (
			SELECT 1 FROM order_products op
			WHERE op.order_id = o.id AND op.product_id = $?)`, filter.ProductID)
	}
	if filter.TotalMin != nil {
		b.add("o.total_amount >= $?", *filter.TotalMin)
	}
	if filter.TotalMax != nil {
		b.add("o.total_amount <= $?", *filter.TotalMax)
	}
	if filter.DateFrom != nil {
		b.add("o.order_date >= $?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		b.add("o.order_date <= $?", *filter.DateTo)
	}

	query := orderSelect +
		b.where() +
		orderBy(filter.OrderBy, orderSortColumns, "o.id") +
		" LIMIT " + b.next(clampLimit(filter.Limit)) +
		" OFFSET " + b.next(filter.Offset)

	rows, err := r.pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*domain.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := r.attachProducts(ctx, refs); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}

// Create persists the order row and its product associations atomically.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil || order.CustomerID == "" || len(order.Products) == 0 {
		return nil, domain.ErrInvalidPayload
	}
	if order.ID == "" {
		order.ID = uuid.NewString()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const insertOrder = `
	INSERT INTO orders (id, customer_id, order_date, total_amount)
	VALUES ($1, $2, COALESCE($3, NOW()), $4)
	RETURNING order_date
	`
	if err := tx.QueryRow(ctx, insertOrder,
		order.ID,
		order.CustomerID,
		nullTime(order.OrderDate),
		order.TotalAmount,
	).Scan(&order.OrderDate); err != nil {
		return nil, err
	}

	const insertAssoc = `INSERT INTO order_products (order_id, product_id) VALUES ($1, $2)`
	batch := &pgx.Batch{}
	for _, product := range order.Products {
		batch.Queue(insertAssoc, order.ID, product.ID)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) SumTotalAmount(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(total_amount), 0) FROM orders`).Scan(&sum)
	return sum, err
}

func (r *orderRepository) attachProducts(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	byID := make(map[string]*domain.Order, len(orders))
	for i, order := range orders {
		ids[i] = order.ID
		byID[order.ID] = order
	}

	const query = `
	SELECT op.order_id, p.id, p.name, p.price
	FROM order_products op
	JOIN products p ON p.id = op.product_id
	WHERE op.order_id = ANY($1)
	ORDER BY p.name, p.id
	`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var product domain.OrderProduct
		if err := rows.Scan(&orderID, &product.ID, &product.Name, &product.Price); err != nil {
			return err
		}
		if order, ok := byID[orderID]; ok {
			order.Products = append(order.Products, product)
		}
	}
	return rows.Err()
}

func scanOrder(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Order, error) {
	var order domain.Order
	if err := row.Scan(
		&order.ID,
		&order.CustomerID,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.OrderDate,
		&order.TotalAmount,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}
