package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/crm/domain"
	"github.com/fastygo/crm/repository"
)

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a Postgres-backed implementation of CustomerRepository.
func NewCustomerRepository(pool *pgxpool.Pool) repository.CustomerRepository {
	return &customerRepository{pool: pool}
}

var customerSortColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"created_at": "created_at",
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	const query = `
	SELECT id, name, email, phone, created_at
	FROM customers
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanCustomer(row)
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	const query = `
	SELECT id, name, email, phone, created_at
	FROM customers
	WHERE email = $1
	`
	row := r.pool.QueryRow(ctx, query, email)
	return scanCustomer(row)
}

func (r *customerRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *customerRepository) List(ctx context.Context, filter repository.CustomerFilter) ([]domain.Customer, error) {
	b := &condBuilder{}
	if filter.NameContains != "" {
		b.add("name ILIKE '%' || $? || '%'", filter.NameContains)
	}
	if filter.EmailContains != "" {
		b.add("email ILIKE '%' || $? || '%'", filter.EmailContains)
	}
	if filter.PhonePrefix != "" {
		b.add("phone LIKE $? || '%'", filter.PhonePrefix)
	}
	if filter.CreatedFrom != nil {
		b.add("created_at >= $?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		b.add("created_at <= $?", *filter.CreatedTo)
	}

	query := `SELECT id, name, email, phone, created_at FROM customers` +
		b.where() +
		orderBy(filter.OrderBy, customerSortColumns, "id") +
		" LIMIT " + b.next(clampLimit(filter.Limit)) +
		" OFFSET " + b.next(filter.Offset)

	rows, err := r.pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *customer)
	}
	return customers, rows.Err()
}

func (r *customerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count)
	return count, err
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer == nil {
		return nil, domain.ErrInvalidPayload
	}
	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO customers (id, name, email, phone)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at
	`

	if err := r.pool.QueryRow(ctx, query,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.Phone,
	).Scan(&customer.CreatedAt); err != nil {
		return nil, err
	}

	return customer, nil
}

// BulkCreate inserts all customers inside one transaction; either the whole
// batch is persisted or none of it is.
func (r *customerRepository) BulkCreate(ctx context.Context, customers []domain.Customer) ([]domain.Customer, error) {
	if len(customers) == 0 {
		return nil, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const query = `
	INSERT INTO customers (id, name, email, phone)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at
	`

	batch := &pgx.Batch{}
	for i := range customers {
		if customers[i].ID == "" {
			customers[i].ID = uuid.NewString()
		}
		batch.Queue(query, customers[i].ID, customers[i].Name, customers[i].Email, customers[i].Phone)
	}

	results := tx.SendBatch(ctx, batch)
	for i := range customers {
		if err := results.QueryRow().Scan(&customers[i].CreatedAt); err != nil {
			results.Close()
			return nil, err
		}
	}
	if err := results.Close(); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return customers, nil
}

func scanCustomer(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Customer, error) {
	var customer domain.Customer
	if err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Phone,
		&customer.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}
