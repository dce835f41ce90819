package transport

import "github.com/shopspring/decimal"

// CustomerRequest is the mutation input for creating one customer.
type CustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// BulkCustomersRequest wraps the record list for bulk creation.
type BulkCustomersRequest struct {
	Customers []CustomerRequest `json:"customers"`
}

// ProductRequest is the mutation input for creating one product.
type ProductRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// OrderRequest is the mutation input for creating one order. OrderDate is
// RFC3339 and optional.
type OrderRequest struct {
	CustomerID string   `json:"customer_id"`
	ProductIDs []string `json:"product_ids"`
	OrderDate  string   `json:"order_date,omitempty"`
}
