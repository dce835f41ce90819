package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order references exactly one customer and one or more products.
// TotalAmount is fixed at creation time and never recomputed.
type Order struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	CustomerName  string          `json:"customer_name,omitempty"`
	CustomerEmail string          `json:"customer_email,omitempty"`
	Products      []OrderProduct  `json:"products"`
	OrderDate     time.Time       `json:"order_date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// OrderProduct is a product snapshot attached to an order.
type OrderProduct struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}
