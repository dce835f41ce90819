package domain

import "github.com/shopspring/decimal"

// LowStockThreshold is the stock level below which a product qualifies for
// the replenishment sweep.
const LowStockThreshold = 10

// ReplenishAmount is added to every low-stock product during a sweep.
const ReplenishAmount = 10

// Product represents a sellable item. Stock is the only mutable field.
type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

func (p *Product) IsLowStock() bool {
	return p != nil && p.Stock < LowStockThreshold
}
