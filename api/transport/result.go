package transport

import "github.com/fastygo/crm/domain"

// CustomerResult pairs a created customer with its confirmation message.
type CustomerResult struct {
	Customer *domain.Customer `json:"customer"`
	Message  string           `json:"message"`
}

// BulkCustomersResult reports partial-failure bulk creation: created records
// plus one error string per skipped record.
type BulkCustomersResult struct {
	Customers []domain.Customer `json:"customers"`
	Errors    []string          `json:"errors"`
}

// ReplenishResult reports the low-stock sweep outcome.
type ReplenishResult struct {
	UpdatedProducts []domain.Product `json:"updated_products"`
	Message         string           `json:"message"`
}

// CountResult wraps a count query response.
type CountResult struct {
	Count int `json:"count"`
}
