package repository

import (
	"strings"

	"github.com/fastygo/crm/domain"
)

// SortField is one element of an ordering specification.
type SortField struct {
	Field string
	Desc  bool
}

// Sortable field names per entity.
var (
	CustomerSortFields = []string{"name", "email", "created_at"}
	ProductSortFields  = []string{"name", "price", "stock"}
	OrderSortFields    = []string{"total_amount", "order_date", "customer_name"}
)

// ParseOrderBy turns a comma-separated ordering spec ("name,-price") into
// sort fields, rejecting anything outside the allowed set. An empty spec
// yields no fields; callers append an id tiebreak for determinism.
func ParseOrderBy(spec string, allowed []string) ([]SortField, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}

	var fields []SortField
	for _, raw := range strings.Split(spec, ",") {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		desc := strings.HasPrefix(name, "-")
		if desc {
			name = name[1:]
		}
		if !contains(allowed, name) {
			return nil, domain.WrapError(domain.ErrCodeInvalid, "cannot sort by field '"+name+"'", nil)
		}
		fields = append(fields, SortField{Field: name, Desc: desc})
	}
	return fields, nil
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
