// Package memory provides in-memory repository implementations mirroring the
// Postgres filter and ordering semantics. It backs unit tests and local runs
// without a database.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fastygo/crm/domain"
	"github.com/fastygo/crm/repository"
)

// Store holds all entities behind one lock.
type Store struct {
	mu        sync.RWMutex
	customers map[string]domain.Customer
	products  map[string]domain.Product
	orders    map[string]domain.Order
	now       func() time.Time
}

func NewStore() *Store {
	return &Store{
		customers: make(map[string]domain.Customer),
		products:  make(map[string]domain.Product),
		orders:    make(map[string]domain.Order),
		now:       time.Now,
	}
}

// SetClock overrides the timestamp source, for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store) Customers() repository.CustomerRepository { return &customerRepo{s} }
func (s *Store) Products() repository.ProductRepository   { return &productRepo{s} }
func (s *Store) Orders() repository.OrderRepository       { return &orderRepo{s} }

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func paginate[T any](items []T, limit, offset int) []T {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

// orderSlice applies the sort spec with an id tiebreak. compare returns the
// ordering of two items on one field, ignoring direction.
func orderSlice[T any](items []T, fields []repository.SortField, compare func(a, b T, field string) int, id func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		for _, f := range fields {
			c := compare(items[i], items[j], f.Field)
			if c == 0 {
				continue
			}
			if f.Desc {
				return c > 0
			}
			return c < 0
		}
		return id(items[i]) < id(items[j])
	})
}

func compareStrings(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

func newID() string {
	return uuid.NewString()
}
