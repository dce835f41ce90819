package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/crm/domain"
	"github.com/fastygo/crm/repository/memory"
)

type mapCache struct {
	counts map[string]int
}

func newMapCache() *mapCache {
	return &mapCache{counts: make(map[string]int)}
}

func (c *mapCache) Get(ctx context.Context, entity string) (int, bool) {
	count, ok := c.counts[entity]
	return count, ok
}

func (c *mapCache) Set(ctx context.Context, entity string, count int) {
	c.counts[entity] = count
}

func (c *mapCache) Invalidate(ctx context.Context, entities ...string) {
	for _, entity := range entities {
		delete(c.counts, entity)
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := New(store.Customers(), nil, nil)

	created, message, err := uc.Create(ctx, CreateInput{
		Name:  "Alice Johnson",
		Email: "alice@example.com",
		Phone: "+11234567890",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, CreatedMessage, message)
}

func TestCreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := New(store.Customers(), nil, nil)

	_, _, err := uc.Create(ctx, CreateInput{Name: "Alice", Email: "alice@example.com", Phone: "1234567890"})
	require.NoError(t, err)

	_, _, err = uc.Create(ctx, CreateInput{Name: "Other Alice", Email: "alice@example.com", Phone: "1234567890"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	count, err := uc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := New(store.Customers(), nil, nil)

	tests := []struct {
		name  string
		input CreateInput
	}{
		{
			name:  "bad phone",
			input: CreateInput{Name: "Alice", Email: "alice@example.com", Phone: "12345"},
		},
		{
			name:  "empty name",
			input: CreateInput{Name: "", Email: "alice@example.com", Phone: "1234567890"},
		},
		{
			name:  "bad email",
			input: CreateInput{Name: "Alice", Email: "not-an-email", Phone: "1234567890"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := uc.Create(ctx, tt.input)
			assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

			count, err := uc.Count(ctx)
			require.NoError(t, err)
			assert.Zero(t, count)
		})
	}
}

func TestBulkCreatePartialFailure(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := New(store.Customers(), nil, nil)

	_, _, err := uc.Create(ctx, CreateInput{Name: "Existing", Email: "a@x.com", Phone: "1234567890"})
	require.NoError(t, err)

	created, errorList, err := uc.BulkCreate(ctx, []CreateInput{
		{Name: "First", Email: "first@x.com"},
		{Name: "Dup", Email: "a@x.com"},
		{Name: "Second", Email: "second@x.com"},
	})
	require.NoError(t, err)

	require.Len(t, created, 2)
	assert.Equal(t, "First", created[0].Name)
	assert.Equal(t, "Second", created[1].Name)

	require.Len(t, errorList, 1)
	assert.Equal(t, "Record 1: Email 'a@x.com' already exists.", errorList[0])
}

func TestBulkCreateDuplicateWithinBatch(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := New(store.Customers(), nil, nil)

	created, errorList, err := uc.BulkCreate(ctx, []CreateInput{
		{Name: "First", Email: "same@x.com"},
		{Name: "Second", Email: "same@x.com"},
	})
	require.NoError(t, err)

	require.Len(t, created, 1)
	assert.Equal(t, "First", created[0].Name)
	require.Len(t, errorList, 1)
	assert.Equal(t, "Record 1: Email 'same@x.com' already exists.", errorList[0])
}

func TestBulkCreateAllDuplicates(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := New(store.Customers(), nil, nil)

	_, _, err := uc.Create(ctx, CreateInput{Name: "Existing", Email: "a@x.com", Phone: "1234567890"})
	require.NoError(t, err)

	created, errorList, err := uc.BulkCreate(ctx, []CreateInput{
		{Name: "Dup", Email: "a@x.com"},
	})
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Len(t, errorList, 1)
}

func TestBulkCreateSkipsPhoneValidation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := New(store.Customers(), nil, nil)

	created, errorList, err := uc.BulkCreate(ctx, []CreateInput{
		{Name: "Loose", Email: "loose@x.com", Phone: "not-a-phone"},
	})
	require.NoError(t, err)
	assert.Empty(t, errorList)
	require.Len(t, created, 1)
	assert.Equal(t, "not-a-phone", created[0].Phone)
}

func TestCountUsesCache(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	cache := newMapCache()
	uc := New(store.Customers(), cache, nil)

	_, _, err := uc.Create(ctx, CreateInput{Name: "Alice", Email: "alice@example.com", Phone: "1234567890"})
	require.NoError(t, err)

	count, err := uc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// stale cached value wins until invalidated by a write
	cache.counts["customers"] = 99
	count, err = uc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 99, count)

	_, _, err = uc.Create(ctx, CreateInput{Name: "Bob", Email: "bob@example.com", Phone: "1234567890"})
	require.NoError(t, err)

	count, err = uc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
