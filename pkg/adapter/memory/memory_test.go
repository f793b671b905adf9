package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/activerecord/pkg/adapter"
	"github.com/dmitrymomot/activerecord/pkg/adapter/memory"
)

func seeded() *memory.Store {
	s := memory.New()
	s.Seed("products",
		adapter.Row{"name": "T-Shirt", "price": 20, "status": "open"},
		adapter.Row{"name": "Pants", "price": 45, "status": "open"},
		adapter.Row{"name": "Socks", "price": 5, "status": "closed"},
	)
	return s
}

func TestStore_Select(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := seeded()

	resp, err := s.From("products").
		Select("id, name").
		Eq("status", "open").
		Order("price", adapter.OrderOptions{Ascending: false}).
		Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, []adapter.Row{
		{"id": int64(2), "name": "Pants"},
		{"id": int64(1), "name": "T-Shirt"},
	}, resp.Data)

	resp, err = s.From("products").Select("*").Eq("id", 3).Single().Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Socks", resp.First()["name"])

	resp, err = s.From("missing").Select("*").Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, []adapter.Row{}, resp.Data)
}

func TestStore_Insert(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := memory.New()

	resp, err := s.From("products").Insert(adapter.Row{"name": "Hat"}, adapter.Row{"name": "Cap"}).Execute(ctx)
	require.NoError(t, err)
	rows := resp.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0]["id"])
	assert.Equal(t, int64(2), rows[1]["id"])

	_, err = s.From("products").Insert(adapter.Row{"id": 10, "name": "Scarf"}).Execute(ctx)
	require.NoError(t, err)

	resp, err = s.From("products").Insert(adapter.Row{"name": "Gloves"}).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.First()["id"])

	rows[0]["name"] = "mutated"
	assert.Equal(t, "Hat", s.Rows("products")[0]["name"])
}

func TestStore_Update(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := seeded()

	resp, err := s.From("products").
		Update(adapter.Row{"status": "closed"}).
		Eq("status", "open").
		Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, resp.Rows(), 2)

	for _, row := range s.Rows("products") {
		assert.Equal(t, "closed", row["status"])
	}

	resp, err = s.From("products").Update(adapter.Row{"price": 1}).Match(adapter.Row{"id": int64(99)}).Execute(ctx)
	require.NoError(t, err)
	assert.Empty(t, resp.Rows())
}

func TestStore_UpdateFailsAtomically(t *testing.T) {
	t.Parallel()
	s := seeded()

	_, err := s.From("products").Update(adapter.Row{"status": "x"}).Filter("name", "fts", "shirt").Execute(context.Background())
	assert.ErrorIs(t, err, adapter.ErrUnsupportedOperator)
	for _, row := range s.Rows("products") {
		assert.NotEqual(t, "x", row["status"])
	}
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := seeded()

	resp, err := s.From("products").Delete().Match(adapter.Row{"id": int64(1)}).Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, resp.Rows(), 1)
	assert.Len(t, s.Rows("products"), 2)

	_, err = s.From("products").Delete().Lt("price", 10).Execute(ctx)
	require.NoError(t, err)
	remaining := s.Rows("products")
	require.Len(t, remaining, 1)
	assert.Equal(t, "Pants", remaining[0]["name"])
}

func TestStore_CustomIDField(t *testing.T) {
	t.Parallel()
	s := memory.New(memory.WithIDField("pk"))
	rows := s.Seed("things", adapter.Row{"name": "a"})
	assert.Equal(t, int64(1), rows[0]["pk"])

	s.Truncate("things")
	assert.Nil(t, s.Rows("things"))
}

func TestStore_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := memory.New().From("products").Execute(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_ConcurrentInserts(t *testing.T) {
	t.Parallel()
	s := memory.New()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.From("events").Insert(adapter.Row{"kind": "click"}).Execute(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	rows := s.Rows("events")
	require.Len(t, rows, 50)
	seen := map[any]bool{}
	for _, row := range rows {
		seen[row["id"]] = true
	}
	assert.Len(t, seen, 50)
}
