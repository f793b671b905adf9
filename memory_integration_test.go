package activerecord_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/activerecord"
	"github.com/dmitrymomot/activerecord/pkg/adapter"
	"github.com/dmitrymomot/activerecord/pkg/adapter/memory"
	"github.com/dmitrymomot/activerecord/pkg/validator"
)

func TestLifecycle_MemoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memory.New()
	m := products(store,
		activerecord.WithValidation("price", validator.Numeric(), validator.Min(0)),
		activerecord.WithValidation("type", validator.OneOf([]any{"tshirt", "pants"}, validator.AllowNull())),
	)

	created, err := m.Create(ctx, map[string]any{"name": "T-Shirt", "price": 20, "type": "tshirt"})
	require.NoError(t, err)
	require.True(t, created.Valid)
	assert.EqualValues(t, 1, created.Record.ID())

	_, err = m.CreateMany(ctx, []map[string]any{
		{"name": "Pants", "price": 45, "type": "pants"},
		{"name": "Socks", "price": 5, "type": "tshirt"},
	})
	require.NoError(t, err)

	cheap, err := m.Where("price", "<", 30).Order("price desc").Load(ctx)
	require.NoError(t, err)
	require.Len(t, cheap, 2)
	assert.Equal(t, "T-Shirt", cheap[0].Get("name"))
	assert.Equal(t, "Socks", cheap[1].Get("name"))

	rec, err := m.Get(ctx, created.Record.ID())
	require.NoError(t, err)
	require.NoError(t, rec.Set("price", 25))
	res, err := rec.Save(ctx)
	require.NoError(t, err)
	require.True(t, res.Valid)

	reloaded, err := m.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 25, reloaded.Get("price"))

	bulk, err := m.Where("type", "tshirt").Update(map[string]any{"price": 1}).Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, bulk.Data, 2)

	require.NoError(t, reloaded.Delete(ctx))
	assert.True(t, reloaded.IsDeleted())

	_, err = m.Get(ctx, 1)
	assert.ErrorIs(t, err, activerecord.ErrRecordNotFound)

	left, err := m.All().Load(ctx)
	require.NoError(t, err)
	assert.Len(t, left, 2)

	invalid, err := m.Create(ctx, map[string]any{"name": "Hat", "price": -1, "type": "hat"})
	require.NoError(t, err)
	assert.False(t, invalid.Valid)
	assert.Equal(t, []string{"price", "type"}, invalid.Errors.Fields())
	assert.Len(t, store.Rows("products"), 2)
}

func TestScope_ProjectionWithMemoryStore(t *testing.T) {
	t.Parallel()
	store := memory.New()
	store.Seed("products", adapter.Row{"name": "Cap", "price": 3, "type": "hat"})

	rec, err := products(store).All().Select("id, name").Take(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Cap", rec.Get("name"))
	assert.Nil(t, rec.Get("price"))
}
