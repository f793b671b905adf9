package activerecord_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/activerecord"
	"github.com/dmitrymomot/activerecord/pkg/adapter/adaptertest"
)

func TestRegistry(t *testing.T) {
	t.Parallel()
	client := adaptertest.New()
	p := products(client)
	o := activerecord.NewModel("orders", activerecord.Fields("id", activerecord.Serial), activerecord.WithName("order"))

	reg, err := activerecord.NewRegistry(p, o)
	require.NoError(t, err)

	got, err := reg.Lookup("order")
	require.NoError(t, err)
	assert.Same(t, o, got)
	assert.Equal(t, "orders", got.Table())

	_, err = reg.Lookup("missing")
	assert.ErrorIs(t, err, activerecord.ErrModelNotFound)
	assert.Panics(t, func() { reg.MustLookup("missing") })

	assert.ErrorIs(t, reg.Register(products(client)), activerecord.ErrModelExists)

	models := reg.Models()
	require.Len(t, models, 2)
	assert.Equal(t, "order", models[0].Name())
	assert.Equal(t, "products", models[1].Name())

	_, err = activerecord.NewRegistry(p, p)
	assert.ErrorIs(t, err, activerecord.ErrModelExists)
}

func TestFields(t *testing.T) {
	t.Parallel()
	s := activerecord.Fields("id", activerecord.Serial, "name", "string")
	assert.Equal(t, []string{"id", "name"}, s.Names())
	assert.Equal(t, "id, name", s.Columns())
	f, ok := s.Lookup("name")
	require.True(t, ok)
	assert.Equal(t, activerecord.String, f.Type)

	assert.Panics(t, func() { activerecord.Fields("id") })
	assert.Panics(t, func() { activerecord.Fields(1, activerecord.Serial) })
	assert.Panics(t, func() { activerecord.Fields("id", activerecord.Serial, "id", activerecord.Serial) })
}
