package rowset_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/activerecord/internal/rowset"
	"github.com/dmitrymomot/activerecord/pkg/adapter"
)

func products() []adapter.Row {
	return []adapter.Row{
		{"id": int64(1), "name": "T-Shirt", "price": 20, "status": "open"},
		{"id": int64(2), "name": "Pants", "price": 45.5, "status": "closed"},
		{"id": int64(3), "name": "Socks", "price": json.Number("5"), "status": "open"},
		{"id": int64(4), "name": "Hat", "price": nil, "status": "open"},
	}
}

func ids(t *testing.T, resp adapter.Response) []any {
	t.Helper()
	rows, ok := resp.Data.([]adapter.Row)
	require.True(t, ok, "expected []Row, got %T", resp.Data)
	out := make([]any, len(rows))
	for i, row := range rows {
		out[i] = row["id"]
	}
	return out
}

func TestMatchOperators(t *testing.T) {
	t.Parallel()

	row := adapter.Row{"name": "T-Shirt", "price": 20, "active": true, "deleted_at": nil}

	cases := []struct {
		name string
		cond adapter.Condition
		want bool
	}{
		{"eq string", adapter.Condition{Field: "name", Operator: adapter.OpEq, Value: "T-Shirt"}, true},
		{"eq across numeric types", adapter.Condition{Field: "price", Operator: adapter.OpEq, Value: 20.0}, true},
		{"neq", adapter.Condition{Field: "name", Operator: adapter.OpNeq, Value: "Pants"}, true},
		{"gt", adapter.Condition{Field: "price", Operator: adapter.OpGt, Value: 19}, true},
		{"gte", adapter.Condition{Field: "price", Operator: adapter.OpGte, Value: 20}, true},
		{"lt", adapter.Condition{Field: "price", Operator: adapter.OpLt, Value: 20}, false},
		{"lte", adapter.Condition{Field: "price", Operator: adapter.OpLte, Value: int64(20)}, true},
		{"gt mismatched kinds", adapter.Condition{Field: "name", Operator: adapter.OpGt, Value: 1}, false},
		{"eq nil never matches", adapter.Condition{Field: "deleted_at", Operator: adapter.OpEq, Value: nil}, false},
		{"neq nil never matches", adapter.Condition{Field: "deleted_at", Operator: adapter.OpNeq, Value: 1}, false},
		{"is null", adapter.Condition{Field: "deleted_at", Operator: adapter.OpIs, Value: nil}, true},
		{"is null string", adapter.Condition{Field: "deleted_at", Operator: adapter.OpIs, Value: "null"}, true},
		{"is true", adapter.Condition{Field: "active", Operator: adapter.OpIs, Value: true}, true},
		{"in", adapter.Condition{Field: "price", Operator: adapter.OpIn, Value: []any{10, 20}}, true},
		{"in typed slice", adapter.Condition{Field: "name", Operator: adapter.OpIn, Value: []string{"Hat"}}, false},
		{"like", adapter.Condition{Field: "name", Operator: adapter.OpLike, Value: "T-%"}, true},
		{"like is case sensitive", adapter.Condition{Field: "name", Operator: adapter.OpLike, Value: "t-%"}, false},
		{"ilike", adapter.Condition{Field: "name", Operator: adapter.OpILike, Value: "%SHIRT"}, true},
		{"like underscore", adapter.Condition{Field: "name", Operator: adapter.OpLike, Value: "T_Shirt"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := rowset.Match(row, []adapter.Condition{tc.cond})
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestMatchErrors(t *testing.T) {
	t.Parallel()

	row := adapter.Row{"name": "x"}

	_, err := rowset.Match(row, []adapter.Condition{{Field: "name", Operator: "fts", Value: "x"}})
	assert.ErrorIs(t, err, adapter.ErrUnsupportedOperator)

	_, err = rowset.Match(row, []adapter.Condition{{Field: "name", Operator: adapter.OpIn, Value: "x"}})
	assert.ErrorIs(t, err, adapter.ErrUnsupportedOperator)

	_, err = rowset.Match(row, []adapter.Condition{{Field: "name", Operator: adapter.OpLike, Value: 1}})
	assert.ErrorIs(t, err, adapter.ErrUnsupportedOperator)
}

func TestCompare(t *testing.T) {
	t.Parallel()

	now := time.Now()
	c, ok := rowset.Compare(now, now.Add(time.Second))
	assert.True(t, ok)
	assert.Equal(t, -1, c)

	c, ok = rowset.Compare(true, false)
	assert.True(t, ok)
	assert.Equal(t, 1, c)

	_, ok = rowset.Compare("a", 1)
	assert.False(t, ok)

	assert.True(t, rowset.Equal([]int{1}, []int{1}))
	assert.True(t, rowset.Equal(json.Number("3"), uint8(3)))
}

func TestQuery(t *testing.T) {
	t.Parallel()

	t.Run("filters and keeps order", func(t *testing.T) {
		resp, err := rowset.Query(products(), adapter.Plan{
			Conditions: []adapter.Condition{{Field: "status", Operator: adapter.OpEq, Value: "open"}},
		})
		require.NoError(t, err)
		assert.Equal(t, []any{int64(1), int64(3), int64(4)}, ids(t, resp))
	})

	t.Run("sorts with nil last and limits", func(t *testing.T) {
		resp, err := rowset.Query(products(), adapter.Plan{
			Orders: []adapter.Order{{Field: "price", Ascending: true}},
			Limit:  3,
		})
		require.NoError(t, err)
		assert.Equal(t, []any{int64(3), int64(1), int64(2)}, ids(t, resp))
	})

	t.Run("multi key sort", func(t *testing.T) {
		resp, err := rowset.Query(products(), adapter.Plan{
			Orders: []adapter.Order{
				{Field: "status", Ascending: false},
				{Field: "id", Ascending: false},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []any{int64(4), int64(3), int64(1), int64(2)}, ids(t, resp))
	})

	t.Run("projects columns", func(t *testing.T) {
		resp, err := rowset.Query(products(), adapter.Plan{Columns: "id, name", Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, []adapter.Row{{"id": int64(1), "name": "T-Shirt"}}, resp.Data)
	})

	t.Run("single unwraps", func(t *testing.T) {
		resp, err := rowset.Query(products(), adapter.Plan{
			Conditions: []adapter.Condition{{Field: "id", Operator: adapter.OpEq, Value: 2}},
			Single:     true,
		})
		require.NoError(t, err)
		row, ok := resp.Data.(adapter.Row)
		require.True(t, ok)
		assert.Equal(t, "Pants", row["name"])
	})

	t.Run("single without match is nil", func(t *testing.T) {
		resp, err := rowset.Query(products(), adapter.Plan{
			Conditions: []adapter.Condition{{Field: "id", Operator: adapter.OpEq, Value: 99}},
			Single:     true,
		})
		require.NoError(t, err)
		assert.Nil(t, resp.Data)
	})

	t.Run("no match is empty slice", func(t *testing.T) {
		resp, err := rowset.Query(nil, adapter.Plan{})
		require.NoError(t, err)
		assert.Equal(t, []adapter.Row{}, resp.Data)
	})

	t.Run("does not alias input", func(t *testing.T) {
		rows := products()
		resp, err := rowset.Query(rows, adapter.Plan{})
		require.NoError(t, err)
		resp.Rows()[0]["name"] = "changed"
		assert.Equal(t, "T-Shirt", rows[0]["name"])
	})
}

func TestLikeRegexp(t *testing.T) {
	t.Parallel()

	re, err := rowset.LikeRegexp("a.b%", false)
	require.NoError(t, err)
	assert.True(t, re.MatchString("a.bcd"))
	assert.False(t, re.MatchString("axbcd"))
}

func TestLikePattern(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `^a\.b.*x.$`, rowset.LikePattern("a.b%x_"))
	assert.Equal(t, `^$`, rowset.LikePattern(""))
}
