package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/activerecord/pkg/adapter"
	"github.com/dmitrymomot/activerecord/pkg/adapter/postgres"
)

func TestCompile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		plan adapter.Plan
		sql  string
		args []any
	}{
		{
			name: "select all",
			plan: adapter.Plan{Table: "products", Operation: adapter.OpSelect, Columns: "*"},
			sql:  `SELECT * FROM "products"`,
		},
		{
			name: "select with filters order and limit",
			plan: adapter.Plan{
				Table:     "products",
				Operation: adapter.OpSelect,
				Columns:   "id, name",
				Conditions: []adapter.Condition{
					{Field: "price", Operator: adapter.OpGte, Value: 10},
					{Field: "name", Operator: adapter.OpILike, Value: "%shirt%"},
				},
				Orders: []adapter.Order{{Field: "price", Ascending: false}, {Field: "id", Ascending: true}},
				Limit:  5,
			},
			sql:  `SELECT "id", "name" FROM "products" WHERE "price" >= $1 AND "name" ILIKE $2 ORDER BY "price" DESC, "id" ASC LIMIT 5`,
			args: []any{10, "%shirt%"},
		},
		{
			name: "single forces limit one",
			plan: adapter.Plan{
				Table: "shop.products", Operation: adapter.OpSelect, Columns: "*", Limit: 10, Single: true,
				Conditions: []adapter.Condition{{Field: "id", Operator: adapter.OpEq, Value: 1}},
			},
			sql:  `SELECT * FROM "shop"."products" WHERE "id" = $1 LIMIT 1`,
			args: []any{1},
		},
		{
			name: "in and is",
			plan: adapter.Plan{
				Table: "products", Operation: adapter.OpSelect, Columns: "*",
				Conditions: []adapter.Condition{
					{Field: "id", Operator: adapter.OpIn, Value: []int{1, 2}},
					{Field: "deleted_at", Operator: adapter.OpIs, Value: nil},
					{Field: "active", Operator: adapter.OpIs, Value: true},
					{Field: "note", Operator: adapter.OpIs, Value: "null"},
					{Field: "status", Operator: adapter.OpNeq, Value: "closed"},
				},
			},
			sql:  `SELECT * FROM "products" WHERE "id" = ANY($1) AND "deleted_at" IS NULL AND "active" IS TRUE AND "note" IS NULL AND "status" <> $2`,
			args: []any{[]int{1, 2}, "closed"},
		},
		{
			name: "insert fills missing columns with default",
			plan: adapter.Plan{
				Table: "products", Operation: adapter.OpInsert,
				Rows: []adapter.Row{{"name": "A", "price": 1}, {"name": "B"}},
			},
			sql:  `INSERT INTO "products" ("name", "price") VALUES ($1, $2), ($3, DEFAULT) RETURNING *`,
			args: []any{"A", 1, "B"},
		},
		{
			name: "insert empty row",
			plan: adapter.Plan{Table: "products", Operation: adapter.OpInsert, Rows: []adapter.Row{{}}},
			sql:  `INSERT INTO "products" DEFAULT VALUES RETURNING *`,
		},
		{
			name: "update",
			plan: adapter.Plan{
				Table: "products", Operation: adapter.OpUpdate,
				Values:     adapter.Row{"status": "closed", "price": nil},
				Conditions: []adapter.Condition{{Field: "status", Operator: adapter.OpEq, Value: "open"}},
			},
			sql:  `UPDATE "products" SET "price" = $1, "status" = $2 WHERE "status" = $3 RETURNING *`,
			args: []any{nil, "closed", "open"},
		},
		{
			name: "delete",
			plan: adapter.Plan{
				Table: "products", Operation: adapter.OpDelete,
				Conditions: []adapter.Condition{{Field: "id", Operator: adapter.OpEq, Value: 3}},
			},
			sql:  `DELETE FROM "products" WHERE "id" = $1 RETURNING *`,
			args: []any{3},
		},
		{
			name: "quoted identifiers are escaped",
			plan: adapter.Plan{Table: `we"ird`, Operation: adapter.OpSelect, Columns: `a"b`},
			sql:  `SELECT "a""b" FROM "we""ird"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := postgres.Compile(tt.plan)
			require.NoError(t, err)
			assert.Equal(t, tt.sql, q.SQL)
			assert.Equal(t, tt.args, q.Args)
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	t.Parallel()

	_, err := postgres.Compile(adapter.Plan{
		Table: "products", Operation: adapter.OpSelect,
		Conditions: []adapter.Condition{{Field: "name", Operator: "regex", Value: "x"}},
	})
	assert.ErrorIs(t, err, adapter.ErrUnsupportedOperator)

	_, err = postgres.Compile(adapter.Plan{Table: "products", Operation: adapter.OpInsert})
	assert.ErrorIs(t, err, adapter.ErrEmptyInsert)

	_, err = postgres.Compile(adapter.Plan{Table: "products", Operation: adapter.OpInsert, Rows: []adapter.Row{{}, {}}})
	assert.ErrorIs(t, err, adapter.ErrEmptyInsert)

	_, err = postgres.Compile(adapter.Plan{Operation: adapter.OpSelect})
	assert.ErrorIs(t, err, adapter.ErrEmptyTable)
}
