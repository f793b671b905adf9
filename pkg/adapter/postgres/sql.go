package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/activerecord/pkg/adapter"
)

// Query is a compiled statement with positional arguments.
type Query struct {
	SQL  string
	Args []any
}

var comparisons = map[string]string{
	adapter.OpEq:    "=",
	adapter.OpNeq:   "<>",
	adapter.OpGt:    ">",
	adapter.OpGte:   ">=",
	adapter.OpLt:    "<",
	adapter.OpLte:   "<=",
	adapter.OpLike:  "LIKE",
	adapter.OpILike: "ILIKE",
}

// Compile translates a plan into one parameterized statement. Mutations
// return the affected rows.
func Compile(plan adapter.Plan) (Query, error) {
	if err := plan.Validate(); err != nil {
		return Query{}, err
	}
	c := &compiler{}

	switch plan.Operation {
	case adapter.OpSelect:
		c.selectFrom(plan)
	case adapter.OpInsert:
		if err := c.insert(plan); err != nil {
			return Query{}, err
		}
		return c.query(), nil
	case adapter.OpUpdate:
		c.update(plan)
	case adapter.OpDelete:
		c.sb.WriteString("DELETE FROM ")
		c.sb.WriteString(table(plan.Table))
	default:
		return Query{}, fmt.Errorf("%w: %q", adapter.ErrOperationConflict, plan.Operation)
	}

	if err := c.where(plan.Conditions); err != nil {
		return Query{}, err
	}

	if plan.Operation == adapter.OpSelect {
		c.orderBy(plan.Orders)
		limit := plan.Limit
		if plan.Single {
			limit = 1
		}
		if limit > 0 {
			c.sb.WriteString(" LIMIT ")
			c.sb.WriteString(strconv.Itoa(limit))
		}
	} else {
		c.sb.WriteString(" RETURNING *")
	}
	return c.query(), nil
}

type compiler struct {
	sb   strings.Builder
	args []any
}

func (c *compiler) query() Query {
	return Query{SQL: c.sb.String(), Args: c.args}
}

func (c *compiler) bind(v any) string {
	c.args = append(c.args, v)
	return "$" + strconv.Itoa(len(c.args))
}

func (c *compiler) selectFrom(plan adapter.Plan) {
	c.sb.WriteString("SELECT ")
	cols := plan.ColumnList()
	if len(cols) == 0 {
		c.sb.WriteString("*")
	} else {
		for i, col := range cols {
			if i > 0 {
				c.sb.WriteString(", ")
			}
			c.sb.WriteString(ident(col))
		}
	}
	c.sb.WriteString(" FROM ")
	c.sb.WriteString(table(plan.Table))
}

func (c *compiler) insert(plan adapter.Plan) error {
	cols := plan.InsertColumns()
	c.sb.WriteString("INSERT INTO ")
	c.sb.WriteString(table(plan.Table))

	if len(cols) == 0 {
		if len(plan.Rows) > 1 {
			return fmt.Errorf("%w: %d rows without columns", adapter.ErrEmptyInsert, len(plan.Rows))
		}
		c.sb.WriteString(" DEFAULT VALUES RETURNING *")
		return nil
	}

	c.sb.WriteString(" (")
	for i, col := range cols {
		if i > 0 {
			c.sb.WriteString(", ")
		}
		c.sb.WriteString(ident(col))
	}
	c.sb.WriteString(") VALUES ")
	for r, row := range plan.Rows {
		if r > 0 {
			c.sb.WriteString(", ")
		}
		c.sb.WriteString("(")
		for i, col := range cols {
			if i > 0 {
				c.sb.WriteString(", ")
			}
			if v, ok := row[col]; ok {
				c.sb.WriteString(c.bind(v))
			} else {
				c.sb.WriteString("DEFAULT")
			}
		}
		c.sb.WriteString(")")
	}
	c.sb.WriteString(" RETURNING *")
	return nil
}

func (c *compiler) update(plan adapter.Plan) {
	c.sb.WriteString("UPDATE ")
	c.sb.WriteString(table(plan.Table))
	c.sb.WriteString(" SET ")
	for i, k := range adapter.SortedKeys(plan.Values) {
		if i > 0 {
			c.sb.WriteString(", ")
		}
		c.sb.WriteString(ident(k))
		c.sb.WriteString(" = ")
		c.sb.WriteString(c.bind(plan.Values[k]))
	}
}

func (c *compiler) where(conds []adapter.Condition) error {
	for i, cond := range conds {
		if i == 0 {
			c.sb.WriteString(" WHERE ")
		} else {
			c.sb.WriteString(" AND ")
		}
		if err := c.condition(cond); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) condition(cond adapter.Condition) error {
	col := ident(cond.Field)
	switch cond.Operator {
	case adapter.OpIn:
		c.sb.WriteString(col + " = ANY(" + c.bind(cond.Value) + ")")
	case adapter.OpIs:
		switch v := cond.Value.(type) {
		case nil:
			c.sb.WriteString(col + " IS NULL")
		case bool:
			if v {
				c.sb.WriteString(col + " IS TRUE")
			} else {
				c.sb.WriteString(col + " IS FALSE")
			}
		case string:
			if strings.EqualFold(v, "null") {
				c.sb.WriteString(col + " IS NULL")
				return nil
			}
			c.sb.WriteString(col + " IS NOT DISTINCT FROM " + c.bind(v))
		default:
			c.sb.WriteString(col + " IS NOT DISTINCT FROM " + c.bind(v))
		}
	default:
		op, ok := comparisons[cond.Operator]
		if !ok {
			return fmt.Errorf("%w: %q", adapter.ErrUnsupportedOperator, cond.Operator)
		}
		c.sb.WriteString(col + " " + op + " " + c.bind(cond.Value))
	}
	return nil
}

func (c *compiler) orderBy(orders []adapter.Order) {
	for i, o := range orders {
		if i == 0 {
			c.sb.WriteString(" ORDER BY ")
		} else {
			c.sb.WriteString(", ")
		}
		c.sb.WriteString(ident(o.Field))
		if o.Ascending {
			c.sb.WriteString(" ASC")
		} else {
			c.sb.WriteString(" DESC")
		}
	}
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// table quotes a possibly schema-qualified table name.
func table(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}
