package adapter

import (
	"context"
	"fmt"
	"maps"
)

// Executor runs a recorded Plan against a store.
type Executor interface {
	Execute(ctx context.Context, plan Plan) (Response, error)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, plan Plan) (Response, error)

func (f ExecutorFunc) Execute(ctx context.Context, plan Plan) (Response, error) {
	return f(ctx, plan)
}

// Chain is a Builder that records calls into a Plan and runs it with an Executor.
// A Chain is not safe for concurrent use.
type Chain struct {
	plan Plan
	exec Executor
	err  error
}

var _ Builder = (*Chain)(nil)

// NewChain starts a chain for table. Without a verb the chain selects every column.
func NewChain(table string, exec Executor) *Chain {
	return &Chain{plan: Plan{Table: table}, exec: exec}
}

// Plan returns the recorded plan with the default verb applied.
func (c *Chain) Plan() Plan {
	p := c.plan
	if p.Operation == "" {
		p.Operation = OpSelect
		if p.Columns == "" {
			p.Columns = "*"
		}
	}
	return p
}

func (c *Chain) setOperation(op Operation) bool {
	if c.plan.Operation != "" && c.plan.Operation != op {
		c.fail(fmt.Errorf("%w: %s after %s", ErrOperationConflict, op, c.plan.Operation))
		return false
	}
	c.plan.Operation = op
	return true
}

func (c *Chain) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

func (c *Chain) Select(columns string) Builder {
	if c.setOperation(OpSelect) {
		c.plan.Columns = columns
	}
	return c
}

func (c *Chain) Insert(rows ...Row) Builder {
	if c.setOperation(OpInsert) {
		for _, row := range rows {
			c.plan.Rows = append(c.plan.Rows, maps.Clone(row))
		}
	}
	return c
}

func (c *Chain) Update(values Row) Builder {
	if c.setOperation(OpUpdate) {
		c.plan.Values = maps.Clone(values)
	}
	return c
}

func (c *Chain) Delete() Builder {
	c.setOperation(OpDelete)
	return c
}

func (c *Chain) Eq(field string, value any) Builder  { return c.Filter(field, OpEq, value) }
func (c *Chain) Neq(field string, value any) Builder { return c.Filter(field, OpNeq, value) }
func (c *Chain) Gt(field string, value any) Builder  { return c.Filter(field, OpGt, value) }
func (c *Chain) Gte(field string, value any) Builder { return c.Filter(field, OpGte, value) }
func (c *Chain) Lt(field string, value any) Builder  { return c.Filter(field, OpLt, value) }
func (c *Chain) Lte(field string, value any) Builder { return c.Filter(field, OpLte, value) }

func (c *Chain) Filter(field, operator string, value any) Builder {
	c.plan.Conditions = append(c.plan.Conditions, Condition{Field: field, Operator: operator, Value: value})
	return c
}

// Match adds equality filters in lexical key order.
func (c *Chain) Match(values Row) Builder {
	for _, k := range SortedKeys(values) {
		c.Eq(k, values[k])
	}
	return c
}

func (c *Chain) Order(field string, opts OrderOptions) Builder {
	c.plan.Orders = append(c.plan.Orders, Order{Field: field, Ascending: opts.Ascending})
	return c
}

func (c *Chain) Limit(n int) Builder {
	c.plan.Limit = n
	return c
}

func (c *Chain) Single() Builder {
	c.plan.Single = true
	return c
}

// Execute validates the plan and hands it to the executor.
func (c *Chain) Execute(ctx context.Context) (Response, error) {
	if c.err != nil {
		return Response{}, c.err
	}
	plan := c.Plan()
	if err := plan.Validate(); err != nil {
		return Response{}, err
	}
	if c.exec == nil {
		return Response{}, ErrNoExecutor
	}
	return c.exec.Execute(ctx, plan)
}
