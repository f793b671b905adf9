// Package adaptertest provides a recording adapter.Client for tests.
//
// Every fluent call is recorded in order, and Execute is dispatched through
// testify's mock so responses are programmed with On/Return or the Respond and
// Fail helpers:
//
//	client := adaptertest.New()
//	client.Respond([]adapter.Row{{"id": 1, "name": "T-Shirt"}})
//
//	// exercise code under test
//
//	client.AssertCalledWith(t, "From", "products")
//	client.AssertCalledWith(t, "Eq", "id", 1)
//	client.AssertNumberOfCalls(t, "Execute", 1)
package adaptertest

import (
	"context"
	"reflect"
	"sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/activerecord/pkg/adapter"
)

// Call is one recorded fluent call.
type Call struct {
	Method string
	Args   []any
}

// Client records chains built through it.
type Client struct {
	mock.Mock

	mu    sync.Mutex
	calls []Call
	plans []adapter.Plan
}

var _ adapter.Client = (*Client)(nil)

func New() *Client {
	return &Client{}
}

// Respond programs every Execute to succeed with data.
func (c *Client) Respond(data any) *mock.Call {
	return c.On("Execute", mock.Anything).Return(adapter.Response{Data: data}, nil)
}

// RespondOnce programs the next Execute to succeed with data.
func (c *Client) RespondOnce(data any) *mock.Call {
	return c.Respond(data).Once()
}

// Fail programs every Execute to fail with err.
func (c *Client) Fail(err error) *mock.Call {
	return c.On("Execute", mock.Anything).Return(adapter.Response{}, err)
}

func (c *Client) From(table string) adapter.Builder {
	c.record("From", table)
	b := &builder{client: c}
	b.chain = adapter.NewChain(table, adapter.ExecutorFunc(c.execute))
	return b
}

func (c *Client) execute(_ context.Context, plan adapter.Plan) (adapter.Response, error) {
	c.mu.Lock()
	c.plans = append(c.plans, plan)
	c.mu.Unlock()

	args := c.MethodCalled("Execute", plan)
	resp, _ := args.Get(0).(adapter.Response)
	return resp, args.Error(1)
}

func (c *Client) record(method string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, Call{Method: method, Args: args})
}

// Recorded returns all recorded fluent calls in order.
func (c *Client) Recorded() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// Methods returns the recorded method names in order.
func (c *Client) Methods() []string {
	calls := c.Recorded()
	out := make([]string, len(calls))
	for i, call := range calls {
		out[i] = call.Method
	}
	return out
}

// Plans returns the plans that reached Execute.
func (c *Client) Plans() []adapter.Plan {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]adapter.Plan(nil), c.plans...)
}

// LastPlan returns the most recently executed plan.
func (c *Client) LastPlan() (adapter.Plan, bool) {
	plans := c.Plans()
	if len(plans) == 0 {
		return adapter.Plan{}, false
	}
	return plans[len(plans)-1], true
}

// CalledWith reports whether method was called with exactly args.
func (c *Client) CalledWith(method string, args ...any) bool {
	for _, call := range c.Recorded() {
		if call.Method == method && reflect.DeepEqual(call.Args, args) {
			return true
		}
	}
	return false
}

// CalledMethod reports whether method was called with any arguments.
func (c *Client) CalledMethod(method string) bool {
	for _, call := range c.Recorded() {
		if call.Method == method {
			return true
		}
	}
	return false
}

func (c *Client) AssertCalledWith(t assert.TestingT, method string, args ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	return assert.True(t, c.CalledWith(method, args...), "expected %s(%v) in %v", method, args, c.Recorded())
}

func (c *Client) AssertMethodNotCalled(t assert.TestingT, method string) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	return assert.False(t, c.CalledMethod(method), "unexpected %s in %v", method, c.Recorded())
}

// Reset forgets recorded calls, plans and programmed expectations.
func (c *Client) Reset() {
	c.mu.Lock()
	c.calls = nil
	c.plans = nil
	c.mu.Unlock()
	c.ExpectedCalls = nil
	c.Mock.Calls = nil
}

type builder struct {
	client *Client
	chain  *adapter.Chain
}

func (b *builder) Select(columns string) adapter.Builder {
	b.client.record("Select", columns)
	b.chain.Select(columns)
	return b
}

func (b *builder) Insert(rows ...adapter.Row) adapter.Builder {
	args := make([]any, len(rows))
	for i, row := range rows {
		args[i] = row
	}
	b.client.record("Insert", args...)
	b.chain.Insert(rows...)
	return b
}

func (b *builder) Update(values adapter.Row) adapter.Builder {
	b.client.record("Update", values)
	b.chain.Update(values)
	return b
}

func (b *builder) Delete() adapter.Builder {
	b.client.record("Delete")
	b.chain.Delete()
	return b
}

func (b *builder) Eq(field string, value any) adapter.Builder {
	b.client.record("Eq", field, value)
	b.chain.Eq(field, value)
	return b
}

func (b *builder) Neq(field string, value any) adapter.Builder {
	b.client.record("Neq", field, value)
	b.chain.Neq(field, value)
	return b
}

func (b *builder) Gt(field string, value any) adapter.Builder {
	b.client.record("Gt", field, value)
	b.chain.Gt(field, value)
	return b
}

func (b *builder) Gte(field string, value any) adapter.Builder {
	b.client.record("Gte", field, value)
	b.chain.Gte(field, value)
	return b
}

func (b *builder) Lt(field string, value any) adapter.Builder {
	b.client.record("Lt", field, value)
	b.chain.Lt(field, value)
	return b
}

func (b *builder) Lte(field string, value any) adapter.Builder {
	b.client.record("Lte", field, value)
	b.chain.Lte(field, value)
	return b
}

func (b *builder) Filter(field, operator string, value any) adapter.Builder {
	b.client.record("Filter", field, operator, value)
	b.chain.Filter(field, operator, value)
	return b
}

func (b *builder) Match(values adapter.Row) adapter.Builder {
	b.client.record("Match", values)
	b.chain.Match(values)
	return b
}

func (b *builder) Order(field string, opts adapter.OrderOptions) adapter.Builder {
	b.client.record("Order", field, opts)
	b.chain.Order(field, opts)
	return b
}

func (b *builder) Limit(n int) adapter.Builder {
	b.client.record("Limit", n)
	b.chain.Limit(n)
	return b
}

func (b *builder) Single() adapter.Builder {
	b.client.record("Single")
	b.chain.Single()
	return b
}

func (b *builder) Execute(ctx context.Context) (adapter.Response, error) {
	b.client.record("Execute")
	return b.chain.Execute(ctx)
}
