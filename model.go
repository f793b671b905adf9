package activerecord

import (
	"log/slog"
	"sync/atomic"

	"github.com/dmitrymomot/activerecord/pkg/adapter"
	"github.com/dmitrymomot/activerecord/pkg/validator"
)

type clientHolder struct {
	client adapter.Client
}

var defaultClient atomic.Pointer[clientHolder]

// SetDefaultClient installs the process-wide adapter client used by models
// declared without WithClient. Passing nil clears it.
func SetDefaultClient(c adapter.Client) {
	if c == nil {
		defaultClient.Store(nil)
		return
	}
	defaultClient.Store(&clientHolder{client: c})
}

// DefaultClient returns the process-wide client or nil.
func DefaultClient() adapter.Client {
	if h := defaultClient.Load(); h != nil {
		return h.client
	}
	return nil
}

// Model describes one table: schema, validators and adapter client.
// A Model is immutable after NewModel and safe for concurrent use.
type Model struct {
	name   string
	table  string
	schema Schema
	rules  []validator.FieldRules
	client adapter.Client
	logger *slog.Logger
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithValidation appends validators for field. It may be repeated; validators
// of one field run in declaration order for message ordering purposes.
func WithValidation(field string, fns ...validator.Func) ModelOption {
	return func(m *Model) {
		for i := range m.rules {
			if m.rules[i].Field == field {
				m.rules[i].Funcs = append(m.rules[i].Funcs, fns...)
				return
			}
		}
		m.rules = append(m.rules, validator.FieldRules{Field: field, Funcs: fns})
	}
}

// WithClient binds the model to a specific adapter client.
func WithClient(c adapter.Client) ModelOption {
	return func(m *Model) {
		if c != nil {
			m.client = c
		}
	}
}

// WithLogger sets the logger used for query tracing. Nil keeps slog.Default().
func WithLogger(l *slog.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithName sets the registry name. Defaults to the table name.
func WithName(name string) ModelOption {
	return func(m *Model) {
		if name != "" {
			m.name = name
		}
	}
}

// NewModel declares a model for table.
func NewModel(table string, schema Schema, opts ...ModelOption) *Model {
	m := &Model{
		name:   table,
		table:  table,
		schema: append(Schema(nil), schema...),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

func (m *Model) Name() string   { return m.name }
func (m *Model) Table() string  { return m.table }
func (m *Model) Schema() Schema { return append(Schema(nil), m.schema...) }

// Rules returns the declared validators.
func (m *Model) Rules() []validator.FieldRules {
	out := make([]validator.FieldRules, len(m.rules))
	for i, r := range m.rules {
		out[i] = validator.FieldRules{Field: r.Field, Funcs: append([]validator.Func(nil), r.Funcs...)}
	}
	return out
}

// Client returns the model's client, falling back to the default client.
func (m *Model) Client() adapter.Client {
	if m.client != nil {
		return m.client
	}
	return DefaultClient()
}

func (m *Model) from() (adapter.Builder, error) {
	c := m.Client()
	if c == nil {
		return nil, ErrNoClient
	}
	return c.From(m.table), nil
}

func (m *Model) log() *slog.Logger {
	if m.logger != nil {
		return m.logger
	}
	return slog.Default()
}
