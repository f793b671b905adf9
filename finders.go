package activerecord

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/dmitrymomot/activerecord/pkg/adapter"
	"github.com/dmitrymomot/activerecord/pkg/logger"
	"github.com/dmitrymomot/activerecord/pkg/validator"
)

// All returns an unfiltered query scope.
func (m *Model) All() *Scope {
	return newScope(m)
}

// Where is shorthand for All().Where(args...).
func (m *Model) Where(args ...any) *Scope {
	return m.All().Where(args...)
}

// FindBy returns the first record matching criteria, or nil.
func (m *Model) FindBy(ctx context.Context, criteria map[string]any) (*Record, error) {
	return m.Where(criteria).Take(ctx)
}

// Find returns the record with the given id, or nil.
func (m *Model) Find(ctx context.Context, id any) (*Record, error) {
	return m.FindBy(ctx, map[string]any{IDField: id})
}

// GetBy is FindBy that fails with ErrRecordNotFound when nothing matches.
func (m *Model) GetBy(ctx context.Context, criteria map[string]any) (*Record, error) {
	rec, err := m.FindBy(ctx, criteria)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrRecordNotFound
	}
	return rec, nil
}

// Get is Find that fails with ErrRecordNotFound when nothing matches.
func (m *Model) Get(ctx context.Context, id any) (*Record, error) {
	return m.GetBy(ctx, map[string]any{IDField: id})
}

// CreateResult is the outcome of Create. Record is set even when invalid.
type CreateResult struct {
	Valid  bool
	Errors validator.Errors
	Record *Record
}

// Create builds a new record from input and saves it.
func (m *Model) Create(ctx context.Context, input map[string]any) (CreateResult, error) {
	rec := m.New(input)
	res, err := rec.Save(ctx)
	return CreateResult{Valid: res.Valid, Errors: res.Errors, Record: rec}, err
}

// CreateMany inserts all rows with one adapter call and hydrates what the
// store returns. Rows are not validated. An empty input makes no call.
func (m *Model) CreateMany(ctx context.Context, rows []map[string]any) ([]*Record, error) {
	if len(rows) == 0 {
		return []*Record{}, nil
	}
	b, err := m.from()
	if err != nil {
		return nil, err
	}

	payload := make([]adapter.Row, len(rows))
	for i, row := range rows {
		payload[i] = maps.Clone(row)
	}

	start := time.Now()
	resp, err := b.Insert(payload...).Execute(ctx)
	if err != nil {
		m.trace(ctx, adapter.OpInsert, start, err)
		return nil, err
	}

	switch resp.Data.(type) {
	case nil, adapter.Row, []adapter.Row, []any:
	default:
		err := fmt.Errorf("%w: data of type %T", ErrUnexpectedResponse, resp.Data)
		m.trace(ctx, adapter.OpInsert, start, err)
		return nil, err
	}

	stored := resp.Rows()
	out := make([]*Record, 0, len(stored))
	for _, row := range stored {
		out = append(out, m.Hydrate(row))
	}
	m.log().DebugContext(ctx, "bulk insert",
		logger.Model(m.name),
		logger.Table(m.table),
		logger.Rows(len(out)),
		logger.Duration(time.Since(start)),
	)
	return out, nil
}
