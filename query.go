package activerecord

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/activerecord/pkg/adapter"
	"github.com/dmitrymomot/activerecord/pkg/async"
	"github.com/dmitrymomot/activerecord/pkg/logger"
)

// Result is the outcome of resolving a Scope.
// In query mode Records (or Record, when single) hold hydrated records.
// In mutation mode Data holds whatever the adapter returned.
type Result struct {
	Mode    Mode
	Single  bool
	Records []*Record
	Record  *Record
	Data    any
}

// Len returns the number of hydrated records.
func (r *Result) Len() int {
	if r.Single {
		if r.Record != nil {
			return 1
		}
		return 0
	}
	return len(r.Records)
}

var operators = map[string]func(adapter.Builder, string, any) adapter.Builder{
	"=":           adapter.Builder.Eq,
	"!=":          adapter.Builder.Neq,
	">":           adapter.Builder.Gt,
	">=":          adapter.Builder.Gte,
	"<":           adapter.Builder.Lt,
	"<=":          adapter.Builder.Lte,
	adapter.OpEq:  adapter.Builder.Eq,
	adapter.OpNeq: adapter.Builder.Neq,
	adapter.OpGt:  adapter.Builder.Gt,
	adapter.OpGte: adapter.Builder.Gte,
	adapter.OpLt:  adapter.Builder.Lt,
	adapter.OpLte: adapter.Builder.Lte,
}

func applyFilter(b adapter.Builder, f Filter) adapter.Builder {
	if fn, ok := operators[f.Operator]; ok {
		return fn(b, f.Field, f.Value)
	}
	return b.Filter(f.Field, f.Operator, f.Value)
}

// Execute resolves the scope with exactly one adapter call.
func (s *Scope) Execute(ctx context.Context) (*Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	b, err := s.model.from()
	if err != nil {
		return nil, err
	}

	op := adapter.OpSelect
	switch s.mode {
	case ModeUpdate:
		op = adapter.OpUpdate
		b = b.Update(s.updates)
	case ModeDelete:
		op = adapter.OpDelete
		b = b.Delete()
	default:
		b = b.Select(s.projection())
	}

	for _, field := range s.fields {
		for _, f := range s.filters[field] {
			b = applyFilter(b, f)
		}
	}

	if s.mode == ModeQuery {
		for _, o := range s.order {
			b = b.Order(o.Field, adapter.OrderOptions{Ascending: o.Direction == Asc})
		}
		if s.limit > 0 {
			b = b.Limit(s.limit)
		}
		if s.single {
			b = b.Single()
		}
	}

	start := time.Now()
	resp, err := b.Execute(ctx)
	if err != nil {
		s.model.trace(ctx, op, start, err)
		return nil, err
	}

	res := &Result{Mode: s.mode, Data: resp.Data}
	if s.mode == ModeQuery {
		res.Single = s.single
		if err := s.hydrate(res, resp); err != nil {
			s.model.trace(ctx, op, start, err)
			return nil, err
		}
	}

	s.model.log().DebugContext(ctx, "scope resolved",
		logger.Model(s.model.name),
		logger.Table(s.model.table),
		logger.Operation(string(op)),
		logger.Filters(len(s.Filters())),
		logger.Rows(res.Len()),
		logger.Duration(time.Since(start)),
	)
	return res, nil
}

func (s *Scope) hydrate(res *Result, resp adapter.Response) error {
	switch d := resp.Data.(type) {
	case nil:
	case adapter.Row:
		if d != nil {
			res.Records = []*Record{s.model.Hydrate(d)}
		}
	case []adapter.Row:
		res.Records = make([]*Record, 0, len(d))
		for _, row := range d {
			res.Records = append(res.Records, s.model.Hydrate(row))
		}
	case []any:
		res.Records = make([]*Record, 0, len(d))
		for _, item := range d {
			row, ok := item.(adapter.Row)
			if !ok {
				return fmt.Errorf("%w: row of type %T", ErrUnexpectedResponse, item)
			}
			res.Records = append(res.Records, s.model.Hydrate(row))
		}
	default:
		return fmt.Errorf("%w: data of type %T", ErrUnexpectedResponse, resp.Data)
	}

	if res.Single {
		if len(res.Records) > 0 {
			res.Record = res.Records[0]
		}
		res.Records = nil
	} else if res.Records == nil {
		res.Records = []*Record{}
	}
	return nil
}

// Run resolves a snapshot of the scope in the background. A scope holding
// an argument error returns an already failed Future.
func (s *Scope) Run(ctx context.Context) *async.Future[*Result] {
	if s.err != nil {
		return async.Resolved[*Result](nil, s.err)
	}
	return async.Async(ctx, s.Clone(), func(ctx context.Context, snapshot *Scope) (*Result, error) {
		return snapshot.Execute(ctx)
	})
}

// Load resolves a query scope into records.
func (s *Scope) Load(ctx context.Context) ([]*Record, error) {
	if s.mode != ModeQuery {
		return nil, ErrNotQuery
	}
	res, err := s.Execute(ctx)
	if err != nil {
		return nil, err
	}
	if res.Single {
		if res.Record == nil {
			return []*Record{}, nil
		}
		return []*Record{res.Record}, nil
	}
	return res.Records, nil
}

// Take resolves a single-row copy of the scope and returns the record or nil.
// The scope itself is left unchanged.
func (s *Scope) Take(ctx context.Context) (*Record, error) {
	if s.mode != ModeQuery {
		return nil, ErrNotQuery
	}
	res, err := s.Clone().Single().Execute(ctx)
	if err != nil {
		return nil, err
	}
	return res.Record, nil
}
