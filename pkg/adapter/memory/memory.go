// Package memory is an in-process adapter.Client backed by mutex-guarded tables.
//
// It supports every Builder call and the native operators eq, neq, gt, gte,
// lt, lte, like, ilike, in and is. Rows inserted without an "id" get the next
// serial id of their table. Returned rows are copies; mutating them never
// touches the store.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/dmitrymomot/activerecord/internal/rowset"
	"github.com/dmitrymomot/activerecord/pkg/adapter"
)

// Store is an in-memory table store.
type Store struct {
	mu      sync.RWMutex
	tables  map[string]*table
	idField string
}

type table struct {
	rows []adapter.Row
	seq  int64
}

// Option configures a Store.
type Option func(*Store)

// WithIDField changes the serial column name. Defaults to "id".
func WithIDField(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.idField = name
		}
	}
}

var _ adapter.Client = (*Store)(nil)

func New(opts ...Option) *Store {
	s := &Store{
		tables:  make(map[string]*table),
		idField: "id",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) From(name string) adapter.Builder {
	return adapter.NewChain(name, adapter.ExecutorFunc(s.execute))
}

// Seed inserts rows directly, assigning serial ids where missing.
func (s *Store) Seed(name string, rows ...adapter.Row) []adapter.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(s.table(name), rows)
}

// Rows returns a copy of every row stored in the table.
func (s *Store) Rows(name string) []adapter.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[name]
	if !ok {
		return nil
	}
	out := make([]adapter.Row, len(t.rows))
	for i, row := range t.rows {
		out[i] = maps.Clone(row)
	}
	return out
}

// Truncate removes every row of a table and resets its serial.
func (s *Store) Truncate(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, name)
}

func (s *Store) table(name string) *table {
	t, ok := s.tables[name]
	if !ok {
		t = &table{}
		s.tables[name] = t
	}
	return t
}

func (s *Store) execute(ctx context.Context, plan adapter.Plan) (adapter.Response, error) {
	if err := ctx.Err(); err != nil {
		return adapter.Response{}, err
	}

	if plan.Operation == adapter.OpSelect {
		s.mu.RLock()
		defer s.mu.RUnlock()
		var rows []adapter.Row
		if t, ok := s.tables[plan.Table]; ok {
			rows = t.rows
		}
		return rowset.Query(rows, plan)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.table(plan.Table)

	switch plan.Operation {
	case adapter.OpInsert:
		return adapter.Response{Data: s.insert(t, plan.Rows)}, nil
	case adapter.OpUpdate:
		return s.update(t, plan)
	case adapter.OpDelete:
		return s.delete(t, plan)
	}
	return adapter.Response{}, adapter.ErrOperationConflict
}

func (s *Store) insert(t *table, rows []adapter.Row) []adapter.Row {
	out := make([]adapter.Row, 0, len(rows))
	for _, row := range rows {
		stored := maps.Clone(row)
		if stored == nil {
			stored = adapter.Row{}
		}
		if id, ok := stored[s.idField]; !ok || id == nil {
			t.seq++
			stored[s.idField] = t.seq
		} else if n, ok := serial(id); ok && n > t.seq {
			t.seq = n
		}
		t.rows = append(t.rows, stored)
		out = append(out, maps.Clone(stored))
	}
	return out
}

func (s *Store) update(t *table, plan adapter.Plan) (adapter.Response, error) {
	matched, err := rowset.Filter(t.rows, plan.Conditions)
	if err != nil {
		return adapter.Response{}, err
	}

	out := make([]adapter.Row, 0, len(matched))
	for _, row := range matched {
		maps.Copy(row, plan.Values)
		out = append(out, maps.Clone(row))
	}
	return rowset.Wrap(out, plan.Single), nil
}

func (s *Store) delete(t *table, plan adapter.Plan) (adapter.Response, error) {
	kept := t.rows[:0:0]
	var out []adapter.Row
	for _, row := range t.rows {
		ok, err := rowset.Match(row, plan.Conditions)
		if err != nil {
			return adapter.Response{}, err
		}
		if ok {
			out = append(out, maps.Clone(row))
			continue
		}
		kept = append(kept, row)
	}
	t.rows = kept
	return rowset.Wrap(out, plan.Single), nil
}

// serial reads an explicitly supplied integer id so later inserts do not collide.
func serial(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	}
	return 0, false
}
