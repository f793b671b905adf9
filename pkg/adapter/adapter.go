package adapter

import "context"

// Row is a single record as exchanged with a store: column name to value.
type Row = map[string]any

// Client is a store handle. Implementations must be safe for concurrent use.
type Client interface {
	From(table string) Builder
}

// OrderOptions controls the direction of one ordering key.
type OrderOptions struct {
	Ascending bool
}

// Builder is a fluent, single-use call chain against one table.
type Builder interface {
	Select(columns string) Builder
	Insert(rows ...Row) Builder
	Update(values Row) Builder
	Delete() Builder

	Eq(field string, value any) Builder
	Neq(field string, value any) Builder
	Gt(field string, value any) Builder
	Gte(field string, value any) Builder
	Lt(field string, value any) Builder
	Lte(field string, value any) Builder
	// Filter applies a store-native operator by name.
	Filter(field, operator string, value any) Builder
	// Match adds one equality filter per key.
	Match(values Row) Builder

	Order(field string, opts OrderOptions) Builder
	Limit(n int) Builder
	Single() Builder

	Execute(ctx context.Context) (Response, error)
}

// Response is the outcome of Execute.
// Data holds a Row, a []Row, or nil when Single was requested and nothing matched.
type Response struct {
	Data any
}

// Rows normalizes Data into a slice.
func (r Response) Rows() []Row {
	switch d := r.Data.(type) {
	case []Row:
		return d
	case Row:
		if d == nil {
			return nil
		}
		return []Row{d}
	case []any:
		rows := make([]Row, 0, len(d))
		for _, item := range d {
			if row, ok := item.(Row); ok {
				rows = append(rows, row)
			}
		}
		return rows
	}
	return nil
}

// First returns the first row of Data or nil.
func (r Response) First() Row {
	rows := r.Rows()
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}
