package activerecord

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dmitrymomot/activerecord/pkg/adapter"
)

// Mode is what a Scope resolves to.
type Mode string

const (
	ModeQuery  Mode = "query"
	ModeUpdate Mode = "update"
	ModeDelete Mode = "delete"
)

// Direction of one ordering key.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts asc or desc in any letter case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Filter is one accumulated condition. Operator is either a comparison
// symbol (=, !=, >, >=, <, <=) or a store-native operator name.
type Filter struct {
	Field    string
	Operator string
	Value    any
}

// OrderTerm is one ordering key.
type OrderTerm struct {
	Field     string
	Direction Direction
}

// OrderBy builds an explicit ordering sequence for Scope.Order.
func OrderBy(field string, dir Direction) OrderTerm {
	return OrderTerm{Field: field, Direction: dir}
}

// Scope accumulates query intent and resolves it with one adapter call.
// A Scope is mutable and owned by a single goroutine; use Clone to branch.
// The first invalid argument is remembered and returned by Execute.
type Scope struct {
	model *Model

	fields  []string
	filters map[string][]Filter
	order   []OrderTerm
	limit   int
	single  bool
	columns string

	mode    Mode
	updates map[string]any

	err error
}

func newScope(m *Model) *Scope {
	return &Scope{
		model:   m,
		filters: make(map[string][]Filter),
		mode:    ModeQuery,
	}
}

// Clone returns an independent copy of the scope.
func (s *Scope) Clone() *Scope {
	c := *s
	c.fields = slices.Clone(s.fields)
	c.filters = make(map[string][]Filter, len(s.filters))
	for k, v := range s.filters {
		c.filters[k] = slices.Clone(v)
	}
	c.order = slices.Clone(s.order)
	c.updates = maps.Clone(s.updates)
	return &c
}

func (s *Scope) fail(err error) *Scope {
	if s.err == nil {
		s.err = err
	}
	return s
}

func (s *Scope) add(f Filter) *Scope {
	if _, ok := s.filters[f.Field]; !ok {
		s.fields = append(s.fields, f.Field)
	}
	s.filters[f.Field] = append(s.filters[f.Field], f)
	return s
}

// Where adds filters. Accepted shapes:
//
//	Where(map[string]any{"a": 1, "b": 2}) // equality per key, sorted by key
//	Where("price", 10)                    // equality
//	Where("price", ">", 10)               // explicit operator
//	Where(Filter{...})
func (s *Scope) Where(args ...any) *Scope {
	switch len(args) {
	case 1:
		switch v := args[0].(type) {
		case map[string]any:
			for _, k := range sortedKeys(v) {
				s.add(Filter{Field: k, Operator: "=", Value: v[k]})
			}
			return s
		case Filter:
			if v.Field == "" || v.Operator == "" {
				return s.fail(fmt.Errorf("%w: incomplete filter", ErrInvalidWhere))
			}
			return s.add(v)
		}
	case 2:
		if field, ok := args[0].(string); ok && field != "" {
			return s.add(Filter{Field: field, Operator: "=", Value: args[1]})
		}
	case 3:
		field, ok1 := args[0].(string)
		op, ok2 := args[1].(string)
		if ok1 && ok2 && field != "" && op != "" {
			return s.add(Filter{Field: field, Operator: op, Value: args[2]})
		}
	}
	return s.fail(fmt.Errorf("%w: %d argument(s)", ErrInvalidWhere, len(args)))
}

// WhereIn filters field by membership in values.
func (s *Scope) WhereIn(field string, values any) *Scope {
	return s.Where(field, adapter.OpIn, values)
}

// Single requests at most one row. Takes effect only in query mode.
func (s *Scope) Single() *Scope {
	s.single = true
	return s
}

// Select sets the projection: a []string or a comma separated string.
func (s *Scope) Select(fields any) *Scope {
	switch v := fields.(type) {
	case []string:
		if len(v) == 0 {
			return s.fail(fmt.Errorf("%w: empty field list", ErrInvalidSelect))
		}
		s.columns = strings.Join(v, ", ")
	case string:
		if strings.TrimSpace(v) == "" {
			return s.fail(fmt.Errorf("%w: empty field list", ErrInvalidSelect))
		}
		s.columns = v
	default:
		return s.fail(fmt.Errorf("%w: %T", ErrInvalidSelect, fields))
	}
	return s
}

// Order merges ordering keys into the scope. Accepted shapes:
//
//	Order([]string{"name", "price desc"})
//	Order("name, price desc")
//	Order(map[string]string{"price": "desc"}) // applied by sorted key
//	Order(map[string]Direction{"price": Desc})
//	Order(OrderBy("price", Desc), OrderBy("name", Asc))
//
// A field already ordered keeps its position and takes the new direction.
func (s *Scope) Order(terms ...any) *Scope {
	if len(terms) == 0 {
		return s.fail(fmt.Errorf("%w: empty", ErrInvalidOrder))
	}
	for _, item := range terms {
		switch v := item.(type) {
		case OrderTerm:
			s.orderTerm(v.Field, string(v.Direction))
		case []OrderTerm:
			for _, t := range v {
				s.orderTerm(t.Field, string(t.Direction))
			}
		case string:
			for _, part := range strings.Split(v, ",") {
				s.orderToken(part)
			}
		case []string:
			for _, part := range v {
				s.orderToken(part)
			}
		case map[string]string:
			for _, k := range sortedKeys(v) {
				s.orderTerm(k, v[k])
			}
		case map[string]Direction:
			for _, k := range sortedKeys(v) {
				s.orderTerm(k, string(v[k]))
			}
		case map[string]any:
			for _, k := range sortedKeys(v) {
				switch d := v[k].(type) {
				case string:
					s.orderTerm(k, d)
				case Direction:
					s.orderTerm(k, string(d))
				default:
					s.fail(fmt.Errorf("%w: direction of type %T for %q", ErrInvalidOrder, v[k], k))
				}
			}
		default:
			s.fail(fmt.Errorf("%w: %T", ErrInvalidOrder, item))
		}
	}
	return s
}

func (s *Scope) orderToken(token string) {
	parts := strings.Fields(token)
	switch len(parts) {
	case 1:
		s.orderTerm(parts[0], string(Asc))
	case 2:
		s.orderTerm(parts[0], parts[1])
	default:
		s.fail(fmt.Errorf("%w: %q", ErrInvalidOrder, token))
	}
}

func (s *Scope) orderTerm(field, dir string) {
	if field == "" {
		s.fail(fmt.Errorf("%w: empty field", ErrInvalidOrder))
		return
	}
	d, err := ParseDirection(dir)
	if err != nil {
		s.fail(err)
		return
	}
	for i := range s.order {
		if s.order[i].Field == field {
			s.order[i].Direction = d
			return
		}
	}
	s.order = append(s.order, OrderTerm{Field: field, Direction: d})
}

// Limit caps the number of rows. Values below one are ignored.
func (s *Scope) Limit(n int) *Scope {
	if n > 0 {
		s.limit = n
	}
	return s
}

// Update switches the scope to bulk update mode with the given values.
func (s *Scope) Update(values map[string]any) *Scope {
	s.mode = ModeUpdate
	s.updates = maps.Clone(values)
	return s
}

// Delete switches the scope to bulk delete mode.
func (s *Scope) Delete() *Scope {
	s.mode = ModeDelete
	s.updates = nil
	return s
}

// Model returns the model the scope queries.
func (s *Scope) Model() *Model { return s.model }

// Mode reports how the scope will resolve.
func (s *Scope) Mode() Mode { return s.mode }

// Filters returns the accumulated filters in application order.
func (s *Scope) Filters() []Filter {
	out := make([]Filter, 0, len(s.fields))
	for _, f := range s.fields {
		out = append(out, s.filters[f]...)
	}
	return out
}

// Ordering returns the ordering keys in application order.
func (s *Scope) Ordering() []OrderTerm {
	return slices.Clone(s.order)
}

// Err returns the first argument error recorded by the builder methods.
func (s *Scope) Err() error { return s.err }

func (s *Scope) projection() string {
	if s.columns != "" {
		return s.columns
	}
	return s.model.schema.Columns()
}
