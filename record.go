package activerecord

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// Record is one schema-bound entity with its own persistence state.
// A Record is owned by one goroutine at a time; validators may read it
// concurrently while no writes happen.
type Record struct {
	model   *Model
	values  map[string]any
	changed map[string]struct{}

	isNewRecord bool
	isChanged   bool
	deleted     bool
}

type recordOptions struct {
	hydrating bool
}

// RecordOption configures record construction.
type RecordOption func(*recordOptions)

// Hydrating marks the record as loaded from the store: not new, not changed.
func Hydrating() RecordOption {
	return func(o *recordOptions) { o.hydrating = true }
}

// New constructs a record. Every schema field starts as nil, then fields are
// overlaid, including keys outside the schema, which are kept but never saved.
func (m *Model) New(fields map[string]any, opts ...RecordOption) *Record {
	var o recordOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	r := &Record{
		model:   m,
		values:  make(map[string]any, len(m.schema)+len(fields)),
		changed: make(map[string]struct{}),
	}
	for _, f := range m.schema {
		r.values[f.Name] = nil
	}
	maps.Copy(r.values, fields)

	if o.hydrating {
		r.isNewRecord = false
		r.isChanged = false
	} else {
		r.isNewRecord = true
		r.isChanged = true
	}
	return r
}

// Hydrate builds a persisted record from a store row.
func (m *Model) Hydrate(row map[string]any) *Record {
	return m.New(row, Hydrating())
}

func (r *Record) Model() *Model { return r.model }

// Get returns the current value of field, or nil.
func (r *Record) Get(field string) any {
	return r.values[field]
}

// ID returns the value of the id field.
func (r *Record) ID() any {
	return r.values[IDField]
}

// Set writes a schema field. The record becomes changed only when value
// differs from the stored one. The id field cannot be set.
func (r *Record) Set(field string, value any) error {
	if field == IDField {
		return fmt.Errorf("%w: %s", ErrReadOnlyField, field)
	}
	if !r.model.schema.Has(field) {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, r.model.table, field)
	}

	if current, ok := r.values[field]; ok && sameValue(current, value) {
		return nil
	}
	r.values[field] = value
	r.changed[field] = struct{}{}
	r.isChanged = true
	return nil
}

// MustSet is Set that panics on error, for fields known at compile time.
func (r *Record) MustSet(field string, value any) *Record {
	if err := r.Set(field, value); err != nil {
		panic(err)
	}
	return r
}

// Assign sets several fields, stopping at the first error.
func (r *Record) Assign(fields map[string]any) error {
	for _, k := range sortedKeys(fields) {
		if err := r.Set(k, fields[k]); err != nil {
			return err
		}
	}
	return nil
}

// Values returns a copy of all values, including keys outside the schema.
func (r *Record) Values() map[string]any {
	return maps.Clone(r.values)
}

// ChangedFields lists fields set to a new value since construction or the
// last successful save, in schema order.
func (r *Record) ChangedFields() []string {
	var out []string
	for _, f := range r.model.schema {
		if _, ok := r.changed[f.Name]; ok {
			out = append(out, f.Name)
		}
	}
	return out
}

// IsNewRecord is true until the first successful insert.
func (r *Record) IsNewRecord() bool { return r.isNewRecord }

// IsChanged is the dirty flag.
func (r *Record) IsChanged() bool { return r.isChanged }

// IsPersisted is the negation of the dirty flag. It does not tell whether the
// row still exists in the store; see IsDeleted.
func (r *Record) IsPersisted() bool { return !r.isChanged }

// IsDeleted reports whether Delete succeeded on this record.
func (r *Record) IsDeleted() bool { return r.deleted }

func (r *Record) String() string {
	return fmt.Sprintf("%s#%v", r.model.name, r.ID())
}

// payload is every schema field except id, for insert and update.
func (r *Record) payload() map[string]any {
	out := make(map[string]any, len(r.model.schema))
	for _, f := range r.model.schema {
		if f.Name == IDField {
			continue
		}
		out[f.Name] = r.values[f.Name]
	}
	return out
}

func (r *Record) markClean() {
	r.isChanged = false
	clear(r.changed)
}

func sameValue(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
