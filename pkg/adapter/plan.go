package adapter

import (
	"fmt"
	"slices"
	"strings"
)

// Operation is the verb of a chain.
type Operation string

const (
	OpSelect Operation = "select"
	OpInsert Operation = "insert"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Native filter operators.
const (
	OpEq    = "eq"
	OpNeq   = "neq"
	OpGt    = "gt"
	OpGte   = "gte"
	OpLt    = "lt"
	OpLte   = "lte"
	OpLike  = "like"
	OpILike = "ilike"
	OpIn    = "in"
	OpIs    = "is"
)

// Condition is one filter of a Plan, with a native operator.
type Condition struct {
	Field    string
	Operator string
	Value    any
}

func (c Condition) String() string {
	return fmt.Sprintf("%s.%s.%v", c.Field, c.Operator, c.Value)
}

// Order is one ordering key of a Plan.
type Order struct {
	Field     string
	Ascending bool
}

// Plan is a recorded call chain, ready to be translated by an adapter.
type Plan struct {
	Table      string
	Operation  Operation
	Columns    string
	Rows       []Row
	Values     Row
	Conditions []Condition
	Orders     []Order
	Limit      int
	Single     bool
}

// ColumnList splits Columns into trimmed names. It returns nil for "" and "*".
func (p Plan) ColumnList() []string {
	return SplitColumns(p.Columns)
}

// SplitColumns splits a comma separated column list.
// Empty input and "*" mean every column and yield nil.
func SplitColumns(columns string) []string {
	columns = strings.TrimSpace(columns)
	if columns == "" || columns == "*" {
		return nil
	}
	parts := strings.Split(columns, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// InsertColumns returns the union of keys across rows in lexical order.
func (p Plan) InsertColumns() []string {
	seen := map[string]struct{}{}
	var cols []string
	for _, row := range p.Rows {
		for k := range row {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				cols = append(cols, k)
			}
		}
	}
	slices.Sort(cols)
	return cols
}

// SortedKeys returns the keys of row in lexical order.
func SortedKeys(row Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Validate checks the structural consistency of the plan.
func (p Plan) Validate() error {
	if p.Table == "" {
		return ErrEmptyTable
	}
	switch p.Operation {
	case OpInsert:
		if len(p.Rows) == 0 {
			return ErrEmptyInsert
		}
	case OpUpdate:
		if len(p.Values) == 0 {
			return ErrEmptyUpdate
		}
	}
	if p.Limit < 0 {
		return ErrInvalidLimit
	}
	return nil
}
