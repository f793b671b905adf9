// Package rowset evaluates adapter plans over rows held in process memory.
//
// Comparisons follow SQL null semantics: any comparison against nil is false,
// only the "is" operator matches nil. Numbers compare by value across Go
// numeric types and json.Number.
package rowset

import (
	"cmp"
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/activerecord/pkg/adapter"
)

// Match reports whether row satisfies every condition.
func Match(row adapter.Row, conds []adapter.Condition) (bool, error) {
	for _, c := range conds {
		ok, err := matchOne(row[c.Field], c.Operator, c.Value)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func matchOne(actual any, op string, expected any) (bool, error) {
	switch op {
	case adapter.OpIs:
		return matchIs(actual, expected), nil
	case adapter.OpIn:
		return matchIn(actual, expected)
	case adapter.OpLike, adapter.OpILike:
		return matchLike(actual, expected, op == adapter.OpILike)
	}

	if actual == nil || expected == nil {
		switch op {
		case adapter.OpEq, adapter.OpNeq, adapter.OpGt, adapter.OpGte, adapter.OpLt, adapter.OpLte:
			return false, nil
		}
		return false, fmt.Errorf("%w: %q", adapter.ErrUnsupportedOperator, op)
	}

	switch op {
	case adapter.OpEq:
		return Equal(actual, expected), nil
	case adapter.OpNeq:
		return !Equal(actual, expected), nil
	}

	c, ok := Compare(actual, expected)
	if !ok {
		switch op {
		case adapter.OpGt, adapter.OpGte, adapter.OpLt, adapter.OpLte:
			return false, nil
		}
		return false, fmt.Errorf("%w: %q", adapter.ErrUnsupportedOperator, op)
	}

	switch op {
	case adapter.OpGt:
		return c > 0, nil
	case adapter.OpGte:
		return c >= 0, nil
	case adapter.OpLt:
		return c < 0, nil
	case adapter.OpLte:
		return c <= 0, nil
	}
	return false, fmt.Errorf("%w: %q", adapter.ErrUnsupportedOperator, op)
}

func matchIs(actual, expected any) bool {
	if expected == nil {
		return actual == nil
	}
	if s, ok := expected.(string); ok && strings.EqualFold(s, "null") {
		return actual == nil
	}
	return actual != nil && Equal(actual, expected)
}

func matchIn(actual, expected any) (bool, error) {
	rv := reflect.ValueOf(expected)
	if expected == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return false, fmt.Errorf("%w: in expects a list, got %T", adapter.ErrUnsupportedOperator, expected)
	}
	if actual == nil {
		return false, nil
	}
	for i := range rv.Len() {
		if Equal(actual, rv.Index(i).Interface()) {
			return true, nil
		}
	}
	return false, nil
}

func matchLike(actual, expected any, fold bool) (bool, error) {
	pattern, ok := expected.(string)
	if !ok {
		return false, fmt.Errorf("%w: like expects a string pattern, got %T", adapter.ErrUnsupportedOperator, expected)
	}
	s, ok := actual.(string)
	if !ok {
		return false, nil
	}
	re, err := LikeRegexp(pattern, fold)
	if err != nil {
		return false, err
	}
	return re.MatchString(s), nil
}

// LikeRegexp converts an SQL LIKE pattern (% and _ wildcards) to a regexp.
func LikeRegexp(pattern string, fold bool) (*regexp.Regexp, error) {
	flags := "(?s)"
	if fold {
		flags = "(?is)"
	}
	return regexp.Compile(flags + LikePattern(pattern))
}

// LikePattern returns the anchored regular expression body for an SQL LIKE
// pattern, without flags.
func LikePattern(pattern string) string {
	var b strings.Builder
	b.WriteByte('^')
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteByte('.')
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteByte('$')
	return b.String()
}

// Equal compares two values, numbers by numeric value.
func Equal(a, b any) bool {
	if c, ok := Compare(a, b); ok {
		return c == 0
	}
	return reflect.DeepEqual(a, b)
}

// Compare orders two values of compatible kinds.
// ok is false when the values cannot be ordered against each other.
func Compare(a, b any) (int, bool) {
	if fa, okA := toFloat(a); okA {
		if fb, okB := toFloat(b); okB {
			return cmp.Compare(fa, fb), true
		}
		return 0, false
	}
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv), true
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0, true
			case !av:
				return -1, true
			default:
				return 1, true
			}
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv), true
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// Sort orders rows in place by the given keys. Nil sorts last in ascending order.
func Sort(rows []adapter.Row, orders []adapter.Order) {
	if len(orders) == 0 {
		return
	}
	slices.SortStableFunc(rows, func(a, b adapter.Row) int {
		for _, o := range orders {
			c := compareForSort(a[o.Field], b[o.Field])
			if !o.Ascending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
}

func compareForSort(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	if c, ok := Compare(a, b); ok {
		return c
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// Project returns a copy of row restricted to columns. Nil columns copy everything.
func Project(row adapter.Row, columns []string) adapter.Row {
	if columns == nil {
		return maps.Clone(row)
	}
	out := make(adapter.Row, len(columns))
	for _, col := range columns {
		if v, ok := row[col]; ok {
			out[col] = v
		}
	}
	return out
}

// Filter returns the rows matching conds, in their original order.
func Filter(rows []adapter.Row, conds []adapter.Condition) ([]adapter.Row, error) {
	var out []adapter.Row
	for _, row := range rows {
		ok, err := Match(row, conds)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

// Query runs the read part of a plan: filter, sort, limit, projection and the
// single-row unwrap. The response never aliases the input rows.
func Query(rows []adapter.Row, plan adapter.Plan) (adapter.Response, error) {
	matched, err := Filter(rows, plan.Conditions)
	if err != nil {
		return adapter.Response{}, err
	}

	Sort(matched, plan.Orders)

	if plan.Limit > 0 && len(matched) > plan.Limit {
		matched = matched[:plan.Limit]
	}

	columns := plan.ColumnList()
	out := make([]adapter.Row, len(matched))
	for i, row := range matched {
		out[i] = Project(row, columns)
	}

	return Wrap(out, plan.Single), nil
}

// Wrap shapes rows into Response data: the first row or nil when single is set.
func Wrap(rows []adapter.Row, single bool) adapter.Response {
	if !single {
		if rows == nil {
			rows = []adapter.Row{}
		}
		return adapter.Response{Data: rows}
	}
	if len(rows) == 0 {
		return adapter.Response{Data: nil}
	}
	return adapter.Response{Data: rows[0]}
}
