package mongo

import (
	"fmt"
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/activerecord/internal/rowset"
	"github.com/dmitrymomot/activerecord/pkg/adapter"
)

var comparisons = map[string]string{
	adapter.OpEq:  "$eq",
	adapter.OpGt:  "$gt",
	adapter.OpGte: "$gte",
	adapter.OpLt:  "$lt",
	adapter.OpLte: "$lte",
}

// never matches any document.
var never = bson.D{{Key: "$expr", Value: false}}

// Filter translates conditions into a query document. Several conditions are
// combined with $and. Comparisons against nil match nothing, as in SQL.
func Filter(conds []adapter.Condition) (bson.D, error) {
	parts := make([]bson.D, 0, len(conds))
	for _, c := range conds {
		part, err := condition(c)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	switch len(parts) {
	case 0:
		return bson.D{}, nil
	case 1:
		return parts[0], nil
	}
	and := make(bson.A, len(parts))
	for i, p := range parts {
		and[i] = p
	}
	return bson.D{{Key: "$and", Value: and}}, nil
}

func condition(c adapter.Condition) (bson.D, error) {
	field := func(op string, v any) bson.D {
		return bson.D{{Key: c.Field, Value: bson.D{{Key: op, Value: v}}}}
	}

	switch c.Operator {
	case adapter.OpIs:
		if s, ok := c.Value.(string); ok && strings.EqualFold(s, "null") {
			return field("$eq", nil), nil
		}
		return field("$eq", c.Value), nil
	case adapter.OpIn:
		rv := reflect.ValueOf(c.Value)
		if c.Value == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
			return nil, fmt.Errorf("%w: in expects a list, got %T", adapter.ErrUnsupportedOperator, c.Value)
		}
		values := make(bson.A, rv.Len())
		for i := range rv.Len() {
			values[i] = rv.Index(i).Interface()
		}
		return field("$in", values), nil
	case adapter.OpLike, adapter.OpILike:
		pattern, ok := c.Value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: like expects a string pattern, got %T", adapter.ErrUnsupportedOperator, c.Value)
		}
		opts := "s"
		if c.Operator == adapter.OpILike {
			opts = "is"
		}
		return field("$regex", bson.Regex{Pattern: rowset.LikePattern(pattern), Options: opts}), nil
	case adapter.OpNeq:
		if c.Value == nil {
			return never, nil
		}
		return field("$nin", bson.A{c.Value, nil}), nil
	}

	op, ok := comparisons[c.Operator]
	if !ok {
		return nil, fmt.Errorf("%w: %q", adapter.ErrUnsupportedOperator, c.Operator)
	}
	if c.Value == nil {
		return never, nil
	}
	return field(op, c.Value), nil
}

// Sort translates orders into a sort document.
func Sort(orders []adapter.Order) bson.D {
	if len(orders) == 0 {
		return nil
	}
	sort := make(bson.D, len(orders))
	for i, o := range orders {
		dir := -1
		if o.Ascending {
			dir = 1
		}
		sort[i] = bson.E{Key: o.Field, Value: dir}
	}
	return sort
}

// Projection selects columns and always hides _id.
func Projection(columns []string) bson.D {
	proj := make(bson.D, 0, len(columns)+1)
	for _, c := range columns {
		if c == "_id" {
			continue
		}
		proj = append(proj, bson.E{Key: c, Value: 1})
	}
	return append(proj, bson.E{Key: "_id", Value: 0})
}
