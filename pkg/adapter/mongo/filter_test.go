package mongo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/activerecord/pkg/adapter"
	"github.com/dmitrymomot/activerecord/pkg/adapter/mongo"
)

func TestFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		conds []adapter.Condition
		want  bson.D
	}{
		{
			name: "empty",
			want: bson.D{},
		},
		{
			name:  "single equality",
			conds: []adapter.Condition{{Field: "type", Operator: adapter.OpEq, Value: "tshirt"}},
			want:  bson.D{{Key: "type", Value: bson.D{{Key: "$eq", Value: "tshirt"}}}},
		},
		{
			name: "several conditions use $and",
			conds: []adapter.Condition{
				{Field: "price", Operator: adapter.OpGt, Value: 1},
				{Field: "price", Operator: adapter.OpLte, Value: 9},
			},
			want: bson.D{{Key: "$and", Value: bson.A{
				bson.D{{Key: "price", Value: bson.D{{Key: "$gt", Value: 1}}}},
				bson.D{{Key: "price", Value: bson.D{{Key: "$lte", Value: 9}}}},
			}}},
		},
		{
			name:  "neq excludes null",
			conds: []adapter.Condition{{Field: "status", Operator: adapter.OpNeq, Value: "closed"}},
			want:  bson.D{{Key: "status", Value: bson.D{{Key: "$nin", Value: bson.A{"closed", nil}}}}},
		},
		{
			name:  "in",
			conds: []adapter.Condition{{Field: "id", Operator: adapter.OpIn, Value: []int{1, 2}}},
			want:  bson.D{{Key: "id", Value: bson.D{{Key: "$in", Value: bson.A{1, 2}}}}},
		},
		{
			name:  "ilike",
			conds: []adapter.Condition{{Field: "name", Operator: adapter.OpILike, Value: "t-%"}},
			want:  bson.D{{Key: "name", Value: bson.D{{Key: "$regex", Value: bson.Regex{Pattern: `^t-.*$`, Options: "is"}}}}},
		},
		{
			name:  "is null",
			conds: []adapter.Condition{{Field: "deleted_at", Operator: adapter.OpIs, Value: "null"}},
			want:  bson.D{{Key: "deleted_at", Value: bson.D{{Key: "$eq", Value: nil}}}},
		},
		{
			name:  "comparison with nil matches nothing",
			conds: []adapter.Condition{{Field: "price", Operator: adapter.OpEq, Value: nil}},
			want:  bson.D{{Key: "$expr", Value: false}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mongo.Filter(tt.conds)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilter_Errors(t *testing.T) {
	t.Parallel()

	_, err := mongo.Filter([]adapter.Condition{{Field: "a", Operator: "regex", Value: "x"}})
	assert.ErrorIs(t, err, adapter.ErrUnsupportedOperator)

	_, err = mongo.Filter([]adapter.Condition{{Field: "a", Operator: adapter.OpIn, Value: 3}})
	assert.ErrorIs(t, err, adapter.ErrUnsupportedOperator)

	_, err = mongo.Filter([]adapter.Condition{{Field: "a", Operator: adapter.OpLike, Value: 3}})
	assert.ErrorIs(t, err, adapter.ErrUnsupportedOperator)
}

func TestSortAndProjection(t *testing.T) {
	t.Parallel()

	assert.Nil(t, mongo.Sort(nil))
	assert.Equal(t,
		bson.D{{Key: "price", Value: -1}, {Key: "name", Value: 1}},
		mongo.Sort([]adapter.Order{{Field: "price"}, {Field: "name", Ascending: true}}),
	)

	assert.Equal(t, bson.D{{Key: "_id", Value: 0}}, mongo.Projection(nil))
	assert.Equal(t,
		bson.D{{Key: "id", Value: 1}, {Key: "name", Value: 1}, {Key: "_id", Value: 0}},
		mongo.Projection([]string{"id", "_id", "name"}),
	)
}
