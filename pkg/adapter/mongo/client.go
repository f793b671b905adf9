package mongo

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/activerecord/internal/rowset"
	"github.com/dmitrymomot/activerecord/pkg/adapter"
	"github.com/dmitrymomot/activerecord/pkg/logger"
)

// Client maps tables to collections of one database. Serial ids come from a
// counters collection holding one {_id: table, seq: n} document per table.
type Client struct {
	db       *mongo.Database
	counters string
	idField  string
	log      *slog.Logger
}

var _ adapter.Client = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

func WithCountersCollection(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.counters = name
		}
	}
}

// WithIDField changes the serial field. Defaults to "id".
func WithIDField(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.idField = name
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func New(db *mongo.Database, opts ...Option) *Client {
	c := &Client{
		db:       db,
		counters: "counters",
		idField:  "id",
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) From(table string) adapter.Builder {
	return adapter.NewChain(table, adapter.ExecutorFunc(c.execute))
}

func (c *Client) execute(ctx context.Context, plan adapter.Plan) (adapter.Response, error) {
	start := time.Now()
	coll := c.db.Collection(plan.Table)

	var (
		rows []adapter.Row
		err  error
	)
	switch plan.Operation {
	case adapter.OpSelect:
		rows, err = c.find(ctx, coll, plan)
	case adapter.OpInsert:
		rows, err = c.insert(ctx, coll, plan.Table, plan.Rows)
	case adapter.OpUpdate:
		rows, err = c.updateRows(ctx, coll, plan)
	case adapter.OpDelete:
		rows, err = c.deleteRows(ctx, coll, plan)
	default:
		err = adapter.ErrOperationConflict
	}
	if err != nil {
		return adapter.Response{}, err
	}

	c.log.DebugContext(ctx, "mongo command",
		logger.Backend("mongo"),
		logger.Table(plan.Table),
		logger.Operation(string(plan.Operation)),
		logger.Rows(len(rows)),
		logger.Duration(time.Since(start)),
	)
	return rowset.Wrap(rows, plan.Single), nil
}

func (c *Client) find(ctx context.Context, coll *mongo.Collection, plan adapter.Plan) ([]adapter.Row, error) {
	filter, err := Filter(plan.Conditions)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetProjection(Projection(plan.ColumnList()))
	if sort := Sort(plan.Orders); sort != nil {
		opts.SetSort(sort)
	}
	limit := plan.Limit
	if plan.Single {
		limit = 1
	}
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Join(ErrCommandFailed, err)
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Join(ErrCommandFailed, err)
	}
	return toRows(docs), nil
}

func (c *Client) insert(ctx context.Context, coll *mongo.Collection, table string, rows []adapter.Row) ([]adapter.Row, error) {
	missing := 0
	var highest int64
	for _, row := range rows {
		if id, ok := row[c.idField]; !ok || id == nil {
			missing++
		} else if n, ok := serial(id); ok && n > highest {
			highest = n
		}
	}

	if highest > 0 {
		if err := c.bumpCounter(ctx, table, highest); err != nil {
			return nil, err
		}
	}
	next := int64(0)
	if missing > 0 {
		last, err := c.nextIDs(ctx, table, int64(missing))
		if err != nil {
			return nil, err
		}
		next = last - int64(missing) + 1
	}

	out := make([]adapter.Row, len(rows))
	docs := make([]any, len(rows))
	for i, row := range rows {
		stored := maps.Clone(row)
		if stored == nil {
			stored = adapter.Row{}
		}
		if id, ok := stored[c.idField]; !ok || id == nil {
			stored[c.idField] = next
			next++
		}
		out[i] = stored
		docs[i] = stored
	}

	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return nil, errors.Join(ErrCommandFailed, err)
	}
	return out, nil
}

// updateRows and deleteRows resolve the matching _id values first, then mutate by
// _id. The pair is not atomic.
func (c *Client) updateRows(ctx context.Context, coll *mongo.Collection, plan adapter.Plan) ([]adapter.Row, error) {
	ids, err := c.matchingIDs(ctx, coll, plan.Conditions)
	if err != nil || len(ids) == 0 {
		return []adapter.Row{}, err
	}
	byID := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}

	set := make(bson.D, 0, len(plan.Values))
	for _, k := range adapter.SortedKeys(plan.Values) {
		set = append(set, bson.E{Key: k, Value: plan.Values[k]})
	}
	if _, err := coll.UpdateMany(ctx, byID, bson.D{{Key: "$set", Value: set}}); err != nil {
		return nil, errors.Join(ErrCommandFailed, err)
	}

	cur, err := coll.Find(ctx, byID, options.Find().SetProjection(Projection(nil)))
	if err != nil {
		return nil, errors.Join(ErrCommandFailed, err)
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Join(ErrCommandFailed, err)
	}
	return toRows(docs), nil
}

func (c *Client) deleteRows(ctx context.Context, coll *mongo.Collection, plan adapter.Plan) ([]adapter.Row, error) {
	filter, err := Filter(plan.Conditions)
	if err != nil {
		return nil, err
	}
	cur, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, errors.Join(ErrCommandFailed, err)
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Join(ErrCommandFailed, err)
	}
	if len(docs) == 0 {
		return []adapter.Row{}, nil
	}

	ids := make(bson.A, len(docs))
	for i, d := range docs {
		ids[i] = d["_id"]
	}
	if _, err := coll.DeleteMany(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}); err != nil {
		return nil, errors.Join(ErrCommandFailed, err)
	}
	return toRows(docs), nil
}

func (c *Client) matchingIDs(ctx context.Context, coll *mongo.Collection, conds []adapter.Condition) (bson.A, error) {
	filter, err := Filter(conds)
	if err != nil {
		return nil, err
	}
	cur, err := coll.Find(ctx, filter, options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Join(ErrCommandFailed, err)
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Join(ErrCommandFailed, err)
	}
	ids := make(bson.A, len(docs))
	for i, d := range docs {
		ids[i] = d["_id"]
	}
	return ids, nil
}

type counter struct {
	Seq int64 `bson:"seq"`
}

// nextIDs reserves n serial ids for table and returns the last one.
func (c *Client) nextIDs(ctx context.Context, table string, n int64) (int64, error) {
	var doc counter
	err := c.db.Collection(c.counters).FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: table}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: n}}}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, errors.Join(ErrNextID, err)
	}
	return doc.Seq, nil
}

// bumpCounter moves the counter past explicitly supplied ids.
func (c *Client) bumpCounter(ctx context.Context, table string, atLeast int64) error {
	_, err := c.db.Collection(c.counters).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: table}},
		bson.D{{Key: "$max", Value: bson.D{{Key: "seq", Value: atLeast}}}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return errors.Join(ErrNextID, err)
	}
	return nil
}

func toRows(docs []bson.M) []adapter.Row {
	rows := make([]adapter.Row, len(docs))
	for i, d := range docs {
		row := adapter.Row(d)
		delete(row, "_id")
		rows[i] = row
	}
	return rows
}

func serial(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}
