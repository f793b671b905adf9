package redis

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/activerecord/internal/rowset"
	"github.com/dmitrymomot/activerecord/pkg/adapter"
	"github.com/dmitrymomot/activerecord/pkg/logger"
)

// bumpSeq raises the sequence to ARGV[1] when it is behind.
var bumpSeq = redis.NewScript(`
local cur = tonumber(redis.call("GET", KEYS[1]) or "0")
local want = tonumber(ARGV[1])
if want > cur then
	redis.call("SET", KEYS[1], want)
	return want
end
return cur
`)

// Client stores every table as one hash of JSON rows keyed by id, plus a
// sequence key for serial ids. Filtering happens client side.
type Client struct {
	rdb        redis.UniversalClient
	prefix     string
	idField    string
	maxRetries int
	log        *slog.Logger
}

var _ adapter.Client = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithKeyPrefix namespaces every key. Defaults to "ar:".
func WithKeyPrefix(prefix string) Option {
	return func(c *Client) { c.prefix = prefix }
}

// WithIDField changes the serial field. Defaults to "id".
func WithIDField(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.idField = name
		}
	}
}

// WithMaxTxRetries bounds optimistic retries of update and delete.
func WithMaxTxRetries(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxRetries = n
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

func New(rdb redis.UniversalClient, opts ...Option) *Client {
	c := &Client{
		rdb:        rdb,
		prefix:     "ar:",
		idField:    "id",
		maxRetries: 5,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromConfig builds a client with the prefix and retry settings of cfg.
func FromConfig(rdb redis.UniversalClient, cfg Config, opts ...Option) *Client {
	base := []Option{WithKeyPrefix(cfg.KeyPrefix), WithMaxTxRetries(cfg.MaxTxRetries)}
	return New(rdb, append(base, opts...)...)
}

// RowsKey is the hash holding the rows of table.
func (c *Client) RowsKey(table string) string { return c.prefix + table + ":rows" }

// SeqKey is the serial counter of table.
func (c *Client) SeqKey(table string) string { return c.prefix + table + ":seq" }

func (c *Client) From(table string) adapter.Builder {
	return adapter.NewChain(table, adapter.ExecutorFunc(c.execute))
}

func (c *Client) execute(ctx context.Context, plan adapter.Plan) (adapter.Response, error) {
	start := time.Now()
	var (
		resp adapter.Response
		err  error
	)
	switch plan.Operation {
	case adapter.OpSelect:
		resp, err = c.query(ctx, plan)
	case adapter.OpInsert:
		resp, err = c.insert(ctx, plan)
	case adapter.OpUpdate, adapter.OpDelete:
		resp, err = c.mutate(ctx, plan)
	default:
		err = adapter.ErrOperationConflict
	}
	if err != nil {
		return adapter.Response{}, err
	}

	c.log.DebugContext(ctx, "redis command",
		logger.Backend("redis"),
		logger.Table(plan.Table),
		logger.Operation(string(plan.Operation)),
		logger.Rows(len(resp.Rows())),
		logger.Duration(time.Since(start)),
	)
	return resp, nil
}

// hashReader is satisfied by clients and by *redis.Tx inside Watch.
type hashReader interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

func (c *Client) load(ctx context.Context, rdb hashReader, table string) ([]adapter.Row, error) {
	raw, err := rdb.HGetAll(ctx, c.RowsKey(table)).Result()
	if err != nil {
		return nil, errors.Join(ErrCommandFailed, err)
	}
	rows := make([]adapter.Row, 0, len(raw))
	for _, data := range raw {
		row, err := DecodeRow(data)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	// hash order is random; start from id order so unordered reads are stable
	rowset.Sort(rows, []adapter.Order{{Field: c.idField, Ascending: true}})
	return rows, nil
}

func (c *Client) query(ctx context.Context, plan adapter.Plan) (adapter.Response, error) {
	rows, err := c.load(ctx, c.rdb, plan.Table)
	if err != nil {
		return adapter.Response{}, err
	}
	return rowset.Query(rows, plan)
}

func (c *Client) insert(ctx context.Context, plan adapter.Plan) (adapter.Response, error) {
	missing := 0
	var highest int64
	for _, row := range plan.Rows {
		if id, ok := row[c.idField]; !ok || id == nil {
			missing++
		} else if n, ok := serial(id); ok && n > highest {
			highest = n
		}
	}

	seqKey := c.SeqKey(plan.Table)
	if highest > 0 {
		if err := bumpSeq.Run(ctx, c.rdb, []string{seqKey}, highest).Err(); err != nil {
			return adapter.Response{}, errors.Join(ErrCommandFailed, err)
		}
	}
	var next int64
	if missing > 0 {
		last, err := c.rdb.IncrBy(ctx, seqKey, int64(missing)).Result()
		if err != nil {
			return adapter.Response{}, errors.Join(ErrCommandFailed, err)
		}
		next = last - int64(missing) + 1
	}

	out := make([]adapter.Row, len(plan.Rows))
	fields := make([]any, 0, 2*len(plan.Rows))
	for i, row := range plan.Rows {
		stored := maps.Clone(row)
		if stored == nil {
			stored = adapter.Row{}
		}
		if id, ok := stored[c.idField]; !ok || id == nil {
			stored[c.idField] = next
			next++
		}
		data, err := EncodeRow(stored)
		if err != nil {
			return adapter.Response{}, err
		}
		fields = append(fields, FieldKey(stored[c.idField]), data)
		out[i] = stored
	}

	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, c.RowsKey(plan.Table), fields...)
		return nil
	})
	if err != nil {
		return adapter.Response{}, errors.Join(ErrCommandFailed, err)
	}
	return adapter.Response{Data: out}, nil
}

// mutate runs update and delete as optimistic transactions on the rows hash.
// Rows are keyed by id, so an update may not change it.
func (c *Client) mutate(ctx context.Context, plan adapter.Plan) (adapter.Response, error) {
	if _, ok := plan.Values[c.idField]; ok && plan.Operation == adapter.OpUpdate {
		return adapter.Response{}, ErrIDUpdate
	}
	key := c.RowsKey(plan.Table)
	var affected []adapter.Row

	txf := func(tx *redis.Tx) error {
		rows, err := c.load(ctx, tx, plan.Table)
		if err != nil {
			return err
		}
		matched, err := rowset.Filter(rows, plan.Conditions)
		if err != nil {
			return err
		}
		affected = make([]adapter.Row, 0, len(matched))
		if len(matched) == 0 {
			return nil
		}

		var fields []any
		var ids []string
		for _, row := range matched {
			id := FieldKey(row[c.idField])
			if plan.Operation == adapter.OpDelete {
				ids = append(ids, id)
				affected = append(affected, row)
				continue
			}
			maps.Copy(row, plan.Values)
			data, err := EncodeRow(row)
			if err != nil {
				return err
			}
			fields = append(fields, id, data)
			affected = append(affected, row)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if plan.Operation == adapter.OpDelete {
				pipe.HDel(ctx, key, ids...)
			} else {
				pipe.HSet(ctx, key, fields...)
			}
			return nil
		})
		return err
	}

	for range c.maxRetries {
		err := c.rdb.Watch(ctx, txf, key)
		if err == nil {
			return rowset.Wrap(affected, plan.Single), nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, adapter.ErrUnsupportedOperator) || errors.Is(err, ErrCorruptRow) {
			return adapter.Response{}, err
		}
		return adapter.Response{}, errors.Join(ErrCommandFailed, err)
	}
	return adapter.Response{}, ErrTxConflict
}

func serial(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	}
	return 0, false
}
