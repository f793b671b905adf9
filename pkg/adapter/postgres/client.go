package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/activerecord/internal/rowset"
	"github.com/dmitrymomot/activerecord/pkg/adapter"
	"github.com/dmitrymomot/activerecord/pkg/logger"
)

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Client is an adapter.Client that runs compiled plans through pgx.
type Client struct {
	db  Querier
	log *slog.Logger
}

var _ adapter.Client = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for statement tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New wraps db, typically a *pgxpool.Pool from Connect.
func New(db Querier, opts ...Option) *Client {
	c := &Client{db: db, log: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTx returns a client bound to tx that shares the logger.
func (c *Client) WithTx(tx pgx.Tx) *Client {
	return &Client{db: tx, log: c.log}
}

func (c *Client) From(table string) adapter.Builder {
	return adapter.NewChain(table, adapter.ExecutorFunc(c.execute))
}

func (c *Client) execute(ctx context.Context, plan adapter.Plan) (adapter.Response, error) {
	q, err := Compile(plan)
	if err != nil {
		return adapter.Response{}, err
	}

	start := time.Now()
	rows, err := c.db.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return adapter.Response{}, errors.Join(ErrQueryFailed, err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return adapter.Response{}, errors.Join(ErrQueryFailed, err)
	}
	collected = normalizeRows(collected)

	c.log.DebugContext(ctx, "postgres query",
		logger.Backend("postgres"),
		logger.Table(plan.Table),
		logger.Operation(string(plan.Operation)),
		slog.String("sql", q.SQL),
		logger.Rows(len(collected)),
		logger.Duration(time.Since(start)),
	)
	return rowset.Wrap(collected, plan.Single), nil
}
