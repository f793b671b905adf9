package cli

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/activerecord/pkg/adapter"
	"github.com/dmitrymomot/activerecord/pkg/adapter/memory"
	"github.com/dmitrymomot/activerecord/pkg/adapter/mongo"
	"github.com/dmitrymomot/activerecord/pkg/adapter/postgres"
	"github.com/dmitrymomot/activerecord/pkg/adapter/redis"
	"github.com/dmitrymomot/activerecord/pkg/config"
)

// backend is an opened store: the adapter client, a health probe and a
// release function.
type backend struct {
	client adapter.Client
	health func(context.Context) error
	close  func()
}

func openBackend(ctx context.Context, name string, log *slog.Logger) (*backend, error) {
	switch name {
	case BackendPostgres:
		cfg, err := config.Load[postgres.Config]()
		if err != nil {
			return nil, err
		}
		pool, err := postgres.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &backend{
			client: postgres.New(pool, postgres.WithLogger(log)),
			health: postgres.Healthcheck(pool),
			close:  pool.Close,
		}, nil

	case BackendMongo:
		cfg, err := config.Load[mongo.Config]()
		if err != nil {
			return nil, err
		}
		client, conn, err := mongo.Open(ctx, cfg, mongo.WithLogger(log))
		if err != nil {
			return nil, err
		}
		return &backend{
			client: client,
			health: mongo.Healthcheck(conn),
			close:  func() { _ = conn.Disconnect(context.WithoutCancel(ctx)) },
		}, nil

	case BackendRedis:
		cfg, err := config.Load[redis.Config]()
		if err != nil {
			return nil, err
		}
		rdb, err := redis.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &backend{
			client: redis.FromConfig(rdb, cfg, redis.WithLogger(log)),
			health: redis.Healthcheck(rdb),
			close:  func() { _ = rdb.Close() },
		}, nil

	case BackendMemory:
		return &backend{
			client: memory.New(),
			health: func(context.Context) error { return nil },
			close:  func() {},
		}, nil
	}
	return nil, ErrUnknownBackend
}
