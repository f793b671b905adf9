// Package postgres is an adapter.Client for PostgreSQL built on pgx/v5.
//
// Each executed chain is compiled into one parameterized statement:
//
//	SELECT "id", "name" FROM "products" WHERE "price" > $1 ORDER BY "name" ASC LIMIT 10
//	INSERT INTO "products" ("name", "price") VALUES ($1, $2) RETURNING *
//	UPDATE "products" SET "status" = $1 WHERE "status" = $2 RETURNING *
//	DELETE FROM "products" WHERE "id" = $1 RETURNING *
//
// Identifiers are quoted with pgx.Identifier. The native operators are eq,
// neq, gt, gte, lt, lte, like, ilike, in (= ANY) and is (IS NULL, IS TRUE,
// IS FALSE, IS NOT DISTINCT FROM). Rows come back as maps through
// pgx.RowToMap.
//
// The package also carries the connection plumbing: Config (PG_* env vars),
// Connect with retry, Healthcheck, and goose based Migrate and MigrateFS.
//
//	cfg, _ := config.Load[postgres.Config]()
//	pool, err := postgres.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	activerecord.SetDefaultClient(postgres.New(pool))
package postgres
