package cli

import (
	"embed"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/activerecord/pkg/adapter/postgres"
	"github.com/dmitrymomot/activerecord/pkg/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

func newMigrateCommand(st *state, stdout io.Writer) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply SQL migrations to the postgres backend.",
		Long: `Apply SQL migrations to the postgres backend.

Without --dir the built-in migrations (the products table used by demo) are
applied. With --dir, or PG_MIGRATIONS_PATH, migrations are read from disk.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if st.settings.Backend != BackendPostgres {
				return ErrMigrateUnsupported
			}
			cfg, err := config.Load[postgres.Config]()
			if err != nil {
				return err
			}
			if dir != "" {
				cfg.MigrationsPath = dir
			}

			ctx := cmd.Context()
			pool, err := postgres.Connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			if cfg.MigrationsPath != "" {
				err = postgres.Migrate(ctx, pool, cfg, st.log)
			} else {
				err = postgres.MigrateFS(ctx, pool, migrations, "migrations", cfg.MigrationsTable, st.log)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(stdout, "migrations applied")
			return err
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory with goose SQL migrations")
	return cmd
}
