// Package cli implements the arctl command tree.
package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/activerecord/pkg/logger"
)

const serviceName = "arctl"

// state is shared by all subcommands and filled in by the root's
// PersistentPreRunE.
type state struct {
	settings Settings
	log      *slog.Logger
}

// NewRootCommand builds the arctl command tree writing to the given streams.
func NewRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	st := &state{}
	var backend, level, env string

	rc := &cobra.Command{
		Use:   serviceName,
		Short: "arctl inspects and exercises activerecord storage backends.",
		Long: `arctl inspects and exercises activerecord storage backends.

The backend is chosen with --backend or AR_BACKEND. Connection settings are
read from the environment (and a .env file when present): PG_*, MONGODB_* and
REDIS_* variables for the postgres, mongo and redis backends.
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("backend") {
				s.Backend = backend
			}
			if flags.Changed("log-level") {
				s.LogLevel = level
			}
			if flags.Changed("env") {
				s.Env = env
			}
			if err := s.validate(); err != nil {
				return err
			}
			if _, err := logger.ParseLevel(s.LogLevel); err != nil {
				return err
			}

			st.settings = s
			st.log = logger.New(
				logger.WithEnvironment(s.Env, serviceName),
				logger.WithLevelName(s.LogLevel),
				logger.WithOutput(stderr),
				logger.WithAttr(logger.Backend(s.Backend)),
			)
			return nil
		},
	}

	pf := rc.PersistentFlags()
	pf.StringVarP(&backend, "backend", "b", BackendMemory, "storage backend: memory, postgres, mongo or redis")
	pf.StringVar(&level, "log-level", "info", "log level: debug, info, warn or error")
	pf.StringVar(&env, "env", "development", "environment preset for log formatting")

	rc.AddCommand(newPingCommand(st, stdout))
	rc.AddCommand(newMigrateCommand(st, stdout))
	rc.AddCommand(newDemoCommand(st, stdout))

	rc.SetIn(stdin)
	rc.SetOut(stdout)
	rc.SetErr(stderr)
	return rc
}
