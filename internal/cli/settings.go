package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/activerecord/pkg/config"
)

// Backends accepted by --backend.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendRedis    = "redis"
)

// Settings are read from AR_* variables and overridden by flags.
type Settings struct {
	Backend  string `env:"AR_BACKEND" envDefault:"memory"`
	LogLevel string `env:"AR_LOG_LEVEL" envDefault:"info"`
	Env      string `env:"AR_ENV" envDefault:"development"`
}

func loadSettings() (Settings, error) {
	s, err := config.Load[Settings]()
	if err != nil {
		return Settings{}, err
	}
	s.Backend = strings.ToLower(s.Backend)
	return s, nil
}

func (s Settings) validate() error {
	switch s.Backend {
	case BackendMemory, BackendPostgres, BackendMongo, BackendRedis:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownBackend, s.Backend)
}
