package cli

import "errors"

var (
	ErrUnknownBackend     = errors.New("unknown backend, expected memory, postgres, mongo or redis")
	ErrMigrateUnsupported = errors.New("migrate is only supported by the postgres backend")
)
