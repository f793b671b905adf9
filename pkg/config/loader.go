package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type cacheKey struct {
	typ    string
	prefix string
}

var (
	cacheMu sync.RWMutex
	cache   = map[cacheKey]any{}

	dotenvOnce sync.Once
)

type options struct {
	prefix string
	files  []string
	fresh  bool
}

// Option configures Load.
type Option func(*options)

// WithPrefix prepends prefix to every env tag of the struct.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnvFiles loads the given dotenv files before parsing. Variables already
// present in the process environment win.
func WithEnvFiles(paths ...string) Option {
	return func(o *options) { o.files = append(o.files, paths...) }
}

// Fresh bypasses and refreshes the cache.
func Fresh() Option {
	return func(o *options) { o.fresh = true }
}

// Load parses the environment into a T using its `env` struct tags.
// The default .env file is read once per process when present. Successful
// results are cached per type and prefix.
//
//	type PGConfig struct {
//		URL string `env:"PG_URL,required"`
//	}
//
//	cfg, err := config.Load[PGConfig]()
func Load[T any](opts ...Option) (T, error) {
	var zero T

	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	dotenvOnce.Do(func() { _ = godotenv.Load() })
	if len(o.files) > 0 {
		if err := godotenv.Load(o.files...); err != nil {
			return zero, errors.Join(ErrEnvFile, err)
		}
	}

	key := cacheKey{typ: typeName[T](), prefix: o.prefix}
	if !o.fresh {
		cacheMu.RLock()
		cached, ok := cache[key]
		cacheMu.RUnlock()
		if ok {
			return cached.(T), nil
		}
	}

	var v T
	if err := env.ParseWithOptions(&v, env.Options{Prefix: o.prefix}); err != nil {
		return zero, errors.Join(ErrParsingConfig, err)
	}

	cacheMu.Lock()
	cache[key] = v
	cacheMu.Unlock()
	return v, nil
}

// MustLoad is Load that panics on failure.
func MustLoad[T any](opts ...Option) T {
	v, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return v
}

// ResetCache forgets every cached configuration.
func ResetCache() {
	cacheMu.Lock()
	clear(cache)
	cacheMu.Unlock()
}

func typeName[T any]() string {
	t := reflect.TypeFor[T]()
	return t.PkgPath() + "." + t.String()
}
