package activerecord

import (
	"fmt"
	"sync"
)

// Registry keys model descriptors by name. Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	models map[string]*Model
}

// NewRegistry creates an empty registry, optionally pre-filled.
func NewRegistry(models ...*Model) (*Registry, error) {
	r := &Registry{models: make(map[string]*Model, len(models))}
	for _, m := range models {
		if err := r.Register(m); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds m under its name.
func (r *Registry) Register(m *Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.models[m.name]; ok {
		return fmt.Errorf("%w: %s", ErrModelExists, m.name)
	}
	r.models[m.name] = m
	return nil
}

// Lookup returns the model registered under name.
func (r *Registry) Lookup(name string) (*Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, name)
	}
	return m, nil
}

// MustLookup is Lookup that panics on a missing model.
func (r *Registry) MustLookup(name string) *Model {
	m, err := r.Lookup(name)
	if err != nil {
		panic(err)
	}
	return m
}

// Models returns the registered models sorted by name.
func (r *Registry) Models() []*Model {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Model, 0, len(r.models))
	for _, name := range sortedKeys(r.models) {
		out = append(out, r.models[name])
	}
	return out
}
