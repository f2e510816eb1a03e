// Package registry maps converter keys to factories so the mapper
// configuration can name converters in YAML.
package registry

import (
	"sort"
	"sync"

	"github.com/Ramsey-B/fern/pkg/converters"
	"github.com/Ramsey-B/fern/pkg/errors"
)

type Registry struct {
	mu        sync.RWMutex
	factories map[string]converters.Factory
}

func New() *Registry {
	return &Registry{
		factories: map[string]converters.Factory{},
	}
}

// Register adds or replaces the factory for key.
func (r *Registry) Register(key string, factory converters.Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[key] = factory
}

// Get constructs the converter registered under key.
func (r *Registry) Get(key string) (converters.Converter, error) {
	r.mu.RLock()
	factory, ok := r.factories[key]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NewConfigurationError("converter not found").AddConverter(key)
	}

	converter, err := factory()
	if err != nil {
		return nil, errors.WrapConfigurationError(err, "converter factory failed").AddConverter(key)
	}
	if converter == nil {
		return nil, errors.NewConfigurationError("converter factory returned nil").AddConverter(key)
	}
	return converter, nil
}

func (r *Registry) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[key]
	return ok
}

// Keys lists the registered keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.factories))
	for key := range r.factories {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// RegisterDefaults adds every built-in converter definition.
func RegisterDefaults(r *Registry) {
	for key, definition := range converters.Definitions {
		r.Register(key, definition.Factory)
	}
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry holding the built-in converters.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New()
		RegisterDefaults(defaultRegistry)
	})
	return defaultRegistry
}
