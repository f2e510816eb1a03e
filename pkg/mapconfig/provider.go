package mapconfig

import (
	"sync"
	"sync/atomic"

	"github.com/Ramsey-B/fern/pkg/errors"
)

// Loader produces a configuration.
type Loader func() (*Configuration, error)

// Provider loads the configuration on first use. A failed load is not
// remembered, so the next Get retries.
type Provider struct {
	load    Loader
	mu      sync.Mutex
	current atomic.Pointer[Configuration]
}

func NewProvider(load Loader) *Provider {
	return &Provider{load: load}
}

// Static wraps an already built configuration.
func Static(c *Configuration) *Provider {
	p := &Provider{}
	p.current.Store(c)
	return p
}

// FileLoader reads the configuration at path, or the built-in one when path
// is empty.
func FileLoader(path string, opts ...Option) Loader {
	return func() (*Configuration, error) {
		if path == "" {
			return Default(opts...), nil
		}
		return Load(path, opts...)
	}
}

func (p *Provider) Get() (*Configuration, error) {
	if c := p.current.Load(); c != nil {
		return c, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if c := p.current.Load(); c != nil {
		return c, nil
	}
	if p.load == nil {
		return nil, errors.NewConfigurationError("no configuration loader")
	}

	c, err := p.load()
	if err != nil {
		if _, ok := errors.AsConfigurationError(err); ok {
			return nil, err
		}
		return nil, errors.WrapConfigurationError(err, "failed to load configuration")
	}
	if c == nil {
		return nil, errors.NewConfigurationError("configuration loader returned nil")
	}
	p.current.Store(c)
	return c, nil
}

var (
	defaultProvider *Provider
	defaultOnce     sync.Once
)

// DefaultProvider serves the built-in configuration process wide.
func DefaultProvider() *Provider {
	defaultOnce.Do(func() {
		defaultProvider = NewProvider(FileLoader(""))
	})
	return defaultProvider
}
