package hatchet

import (
	"sync"

	"github.com/GJakobi/hatchet-mcp/internal/config"
)

// Accessor lazily builds and caches a single Client for the process
// lifetime. The first call wins; every later call returns the same handle,
// or the same construction error. There is no refresh path: if the token
// expires, the process must be restarted.
type Accessor struct {
	build  func() (*Client, error)
	once   sync.Once
	client *Client
	err    error
}

// NewAccessor creates an Accessor around a build function. The function
// runs at most once, no matter how many goroutines call Get concurrently.
func NewAccessor(build func() (*Client, error)) *Accessor {
	return &Accessor{build: build}
}

// Get returns the cached client, building it on first use.
func (a *Accessor) Get() (*Client, error) {
	a.once.Do(func() {
		a.client, a.err = a.build()
	})
	return a.client, a.err
}

var defaultAccessor = NewAccessor(func() (*Client, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}
	return NewClient(cfg)
})

// Default returns the process-wide client, constructed from the environment
// on first use. Construction errors propagate to the first caller and to
// every caller after it.
func Default() (API, error) {
	c, err := defaultAccessor.Get()
	if err != nil {
		return nil, err
	}
	return c, nil
}
