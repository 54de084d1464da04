package pdfrender

import (
	"fmt"
	"sort"
	"sync"
)

// BackendFactory creates a backend from a Config. Factories are
// registered with Register and called by NewBackend.
type BackendFactory func(cfg Config) Backend

var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
)

// Register makes a backend available by name. It is typically called
// from init in the backend's package, following the database/sql driver
// pattern:
//
//	func init() {
//	    pdfrender.Register("trace", func(cfg pdfrender.Config) pdfrender.Backend {
//	        return New(cfg.FontCache)
//	    })
//	}
//
// Register panics if factory is nil or name is already registered.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("pdfrender: Register factory is nil")
	}
	if _, dup := backends[name]; dup {
		panic("pdfrender: Register called twice for " + name)
	}
	backends[name] = factory
}

// Unregister removes a backend from the registry. It is a no-op for
// unknown names.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// NewBackend creates a backend by name. The error wraps
// ErrUnknownBackend when nothing is registered under name.
//
//	import _ "github.com/gogpu/pdfrender/backend/trace"
//
//	b, err := pdfrender.NewBackend("trace")
func NewBackend(name string, opts ...Option) (Backend, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (forgotten import?)", ErrUnknownBackend, name)
	}
	return factory(NewConfig(opts...)), nil
}

// MustBackend is like NewBackend but panics on error.
func MustBackend(name string, opts ...Option) Backend {
	b, err := NewBackend(name, opts...)
	if err != nil {
		panic(err)
	}
	return b
}

// Backends returns the registered names in sorted order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Count returns the number of registered backends.
func Count() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(backends)
}
