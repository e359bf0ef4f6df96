package recording

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ErrUnknownBackend is returned by NewBackend for a name nobody registered.
var ErrUnknownBackend = errors.New("recording: unknown backend")

// BackendFactory makes a fresh backend for one playback.
type BackendFactory func() Backend

// factories maps output names to backend constructors. Backend packages
// fill it from init, so a blank import is enough to enable one:
//
//	import _ "github.com/gogpu/rosette/recording/backends/gcode"
type factories struct {
	mu sync.RWMutex
	m  map[string]BackendFactory
}

var registry = factories{m: map[string]BackendFactory{}}

func (f *factories) add(name string, factory BackendFactory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch {
	case factory == nil:
		return fmt.Errorf("recording: nil factory for %q", name)
	case f.m[name] != nil:
		return fmt.Errorf("recording: backend %q registered twice", name)
	}
	f.m[name] = factory
	return nil
}

func (f *factories) get(name string) BackendFactory {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.m[name]
}

// Register makes a backend available to NewBackend under name. It panics
// on a nil factory or a name already in use, both programming errors
// caught at init.
func Register(name string, factory BackendFactory) {
	if err := registry.add(name, factory); err != nil {
		panic(err)
	}
}

// Unregister forgets name. Unknown names are ignored.
func Unregister(name string) {
	registry.mu.Lock()
	delete(registry.m, name)
	registry.mu.Unlock()
}

// NewBackend returns a new backend registered as name.
func NewBackend(name string) (Backend, error) {
	factory := registry.get(name)
	if factory == nil {
		return nil, fmt.Errorf("%w %q (forgotten import?)", ErrUnknownBackend, name)
	}
	return factory(), nil
}

// MustBackend is NewBackend for names known to be registered.
func MustBackend(name string) Backend {
	b, err := NewBackend(name)
	if err != nil {
		panic(err)
	}
	return b
}

// IsRegistered reports whether NewBackend(name) would succeed.
func IsRegistered(name string) bool {
	return registry.get(name) != nil
}

// Backends lists the registered names in sorted order.
func Backends() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return slices.Sorted(maps.Keys(registry.m))
}
