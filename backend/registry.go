package backend

import (
	"slices"
	"strings"
	"sync"
)

// Backend name constants.
const (
	// BackendWindow is the name of the gogpu window backend.
	BackendWindow = "window"
	// BackendTerminal is the name of the tcell terminal backend.
	BackendTerminal = "terminal"
	// BackendHeadless is the name of the backend that draws without presenting.
	BackendHeadless = "headless"
)

// Factory creates a new presenter instance.
type Factory func() Presenter

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for backend selection (first available wins).
	// Window > Terminal > Headless (Headless is always compiled in).
	backendPriority = []string{BackendWindow, BackendTerminal, BackendHeadless}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get returns a presenter by name.
// Returns nil if the backend is not registered.
func Get(name string) Presenter {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := backends[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available backend based on priority.
// Returns nil if no backends are registered.
func Default() Presenter {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok {
			if p := factory(); p != nil {
				return p
			}
		}
	}
	return nil
}

// Lookup returns the presenter registered under name, or the default one
// when name is empty.
func Lookup(name string) (Presenter, error) {
	var p Presenter
	if name == "" {
		p = Default()
	} else {
		p = Get(name)
	}
	if p == nil {
		return nil, &UnavailableError{Name: name, Available: Available()}
	}
	return p, nil
}

// UnavailableError reports a backend that is not compiled in.
type UnavailableError struct {
	Name      string
	Available []string
}

func (e *UnavailableError) Error() string {
	name := e.Name
	if name == "" {
		name = "default"
	}
	have := "none"
	if len(e.Available) > 0 {
		have = strings.Join(e.Available, ", ")
	}
	return "backend: " + name + " not available (have " + have + ")"
}

// Unwrap lets errors.Is match ErrBackendNotAvailable.
func (e *UnavailableError) Unwrap() error { return ErrBackendNotAvailable }
