package authenticator

import (
	"sort"
	"sync"

	"github.com/go-acme/lego/v4/lego"
)

// Authenticator solves domain-validation challenges for one mechanism.
type Authenticator interface {
	// Name returns the authenticator name (standalone, webroot, cloudflare)
	Name() string

	// Prepare validates readiness. It may perform environment checks
	// (port availability, directory existence) and fails the renewal
	// attempt when they do not pass.
	Prepare() error

	// Register installs the authenticator's challenge provider on an
	// ACME client.
	Register(client *lego.Client) error
}

// Factory constructs an authenticator from a typed configuration.
type Factory func(cfg *Config) (Authenticator, error)

var (
	mu       sync.RWMutex
	registry = make(map[string]Factory)
)

// Register adds a factory to the registry under name. Later
// registrations with the same name replace earlier ones.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = f
}

// Get returns the factory registered under name.
func Get(name string) (Factory, bool) {
	mu.RLock()
	defer mu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// FindAll returns a copy of the registry.
func FindAll() map[string]Factory {
	mu.RLock()
	defer mu.RUnlock()
	all := make(map[string]Factory, len(registry))
	for name, f := range registry {
		all[name] = f
	}
	return all
}

// Available returns all registered authenticator names, sorted.
func Available() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
