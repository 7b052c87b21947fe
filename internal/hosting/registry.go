package hosting

import (
	"sort"
	"strings"
)

// Factory constructs a provider from settings.
type Factory func(settings Settings) (Provider, error)

// Registry maps provider names to factories.
type Registry struct {
	factories map[ProviderName]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[ProviderName]Factory)}
}

// Register adds or replaces the factory for name.
func (registry *Registry) Register(name ProviderName, factory Factory) {
	registry.factories[normalizeProviderName(name)] = factory
}

// Create builds the named provider.
func (registry *Registry) Create(name ProviderName, settings Settings) (Provider, error) {
	factory, exists := registry.factories[normalizeProviderName(name)]
	if !exists {
		return nil, UnknownProviderError{Name: name}
	}
	if len(strings.TrimSpace(settings.Token)) == 0 {
		return nil, ErrTokenRequired
	}
	return factory(settings)
}

// Names returns the registered provider names in sorted order.
func (registry *Registry) Names() []string {
	names := make([]string, 0, len(registry.factories))
	for name := range registry.factories {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

func normalizeProviderName(name ProviderName) ProviderName {
	return ProviderName(strings.ToLower(strings.TrimSpace(string(name))))
}
