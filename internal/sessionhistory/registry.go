package sessionhistory

import (
	"errors"
	"fmt"
	"strings"
)

// AllProviders selects every registered provider.
const AllProviders = "all"

var ErrUnknownProvider = errors.New("unknown provider")

type Registry struct {
	providers []Provider
}

func NewRegistry(providers ...Provider) *Registry {
	return &Registry{providers: providers}
}

// DefaultRegistry returns the built-in providers in display order.
func DefaultRegistry(opts Options) *Registry {
	return NewRegistry(
		NewCursor(opts),
		NewUnsupported(ProviderClaude, ClaudePaths, opts),
	)
}

func (r *Registry) Providers() []Provider {
	return append([]Provider(nil), r.providers...)
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		names = append(names, p.Name())
	}
	return names
}

func (r *Registry) Lookup(name string) (Provider, error) {
	name = strings.TrimSpace(name)
	for _, p := range r.providers {
		if strings.EqualFold(p.Name(), name) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownProvider, name, strings.Join(r.Names(), ", "))
}

// Select resolves a provider name, or "all", to the providers to query.
func (r *Registry) Select(name string) ([]Provider, error) {
	if strings.EqualFold(strings.TrimSpace(name), AllProviders) {
		return r.Providers(), nil
	}
	p, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return []Provider{p}, nil
}
