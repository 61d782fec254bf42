package secret

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Resolver resolves secret references using registered providers.
// Values without the "secretref:" prefix are returned unchanged.
type Resolver struct {
	providers map[string]Provider
}

// NewResolver creates a resolver over the given providers.
func NewResolver(providers ...Provider) *Resolver {
	r := &Resolver{providers: make(map[string]Provider)}
	for _, p := range providers {
		if p != nil {
			r.providers[p.Name()] = p
		}
	}
	return r
}

// Default returns a resolver with the env and file providers registered.
func Default() *Resolver {
	return NewResolver(EnvProvider{}, FileProvider{})
}

// ResolveValue resolves a single configuration value. Literals pass
// through; secret references are dispatched to their provider.
func (r *Resolver) ResolveValue(ctx context.Context, value string) (string, error) {
	providerName, ref, ok := ParseRef(value)
	if !ok {
		if strings.HasPrefix(value, "secretref:") {
			return "", errors.New("secret: malformed secret reference")
		}
		return value, nil
	}

	provider, registered := r.providers[providerName]
	if !registered {
		return "", fmt.Errorf("secret: provider %q is not registered", providerName)
	}
	return provider.Resolve(ctx, ref)
}

// ParseRef parses a secret reference of the form:
//
//	secretref:<provider>:<ref>
func ParseRef(value string) (provider string, ref string, ok bool) {
	const prefix = "secretref:"
	if !strings.HasPrefix(value, prefix) {
		return "", "", false
	}
	parts := strings.SplitN(strings.TrimPrefix(value, prefix), ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
