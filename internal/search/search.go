package search

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnavailable marks transport-level failures against a search provider
// that survived the full retry budget. Callers distinguish it from an empty
// candidate list, which is a valid terminal state.
var ErrUnavailable = errors.New("search provider unavailable")

// Candidate is a URL extracted from search-results content, not yet confirmed
// to be a parseable article.
type Candidate struct {
	URL string
}

// Request carries all parameters required to execute one provider query.
// Limit bounds how many candidates the provider may return.
type Request struct {
	Company string
	Limit   int
	From    time.Time
	To      time.Time
}

// HasDateRange reports whether both calendar bounds are set.
func (r Request) HasDateRange() bool {
	return !r.From.IsZero() && !r.To.IsZero()
}

// Provider captures a single search strategy (Bing results page, RSS, etc.).
// Search returns candidates in provider order; an empty slice with a nil
// error means the provider found nothing after exhausting its retries.
type Provider interface {
	Name() string
	Label() string
	Search(ctx context.Context, req Request) ([]Candidate, error)
}

// Registry keeps a mapping from provider names to their implementations.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: map[string]Provider{}}
}

// Register adds or replaces a provider implementation.
func (r *Registry) Register(provider Provider) {
	if r.providers == nil {
		r.providers = map[string]Provider{}
	}
	r.providers[provider.Name()] = provider
}

// Resolve returns a provider by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Provider, error) {
	if provider, ok := r.providers[name]; ok {
		return provider, nil
	}
	return nil, fmt.Errorf("search provider %s is not registered", name)
}
