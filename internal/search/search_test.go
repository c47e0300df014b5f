package search

import (
	"context"
	"testing"
	"time"
)

type namedProvider struct {
	name string
}

func (p *namedProvider) Name() string  { return p.name }
func (p *namedProvider) Label() string { return p.name }

func (p *namedProvider) Search(context.Context, Request) ([]Candidate, error) {
	return nil, nil
}

func TestRegistryResolvesRegisteredProvider(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	bing := &namedProvider{name: "bing"}
	registry.Register(bing)
	registry.Register(&namedProvider{name: "rss"})

	got, err := registry.Resolve("bing")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got != bing {
		t.Fatal("resolved a different provider instance")
	}
}

func TestRegistryRejectsUnknownName(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	if _, err := registry.Resolve("duckduckgo"); err == nil {
		t.Fatal("expected error for unregistered provider")
	}
}

func TestRegistryRegisterReplaces(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register(&namedProvider{name: "bing"})
	replacement := &namedProvider{name: "bing"}
	registry.Register(replacement)

	got, err := registry.Resolve("bing")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got != replacement {
		t.Fatal("expected the later registration to win")
	}
}

func TestRequestHasDateRange(t *testing.T) {
	t.Parallel()

	var req Request
	if req.HasDateRange() {
		t.Fatal("empty request must not report a date range")
	}

	req.From = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	if req.HasDateRange() {
		t.Fatal("one bound is not a range")
	}

	req.To = time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	if !req.HasDateRange() {
		t.Fatal("both bounds set must report a range")
	}
}
