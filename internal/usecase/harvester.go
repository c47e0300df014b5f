package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"newspulse/internal/domain"
	"newspulse/internal/ports"
	"newspulse/internal/search"
)

// defaultOverFetch is the candidate over-fetch factor: the harvester asks
// the provider for this many times the desired count to absorb per-article
// extraction failures.
const defaultOverFetch = 3

// HarvesterDeps wires the driven adapters into the harvest workflow.
type HarvesterDeps struct {
	Provider   search.Provider
	Fetcher    *Fetcher
	Repository ports.HarvestRepository
	OverFetch  int
	Logger     *slog.Logger
}

// Harvester runs one end-to-end harvest: search, sequential candidate
// fetching, truncation. Each harvest operates on its own local state only,
// so concurrent harvests never share retry counters or caches.
type Harvester struct {
	provider   search.Provider
	fetcher    *Fetcher
	repository ports.HarvestRepository
	overFetch  int
	logger     *slog.Logger
}

// NewHarvester constructs the orchestration component.
func NewHarvester(deps HarvesterDeps) *Harvester {
	overFetch := deps.OverFetch
	if overFetch <= 0 {
		overFetch = defaultOverFetch
	}
	return &Harvester{
		provider:   deps.Provider,
		fetcher:    deps.Fetcher,
		repository: deps.Repository,
		overFetch:  overFetch,
		logger:     deps.Logger,
	}
}

// Harvest returns at most req.Count articles in provider order. The three
// caller-visible outcomes stay distinguishable: a populated (possibly short)
// result, an empty result with a nil error when nothing was found, or an
// error for transport exhaustion and bad input.
func (h *Harvester) Harvest(ctx context.Context, req domain.HarvestRequest) ([]domain.Article, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	candidates, err := h.provider.Search(ctx, search.Request{
		Company: req.Company,
		Limit:   req.Count * h.overFetch,
		From:    req.From,
		To:      req.To,
	})
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", req.Company, err)
	}

	h.debug("candidates extracted", "company", req.Company, "count", len(candidates))

	articles := make([]domain.Article, 0, req.Count)
	for _, candidate := range candidates {
		if len(articles) >= req.Count {
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		article, err := h.fetcher.Fetch(ctx, candidate)
		if err != nil {
			h.warn("skipping candidate", "url", candidate.URL, "error", err)
			continue
		}

		h.info("article processed", "title", article.Title, "sentiment", article.Sentiment)
		articles = append(articles, article)
	}

	if h.repository != nil && len(articles) > 0 {
		if id, err := h.repository.SaveHarvest(ctx, req.Company, articles); err != nil {
			// A storage failure must not discard a finished harvest.
			h.warn("persist harvest failed", "company", req.Company, "error", err)
		} else if id != "" {
			h.debug("harvest persisted", "id", id)
		}
	}

	return articles, nil
}

func (h *Harvester) info(msg string, args ...any) {
	if h.logger != nil {
		h.logger.Info(msg, args...)
	}
}

func (h *Harvester) warn(msg string, args ...any) {
	if h.logger != nil {
		h.logger.Warn(msg, args...)
	}
}

func (h *Harvester) debug(msg string, args ...any) {
	if h.logger != nil {
		h.logger.Debug(msg, args...)
	}
}
