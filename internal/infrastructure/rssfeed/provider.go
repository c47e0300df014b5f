package rssfeed

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"newspulse/internal/search"
)

const defaultFeedURL = "https://www.bing.com/news/search"

// Config tunes the feed provider.
type Config struct {
	FeedURL    string
	MaxRetries int
	RetryDelay time.Duration
}

// Provider queries the Bing News RSS feed instead of scraping the HTML
// results page. It is an alternate search strategy behind the same registry;
// the feed carries no interval filter, so date bounds are applied to item
// publish times after parsing.
type Provider struct {
	parser     *gofeed.Parser
	feedURL    string
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
	sleep      func(time.Duration)
}

var _ search.Provider = (*Provider)(nil)

// New wires an HTTP client for feed fetches; nil falls back to a 15s-timeout
// default.
func New(client *http.Client, cfg Config, logger *slog.Logger) *Provider {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	parser := gofeed.NewParser()
	parser.Client = client
	if cfg.FeedURL == "" {
		cfg.FeedURL = defaultFeedURL
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	return &Provider{
		parser:     parser,
		feedURL:    cfg.FeedURL,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// Name identifies the provider inside the registry.
func (p *Provider) Name() string {
	return "rss"
}

// Label is the origin stamped on articles harvested through this provider.
func (p *Provider) Label() string {
	return "Bing News RSS"
}

// Search parses the feed with the same linear-backoff retry policy as the
// HTML provider. An empty feed after exhausting retries is an empty result,
// not an error.
func (p *Provider) Search(ctx context.Context, req search.Request) ([]search.Candidate, error) {
	query := strings.ReplaceAll(strings.TrimSpace(req.Company), " ", "+")
	feedURL := fmt.Sprintf("%s?q=%s&format=RSS", p.feedURL, query)

	var lastErr error
	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		feed, err := p.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			lastErr = err
			p.warn("feed fetch failed", "attempt", attempt, "error", err)
			if attempt < p.maxRetries {
				p.sleep(p.retryDelay * time.Duration(attempt))
			}
			continue
		}

		candidates := extractCandidates(feed, req)
		if len(candidates) == 0 {
			p.warn("feed contained no usable items", "attempt", attempt)
			if attempt < p.maxRetries {
				p.sleep(p.retryDelay * time.Duration(attempt))
				continue
			}
			return nil, nil
		}

		return candidates, nil
	}

	return nil, fmt.Errorf("%w after %d attempts: %v", search.ErrUnavailable, p.maxRetries, lastErr)
}

func extractCandidates(feed *gofeed.Feed, req search.Request) []search.Candidate {
	// Inclusive calendar bounds: day start through the last instant of the
	// end day, same construction as aggregate.FilterByDateRange.
	var start, end time.Time
	if req.HasDateRange() {
		start = time.Date(req.From.Year(), req.From.Month(), req.From.Day(), 0, 0, 0, 0, req.From.Location())
		end = time.Date(req.To.Year(), req.To.Month(), req.To.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), req.To.Location())
	}

	seen := map[string]struct{}{}
	var candidates []search.Candidate
	for _, item := range feed.Items {
		if req.Limit > 0 && len(candidates) >= req.Limit {
			break
		}
		if item.Link == "" {
			continue
		}
		if req.HasDateRange() && item.PublishedParsed != nil {
			published := *item.PublishedParsed
			if published.Before(start) || published.After(end) {
				continue
			}
		}
		if _, dup := seen[item.Link]; dup {
			continue
		}
		seen[item.Link] = struct{}{}
		candidates = append(candidates, search.Candidate{URL: item.Link})
	}
	return candidates
}

func (p *Provider) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
