package bing

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"newspulse/internal/search"
)

const defaultBaseURL = "https://www.bing.com/news/search"

// browserHeaders presents the scraper as a standard browser. The User-Agent
// is set separately so it can be overridden per deployment.
var browserHeaders = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.5",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
}

// linkSelectors is the prioritized chain of news-card selectors. Order is
// behavior-determining: the first selector yielding at least one candidate
// wins, so the chain must be tried in the same sequence every time.
var linkSelectors = []string{"a.title", "div.news-card", "div.news-item"}

// Config tunes the provider's transport and retry policy.
type Config struct {
	BaseURL    string
	UserAgent  string
	MaxRetries int
	RetryDelay time.Duration
}

// Provider queries the Bing News results page and extracts candidate article
// links. Transport failures and empty selector results are retried with
// linear backoff (RetryDelay * attempt) up to MaxRetries total attempts.
type Provider struct {
	client     *http.Client
	baseURL    string
	userAgent  string
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
	sleep      func(time.Duration)
}

var _ search.Provider = (*Provider)(nil)

// New wires an HTTP client; nil falls back to a 15s-timeout default.
func New(client *http.Client, cfg Config, logger *slog.Logger) *Provider {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	return &Provider{
		client:     client,
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// Name identifies the provider inside the registry.
func (p *Provider) Name() string {
	return "bing"
}

// Label is the origin stamped on articles harvested through this provider.
func (p *Provider) Label() string {
	return "Bing News"
}

// Search fetches the results page and extracts candidate links. Exhausting
// the retry budget on transport failures returns search.ErrUnavailable;
// exhausting it because no selector matched returns an empty, error-free
// result.
func (p *Provider) Search(ctx context.Context, req search.Request) ([]search.Candidate, error) {
	pageURL := buildSearchURL(p.baseURL, req)

	var lastErr error
	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		doc, err := p.fetchDocument(ctx, pageURL)
		if err != nil {
			lastErr = err
			p.warn("search page fetch failed", "attempt", attempt, "error", err)
			if attempt < p.maxRetries {
				p.sleep(p.retryDelay * time.Duration(attempt))
			}
			continue
		}

		candidates := extractCandidates(doc, req.Limit)
		if len(candidates) == 0 {
			p.warn("no news cards found in the response", "attempt", attempt)
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

func (p *Provider) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for key, value := range browserHeaders {
		req.Header.Set(key, value)
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request results page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("results page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	return doc, nil
}

// buildSearchURL substitutes spaces in the company name and, when a date
// range is present, encodes it in Bing's interval syntax. The query string
// is assembled literally because the '+' separators and the pre-encoded
// interval quotes must survive as-is.
func buildSearchURL(base string, req search.Request) string {
	query := strings.ReplaceAll(strings.TrimSpace(req.Company), " ", "+")

	interval := ""
	if req.HasDateRange() {
		interval = fmt.Sprintf("&qft=interval%%3d%%22%s..%s%%22",
			req.From.Format("2006-01-02"), req.To.Format("2006-01-02"))
	}

	return fmt.Sprintf("%s?q=%s%s&FORM=HDRSC6", base, query, interval)
}

// extractCandidates walks the selector chain in fixed priority order and
// returns links from the first selector that yields any, deduplicated by URL
// and capped at limit.
func extractCandidates(doc *goquery.Document, limit int) []search.Candidate {
	for _, selector := range linkSelectors {
		nodes := doc.Find(selector)
		if nodes.Length() == 0 {
			continue
		}

		seen := map[string]struct{}{}
		var candidates []search.Candidate
		nodes.EachWithBreak(func(_ int, node *goquery.Selection) bool {
			if limit > 0 && len(candidates) >= limit {
				return false
			}
			href := candidateHref(node)
			if href == "" || !strings.HasPrefix(href, "http") {
				return true
			}
			if _, dup := seen[href]; dup {
				return true
			}
			seen[href] = struct{}{}
			candidates = append(candidates, search.Candidate{URL: href})
			return true
		})

		if len(candidates) > 0 {
			return candidates
		}
	}

	return nil
}

// candidateHref pulls the article link from a matched card: the node's own
// href for anchor selectors, otherwise the first nested link.
func candidateHref(node *goquery.Selection) string {
	if href, ok := node.Attr("href"); ok && href != "" {
		return href
	}
	if href, ok := node.Find("a.title").First().Attr("href"); ok && href != "" {
		return href
	}
	href, _ := node.Find("a[href]").First().Attr("href")
	return href
}

func (p *Provider) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
