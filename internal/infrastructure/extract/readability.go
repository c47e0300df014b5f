package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	readability "github.com/go-shiori/go-readability"

	"newspulse/internal/ports"
)

const (
	defaultMaxBodyBytes = 10 << 20
	maxKeywords         = 10
	summarySentences    = 3
)

// Config tunes the extractor's transport limits.
type Config struct {
	UserAgent    string
	MaxBodyBytes int64
}

// Readability downloads article pages and recovers the main content with the
// Mozilla Readability algorithm: boilerplate removal, main-content detection,
// plus an extractive summary and frequency-ranked keywords.
type Readability struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
	logger       *slog.Logger
}

var _ ports.ArticleExtractor = (*Readability)(nil)

// NewReadability wires an HTTP client; nil falls back to a 15s-timeout default.
func NewReadability(client *http.Client, cfg Config, logger *slog.Logger) *Readability {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	return &Readability{
		client:       client,
		userAgent:    cfg.UserAgent,
		maxBodyBytes: cfg.MaxBodyBytes,
		logger:       logger,
	}
}

// Extract downloads the page and parses it into normalized article content.
// It errors when the download fails, the page is unparseable, or the
// resulting title/text is empty; the caller treats all of these as one
// non-fatal per-candidate failure.
func (r *Readability) Extract(ctx context.Context, rawURL string) (ports.Extracted, error) {
	body, finalURL, err := r.download(ctx, rawURL)
	if err != nil {
		return ports.Extracted{}, err
	}

	article, err := readability.FromReader(bytes.NewReader(body), finalURL)
	if err != nil {
		return ports.Extracted{}, fmt.Errorf("extract content: %w", err)
	}

	title := strings.TrimSpace(article.Title)
	text := strings.TrimSpace(article.TextContent)
	if title == "" || text == "" {
		return ports.Extracted{}, fmt.Errorf("no readable content at %s", rawURL)
	}

	published := time.Time{}
	if article.PublishedTime != nil {
		published = *article.PublishedTime
	}
	if published.IsZero() {
		published = metaPublishDate(body)
	}

	summary := strings.TrimSpace(article.Excerpt)
	if summary == "" {
		summary = leadSentences(text, summarySentences)
	}

	return ports.Extracted{
		Title:       title,
		Text:        text,
		Summary:     summary,
		Keywords:    keywords(title+" "+text, maxKeywords),
		PublishedAt: published,
	}, nil
}

func (r *Readability) download(ctx context.Context, rawURL string) ([]byte, *url.URL, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("download page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("page returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBodyBytes+1))
	if err != nil {
		return nil, nil, fmt.Errorf("read page body: %w", err)
	}
	if int64(len(body)) > r.maxBodyBytes {
		return nil, nil, fmt.Errorf("page body exceeds %d bytes", r.maxBodyBytes)
	}

	finalURL, err := url.Parse(rawURL)
	if err != nil {
		finalURL = nil
	}
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL
	}

	return body, finalURL, nil
}

// metaDateSelectors are the page-metadata locations checked for a publish
// date, in order of reliability.
var metaDateSelectors = []struct {
	selector string
	attr     string
}{
	{`meta[property="article:published_time"]`, "content"},
	{`meta[itemprop="datePublished"]`, "content"},
	{`meta[name="pubdate"]`, "content"},
	{`meta[name="date"]`, "content"},
	{`time[datetime]`, "datetime"},
}

// metaPublishDate recovers a publish date from page metadata. Returns the
// zero time when nothing parses; the fetcher falls back to harvest time.
func metaPublishDate(body []byte) time.Time {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return time.Time{}
	}

	for _, meta := range metaDateSelectors {
		value, ok := doc.Find(meta.selector).First().Attr(meta.attr)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		if parsed, err := dateparse.ParseAny(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}

	return time.Time{}
}
