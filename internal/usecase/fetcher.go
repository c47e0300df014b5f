package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"newspulse/internal/domain"
	"newspulse/internal/ports"
	"newspulse/internal/search"
)

// FetcherDeps wires the extraction and classification capabilities into the
// fetcher. Both are explicit dependencies, constructed once and passed in.
type FetcherDeps struct {
	Extractor  ports.ArticleExtractor
	Classifier ports.SentimentClassifier
	Source     string
	DelayMin   time.Duration
	DelayMax   time.Duration
	Logger     *slog.Logger
}

// Fetcher turns one candidate URL into a normalized article record. A failed
// fetch is non-fatal to the batch: the harvester logs it and moves on.
type Fetcher struct {
	extractor  ports.ArticleExtractor
	classifier ports.SentimentClassifier
	source     string
	delayMin   time.Duration
	delayMax   time.Duration
	logger     *slog.Logger
	sleep      func(time.Duration)
	now        func() time.Time
}

// NewFetcher constructs the per-candidate fetch step.
func NewFetcher(deps FetcherDeps) *Fetcher {
	return &Fetcher{
		extractor:  deps.Extractor,
		classifier: deps.Classifier,
		source:     deps.Source,
		delayMin:   deps.DelayMin,
		delayMax:   deps.DelayMax,
		logger:     deps.Logger,
		sleep:      time.Sleep,
		now:        time.Now,
	}
}

// Fetch downloads and parses the candidate page, classifies its sentiment,
// and assembles the article record. An article is only returned with a
// non-empty title and text; anything less is an error and the candidate is
// skipped by the caller.
func (f *Fetcher) Fetch(ctx context.Context, candidate search.Candidate) (domain.Article, error) {
	// Randomized pacing between article requests.
	f.pace()

	extracted, err := f.extractor.Extract(ctx, candidate.URL)
	if err != nil {
		return domain.Article{}, fmt.Errorf("extract %s: %w", candidate.URL, err)
	}
	if extracted.Title == "" || extracted.Text == "" {
		return domain.Article{}, fmt.Errorf("empty article content at %s", candidate.URL)
	}

	sentiment, err := f.classifier.Classify(ctx, extracted.Text)
	if err != nil {
		// A classifier outage must not cost us the article.
		f.warn("sentiment classification failed, defaulting to neutral", "url", candidate.URL, "error", err)
		sentiment = domain.SentimentNeutral
	}

	published := extracted.PublishedAt
	if published.IsZero() {
		published = f.now()
	}

	topics := extracted.Keywords
	if len(topics) > domain.MaxTopics {
		topics = topics[:domain.MaxTopics]
	}

	return domain.Article{
		Title:       extracted.Title,
		Summary:     extracted.Summary,
		Text:        extracted.Text,
		URL:         candidate.URL,
		Sentiment:   sentiment,
		Topics:      topics,
		Source:      f.source,
		PublishedAt: published,
	}, nil
}

// pace sleeps a uniformly random duration within the configured bounds.
func (f *Fetcher) pace() {
	if f.delayMax <= 0 || f.delayMax < f.delayMin {
		return
	}
	delay := f.delayMin
	if span := f.delayMax - f.delayMin; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}
	if delay > 0 {
		f.sleep(delay)
	}
}

func (f *Fetcher) warn(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Warn(msg, args...)
	}
}
