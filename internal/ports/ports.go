package ports

import (
	"context"
	"time"

	"newspulse/internal/domain"
)

// Extracted holds the content an extractor recovered from an article page.
// PublishedAt stays zero when the page exposes no usable date.
type Extracted struct {
	Title       string
	Text        string
	Summary     string
	Keywords    []string
	PublishedAt time.Time
}

// ArticleExtractor downloads a candidate page and recovers the main article
// content, stripping boilerplate and navigation.
type ArticleExtractor interface {
	Extract(ctx context.Context, url string) (Extracted, error)
}

// SentimentClassifier assigns one of the three sentiment labels to text.
type SentimentClassifier interface {
	Classify(ctx context.Context, text string) (domain.Sentiment, error)
}

// HarvestRepository persists finished harvests for history and audit.
type HarvestRepository interface {
	SaveHarvest(ctx context.Context, company string, articles []domain.Article) (string, error)
}
