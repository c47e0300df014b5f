package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentiment is the label assigned to an article by the classifier.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// SentimentPriority lists all labels in fixed order. Aggregation tie-breaks
// resolve toward the earlier label (Positive > Neutral > Negative).
var SentimentPriority = []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}

// MaxTopics caps the derived topic list per article.
const MaxTopics = 5

// MaxHarvestCount bounds how many articles a single harvest may return.
const MaxHarvestCount = 15

// Article is one fetched, successfully parsed news article. The harvester is
// the sole writer; downstream consumers only read. A returned article always
// has a non-empty Title and Text.
type Article struct {
	Title       string
	Summary     string
	Text        string
	URL         string
	Sentiment   Sentiment
	Topics      []string
	Source      string
	PublishedAt time.Time
}

// HarvestRequest describes a single end-to-end harvest for a company query.
// From/To are optional inclusive calendar bounds; both zero means unbounded.
type HarvestRequest struct {
	Company string
	Count   int
	From    time.Time
	To      time.Time
}

// HasDateRange reports whether the request carries both calendar bounds.
func (r HarvestRequest) HasDateRange() bool {
	return !r.From.IsZero() && !r.To.IsZero()
}

// Validate checks request fields before any network work starts.
func (r HarvestRequest) Validate() error {
	if strings.TrimSpace(r.Company) == "" {
		return errors.New("company name is required")
	}
	if r.Count < 1 || r.Count > MaxHarvestCount {
		return fmt.Errorf("desired count must be between 1 and %d, got %d", MaxHarvestCount, r.Count)
	}
	if r.From.IsZero() != r.To.IsZero() {
		return errors.New("date range requires both start and end")
	}
	if r.HasDateRange() && r.To.Before(r.From) {
		return errors.New("date range end precedes start")
	}
	return nil
}
