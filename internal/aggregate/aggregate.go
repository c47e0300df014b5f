// Package aggregate derives comparative statistics from a finished harvest.
// Everything here is a pure function of the article slice passed in; stats
// are recomputed on demand and never mutated in place.
package aggregate

import (
	"sort"
	"time"

	"newspulse/internal/domain"
)

// Stats summarizes one harvest result.
type Stats struct {
	SentimentDistribution map[domain.Sentiment]int
	DominantSentiment     domain.Sentiment
	TopTopics             []string
	SourceDistribution    map[string]int
}

// Compute builds all summary statistics for the article collection.
func Compute(articles []domain.Article) Stats {
	return Stats{
		SentimentDistribution: SentimentDistribution(articles),
		DominantSentiment:     DominantSentiment(articles),
		TopTopics:             TopTopics(articles),
		SourceDistribution:    SourceDistribution(articles),
	}
}

// SentimentDistribution counts articles per sentiment label. Labels absent
// from the collection are present with a zero count.
func SentimentDistribution(articles []domain.Article) map[domain.Sentiment]int {
	counts := make(map[domain.Sentiment]int, len(domain.SentimentPriority))
	for _, label := range domain.SentimentPriority {
		counts[label] = 0
	}
	for _, article := range articles {
		counts[article.Sentiment]++
	}
	return counts
}

// DominantSentiment returns the label with the highest count. Ties resolve
// by fixed priority: Positive, then Neutral, then Negative.
func DominantSentiment(articles []domain.Article) domain.Sentiment {
	counts := SentimentDistribution(articles)
	best := domain.SentimentPriority[0]
	for _, label := range domain.SentimentPriority[1:] {
		if counts[label] > counts[best] {
			best = label
		}
	}
	return best
}

// TopTopics frequency-ranks all topics across all articles and returns at
// most five, ties broken by first-observed order.
func TopTopics(articles []domain.Article) []string {
	counts := map[string]int{}
	var order []string
	for _, article := range articles {
		for _, topic := range article.Topics {
			if _, seen := counts[topic]; !seen {
				order = append(order, topic)
			}
			counts[topic]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > domain.MaxTopics {
		order = order[:domain.MaxTopics]
	}
	return order
}

// SourceDistribution counts articles per distinct source value.
func SourceDistribution(articles []domain.Article) map[string]int {
	counts := map[string]int{}
	for _, article := range articles {
		source := article.Source
		if source == "" {
			source = "Unknown"
		}
		counts[source]++
	}
	return counts
}

// FilterByDateRange keeps articles published within the inclusive calendar
// bounds. Articles without a usable date (zero time) are silently excluded.
// Filtering an already-filtered collection with the same bounds is a no-op.
func FilterByDateRange(articles []domain.Article, from, to time.Time) []domain.Article {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), to.Location())

	filtered := make([]domain.Article, 0, len(articles))
	for _, article := range articles {
		if article.PublishedAt.IsZero() {
			continue
		}
		if article.PublishedAt.Before(start) || article.PublishedAt.After(end) {
			continue
		}
		filtered = append(filtered, article)
	}
	return filtered
}
