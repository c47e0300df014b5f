// Package sentiment provides the pluggable classifiers the fetcher depends
// on: a local VADER lexicon (default), a remote inference service, and an
// OpenAI-backed mode. All of them map text to one of the three labels.
package sentiment

import (
	"fmt"
	"strings"

	"newspulse/internal/domain"
)

// parseLabel normalizes a classifier response into a sentiment label.
func parseLabel(raw string) (domain.Sentiment, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "positive", "pos":
		return domain.SentimentPositive, nil
	case "negative", "neg":
		return domain.SentimentNegative, nil
	case "neutral", "neu":
		return domain.SentimentNeutral, nil
	}
	return "", fmt.Errorf("unrecognized sentiment label %q", raw)
}
