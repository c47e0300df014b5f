package sentiment

import (
	"context"

	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"

	"newspulse/internal/domain"
	"newspulse/internal/ports"
)

// Standard VADER compound thresholds for the three-way split.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Lexicon classifies text with the VADER sentiment lexicon. It does no I/O
// and never fails, which makes it the default classifier.
type Lexicon struct{}

var _ ports.SentimentClassifier = (*Lexicon)(nil)

// NewLexicon returns the lexicon classifier.
func NewLexicon() *Lexicon {
	return &Lexicon{}
}

// Classify maps the text's compound polarity score to a label.
func (l *Lexicon) Classify(_ context.Context, text string) (domain.Sentiment, error) {
	parsed := sentitext.Parse(text, lexicon.DefaultLexicon)
	score := sentitext.PolarityScore(parsed)

	switch {
	case score.Compound >= positiveThreshold:
		return domain.SentimentPositive, nil
	case score.Compound <= negativeThreshold:
		return domain.SentimentNegative, nil
	}
	return domain.SentimentNeutral, nil
}
