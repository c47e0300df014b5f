package credibility

import (
	"log/slog"
	"strings"
)

const (
	// DefaultScore applies to unknown and malformed sources.
	DefaultScore = 0.70
	// newsBoostScore applies to unknown hosts that look news-oriented.
	newsBoostScore = 0.75
)

type entry struct {
	domain string
	score  float64
}

// sourceScores is deliberately an ordered slice, not a map: the substring
// fallback scans entries top to bottom, and the first declared match wins
// even when a later entry would also match.
var sourceScores = []entry{
	// Major news organizations
	{"reuters.com", 0.95},
	{"bloomberg.com", 0.93},
	{"wsj.com", 0.92},
	{"ft.com", 0.91},
	{"cnbc.com", 0.89},
	{"bbc.com", 0.90},
	{"theguardian.com", 0.88},
	{"nytimes.com", 0.92},
	{"washingtonpost.com", 0.91},
	{"apnews.com", 0.94},

	// Business news
	{"forbes.com", 0.87},
	{"businessinsider.com", 0.85},
	{"marketwatch.com", 0.86},
	{"fortune.com", 0.87},

	// Technology news
	{"techcrunch.com", 0.84},
	{"wired.com", 0.86},
	{"theverge.com", 0.83},

	// Industry-specific
	{"zdnet.com", 0.82},
	{"venturebeat.com", 0.81},
	{"engadget.com", 0.80},
}

var newsKeywords = []string{"news", "press", "media"}

// Scorer maps article URLs to static trust scores in [0,1]. It never errors:
// malformed URLs log a warning and fall back to the default score.
type Scorer struct {
	logger *slog.Logger
}

// NewScorer wires an optional logger for malformed-URL warnings.
func NewScorer(logger *slog.Logger) *Scorer {
	return &Scorer{logger: logger}
}

// Score resolves a trust score for the URL's host. Lookup order: exact table
// match, declaration-order substring match, news-keyword heuristic, default.
func (s *Scorer) Score(rawURL string) float64 {
	host, ok := hostOf(rawURL)
	if !ok {
		s.warn("cannot extract host from url", "url", rawURL)
		return DefaultScore
	}

	for _, e := range sourceScores {
		if e.domain == host {
			return e.score
		}
	}

	for _, e := range sourceScores {
		if strings.Contains(host, e.domain) {
			return e.score
		}
	}

	for _, keyword := range newsKeywords {
		if strings.Contains(host, keyword) {
			return newsBoostScore
		}
	}

	return DefaultScore
}

// hostOf extracts the third slash-delimited segment of the URL string,
// matching how the rest of the pipeline treats candidate URLs.
func hostOf(rawURL string) (string, bool) {
	parts := strings.Split(rawURL, "/")
	if len(parts) < 3 || parts[2] == "" {
		return "", false
	}
	return strings.ToLower(parts[2]), true
}

func (s *Scorer) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
