package credibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreExactHost(t *testing.T) {
	t.Parallel()
	s := NewScorer(nil)

	assert.Equal(t, 0.95, s.Score("https://reuters.com/markets/acme-expands"))
	assert.Equal(t, 0.90, s.Score("https://bbc.com/news/business-12345"))
	assert.Equal(t, 0.84, s.Score("http://techcrunch.com/2024/01/01/acme"))
}

func TestScoreSubstringMatch(t *testing.T) {
	t.Parallel()
	s := NewScorer(nil)

	// Subdomains of known sources inherit the table score.
	assert.Equal(t, 0.95, s.Score("https://www.reuters.com/article"))
	assert.Equal(t, 0.90, s.Score("https://edition.bbc.com/story"))

	// Documented ambiguity: any host containing a known domain string
	// matches, even when unrelated. First declared entry wins.
	assert.Equal(t, 0.95, s.Score("https://not-really-reuters.com.example/article"))
}

func TestScoreNewsKeywordHeuristic(t *testing.T) {
	t.Parallel()
	s := NewScorer(nil)

	assert.Equal(t, 0.75, s.Score("https://dailynews.example/story"))
	assert.Equal(t, 0.75, s.Score("https://acme-press.io/release"))
	assert.Equal(t, 0.75, s.Score("https://globalmedia.example/post"))
}

func TestScoreUnknownHostDefault(t *testing.T) {
	t.Parallel()
	s := NewScorer(nil)

	assert.Equal(t, DefaultScore, s.Score("https://example.org/article"))
}

func TestScoreMalformedURLNeverPanics(t *testing.T) {
	t.Parallel()
	s := NewScorer(nil)

	assert.Equal(t, DefaultScore, s.Score("not-a-url"))
	assert.Equal(t, DefaultScore, s.Score(""))
	assert.Equal(t, DefaultScore, s.Score("https://"))
}

func TestScoreHostIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	s := NewScorer(nil)

	assert.Equal(t, 0.93, s.Score("https://Bloomberg.com/markets"))
}
