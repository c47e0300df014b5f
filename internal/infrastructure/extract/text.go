package extract

import (
	"sort"
	"strings"
	"unicode"
)

// stopwords excluded from keyword ranking. Small on purpose: enough to keep
// glue words out of the topic list without dragging in a full NLP stack.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "any": {}, "can": {}, "had": {}, "her": {},
	"was": {}, "one": {}, "our": {}, "out": {}, "has": {}, "have": {},
	"his": {}, "him": {}, "she": {}, "they": {}, "them": {}, "their": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "with": {},
	"from": {}, "into": {}, "over": {}, "under": {}, "about": {},
	"after": {}, "before": {}, "between": {}, "during": {}, "will": {},
	"would": {}, "could": {}, "should": {}, "been": {}, "being": {},
	"were": {}, "than": {}, "then": {}, "when": {}, "where": {},
	"which": {}, "while": {}, "what": {}, "who": {}, "whom": {},
	"said": {}, "says": {}, "also": {}, "more": {}, "most": {},
	"some": {}, "such": {}, "only": {}, "other": {}, "its": {},
	"it's": {}, "there": {}, "here": {}, "how": {}, "why": {},
	"because": {}, "through": {}, "each": {}, "both": {}, "does": {},
	"did": {}, "done": {}, "just": {}, "like": {}, "may": {}, "new": {},
}

// keywords tokenizes the text, drops stopwords and short/numeric tokens, and
// returns up to limit words ranked by frequency, ties in first-seen order.
func keywords(text string, limit int) []string {
	counts := map[string]int{}
	var order []string

	for _, token := range tokenize(text) {
		if _, seen := counts[token]; !seen {
			order = append(order, token)
		}
		counts[token]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}
	return order
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		field = strings.Trim(field, "'")
		if len(field) < 3 {
			continue
		}
		if _, skip := stopwords[field]; skip {
			continue
		}
		if isNumeric(field) {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// leadSentences returns the first n sentences of the text as a synopsis.
func leadSentences(text string, n int) string {
	var sentences []string
	remaining := text
	for len(sentences) < n {
		idx := strings.IndexAny(remaining, ".!?")
		if idx < 0 {
			if trimmed := strings.TrimSpace(remaining); trimmed != "" {
				sentences = append(sentences, trimmed)
			}
			break
		}
		sentence := strings.TrimSpace(remaining[:idx+1])
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		remaining = remaining[idx+1:]
	}
	return strings.Join(sentences, " ")
}
