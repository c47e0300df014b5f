package sentiment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"newspulse/internal/domain"
)

func TestLexiconClassifiesPolarText(t *testing.T) {
	t.Parallel()

	l := NewLexicon()

	got, err := l.Classify(context.Background(), "The results were excellent, amazing and wonderful, a great success.")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if got != domain.SentimentPositive {
		t.Fatalf("expected positive, got %s", got)
	}

	got, err = l.Classify(context.Background(), "A terrible, horrible and awful disaster that destroyed everything.")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if got != domain.SentimentNegative {
		t.Fatalf("expected negative, got %s", got)
	}
}

func TestLexiconClassifiesFlatTextAsNeutral(t *testing.T) {
	t.Parallel()

	l := NewLexicon()
	got, err := l.Classify(context.Background(), "The meeting is scheduled for Tuesday in the main office.")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if got != domain.SentimentNeutral {
		t.Fatalf("expected neutral, got %s", got)
	}
}

func TestParseLabelNormalizesVariants(t *testing.T) {
	t.Parallel()

	cases := map[string]domain.Sentiment{
		"Positive":   domain.SentimentPositive,
		"pos":        domain.SentimentPositive,
		" NEGATIVE ": domain.SentimentNegative,
		"neu":        domain.SentimentNeutral,
		"neutral":    domain.SentimentNeutral,
	}
	for raw, want := range cases {
		got, err := parseLabel(raw)
		if err != nil {
			t.Fatalf("parseLabel(%q) error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parseLabel(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestParseLabelRejectsUnknown(t *testing.T) {
	t.Parallel()

	if _, err := parseLabel("mixed"); err == nil {
		t.Fatal("expected error for unrecognized label")
	}
	if _, err := parseLabel(""); err == nil {
		t.Fatal("expected error for empty label")
	}
}

func TestRemoteClassify(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth string
	var gotPayload struct {
		Text string `json:"text"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"label": "Positive"})
	}))
	t.Cleanup(server.Close)

	r := NewRemote(server.URL, "secret")
	got, err := r.Classify(context.Background(), "Acme had a good quarter.")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if got != domain.SentimentPositive {
		t.Fatalf("expected positive, got %s", got)
	}
	if gotPath != "/classify" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotPayload.Text != "Acme had a good quarter." {
		t.Fatalf("unexpected payload text %q", gotPayload.Text)
	}
}

func TestRemoteClassifyTruncatesLongText(t *testing.T) {
	t.Parallel()

	var gotPayload struct {
		Text string `json:"text"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		_ = json.NewEncoder(w).Encode(map[string]string{"label": "neutral"})
	}))
	t.Cleanup(server.Close)

	r := NewRemote(server.URL, "")
	long := strings.Repeat("a", maxClassifyChars+500)
	if _, err := r.Classify(context.Background(), long); err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if len(gotPayload.Text) != maxClassifyChars {
		t.Fatalf("expected %d chars shipped, got %d", maxClassifyChars, len(gotPayload.Text))
	}
}

func TestRemoteClassifyFailsOnServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	r := NewRemote(server.URL, "")
	if _, err := r.Classify(context.Background(), "text"); err == nil {
		t.Fatal("expected error for 503 response")
	}
}

func TestRemoteClassifyFailsOnBadLabel(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"label": "sideways"})
	}))
	t.Cleanup(server.Close)

	r := NewRemote(server.URL, "")
	if _, err := r.Classify(context.Background(), "text"); err == nil {
		t.Fatal("expected error for unrecognized label")
	}
}

func TestRemoteClassifyRequiresEndpoint(t *testing.T) {
	t.Parallel()

	r := NewRemote("", "")
	if _, err := r.Classify(context.Background(), "text"); err == nil {
		t.Fatal("expected error for empty endpoint")
	}
}
