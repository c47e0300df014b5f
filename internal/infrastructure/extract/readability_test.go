package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const articlePage = `<!DOCTYPE html>
<html>
<head>
<title>Acme Corp Reports Record Quarterly Revenue</title>
<meta property="article:published_time" content="2024-05-10T08:30:00Z">
</head>
<body>
<article>
<h1>Acme Corp Reports Record Quarterly Revenue</h1>
<p>Acme Corp announced record quarterly revenue on Friday, beating analyst
expectations by a wide margin. The company credited strong demand for its
cloud products. Executives raised guidance for the remainder of the year.</p>
<p>Shares of Acme rose in early trading. Analysts at several banks upgraded
the stock following the announcement. The company also announced a new
share buyback program worth two billion dollars.</p>
<p>Acme has now beaten revenue expectations for six consecutive quarters.
The cloud division grew forty percent year over year. Competitors have
struggled to match that growth rate in the same period.</p>
</article>
</body>
</html>`

func newPageServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestExtractRecoversArticleContent(t *testing.T) {
	t.Parallel()

	server := newPageServer(t, http.StatusOK, articlePage)
	extractor := NewReadability(server.Client(), Config{UserAgent: "test-agent"}, nil)

	got, err := extractor.Extract(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}

	if !strings.Contains(got.Title, "Acme Corp") {
		t.Fatalf("unexpected title: %q", got.Title)
	}
	if !strings.Contains(got.Text, "record quarterly revenue") {
		t.Fatalf("article body missing from text: %q", got.Text)
	}
	if got.Summary == "" {
		t.Fatal("expected a non-empty summary")
	}
	if len(got.Keywords) == 0 {
		t.Fatal("expected keywords")
	}
	if len(got.Keywords) > maxKeywords {
		t.Fatalf("keyword list exceeds limit: %d", len(got.Keywords))
	}

	want := time.Date(2024, time.May, 10, 8, 30, 0, 0, time.UTC)
	if !got.PublishedAt.Equal(want) {
		t.Fatalf("expected publish date %v, got %v", want, got.PublishedAt)
	}
}

func TestExtractFailsOnHTTPError(t *testing.T) {
	t.Parallel()

	server := newPageServer(t, http.StatusNotFound, "gone")
	extractor := NewReadability(server.Client(), Config{}, nil)

	if _, err := extractor.Extract(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestExtractFailsOnEmptyPage(t *testing.T) {
	t.Parallel()

	server := newPageServer(t, http.StatusOK, "<html><head><title></title></head><body></body></html>")
	extractor := NewReadability(server.Client(), Config{}, nil)

	if _, err := extractor.Extract(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for page without readable content")
	}
}

func TestExtractRejectsOversizedBody(t *testing.T) {
	t.Parallel()

	server := newPageServer(t, http.StatusOK, articlePage)
	extractor := NewReadability(server.Client(), Config{MaxBodyBytes: 64}, nil)

	if _, err := extractor.Extract(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for body over the size limit")
	}
}

func TestExtractSendsUserAgent(t *testing.T) {
	t.Parallel()

	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(articlePage))
	}))
	t.Cleanup(server.Close)

	extractor := NewReadability(server.Client(), Config{UserAgent: "newspulse-test"}, nil)
	if _, err := extractor.Extract(context.Background(), server.URL); err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if gotUA != "newspulse-test" {
		t.Fatalf("expected configured user agent, got %q", gotUA)
	}
}

func TestMetaPublishDateSelectorOrder(t *testing.T) {
	t.Parallel()

	page := `<html><head>
<meta name="date" content="2024-01-01">
<meta property="article:published_time" content="2024-05-10T08:30:00Z">
</head><body></body></html>`

	got := metaPublishDate([]byte(page))
	want := time.Date(2024, time.May, 10, 8, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected article:published_time to win, got %v", got)
	}
}

func TestMetaPublishDateFallsThroughToTimeElement(t *testing.T) {
	t.Parallel()

	page := `<html><body><time datetime="2024-03-15T12:00:00Z">March 15</time></body></html>`
	got := metaPublishDate([]byte(page))
	want := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected time[datetime] value, got %v", got)
	}
}

func TestMetaPublishDateZeroWhenAbsent(t *testing.T) {
	t.Parallel()

	if got := metaPublishDate([]byte("<html><body><p>no dates</p></body></html>")); !got.IsZero() {
		t.Fatalf("expected zero time, got %v", got)
	}
}
