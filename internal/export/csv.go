package export

import (
	"encoding/csv"
	"os"
	"strings"

	"newspulse/internal/domain"
)

var csvHeader = []string{"title", "summary", "text", "url", "sentiment", "topics", "source", "date"}

// writeCSV renders the flat-record report: one row per article, harvested
// order preserved.
func writeCSV(path string, articles []domain.Article) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, article := range articles {
		record := []string{
			article.Title,
			article.Summary,
			article.Text,
			article.URL,
			string(article.Sentiment),
			strings.Join(article.Topics, ";"),
			article.Source,
			formatDate(article.PublishedAt),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
