package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"newspulse/internal/aggregate"
	"newspulse/internal/domain"
)

const (
	sentimentSheet = "Sentiment Analysis"
	articlesSheet  = "Articles"
)

// writeXLSX renders the spreadsheet report: one sheet for the sentiment
// distribution, one row per article on a second sheet.
func writeXLSX(path string, articles []domain.Article, stats aggregate.Stats) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sentimentSheet); err != nil {
		return err
	}

	if err := setRow(f, sentimentSheet, 1, "Sentiment", "Count"); err != nil {
		return err
	}
	for i, row := range sentimentRows(stats) {
		if err := setRow(f, sentimentSheet, i+2, row[0], row[1]); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(articlesSheet); err != nil {
		return err
	}
	if err := setRow(f, articlesSheet, 1, "Title", "Sentiment", "Summary", "URL"); err != nil {
		return err
	}
	for i, article := range articles {
		err := setRow(f, articlesSheet, i+2,
			article.Title, string(article.Sentiment), article.Summary, article.URL)
		if err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func setRow(f *excelize.File, sheet string, row int, values ...string) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("cell name for column %d: %w", i+1, err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}
