package export

import (
	"github.com/go-pdf/fpdf"

	"newspulse/internal/aggregate"
	"newspulse/internal/domain"
)

// writePDF renders the structured-document report: title, sentiment table,
// then one section per article in harvested order.
func writePDF(path string, articles []domain.Article, stats aggregate.Stats) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "News Analysis Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Sentiment Analysis", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, row := range sentimentRows(stats) {
		pdf.CellFormat(60, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, row[1], "1", 1, "C", false, 0, "")
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, "Dominant sentiment: "+string(stats.DominantSentiment), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Articles", "", 1, "L", false, 0, "")
	for _, article := range articles {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 7, tr(article.Title), "", "L", false)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 6, "Sentiment: "+string(article.Sentiment), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(article.Summary), "", "L", false)
		pdf.Ln(4)
	}

	return pdf.OutputFileAndClose(path)
}
