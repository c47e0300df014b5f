// Package export serializes a finished harvest and its aggregate statistics
// to a report file. Sinks only read: nothing here feeds back into the
// pipeline.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"newspulse/internal/aggregate"
	"newspulse/internal/domain"
	"newspulse/pkg/logger"
)

// ErrUnsupportedFormat marks an unrecognized format name. It is a hard
// input-validation error, rejected at the boundary before any dispatch.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format is the tagged variant over the supported report kinds.
type Format int

const (
	// FormatStructuredDocument renders a PDF report.
	FormatStructuredDocument Format = iota
	// FormatSpreadsheet renders an XLSX workbook.
	FormatSpreadsheet
	// FormatDelimitedText renders a flat CSV table.
	FormatDelimitedText
)

// ParseFormat validates a format name and returns its tag. Unknown names
// fail with ErrUnsupportedFormat.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pdf":
		return FormatStructuredDocument, nil
	case "excel", "xlsx":
		return FormatSpreadsheet, nil
	case "csv":
		return FormatDelimitedText, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// Extension returns the file extension for the format, dot included.
func (f Format) Extension() string {
	switch f {
	case FormatStructuredDocument:
		return ".pdf"
	case FormatSpreadsheet:
		return ".xlsx"
	case FormatDelimitedText:
		return ".csv"
	}
	return ""
}

func (f Format) String() string {
	switch f {
	case FormatStructuredDocument:
		return "pdf"
	case FormatSpreadsheet:
		return "xlsx"
	case FormatDelimitedText:
		return "csv"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Writer produces timestamped report files in a fixed output directory.
type Writer struct {
	outputDir string
	now       func() time.Time
	log       interface{ Printf(string, ...any) }
}

// NewWriter targets the given directory; empty means the working directory.
func NewWriter(outputDir string) *Writer {
	if outputDir == "" {
		outputDir = "."
	}
	return &Writer{
		outputDir: outputDir,
		now:       time.Now,
		log:       logger.New("export"),
	}
}

// Write serializes the harvest in the given format and returns the path of
// the file produced. Article order is preserved as harvested.
func (w *Writer) Write(format Format, articles []domain.Article, stats aggregate.Stats) (string, error) {
	name := fmt.Sprintf("news_analysis_%s%s", w.now().Format("20060102_150405"), format.Extension())
	path := filepath.Join(w.outputDir, name)

	var err error
	switch format {
	case FormatStructuredDocument:
		err = writePDF(path, articles, stats)
	case FormatSpreadsheet:
		err = writeXLSX(path, articles, stats)
	case FormatDelimitedText:
		err = writeCSV(path, articles)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return "", fmt.Errorf("write %s report: %w", format, err)
	}

	w.log.Printf("report written to %s", path)
	return path, nil
}

// sentimentRows flattens the distribution in fixed label order so reports
// are deterministic.
func sentimentRows(stats aggregate.Stats) [][2]string {
	rows := make([][2]string, 0, len(domain.SentimentPriority))
	for _, label := range domain.SentimentPriority {
		rows = append(rows, [2]string{string(label), fmt.Sprintf("%d", stats.SentimentDistribution[label])})
	}
	return rows
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
