package output

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/dotcommander/riverwqi/internal/analyzer"
	"github.com/dotcommander/riverwqi/internal/report"
)

// PDFFormatter renders the plain-text form of each result into a PDF. When
// PDF rendering fails the text is written instead and a warning is logged.
type PDFFormatter struct {
	w        io.Writer
	logger   *zap.SugaredLogger
	now      func() time.Time
	fallback error
}

// NewPDFFormatter creates a new PDFFormatter. A nil logger disables the
// fallback warning.
func NewPDFFormatter(w io.Writer, logger *zap.SugaredLogger) *PDFFormatter {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &PDFFormatter{w: w, logger: logger, now: time.Now}
}

// FormatEvaluation writes the evaluation report as a PDF
func (f *PDFFormatter) FormatEvaluation(ev *analyzer.Evaluation) error {
	return f.render(ev.GeneratedAt, func(t *TextFormatter) error { return t.FormatEvaluation(ev) })
}

// FormatBatch writes the batch table as a PDF
func (f *PDFFormatter) FormatBatch(summary *analyzer.BatchSummary) error {
	return f.render(f.now(), func(t *TextFormatter) error { return t.FormatBatch(summary) })
}

// FormatTrend writes the trend summary as a PDF
func (f *PDFFormatter) FormatTrend(trend *analyzer.TrendSeries) error {
	return f.render(f.now(), func(t *TextFormatter) error { return t.FormatTrend(trend) })
}

// FormatTables writes the reference tables as a PDF
func (f *PDFFormatter) FormatTables(tables Tables) error {
	return f.render(f.now(), func(t *TextFormatter) error { return t.FormatTables(tables) })
}

func (f *PDFFormatter) render(generated time.Time, body func(*TextFormatter) error) error {
	var buf bytes.Buffer
	if err := body(NewTextFormatter(&buf)); err != nil {
		return err
	}

	fallback, err := report.PDFOrText(f.w, generated, buf.String())
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	f.fallback = fallback
	if fallback != nil {
		f.logger.Warnw("PDF generation failed, exported text instead", "error", fallback)
	}
	return nil
}

// Fallback returns the PDF error of the last render when text was written
// instead, or nil.
func (f *PDFFormatter) Fallback() error {
	return f.fallback
}
