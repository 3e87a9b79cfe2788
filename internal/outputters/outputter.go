package outputters

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/dotcommander/riverwqi/internal/analyzer"
	"github.com/dotcommander/riverwqi/internal/config"
	"github.com/dotcommander/riverwqi/internal/metrics"
	"github.com/dotcommander/riverwqi/internal/output"
	"github.com/dotcommander/riverwqi/internal/report"
)

// FormatterFactory creates formatters writing to w
type FormatterFactory interface {
	CreateFormatter(format string, w io.Writer) (output.Formatter, error)
}

// DefaultFormatterFactory builds the formatters in the output package
type DefaultFormatterFactory struct {
	config *config.Config
	logger *zap.SugaredLogger
}

// CreateFormatter creates a formatter for the given format
func (d *DefaultFormatterFactory) CreateFormatter(format string, w io.Writer) (output.Formatter, error) {
	switch format {
	case "console":
		return output.NewConsoleFormatter(w, d.config.Quiet, d.config.Verbose), nil
	case "json":
		return output.NewJSONFormatter(w, true), nil
	case "markdown":
		return output.NewMarkdownFormatter(w, d.config.Verbose), nil
	case "text":
		return output.NewTextFormatter(w), nil
	case "pdf":
		return output.NewPDFFormatter(w, d.logger), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Outputter handles output formatting
type Outputter struct {
	config  *config.Config
	logger  *zap.SugaredLogger
	factory FormatterFactory
	stdout  io.Writer
}

// NewOutputter creates a new Outputter. A nil logger disables logging.
func NewOutputter(cfg *config.Config, logger *zap.SugaredLogger) *Outputter {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Outputter{
		config:  cfg,
		logger:  logger,
		factory: &DefaultFormatterFactory{config: cfg, logger: logger},
		stdout:  os.Stdout,
	}
}

// Evaluation renders a single evaluation
func (o *Outputter) Evaluation(ev *analyzer.Evaluation) error {
	return o.emit(func(f output.Formatter) error { return f.FormatEvaluation(ev) })
}

// Batch renders a batch summary
func (o *Outputter) Batch(summary *analyzer.BatchSummary) error {
	return o.emit(func(f output.Formatter) error { return f.FormatBatch(summary) })
}

// Trend renders a trend summary
func (o *Outputter) Trend(trend *analyzer.TrendSeries) error {
	return o.emit(func(f output.Formatter) error { return f.FormatTrend(trend) })
}

// Tables renders the reference tables
func (o *Outputter) Tables(tables output.Tables) error {
	return o.emit(func(f output.Formatter) error { return f.FormatTables(tables) })
}

// emit writes to the configured output file, or stdout when none is set.
// PDF output always goes to a file, defaulting to the report file name, and
// a PDF that fell back to text is written with a .txt extension.
func (o *Outputter) emit(render func(output.Formatter) error) error {
	format := o.config.Format
	path := o.config.Output
	if path == "" && format == "pdf" {
		path = report.DefaultFileName("pdf")
	}

	var buf bytes.Buffer
	w := o.stdout
	if path != "" {
		w = &buf
	}

	formatter, err := o.factory.CreateFormatter(format, w)
	if err != nil {
		return err
	}
	if err := render(formatter); err != nil {
		return err
	}
	if fb, ok := formatter.(interface{ Fallback() error }); ok && fb.Fallback() != nil {
		format = "text"
		if path != "" {
			path = textPath(path)
		}
	}
	metrics.ReportsTotal.WithLabelValues(format).Inc()

	if path == "" {
		return nil
	}
	if err := writeFile(path, buf.Bytes()); err != nil {
		return err
	}
	o.logger.Debugw("output written", "path", path, "format", format)
	return nil
}

// ReportFormat maps a configured format onto a report format. Console output
// has no file form, so it becomes text.
func ReportFormat(format string) string {
	if format == "console" || format == "" {
		return "text"
	}
	return format
}

// reportExt returns the file extension used for a report format.
func reportExt(format string) string {
	switch format {
	case "markdown":
		return "md"
	case "text":
		return "txt"
	default:
		return format
	}
}

// Report writes the evaluation report to the configured output path, or to
// sungan_report.<ext>, and returns the path written. A PDF that cannot be
// rendered is written as text with a .txt extension instead.
func (o *Outputter) Report(ev *analyzer.Evaluation) (string, error) {
	format := ReportFormat(o.config.Format)
	path := o.config.Output
	if path == "" {
		path = report.DefaultFileName(reportExt(format))
	}

	var buf bytes.Buffer
	switch format {
	case "pdf":
		fallback, err := report.PDFOrText(&buf, ev.GeneratedAt, report.Text(ev))
		if err != nil {
			return "", err
		}
		if fallback != nil {
			path = textPath(path)
			format = "text"
			o.logger.Warnw("PDF generation failed, exporting text instead", "error", fallback, "path", path)
		}
	default:
		formatter, err := o.factory.CreateFormatter(format, &buf)
		if err != nil {
			return "", err
		}
		if err := formatter.FormatEvaluation(ev); err != nil {
			return "", err
		}
	}

	if err := writeFile(path, buf.Bytes()); err != nil {
		return "", err
	}
	metrics.ReportsTotal.WithLabelValues(format).Inc()
	o.logger.Debugw("report written", "path", path, "format", format, "id", ev.ID)
	return path, nil
}

// textPath swaps the extension of path for .txt.
func textPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".txt"
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing to file %s: %w", path, err)
	}
	return nil
}
