// Package report renders the plain-text evaluation report and its PDF export.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/dotcommander/riverwqi/internal/analyzer"
	"github.com/dotcommander/riverwqi/internal/metrics"
)

const (
	// Title heads every PDF report.
	Title = "Sungan River Water Quality Analysis Report"

	// TimeLayout formats report timestamps.
	TimeLayout = "2006-01-02 15:04:05"

	// BaseName is the default export file name without extension.
	BaseName = "sungan_report"

	maxCharsPerLine = 100
)

// page geometry in points
const (
	mm         = 72.0 / 25.4
	leftMargin = 20 * mm
	topMargin  = 20 * mm
	bottomStop = 40 * mm
	lineHeight = 10.0
)

// DefaultFileName returns the export file name for an extension such as "pdf".
func DefaultFileName(ext string) string {
	return BaseName + "." + strings.TrimPrefix(ext, ".")
}

// FormatDistance renders a distance without trailing zeros.
func FormatDistance(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}

// Text renders the report body for an evaluation.
func Text(ev *analyzer.Evaluation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generated: %s\n", ev.GeneratedAt.Format(TimeLayout))
	fmt.Fprintf(&b, "Distance: %s km\n", FormatDistance(ev.Distance))
	for _, row := range ev.Rows {
		fmt.Fprintf(&b, "  %-10s: %.4f\n", row.Parameter, row.Value)
	}
	fmt.Fprintf(&b, "Overall WQI: %.2f --> %s\n", ev.WQI.Score, ev.WQI.Rating)
	return b.String()
}

// WrapLines splits body into lines of at most width runes.
func WrapLines(body string, width int) []string {
	var out []string
	for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		runes := []rune(line)
		for len(runes) > width {
			out = append(out, string(runes[:width]))
			runes = runes[width:]
		}
		out = append(out, string(runes))
	}
	return out
}

// WritePDF renders body as an A4 report with the title and generation time
// above it. Long lines wrap and the body continues on new pages.
func WritePDF(w io.Writer, generated time.Time, body string) error {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(Title, false)
	_, height := pdf.GetPageSize()

	pdf.AddPage()
	y := topMargin
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(leftMargin, y, Title)
	y += 12 * mm

	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(leftMargin, y, "Generated: "+generated.Format(TimeLayout))
	y += 8 * mm

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range WrapLines(body, maxCharsPerLine) {
		pdf.Text(leftMargin, y, line)
		y += lineHeight
		if y > height-bottomStop {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "", 10)
			y = topMargin
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

var renderPDF = WritePDF

// PDFOrText writes a PDF report to w. When rendering fails it writes the
// plain-text body instead and returns the rendering error as fallback.
func PDFOrText(w io.Writer, generated time.Time, body string) (fallback, err error) {
	var buf bytes.Buffer
	if fallback = renderPDF(&buf, generated, body); fallback != nil {
		metrics.PDFFallbacksTotal.Inc()
		if _, err := io.WriteString(w, body); err != nil {
			return fallback, fmt.Errorf("write text fallback: %w", err)
		}
		return fallback, nil
	}
	if _, err := buf.WriteTo(w); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return nil, nil
}
