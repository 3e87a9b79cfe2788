package server

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/dotcommander/riverwqi/internal/chart"
	"github.com/dotcommander/riverwqi/internal/metrics"
	"github.com/dotcommander/riverwqi/internal/report"
)

func attachment(w http.ResponseWriter, name, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
}

func (s *Server) handleReportText(w http.ResponseWriter, r *http.Request) {
	ev, err := s.evaluate(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	attachment(w, report.DefaultFileName("txt"), "text/plain; charset=utf-8")
	w.Write([]byte(report.Text(ev)))
	metrics.ReportsTotal.WithLabelValues("text").Inc()
}

// handleReportPDF serves the PDF report, or the text report with an
// X-Report-Fallback header when the PDF cannot be rendered.
func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	ev, err := s.evaluate(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var buf bytes.Buffer
	fallback, err := report.PDFOrText(&buf, ev.GeneratedAt, report.Text(ev))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if fallback != nil {
		s.logger.Warnw("PDF generation failed, exporting text instead", "error", fallback, "id", ev.ID)
		w.Header().Set("X-Report-Fallback", "text")
		attachment(w, report.DefaultFileName("txt"), "text/plain; charset=utf-8")
		metrics.ReportsTotal.WithLabelValues("text").Inc()
	} else {
		attachment(w, report.DefaultFileName("pdf"), "application/pdf")
		metrics.ReportsTotal.WithLabelValues("pdf").Inc()
	}
	buf.WriteTo(w)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	trend, err := s.trend(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, err := chart.Render(trend)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
