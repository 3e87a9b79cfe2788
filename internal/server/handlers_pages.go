package server

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dotcommander/riverwqi/internal/analyzer"
	"github.com/dotcommander/riverwqi/internal/output"
	"github.com/dotcommander/riverwqi/internal/report"
)

// IndexData is the view model of the dashboard page.
type IndexData struct {
	Distance  float64
	MaxPlot   float64
	BatchText string
	Error     string

	Evaluation *analyzer.Evaluation
	Issues     []string
	Report     string
	ChartURL   string
	ReportURL  string
	PDFURL     string

	Batch        *analyzer.BatchSummary
	BatchMessage string

	Tables output.Tables
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := IndexData{
		MaxPlot:   s.plot.MaxDistance,
		BatchText: strings.TrimSpace(r.URL.Query().Get("batch")),
		Tables:    output.DefaultTables(),
	}

	var err error
	if data.Distance, err = queryFloat(r, "distance", 0); err != nil {
		data.Error = err.Error()
	}
	if data.MaxPlot, err = queryFloat(r, "max", s.plot.MaxDistance); err != nil && data.Error == "" {
		data.Error = err.Error()
	}

	// predictions are only shown for a positive distance
	if data.Error == "" && data.Distance > 0 {
		s.fillEvaluation(&data)
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		s.logger.Errorw("render index", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (s *Server) fillEvaluation(data *IndexData) {
	ev, err := s.analyzer.Evaluate(data.Distance)
	if err != nil {
		data.Error = err.Error()
		return
	}

	d := url.QueryEscape(report.FormatDistance(data.Distance))
	data.Evaluation = ev
	data.Issues = output.IssueStrings(ev.Issues)
	data.Report = report.Text(ev)
	data.ReportURL = "/report.txt?distance=" + d
	data.PDFURL = "/report.pdf?distance=" + d

	if data.MaxPlot >= 1 {
		data.ChartURL = fmt.Sprintf("/chart.png?max=%s", url.QueryEscape(report.FormatDistance(data.MaxPlot)))
	} else {
		data.Error = "plot max distance must be at least 1"
	}

	if data.BatchText == "" {
		data.BatchMessage = "Enter batch distances to evaluate several points at once."
		return
	}
	data.Batch = s.analyzer.EvaluateBatch(analyzer.ParseDistances(data.BatchText))
}
