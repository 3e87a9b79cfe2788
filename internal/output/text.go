package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dotcommander/riverwqi/internal/analyzer"
	"github.com/dotcommander/riverwqi/internal/report"
)

// TextFormatter writes plain, uncoloured text. Evaluations use the
// exported report layout.
type TextFormatter struct {
	w io.Writer
}

// NewTextFormatter creates a new TextFormatter
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{w: w}
}

// FormatEvaluation writes the plain-text report
func (f *TextFormatter) FormatEvaluation(ev *analyzer.Evaluation) error {
	return writeString(f.w, report.Text(ev))
}

// FormatBatch writes a Distance_km / WQI / Rating table
func (f *TextFormatter) FormatBatch(summary *analyzer.BatchSummary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %8s  %s\n", "Distance_km", "WQI", "Rating")
	for _, r := range summary.Results {
		fmt.Fprintf(&b, "%-12s %8.2f  %s\n", report.FormatDistance(r.Distance), r.Score, r.Rating)
	}
	for _, s := range summary.Skipped {
		fmt.Fprintf(&b, "skipped %s: %s\n", s.Raw, s.Reason)
	}
	if st := summary.Stats; st.Count > 0 {
		fmt.Fprintf(&b, "count=%d mean=%.2f sd=%.2f min=%.2f max=%.2f best=%s worst=%s\n",
			st.Count, st.Mean, st.StdDev, st.Min, st.Max,
			report.FormatDistance(st.BestDistance), report.FormatDistance(st.WorstDistance))
	}
	return writeString(f.w, b.String())
}

// FormatTrend writes the start and end value of each series
func (f *TextFormatter) FormatTrend(trend *analyzer.TrendSeries) error {
	var b strings.Builder
	from, to := span(trend)
	fmt.Fprintf(&b, "Trend %s-%s km, %d points\n", report.FormatDistance(from), report.FormatDistance(to), len(trend.Distances))
	for _, r := range trendRows(trend) {
		fmt.Fprintf(&b, "  %-10s: %.4f -> %.4f %s (standard %s)\n", r.series.Parameter, r.first, r.last, r.series.Unit, r.limit)
	}
	return writeString(f.w, b.String())
}

// FormatTables writes the reference tables
func (f *TextFormatter) FormatTables(tables Tables) error {
	var b strings.Builder
	b.WriteString("DENR standards\n")
	for _, s := range tables.Standards {
		fmt.Fprintf(&b, "  %-10s: %s - %s %s\n", s.Parameter, s.Bound.MinString(), s.Bound.MaxString(), s.Parameter.Unit())
	}
	b.WriteString("WQI weights\n")
	for _, w := range tables.Weights {
		fmt.Fprintf(&b, "  %-10s: %.3f\n", w.Parameter, w.Value)
	}
	b.WriteString("Rating bands\n")
	for _, band := range tables.Bands {
		fmt.Fprintf(&b, "  %3.0f-%-3.0f: %s\n", band.Min, band.Max, band.Rating)
	}
	return writeString(f.w, b.String())
}
