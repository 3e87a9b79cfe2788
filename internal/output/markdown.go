package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dotcommander/riverwqi/internal/analyzer"
	"github.com/dotcommander/riverwqi/internal/report"
)

// MarkdownFormatter formats output as Markdown
type MarkdownFormatter struct {
	w       io.Writer
	verbose bool
}

// NewMarkdownFormatter creates a new MarkdownFormatter
func NewMarkdownFormatter(w io.Writer, verbose bool) *MarkdownFormatter {
	return &MarkdownFormatter{
		w:       w,
		verbose: verbose,
	}
}

// FormatEvaluation writes the evaluation as a Markdown report
func (f *MarkdownFormatter) FormatEvaluation(ev *analyzer.Evaluation) error {
	var builder strings.Builder

	builder.WriteString("# " + report.Title + "\n\n")
	builder.WriteString(fmt.Sprintf("**Generated:** %s\n\n", ev.GeneratedAt.Format(report.TimeLayout)))
	builder.WriteString(fmt.Sprintf("**Distance:** %s km\n\n", report.FormatDistance(ev.Distance)))
	builder.WriteString(fmt.Sprintf("**Overall WQI:** %.2f (%s)\n\n", ev.WQI.Score, ev.WQI.Rating))

	builder.WriteString("## Predicted Parameters\n\n")
	builder.WriteString("| Parameter | Value | Unit | Status | Q-value |\n")
	builder.WriteString("|-----------|------:|------|--------|--------:|\n")
	for _, row := range ev.Rows {
		builder.WriteString(fmt.Sprintf("| %s | %.4f | %s | %s %s | %.1f |\n",
			row.Parameter, row.Value, row.Unit, row.Symbol, row.Status, row.QValue))
	}
	builder.WriteString("\n")

	if f.verbose {
		builder.WriteString("## WQI Contributions\n\n")
		builder.WriteString("| Parameter | Q-value | Weight | Contribution |\n")
		builder.WriteString("|-----------|--------:|-------:|-------------:|\n")
		for _, d := range ev.WQI.Details {
			builder.WriteString(fmt.Sprintf("| %s | %.1f | %.3f | %.3f |\n", d.Parameter, d.QValue, d.Weight, d.Contribution))
		}
		builder.WriteString("\n")
	}

	builder.WriteString("## Key Issues\n\n")
	if len(ev.Issues) == 0 {
		builder.WriteString("✅ " + NoIssuesMessage + "\n\n")
	} else {
		for _, issue := range ev.Issues {
			builder.WriteString(fmt.Sprintf("- %s\n", issue))
		}
		builder.WriteString("\n")
	}

	builder.WriteString("---\n")
	builder.WriteString(fmt.Sprintf("*Report %s*\n", ev.ID))

	return writeString(f.w, builder.String())
}

// FormatBatch writes the batch results as Markdown tables
func (f *MarkdownFormatter) FormatBatch(summary *analyzer.BatchSummary) error {
	var builder strings.Builder

	builder.WriteString("# Batch Results\n\n")
	builder.WriteString("| Distance_km | WQI | Rating |\n")
	builder.WriteString("|------------:|----:|--------|\n")
	for _, r := range summary.Results {
		builder.WriteString(fmt.Sprintf("| %s | %.2f | %s |\n", report.FormatDistance(r.Distance), r.Score, r.Rating))
	}
	builder.WriteString("\n")

	if len(summary.Skipped) > 0 {
		builder.WriteString("## Skipped\n\n")
		for _, s := range summary.Skipped {
			builder.WriteString(fmt.Sprintf("- `%s`: %s\n", s.Raw, s.Reason))
		}
		builder.WriteString("\n")
	}

	if summary.Stats.Count > 0 {
		st := summary.Stats
		builder.WriteString("## Summary\n\n")
		builder.WriteString("| Metric | Value |\n")
		builder.WriteString("|--------|------:|\n")
		builder.WriteString(fmt.Sprintf("| Count | %d |\n", st.Count))
		builder.WriteString(fmt.Sprintf("| Mean WQI | %.2f |\n", st.Mean))
		builder.WriteString(fmt.Sprintf("| Std dev | %.2f |\n", st.StdDev))
		builder.WriteString(fmt.Sprintf("| Min WQI | %.2f |\n", st.Min))
		builder.WriteString(fmt.Sprintf("| Max WQI | %.2f |\n", st.Max))
		builder.WriteString(fmt.Sprintf("| Best distance | %s km |\n", report.FormatDistance(st.BestDistance)))
		builder.WriteString(fmt.Sprintf("| Worst distance | %s km |\n", report.FormatDistance(st.WorstDistance)))
		for _, r := range ratingOrder {
			if n := summary.RatingCounts[r]; n > 0 {
				builder.WriteString(fmt.Sprintf("| %s | %d |\n", r, n))
			}
		}
	}

	return writeString(f.w, builder.String())
}

// FormatTrend writes the start and end value of each series
func (f *MarkdownFormatter) FormatTrend(trend *analyzer.TrendSeries) error {
	var builder strings.Builder

	from, to := span(trend)
	builder.WriteString("# Parameter Trends\n\n")
	builder.WriteString(fmt.Sprintf("%d points from %s to %s km.\n\n", len(trend.Distances), report.FormatDistance(from), report.FormatDistance(to)))
	builder.WriteString("| Parameter | Start | End | Unit | Standard |\n")
	builder.WriteString("|-----------|------:|----:|------|----------|\n")
	for _, r := range trendRows(trend) {
		builder.WriteString(fmt.Sprintf("| %s | %.4f | %.4f | %s | %s |\n", r.series.Parameter, r.first, r.last, r.series.Unit, r.limit))
	}

	return writeString(f.w, builder.String())
}

// FormatTables writes the reference tables
func (f *MarkdownFormatter) FormatTables(tables Tables) error {
	var builder strings.Builder

	builder.WriteString("# DENR Standards\n\n")
	builder.WriteString("| Parameter | Min | Max | Unit |\n")
	builder.WriteString("|-----------|----:|----:|------|\n")
	for _, s := range tables.Standards {
		builder.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", s.Parameter, s.Bound.MinString(), s.Bound.MaxString(), s.Parameter.Unit()))
	}

	builder.WriteString("\n## WQI Weights\n\n")
	builder.WriteString("| Parameter | Weight |\n")
	builder.WriteString("|-----------|-------:|\n")
	for _, w := range tables.Weights {
		builder.WriteString(fmt.Sprintf("| %s | %.3f |\n", w.Parameter, w.Value))
	}

	builder.WriteString("\n## Rating Bands\n\n")
	builder.WriteString("| Score | Rating |\n")
	builder.WriteString("|-------|--------|\n")
	for _, b := range tables.Bands {
		builder.WriteString(fmt.Sprintf("| %.0f - %.0f | %s |\n", b.Min, b.Max, b.Rating))
	}

	return writeString(f.w, builder.String())
}
