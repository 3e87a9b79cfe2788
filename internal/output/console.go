package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dotcommander/riverwqi/internal/analyzer"
	"github.com/dotcommander/riverwqi/internal/report"
	"github.com/dotcommander/riverwqi/internal/scoring"
	"github.com/dotcommander/riverwqi/internal/standards"
)

// NoIssuesMessage is shown when every prediction meets its standard.
const NoIssuesMessage = "No major issues detected based on predicted parameters."

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))  // yellow
)

// ConsoleFormatter formats output for console display
type ConsoleFormatter struct {
	w       io.Writer
	quiet   bool
	verbose bool
}

// NewConsoleFormatter creates a new ConsoleFormatter
func NewConsoleFormatter(w io.Writer, quiet, verbose bool) *ConsoleFormatter {
	return &ConsoleFormatter{
		w:       w,
		quiet:   quiet,
		verbose: verbose,
	}
}

// ratingStyle colours a rating from green (excellent) to red (very poor).
func ratingStyle(r scoring.Rating) lipgloss.Style {
	switch r {
	case scoring.Excellent, scoring.Good:
		return okStyle
	case scoring.Moderate:
		return warnStyle
	case scoring.Poor, scoring.VeryPoor:
		return badStyle
	default:
		return dimStyle
	}
}

func statusStyle(s standards.Status) lipgloss.Style {
	switch s {
	case standards.WithinStandard:
		return okStyle
	case standards.ExceedsStandard:
		return badStyle
	default:
		return dimStyle
	}
}

// FormatEvaluation prints the parameter table, WQI and key issues
func (f *ConsoleFormatter) FormatEvaluation(ev *analyzer.Evaluation) error {
	wqi := fmt.Sprintf("WQI %.2f %s", ev.WQI.Score, ratingStyle(ev.WQI.Rating).Render(string(ev.WQI.Rating)))
	if f.quiet {
		fmt.Fprintln(f.w, wqi)
		return nil
	}

	fmt.Fprintln(f.w, headerStyle.Render(fmt.Sprintf("Predicted parameters at %s km", report.FormatDistance(ev.Distance))))
	fmt.Fprintln(f.w)
	fmt.Fprintf(f.w, "  %-2s %-10s %12s  %-9s %-17s %6s %7s\n", "", "Parameter", "Value", "Unit", "Status", "Q", "Weight")
	for _, row := range ev.Rows {
		weight := "-"
		if row.Weight > 0 {
			weight = fmt.Sprintf("%.3f", row.Weight)
		}
		fmt.Fprintf(f.w, "  %s %-10s %12.4f  %-9s %-17s %6.1f %7s\n",
			statusStyle(row.Status).Render(padRight(row.Symbol, 2)),
			row.Parameter, row.Value, row.Unit, row.Status, row.QValue, weight)
	}
	fmt.Fprintln(f.w)
	fmt.Fprintln(f.w, headerStyle.Render(wqi))

	if f.verbose {
		fmt.Fprintln(f.w)
		fmt.Fprintln(f.w, dimStyle.Render("Contributions (Q x weight):"))
		for _, d := range ev.WQI.Details {
			fmt.Fprintf(f.w, "  %-10s Q=%5.1f  w=%.3f  %7.3f\n", d.Parameter, d.QValue, d.Weight, d.Contribution)
		}
		fmt.Fprintf(f.w, "  %s\n", dimStyle.Render("report "+ev.ID))
	}

	fmt.Fprintln(f.w)
	f.printIssues(ev.Issues)
	return nil
}

func (f *ConsoleFormatter) printIssues(issues []standards.Issue) {
	fmt.Fprintln(f.w, headerStyle.Render("Key issues"))
	if len(issues) == 0 {
		fmt.Fprintf(f.w, "  %s %s\n", okStyle.Render("✓"), NoIssuesMessage)
		return
	}
	for _, issue := range issues {
		fmt.Fprintf(f.w, "  %s %s\n", badStyle.Render("✗"), issue)
	}
}

// FormatBatch prints one line per distance followed by summary statistics
func (f *ConsoleFormatter) FormatBatch(summary *analyzer.BatchSummary) error {
	if !f.quiet {
		fmt.Fprintln(f.w, headerStyle.Render("Batch results"))
		fmt.Fprintf(f.w, "  %12s %8s  %s\n", "Distance_km", "WQI", "Rating")
	}
	for _, r := range summary.Results {
		fmt.Fprintf(f.w, "  %12s %8.2f  %s\n", report.FormatDistance(r.Distance), r.Score, ratingStyle(r.Rating).Render(string(r.Rating)))
		if f.verbose {
			for _, issue := range r.Issues {
				fmt.Fprintf(f.w, "  %12s %8s  %s\n", "", "", dimStyle.Render(issue.String()))
			}
		}
	}

	for _, s := range summary.Skipped {
		fmt.Fprintf(f.w, "  %s %s: %s\n", warnStyle.Render("⚠ skipped"), s.Raw, s.Reason)
	}

	if f.quiet || summary.Stats.Count == 0 {
		return nil
	}

	st := summary.Stats
	fmt.Fprintln(f.w)
	fmt.Fprintf(f.w, "  %s %d  mean %.2f  sd %.2f  min %.2f  max %.2f\n",
		dimStyle.Render("count"), st.Count, st.Mean, st.StdDev, st.Min, st.Max)
	fmt.Fprintf(f.w, "  %s %s km  %s %s km\n",
		dimStyle.Render("best"), report.FormatDistance(st.BestDistance),
		dimStyle.Render("worst"), report.FormatDistance(st.WorstDistance))

	var counts []string
	for _, r := range ratingOrder {
		if n := summary.RatingCounts[r]; n > 0 {
			counts = append(counts, fmt.Sprintf("%s %d", ratingStyle(r).Render(string(r)), n))
		}
	}
	fmt.Fprintf(f.w, "  %s\n", strings.Join(counts, ", "))
	return nil
}

// FormatTrend prints the start and end value of each trend series
func (f *ConsoleFormatter) FormatTrend(trend *analyzer.TrendSeries) error {
	if f.quiet {
		return nil
	}
	from, to := span(trend)
	fmt.Fprintln(f.w, headerStyle.Render(fmt.Sprintf("Parameter trends, %s to %s km (%d points)",
		report.FormatDistance(from), report.FormatDistance(to), len(trend.Distances))))
	fmt.Fprintf(f.w, "  %-10s %12s %12s  %-9s %s\n", "Parameter", "Start", "End", "Unit", "Standard")
	for _, r := range trendRows(trend) {
		fmt.Fprintf(f.w, "  %-10s %12.4f %12.4f  %-9s %s\n", r.series.Parameter, r.first, r.last, r.series.Unit, r.limit)
	}
	return nil
}

// FormatTables prints the standards, weights and rating bands
func (f *ConsoleFormatter) FormatTables(tables Tables) error {
	if f.quiet {
		return nil
	}
	fmt.Fprintln(f.w, headerStyle.Render("DENR standards"))
	for _, s := range tables.Standards {
		fmt.Fprintf(f.w, "  %-10s %8s  %-8s %s\n", s.Parameter, s.Bound.MinString(), s.Bound.MaxString(), dimStyle.Render(s.Parameter.Unit()))
	}

	fmt.Fprintln(f.w)
	fmt.Fprintln(f.w, headerStyle.Render("WQI weights"))
	for _, w := range tables.Weights {
		fmt.Fprintf(f.w, "  %-10s %.3f\n", w.Parameter, w.Value)
	}

	fmt.Fprintln(f.w)
	fmt.Fprintln(f.w, headerStyle.Render("Rating bands"))
	for _, b := range tables.Bands {
		fmt.Fprintf(f.w, "  %5.0f - %-5.0f %s\n", b.Min, b.Max, ratingStyle(b.Rating).Render(string(b.Rating)))
	}
	return nil
}

// padRight pads s to width display cells.
func padRight(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
