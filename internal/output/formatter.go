// Package output renders evaluations, batches, trends and reference tables
// in the supported output formats.
package output

import (
	"io"

	"github.com/dotcommander/riverwqi/internal/analyzer"
	"github.com/dotcommander/riverwqi/internal/scoring"
	"github.com/dotcommander/riverwqi/internal/standards"
)

// Formatter renders results to its writer.
type Formatter interface {
	FormatEvaluation(ev *analyzer.Evaluation) error
	FormatBatch(summary *analyzer.BatchSummary) error
	FormatTrend(trend *analyzer.TrendSeries) error
	FormatTables(tables Tables) error
}

// Tables holds the reference tables shown by the standards command and the
// dashboard sidebar.
type Tables struct {
	Standards []standards.Standard
	Weights   []scoring.Weight
	Bands     []scoring.RatingBand
}

// DefaultTables collects the built-in standards, weights and rating bands.
func DefaultTables() Tables {
	return Tables{
		Standards: standards.Standards(),
		Weights:   scoring.Weights(),
		Bands:     scoring.RatingBands(),
	}
}

// ratingOrder lists ratings from best to worst for summary tables.
var ratingOrder = []scoring.Rating{
	scoring.Excellent,
	scoring.Good,
	scoring.Moderate,
	scoring.Poor,
	scoring.VeryPoor,
	scoring.Undefined,
}

// trendRow is the first/last value summary of one trend series.
type trendRow struct {
	series analyzer.Series
	first  float64
	last   float64
	limit  string
}

func trendRows(trend *analyzer.TrendSeries) []trendRow {
	rows := make([]trendRow, 0, len(trend.Series))
	for _, s := range trend.Series {
		if len(s.Values) == 0 {
			continue
		}
		limit := "-"
		if s.HasBound {
			limit = s.Bound.MinString() + " - " + s.Bound.MaxString()
		}
		rows = append(rows, trendRow{
			series: s,
			first:  s.Values[0],
			last:   s.Values[len(s.Values)-1],
			limit:  limit,
		})
	}
	return rows
}

func span(trend *analyzer.TrendSeries) (float64, float64) {
	if len(trend.Distances) == 0 {
		return 0, 0
	}
	return trend.Distances[0], trend.Distances[len(trend.Distances)-1]
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
