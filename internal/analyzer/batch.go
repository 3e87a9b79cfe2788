package analyzer

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/dotcommander/riverwqi/internal/metrics"
	"github.com/dotcommander/riverwqi/internal/model"
	"github.com/dotcommander/riverwqi/internal/scoring"
	"github.com/dotcommander/riverwqi/internal/standards"
)

// Entry is one item of a batch request, as typed by the user.
type Entry struct {
	Raw      string
	Distance float64
	Err      error
}

// ParseDistances splits a comma- or newline-separated list of distances.
// Blank items are dropped; unparsable items keep their parse error so the
// batch can report them without aborting.
func ParseDistances(text string) []Entry {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})

	var entries []Entry
	for _, part := range parts {
		raw := strings.TrimSpace(part)
		if raw == "" {
			continue
		}
		d, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			entries = append(entries, Entry{Raw: raw, Err: fmt.Errorf("%w: not a number: %q", model.ErrInvalidInput, raw)})
			continue
		}
		entries = append(entries, Entry{Raw: raw, Distance: d})
	}
	return entries
}

// BatchResult is the WQI for one valid batch distance.
type BatchResult struct {
	Distance float64           `json:"distance_km"`
	Score    float64           `json:"wqi"`
	Rating   scoring.Rating    `json:"rating"`
	Issues   []standards.Issue `json:"issues,omitempty"`
}

// Skipped records a batch entry that could not be evaluated.
type Skipped struct {
	Raw    string `json:"raw"`
	Reason string `json:"reason"`
}

// Stats summarises the WQI scores of a batch.
type Stats struct {
	Count         int     `json:"count"`
	Mean          float64 `json:"mean"`
	StdDev        float64 `json:"std_dev"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	BestDistance  float64 `json:"best_distance_km"`
	WorstDistance float64 `json:"worst_distance_km"`
}

// BatchSummary is the outcome of a batch evaluation.
type BatchSummary struct {
	Results      []BatchResult          `json:"results"`
	Skipped      []Skipped              `json:"skipped,omitempty"`
	Stats        Stats                  `json:"stats"`
	RatingCounts map[scoring.Rating]int `json:"rating_counts"`
}

// EvaluateBatch evaluates every entry independently. Invalid entries are
// logged and recorded in Skipped; they never stop the remaining entries.
func (a *Analyzer) EvaluateBatch(entries []Entry) *BatchSummary {
	summary := &BatchSummary{
		RatingCounts: make(map[scoring.Rating]int),
	}

	for _, e := range entries {
		if e.Err != nil {
			a.skip(summary, e.Raw, e.Err)
			continue
		}
		ev, err := a.evaluate(e.Distance)
		if err != nil {
			a.skip(summary, e.Raw, err)
			continue
		}
		summary.Results = append(summary.Results, BatchResult{
			Distance: e.Distance,
			Score:    ev.WQI.Score,
			Rating:   ev.WQI.Rating,
			Issues:   ev.Issues,
		})
		summary.RatingCounts[ev.WQI.Rating]++
	}

	summary.Stats = batchStats(summary.Results)
	metrics.EvaluationsTotal.WithLabelValues("batch").Inc()
	a.logger.Debugw("batch evaluated", "valid", len(summary.Results), "skipped", len(summary.Skipped))
	return summary
}

func (a *Analyzer) skip(summary *BatchSummary, raw string, err error) {
	metrics.InvalidDistancesTotal.Inc()
	a.logger.Warnw("skipping batch distance", "distance", raw, "error", err)
	summary.Skipped = append(summary.Skipped, Skipped{Raw: raw, Reason: err.Error()})
}

func batchStats(results []BatchResult) Stats {
	if len(results) == 0 {
		return Stats{}
	}

	scores := make([]float64, len(results))
	for i, r := range results {
		scores[i] = r.Score
	}

	s := Stats{
		Count:         len(scores),
		Min:           floats.Min(scores),
		Max:           floats.Max(scores),
		BestDistance:  results[floats.MaxIdx(scores)].Distance,
		WorstDistance: results[floats.MinIdx(scores)].Distance,
	}
	if len(scores) > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(scores, nil)
	} else {
		s.Mean = scores[0]
	}
	return s
}
