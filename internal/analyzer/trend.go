package analyzer

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/dotcommander/riverwqi/internal/metrics"
	"github.com/dotcommander/riverwqi/internal/model"
	"github.com/dotcommander/riverwqi/internal/standards"
)

// TrendParameters are the parameters plotted against distance. DO is a step
// function and is left off the trend charts.
var TrendParameters = []model.Parameter{
	model.PH, model.Turbidity, model.TDS, model.Iron, model.Phosphate, model.Nitrate,
}

// Series is one parameter's predicted values over the trend distances.
type Series struct {
	Parameter model.Parameter `json:"parameter"`
	Unit      string          `json:"unit"`
	Values    []float64       `json:"values"`
	HasBound  bool            `json:"has_bound"`
	Bound     standards.Bound `json:"-"`
	// reference lines: Max is drawn when finite, Min when above 0
	MaxLine *float64 `json:"max_line,omitempty"`
	MinLine *float64 `json:"min_line,omitempty"`
}

// TrendSeries holds the predicted curves for a range of distances.
type TrendSeries struct {
	Distances []float64 `json:"distances"`
	Series    []Series  `json:"series"`
}

// MaxTrendPoints bounds the number of distances in one trend.
const MaxTrendPoints = 2000

// Trend predicts TrendParameters at points evenly spaced distances in
// [1, maxDistance]. Every returned value is finite.
func (a *Analyzer) Trend(maxDistance float64, points int) (*TrendSeries, error) {
	if !(maxDistance >= 1) || math.IsInf(maxDistance, 1) {
		return nil, fmt.Errorf("%w: plot max distance must be a finite number of at least 1", model.ErrInvalidInput)
	}
	if points < 2 || points > MaxTrendPoints {
		return nil, fmt.Errorf("%w: trend points must be between 2 and %d", model.ErrInvalidInput, MaxTrendPoints)
	}

	distances := floats.Span(make([]float64, points), 1, maxDistance)
	trend := &TrendSeries{Distances: distances}

	for _, p := range TrendParameters {
		values := make([]float64, len(distances))
		for i, d := range distances {
			v, err := a.predictor.Predict(p, d)
			if err != nil {
				return nil, fmt.Errorf("trend %s at %v km: %w", p, d, err)
			}
			if math.IsInf(v, 0) || math.IsNaN(v) {
				return nil, fmt.Errorf("%w: %s overflows at %v km", model.ErrInvalidInput, p, d)
			}
			values[i] = v
		}

		s := Series{Parameter: p, Unit: p.Unit(), Values: values}
		if b, ok := a.checker.Bound(p); ok {
			s.HasBound = true
			s.Bound = b
			if b.HasMax() {
				maxLine := b.Max
				s.MaxLine = &maxLine
			}
			if b.Min > 0 {
				minLine := b.Min
				s.MinLine = &minLine
			}
		}
		trend.Series = append(trend.Series, s)
	}

	metrics.EvaluationsTotal.WithLabelValues("trend").Inc()
	return trend, nil
}
