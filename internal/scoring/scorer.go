// Package scoring converts predicted parameter values into Q-values and
// aggregates them into a weighted Water Quality Index.
package scoring

import "github.com/dotcommander/riverwqi/internal/model"

// DefaultQValue is returned for parameters without a quality scale, such as
// iron, which is assessed against standards but never weighted.
const DefaultQValue = 50

// Scorer maps predicted values to Q-values. It is safe for concurrent use.
type Scorer struct {
	scales map[model.Parameter]QualityScale
}

// NewScorer creates a Scorer over the fixed quality scales.
func NewScorer() *Scorer {
	scales := make(map[model.Parameter]QualityScale)
	for _, s := range defaultScales() {
		scales[s.Parameter] = s
	}
	return &Scorer{scales: scales}
}

// Score returns the Q-value of value for parameter p, in [0, 100]. It never
// fails: out-of-range and negative values land in the final bucket.
func (s *Scorer) Score(p model.Parameter, value float64) float64 {
	scale, ok := s.scales[p]
	if !ok {
		return DefaultQValue
	}
	return scale.Score(value)
}
