package scoring

import "github.com/dotcommander/riverwqi/internal/model"

// Aggregator combines per-parameter Q-values into a WQI score.
type Aggregator struct {
	scorer  *Scorer
	weights []Weight
}

// NewAggregator creates an Aggregator using scorer for the Q-values.
func NewAggregator(scorer *Scorer) *Aggregator {
	return &Aggregator{
		scorer:  scorer,
		weights: Weights(),
	}
}

// Aggregate computes the weighted WQI of preds and classifies it. The sum is
// divided by the total weight, so uniform Q-values aggregate to that Q-value.
// A weighted parameter absent from preds is scored as 0.
func (a *Aggregator) Aggregate(preds model.Predictions) Result {
	var total, weightSum float64
	details := make([]ParameterScore, 0, len(a.weights))

	for _, w := range a.weights {
		value := preds[w.Parameter]
		q := a.scorer.Score(w.Parameter, value)
		contribution := q * w.Value
		total += contribution
		weightSum += w.Value
		details = append(details, ParameterScore{
			Parameter:    w.Parameter,
			Value:        value,
			QValue:       q,
			Weight:       w.Value,
			Contribution: contribution,
		})
	}

	var score float64
	if weightSum > 0 {
		score = total / weightSum
	}

	return Result{
		Score:       score,
		Rating:      RateScore(score),
		WeightedSum: total,
		Details:     details,
	}
}
