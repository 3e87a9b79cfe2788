package scoring

import (
	"encoding/json"

	"github.com/dotcommander/riverwqi/internal/model"
)

// Rating is the qualitative label for a WQI score.
type Rating string

const (
	Excellent Rating = "Excellent Quality"
	Good      Rating = "Good Quality"
	Moderate  Rating = "Moderate Quality"
	Poor      Rating = "Poor Quality"
	VeryPoor  Rating = "Very Poor Quality"
	Undefined Rating = "Undefined"
)

func (r Rating) String() string {
	return string(r)
}

// RatingBand is a closed score interval mapped to a rating.
type RatingBand struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Rating Rating  `json:"rating"`
}

// Contains reports whether score lies in [Min, Max]. A small tolerance absorbs
// float noise from the weighted sum; scores inside the gaps between bands
// still match nothing.
func (b RatingBand) Contains(score float64) bool {
	return score >= b.Min-ratingTolerance && score <= b.Max+ratingTolerance
}

const ratingTolerance = 1e-9

// Bands are scanned in this order; the first containing band wins.
var ratingBands = []RatingBand{
	{Min: 91, Max: 100, Rating: Excellent},
	{Min: 71, Max: 90, Rating: Good},
	{Min: 51, Max: 70, Rating: Moderate},
	{Min: 26, Max: 50, Rating: Poor},
	{Min: 0, Max: 25, Rating: VeryPoor},
}

// RatingBands returns a copy of the rating band table.
func RatingBands() []RatingBand {
	return append([]RatingBand(nil), ratingBands...)
}

// RateScore returns the rating whose band contains score, or Undefined when
// the score falls outside every band (including the gaps such as 25 < x < 26).
func RateScore(score float64) Rating {
	for _, b := range ratingBands {
		if b.Contains(score) {
			return b.Rating
		}
	}
	return Undefined
}

// Weight is the share of the WQI attributed to one parameter.
type Weight struct {
	Parameter model.Parameter `json:"parameter"`
	Value     float64         `json:"value"`
}

// Iron has a standard but no weight, so it never enters the WQI.
var weights = []Weight{
	{Parameter: model.DO, Value: 0.27},
	{Parameter: model.PH, Value: 0.175},
	{Parameter: model.Nitrate, Value: 0.159},
	{Parameter: model.Phosphate, Value: 0.159},
	{Parameter: model.Turbidity, Value: 0.127},
	{Parameter: model.TDS, Value: 0.111},
}

// Weights returns a copy of the WQI weight table.
func Weights() []Weight {
	return append([]Weight(nil), weights...)
}

// ParameterScore is one parameter's contribution to the WQI.
type ParameterScore struct {
	Parameter    model.Parameter `json:"parameter"`
	Value        float64         `json:"value"`
	QValue       float64         `json:"q_value"`
	Weight       float64         `json:"weight"`
	Contribution float64         `json:"contribution"` // QValue * Weight
}

// MarshalJSON writes a non-finite predicted value as null.
func (s ParameterScore) MarshalJSON() ([]byte, error) {
	type parameterScore ParameterScore
	return json.Marshal(struct {
		parameterScore
		Value *float64 `json:"value"`
	}{parameterScore(s), model.Finite(s.Value)})
}

// Result is the aggregated water quality index.
type Result struct {
	Score  float64 `json:"score"`
	Rating Rating  `json:"rating"`
	// WeightedSum is Σ(Q·w) before dividing by the total weight of 1.001.
	WeightedSum float64          `json:"weighted_sum"`
	Details     []ParameterScore `json:"details"`
}
