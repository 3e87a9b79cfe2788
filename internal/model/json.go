package model

import (
	"encoding/json"
	"math"
)

// Finite returns a pointer to v, or nil when v is NaN or infinite. JSON has
// no encoding for non-finite numbers, so those values marshal as null.
func Finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// MarshalJSON writes non-finite predictions as null. Regressions such as
// turbidity overflow to +Inf for distances very close to 0.
func (p Predictions) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	out := make(map[Parameter]*float64, len(p))
	for param, v := range p {
		out[param] = Finite(v)
	}
	return json.Marshal(out)
}

// MarshalJSON writes a non-finite value as null.
func (p Prediction) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Parameter Parameter `json:"parameter"`
		Value     *float64  `json:"value"`
	}{p.Parameter, Finite(p.Value)})
}
