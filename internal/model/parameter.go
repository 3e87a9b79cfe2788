// Package model holds the distance regressions that predict water-quality
// parameters downstream of the mining source.
package model

// Parameter identifies a predicted water-quality parameter.
type Parameter string

const (
	PH        Parameter = "pH"
	DO        Parameter = "DO"
	Turbidity Parameter = "turbidity"
	TDS       Parameter = "TDS"
	Iron      Parameter = "iron"
	Phosphate Parameter = "phosphate"
	Nitrate   Parameter = "nitrate"
)

// AllParameters lists every predicted parameter in display order.
var AllParameters = []Parameter{PH, DO, Turbidity, TDS, Iron, Phosphate, Nitrate}

// Unit returns the display unit for the parameter.
func (p Parameter) Unit() string {
	switch p {
	case PH:
		return "pH units"
	case Turbidity:
		return "NTU"
	default:
		return "mg/L"
	}
}

// Known reports whether p is one of AllParameters.
func (p Parameter) Known() bool {
	for _, known := range AllParameters {
		if p == known {
			return true
		}
	}
	return false
}

func (p Parameter) String() string {
	return string(p)
}

// Prediction is a single predicted value.
type Prediction struct {
	Parameter Parameter `json:"parameter"`
	Value     float64   `json:"value"`
}

// Predictions maps each parameter to its predicted value at one distance.
type Predictions map[Parameter]float64

// Ordered returns the predictions in display order. Parameters missing from
// the map are omitted.
func (p Predictions) Ordered() []Prediction {
	out := make([]Prediction, 0, len(p))
	for _, param := range AllParameters {
		if v, ok := p[param]; ok {
			out = append(out, Prediction{Parameter: param, Value: v})
		}
	}
	return out
}
