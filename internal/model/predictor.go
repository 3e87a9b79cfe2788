package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned when a prediction is requested for a distance
// or parameter the model cannot evaluate.
var ErrInvalidInput = errors.New("invalid input")

// Form is the shape of a regression curve.
type Form string

const (
	Linear Form = "linear" // a*d + b
	Log    Form = "log"    // a*ln(d) + b
	Power  Form = "power"  // a*d^b
)

// Regression is a fitted distance curve for one parameter.
type Regression struct {
	Parameter Parameter `json:"parameter"`
	Form      Form      `json:"form"`
	A         float64   `json:"a"`
	B         float64   `json:"b"`
}

// Eval applies the curve to d without validating it.
func (r Regression) Eval(d float64) float64 {
	switch r.Form {
	case Log:
		return r.A*math.Log(d) + r.B
	case Power:
		return r.A * math.Pow(d, r.B)
	default:
		return r.A*d + r.B
	}
}

// Step is one interval of the dissolved-oxygen step function: Value applies
// up to and including UpTo km.
type Step struct {
	UpTo  float64 `json:"up_to"`
	Value float64 `json:"value"`
}

var regressions = []Regression{
	{Parameter: PH, Form: Linear, A: -0.028, B: 7.909},
	{Parameter: Turbidity, Form: Power, A: 755.873, B: -2.945},
	{Parameter: TDS, Form: Linear, A: 86.24, B: -82.03},
	{Parameter: Iron, Form: Log, A: 12.803, B: 2.271},
	{Parameter: Phosphate, Form: Linear, A: 0.079, B: 0.958},
	{Parameter: Nitrate, Form: Log, A: -0.55, B: 1.544},
}

var doSteps = []Step{
	{UpTo: 3, Value: 8.00},
	{UpTo: 5, Value: 7.45},
	{UpTo: math.Inf(1), Value: 8.20},
}

// Regressions returns a copy of the regression table.
func Regressions() []Regression {
	return append([]Regression(nil), regressions...)
}

// DOSteps returns a copy of the dissolved-oxygen step table.
func DOSteps() []Step {
	return append([]Step(nil), doSteps...)
}

// Predictor evaluates the fixed regression table. It holds no mutable state
// and is safe for concurrent use.
type Predictor struct {
	curves map[Parameter]Regression
	steps  []Step
}

// NewPredictor creates a Predictor over the fixed coefficient tables.
func NewPredictor() *Predictor {
	curves := make(map[Parameter]Regression, len(regressions))
	for _, r := range regressions {
		curves[r.Parameter] = r
	}
	return &Predictor{
		curves: curves,
		steps:  DOSteps(),
	}
}

// Predict returns the predicted value of p at distance km from the source.
// Regression parameters require a finite distance greater than 0; dissolved
// oxygen is a step function and accepts any distance.
func (pr *Predictor) Predict(p Parameter, distance float64) (float64, error) {
	if p == DO {
		return pr.predictDO(distance), nil
	}

	curve, ok := pr.curves[p]
	if !ok {
		return 0, fmt.Errorf("%w: unknown parameter %q", ErrInvalidInput, p)
	}
	if err := ValidateDistance(distance); err != nil {
		return 0, err
	}
	return curve.Eval(distance), nil
}

// PredictAll predicts every parameter at distance. Each value is computed
// independently of the others.
func (pr *Predictor) PredictAll(distance float64) (Predictions, error) {
	out := make(Predictions, len(AllParameters))
	for _, p := range AllParameters {
		v, err := pr.Predict(p, distance)
		if err != nil {
			return nil, fmt.Errorf("predict %s: %w", p, err)
		}
		out[p] = v
	}
	return out, nil
}

func (pr *Predictor) predictDO(distance float64) float64 {
	for _, s := range pr.steps {
		if distance <= s.UpTo {
			return s.Value
		}
	}
	return pr.steps[len(pr.steps)-1].Value
}

// ValidateDistance checks that distance can be fed to the regressions.
func ValidateDistance(distance float64) error {
	if math.IsNaN(distance) || math.IsInf(distance, 0) {
		return fmt.Errorf("%w: distance must be a finite number", ErrInvalidInput)
	}
	if distance <= 0 {
		return fmt.Errorf("%w: distance must be greater than 0", ErrInvalidInput)
	}
	return nil
}
