package model

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-9

func TestPredictAll_Formulas(t *testing.T) {
	p := NewPredictor()

	tests := []struct {
		distance float64
		want     map[Parameter]float64
	}{
		{
			distance: 10,
			want: map[Parameter]float64{
				PH:        7.629,
				DO:        8.20,
				Turbidity: 0.8579240302746801,
				TDS:       780.37,
				Iron:      31.750996945602772,
				Phosphate: 1.748,
				Nitrate:   0.2775781988532746,
			},
		},
		{
			distance: 1,
			want: map[Parameter]float64{
				PH:        7.881,
				DO:        8.00,
				Turbidity: 755.873,
				TDS:       4.21,
				Iron:      2.271,
				Phosphate: 1.037,
				Nitrate:   1.544,
			},
		},
		{
			distance: 4.5,
			want: map[Parameter]float64{
				PH:        7.783,
				DO:        7.45,
				Turbidity: 9.010273615540033,
				TDS:       306.05,
				Iron:      21.52770291092664,
				Phosphate: 1.3135,
				Nitrate:   0.7167574317730492,
			},
		},
	}

	for _, tt := range tests {
		got, err := p.PredictAll(tt.distance)
		if err != nil {
			t.Fatalf("PredictAll(%v) error: %v", tt.distance, err)
		}
		if len(got) != len(AllParameters) {
			t.Errorf("PredictAll(%v) returned %d keys, want %d", tt.distance, len(got), len(AllParameters))
		}
		for param, want := range tt.want {
			v, ok := got[param]
			if !ok {
				t.Errorf("PredictAll(%v) missing %s", tt.distance, param)
				continue
			}
			if math.Abs(v-want) > tolerance {
				t.Errorf("PredictAll(%v)[%s] = %v, want %v", tt.distance, param, v, want)
			}
		}
	}
}

func TestPredictAll_InvalidDistance(t *testing.T) {
	p := NewPredictor()
	for _, d := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := p.PredictAll(d); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("PredictAll(%v) error = %v, want ErrInvalidInput", d, err)
		}
	}
}

func TestPredict_RegressionParametersRejectNonPositive(t *testing.T) {
	p := NewPredictor()
	for _, param := range []Parameter{PH, Turbidity, TDS, Iron, Phosphate, Nitrate} {
		for _, d := range []float64{0, -1} {
			_, err := p.Predict(param, d)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Predict(%s, %v) error = %v, want ErrInvalidInput", param, d, err)
				continue
			}
			if err.Error() != "invalid input: distance must be greater than 0" {
				t.Errorf("Predict(%s, %v) message = %q", param, d, err.Error())
			}
		}
	}
}

func TestPredict_DOStepFunction(t *testing.T) {
	p := NewPredictor()
	tests := []struct {
		distance float64
		want     float64
	}{
		{0, 8.00},
		{2, 8.00},
		{3, 8.00},
		{3.01, 7.45},
		{4, 7.45},
		{5, 7.45},
		{5.01, 8.20},
		{6, 8.20},
		{100, 8.20},
	}
	for _, tt := range tests {
		got, err := p.Predict(DO, tt.distance)
		if err != nil {
			t.Fatalf("Predict(DO, %v) error: %v", tt.distance, err)
		}
		if got != tt.want {
			t.Errorf("Predict(DO, %v) = %v, want %v", tt.distance, got, tt.want)
		}
	}
}

func TestPredict_UnknownParameter(t *testing.T) {
	_, err := NewPredictor().Predict(Parameter("lead"), 2)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPredict_OutOfRangeValuesAreNotClamped(t *testing.T) {
	got, err := NewPredictor().Predict(TDS, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if got >= 0 {
		t.Errorf("Predict(TDS, 0.5) = %v, want the negative regression value", got)
	}
}

func TestPredictionsOrdered(t *testing.T) {
	preds := Predictions{Nitrate: 1, PH: 7, Iron: 0.2}
	got := preds.Ordered()
	want := []Parameter{PH, Iron, Nitrate}
	if len(got) != len(want) {
		t.Fatalf("Ordered() len = %d, want %d", len(got), len(want))
	}
	for i, p := range want {
		if got[i].Parameter != p {
			t.Errorf("Ordered()[%d] = %s, want %s", i, got[i].Parameter, p)
		}
	}
}

func TestParameterUnit(t *testing.T) {
	tests := map[Parameter]string{
		PH:        "pH units",
		Turbidity: "NTU",
		TDS:       "mg/L",
		DO:        "mg/L",
	}
	for p, want := range tests {
		if got := p.Unit(); got != want {
			t.Errorf("%s.Unit() = %q, want %q", p, got, want)
		}
	}
}

func TestRegressionsReturnsCopy(t *testing.T) {
	r := Regressions()
	r[0].A = 99
	if Regressions()[0].A == 99 {
		t.Error("Regressions() exposed the internal table")
	}
}
