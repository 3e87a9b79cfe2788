package scoring

import (
	"math"
	"testing"

	"github.com/dotcommander/riverwqi/internal/model"
)

func TestRateScore(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  Rating
	}{
		{"Excellent - upper bound", 100, Excellent},
		{"Excellent - lower bound", 91, Excellent},
		{"Good - upper bound", 90, Good},
		{"Good - mid range", 74.37, Good},
		{"Good - lower bound", 71, Good},
		{"Moderate - upper bound", 70, Moderate},
		{"Moderate - mid range", 69.42, Moderate},
		{"Moderate - lower bound", 51, Moderate},
		{"Poor - upper bound", 50, Poor},
		{"Poor - lower bound", 26, Poor},
		{"Very Poor - upper bound", 25, VeryPoor},
		{"Very Poor - zero", 0, VeryPoor},
		{"gap 25-26", 25.5, Undefined},
		{"gap 50-51", 50.5, Undefined},
		{"gap 70-71", 70.5, Undefined},
		{"gap 90-91", 90.5, Undefined},
		{"above range", 100.5, Undefined},
		{"negative", -1, Undefined},
		{"float noise above band edge", 90 + 1e-12, Good},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RateScore(tt.score); got != tt.want {
				t.Errorf("RateScore(%v) = %q, want %q", tt.score, got, tt.want)
			}
		})
	}
}

func TestRatingBandsOrdered(t *testing.T) {
	bands := RatingBands()
	if len(bands) != 5 {
		t.Fatalf("RatingBands() len = %d, want 5", len(bands))
	}
	for i := 1; i < len(bands); i++ {
		if bands[i].Max >= bands[i-1].Min {
			t.Errorf("band %d (%v) overlaps band %d (%v)", i, bands[i], i-1, bands[i-1])
		}
	}
}

func TestWeights(t *testing.T) {
	ws := Weights()
	if len(ws) != 6 {
		t.Fatalf("Weights() len = %d, want 6", len(ws))
	}
	var sum float64
	for _, w := range ws {
		if w.Parameter == model.Iron {
			t.Error("iron must not carry a WQI weight")
		}
		if w.Value <= 0 || w.Value > 1 {
			t.Errorf("weight %s = %v, want (0,1]", w.Parameter, w.Value)
		}
		sum += w.Value
	}
	if math.Abs(sum-1.001) > 1e-9 {
		t.Errorf("weight total = %v, want 1.001", sum)
	}

	ws[0].Value = 42
	if Weights()[0].Value == 42 {
		t.Error("Weights() exposed the internal table")
	}
}
