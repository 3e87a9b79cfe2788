package scoring

import (
	"math"

	"github.com/dotcommander/riverwqi/internal/model"
)

// Band maps the closed value interval [Min, Max] to a Q-value.
type Band struct {
	Min float64
	Max float64
	Q   float64
}

// FallbackFunc computes the Q-value when no band matches.
type FallbackFunc func(value float64) float64

// QualityScale is the ordered band table for one parameter. Bands are scanned
// in order and the first containing band wins, so nested intervals express
// the half-open pH ranges.
type QualityScale struct {
	Parameter model.Parameter
	Bands     []Band
	Fallback  FallbackFunc
}

// Score maps value onto the scale.
func (s QualityScale) Score(value float64) float64 {
	for _, b := range s.Bands {
		if value >= b.Min && value <= b.Max {
			return b.Q
		}
	}
	return s.Fallback(value)
}

var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
)

// atMost builds bands of the form value <= limit.
func atMost(pairs ...[2]float64) []Band {
	bands := make([]Band, 0, len(pairs))
	for _, p := range pairs {
		bands = append(bands, Band{Min: negInf, Max: p[0], Q: p[1]})
	}
	return bands
}

// atLeast builds bands of the form value >= limit.
func atLeast(pairs ...[2]float64) []Band {
	bands := make([]Band, 0, len(pairs))
	for _, p := range pairs {
		bands = append(bands, Band{Min: p[0], Max: posInf, Q: p[1]})
	}
	return bands
}

// floorZero clamps q at 0. NaN also becomes 0.
func floorZero(q float64) float64 {
	if !(q > 0) {
		return 0
	}
	return q
}

func constant(q float64) FallbackFunc {
	return func(float64) float64 { return q }
}

// defaultScales holds the Q-value tables for the six weighted parameters.
func defaultScales() []QualityScale {
	return []QualityScale{
		{
			Parameter: model.DO,
			Bands:     atLeast([2]float64{7.5, 90}, [2]float64{7.0, 85}, [2]float64{6.5, 80}, [2]float64{6.0, 75}, [2]float64{5.5, 70}, [2]float64{5.0, 65}),
			// truncation toward zero, not rounding
			Fallback: func(v float64) float64 { return floorZero(math.Trunc(v * 10)) },
		},
		{
			Parameter: model.PH,
			Bands: []Band{
				{Min: 7.0, Max: 8.0, Q: 90},
				{Min: 6.5, Max: 8.5, Q: 80},
				{Min: 6.0, Max: 9.0, Q: 60},
				{Min: 5.5, Max: 9.5, Q: 40},
			},
			Fallback: constant(20),
		},
		{
			Parameter: model.Nitrate,
			Bands:     atMost([2]float64{1, 95}, [2]float64{2, 90}, [2]float64{5, 80}, [2]float64{7.5, 70}, [2]float64{10, 60}),
			Fallback:  func(v float64) float64 { return floorZero(100 - v*8) },
		},
		{
			Parameter: model.Phosphate,
			Bands:     atMost([2]float64{0.1, 95}, [2]float64{0.2, 90}, [2]float64{0.4, 80}, [2]float64{0.8, 60}, [2]float64{1.2, 40}, [2]float64{1.6, 30}),
			Fallback:  func(v float64) float64 { return floorZero(100 - v*40) },
		},
		{
			Parameter: model.Turbidity,
			Bands:     atMost([2]float64{1, 95}, [2]float64{5, 90}, [2]float64{10, 80}, [2]float64{20, 70}, [2]float64{50, 50}, [2]float64{100, 30}),
			Fallback:  func(v float64) float64 { return floorZero(100 - v) },
		},
		{
			Parameter: model.TDS,
			Bands:     atMost([2]float64{50, 95}, [2]float64{100, 85}, [2]float64{200, 75}, [2]float64{300, 65}, [2]float64{400, 50}, [2]float64{500, 35}),
			Fallback:  func(v float64) float64 { return floorZero(100 - v/10) },
		},
	}
}
