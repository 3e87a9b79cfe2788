package standards

import (
	"math"
	"testing"

	"github.com/dotcommander/riverwqi/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssess(t *testing.T) {
	c := NewChecker()

	tests := []struct {
		name       string
		param      model.Parameter
		value      float64
		wantStatus Status
		wantSymbol string
	}{
		{"turbidity within", model.Turbidity, 3, WithinStandard, "✓"},
		{"turbidity exceeds", model.Turbidity, 7, ExceedsStandard, "✗"},
		{"turbidity at max", model.Turbidity, 5, WithinStandard, "✓"},
		{"pH below min", model.PH, 6.4, ExceedsStandard, "✗"},
		{"pH at min", model.PH, 6.5, WithinStandard, "✓"},
		{"DO unbounded max", model.DO, 1e9, WithinStandard, "✓"},
		{"DO below min", model.DO, 4.2, ExceedsStandard, "✗"},
		{"iron exceeds", model.Iron, 31.75, ExceedsStandard, "✗"},
		{"iron negative", model.Iron, -6.6, ExceedsStandard, "✗"},
		{"iron within", model.Iron, 0.1, WithinStandard, "✓"},
		{"no standard", model.Parameter("lead"), 1, NoStandard, "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, symbol := c.Assess(tt.param, tt.value)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantSymbol, symbol)
		})
	}
}

func TestFindIssues(t *testing.T) {
	preds, err := model.NewPredictor().PredictAll(10)
	require.NoError(t, err)

	issues := NewChecker().FindIssues(preds)

	// pH 7.629, DO 8.2, turbidity 0.86 and nitrate 0.28 comply.
	require.Len(t, issues, 3)
	assert.Equal(t, model.TDS, issues[0].Parameter)
	assert.Equal(t, TooHigh, issues[0].Kind)
	assert.Equal(t, model.Iron, issues[1].Parameter)
	assert.Equal(t, model.Phosphate, issues[2].Parameter)
	assert.Equal(t, "High TDS (780.370)", issues[0].String())
}

func TestFindIssues_LowValues(t *testing.T) {
	preds := model.Predictions{
		model.DO:   4.2,
		model.PH:   6.0,
		model.Iron: -1,
	}
	issues := NewChecker().FindIssues(preds)

	require.Len(t, issues, 3)
	assert.Equal(t, "Low pH (6.000)", issues[0].String())
	assert.Equal(t, "Low DO (4.200)", issues[1].String())
	assert.Equal(t, "Low iron (-1.000)", issues[2].String())
}

func TestFindIssues_SkipsUnregulated(t *testing.T) {
	preds := model.Predictions{model.Parameter("lead"): 1000}
	assert.Empty(t, NewChecker().FindIssues(preds))
}

func TestBoundStrings(t *testing.T) {
	b := Bound{Min: 5, Max: math.Inf(1)}
	assert.False(t, b.HasMax())
	assert.Equal(t, "No max", b.MaxString())
	assert.Equal(t, "5", b.MinString())

	b = Bound{Min: 0, Max: 0.3}
	assert.True(t, b.HasMax())
	assert.Equal(t, "0.3", b.MaxString())
}

func TestStandardsTable(t *testing.T) {
	s := Standards()
	require.Len(t, s, len(model.AllParameters))
	for i, p := range model.AllParameters {
		assert.Equal(t, p, s[i].Parameter)
	}
}
