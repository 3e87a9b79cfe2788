// Package standards flags predicted values that fall outside the DENR water
// quality standards.
package standards

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/dotcommander/riverwqi/internal/model"
)

// Status is the compliance outcome for a single value.
type Status string

const (
	WithinStandard  Status = "Within Standard"
	ExceedsStandard Status = "Exceeds Standard"
	NoStandard      Status = "No Standard"
)

// Symbol returns the glyph displayed next to the status.
func (s Status) Symbol() string {
	switch s {
	case WithinStandard:
		return "✓"
	case ExceedsStandard:
		return "✗"
	default:
		return "-"
	}
}

// Bound is a closed [Min, Max] range. Max may be +Inf.
type Bound struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the bound.
func (b Bound) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// HasMax reports whether the bound has an upper limit.
func (b Bound) HasMax() bool {
	return !math.IsInf(b.Max, 1)
}

// MaxString renders the upper limit, or "No max" when unbounded.
func (b Bound) MaxString() string {
	if !b.HasMax() {
		return "No max"
	}
	return strconv.FormatFloat(b.Max, 'f', -1, 64)
}

// MinString renders the lower limit.
func (b Bound) MinString() string {
	return strconv.FormatFloat(b.Min, 'f', -1, 64)
}

// Standard is the regulatory bound for one parameter.
type Standard struct {
	Parameter model.Parameter
	Bound     Bound
}

var table = []Standard{
	{Parameter: model.PH, Bound: Bound{Min: 6.5, Max: 8.5}},
	{Parameter: model.DO, Bound: Bound{Min: 5.0, Max: math.Inf(1)}},
	{Parameter: model.Turbidity, Bound: Bound{Min: 0, Max: 5}},
	{Parameter: model.TDS, Bound: Bound{Min: 0, Max: 100}},
	{Parameter: model.Iron, Bound: Bound{Min: 0, Max: 0.3}},
	{Parameter: model.Phosphate, Bound: Bound{Min: 0, Max: 0.4}},
	{Parameter: model.Nitrate, Bound: Bound{Min: 0, Max: 10}},
}

// Standards returns a copy of the standards table in display order.
func Standards() []Standard {
	return append([]Standard(nil), table...)
}

// IssueKind tells which side of the bound a value fell on.
type IssueKind string

const (
	TooLow  IssueKind = "low"
	TooHigh IssueKind = "high"
)

// Issue is a predicted value outside its standard.
type Issue struct {
	Parameter model.Parameter `json:"parameter"`
	Value     float64         `json:"value"`
	Kind      IssueKind       `json:"kind"`
}

// MarshalJSON writes a non-finite value as null.
func (i Issue) MarshalJSON() ([]byte, error) {
	type issue Issue
	return json.Marshal(struct {
		issue
		Value *float64 `json:"value"`
	}{issue(i), model.Finite(i.Value)})
}

func (i Issue) String() string {
	prefix := "High"
	if i.Kind == TooLow {
		prefix = "Low"
	}
	return fmt.Sprintf("%s %s (%.3f)", prefix, i.Parameter, i.Value)
}

// Checker compares values with the standards table. It is safe for
// concurrent use.
type Checker struct {
	bounds map[model.Parameter]Bound
}

// NewChecker creates a Checker over the DENR standards.
func NewChecker() *Checker {
	bounds := make(map[model.Parameter]Bound, len(table))
	for _, s := range table {
		bounds[s.Parameter] = s.Bound
	}
	return &Checker{bounds: bounds}
}

// Bound returns the standard for p, if one exists.
func (c *Checker) Bound(p model.Parameter) (Bound, bool) {
	b, ok := c.bounds[p]
	return b, ok
}

// Assess returns the compliance status of value and its display symbol.
func (c *Checker) Assess(p model.Parameter, value float64) (Status, string) {
	b, ok := c.bounds[p]
	if !ok {
		return NoStandard, NoStandard.Symbol()
	}
	if b.Contains(value) {
		return WithinStandard, WithinStandard.Symbol()
	}
	return ExceedsStandard, ExceedsStandard.Symbol()
}

// FindIssues lists every prediction outside its standard, in display order.
// Parameters with no standard are skipped.
func (c *Checker) FindIssues(preds model.Predictions) []Issue {
	var issues []Issue
	for _, pred := range preds.Ordered() {
		b, ok := c.bounds[pred.Parameter]
		if !ok {
			continue
		}
		switch {
		case pred.Value < b.Min:
			issues = append(issues, Issue{Parameter: pred.Parameter, Value: pred.Value, Kind: TooLow})
		case pred.Value > b.Max:
			issues = append(issues, Issue{Parameter: pred.Parameter, Value: pred.Value, Kind: TooHigh})
		}
	}
	return issues
}
