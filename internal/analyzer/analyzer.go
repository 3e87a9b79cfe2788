// Package analyzer composes the predictor, scorer, aggregator and standards
// checker into single-point, batch and trend evaluations.
package analyzer

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dotcommander/riverwqi/internal/metrics"
	"github.com/dotcommander/riverwqi/internal/model"
	"github.com/dotcommander/riverwqi/internal/scoring"
	"github.com/dotcommander/riverwqi/internal/standards"
)

// Row is one parameter line of an evaluation table.
type Row struct {
	Parameter model.Parameter  `json:"parameter"`
	Value     float64          `json:"value"`
	Unit      string           `json:"unit"`
	Status    standards.Status `json:"status"`
	Symbol    string           `json:"symbol"`
	QValue    float64          `json:"q_value"`
	Weight    float64          `json:"weight,omitempty"`
}

// MarshalJSON writes a non-finite value as null.
func (r Row) MarshalJSON() ([]byte, error) {
	type row Row
	return json.Marshal(struct {
		row
		Value *float64 `json:"value"`
	}{row(r), model.Finite(r.Value)})
}

// Evaluation is the full result for one distance.
type Evaluation struct {
	ID          string            `json:"id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Distance    float64           `json:"distance_km"`
	Predictions model.Predictions `json:"predictions"`
	Rows        []Row             `json:"rows"`
	WQI         scoring.Result    `json:"wqi"`
	Issues      []standards.Issue `json:"issues"`
}

// Analyzer is safe for concurrent use; every table it holds is read-only.
type Analyzer struct {
	predictor  *model.Predictor
	scorer     *scoring.Scorer
	aggregator *scoring.Aggregator
	checker    *standards.Checker
	logger     *zap.SugaredLogger
	now        func() time.Time
}

// New creates an Analyzer. A nil logger disables logging.
func New(logger *zap.SugaredLogger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	scorer := scoring.NewScorer()
	return &Analyzer{
		predictor:  model.NewPredictor(),
		scorer:     scorer,
		aggregator: scoring.NewAggregator(scorer),
		checker:    standards.NewChecker(),
		logger:     logger,
		now:        time.Now,
	}
}

// Checker exposes the standards checker for presentation code.
func (a *Analyzer) Checker() *standards.Checker {
	return a.checker
}

// Predictor exposes the predictor for presentation code.
func (a *Analyzer) Predictor() *model.Predictor {
	return a.predictor
}

// Evaluate runs the full pipeline for one distance. It fails with
// model.ErrInvalidInput when distance is not a finite number above 0.
func (a *Analyzer) Evaluate(distance float64) (*Evaluation, error) {
	ev, err := a.evaluate(distance)
	if err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			metrics.InvalidDistancesTotal.Inc()
		}
		return nil, err
	}
	metrics.EvaluationsTotal.WithLabelValues("single").Inc()
	return ev, nil
}

func (a *Analyzer) evaluate(distance float64) (*Evaluation, error) {
	preds, err := a.predictor.PredictAll(distance)
	if err != nil {
		return nil, err
	}

	result := a.aggregator.Aggregate(preds)
	weightOf := make(map[model.Parameter]float64, len(result.Details))
	for _, d := range result.Details {
		weightOf[d.Parameter] = d.Weight
	}

	ordered := preds.Ordered()
	rows := make([]Row, 0, len(ordered))
	for _, p := range ordered {
		status, symbol := a.checker.Assess(p.Parameter, p.Value)
		rows = append(rows, Row{
			Parameter: p.Parameter,
			Value:     p.Value,
			Unit:      p.Parameter.Unit(),
			Status:    status,
			Symbol:    symbol,
			QValue:    a.scorer.Score(p.Parameter, p.Value),
			Weight:    weightOf[p.Parameter],
		})
	}

	return &Evaluation{
		ID:          uuid.NewString(),
		GeneratedAt: a.now(),
		Distance:    distance,
		Predictions: preds,
		Rows:        rows,
		WQI:         result,
		Issues:      a.checker.FindIssues(preds),
	}, nil
}
