package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dotcommander/riverwqi/internal/analyzer"
	"github.com/dotcommander/riverwqi/internal/scoring"
	"github.com/dotcommander/riverwqi/internal/standards"
)

// Tool and Version identify reports produced by this program.
const (
	Tool    = "riverwqi"
	Version = "1.0.0"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	w      io.Writer
	indent bool
	now    func() time.Time
}

// NewJSONFormatter creates a new JSONFormatter
func NewJSONFormatter(w io.Writer, indent bool) *JSONFormatter {
	return &JSONFormatter{
		w:      w,
		indent: indent,
		now:    time.Now,
	}
}

// JSONHeader contains report metadata
type JSONHeader struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// JSONEvaluationReport is the JSON form of a single evaluation
type JSONEvaluationReport struct {
	Header     JSONHeader           `json:"header"`
	Evaluation *analyzer.Evaluation `json:"evaluation"`
	Issues     []string             `json:"issues"`
}

// JSONBatchReport is the JSON form of a batch evaluation
type JSONBatchReport struct {
	Header JSONHeader             `json:"header"`
	Batch  *analyzer.BatchSummary `json:"batch"`
}

// JSONTrendReport is the JSON form of a trend series
type JSONTrendReport struct {
	Header JSONHeader            `json:"header"`
	Trend  *analyzer.TrendSeries `json:"trend"`
}

// JSONStandard is a standard with its unbounded maximum rendered as null
type JSONStandard struct {
	Parameter string   `json:"parameter"`
	Unit      string   `json:"unit"`
	Min       float64  `json:"min"`
	Max       *float64 `json:"max"`
}

// JSONTables is the JSON form of the reference tables
type JSONTables struct {
	Standards []JSONStandard       `json:"standards"`
	Weights   []scoring.Weight     `json:"weights"`
	Bands     []scoring.RatingBand `json:"rating_bands"`
}

// JSONTablesReport wraps the reference tables with a header
type JSONTablesReport struct {
	Header JSONHeader `json:"header"`
	JSONTables
}

// NewJSONTables converts tables for JSON encoding.
func NewJSONTables(tables Tables) JSONTables {
	out := JSONTables{
		Standards: make([]JSONStandard, 0, len(tables.Standards)),
		Weights:   tables.Weights,
		Bands:     tables.Bands,
	}
	for _, s := range tables.Standards {
		js := JSONStandard{
			Parameter: string(s.Parameter),
			Unit:      s.Parameter.Unit(),
			Min:       s.Bound.Min,
		}
		if s.Bound.HasMax() {
			upper := s.Bound.Max
			js.Max = &upper
		}
		out.Standards = append(out.Standards, js)
	}
	return out
}

// IssueStrings renders issues in their display form.
func IssueStrings(issues []standards.Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.String()
	}
	return out
}

func (f *JSONFormatter) header() JSONHeader {
	return JSONHeader{
		Tool:      Tool,
		Version:   Version,
		Timestamp: f.now().Format(time.RFC3339),
	}
}

// FormatEvaluation writes the evaluation as JSON
func (f *JSONFormatter) FormatEvaluation(ev *analyzer.Evaluation) error {
	return f.write(JSONEvaluationReport{
		Header:     f.header(),
		Evaluation: ev,
		Issues:     IssueStrings(ev.Issues),
	})
}

// FormatBatch writes the batch summary as JSON
func (f *JSONFormatter) FormatBatch(summary *analyzer.BatchSummary) error {
	return f.write(JSONBatchReport{Header: f.header(), Batch: summary})
}

// FormatTrend writes the trend series as JSON
func (f *JSONFormatter) FormatTrend(trend *analyzer.TrendSeries) error {
	return f.write(JSONTrendReport{Header: f.header(), Trend: trend})
}

// FormatTables writes the reference tables as JSON
func (f *JSONFormatter) FormatTables(tables Tables) error {
	return f.write(JSONTablesReport{Header: f.header(), JSONTables: NewJSONTables(tables)})
}

func (f *JSONFormatter) write(v any) error {
	var jsonBytes []byte
	var err error

	if f.indent {
		jsonBytes, err = json.MarshalIndent(v, "", "  ")
	} else {
		jsonBytes, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}

	jsonBytes = append(jsonBytes, '\n')
	if _, err := f.w.Write(jsonBytes); err != nil {
		return fmt.Errorf("error writing JSON: %w", err)
	}
	return nil
}
