package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dotcommander/riverwqi/internal/analyzer"
	"github.com/dotcommander/riverwqi/internal/model"
	"github.com/dotcommander/riverwqi/internal/output"
	"github.com/dotcommander/riverwqi/internal/report"
)

// PredictResponse is the /api/predict payload.
type PredictResponse struct {
	Evaluation *analyzer.Evaluation `json:"evaluation"`
	Issues     []string             `json:"issues"`
	Report     string               `json:"report"`
}

// queryFloat parses a float query parameter, returning def when it is absent.
func queryFloat(r *http.Request, key string, def float64) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s is not a number: %q", model.ErrInvalidInput, key, raw)
	}
	return v, nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s is not an integer: %q", model.ErrInvalidInput, key, raw)
	}
	return v, nil
}

// evaluate reads the distance query parameter and evaluates it.
func (s *Server) evaluate(r *http.Request) (*analyzer.Evaluation, error) {
	if r.URL.Query().Get("distance") == "" {
		return nil, fmt.Errorf("%w: distance is required", model.ErrInvalidInput)
	}
	d, err := queryFloat(r, "distance", 0)
	if err != nil {
		return nil, err
	}
	return s.analyzer.Evaluate(d)
}

// writeJSON marshals v before writing the header. An encoding failure
// becomes a 500 with an error body.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Errorw("encode response", "error", err)
		status = http.StatusInternalServerError
		data, _ = json.Marshal(map[string]string{"error": fmt.Sprintf("encode response: %v", err)})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

// writeError maps invalid input to 400 and everything else to 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, model.ErrInvalidInput) {
		status = http.StatusBadRequest
	} else {
		s.logger.Errorw("request failed", "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleAPIPredict(w http.ResponseWriter, r *http.Request) {
	ev, err := s.evaluate(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, PredictResponse{
		Evaluation: ev,
		Issues:     output.IssueStrings(ev.Issues),
		Report:     report.Text(ev),
	})
}

func (s *Server) handleAPIBatch(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("distances")
	if strings.TrimSpace(text) == "" {
		s.writeError(w, fmt.Errorf("%w: distances is required", model.ErrInvalidInput))
		return
	}
	s.writeJSON(w, http.StatusOK, s.analyzer.EvaluateBatch(analyzer.ParseDistances(text)))
}

func (s *Server) trend(r *http.Request) (*analyzer.TrendSeries, error) {
	maxDistance, err := queryFloat(r, "max", s.plot.MaxDistance)
	if err != nil {
		return nil, err
	}
	points, err := queryInt(r, "points", s.plot.Points)
	if err != nil {
		return nil, err
	}
	return s.analyzer.Trend(maxDistance, points)
}

func (s *Server) handleAPITrend(w http.ResponseWriter, r *http.Request) {
	trend, err := s.trend(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, trend)
}

func (s *Server) handleAPITables(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, output.NewJSONTables(output.DefaultTables()))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
