package server

import (
	"embed"
	"html/template"

	"github.com/dotcommander/riverwqi/internal/report"
	"github.com/dotcommander/riverwqi/internal/scoring"
	"github.com/dotcommander/riverwqi/internal/standards"
)

//go:embed templates/*
var templateFS embed.FS

// newTemplates creates and parses the HTML templates with custom functions.
func newTemplates() *template.Template {
	funcs := template.FuncMap{
		"distance": report.FormatDistance,
		"ratingClass": func(r scoring.Rating) string {
			switch r {
			case scoring.Excellent, scoring.Good:
				return "good"
			case scoring.Moderate:
				return "moderate"
			case scoring.Poor, scoring.VeryPoor:
				return "poor"
			}
			return "undefined"
		},
		"statusClass": func(s standards.Status) string {
			switch s {
			case standards.WithinStandard:
				return "ok"
			case standards.ExceedsStandard:
				return "bad"
			}
			return "none"
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}
