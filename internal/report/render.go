package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/NotDannyCrawford/aws-deploy-skill/internal/model"
	"github.com/NotDannyCrawford/aws-deploy-skill/internal/ui"
)

// Renderer turns a report into output text.
type Renderer interface {
	Render(r *Report) (string, error)
}

// NewRenderer returns the renderer for a format ("text" or "json").
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case "", "text":
		return TextRenderer{}, nil
	case "json":
		return JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// TextRenderer renders a severity-grouped, styled listing for humans.
type TextRenderer struct{}

func (TextRenderer) Render(r *Report) (string, error) {
	var b strings.Builder

	groups := []struct {
		severity model.Severity
		header   string
		style    func(string) string
	}{
		{model.SeverityCritical, "CRITICAL", ui.Critical},
		{model.SeverityWarning, "WARNING", ui.Warning},
		{model.SeverityInfo, "INFO", ui.Pass},
	}

	for _, g := range groups {
		first := true
		for _, f := range r.Findings {
			if f.Severity != g.severity {
				continue
			}
			if first {
				fmt.Fprintf(&b, "%s\n", ui.Bold(g.header))
				first = false
			}
			fmt.Fprintf(&b, "  %s %s %s\n", g.style("*"), ui.Dim("["+string(f.Category)+"]"), f.Message)
			if f.File != "" {
				loc := f.File
				if f.Line > 0 {
					loc = fmt.Sprintf("%s:%d", f.File, f.Line)
				}
				fmt.Fprintf(&b, "      %s\n", ui.Dim(loc))
			}
			if f.Suggestion != "" {
				fmt.Fprintf(&b, "      %s\n", ui.Hint("Fix: "+f.Suggestion))
			}
		}
		if !first {
			b.WriteString("\n")
		}
	}

	summary := fmt.Sprintf("%d critical, %d warnings, %d info: %s",
		r.Counts[model.SeverityCritical],
		r.Counts[model.SeverityWarning],
		r.Counts[model.SeverityInfo],
		strings.ToUpper(string(r.Status)))

	switch r.Status {
	case StatusFail:
		b.WriteString(ui.Critical(summary))
	case StatusWarn:
		b.WriteString(ui.Warning(summary))
	default:
		b.WriteString(ui.Pass(summary))
	}
	b.WriteString("\n")

	return b.String(), nil
}

// JSONRenderer renders the structured report for automation.
type JSONRenderer struct{}

func (JSONRenderer) Render(r *Report) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
