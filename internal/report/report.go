package report

import (
	"sort"

	"github.com/NotDannyCrawford/aws-deploy-skill/internal/model"
)

// Status is the overall outcome of a checker run.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Report is the terminal artifact of one checker run: findings in
// deterministic order plus severity counts and an overall status.
type Report struct {
	Findings []model.Finding        `json:"findings"`
	Counts   map[model.Severity]int `json:"counts"`
	Status   Status                 `json:"status"`
}

// Build aggregates findings into a report. Identical
// (category, message) pairs are deduplicated; ordering is critical
// first, then warnings, then info, stable within each severity.
func Build(findings []model.Finding) *Report {
	type key struct {
		cat model.Category
		msg string
	}
	seen := map[key]bool{}
	deduped := make([]model.Finding, 0, len(findings))
	for _, f := range findings {
		k := key{f.Category, f.Message}
		if seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, f)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Severity.Rank() < deduped[j].Severity.Rank()
	})

	counts := map[model.Severity]int{}
	for _, f := range deduped {
		counts[f.Severity]++
	}

	status := StatusPass
	if counts[model.SeverityWarning] > 0 {
		status = StatusWarn
	}
	if counts[model.SeverityCritical] > 0 {
		status = StatusFail
	}

	return &Report{Findings: deduped, Counts: counts, Status: status}
}

// Failed reports whether the run should exit non-zero.
func (r *Report) Failed() bool {
	return r.Status == StatusFail
}
