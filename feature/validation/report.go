package validation

import (
	"time"

	"record-compactor/feature/validation/checks"
)

// Priority of a recommendation.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommendation is a suggested action for a failed check.
type Recommendation struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Action      string `json:"action"`
}

// Report aggregates check results.
type Report struct {
	Valid           bool                 `json:"valid"`
	Checks          []checks.CheckResult `json:"checks"`
	CriticalIssues  []string             `json:"critical_issues"`
	Warnings        []string             `json:"warnings"`
	Recommendations []Recommendation     `json:"recommendations"`
	Timestamp       time.Time            `json:"timestamp"`
	DurationMs      int64                `json:"duration_ms"`
}

// Check returns the result with the given name.
func (r *Report) Check(name string) (checks.CheckResult, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return checks.CheckResult{}, false
}

// Passed counts passing checks, skipped ones included.
func (r *Report) Passed() int {
	n := 0
	for _, c := range r.Checks {
		if c.Passed {
			n++
		}
	}
	return n
}

// critical reports whether a failure of the named check blocks compaction.
// Storage and the ledger are optional collaborators.
func critical(name string) bool {
	return name == checks.Disk || name == checks.Config
}

func buildReport(results []checks.CheckResult, started time.Time) *Report {
	report := &Report{
		Valid:           true,
		Checks:          results,
		CriticalIssues:  []string{},
		Warnings:        []string{},
		Recommendations: []Recommendation{},
		Timestamp:       started.UTC(),
		DurationMs:      time.Since(started).Milliseconds(),
	}
	for _, res := range results {
		if res.Skipped {
			report.Warnings = append(report.Warnings, res.Name+": "+res.Message)
			continue
		}
		if res.Passed {
			continue
		}
		if critical(res.Name) {
			report.Valid = false
			report.CriticalIssues = append(report.CriticalIssues, res.Name+": "+res.Message)
		} else {
			report.Warnings = append(report.Warnings, res.Name+": "+res.Message)
		}
		if rec, ok := recommend(res); ok {
			report.Recommendations = append(report.Recommendations, rec)
		}
	}
	return report
}

func recommend(res checks.CheckResult) (Recommendation, bool) {
	switch res.Name {
	case checks.Disk:
		return Recommendation{
			Category:    checks.Disk,
			Description: res.Message,
			Priority:    PriorityHigh,
			Action:      "Free disk space or point VALIDATION_OUTPUT_DIRECTORY at a larger volume",
		}, true
	case checks.Config:
		return Recommendation{
			Category:    checks.Config,
			Description: res.Message,
			Priority:    PriorityHigh,
			Action:      "Fix COMPACTOR_* settings or the abbreviation table file",
		}, true
	case checks.Storage:
		action := "Check STORAGE_ENDPOINT and credentials"
		if res.Metadata["missing"] != "" {
			action = "Run 'validate storage --fix' to create the bucket and artifact prefix"
		}
		return Recommendation{
			Category:    checks.Storage,
			Description: res.Message,
			Priority:    PriorityMedium,
			Action:      action,
		}, true
	case checks.Database:
		return Recommendation{
			Category:    checks.Database,
			Description: res.Message,
			Priority:    PriorityLow,
			Action:      "Run 'history --migrate' to create or update compaction_runs",
		}, true
	}
	return Recommendation{}, false
}
