package checks

import "time"

// Check names.
const (
	Disk     = "disk"
	Config   = "config"
	Storage  = "storage"
	Database = "database"
)

// Names lists the checks in report order.
var Names = []string{Disk, Config, Storage, Database}

// CheckResult is the outcome of one check.
type CheckResult struct {
	Name       string            `json:"name"`
	Passed     bool              `json:"passed"`
	Skipped    bool              `json:"skipped,omitempty"`
	Message    string            `json:"message"`
	DurationMs int64             `json:"duration_ms"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

func newResult(name string) CheckResult {
	return CheckResult{Name: name, Metadata: map[string]string{}}
}

func (r CheckResult) pass(start time.Time, msg string) CheckResult {
	r.Passed = true
	r.Message = msg
	r.DurationMs = time.Since(start).Milliseconds()
	return r
}

func (r CheckResult) fail(start time.Time, msg string) CheckResult {
	r.Passed = false
	r.Message = msg
	r.DurationMs = time.Since(start).Milliseconds()
	return r
}

func (r CheckResult) skip(start time.Time, msg string) CheckResult {
	r = r.pass(start, msg)
	r.Skipped = true
	return r
}
