// Package doctor inspects a warden installation: required tools on PATH,
// config integrity, data directories, rule compilation, and the worklist
// file. Each area is a Check; the doctor command runs them all and
// renders the findings.
package doctor

import "context"

// Status grades a single finding.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// CheckItem is one finding within a check. Fixable marks findings that
// `warden init` can repair without hand-editing.
type CheckItem struct {
	Label   string `json:"label"`
	Status  Status `json:"status"`
	Detail  string `json:"detail,omitempty"`
	Fixable bool   `json:"fixable,omitempty"`
}

// Result groups the findings of one check under its display name.
type Result struct {
	Name  string      `json:"name"`
	Items []CheckItem `json:"items"`
}

// Check probes one area of the environment. Run does not return an
// error; a probe that cannot complete reports a failed item instead so
// the remaining checks still run.
type Check interface {
	Name() string
	Run(ctx context.Context) Result
}

// RunAll runs every check in order and collects the results.
func RunAll(ctx context.Context, checks []Check) []Result {
	results := make([]Result, 0, len(checks))
	for _, check := range checks {
		results = append(results, check.Run(ctx))
	}
	return results
}

// Summary tallies finding grades across all results.
func Summary(results []Result) (passed, warned, failed int) {
	for _, r := range results {
		for _, item := range r.Items {
			switch item.Status {
			case StatusPass:
				passed++
			case StatusWarn:
				warned++
			case StatusFail:
				failed++
			}
		}
	}

	return passed, warned, failed
}

// CountFixable counts warn and fail findings marked fixable. Passing
// findings never count, fixable or not.
func CountFixable(results []Result) int {
	count := 0
	for _, r := range results {
		for _, item := range r.Items {
			if !item.Fixable {
				continue
			}
			if item.Status == StatusWarn || item.Status == StatusFail {
				count++
			}
		}
	}

	return count
}
