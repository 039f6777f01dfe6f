// Package exitcode maps run outcomes to process exit codes. The mapping is
// a CI contract: pipelines branch on these values, so they must stay stable.
package exitcode

import "github.com/driftguard/driftguard/pkg/types"

const (
	// Clean means no drift was detected
	Clean = 0
	// Failure means the pipeline itself failed before a verdict was reached
	Failure = 1
	// Drift means drift was detected at ACCEPTABLE or HIGH severity
	Drift = 2
	// CriticalDrift means security-relevant destructive drift was detected
	CriticalDrift = 3
)

// ForSeverity returns the exit code for a completed run's severity
func ForSeverity(s types.Severity) int {
	switch s {
	case types.SeverityNone:
		return Clean
	case types.SeverityAcceptable, types.SeverityHigh:
		return Drift
	case types.SeverityCritical:
		return CriticalDrift
	default:
		return Failure
	}
}

// ForError returns the exit code for a run that failed before producing a
// verdict. Notification failures never reach here; they are warn-only.
func ForError(err error) int {
	if err == nil {
		return Clean
	}
	return Failure
}
