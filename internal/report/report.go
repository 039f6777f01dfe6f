// Package report builds the immutable run report and projects it into the
// supported output representations. All representations are rendered from
// the same DriftReport value; formatting never re-derives severity or
// counts.
package report

import (
	"time"

	"github.com/driftguard/driftguard/pkg/types"
)

// Provenance records where a report came from: the invoking principal and
// the target cloud account. Either may be "unknown" when lookup failed;
// provenance lookup is never fatal.
type Provenance struct {
	DetectedBy   string
	CloudAccount string
}

// Build assembles the single DriftReport for a run. The result is treated
// as immutable by every downstream consumer.
func Build(
	environment, region string,
	severity types.Severity,
	changes []types.ResourceChange,
	suggestions []types.RemediationSuggestion,
	artifactPath string,
	prov Provenance,
	now time.Time,
) *types.DriftReport {
	summary := types.Summarize(changes)

	detectedBy := prov.DetectedBy
	if detectedBy == "" {
		detectedBy = "unknown"
	}
	account := prov.CloudAccount
	if account == "" {
		account = "unknown"
	}

	return &types.DriftReport{
		Timestamp:        now.UTC().Truncate(time.Second),
		Environment:      environment,
		Region:           region,
		DriftDetected:    summary.HasDrift(),
		Severity:         severity,
		Summary:          summary,
		ResourceChanges:  changes,
		Suggestions:      suggestions,
		PlanArtifactPath: artifactPath,
		DetectedBy:       detectedBy,
		CloudAccount:     account,
	}
}
