package types

import (
	"fmt"
	"time"
)

// SuggestionCategory identifies the recognized change pattern a remediation
// suggestion is bound to. Categories are evaluated in a fixed priority order
// by the advisor.
type SuggestionCategory string

const (
	CategorySecurityGroup  SuggestionCategory = "security-group"
	CategoryIdentityAccess SuggestionCategory = "identity-access"
	CategoryDatabase       SuggestionCategory = "database"
	CategoryComputeService SuggestionCategory = "compute-service"
	CategoryAutoscaling    SuggestionCategory = "autoscaling"
	CategoryTagOnly        SuggestionCategory = "tag-only"
	CategoryGeneric        SuggestionCategory = "generic"
)

// RemediationSuggestion is advisory guidance bound to a recognized change
// pattern. Suggestions never influence severity classification.
type RemediationSuggestion struct {
	Category SuggestionCategory `json:"category"`
	Title    string             `json:"title"`
	Guidance []string           `json:"guidance"`
	Matches  []string           `json:"matches,omitempty"`
}

// DriftReport is the complete output of one detection run. It is built once
// by the report builder and never mutated; a new run always produces a new
// report.
type DriftReport struct {
	Timestamp        time.Time               `json:"timestamp"`
	Environment      string                  `json:"environment"`
	Region           string                  `json:"region"`
	DriftDetected    bool                    `json:"driftDetected"`
	Severity         Severity                `json:"severity"`
	Summary          DriftSummary            `json:"summary"`
	ResourceChanges  []ResourceChange        `json:"resourceChanges"`
	Suggestions      []RemediationSuggestion `json:"remediationSuggestions"`
	PlanArtifactPath string                  `json:"planArtifactPath"`
	DetectedBy       string                  `json:"detectedBy"`
	CloudAccount     string                  `json:"cloudAccount"`
}

// Validate checks if the DriftReport has all required fields
func (r *DriftReport) Validate() error {
	if r.Timestamp.IsZero() {
		return fmt.Errorf("drift report timestamp cannot be zero")
	}
	if r.Environment == "" {
		return fmt.Errorf("drift report environment cannot be empty")
	}
	if r.Region == "" {
		return fmt.Errorf("drift report region cannot be empty")
	}
	if !r.Severity.IsValid() {
		return fmt.Errorf("invalid severity: %s", r.Severity)
	}
	if r.DriftDetected != r.Summary.HasDrift() {
		return fmt.Errorf("driftDetected flag disagrees with summary counts")
	}
	for i, change := range r.ResourceChanges {
		if err := change.Validate(); err != nil {
			return fmt.Errorf("invalid resource change at index %d: %w", i, err)
		}
	}
	return nil
}

// ChangesByAction returns all changes with a specific planned action
func (r *DriftReport) ChangesByAction(action Action) []ResourceChange {
	var filtered []ResourceChange
	for _, c := range r.ResourceChanges {
		if c.Action == action {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// SecuritySensitiveChanges returns the changes touching registered
// security-relevant resource types
func (r *DriftReport) SecuritySensitiveChanges() []ResourceChange {
	var filtered []ResourceChange
	for _, c := range r.ResourceChanges {
		if c.SecuritySensitive {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
