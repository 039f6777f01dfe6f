package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeConfiguration covers invalid environment/region/config input.
	// Raised before any external call is made.
	ErrorTypeConfiguration ErrorType = "Configuration"
	// ErrorTypeExternalTool covers failures of the provisioning tool itself
	ErrorTypeExternalTool ErrorType = "ExternalTool"
	// ErrorTypeParseInconsistency covers disagreement between the tool's
	// exit status and what the extractor found in the plan output
	ErrorTypeParseInconsistency ErrorType = "ParseInconsistency"
	// ErrorTypeNotification covers channel dispatch failures. Warn-only:
	// never fatal, never changes the exit code.
	ErrorTypeNotification ErrorType = "Notification"
)

// Stage identifies which pipeline stage raised the error
type Stage string

const (
	StageConfig  Stage = "configuration"
	StagePlan    Stage = "plan"
	StageExtract Stage = "extract"
	StageReport  Stage = "report"
	StageNotify  Stage = "notify"
)

// DriftError is a typed pipeline error carrying the failing stage and the
// verbatim message of the underlying tool where one exists.
type DriftError struct {
	Type       ErrorType
	Stage      Stage
	Message    string
	ToolOutput string
	Solutions  []string
	cause      error
}

// Error implements the error interface
func (e *DriftError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s failed: %s", e.Type, e.Stage, e.Message))
	if e.cause != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.cause))
	}
	if e.ToolOutput != "" {
		sb.WriteString("\n--- tool output ---\n")
		sb.WriteString(strings.TrimRight(e.ToolOutput, "\n"))
	}
	if len(e.Solutions) > 0 {
		sb.WriteString("\nSolutions:\n")
		for _, s := range e.Solutions {
			sb.WriteString(fmt.Sprintf("  - %s\n", s))
		}
	}
	return sb.String()
}

// Unwrap exposes the wrapped cause for errors.Is/As
func (e *DriftError) Unwrap() error {
	return e.cause
}

// New creates a new DriftError
func New(errType ErrorType, stage Stage, message string) *DriftError {
	return &DriftError{Type: errType, Stage: stage, Message: message}
}

// WithCause attaches the underlying error
func (e *DriftError) WithCause(cause error) *DriftError {
	e.cause = cause
	return e
}

// WithToolOutput attaches the external tool's raw output verbatim
func (e *DriftError) WithToolOutput(output string) *DriftError {
	e.ToolOutput = output
	return e
}

// WithSolutions adds operator-facing remediation steps for the error itself
func (e *DriftError) WithSolutions(solutions ...string) *DriftError {
	e.Solutions = append(e.Solutions, solutions...)
	return e
}

// IsFatal reports whether the error aborts the pipeline. Everything except
// notification failures is fatal.
func IsFatal(err error) bool {
	var de *DriftError
	if !errors.As(err, &de) {
		return true
	}
	return de.Type != ErrorTypeNotification
}

// TypeOf returns the DriftError category, or empty for foreign errors
func TypeOf(err error) ErrorType {
	var de *DriftError
	if errors.As(err, &de) {
		return de.Type
	}
	return ""
}
