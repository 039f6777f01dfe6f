package types

import "fmt"

// Severity is the four-level risk classification of a drift run,
// totally ordered by risk: NONE < ACCEPTABLE < HIGH < CRITICAL.
type Severity string

const (
	SeverityNone       Severity = "NONE"
	SeverityAcceptable Severity = "ACCEPTABLE"
	SeverityHigh       Severity = "HIGH"
	SeverityCritical   Severity = "CRITICAL"
)

var severityRank = map[Severity]int{
	SeverityNone:       0,
	SeverityAcceptable: 1,
	SeverityHigh:       2,
	SeverityCritical:   3,
}

// IsValid checks if the Severity is one of the four levels
func (s Severity) IsValid() bool {
	_, ok := severityRank[s]
	return ok
}

// Rank returns the numeric position of the severity in the risk order
func (s Severity) Rank() int {
	return severityRank[s]
}

// Exceeds reports whether s carries more risk than other
func (s Severity) Exceeds(other Severity) bool {
	return severityRank[s] > severityRank[other]
}

// String returns the string representation of Severity
func (s Severity) String() string {
	return string(s)
}

// ParseSeverity converts a stored severity name back to a Severity
func ParseSeverity(name string) (Severity, error) {
	s := Severity(name)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown severity: %q", name)
	}
	return s, nil
}
