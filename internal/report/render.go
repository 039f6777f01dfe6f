package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/driftguard/driftguard/pkg/types"
)

// Format selects the output representation of a drift report
type Format string

const (
	// FormatStructured is the machine-parseable JSON form with stable
	// field names; its schema is a compatibility contract.
	FormatStructured Format = "structured"
	// FormatYAML is the structured form rendered as YAML, same field names
	FormatYAML Format = "yaml"
	// FormatHuman is the long-form document for operators
	FormatHuman Format = "human"
	// FormatConsole is the condensed form for CI log streaming
	FormatConsole Format = "console"
)

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatStructured, FormatYAML, FormatHuman, FormatConsole:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use structured, yaml, human or console)", name)
	}
}

// Render projects the report into the requested representation. Rendering
// is pure: the same report and format always yield identical bytes.
func Render(r *types.DriftReport, format Format) ([]byte, error) {
	switch format {
	case FormatStructured:
		return renderJSON(r)
	case FormatYAML:
		return yaml.Marshal(r)
	case FormatHuman:
		return renderHuman(r), nil
	case FormatConsole:
		return renderConsole(r), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func renderJSON(r *types.DriftReport) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return append(data, '\n'), nil
}

// severityRationale is the operator-facing explanation for each level
var severityRationale = map[types.Severity]string{
	types.SeverityNone:       "The live infrastructure matches the declared configuration. No action needed.",
	types.SeverityAcceptable: "Only additions and in-place updates were detected. This is usually benign drift (autoscaling, tag sync) but should still be reconciled.",
	types.SeverityHigh:       "At least one resource would be destroyed or replaced. Review for availability and data-loss impact before reconciling.",
	types.SeverityCritical:   "A security-relevant resource would be destroyed or replaced. A dropped network rule or deleted policy can open an exposure window; treat this as an incident.",
}

func renderHuman(r *types.DriftReport) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# Infrastructure Drift Report: %s\n\n", r.Environment)
	fmt.Fprintf(&b, "- **Timestamp**: %s\n", r.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&b, "- **Region**: %s\n", r.Region)
	fmt.Fprintf(&b, "- **Severity**: %s\n", r.Severity)
	fmt.Fprintf(&b, "- **Cloud account**: %s\n", r.CloudAccount)
	fmt.Fprintf(&b, "- **Detected by**: %s\n", r.DetectedBy)
	fmt.Fprintf(&b, "- **Plan artifact**: %s\n\n", r.PlanArtifactPath)

	fmt.Fprintf(&b, "## Assessment\n\n%s\n\n", severityRationale[r.Severity])

	fmt.Fprintf(&b, "## Summary\n\n")
	fmt.Fprintf(&b, "| Add | Change | Destroy | Replace | Total |\n")
	fmt.Fprintf(&b, "|-----|--------|---------|---------|-------|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %d |\n\n",
		r.Summary.ToAdd, r.Summary.ToChange, r.Summary.ToDestroy, r.Summary.ToReplace, r.Summary.Total)

	if len(r.ResourceChanges) > 0 {
		fmt.Fprintf(&b, "## Changed resources\n\n")
		for _, c := range r.ResourceChanges {
			marker := ""
			if c.SecuritySensitive {
				marker = " [security-sensitive]"
			}
			fmt.Fprintf(&b, "- `%s` (%s): %s%s\n", c.Address, c.ResourceType, c.Action, marker)
		}
		b.WriteString("\n")
	}

	if len(r.Suggestions) > 0 {
		fmt.Fprintf(&b, "## Recommended actions\n\n")
		for _, s := range r.Suggestions {
			fmt.Fprintf(&b, "### %s\n\n", s.Title)
			for _, g := range s.Guidance {
				fmt.Fprintf(&b, "- [ ] %s\n", g)
			}
			if len(s.Matches) > 0 {
				fmt.Fprintf(&b, "\nApplies to: %s\n", strings.Join(s.Matches, ", "))
			}
			b.WriteString("\n")
		}
	}

	return []byte(b.String())
}

var severityColor = map[types.Severity]*color.Color{
	types.SeverityNone:       color.New(color.FgGreen),
	types.SeverityAcceptable: color.New(color.FgYellow),
	types.SeverityHigh:       color.New(color.FgRed),
	types.SeverityCritical:   color.New(color.FgRed, color.Bold),
}

func renderConsole(r *types.DriftReport) []byte {
	var b bytes.Buffer

	sev := severityColor[r.Severity].Sprint(r.Severity.String())
	fmt.Fprintf(&b, "drift check %s/%s: %s\n", r.Environment, r.Region, sev)
	fmt.Fprintf(&b, "  add=%d change=%d destroy=%d replace=%d total=%d\n",
		r.Summary.ToAdd, r.Summary.ToChange, r.Summary.ToDestroy, r.Summary.ToReplace, r.Summary.Total)

	for _, c := range r.ResourceChanges {
		line := fmt.Sprintf("  %-8s %s", c.Action, c.Address)
		if c.SecuritySensitive && c.Action.IsDestructive() {
			line = severityColor[types.SeverityCritical].Sprint(line)
		}
		fmt.Fprintln(&b, line)
	}

	if len(r.Suggestions) > 0 {
		fmt.Fprintf(&b, "  %d remediation suggestion(s); run 'driftguard remediate' on the stored report for details\n",
			len(r.Suggestions))
	}
	fmt.Fprintf(&b, "  artifact: %s\n", r.PlanArtifactPath)

	return b.Bytes()
}
