package classifier

import "github.com/driftguard/driftguard/pkg/types"

// Classifier assigns exactly one severity to a change list. It is a pure
// function of its input: no I/O, no global state.
type Classifier struct {
	registry *SecurityRegistry
}

// New creates a classifier backed by the given security registry
func New(registry *SecurityRegistry) *Classifier {
	if registry == nil {
		registry = NewSecurityRegistry()
	}
	return &Classifier{registry: registry}
}

// Annotate derives the SecuritySensitive flag for each change from the
// registry. The input slice is not modified; a new slice is returned.
func (c *Classifier) Annotate(changes []types.ResourceChange) []types.ResourceChange {
	if changes == nil {
		return nil
	}
	annotated := make([]types.ResourceChange, len(changes))
	for i, change := range changes {
		change.SecuritySensitive = c.registry.IsSensitive(change.ResourceType)
		annotated[i] = change
	}
	return annotated
}

// Classify applies the ordered rule set, first match wins:
//
//  1. CRITICAL: any security-sensitive destroy or replace. Destructive
//     operations on security primitives carry irreversible exposure risk,
//     so they dominate regardless of how few resources are affected.
//  2. HIGH: any other destroy or replace (availability/data-loss risk).
//  3. ACCEPTABLE: remaining non-empty change lists (create/update only).
//  4. NONE: empty change list.
func (c *Classifier) Classify(changes []types.ResourceChange) types.Severity {
	if len(changes) == 0 {
		return types.SeverityNone
	}

	destructive := false
	for _, change := range changes {
		if !change.Action.IsDestructive() {
			continue
		}
		if change.SecuritySensitive {
			return types.SeverityCritical
		}
		destructive = true
	}

	if destructive {
		return types.SeverityHigh
	}
	return types.SeverityAcceptable
}
