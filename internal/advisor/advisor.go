// Package advisor derives remediation guidance from a normalized change
// list. It is deliberately decoupled from severity classification: adding
// or removing patterns here can never change a run's risk level.
package advisor

import (
	"fmt"

	"github.com/driftguard/driftguard/pkg/types"
)

// Advisor scans a change list for recognized resource-type patterns
type Advisor struct {
	patterns []pattern
}

// New creates an advisor with the built-in pattern registry
func New() *Advisor {
	return &Advisor{patterns: patterns}
}

// newEmpty returns an advisor with no patterns registered; used by tests
// to prove suggestions never feed back into classification.
func newEmpty() *Advisor {
	return &Advisor{}
}

// Suggest returns the suggestions for a change list, ordered by the fixed
// pattern priority, with the generic reconciliation workflow appended to
// every non-empty run. Unmatched changes carry no specific suggestion but
// are still counted in the generic workflow.
func (a *Advisor) Suggest(changes []types.ResourceChange) []types.RemediationSuggestion {
	if len(changes) == 0 {
		return nil
	}

	var suggestions []types.RemediationSuggestion
	for _, p := range a.patterns {
		var matches []string
		for _, c := range changes {
			if p.match(c) {
				matches = append(matches, c.Address)
			}
		}
		if len(matches) == 0 {
			continue
		}
		suggestions = append(suggestions, types.RemediationSuggestion{
			Category: p.category,
			Title:    p.title,
			Guidance: p.guidance,
			Matches:  matches,
		})
	}

	suggestions = append(suggestions, genericWorkflow(len(changes)))
	return suggestions
}

// genericWorkflow is the baseline reconciliation procedure attached to
// every drifted run regardless of pattern matches.
func genericWorkflow(total int) types.RemediationSuggestion {
	return types.RemediationSuggestion{
		Category: types.CategoryGeneric,
		Title:    fmt.Sprintf("General reconciliation workflow (%d changed resources)", total),
		Guidance: []string{
			"Review the full plan artifact and identify who or what made each out-of-band change.",
			"Decide per resource: adopt the live state into the declared configuration, or reconcile the live state back.",
			"Run the reconciliation through the normal change process; never apply blind.",
			"Re-run drift detection afterwards to confirm a clean plan.",
		},
	}
}
