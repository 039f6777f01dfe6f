package extractor

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/driftguard/driftguard/pkg/types"
)

// PlanDocument is the structured plan rendering produced by
// `terraform show -json <planfile>`.
type PlanDocument struct {
	FormatVersion    string               `json:"format_version"`
	TerraformVersion string               `json:"terraform_version"`
	ResourceChanges  []PlanResourceChange `json:"resource_changes"`
}

// PlanResourceChange is one entry of the plan's resource_changes array
type PlanResourceChange struct {
	Address      string     `json:"address"`
	ModuleAddr   string     `json:"module_address,omitempty"`
	Mode         string     `json:"mode"`
	Type         string     `json:"type"`
	Name         string     `json:"name"`
	ProviderName string     `json:"provider_name"`
	Change       PlanChange `json:"change"`
}

// PlanChange carries the planned action list and the before/after values
type PlanChange struct {
	Actions []string        `json:"actions"`
	Before  json.RawMessage `json:"before"`
	After   json.RawMessage `json:"after"`
}

// parsePlanDocument parses the structured rendering into normalized changes.
// The structured form is authoritative: a resource whose name happens to
// contain an action word cannot be misread here.
func parsePlanDocument(data []byte) ([]types.ResourceChange, error) {
	var doc PlanDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse plan document: %w", err)
	}

	var changes []types.ResourceChange
	for _, rc := range doc.ResourceChanges {
		if rc.Mode != "" && rc.Mode != "managed" {
			continue
		}
		action, ok := actionFromPlan(rc.Change.Actions)
		if !ok {
			continue
		}
		changes = append(changes, types.ResourceChange{
			Address:           rc.Address,
			ResourceType:      rc.Type,
			Name:              rc.Name,
			Provider:          rc.ProviderName,
			Action:            action,
			ChangedAttributes: changedAttributes(rc.Change.Before, rc.Change.After),
		})
	}
	return changes, nil
}

// actionFromPlan maps the plan's action array to a single Action.
// A paired delete+create (either order) is a replace, never collapsed.
func actionFromPlan(actions []string) (types.Action, bool) {
	if len(actions) == 2 {
		if (actions[0] == "delete" && actions[1] == "create") ||
			(actions[0] == "create" && actions[1] == "delete") {
			return types.ActionReplace, true
		}
		return "", false
	}
	if len(actions) != 1 {
		return "", false
	}
	switch actions[0] {
	case "create":
		return types.ActionCreate, true
	case "update":
		return types.ActionUpdate, true
	case "delete":
		return types.ActionDestroy, true
	default:
		// no-op, read
		return "", false
	}
}

// changedAttributes computes the top-level attribute names whose values
// differ between before and after. Only available when both sides are
// objects; creations and destructions yield nil.
func changedAttributes(beforeRaw, afterRaw json.RawMessage) []string {
	var before, after map[string]interface{}
	if err := json.Unmarshal(beforeRaw, &before); err != nil || before == nil {
		return nil
	}
	if err := json.Unmarshal(afterRaw, &after); err != nil || after == nil {
		return nil
	}

	seen := make(map[string]bool)
	for key, bv := range before {
		av, ok := after[key]
		if !ok || !reflect.DeepEqual(bv, av) {
			seen[key] = true
		}
	}
	for key := range after {
		if _, ok := before[key]; !ok {
			seen[key] = true
		}
	}

	if len(seen) == 0 {
		return nil
	}
	attrs := make([]string, 0, len(seen))
	for key := range seen {
		attrs = append(attrs, key)
	}
	sort.Strings(attrs)
	return attrs
}
