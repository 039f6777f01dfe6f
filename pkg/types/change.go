package types

import "fmt"

// Action represents the operation the provisioning tool plans for a resource.
type Action string

const (
	// ActionCreate indicates a new resource will be created
	ActionCreate Action = "create"
	// ActionUpdate indicates an existing resource will be updated in place
	ActionUpdate Action = "update"
	// ActionDestroy indicates a resource will be destroyed
	ActionDestroy Action = "destroy"
	// ActionReplace indicates a resource will be destroyed and recreated.
	// Replace is never collapsed into destroy or create.
	ActionReplace Action = "replace"
)

// IsValid checks if the Action is one of the four known operations
func (a Action) IsValid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDestroy, ActionReplace:
		return true
	default:
		return false
	}
}

// IsDestructive returns true for operations that remove a live resource
func (a Action) IsDestructive() bool {
	return a == ActionDestroy || a == ActionReplace
}

// String returns the string representation of Action
func (a Action) String() string {
	return string(a)
}

// ResourceChange is one proposed change to one resource, extracted from the
// provisioning tool's plan. Values are created once per run by the extractor
// and never mutated afterwards.
type ResourceChange struct {
	Address           string   `json:"address"`
	ResourceType      string   `json:"resourceType"`
	Name              string   `json:"name,omitempty"`
	Provider          string   `json:"provider,omitempty"`
	Action            Action   `json:"action"`
	SecuritySensitive bool     `json:"securitySensitive"`
	ChangedAttributes []string `json:"changedAttributes,omitempty"`
}

// Validate checks if the ResourceChange has all required fields
func (rc *ResourceChange) Validate() error {
	if rc.Address == "" {
		return fmt.Errorf("resource change address cannot be empty")
	}
	if rc.ResourceType == "" {
		return fmt.Errorf("resource change type cannot be empty")
	}
	if !rc.Action.IsValid() {
		return fmt.Errorf("invalid action: %s", rc.Action)
	}
	return nil
}

// HasChangedAttribute reports whether the plan identified a delta on the
// named attribute. Attribute deltas are only available from the structured
// plan rendering; textual plans yield an empty list.
func (rc *ResourceChange) HasChangedAttribute(name string) bool {
	for _, attr := range rc.ChangedAttributes {
		if attr == name {
			return true
		}
	}
	return false
}

// DriftSummary holds aggregate counts over a list of resource changes.
type DriftSummary struct {
	ToAdd     int `json:"resourcesToAdd"`
	ToChange  int `json:"resourcesToChange"`
	ToDestroy int `json:"resourcesToDestroy"`
	ToReplace int `json:"resourcesToReplace"`
	Total     int `json:"totalChanges"`
}

// Summarize computes the aggregate counts for a change list.
// Total is always the sum of the four action counters.
func Summarize(changes []ResourceChange) DriftSummary {
	var s DriftSummary
	for _, c := range changes {
		switch c.Action {
		case ActionCreate:
			s.ToAdd++
		case ActionUpdate:
			s.ToChange++
		case ActionDestroy:
			s.ToDestroy++
		case ActionReplace:
			s.ToReplace++
		}
	}
	s.Total = s.ToAdd + s.ToChange + s.ToDestroy + s.ToReplace
	return s
}

// HasDrift returns true if any changes were counted
func (s DriftSummary) HasDrift() bool {
	return s.Total > 0
}
