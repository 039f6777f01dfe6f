package types

import "testing"

func TestAction_IsValid(t *testing.T) {
	valid := []Action{ActionCreate, ActionUpdate, ActionDestroy, ActionReplace}
	for _, a := range valid {
		if !a.IsValid() {
			t.Errorf("expected %s to be valid", a)
		}
	}

	invalid := []Action{"", "delete", "CREATE", "recreate"}
	for _, a := range invalid {
		if a.IsValid() {
			t.Errorf("expected %q to be invalid", a)
		}
	}
}

func TestAction_IsDestructive(t *testing.T) {
	if !ActionDestroy.IsDestructive() {
		t.Error("destroy should be destructive")
	}
	if !ActionReplace.IsDestructive() {
		t.Error("replace should be destructive")
	}
	if ActionCreate.IsDestructive() {
		t.Error("create should not be destructive")
	}
	if ActionUpdate.IsDestructive() {
		t.Error("update should not be destructive")
	}
}

func TestResourceChange_Validate(t *testing.T) {
	tests := []struct {
		name    string
		change  ResourceChange
		wantErr bool
	}{
		{
			name: "valid change",
			change: ResourceChange{
				Address:      "aws_instance.web",
				ResourceType: "aws_instance",
				Name:         "web",
				Action:       ActionUpdate,
			},
			wantErr: false,
		},
		{
			name: "missing address",
			change: ResourceChange{
				ResourceType: "aws_instance",
				Action:       ActionUpdate,
			},
			wantErr: true,
		},
		{
			name: "missing resource type",
			change: ResourceChange{
				Address: "aws_instance.web",
				Action:  ActionUpdate,
			},
			wantErr: true,
		},
		{
			name: "invalid action",
			change: ResourceChange{
				Address:      "aws_instance.web",
				ResourceType: "aws_instance",
				Action:       "delete",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.change.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	changes := []ResourceChange{
		{Address: "a", ResourceType: "t", Action: ActionCreate},
		{Address: "b", ResourceType: "t", Action: ActionUpdate},
		{Address: "c", ResourceType: "t", Action: ActionUpdate},
		{Address: "d", ResourceType: "t", Action: ActionDestroy},
		{Address: "e", ResourceType: "t", Action: ActionReplace},
	}

	s := Summarize(changes)

	if s.ToAdd != 1 || s.ToChange != 2 || s.ToDestroy != 1 || s.ToReplace != 1 {
		t.Errorf("unexpected counts: %+v", s)
	}
	if s.Total != 5 {
		t.Errorf("expected total 5, got %d", s.Total)
	}
	if !s.HasDrift() {
		t.Error("expected HasDrift to be true")
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.Total != 0 {
		t.Errorf("expected total 0, got %d", s.Total)
	}
	if s.HasDrift() {
		t.Error("empty change list must not report drift")
	}
}

func TestResourceChange_HasChangedAttribute(t *testing.T) {
	rc := ResourceChange{
		Address:           "aws_ecs_service.api",
		ResourceType:      "aws_ecs_service",
		Action:            ActionUpdate,
		ChangedAttributes: []string{"desired_count", "tags"},
	}

	if !rc.HasChangedAttribute("desired_count") {
		t.Error("expected desired_count to be reported as changed")
	}
	if rc.HasChangedAttribute("task_definition") {
		t.Error("task_definition was not changed")
	}
}
