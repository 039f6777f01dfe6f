package types

import (
	"testing"
	"time"
)

func TestSeverity_Ordering(t *testing.T) {
	ordered := []Severity{SeverityNone, SeverityAcceptable, SeverityHigh, SeverityCritical}
	for i := 1; i < len(ordered); i++ {
		if !ordered[i].Exceeds(ordered[i-1]) {
			t.Errorf("expected %s to exceed %s", ordered[i], ordered[i-1])
		}
		if ordered[i-1].Exceeds(ordered[i]) {
			t.Errorf("did not expect %s to exceed %s", ordered[i-1], ordered[i])
		}
	}
}

func TestParseSeverity(t *testing.T) {
	for _, name := range []string{"NONE", "ACCEPTABLE", "HIGH", "CRITICAL"} {
		s, err := ParseSeverity(name)
		if err != nil {
			t.Errorf("ParseSeverity(%q) returned error: %v", name, err)
		}
		if s.String() != name {
			t.Errorf("expected %q, got %q", name, s)
		}
	}

	if _, err := ParseSeverity("medium"); err == nil {
		t.Error("expected error for unknown severity")
	}
}

func validReport() DriftReport {
	changes := []ResourceChange{
		{Address: "aws_instance.web", ResourceType: "aws_instance", Action: ActionUpdate},
	}
	return DriftReport{
		Timestamp:        time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
		Environment:      "staging",
		Region:           "eu-west-1",
		DriftDetected:    true,
		Severity:         SeverityAcceptable,
		Summary:          Summarize(changes),
		ResourceChanges:  changes,
		PlanArtifactPath: "/var/lib/driftguard/plan-20260825T120000Z.txt",
		DetectedBy:       "ops@example",
		CloudAccount:     "123456789012",
	}
}

func TestDriftReport_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*DriftReport)
		wantErr bool
	}{
		{name: "valid report", mutate: func(r *DriftReport) {}, wantErr: false},
		{name: "zero timestamp", mutate: func(r *DriftReport) { r.Timestamp = time.Time{} }, wantErr: true},
		{name: "missing environment", mutate: func(r *DriftReport) { r.Environment = "" }, wantErr: true},
		{name: "missing region", mutate: func(r *DriftReport) { r.Region = "" }, wantErr: true},
		{name: "bad severity", mutate: func(r *DriftReport) { r.Severity = "WARN" }, wantErr: true},
		{
			name: "flag disagrees with summary",
			mutate: func(r *DriftReport) {
				r.DriftDetected = false
			},
			wantErr: true,
		},
		{
			name: "invalid nested change",
			mutate: func(r *DriftReport) {
				r.ResourceChanges[0].Address = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validReport()
			tt.mutate(&r)
			err := r.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDriftReport_Filters(t *testing.T) {
	r := validReport()
	r.ResourceChanges = append(r.ResourceChanges, ResourceChange{
		Address:           "aws_security_group.ingress",
		ResourceType:      "aws_security_group",
		Action:            ActionDestroy,
		SecuritySensitive: true,
	})
	r.Summary = Summarize(r.ResourceChanges)
	r.Severity = SeverityCritical

	destroys := r.ChangesByAction(ActionDestroy)
	if len(destroys) != 1 || destroys[0].Address != "aws_security_group.ingress" {
		t.Errorf("unexpected destroy set: %+v", destroys)
	}

	sensitive := r.SecuritySensitiveChanges()
	if len(sensitive) != 1 || !sensitive[0].SecuritySensitive {
		t.Errorf("unexpected sensitive set: %+v", sensitive)
	}
}
