package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/driftguard/driftguard/pkg/types"
)

func TestClassify_EmptyChangeList(t *testing.T) {
	c := New(nil)
	assert.Equal(t, types.SeverityNone, c.Classify(nil))
	assert.Equal(t, types.SeverityNone, c.Classify([]types.ResourceChange{}))
}

func TestClassify_CreateUpdateOnly(t *testing.T) {
	c := New(nil)
	changes := []types.ResourceChange{
		{Address: "aws_ecs_service.api", ResourceType: "aws_ecs_service", Action: types.ActionUpdate},
		{Address: "aws_ecs_service.worker", ResourceType: "aws_ecs_service", Action: types.ActionUpdate},
		{Address: "aws_cloudwatch_log_group.api", ResourceType: "aws_cloudwatch_log_group", Action: types.ActionCreate},
	}
	assert.Equal(t, types.SeverityAcceptable, c.Classify(changes))
}

func TestClassify_NonSensitiveDestroy(t *testing.T) {
	c := New(nil)
	changes := []types.ResourceChange{
		{Address: "aws_db_instance.main", ResourceType: "aws_db_instance", Action: types.ActionReplace},
		{Address: "aws_instance.web", ResourceType: "aws_instance", Action: types.ActionUpdate},
	}
	assert.Equal(t, types.SeverityHigh, c.Classify(changes))
}

func TestClassify_SensitiveDestroyDominates(t *testing.T) {
	c := New(nil)

	// one security-sensitive destroy outweighs any number of benign changes
	changes := []types.ResourceChange{
		{Address: "aws_instance.a", ResourceType: "aws_instance", Action: types.ActionCreate},
		{Address: "aws_instance.b", ResourceType: "aws_instance", Action: types.ActionUpdate},
		{Address: "aws_db_instance.main", ResourceType: "aws_db_instance", Action: types.ActionDestroy},
		{Address: "aws_security_group.ingress", ResourceType: "aws_security_group", Action: types.ActionDestroy, SecuritySensitive: true},
	}
	assert.Equal(t, types.SeverityCritical, c.Classify(changes))
}

func TestClassify_SensitiveUpdateIsNotCritical(t *testing.T) {
	c := New(nil)

	// critical requires a destructive action, not merely a sensitive type
	changes := []types.ResourceChange{
		{Address: "aws_iam_role.app", ResourceType: "aws_iam_role", Action: types.ActionUpdate, SecuritySensitive: true},
	}
	assert.Equal(t, types.SeverityAcceptable, c.Classify(changes))
}

func TestClassify_SensitiveReplace(t *testing.T) {
	c := New(nil)
	changes := []types.ResourceChange{
		{Address: "aws_kms_key.data", ResourceType: "aws_kms_key", Action: types.ActionReplace, SecuritySensitive: true},
	}
	assert.Equal(t, types.SeverityCritical, c.Classify(changes))
}

func TestClassify_IsPure(t *testing.T) {
	c := New(nil)
	changes := []types.ResourceChange{
		{Address: "aws_network_acl.main", ResourceType: "aws_network_acl", Action: types.ActionDestroy, SecuritySensitive: true},
		{Address: "aws_instance.web", ResourceType: "aws_instance", Action: types.ActionCreate},
	}

	first := c.Classify(changes)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, c.Classify(changes))
	}
}

func TestAnnotate(t *testing.T) {
	c := New(NewSecurityRegistry("aws_ssm_parameter"))
	changes := []types.ResourceChange{
		{Address: "aws_security_group.ingress", ResourceType: "aws_security_group", Action: types.ActionDestroy},
		{Address: "aws_ssm_parameter.db_password", ResourceType: "aws_ssm_parameter", Action: types.ActionUpdate},
		{Address: "aws_instance.web", ResourceType: "aws_instance", Action: types.ActionUpdate},
	}

	annotated := c.Annotate(changes)

	assert.True(t, annotated[0].SecuritySensitive)
	assert.True(t, annotated[1].SecuritySensitive, "configured extra type is sensitive")
	assert.False(t, annotated[2].SecuritySensitive)

	// the input slice stays untouched
	assert.False(t, changes[0].SecuritySensitive)
}

func TestSecurityRegistry_Defaults(t *testing.T) {
	r := NewSecurityRegistry()

	for _, rt := range []string{
		"aws_security_group",
		"aws_iam_role_policy",
		"aws_kms_key",
		"aws_network_acl",
	} {
		assert.True(t, r.IsSensitive(rt), "%s should be in the default registry", rt)
	}

	assert.False(t, r.IsSensitive("aws_instance"))
	assert.False(t, r.IsSensitive(""))
}

func TestSecurityRegistry_ExtraTypes(t *testing.T) {
	r := NewSecurityRegistry("google_compute_firewall", "")
	assert.True(t, r.IsSensitive("google_compute_firewall"))
	assert.False(t, r.IsSensitive(""), "empty extra entries are ignored")
	assert.True(t, r.IsSensitive("aws_security_group"), "defaults survive extension")
}
