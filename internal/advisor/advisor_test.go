package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftguard/driftguard/internal/classifier"
	"github.com/driftguard/driftguard/pkg/types"
)

func TestSuggest_EmptyChangeList(t *testing.T) {
	assert.Nil(t, New().Suggest(nil))
	assert.Nil(t, New().Suggest([]types.ResourceChange{}))
}

func TestSuggest_SecurityGroupDestroy(t *testing.T) {
	changes := []types.ResourceChange{
		{Address: "aws_security_group.ingress", ResourceType: "aws_security_group", Action: types.ActionDestroy, SecuritySensitive: true},
	}

	suggestions := New().Suggest(changes)
	require.Len(t, suggestions, 2)

	assert.Equal(t, types.CategorySecurityGroup, suggestions[0].Category)
	assert.Equal(t, []string{"aws_security_group.ingress"}, suggestions[0].Matches)
	assert.Equal(t, types.CategoryGeneric, suggestions[1].Category)
}

func TestSuggest_DatabaseReplace(t *testing.T) {
	changes := []types.ResourceChange{
		{Address: "aws_db_instance.main", ResourceType: "aws_db_instance", Action: types.ActionReplace},
	}

	suggestions := New().Suggest(changes)
	require.Len(t, suggestions, 2)
	assert.Equal(t, types.CategoryDatabase, suggestions[0].Category)
}

func TestSuggest_PriorityOrder(t *testing.T) {
	changes := []types.ResourceChange{
		{Address: "aws_ecs_service.api", ResourceType: "aws_ecs_service", Action: types.ActionUpdate,
			ChangedAttributes: []string{"task_definition"}},
		{Address: "aws_iam_role.app", ResourceType: "aws_iam_role", Action: types.ActionUpdate},
		{Address: "aws_security_group.ingress", ResourceType: "aws_security_group", Action: types.ActionUpdate},
	}

	suggestions := New().Suggest(changes)
	require.Len(t, suggestions, 4)

	// fixed order regardless of change-list order
	assert.Equal(t, types.CategorySecurityGroup, suggestions[0].Category)
	assert.Equal(t, types.CategoryIdentityAccess, suggestions[1].Category)
	assert.Equal(t, types.CategoryComputeService, suggestions[2].Category)
	assert.Equal(t, types.CategoryGeneric, suggestions[3].Category)
}

func TestSuggest_DesiredCountGoesToAutoscaling(t *testing.T) {
	changes := []types.ResourceChange{
		{Address: "aws_ecs_service.api", ResourceType: "aws_ecs_service", Action: types.ActionUpdate,
			ChangedAttributes: []string{"desired_count"}},
	}

	suggestions := New().Suggest(changes)
	require.Len(t, suggestions, 2)
	assert.Equal(t, types.CategoryAutoscaling, suggestions[0].Category,
		"a desired-count-only service update is autoscaling drift, not a service definition change")
}

func TestSuggest_TaskDefinitionIsComputeService(t *testing.T) {
	changes := []types.ResourceChange{
		{Address: "aws_ecs_service.api", ResourceType: "aws_ecs_service", Action: types.ActionUpdate,
			ChangedAttributes: []string{"desired_count", "task_definition"}},
	}

	suggestions := New().Suggest(changes)
	require.Len(t, suggestions, 2)
	assert.Equal(t, types.CategoryComputeService, suggestions[0].Category)
}

func TestSuggest_TagOnly(t *testing.T) {
	changes := []types.ResourceChange{
		{Address: "aws_instance.web", ResourceType: "aws_instance", Action: types.ActionUpdate,
			ChangedAttributes: []string{"tags", "tags_all"}},
	}

	suggestions := New().Suggest(changes)
	require.Len(t, suggestions, 3)
	assert.Equal(t, types.CategoryComputeService, suggestions[0].Category)
	assert.Equal(t, types.CategoryTagOnly, suggestions[1].Category)
}

func TestSuggest_UnmatchedStillCountedInGeneric(t *testing.T) {
	changes := []types.ResourceChange{
		{Address: "aws_cloudwatch_log_group.api", ResourceType: "aws_cloudwatch_log_group", Action: types.ActionCreate},
		{Address: "aws_s3_bucket.artifacts", ResourceType: "aws_s3_bucket", Action: types.ActionUpdate},
	}

	suggestions := New().Suggest(changes)
	require.Len(t, suggestions, 1, "unrecognized types get only the generic workflow")
	assert.Equal(t, types.CategoryGeneric, suggestions[0].Category)
	assert.Contains(t, suggestions[0].Title, "2 changed resources")
}

func TestSuggest_NeverInfluencesClassification(t *testing.T) {
	changes := []types.ResourceChange{
		{Address: "aws_security_group.ingress", ResourceType: "aws_security_group", Action: types.ActionDestroy, SecuritySensitive: true},
		{Address: "aws_instance.web", ResourceType: "aws_instance", Action: types.ActionUpdate},
	}

	c := classifier.New(nil)
	before := c.Classify(changes)

	// running the advisor with an empty pattern registry must leave the
	// classifier's verdict for the same input untouched
	empty := newEmpty()
	_ = empty.Suggest(changes)
	full := New()
	_ = full.Suggest(changes)

	assert.Equal(t, before, c.Classify(changes))
	assert.Equal(t, types.SeverityCritical, before)
}
