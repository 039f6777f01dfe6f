package advisor

import (
	"strings"

	"github.com/driftguard/driftguard/pkg/types"
)

// pattern is one recognized change shape with its remediation guidance.
// Patterns are evaluated independently in the order they are declared;
// several may match a single run.
type pattern struct {
	category types.SuggestionCategory
	title    string
	guidance []string
	match    func(types.ResourceChange) bool
}

// patterns is the fixed priority list: security-group, identity/access,
// database, compute-service, autoscaling, tag-only.
var patterns = []pattern{
	{
		category: types.CategorySecurityGroup,
		title:    "Security group ingress/egress change",
		guidance: []string{
			"Compare the planned rule set against the change-management record for this environment.",
			"If the live rules were changed manually, revert them in the console or run a targeted apply to restore the declared rules.",
			"Check flow logs for traffic admitted through unexpected rules while the drift was live.",
		},
		match: func(c types.ResourceChange) bool {
			switch c.ResourceType {
			case "aws_security_group", "aws_security_group_rule",
				"aws_vpc_security_group_ingress_rule", "aws_vpc_security_group_egress_rule":
				return true
			}
			return false
		},
	},
	{
		category: types.CategoryIdentityAccess,
		title:    "Identity/access policy change",
		guidance: []string{
			"Review the policy delta for privilege escalation before reconciling.",
			"Cross-check CloudTrail for who made the out-of-band change and when.",
			"Restore the declared policy with a targeted apply; do not hand-edit live policies.",
		},
		match: func(c types.ResourceChange) bool {
			return strings.HasPrefix(c.ResourceType, "aws_iam_") ||
				strings.HasPrefix(c.ResourceType, "aws_kms_")
		},
	},
	{
		category: types.CategoryDatabase,
		title:    "Database instance change",
		guidance: []string{
			"Confirm a recent snapshot or backup exists before any reconciliation touching the instance.",
			"Replacements destroy the instance: schedule a maintenance window and verify the final snapshot setting first.",
			"Parameter-group-only drift can usually be reconciled without downtime.",
		},
		match: func(c types.ResourceChange) bool {
			switch c.ResourceType {
			case "aws_db_instance", "aws_rds_cluster", "aws_rds_cluster_instance",
				"aws_db_parameter_group", "aws_db_subnet_group", "aws_elasticache_cluster",
				"aws_elasticache_replication_group", "aws_dynamodb_table":
				return true
			}
			return false
		},
	},
	{
		category: types.CategoryComputeService,
		title:    "Container/compute service definition change",
		guidance: []string{
			"Diff the live task definition or function configuration against the declared revision.",
			"If the live revision carries an emergency fix, fold it back into the declared configuration before reconciling.",
			"Otherwise reconcile with a normal deploy so the service rolls instances gracefully.",
		},
		match: func(c types.ResourceChange) bool {
			switch c.ResourceType {
			case "aws_ecs_service", "aws_ecs_task_definition", "aws_lambda_function",
				"aws_instance", "aws_launch_template", "aws_eks_node_group":
			default:
				return false
			}
			// desired-count-only service drift belongs to the autoscaling
			// pattern, not here
			if c.ResourceType == "aws_ecs_service" && isDesiredCountOnly(c) {
				return false
			}
			return true
		},
	},
	{
		category: types.CategoryAutoscaling,
		title:    "Autoscaling desired-count drift",
		guidance: []string{
			"Desired-count drift is usually the autoscaler doing its job; consider ignoring the count attribute in the declared configuration.",
			"If the count was pinned manually during an incident, return control to the autoscaler once the incident closes.",
		},
		match: func(c types.ResourceChange) bool {
			switch c.ResourceType {
			case "aws_appautoscaling_target", "aws_appautoscaling_policy",
				"aws_autoscaling_group", "aws_autoscaling_policy":
				return true
			}
			return c.ResourceType == "aws_ecs_service" && isDesiredCountOnly(c)
		},
	},
	{
		category: types.CategoryTagOnly,
		title:    "Tag-only drift",
		guidance: []string{
			"Tag drift carries no runtime risk; reconcile with a plain apply at the next convenient moment.",
			"If a tagging automation keeps reintroducing the drift, align the declared tags with it instead of fighting it.",
		},
		match: func(c types.ResourceChange) bool {
			return c.Action == types.ActionUpdate && isTagOnly(c)
		},
	},
}

// isDesiredCountOnly reports whether an update touches desired_count and
// nothing else that matters. Determinable only from the structured plan.
func isDesiredCountOnly(c types.ResourceChange) bool {
	if c.Action != types.ActionUpdate || len(c.ChangedAttributes) == 0 {
		return false
	}
	sawCount := false
	for _, attr := range c.ChangedAttributes {
		switch attr {
		case "desired_count":
			sawCount = true
		case "tags", "tags_all":
			// tag noise does not disqualify
		default:
			return false
		}
	}
	return sawCount
}

// isTagOnly reports whether every identified delta is a tag attribute
func isTagOnly(c types.ResourceChange) bool {
	if len(c.ChangedAttributes) == 0 {
		return false
	}
	for _, attr := range c.ChangedAttributes {
		if attr != "tags" && attr != "tags_all" {
			return false
		}
	}
	return true
}
