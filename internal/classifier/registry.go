package classifier

// SecurityRegistry decides whether a resource type belongs to a
// security-relevant category: identity/access policies, network
// ingress/egress controls, key management, or network ACLs.
type SecurityRegistry struct {
	types map[string]bool
}

// defaultSecurityTypes is the built-in registry. Entries here cannot be
// removed by configuration, only extended.
var defaultSecurityTypes = []string{
	// network ingress/egress controls
	"aws_security_group",
	"aws_security_group_rule",
	"aws_vpc_security_group_ingress_rule",
	"aws_vpc_security_group_egress_rule",

	// identity and access
	"aws_iam_role",
	"aws_iam_role_policy",
	"aws_iam_role_policy_attachment",
	"aws_iam_policy",
	"aws_iam_user",
	"aws_iam_user_policy",
	"aws_iam_group_policy",
	"aws_iam_instance_profile",

	// key management
	"aws_kms_key",
	"aws_kms_alias",

	// network ACLs
	"aws_network_acl",
	"aws_network_acl_rule",
	"aws_default_network_acl",

	// web ACLs sit on the same exposure boundary
	"aws_wafv2_web_acl",
	"aws_waf_web_acl",
}

// NewSecurityRegistry builds the registry from the built-in set plus any
// configured extra types.
func NewSecurityRegistry(extra ...string) *SecurityRegistry {
	r := &SecurityRegistry{types: make(map[string]bool, len(defaultSecurityTypes)+len(extra))}
	for _, t := range defaultSecurityTypes {
		r.types[t] = true
	}
	for _, t := range extra {
		if t != "" {
			r.types[t] = true
		}
	}
	return r
}

// IsSensitive reports whether the resource type is security-relevant
func (r *SecurityRegistry) IsSensitive(resourceType string) bool {
	return r.types[resourceType]
}

// Size returns the number of registered types
func (r *SecurityRegistry) Size() int {
	return len(r.types)
}
