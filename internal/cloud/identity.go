// Package cloud resolves the caller's cloud identity for report provenance.
// Resolution is best-effort: a report with "unknown" provenance is still a
// valid report.
package cloud

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// lookupTimeout bounds the identity call so a credential misconfiguration
// cannot stall the run.
const lookupTimeout = 10 * time.Second

// Identity is the resolved caller identity
type Identity struct {
	Account string
	Arn     string
}

// STSAPI is the slice of the STS client used for identity resolution
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// Resolver looks up the invoking principal and target account
type Resolver struct {
	client STSAPI
}

// NewResolver builds a resolver from the ambient AWS configuration with
// optional profile and region overrides.
func NewResolver(ctx context.Context, region, profile string) (*Resolver, error) {
	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Resolver{client: sts.NewFromConfig(cfg)}, nil
}

// NewResolverWithClient builds a resolver around an existing STS client
func NewResolverWithClient(client STSAPI) *Resolver {
	return &Resolver{client: client}
}

// Whoami returns the caller identity via STS GetCallerIdentity
func (r *Resolver) Whoami(ctx context.Context) (Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	out, err := r.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return Identity{}, fmt.Errorf("failed to resolve caller identity: %w", err)
	}
	if out.Account == nil || out.Arn == nil {
		return Identity{}, fmt.Errorf("received incomplete identity from AWS")
	}
	return Identity{Account: *out.Account, Arn: *out.Arn}, nil
}
