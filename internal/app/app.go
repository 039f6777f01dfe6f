// Package app wires the pipeline stages together: plan, extract, classify,
// advise, report, notify. Each stage is owned by its own package; app only
// sequences them and owns no domain logic.
package app

import (
	"context"
	"fmt"
	"io"
	"os/user"
	"time"

	"github.com/driftguard/driftguard/internal/advisor"
	"github.com/driftguard/driftguard/internal/classifier"
	"github.com/driftguard/driftguard/internal/cloud"
	"github.com/driftguard/driftguard/internal/config"
	"github.com/driftguard/driftguard/internal/exitcode"
	"github.com/driftguard/driftguard/internal/extractor"
	"github.com/driftguard/driftguard/internal/logger"
	"github.com/driftguard/driftguard/internal/notify"
	"github.com/driftguard/driftguard/internal/planner"
	"github.com/driftguard/driftguard/internal/report"
	"github.com/driftguard/driftguard/pkg/types"
)

// planRunner is the slice of the planner used by the pipeline
type planRunner interface {
	Plan(ctx context.Context, environment, workDir, region, awsProfile, artifactDir string) (*planner.Result, error)
}

// identityResolver is the slice of the cloud package used for provenance
type identityResolver interface {
	Whoami(ctx context.Context) (cloud.Identity, error)
}

// App runs the drift detection pipeline
type App struct {
	cfg        *config.Config
	log        logger.Logger
	out        io.Writer
	runner     planRunner
	resolver   identityResolver
	dispatcher *notify.Dispatcher
	now        func() time.Time
}

// New assembles the pipeline from configuration. The identity resolver is
// optional; when credential loading fails the report carries "unknown"
// provenance instead of failing the run.
func New(ctx context.Context, cfg *config.Config, log logger.Logger, out io.Writer) *App {
	a := &App{
		cfg:    cfg,
		log:    log,
		out:    out,
		runner: planner.New(cfg.TerraformBin, log),
		now:    time.Now,
	}

	if resolver, err := cloud.NewResolver(ctx, cfg.DefaultRegion, cfg.AWSProfile); err == nil {
		a.resolver = resolver
	} else {
		log.Warn("cloud identity unavailable: " + err.Error())
	}

	a.dispatcher = notify.NewDispatcher(log, channelsFor(cfg, log)...)
	return a
}

func channelsFor(cfg *config.Config, log logger.Logger) []notify.Channel {
	var channels []notify.Channel
	if cfg.Notifications.SlackWebhookURL != "" {
		channels = append(channels, notify.NewSlackChannel(cfg.Notifications.SlackWebhookURL))
	} else {
		log.Info("slack notifications disabled (no webhook configured)")
	}
	if cfg.Notifications.GitHubToken != "" && cfg.Notifications.GitHubRepository != "" {
		channels = append(channels, notify.NewGitHubChannel(cfg.Notifications.GitHubToken, cfg.Notifications.GitHubRepository))
	} else {
		log.Info("github notifications disabled (no token/repository configured)")
	}
	return channels
}

// DetectOptions are the per-invocation overrides for a detection run
type DetectOptions struct {
	Environment string
	Region      string
	Format      report.Format
	OutputDir   string
	Profile     string
}

// DetectResult is the outcome of a completed detection run
type DetectResult struct {
	Report     *types.DriftReport
	ReportPath string
	ExitCode   int
}

// Detect runs the full pipeline for one environment. The report is always
// persisted before notifications fire, and notification failures never
// change the returned exit code.
func (a *App) Detect(ctx context.Context, opts DetectOptions) (*DetectResult, error) {
	env, err := a.cfg.ResolveEnvironment(opts.Environment)
	if err != nil {
		return nil, err
	}
	region := a.cfg.RegionFor(opts.Environment, opts.Region)

	profile := a.cfg.AWSProfile
	if opts.Profile != "" {
		profile = opts.Profile
	}
	outputDir := a.cfg.OutputDir
	if opts.OutputDir != "" {
		outputDir = opts.OutputDir
	}

	a.log.WithFields(map[string]interface{}{
		"environment": opts.Environment,
		"region":      region,
	}).Info("starting drift detection")

	planRes, err := a.runner.Plan(ctx, opts.Environment, env.WorkDir, region, profile, outputDir)
	if err != nil {
		return nil, err
	}

	changes, err := extractor.Extract(planRes.Structured, planRes.RawOutput, planRes.ChangesExpected)
	if err != nil {
		return nil, err
	}

	cls := classifier.New(classifier.NewSecurityRegistry(a.cfg.SecurityTypes...))
	changes = cls.Annotate(changes)
	severity := cls.Classify(changes)

	suggestions := advisor.New().Suggest(changes)

	r := report.Build(opts.Environment, region, severity, changes, suggestions,
		planRes.ArtifactPath, a.provenance(ctx), a.now())

	path, err := report.NewStore(outputDir).Save(r)
	if err != nil {
		return nil, err
	}
	a.log.WithField("report", path).Info("report persisted")

	rendered, err := report.Render(r, opts.Format)
	if err != nil {
		return nil, err
	}
	if _, err := a.out.Write(rendered); err != nil {
		return nil, fmt.Errorf("failed to write rendered report: %w", err)
	}

	a.dispatcher.Dispatch(ctx, r, path)

	return &DetectResult{
		Report:     r,
		ReportPath: path,
		ExitCode:   exitcode.ForSeverity(severity),
	}, nil
}

// provenance resolves who is running the check and against which account.
// When the cloud identity is unavailable the OS user still identifies the
// invoker; the account stays unknown.
func (a *App) provenance(ctx context.Context) report.Provenance {
	if a.resolver != nil {
		id, err := a.resolver.Whoami(ctx)
		if err == nil {
			return report.Provenance{DetectedBy: id.Arn, CloudAccount: id.Account}
		}
		a.log.Warn("caller identity lookup failed: " + err.Error())
	}

	if u, err := user.Current(); err == nil {
		return report.Provenance{DetectedBy: u.Username}
	}
	return report.Provenance{}
}

// Remediate re-renders the remediation guidance of a stored report
func (a *App) Remediate(reportPath string) error {
	r, err := report.LoadStructured(reportPath)
	if err != nil {
		return err
	}

	rendered, err := report.Render(r, report.FormatHuman)
	if err != nil {
		return err
	}
	if _, err := a.out.Write(rendered); err != nil {
		return fmt.Errorf("failed to write remediation guidance: %w", err)
	}
	return nil
}
