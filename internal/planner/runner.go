// Package planner invokes the provisioning tool in plan mode and persists
// its raw output for audit. It performs no parsing.
package planner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/driftguard/driftguard/internal/errors"
	"github.com/driftguard/driftguard/internal/logger"
)

// Exit codes of `terraform plan -detailed-exitcode`
const (
	toolExitClean   = 0
	toolExitError   = 1
	toolExitChanges = 2
)

// Result carries the tool's raw plan output and verdict. The structured
// rendering is present when the tool could re-render the saved plan as
// JSON; callers fall back to the textual output otherwise.
type Result struct {
	RawOutput       []byte
	Structured      []byte
	ToolExitCode    int
	ChangesExpected bool
	ArtifactPath    string
}

// Runner shells out to the provisioning tool for one (environment, region)
type Runner struct {
	bin string
	log logger.Logger
}

// New creates a runner using the given tool binary
func New(bin string, log logger.Logger) *Runner {
	if bin == "" {
		bin = "terraform"
	}
	return &Runner{bin: bin, log: log}
}

// Plan runs the tool in plan mode inside workDir and writes the raw output
// to a timestamped artifact under artifactDir before any verdict is made,
// so later failures don't lose evidence. Lock contention inside the tool is
// surfaced as a tool failure and never retried here: retrying a stale lock
// could mask a concurrent unsafe operation.
func (r *Runner) Plan(ctx context.Context, environment, workDir, region, awsProfile, artifactDir string) (*Result, error) {
	if err := os.MkdirAll(artifactDir, 0o755); err != nil {
		return nil, errors.New(errors.ErrorTypeConfiguration, errors.StagePlan,
			fmt.Sprintf("cannot create artifact directory %s", artifactDir)).WithCause(err)
	}

	planFile := filepath.Join(artifactDir, fmt.Sprintf("%s.tfplan", environment))
	defer os.Remove(planFile)

	cmd := exec.CommandContext(ctx, r.bin, "plan",
		"-input=false", "-no-color", "-detailed-exitcode", "-out="+planFile)
	cmd.Dir = workDir
	cmd.Env = toolEnv(region, awsProfile)

	start := time.Now()
	raw, runErr := cmd.CombinedOutput()
	exitCode := exitCodeOf(cmd, runErr)

	result := &Result{
		RawOutput:    raw,
		ToolExitCode: exitCode,
	}

	// persist evidence first, verdict second
	artifactPath := filepath.Join(artifactDir,
		fmt.Sprintf("plan-%s-%s.txt", environment, time.Now().UTC().Format("20060102T150405Z")))
	if err := os.WriteFile(artifactPath, raw, 0o644); err != nil {
		return nil, errors.New(errors.ErrorTypeExternalTool, errors.StagePlan,
			"failed to persist plan artifact").WithCause(err)
	}
	result.ArtifactPath = artifactPath

	r.log.WithFields(map[string]interface{}{
		"environment": environment,
		"exit_code":   exitCode,
		"duration":    time.Since(start).Round(time.Millisecond).String(),
		"artifact":    artifactPath,
	}).Info("plan completed")

	switch exitCode {
	case toolExitClean:
		result.ChangesExpected = false
	case toolExitChanges:
		result.ChangesExpected = true
	default:
		return nil, errors.New(errors.ErrorTypeExternalTool, errors.StagePlan,
			fmt.Sprintf("provisioning tool exited with code %d", exitCode)).
			WithCause(runErr).
			WithToolOutput(string(raw)).
			WithSolutions(
				"check cloud credentials for the target account",
				"check remote state backend reachability and locks",
				"see the persisted plan artifact: "+artifactPath,
			)
	}

	result.Structured = r.renderStructured(ctx, workDir, region, awsProfile, planFile)
	return result, nil
}

// renderStructured asks the tool for the JSON rendering of the saved plan.
// Failure is non-fatal: the textual output remains usable.
func (r *Runner) renderStructured(ctx context.Context, workDir, region, awsProfile, planFile string) []byte {
	if _, err := os.Stat(planFile); err != nil {
		return nil
	}
	cmd := exec.CommandContext(ctx, r.bin, "show", "-json", planFile)
	cmd.Dir = workDir
	cmd.Env = toolEnv(region, awsProfile)
	out, err := cmd.Output()
	if err != nil {
		r.log.Warn("structured plan rendering unavailable, falling back to textual parsing")
		return nil
	}
	return out
}

func toolEnv(region, awsProfile string) []string {
	env := append(os.Environ(), "TF_IN_AUTOMATION=1")
	if region != "" {
		env = append(env, "AWS_REGION="+region)
	}
	if awsProfile != "" {
		env = append(env, "AWS_PROFILE="+awsProfile)
	}
	return env
}

func exitCodeOf(cmd *exec.Cmd, runErr error) int {
	if runErr == nil {
		return 0
	}
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	return -1
}
