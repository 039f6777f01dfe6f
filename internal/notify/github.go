package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/driftguard/driftguard/internal/report"
	"github.com/driftguard/driftguard/pkg/types"
)

// GitHubChannel opens an issue on the configured repository for critical
// findings. Lower severities are acknowledged without contact: opening an
// issue per routine drift run would bury the ones that matter.
type GitHubChannel struct {
	baseURL    string
	token      string
	repository string
	client     *http.Client
}

// NewGitHubChannel creates a channel for the given "owner/repo" slug
func NewGitHubChannel(token, repository string) *GitHubChannel {
	return &GitHubChannel{
		baseURL:    "https://api.github.com",
		token:      token,
		repository: repository,
		client:     &http.Client{},
	}
}

func (g *GitHubChannel) Name() string { return "github" }

type githubIssue struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels"`
}

func (g *GitHubChannel) Send(ctx context.Context, r *types.DriftReport, reportPath string) error {
	if r.Severity != types.SeverityCritical {
		return ErrSkipped
	}

	body, err := issueBody(r, reportPath)
	if err != nil {
		return err
	}

	issue := githubIssue{
		Title:  fmt.Sprintf("CRITICAL infrastructure drift in %s (%s)", r.Environment, r.Timestamp.Format("2006-01-02")),
		Body:   body,
		Labels: []string{"drift", "critical", "automated"},
	}

	payload, err := json.Marshal(issue)
	if err != nil {
		return fmt.Errorf("failed to encode github issue: %w", err)
	}

	url := fmt.Sprintf("%s/repos/%s/issues", g.baseURL, g.repository)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build github request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("github issue request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("github api returned %d: %s", resp.StatusCode, string(msg))
	}
	return nil
}

// issueBody is the full human-readable report, so the issue stands on its
// own without access to the stored report file.
func issueBody(r *types.DriftReport, reportPath string) (string, error) {
	rendered, err := report.Render(r, report.FormatHuman)
	if err != nil {
		return "", fmt.Errorf("failed to render issue body: %w", err)
	}

	var b strings.Builder
	b.Write(rendered)
	fmt.Fprintf(&b, "\nStored report: `%s`\n", reportPath)
	return b.String(), nil
}
