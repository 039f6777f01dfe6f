package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/driftguard/driftguard/pkg/types"
)

// SlackChannel posts drift findings to a Slack incoming webhook
type SlackChannel struct {
	webhookURL string
	client     *http.Client
}

// NewSlackChannel creates a channel for the given incoming-webhook URL
func NewSlackChannel(webhookURL string) *SlackChannel {
	return &SlackChannel{
		webhookURL: webhookURL,
		client:     &http.Client{},
	}
}

func (s *SlackChannel) Name() string { return "slack" }

type slackPayload struct {
	Text   string       `json:"text"`
	Blocks []slackBlock `json:"blocks,omitempty"`
}

type slackBlock struct {
	Type string     `json:"type"`
	Text *slackText `json:"text,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (s *SlackChannel) Send(ctx context.Context, r *types.DriftReport, reportPath string) error {
	summary := fmt.Sprintf("Infrastructure drift detected in *%s* (%s): severity *%s*, %d changed resource(s)",
		r.Environment, r.Region, r.Severity, r.Summary.Total)
	detail := fmt.Sprintf("add %d / change %d / destroy %d / replace %d\ndetected at %s\nreport: `%s`",
		r.Summary.ToAdd, r.Summary.ToChange, r.Summary.ToDestroy, r.Summary.ToReplace,
		r.Timestamp.Format(time.RFC3339), reportPath)

	payload := slackPayload{
		Text: summary,
		Blocks: []slackBlock{
			{Type: "section", Text: &slackText{Type: "mrkdwn", Text: summary}},
			{Type: "section", Text: &slackText{Type: "mrkdwn", Text: detail}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("slack webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("slack webhook returned %d: %s", resp.StatusCode, string(msg))
	}
	return nil
}
