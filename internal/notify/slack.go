package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"email-analysis/internal/retry"
)

// WebhookSender posts rendered messages to a Slack incoming webhook.
type WebhookSender struct {
	webhookURL  string
	client      *http.Client
	retryConfig retry.Config
}

func NewWebhookSender(webhookURL string) *WebhookSender {
	return &WebhookSender{
		webhookURL:  webhookURL,
		client:      &http.Client{Timeout: 30 * time.Second},
		retryConfig: retry.DefaultConfig(),
	}
}

// Send delivers the message, retrying transient failures with backoff.
func (s *WebhookSender) Send(ctx context.Context, msg Message) error {
	return retry.WithBackoff(ctx, s.retryConfig, func(ctx context.Context) error {
		return s.post(ctx, msg)
	})
}

func (s *WebhookSender) post(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return retry.Permanent(fmt.Errorf("marshal payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return retry.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if retry.HTTPStatusRetryable(resp.StatusCode) {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return retry.Permanent(fmt.Errorf("unexpected status %d", resp.StatusCode))
}
