package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	yamlContent := `timezone: "Asia/Tokyo"
storage:
  bucket: "email-analysis-test"
  region: "ap-northeast-1"
  rawPrefix: "mail/raw"
  jsonPrefix: "mail/json"
ingest:
  imap: "imap.test.com:993"
  login: "test@example.com"
  password: "testpass"
  mailbox: "INBOX"
  refreshTime: 30s
summarizer:
  apiKey: "test-key"
  model: "claude-sonnet-4-20250514"
  maxTokens: 2048
  schedule: "0 9 * * *"
  topicArn: "arn:aws:sns:ap-northeast-1:000000000000:outcomes"
notifier:
  queueUrl: "https://sqs.ap-northeast-1.amazonaws.com/000000000000/outcomes"
  webhookUrl: "https://hooks.slack.com/services/T00/B00/XXX"
`

	cfg, err := Load(writeConfig(t, yamlContent))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Timezone != "Asia/Tokyo" {
		t.Errorf("Expected timezone 'Asia/Tokyo', got %q", cfg.Timezone)
	}
	if cfg.Storage.Bucket != "email-analysis-test" {
		t.Errorf("Expected bucket 'email-analysis-test', got %q", cfg.Storage.Bucket)
	}
	if cfg.Ingest.RefreshTime != 30*time.Second {
		t.Errorf("Expected refreshTime 30s, got %v", cfg.Ingest.RefreshTime)
	}
	if cfg.Summarizer.MaxTokens != 2048 {
		t.Errorf("Expected maxTokens 2048, got %d", cfg.Summarizer.MaxTokens)
	}
	if cfg.Notifier.WebhookURL == "" {
		t.Error("Expected webhook URL to be set")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "storage:\n  bucket: b\n"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Timezone != "UTC" {
		t.Errorf("Expected default timezone UTC, got %q", cfg.Timezone)
	}
	if cfg.Storage.RawPrefix != "emails/raw" || cfg.Storage.JSONPrefix != "emails/json" {
		t.Errorf("Unexpected default prefixes: %q, %q", cfg.Storage.RawPrefix, cfg.Storage.JSONPrefix)
	}
	if cfg.Ingest.RefreshTime != time.Minute {
		t.Errorf("Expected default refreshTime 1m, got %v", cfg.Ingest.RefreshTime)
	}
	if cfg.Summarizer.Schedule == "" || cfg.Summarizer.MaxTokens == 0 {
		t.Errorf("Expected summarizer defaults, got %+v", cfg.Summarizer)
	}
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_WEBHOOK_URL", "https://hooks.example.com/abc")

	yamlContent := `storage:
  bucket: b
notifier:
  webhookUrl: ${TEST_WEBHOOK_URL}
`
	cfg, err := Load(writeConfig(t, yamlContent))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Notifier.WebhookURL != "https://hooks.example.com/abc" {
		t.Errorf("Expected env var expansion, got %q", cfg.Notifier.WebhookURL)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "Missing bucket",
			content: "timezone: UTC\n",
		},
		{
			name:    "Bad timezone",
			content: "timezone: Not/AZone\nstorage:\n  bucket: b\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}
