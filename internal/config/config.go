package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"email-analysis/internal/models"

	"gopkg.in/yaml.v2"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable
// values, leaving unknown variables untouched.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

func setDefaults(cfg *models.Config) {
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	if cfg.Storage.RawPrefix == "" {
		cfg.Storage.RawPrefix = "emails/raw"
	}
	if cfg.Storage.JSONPrefix == "" {
		cfg.Storage.JSONPrefix = "emails/json"
	}
	if cfg.Ingest.RefreshTime == 0 {
		cfg.Ingest.RefreshTime = time.Minute
	}
	if cfg.Ingest.MailBox == "" {
		cfg.Ingest.MailBox = "INBOX"
	}
	if cfg.Summarizer.Model == "" {
		cfg.Summarizer.Model = "claude-sonnet-4-20250514"
	}
	if cfg.Summarizer.MaxTokens == 0 {
		cfg.Summarizer.MaxTokens = 1024
	}
	if cfg.Summarizer.Schedule == "" {
		cfg.Summarizer.Schedule = "0 9 * * *"
	}
}

func validate(cfg *models.Config) error {
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("config: invalid timezone %q: %w", cfg.Timezone, err)
	}
	if cfg.Storage.Bucket == "" {
		return fmt.Errorf("config: storage.bucket is required")
	}
	return nil
}

// Load reads the configuration from the specified YAML file, expands
// environment variables, applies defaults, and validates the result.
func Load(filepath string) (*models.Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", filepath, err)
	}

	expanded := expandEnvVars(string(data))

	var cfg models.Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", filepath, err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Location resolves the configured IANA timezone. Load has already validated
// it, so errors here only occur with a hand-built Config.
func Location(cfg *models.Config) (*time.Location, error) {
	return time.LoadLocation(cfg.Timezone)
}
