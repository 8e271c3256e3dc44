package models

import "time"

// Config represents the application configuration shared by all three
// pipeline binaries. Each binary only reads the sections it needs.
type Config struct {
	Timezone   string           `yaml:"timezone"`
	Storage    StorageConfig    `yaml:"storage"`
	Ingest     IngestConfig     `yaml:"ingest"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Notifier   NotifierConfig   `yaml:"notifier"`
}

// StorageConfig locates the object store and the two path prefixes: raw
// message archive and extracted JSON records.
type StorageConfig struct {
	Bucket     string `yaml:"bucket"`
	Region     string `yaml:"region"`
	RawPrefix  string `yaml:"rawPrefix"`
	JSONPrefix string `yaml:"jsonPrefix"`
}

// IngestConfig represents the inbound IMAP mailbox configuration.
type IngestConfig struct {
	Imap        string        `yaml:"imap"`
	Login       string        `yaml:"login"`
	Password    string        `yaml:"password"`
	MailBox     string        `yaml:"mailbox"`
	RefreshTime time.Duration `yaml:"refreshTime"`
}

// SummarizerConfig covers the model invocation and the daily trigger.
type SummarizerConfig struct {
	APIKey    string `yaml:"apiKey"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"maxTokens"`
	Schedule  string `yaml:"schedule"`
	TopicARN  string `yaml:"topicArn"`
}

// NotifierConfig covers the outcome queue and the chat webhook.
type NotifierConfig struct {
	QueueURL   string `yaml:"queueUrl"`
	WebhookURL string `yaml:"webhookUrl"`
}
