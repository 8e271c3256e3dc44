package notify

import (
	"fmt"
	"time"

	"email-analysis/internal/models"
)

const headerText = ":email: 新しいメールが見つかりました"

// Message is a Slack webhook payload: plain text for alerts, Block Kit
// blocks for summaries.
type Message struct {
	Text   string  `json:"text,omitempty"`
	Blocks []Block `json:"blocks,omitempty"`
}

type Block struct {
	Type   string `json:"type"`
	Text   *Text  `json:"text,omitempty"`
	Fields []Text `json:"fields,omitempty"`
}

type Text struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

// Render converts a summarization outcome into the webhook payload. It is a
// pure function: a failure becomes a plain-text alert carrying the literal
// reason, a success becomes one header block followed by a block sequence
// per summary.
func Render(outcome models.SummaryOutcome) Message {
	if !outcome.Success() {
		return Message{Text: fmt.Sprintf("Error: %s", outcome.Reason())}
	}

	emails := outcome.Emails()
	blocks := make([]Block, 0, 1+4*len(emails))
	blocks = append(blocks, Block{
		Type: "section",
		Text: &Text{Type: "mrkdwn", Text: headerText},
	})

	for _, email := range emails {
		blocks = append(blocks,
			Block{Type: "divider"},
			Block{
				Type: "section",
				Text: &Text{Type: "mrkdwn", Text: fmt.Sprintf("*%s*", email.Subject)},
			},
			Block{
				Type: "section",
				Fields: []Text{
					{Type: "mrkdwn", Text: formatDate(email.Date)},
					{Type: "mrkdwn", Text: email.From},
				},
			},
			Block{
				Type: "section",
				Text: &Text{Type: "plain_text", Text: email.Summary, Emoji: true},
			},
		)
	}

	return Message{Blocks: blocks}
}

// formatDate reformats the stored ISO-8601 timestamp for display, keeping
// the offset already embedded in the string. An unparsable date is shown
// as-is rather than failing the notification.
func formatDate(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Format("2006/01/02 15:04")
}
