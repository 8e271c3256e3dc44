package summarize

import (
	_ "embed"
	"strings"
	"text/template"

	"email-analysis/internal/models"
)

//go:embed prompt.tmpl
var promptText string

var promptTemplate = template.Must(template.New("prompt").Parse(promptText))

type promptData struct {
	Emails []*models.EmailRecord
}

// BuildPrompt renders the user prompt embedding every record's subject,
// sender, date, and body.
func BuildPrompt(records []*models.EmailRecord) (string, error) {
	var sb strings.Builder
	if err := promptTemplate.Execute(&sb, promptData{Emails: records}); err != nil {
		return "", err
	}
	return sb.String(), nil
}
