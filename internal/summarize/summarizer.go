package summarize

import (
	"context"
	"encoding/json"
	"fmt"

	"email-analysis/internal/logging"
	"email-analysis/internal/models"
)

// forcedPrefix is supplied as a pre-filled assistant turn so the model
// completes an array rather than prose, and is prepended back onto the
// completion before parsing: some providers do not repeat a prefix already
// present in the forced turn.
const forcedPrefix = "["

// Summarizer turns one day's records into a SummaryOutcome with a single
// model invocation.
type Summarizer struct {
	client CompletionClient
}

func NewSummarizer(client CompletionClient) *Summarizer {
	return &Summarizer{client: client}
}

// Summarize builds one prompt for all records, invokes the model once, and
// parses the completion. A completion that is not a well-formed array of
// summary objects yields a Failure outcome carrying the entire raw text; no
// partial recovery is attempted. Transport errors from the model call are
// returned as the error value and leave no outcome.
//
// Callers must not invoke Summarize with an empty record list; an empty day
// is a pipeline-level no-op, not a summarization failure.
func (s *Summarizer) Summarize(ctx context.Context, records []*models.EmailRecord) (models.SummaryOutcome, error) {
	prompt, err := BuildPrompt(records)
	if err != nil {
		return models.SummaryOutcome{}, fmt.Errorf("summarize: build prompt: %w", err)
	}

	completion, err := s.client.Complete(ctx, prompt, forcedPrefix)
	if err != nil {
		return models.SummaryOutcome{}, fmt.Errorf("summarize: model call: %w", err)
	}

	raw := forcedPrefix + completion
	logging.Log.Debugf("Model response: %s", raw)

	return parseCompletion(raw), nil
}

// summaryWire uses pointer fields so a missing key is distinguishable from
// an empty value; every key is required.
type summaryWire struct {
	Subject *string `json:"subject"`
	Date    *string `json:"date"`
	From    *string `json:"from"`
	Summary *string `json:"summary"`
}

func parseCompletion(raw string) models.SummaryOutcome {
	failure := models.FailureOutcome("Failed to parse response: " + raw)

	var wires []summaryWire
	if err := json.Unmarshal([]byte(raw), &wires); err != nil {
		return failure
	}

	summaries := make([]models.EmailSummary, 0, len(wires))
	for _, w := range wires {
		if w.Subject == nil || w.Date == nil || w.From == nil || w.Summary == nil {
			return failure
		}
		summaries = append(summaries, models.EmailSummary{
			Subject: *w.Subject,
			Date:    *w.Date,
			From:    *w.From,
			Summary: *w.Summary,
		})
	}

	return models.SuccessOutcome(summaries)
}
