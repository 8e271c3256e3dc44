package models

import (
	"encoding/json"
	"fmt"
)

// SummaryOutcome is the result of one summarization batch: either a list of
// summaries or a failure reason, never both. The zero value is a failure with
// an empty reason; use SuccessOutcome or FailureOutcome.
type SummaryOutcome struct {
	success bool
	emails  []EmailSummary
	reason  string
}

// SuccessOutcome builds a successful outcome. An empty item list is valid and
// means "nothing worth reporting", which is distinct from a failure.
func SuccessOutcome(emails []EmailSummary) SummaryOutcome {
	if emails == nil {
		emails = []EmailSummary{}
	}
	return SummaryOutcome{success: true, emails: emails}
}

// FailureOutcome builds a failed outcome carrying a human-readable reason.
// A failure never carries partial items.
func FailureOutcome(reason string) SummaryOutcome {
	return SummaryOutcome{reason: reason}
}

func (o SummaryOutcome) Success() bool { return o.success }

// Emails returns the summaries of a successful outcome, nil otherwise.
func (o SummaryOutcome) Emails() []EmailSummary {
	if !o.success {
		return nil
	}
	return o.emails
}

// Reason returns the failure reason, empty for a successful outcome.
func (o SummaryOutcome) Reason() string {
	if o.success {
		return ""
	}
	return o.reason
}

// outcomeWire is the published JSON form: exactly one of emails/error is
// present, keyed off success.
type outcomeWire struct {
	Success bool            `json:"success"`
	Emails  *[]EmailSummary `json:"emails,omitempty"`
	Error   *string         `json:"error,omitempty"`
}

func (o SummaryOutcome) MarshalJSON() ([]byte, error) {
	w := outcomeWire{Success: o.success}
	if o.success {
		emails := o.emails
		if emails == nil {
			emails = []EmailSummary{}
		}
		w.Emails = &emails
	} else {
		reason := o.reason
		w.Error = &reason
	}
	return json.Marshal(w)
}

func (o *SummaryOutcome) UnmarshalJSON(data []byte) error {
	var w outcomeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Success {
		if w.Error != nil {
			return fmt.Errorf("outcome: success payload carries an error field")
		}
		var emails []EmailSummary
		if w.Emails != nil {
			emails = *w.Emails
		}
		*o = SuccessOutcome(emails)
		return nil
	}
	if w.Emails != nil {
		return fmt.Errorf("outcome: failure payload carries an emails field")
	}
	reason := "no error contained"
	if w.Error != nil {
		reason = *w.Error
	}
	*o = FailureOutcome(reason)
	return nil
}
