package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestOutcomeMarshalSuccess(t *testing.T) {
	outcome := SuccessOutcome([]EmailSummary{
		{Subject: "s", Date: "2025-01-06T08:30:00+09:00", From: "f", Summary: "sum"},
	})

	data, err := json.Marshal(outcome)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	s := string(data)
	if !strings.Contains(s, `"success":true`) || !strings.Contains(s, `"emails":[`) {
		t.Errorf("Unexpected payload: %s", s)
	}
	if strings.Contains(s, `"error"`) {
		t.Errorf("Success payload must not carry error: %s", s)
	}
}

func TestOutcomeMarshalEmptySuccess(t *testing.T) {
	data, err := json.Marshal(SuccessOutcome(nil))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != `{"success":true,"emails":[]}` {
		t.Errorf("Unexpected payload: %s", data)
	}
}

func TestOutcomeMarshalFailure(t *testing.T) {
	data, err := json.Marshal(FailureOutcome("boom"))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != `{"success":false,"error":"boom"}` {
		t.Errorf("Unexpected payload: %s", data)
	}
}

func TestOutcomeUnmarshal(t *testing.T) {
	tests := []struct {
		name        string
		payload     string
		wantSuccess bool
		wantEmails  int
		wantReason  string
		wantErr     bool
	}{
		{
			name:        "Success with items",
			payload:     `{"success":true,"emails":[{"subject":"s","date":"d","from":"f","summary":"x"}]}`,
			wantSuccess: true,
			wantEmails:  1,
		},
		{
			name:        "Failure with reason",
			payload:     `{"success":false,"error":"boom"}`,
			wantSuccess: false,
			wantReason:  "boom",
		},
		{
			name:        "Failure without reason",
			payload:     `{"success":false}`,
			wantSuccess: false,
			wantReason:  "no error contained",
		},
		{
			name:    "Success carrying error is rejected",
			payload: `{"success":true,"error":"boom"}`,
			wantErr: true,
		},
		{
			name:    "Failure carrying emails is rejected",
			payload: `{"success":false,"emails":[],"error":"boom"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var outcome SummaryOutcome
			err := json.Unmarshal([]byte(tt.payload), &outcome)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if outcome.Success() != tt.wantSuccess {
				t.Errorf("Success() = %v, want %v", outcome.Success(), tt.wantSuccess)
			}
			if len(outcome.Emails()) != tt.wantEmails {
				t.Errorf("Expected %d emails, got %d", tt.wantEmails, len(outcome.Emails()))
			}
			if outcome.Reason() != tt.wantReason {
				t.Errorf("Reason() = %q, want %q", outcome.Reason(), tt.wantReason)
			}
		})
	}
}
