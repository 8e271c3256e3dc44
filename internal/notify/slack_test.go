package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"email-analysis/internal/models"
)

func TestWebhookSenderDelivers(t *testing.T) {
	var gotBody []byte
	var gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender := NewWebhookSender(server.URL)
	msg := Render(models.FailureOutcome("boom"))

	if err := sender.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	if gotContentType != "application/json" {
		t.Errorf("Expected JSON content type, got %q", gotContentType)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("Webhook body is not JSON: %v", err)
	}
	text, _ := payload["text"].(string)
	if !strings.Contains(text, "boom") {
		t.Errorf("Expected delivered text to contain reason, got %q", text)
	}
}

func TestWebhookSenderClientErrorIsFinal(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	sender := NewWebhookSender(server.URL)

	err := sender.Send(context.Background(), Message{Text: "hello"})
	if err == nil {
		t.Fatal("Expected error for 400 response")
	}
	if calls != 1 {
		t.Errorf("Expected no retries on client error, got %d calls", calls)
	}
}
