package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"email-analysis/internal/models"
)

var tokyo = time.FixedZone("JST", 9*60*60)

func TestRecordRoundTrip(t *testing.T) {
	ctx := context.Background()
	records := NewRecordStore(NewMemoryStore(), "emails/json")

	rec := &models.EmailRecord{
		ID:      "abc-123",
		Subject: "Hello",
		From:    "Alice <alice@example.com>",
		Date:    time.Date(2025, 1, 6, 8, 30, 0, 0, tokyo),
		Body:    "Plain body here.",
	}

	if err := records.Put(ctx, rec); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, err := records.ListDay(ctx, time.Date(2025, 1, 6, 0, 0, 0, 0, tokyo))
	if err != nil {
		t.Fatalf("ListDay() error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(got))
	}

	out := got[0]
	if out.ID != rec.ID || out.Subject != rec.Subject || out.From != rec.From || out.Body != rec.Body {
		t.Errorf("Round-tripped record differs: %+v vs %+v", out, rec)
	}
	if !out.Date.Equal(rec.Date) {
		t.Errorf("Expected date %s, got %s", rec.Date, out.Date)
	}
}

func TestRecordKeyFormat(t *testing.T) {
	ctx := context.Background()
	objects := NewMemoryStore()
	records := NewRecordStore(objects, "emails/json")

	rec := &models.EmailRecord{
		ID:   "abc-123",
		Date: time.Date(2025, 1, 6, 8, 30, 0, 0, tokyo),
		Body: "b",
	}
	if err := records.Put(ctx, rec); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	// Date components are not zero padded.
	keys, err := objects.List(ctx, "emails/json/2025/1/6/")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(keys) != 1 || keys[0] != "emails/json/2025/1/6/abc-123.json" {
		t.Errorf("Unexpected keys: %v", keys)
	}
}

func TestRecordPutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	records := NewRecordStore(NewMemoryStore(), "emails/json")

	rec := &models.EmailRecord{
		ID:   "abc-123",
		Date: time.Date(2025, 1, 6, 8, 30, 0, 0, tokyo),
		Body: "b",
	}

	if err := records.Put(ctx, rec); err != nil {
		t.Fatalf("First Put() error: %v", err)
	}
	if err := records.Put(ctx, rec); err != nil {
		t.Fatalf("Second Put() error: %v", err)
	}

	got, err := records.ListDay(ctx, rec.Date)
	if err != nil {
		t.Fatalf("ListDay() error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("Expected overwrite to keep a single record, got %d", len(got))
	}
}

func TestListDayEmptyPartition(t *testing.T) {
	ctx := context.Background()
	records := NewRecordStore(NewMemoryStore(), "emails/json")

	_, err := records.ListDay(ctx, time.Date(2025, 1, 6, 0, 0, 0, 0, tokyo))
	if !errors.Is(err, ErrPartitionNotFound) {
		t.Errorf("Expected ErrPartitionNotFound, got %v", err)
	}
}

func TestListDayOrdering(t *testing.T) {
	ctx := context.Background()
	records := NewRecordStore(NewMemoryStore(), "emails/json")
	day := time.Date(2025, 1, 6, 12, 0, 0, 0, tokyo)

	for _, id := range []string{"b", "a", "c"} {
		rec := &models.EmailRecord{ID: id, Date: day, Body: id}
		if err := records.Put(ctx, rec); err != nil {
			t.Fatalf("Put(%s) error: %v", id, err)
		}
	}

	got, err := records.ListDay(ctx, day)
	if err != nil {
		t.Fatalf("ListDay() error: %v", err)
	}

	var ids []string
	for _, rec := range got {
		ids = append(ids, rec.ID)
	}
	if len(ids) != 3 || ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Errorf("Expected key order [a b c], got %v", ids)
	}
}
