package ingest

import (
	"context"
	"time"

	"email-analysis/internal/extract"
	"email-analysis/internal/logging"
	"email-analysis/internal/store"
)

// Processor turns one archived raw message into a stored record:
// read raw → extract → write into the day partition. Re-processing the same
// id overwrites the same record, so retries are safe.
type Processor struct {
	raw      *store.RawStore
	records  *store.RecordStore
	location *time.Location
}

func NewProcessor(raw *store.RawStore, records *store.RecordStore, location *time.Location) *Processor {
	return &Processor{
		raw:      raw,
		records:  records,
		location: location,
	}
}

// Process extracts and stores the message archived under id. Failures affect
// only this message.
func (p *Processor) Process(ctx context.Context, id string) error {
	locallog := logging.Log.WithField("trace_id", id)

	raw, err := p.raw.Get(ctx, id)
	if err != nil {
		locallog.Errorf("Error reading raw message: %v", err)
		return err
	}

	record, err := extract.Extract(raw, id, p.location)
	if err != nil {
		locallog.Errorf("Error extracting message: %v", err)
		return err
	}

	if err := p.records.Put(ctx, record); err != nil {
		locallog.Errorf("Error storing record: %v", err)
		return err
	}

	locallog.Infof("Stored email %q from %s dated %s", record.Subject, record.From, record.Date.Format(time.RFC3339))
	return nil
}
