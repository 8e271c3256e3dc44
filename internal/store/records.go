package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"email-analysis/internal/models"
)

// ErrPartitionNotFound signals a day prefix with zero stored records. Callers
// treat it as "nothing to do", not as a fault.
var ErrPartitionNotFound = errors.New("no records for day partition")

// RecordStore reads and writes extracted email records under a JSON prefix,
// partitioned by the record's local calendar day:
// {prefix}/{year}/{month}/{day}/{id}.json. The date components are not zero
// padded; existing partitions were written that way and must stay readable.
type RecordStore struct {
	objects ObjectStore
	prefix  string
}

func NewRecordStore(objects ObjectStore, prefix string) *RecordStore {
	return &RecordStore{
		objects: objects,
		prefix:  prefix,
	}
}

// Put serializes the record and writes it at its partition key. Re-running
// with the same id overwrites in place, so retries are safe.
func (s *RecordStore) Put(ctx context.Context, rec *models.EmailRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("record %s: marshal: %w", rec.ID, err)
	}
	return s.objects.Put(ctx, s.recordKey(rec), data, "application/json")
}

// ListDay returns every record stored under the given day, in key order.
// A day with no records returns ErrPartitionNotFound.
func (s *RecordStore) ListDay(ctx context.Context, day time.Time) ([]*models.EmailRecord, error) {
	prefix := s.DayPrefix(day)

	keys, err := s.objects.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrPartitionNotFound, prefix)
	}

	records := make([]*models.EmailRecord, 0, len(keys))
	for _, key := range keys {
		data, err := s.objects.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		var rec models.EmailRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("record %s: unmarshal: %w", key, err)
		}
		records = append(records, &rec)
	}

	return records, nil
}

// DayPrefix is the listing prefix for one local calendar day.
func (s *RecordStore) DayPrefix(day time.Time) string {
	return fmt.Sprintf("%s/%d/%d/%d/", s.prefix, day.Year(), int(day.Month()), day.Day())
}

func (s *RecordStore) recordKey(rec *models.EmailRecord) string {
	return fmt.Sprintf("%s%s.json", s.DayPrefix(rec.Date), rec.ID)
}
