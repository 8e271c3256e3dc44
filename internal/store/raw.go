package store

import (
	"context"
	"fmt"
)

// RawStore archives raw inbound messages under a flat prefix, keyed by the
// transport-assigned id. The archive makes re-extraction possible after a
// crash: extracting the same message twice produces the same record.
type RawStore struct {
	objects ObjectStore
	prefix  string
}

func NewRawStore(objects ObjectStore, prefix string) *RawStore {
	return &RawStore{
		objects: objects,
		prefix:  prefix,
	}
}

func (s *RawStore) Put(ctx context.Context, id string, raw []byte) error {
	return s.objects.Put(ctx, s.key(id), raw, "message/rfc822")
}

func (s *RawStore) Get(ctx context.Context, id string) ([]byte, error) {
	return s.objects.Get(ctx, s.key(id))
}

func (s *RawStore) key(id string) string {
	return fmt.Sprintf("%s/%s", s.prefix, id)
}
