package assessstore

import (
	"context"
	"encoding/json"

	"github.com/valkey-io/valkey-go"

	"github.com/kiranraj/surgesight/internal/domain/monitor"
)

// ValkeyStore keeps the last known good cycle in a Valkey-compatible
// database so several API replicas can serve the same artifact.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "surgesight"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Latest implements monitor.Store.
func (s *ValkeyStore) Latest(ctx context.Context) (monitor.CycleRecord, bool, error) {
	cmd := s.client.B().Get().Key(s.latestKey()).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return monitor.CycleRecord{}, false, nil
		}
		return monitor.CycleRecord{}, false, err
	}
	var record monitor.CycleRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return monitor.CycleRecord{}, false, err
	}
	return record, true, nil
}

// Save replaces the stored cycle wholesale. The slot has no TTL; stale-data
// retention on fetch failure is the point of the store.
func (s *ValkeyStore) Save(ctx context.Context, record monitor.CycleRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	cmd := s.client.B().Set().Key(s.latestKey()).Value(string(payload)).Build()
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) latestKey() string {
	return s.prefix + ":cycle:latest"
}

var _ monitor.Store = (*ValkeyStore)(nil)
