package scorecarddb

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
)

// DefaultKVBucket is the JetStream KeyValue bucket saves are kept in.
const DefaultKVBucket = "scorecard_saves"

// NATSKVStore keeps saves in a JetStream KeyValue bucket.
type NATSKVStore struct {
	kv jetstream.KeyValue
}

// NewNATSKVStore creates (or reuses) the bucket and returns a store on it.
func NewNATSKVStore(ctx context.Context, js jetstream.JetStream, bucket string) (*NATSKVStore, error) {
	if bucket == "" {
		bucket = DefaultKVBucket
	}
	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "three-under save slots",
		History:     1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create KV bucket %s: %w", bucket, err)
	}
	return &NATSKVStore{kv: kv}, nil
}

func (s *NATSKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) || errors.Is(err, jetstream.ErrKeyDeleted) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to get %s from KV: %w", key, err)
	}
	return entry.Value(), nil
}

func (s *NATSKVStore) Put(ctx context.Context, key string, value []byte) error {
	if _, err := s.kv.Put(ctx, key, value); err != nil {
		return fmt.Errorf("failed to put %s in KV: %w", key, err)
	}
	return nil
}

func (s *NATSKVStore) Delete(ctx context.Context, key string) error {
	if err := s.kv.Delete(ctx, key); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("failed to delete %s from KV: %w", key, err)
	}
	return nil
}

var _ Store = (*NATSKVStore)(nil)
