package snapshot

import (
	"context"
	"encoding/json"

	snapshotv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/exchange-matching/pkg/errors"
	"github.com/muhammadchandra19/exchange-matching/pkg/logger"
	"github.com/muhammadchandra19/exchange-matching/pkg/redis"
)

// Store keeps the latest snapshot of a product under a single Redis key.
type Store struct {
	key         string
	logger      *logger.Logger
	redisclient redis.Client
}

// NewSnapshotStore creates a new Store with the given Redis client and key.
func NewSnapshotStore(redisclient redis.Client, key string, log *logger.Logger) *Store {
	return &Store{
		key:         key,
		redisclient: redisclient,
		logger:      log,
	}
}

// Store replaces the snapshot held in Redis.
func (s *Store) Store(ctx context.Context, snapshot *snapshotv1.Snapshot) error {
	buf, err := json.Marshal(snapshot)
	if err != nil {
		return errors.NewTracer(errors.SnapshotMarshalError.String()).Wrap(err)
	}

	if err := s.redisclient.Set(ctx, s.key, buf, 0); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "key",
			Value: s.key,
		}, logger.Field{
			Key:   "order_offset",
			Value: snapshot.OrderOffset,
		})
		return errors.NewTracer(errors.SnapshotStoreError.String()).Wrap(err)
	}

	s.logger.InfoContext(ctx, "snapshot stored", logger.Field{
		Key:   "key",
		Value: s.key,
	}, logger.Field{
		Key:   "order_offset",
		Value: snapshot.OrderOffset,
	}, logger.Field{
		Key:   "log_seq",
		Value: snapshot.LogSeq(),
	})
	return nil
}

// GetLatest loads the snapshot from Redis. It returns nil when none was stored.
func (s *Store) GetLatest(ctx context.Context) (*snapshotv1.Snapshot, error) {
	data, err := s.redisclient.Get(ctx, s.key)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "key",
			Value: s.key,
		})
		return nil, errors.NewTracer(errors.SnapshotLoadError.String()).Wrap(err)
	}

	if data == "" {
		s.logger.WarnContext(ctx, "no snapshot found", logger.Field{
			Key:   "key",
			Value: s.key,
		})
		return nil, nil
	}

	return decodeSnapshot([]byte(data))
}

// Close disconnects the Redis client.
func (s *Store) Close() error {
	return s.redisclient.Disconnect(context.Background())
}

func decodeSnapshot(data []byte) (*snapshotv1.Snapshot, error) {
	var snapshot snapshotv1.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.NewTracer(errors.SnapshotMarshalError.String()).Wrap(err)
	}
	return &snapshot, nil
}
