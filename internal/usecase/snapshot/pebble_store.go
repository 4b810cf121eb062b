package snapshot

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/cockroachdb/pebble"
	snapshotv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/exchange-matching/pkg/errors"
	"github.com/muhammadchandra19/exchange-matching/pkg/logger"
)

// PebbleStore keeps the latest snapshot of a product in a local Pebble
// database. Writes are synced before Store returns.
type PebbleStore struct {
	db     *pebble.DB
	key    []byte
	logger *logger.Logger
}

// NewPebbleStore opens (or creates) the database in dir.
func NewPebbleStore(dir, key string, log *logger.Logger) (*PebbleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errors.NewTracer("snapshot_open_error").Wrap(err)
	}

	return &PebbleStore{
		db:     db,
		key:    []byte(key),
		logger: log,
	}, nil
}

// Store replaces the snapshot held in the database.
func (s *PebbleStore) Store(ctx context.Context, snapshot *snapshotv1.Snapshot) error {
	buf, err := json.Marshal(snapshot)
	if err != nil {
		return errors.NewTracer(errors.SnapshotMarshalError.String()).Wrap(err)
	}

	if err := s.db.Set(s.key, buf, pebble.Sync); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{Key: "key", Value: string(s.key)})
		return errors.NewTracer(errors.SnapshotStoreError.String()).Wrap(err)
	}

	s.logger.InfoContext(ctx, "snapshot stored",
		logger.Field{Key: "key", Value: string(s.key)},
		logger.Field{Key: "order_offset", Value: snapshot.OrderOffset},
		logger.Field{Key: "log_seq", Value: snapshot.LogSeq()},
	)
	return nil
}

// GetLatest loads the snapshot from the database. It returns nil when none was stored.
func (s *PebbleStore) GetLatest(ctx context.Context) (*snapshotv1.Snapshot, error) {
	value, closer, err := s.db.Get(s.key)
	if stderrors.Is(err, pebble.ErrNotFound) {
		s.logger.WarnContext(ctx, "no snapshot found", logger.Field{Key: "key", Value: string(s.key)})
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewTracer(errors.SnapshotLoadError.String()).Wrap(err)
	}
	defer closer.Close()

	return decodeSnapshot(value)
}

// Close closes the database.
func (s *PebbleStore) Close() error {
	return s.db.Close()
}
