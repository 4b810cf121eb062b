package snapshot

import (
	"context"
	"testing"

	"github.com/muhammadchandra19/exchange-matching/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPebbleStore(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewPebbleStore(dir, "matching_snapshot_BTC-USD", logger.NewNop())
	require.NoError(t, err)

	latest, err := store.GetLatest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	first := testSnapshot()
	require.NoError(t, store.Store(ctx, first))

	second := testSnapshot()
	second.OrderOffset = 2400
	second.OrderBookSnapshot.LogSeq = 40
	require.NoError(t, store.Store(ctx, second))
	require.NoError(t, store.Close())

	reopened, err := NewPebbleStore(dir, "matching_snapshot_BTC-USD", logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	latest, err = reopened.GetLatest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, int64(2400), latest.OrderOffset)
	assert.Equal(t, int64(40), latest.LogSeq())
	assert.Equal(t, "BTC-USD", latest.OrderBookSnapshot.ProductID)
}
