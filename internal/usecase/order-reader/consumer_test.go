package orderreader

import (
	"context"
	stderrors "errors"
	"testing"

	orderreaderv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/order-reader/v1"
	orderbookv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/exchange-matching/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessageReader struct {
	offset    int64
	messages  []kafka.Message
	seekErr   error
	fetchErr  error
	closed    bool
	setOffset []int64
}

func (f *fakeMessageReader) SetOffset(offset int64) error {
	if f.seekErr != nil {
		return f.seekErr
	}
	f.setOffset = append(f.setOffset, offset)
	f.offset = offset
	return nil
}

func (f *fakeMessageReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if f.fetchErr != nil {
		return kafka.Message{}, f.fetchErr
	}
	for _, msg := range f.messages {
		if msg.Offset >= f.offset {
			f.offset = msg.Offset + 1
			return msg, nil
		}
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (f *fakeMessageReader) Close() error {
	f.closed = true
	return nil
}

const validOrder = `{"id":7,"created_at":1700000000,"product_id":"BTC-USD","user_id":3,"client_oid":"c-1",
"price":"100.5","size":"2","funds":"0","type":"limit","side":"buy","time_in_force":"GTC","status":"new"}`

func TestReader_FetchOrder(t *testing.T) {
	testCases := []struct {
		name         string
		messages     []kafka.Message
		fetchErr     error
		expectOffset int64
		expectDecode bool
		expectErr    bool
	}{
		{
			name:         "valid order",
			messages:     []kafka.Message{{Offset: 4, Value: []byte(validOrder)}},
			expectOffset: 4,
		},
		{
			name:         "malformed json",
			messages:     []kafka.Message{{Offset: 5, Value: []byte(`{"id":`)}},
			expectOffset: 5,
			expectDecode: true,
		},
		{
			name:         "unknown enum",
			messages:     []kafka.Message{{Offset: 6, Value: []byte(`{"id":1,"type":"stop","side":"buy","time_in_force":"GTC","status":"new"}`)}},
			expectOffset: 6,
			expectDecode: true,
		},
		{
			name:      "broker error",
			fetchErr:  stderrors.New("broker unavailable"),
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeMessageReader{messages: tc.messages, fetchErr: tc.fetchErr}
			reader := newReader(fake, logger.NewNop())

			offset, order, err := reader.FetchOrder(context.Background())

			switch {
			case tc.expectDecode:
				assert.ErrorIs(t, err, orderreaderv1.ErrDecode)
				assert.Nil(t, order)
				assert.Equal(t, tc.expectOffset, offset)
			case tc.expectErr:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, orderreaderv1.ErrDecode)
			default:
				require.NoError(t, err)
				assert.Equal(t, tc.expectOffset, offset)
				assert.Equal(t, int64(7), order.ID)
				assert.Equal(t, orderbookv1.SideBuy, order.Side)
				assert.True(t, decimal.RequireFromString("100.5").Equal(order.Price))
			}
		})
	}
}

func TestReader_SetOffset(t *testing.T) {
	fake := &fakeMessageReader{messages: []kafka.Message{
		{Offset: 0, Value: []byte(validOrder)},
		{Offset: 1, Value: []byte(validOrder)},
	}}
	reader := newReader(fake, logger.NewNop())

	require.NoError(t, reader.SetOffset(1))
	offset, _, err := reader.FetchOrder(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1), offset)
	assert.Equal(t, []int64{1}, fake.setOffset)
}

func TestReader_SetOffsetError(t *testing.T) {
	fake := &fakeMessageReader{seekErr: stderrors.New("not allowed")}
	reader := newReader(fake, logger.NewNop())

	assert.Error(t, reader.SetOffset(3))
}

func TestReader_Close(t *testing.T) {
	fake := &fakeMessageReader{}
	reader := newReader(fake, logger.NewNop())

	require.NoError(t, reader.Close())
	assert.True(t, fake.closed)
}
