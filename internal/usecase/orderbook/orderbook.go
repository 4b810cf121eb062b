package orderbook

import (
	"fmt"

	matchlogv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/matchlog/v1"
	orderbookv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/exchange-matching/pkg/logger"
	"github.com/muhammadchandra19/exchange-matching/pkg/window"
	"github.com/shopspring/decimal"
)

// DefaultWindowCap is the order id window capacity used when none is configured.
const DefaultWindowCap int64 = 10000

// OrderBook is the price-time priority book of a single product. It is not
// safe for concurrent use; the engine's applier is its only caller.
type OrderBook struct {
	product   *orderbookv1.Product
	depths    map[orderbookv1.Side]*Depth
	tradeSeq  int64
	logSeq    int64
	windowCap int64

	orderIDWindow *window.Window
	logger        *logger.Logger
}

// NewOrderBook creates an empty order book for product.
func NewOrderBook(product *orderbookv1.Product, windowCap int64, log *logger.Logger) *OrderBook {
	if windowCap <= 0 {
		windowCap = DefaultWindowCap
	}
	return &OrderBook{
		product: product,
		depths: map[orderbookv1.Side]*Depth{
			orderbookv1.SideBuy:  NewDepth(orderbookv1.SideBuy),
			orderbookv1.SideSell: NewDepth(orderbookv1.SideSell),
		},
		windowCap:     windowCap,
		orderIDWindow: window.New(0, windowCap),
		logger: log.WithFields(logger.Field{
			Key:   "product_id",
			Value: product.ID,
		}),
	}
}

// Depth returns the resting orders of one side.
func (ob *OrderBook) Depth(side orderbookv1.Side) *Depth {
	return ob.depths[side]
}

// LogSeq returns the sequence of the last emitted log.
func (ob *OrderBook) LogSeq() int64 {
	return ob.logSeq
}

// TradeSeq returns the sequence of the last executed trade.
func (ob *OrderBook) TradeSeq() int64 {
	return ob.tradeSeq
}

// ApplyOrder matches order against the opposite side and rests any limit
// remainder. Orders rejected by the id window produce no logs and return the
// window error. Any other error means the book is corrupted.
func (ob *OrderBook) ApplyOrder(order *orderbookv1.Order) ([]matchlogv1.Log, error) {
	if err := ob.orderIDWindow.Put(order.ID); err != nil {
		ob.logger.Warn("order rejected by id window",
			logger.Field{Key: "order_id", Value: order.ID},
			logger.Field{Key: "error", Value: err.Error()},
		)
		return nil, err
	}

	taker := orderbookv1.NewBookOrder(order)
	if taker.IsMarket() {
		taker.Price = decimal.Zero
	}

	var logs []matchlogv1.Log
	makerDepth := ob.depths[taker.Side.Opposite()]
	for {
		maker, ok := makerDepth.Best()
		if !ok || !taker.Crosses(maker.Price) {
			break
		}

		price := maker.Price
		var size decimal.Decimal
		if taker.IsMarketBuy() {
			size = decimal.Min(ob.product.SizeForFunds(taker.Funds, price), maker.Size)
			if size.IsZero() {
				break
			}
			taker.Funds = taker.Funds.Sub(size.Mul(price))
		} else {
			if taker.Size.Sign() <= 0 {
				break
			}
			size = decimal.Min(taker.Size, maker.Size)
			taker.Size = taker.Size.Sub(size)
		}

		if err := makerDepth.DecrSize(maker.OrderID, size); err != nil {
			return nil, fmt.Errorf("match order %d against %d: %w", taker.OrderID, maker.OrderID, err)
		}

		ob.tradeSeq++
		logs = ob.emit(logs, matchlogv1.NewMatchLog(ob.nextLogSeq(), ob.product.ID, ob.tradeSeq, taker, maker, price, size))

		if maker.Size.IsZero() {
			logs = ob.emit(logs, matchlogv1.NewDoneLog(ob.nextLogSeq(), ob.product.ID, maker, maker.Size, orderbookv1.DoneReasonFilled))
		}
	}

	if taker.Type == orderbookv1.OrderTypeLimit && taker.Size.Sign() > 0 {
		ob.depths[taker.Side].Add(taker)
		return ob.emit(logs, matchlogv1.NewOpenLog(ob.nextLogSeq(), ob.product.ID, taker)), nil
	}

	remainingSize := taker.Size
	reason := orderbookv1.DoneReasonFilled
	if taker.IsMarket() {
		remainingSize = decimal.Zero
		if (taker.Side == orderbookv1.SideSell && taker.Size.Sign() > 0) ||
			(taker.Side == orderbookv1.SideBuy && taker.Funds.Sign() > 0) {
			reason = orderbookv1.DoneReasonCancelled
		}
	}
	return ob.emit(logs, matchlogv1.NewDoneLog(ob.nextLogSeq(), ob.product.ID, taker, remainingSize, reason)), nil
}

// CancelOrder removes the resting order with order's id. Cancelling an order
// that is no longer on the book is a no-op.
func (ob *OrderBook) CancelOrder(order *orderbookv1.Order) ([]matchlogv1.Log, error) {
	_ = ob.orderIDWindow.Put(order.ID)

	depth := ob.depths[order.Side]
	bookOrder, ok := depth.Get(order.ID)
	if !ok {
		return nil, nil
	}

	remainingSize := bookOrder.Size
	if err := depth.DecrSize(bookOrder.OrderID, remainingSize); err != nil {
		return nil, fmt.Errorf("cancel order %d: %w", order.ID, err)
	}

	return ob.emit(nil, matchlogv1.NewDoneLog(ob.nextLogSeq(), ob.product.ID, bookOrder, remainingSize, orderbookv1.DoneReasonCancelled)), nil
}

// NullifyOrder rejects order without touching the book.
func (ob *OrderBook) NullifyOrder(order *orderbookv1.Order) ([]matchlogv1.Log, error) {
	_ = ob.orderIDWindow.Put(order.ID)

	bookOrder := orderbookv1.NewBookOrder(order)
	return ob.emit(nil, matchlogv1.NewDoneLog(ob.nextLogSeq(), ob.product.ID, bookOrder, order.Size, orderbookv1.DoneReasonCancelled)), nil
}

// IsOrderWillNotMatch reports whether order would not trade at all if applied now.
func (ob *OrderBook) IsOrderWillNotMatch(order *orderbookv1.Order) bool {
	taker := orderbookv1.NewBookOrder(order)

	maker, ok := ob.depths[taker.Side.Opposite()].Best()
	if !ok {
		return true
	}
	return !taker.Crosses(maker.Price)
}

// IsOrderWillFullMatch reports whether a limit order would be completely
// filled if applied now. The walk runs over a read-only view of the opposite
// depth and a private copy of the taker.
func (ob *OrderBook) IsOrderWillFullMatch(order *orderbookv1.Order) bool {
	taker := orderbookv1.NewBookOrder(order)

	ob.depths[taker.Side.Opposite()].Ascend(func(maker *orderbookv1.BookOrder) bool {
		if !taker.Crosses(maker.Price) {
			return false
		}

		if taker.IsMarketBuy() {
			size := decimal.Min(ob.product.SizeForFunds(taker.Funds, maker.Price), maker.Size)
			if size.IsZero() {
				return false
			}
			taker.Funds = taker.Funds.Sub(size.Mul(maker.Price))
			return true
		}

		if taker.Size.Sign() <= 0 {
			return false
		}
		taker.Size = taker.Size.Sub(decimal.Min(taker.Size, maker.Size))
		return true
	})

	return !(taker.Type == orderbookv1.OrderTypeLimit && taker.Size.Sign() > 0)
}

// Snapshot captures the resting orders, the sequences and the id window. The
// result shares no memory with the book.
func (ob *OrderBook) Snapshot() *snapshotv1.OrderBookSnapshot {
	orders := ob.depths[orderbookv1.SideSell].Orders()
	orders = append(orders, ob.depths[orderbookv1.SideBuy].Orders()...)

	min, max, capacity, data := ob.orderIDWindow.Raw()
	return &snapshotv1.OrderBookSnapshot{
		ProductID:     ob.product.ID,
		Orders:        orders,
		TradeSeq:      ob.tradeSeq,
		LogSeq:        ob.logSeq,
		OrderIDWindow: snapshotv1.NewWindowSnapshot(min, max, capacity, data),
	}
}

// Restore replaces the book state with snapshot.
func (ob *OrderBook) Restore(snapshot *snapshotv1.OrderBookSnapshot) {
	ob.logSeq = snapshot.LogSeq
	ob.tradeSeq = snapshot.TradeSeq

	w := snapshot.OrderIDWindow
	if w.Cap == 0 {
		ob.orderIDWindow = window.New(0, ob.windowCap)
	} else {
		ob.orderIDWindow = window.FromRaw(w.Min, w.Max, w.Cap, w.Bytes())
	}

	ob.depths[orderbookv1.SideBuy] = NewDepth(orderbookv1.SideBuy)
	ob.depths[orderbookv1.SideSell] = NewDepth(orderbookv1.SideSell)
	for i := range snapshot.Orders {
		order := snapshot.Orders[i]
		ob.depths[order.Side].Add(&order)
	}
}

func (ob *OrderBook) nextLogSeq() int64 {
	ob.logSeq++
	return ob.logSeq
}

func (ob *OrderBook) emit(logs []matchlogv1.Log, log matchlogv1.Log) []matchlogv1.Log {
	ob.logger.Debug(fmt.Sprintf("%s log", log.GetType()),
		logger.Field{Key: "sequence", Value: log.GetSeq()},
		logger.Field{Key: "log", Value: log},
	)
	return append(logs, log)
}
