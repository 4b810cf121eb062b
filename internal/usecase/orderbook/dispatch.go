package orderbook

import (
	matchlogv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/matchlog/v1"
	orderbookv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/orderbook/v1"
)

// Process routes order by its status and time in force and returns the
// emitted logs in emission order.
//
//	cancelling -> CancelOrder
//	IOC        -> ApplyOrder, then CancelOrder for any resting remainder
//	GTX        -> ApplyOrder if it will not match, else NullifyOrder
//	FOK        -> ApplyOrder if it will fully match, else NullifyOrder
//	GTC        -> ApplyOrder
func (ob *OrderBook) Process(order *orderbookv1.Order) ([]matchlogv1.Log, error) {
	if order.Status == orderbookv1.OrderStatusCancelling {
		return ob.CancelOrder(order)
	}

	switch order.TimeInForce {
	case orderbookv1.ImmediateOrCancel:
		logs, err := ob.ApplyOrder(order)
		if err != nil {
			return nil, err
		}
		cancelLogs, err := ob.CancelOrder(order)
		if err != nil {
			return nil, err
		}
		return append(logs, cancelLogs...), nil
	case orderbookv1.GoodTillCrossing:
		if ob.IsOrderWillNotMatch(order) {
			return ob.ApplyOrder(order)
		}
		return ob.NullifyOrder(order)
	case orderbookv1.FillOrKill:
		if ob.IsOrderWillFullMatch(order) {
			return ob.ApplyOrder(order)
		}
		return ob.NullifyOrder(order)
	default:
		return ob.ApplyOrder(order)
	}
}
