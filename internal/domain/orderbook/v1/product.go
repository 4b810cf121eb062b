package orderbookv1

import "github.com/shopspring/decimal"

// Product is the immutable identity of the traded pair.
type Product struct {
	ID            string
	BaseCurrency  string
	QuoteCurrency string
	// BaseScale and QuoteScale are the number of fractional digits each
	// currency is truncated to.
	BaseScale  int32
	QuoteScale int32
}

// SizeForFunds converts a quote currency budget into the largest base size
// affordable at price, truncated toward zero at the base scale.
func (p Product) SizeForFunds(funds, price decimal.Decimal) decimal.Decimal {
	if !price.IsPositive() || !funds.IsPositive() {
		return decimal.Zero
	}
	q, _ := funds.QuoRem(price, p.BaseScale)
	return q
}
