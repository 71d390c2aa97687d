package pricing

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// Discounts run after every surcharge and are all computed from the same
// pre-discount subtotal. They are applied in order and each one is clamped
// to whatever subtotal remains, so the chain can reach zero but never go
// below it.

func firstTimeDiscount(req QuoteRequest, rates *RateTable, preDiscount decimal.Decimal) (LineItem, bool) {
	if !req.IsFirstTimeCustomer {
		return LineItem{}, false
	}
	amount := preDiscount.Mul(rates.FirstTimePercent)
	if !amount.IsPositive() {
		return LineItem{}, false
	}
	return LineItem{Name: "First-time customer", Amount: amount}, true
}

// promoDiscount resolves the code through the injected lookup. Unknown
// codes, unredeemable codes and lookup failures all price as "no discount";
// a bad promo never fails the quote.
func (e *Engine) promoDiscount(ctx context.Context, req QuoteRequest, preDiscount decimal.Decimal) (LineItem, bool) {
	code := strings.ToUpper(strings.TrimSpace(req.PromoCode))
	if code == "" || e.promos == nil {
		return LineItem{}, false
	}

	promo, err := e.promos.Lookup(ctx, code)
	if err != nil {
		if e.logg != nil {
			logCtx := e.logg.WithField(e.logg.WithPromoCode(ctx, code), "error", err.Error())
			e.logg.Warn(logCtx, "promo lookup failed, pricing without discount")
		}
		return LineItem{}, false
	}
	if promo == nil || !promo.Redeemable(e.now()) {
		return LineItem{}, false
	}

	amount := promo.DiscountFor(preDiscount)
	if !amount.IsPositive() {
		return LineItem{}, false
	}
	return LineItem{Name: "Promo " + promo.Code, Amount: amount}, true
}
