package pricing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PromoKind distinguishes flat-amount codes from percentage codes.
type PromoKind string

const (
	PromoFlat       PromoKind = "flat"
	PromoPercentage PromoKind = "percentage"
)

// Promo is one promotional code definition. Value is pounds for flat codes
// and a fraction (0.15 for 15%) for percentage codes. A zero MaxAmount means
// uncapped; a zero ExpiresAt means no expiry; a zero MaxRedemptions means
// unlimited.
type Promo struct {
	Code           string          `json:"code"`
	Kind           PromoKind       `json:"kind"`
	Value          decimal.Decimal `json:"value"`
	MaxAmount      decimal.Decimal `json:"maxAmount"`
	MinSubtotal    decimal.Decimal `json:"minSubtotal"`
	Active         bool            `json:"active"`
	ExpiresAt      time.Time       `json:"expiresAt"`
	MaxRedemptions int             `json:"maxRedemptions"`
	Redemptions    int             `json:"redemptions"`
}

// Redeemable reports whether the code can still be applied at the given
// instant.
func (p Promo) Redeemable(now time.Time) bool {
	if !p.Active {
		return false
	}
	if !p.ExpiresAt.IsZero() && now.After(p.ExpiresAt) {
		return false
	}
	if p.MaxRedemptions > 0 && p.Redemptions >= p.MaxRedemptions {
		return false
	}
	return true
}

// DiscountFor computes the discount against a pre-discount subtotal,
// honouring the minimum-subtotal gate and the cap. It never exceeds the
// subtotal itself.
func (p Promo) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.LessThan(p.MinSubtotal) {
		return decimal.Zero
	}

	var amount decimal.Decimal
	switch p.Kind {
	case PromoFlat:
		amount = p.Value
	case PromoPercentage:
		amount = subtotal.Mul(p.Value)
	default:
		return decimal.Zero
	}

	if p.MaxAmount.IsPositive() && amount.GreaterThan(p.MaxAmount) {
		amount = p.MaxAmount
	}
	if amount.GreaterThan(subtotal) {
		amount = subtotal
	}
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// PromoLookup resolves a promo code to its definition. A (nil, nil) return
// means the code is unknown; the engine treats that, and any lookup error,
// as "no discount" rather than failing the quote.
type PromoLookup interface {
	Lookup(ctx context.Context, code string) (*Promo, error)
}

// PromoLookupFunc adapts a function to the PromoLookup interface.
type PromoLookupFunc func(ctx context.Context, code string) (*Promo, error)

func (f PromoLookupFunc) Lookup(ctx context.Context, code string) (*Promo, error) {
	return f(ctx, code)
}

// NoPromos is a lookup that knows no codes.
func NoPromos() PromoLookup {
	return PromoLookupFunc(func(context.Context, string) (*Promo, error) {
		return nil, nil
	})
}
