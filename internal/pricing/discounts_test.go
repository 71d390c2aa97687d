package pricing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromoRedeemable(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		promo Promo
		want  bool
	}{
		{
			name:  "active with no limits",
			promo: Promo{Active: true},
			want:  true,
		},
		{
			name:  "inactive",
			promo: Promo{Active: false},
			want:  false,
		},
		{
			name:  "expired",
			promo: Promo{Active: true, ExpiresAt: now.Add(-time.Hour)},
			want:  false,
		},
		{
			name:  "not yet expired",
			promo: Promo{Active: true, ExpiresAt: now.Add(time.Hour)},
			want:  true,
		},
		{
			name:  "redemptions exhausted",
			promo: Promo{Active: true, MaxRedemptions: 5, Redemptions: 5},
			want:  false,
		},
		{
			name:  "redemptions remaining",
			promo: Promo{Active: true, MaxRedemptions: 5, Redemptions: 4},
			want:  true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.promo.Redeemable(now))
		})
	}
}

func TestPromoDiscountFor(t *testing.T) {
	t.Parallel()

	subtotal := decimal.NewFromInt(400)

	t.Run("percentage capped at max amount", func(t *testing.T) {
		t.Parallel()
		promo := Promo{
			Kind:      PromoPercentage,
			Value:     decimal.RequireFromString("0.15"),
			MaxAmount: decimal.NewFromInt(50),
		}
		// 15% of 400 is 60, capped at 50.
		requireMoney(t, "50.00", promo.DiscountFor(subtotal))
	})

	t.Run("flat clamped to subtotal", func(t *testing.T) {
		t.Parallel()
		promo := Promo{Kind: PromoFlat, Value: decimal.NewFromInt(500)}
		requireMoney(t, "400.00", promo.DiscountFor(subtotal))
	})

	t.Run("minimum subtotal gate", func(t *testing.T) {
		t.Parallel()
		promo := Promo{
			Kind:        PromoFlat,
			Value:       decimal.NewFromInt(10),
			MinSubtotal: decimal.NewFromInt(500),
		}
		assert.True(t, promo.DiscountFor(subtotal).IsZero())
	})

	t.Run("unknown kind yields nothing", func(t *testing.T) {
		t.Parallel()
		promo := Promo{Kind: PromoKind("mystery"), Value: decimal.NewFromInt(10)}
		assert.True(t, promo.DiscountFor(subtotal).IsZero())
	})
}

func TestPromoLookupErrorIsSoftFailure(t *testing.T) {
	t.Parallel()

	lookup := PromoLookupFunc(func(context.Context, string) (*Promo, error) {
		return nil, fmt.Errorf("promo store unavailable")
	})
	engine := newTestEngine(t, lookup)

	req := standardRequest()
	req.PromoCode = "SAVE15"

	result, err := engine.Calculate(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, result.Discounts)
	requireMoney(t, "99.00", result.Subtotal)
}

func TestExpiredPromoPricesWithoutDiscount(t *testing.T) {
	t.Parallel()

	lookup := PromoLookupFunc(func(context.Context, string) (*Promo, error) {
		return &Promo{
			Code:      "OLD10",
			Kind:      PromoFlat,
			Value:     decimal.NewFromInt(10),
			Active:    true,
			ExpiresAt: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		}, nil
	})
	engine := newTestEngine(t, lookup)

	req := standardRequest()
	req.PromoCode = "OLD10"

	result, err := engine.Calculate(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, result.Discounts)
}

func TestPromoCodeIsNormalizedBeforeLookup(t *testing.T) {
	t.Parallel()

	var seen string
	lookup := PromoLookupFunc(func(_ context.Context, code string) (*Promo, error) {
		seen = code
		return nil, nil
	})
	engine := newTestEngine(t, lookup)

	req := standardRequest()
	req.PromoCode = "  save15 "

	_, err := engine.Calculate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "SAVE15", seen)
}
