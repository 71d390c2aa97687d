package promos

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedy-van/speedy-van-sub008/internal/pricing"
	apperrors "github.com/speedy-van/speedy-van-sub008/pkg/errors"
)

func TestServiceCreateAndLookup(t *testing.T) {
	t.Parallel()

	service := NewService(NewMemoryStore(), nil)
	ctx := context.Background()

	created, err := service.Create(ctx, pricing.Promo{
		Code:   "spring20",
		Kind:   pricing.PromoPercentage,
		Value:  decimal.RequireFromString("0.20"),
		Active: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "SPRING20", created.Code)

	found, err := service.Lookup(ctx, " spring20 ")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "SPRING20", found.Code)

	missing, err := service.Lookup(ctx, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestServiceCreateRejectsDuplicates(t *testing.T) {
	t.Parallel()

	service := NewService(NewMemoryStore(), nil)
	ctx := context.Background()

	promo := pricing.Promo{
		Code:   "TWICE",
		Kind:   pricing.PromoFlat,
		Value:  decimal.NewFromInt(5),
		Active: true,
	}

	_, err := service.Create(ctx, promo)
	require.NoError(t, err)

	_, err = service.Create(ctx, promo)
	require.Error(t, err)
	typed := apperrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperrors.CodeConflict, typed.Code())
}

func TestServiceCreateValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		promo pricing.Promo
	}{
		{
			name:  "missing code",
			promo: pricing.Promo{Kind: pricing.PromoFlat, Value: decimal.NewFromInt(5)},
		},
		{
			name:  "unknown kind",
			promo: pricing.Promo{Code: "X", Kind: pricing.PromoKind("bogus"), Value: decimal.NewFromInt(5)},
		},
		{
			name:  "percentage of one or more",
			promo: pricing.Promo{Code: "X", Kind: pricing.PromoPercentage, Value: decimal.NewFromInt(1)},
		},
		{
			name:  "non-positive flat amount",
			promo: pricing.Promo{Code: "X", Kind: pricing.PromoFlat, Value: decimal.Zero},
		},
		{
			name: "negative cap",
			promo: pricing.Promo{
				Code:      "X",
				Kind:      pricing.PromoFlat,
				Value:     decimal.NewFromInt(5),
				MaxAmount: decimal.NewFromInt(-1),
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			service := NewService(NewMemoryStore(), nil)
			_, err := service.Create(context.Background(), tc.promo)
			require.Error(t, err)

			typed := apperrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, apperrors.CodeValidation, typed.Code())
		})
	}
}

func TestSeedDefaultsIsIdempotentAndNonDestructive(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, SeedDefaults(ctx, store))
	require.NoError(t, SeedDefaults(ctx, store))

	listed, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	// An operator edit survives a reseed.
	edited, err := store.Lookup(ctx, "SAVE15")
	require.NoError(t, err)
	require.NotNil(t, edited)
	edited.Active = false
	require.NoError(t, store.Upsert(ctx, *edited))

	require.NoError(t, SeedDefaults(ctx, store))
	after, err := store.Lookup(ctx, "SAVE15")
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.False(t, after.Active)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, pricing.Promo{
		Code:   "COPY",
		Kind:   pricing.PromoFlat,
		Value:  decimal.NewFromInt(5),
		Active: true,
	}))

	first, err := store.Lookup(ctx, "COPY")
	require.NoError(t, err)
	first.Active = false

	second, err := store.Lookup(ctx, "COPY")
	require.NoError(t, err)
	assert.True(t, second.Active)
}
