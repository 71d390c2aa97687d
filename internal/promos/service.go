package promos

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/speedy-van/speedy-van-sub008/internal/pricing"
	apperrors "github.com/speedy-van/speedy-van-sub008/pkg/errors"
	"github.com/speedy-van/speedy-van-sub008/pkg/logger"
)

// Store is the persistence surface the service needs. MemoryStore and Repo
// both satisfy it.
type Store interface {
	Lookup(ctx context.Context, code string) (*pricing.Promo, error)
	Upsert(ctx context.Context, promo pricing.Promo) error
	List(ctx context.Context) ([]pricing.Promo, error)
}

// Service owns promo-code business rules. It also implements
// pricing.PromoLookup for the engine.
type Service struct {
	store Store
	logg  *logger.Logger
}

func NewService(store Store, logg *logger.Logger) *Service {
	return &Service{store: store, logg: logg}
}

// Lookup resolves a code for the pricing engine.
func (s *Service) Lookup(ctx context.Context, code string) (*pricing.Promo, error) {
	return s.store.Lookup(ctx, normalizeCode(code))
}

// Create registers a new promo code. Existing codes are not silently
// replaced.
func (s *Service) Create(ctx context.Context, promo pricing.Promo) (*pricing.Promo, error) {
	promo.Code = normalizeCode(promo.Code)
	if err := validatePromo(promo); err != nil {
		return nil, err
	}

	existing, err := s.store.Lookup(ctx, promo.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.New(apperrors.CodeConflict,
			fmt.Sprintf("promo code %q already exists", promo.Code))
	}

	if err := s.store.Upsert(ctx, promo); err != nil {
		return nil, err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithPromoCode(ctx, promo.Code), "promo code created")
	}
	return &promo, nil
}

// List returns every stored promo code.
func (s *Service) List(ctx context.Context) ([]pricing.Promo, error) {
	return s.store.List(ctx)
}

func validatePromo(promo pricing.Promo) *apperrors.Error {
	var issues []pricing.FieldIssue

	if promo.Code == "" {
		issues = append(issues, pricing.FieldIssue{Field: "code", Message: "code is required"})
	}
	switch promo.Kind {
	case pricing.PromoFlat:
		if !promo.Value.IsPositive() {
			issues = append(issues, pricing.FieldIssue{Field: "value", Message: "flat amount must be positive"})
		}
	case pricing.PromoPercentage:
		if !promo.Value.IsPositive() || promo.Value.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			issues = append(issues, pricing.FieldIssue{Field: "value", Message: "percentage must be in (0, 1)"})
		}
	default:
		issues = append(issues, pricing.FieldIssue{Field: "kind", Message: "kind must be flat or percentage"})
	}
	if promo.MaxAmount.IsNegative() {
		issues = append(issues, pricing.FieldIssue{Field: "maxAmount", Message: "max amount cannot be negative"})
	}
	if promo.MinSubtotal.IsNegative() {
		issues = append(issues, pricing.FieldIssue{Field: "minSubtotal", Message: "min subtotal cannot be negative"})
	}
	if promo.MaxRedemptions < 0 {
		issues = append(issues, pricing.FieldIssue{Field: "maxRedemptions", Message: "max redemptions cannot be negative"})
	}

	if len(issues) == 0 {
		return nil
	}
	return apperrors.New(apperrors.CodeValidation, "promo code failed validation").WithDetails(issues)
}

// SeedDefaults installs the launch promotions when they are missing, leaving
// any operator-edited versions alone.
func SeedDefaults(ctx context.Context, store Store) error {
	defaults := []pricing.Promo{
		{
			Code:      "SAVE15",
			Kind:      pricing.PromoPercentage,
			Value:     decimal.RequireFromString("0.15"),
			MaxAmount: decimal.NewFromInt(50),
			Active:    true,
		},
		{
			Code:        "WELCOME10",
			Kind:        pricing.PromoFlat,
			Value:       decimal.NewFromInt(10),
			MinSubtotal: decimal.NewFromInt(80),
			Active:      true,
		},
	}

	for _, promo := range defaults {
		existing, err := store.Lookup(ctx, promo.Code)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := store.Upsert(ctx, promo); err != nil {
			return err
		}
	}
	return nil
}
