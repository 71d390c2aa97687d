package promos

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/speedy-van/speedy-van-sub008/api/responses"
	"github.com/speedy-van/speedy-van-sub008/api/validators"
	"github.com/speedy-van/speedy-van-sub008/internal/pricing"
	promosvc "github.com/speedy-van/speedy-van-sub008/internal/promos"
	pkgerrors "github.com/speedy-van/speedy-van-sub008/pkg/errors"
	"github.com/speedy-van/speedy-van-sub008/pkg/logger"
)

// CreatePromoRequest is the wire shape for registering a promo code.
type CreatePromoRequest struct {
	Code           string          `json:"code" validate:"required"`
	Kind           string          `json:"kind" validate:"required,oneof=flat percentage"`
	Value          decimal.Decimal `json:"value" validate:"required"`
	MaxAmount      decimal.Decimal `json:"maxAmount"`
	MinSubtotal    decimal.Decimal `json:"minSubtotal"`
	ExpiresAt      *time.Time      `json:"expiresAt"`
	MaxRedemptions int             `json:"maxRedemptions" validate:"gte=0"`
}

type PromoResponse struct {
	Code           string     `json:"code"`
	Kind           string     `json:"kind"`
	Value          string     `json:"value"`
	MaxAmount      string     `json:"maxAmount"`
	MinSubtotal    string     `json:"minSubtotal"`
	Active         bool       `json:"active"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	MaxRedemptions int        `json:"maxRedemptions"`
	Redemptions    int        `json:"redemptions"`
}

// CreatePromo registers a new promo code.
func CreatePromo(svc *promosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "promo service unavailable"))
			return
		}

		var payload CreatePromoRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		promo := pricing.Promo{
			Code:           payload.Code,
			Kind:           pricing.PromoKind(payload.Kind),
			Value:          payload.Value,
			MaxAmount:      payload.MaxAmount,
			MinSubtotal:    payload.MinSubtotal,
			Active:         true,
			MaxRedemptions: payload.MaxRedemptions,
		}
		if payload.ExpiresAt != nil {
			promo.ExpiresAt = *payload.ExpiresAt
		}

		created, err := svc.Create(r.Context(), promo)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, toResponse(*created))
	}
}

// ListPromos returns every stored promo code.
func ListPromos(svc *promosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "promo service unavailable"))
			return
		}

		listed, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]PromoResponse, 0, len(listed))
		for _, promo := range listed {
			out = append(out, toResponse(promo))
		}
		responses.WriteSuccess(w, out)
	}
}

func toResponse(promo pricing.Promo) PromoResponse {
	resp := PromoResponse{
		Code:           promo.Code,
		Kind:           string(promo.Kind),
		Value:          promo.Value.String(),
		MaxAmount:      promo.MaxAmount.StringFixed(2),
		MinSubtotal:    promo.MinSubtotal.StringFixed(2),
		Active:         promo.Active,
		MaxRedemptions: promo.MaxRedemptions,
		Redemptions:    promo.Redemptions,
	}
	if !promo.ExpiresAt.IsZero() {
		expires := promo.ExpiresAt
		resp.ExpiresAt = &expires
	}
	return resp
}
