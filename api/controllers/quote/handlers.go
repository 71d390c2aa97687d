package quote

import (
	"net/http"
	"time"

	quotedto "github.com/speedy-van/speedy-van-sub008/api/controllers/quote/dto"
	"github.com/speedy-van/speedy-van-sub008/api/responses"
	"github.com/speedy-van/speedy-van-sub008/api/validators"
	"github.com/speedy-van/speedy-van-sub008/internal/pricing"
	pkgerrors "github.com/speedy-van/speedy-van-sub008/pkg/errors"
	"github.com/speedy-van/speedy-van-sub008/pkg/logger"
	"github.com/speedy-van/speedy-van-sub008/pkg/metrics"
)

// CreateQuote prices one request through the supplied calculator.
func CreateQuote(calc pricing.Calculator, qm *metrics.QuoteMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if calc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing engine unavailable"))
			return
		}

		start := time.Now()

		var payload quotedto.QuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			qm.ObserveQuote("validation_error", time.Since(start))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		req, err := payload.ToDomain()
		if err != nil {
			qm.ObserveQuote("validation_error", time.Since(start))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithServiceType(ctx, string(req.ServiceType))
			if req.PromoCode != "" {
				ctx = logg.WithPromoCode(ctx, req.PromoCode)
			}
		}

		result, err := calc.Calculate(ctx, req)
		if err != nil {
			qm.ObserveQuote(outcomeFor(err), time.Since(start))
			responses.WriteError(ctx, logg, w, err)
			return
		}

		qm.ObserveQuote("priced", time.Since(start))
		if result.FloorApplied {
			qm.IncFloorEngaged()
		}

		responses.WriteSuccess(w, quotedto.FromResult(result))
	}
}

func outcomeFor(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return "error"
	}
	switch typed.Code() {
	case pkgerrors.CodeValidation:
		return "validation_error"
	case pkgerrors.CodeConfiguration:
		return "configuration_error"
	default:
		return "error"
	}
}
