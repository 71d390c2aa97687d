package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/speedy-van/speedy-van-sub008/api/controllers"
	promocontrollers "github.com/speedy-van/speedy-van-sub008/api/controllers/promos"
	quotecontrollers "github.com/speedy-van/speedy-van-sub008/api/controllers/quote"
	"github.com/speedy-van/speedy-van-sub008/api/middleware"
	"github.com/speedy-van/speedy-van-sub008/internal/pricing"
	"github.com/speedy-van/speedy-van-sub008/internal/promos"
	"github.com/speedy-van/speedy-van-sub008/pkg/config"
	"github.com/speedy-van/speedy-van-sub008/pkg/db"
	"github.com/speedy-van/speedy-van-sub008/pkg/logger"
	"github.com/speedy-van/speedy-van-sub008/pkg/metrics"
	"github.com/speedy-van/speedy-van-sub008/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	calc pricing.Calculator,
	rates *pricing.RateSource,
	promoService *promos.Service,
	qm *metrics.QuoteMetrics,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	quotePolicy := middleware.NewRateLimitPolicy(
		"quote",
		cfg.RateLimit.QuoteWindow,
		cfg.RateLimit.QuoteIPLimit,
	)
	quoteLimiter := func(next http.Handler) http.Handler { return next }
	if redisClient != nil {
		quoteLimiter = middleware.RateLimit(quotePolicy, redisClient, logg)
	}

	var redisP redis.Pinger
	if redisClient != nil {
		redisP = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.With(quoteLimiter).Post("/quote", quotecontrollers.CreateQuote(calc, qm, logg))
		r.Get("/service-types", controllers.ServiceTypes(rates))

		r.Route("/promos", func(r chi.Router) {
			r.Post("/", promocontrollers.CreatePromo(promoService, logg))
			r.Get("/", promocontrollers.ListPromos(promoService, logg))
		})
	})

	return r
}
