package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/speedy-van/speedy-van-sub008/api/routes"
	"github.com/speedy-van/speedy-van-sub008/internal/pricing"
	"github.com/speedy-van/speedy-van-sub008/internal/promos"
	"github.com/speedy-van/speedy-van-sub008/internal/quotecache"
	"github.com/speedy-van/speedy-van-sub008/pkg/config"
	"github.com/speedy-van/speedy-van-sub008/pkg/db"
	"github.com/speedy-van/speedy-van-sub008/pkg/logger"
	"github.com/speedy-van/speedy-van-sub008/pkg/metrics"
	"github.com/speedy-van/speedy-van-sub008/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	var dbClient *db.Client
	var dbP db.Pinger
	if cfg.DB.Enabled() {
		dbClient, err = db.New(context.Background(), cfg.DB, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap database", err)
			os.Exit(1)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		}()
		dbP = dbClient
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	var promoStore promos.Store
	if dbClient != nil {
		repo := promos.NewRepo(dbClient)
		if err := repo.Migrate(context.Background()); err != nil {
			logg.Error(context.Background(), "failed to migrate promo table", err)
			os.Exit(1)
		}
		promoStore = repo
	} else {
		promoStore = promos.NewMemoryStore()
	}
	if err := promos.SeedDefaults(context.Background(), promoStore); err != nil {
		logg.Error(context.Background(), "failed to seed promo codes", err)
		os.Exit(1)
	}
	promoService := promos.NewService(promoStore, logg)

	rates, err := pricing.NewRateSource(pricing.RateTableFromConfig(cfg.Pricing))
	if err != nil {
		logg.Error(context.Background(), "failed to build rate table", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	quoteMetrics := metrics.NewQuoteMetrics(registry)

	engine := pricing.NewEngine(rates, promoService, logg)

	var calc pricing.Calculator = engine
	if redisClient != nil && cfg.Cache.Enabled {
		calc = quotecache.New(engine, redisClient, cfg.Cache.QuoteTTL, logg, quoteMetrics)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbP,
			redisClient,
			calc,
			rates,
			promoService,
			quoteMetrics,
			registry,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
