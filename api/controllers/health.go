package controllers

import (
	"net/http"

	"github.com/speedy-van/speedy-van-sub008/api/responses"
	"github.com/speedy-van/speedy-van-sub008/pkg/config"
	"github.com/speedy-van/speedy-van-sub008/pkg/db"
	pkgerrors "github.com/speedy-van/speedy-van-sub008/pkg/errors"
	"github.com/speedy-van/speedy-van-sub008/pkg/logger"
	"github.com/speedy-van/speedy-van-sub008/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SpeedyVan-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the wired dependencies. Optional dependencies that were
// never configured are skipped rather than reported down.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SpeedyVan-Env", cfg.App.Env)

		ctx := r.Context()
		components := map[string]string{}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				components["database"] = "unavailable"
				healthy = false
				if logg != nil {
					logg.Error(ctx, "readiness database ping failed", err)
				}
			} else {
				components["database"] = "ok"
			}
		}

		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				components["redis"] = "unavailable"
				healthy = false
				if logg != nil {
					logg.Error(ctx, "readiness redis ping failed", err)
				}
			} else {
				components["redis"] = "ok"
			}
		}

		if !healthy {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependency not ready").WithDetails(components)
			responses.WriteError(ctx, nil, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"status":     "ready",
			"components": components,
		})
	}
}
