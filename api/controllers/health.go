package controllers

import (
	"net/http"

	"github.com/sayeedajmal/saudimart-core/api/responses"
	"github.com/sayeedajmal/saudimart-core/pkg/config"
	"github.com/sayeedajmal/saudimart-core/pkg/logger"
	"github.com/sayeedajmal/saudimart-core/pkg/redis"
)

const envHeader = "X-SaudiMart-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness of the cache dependency. The backend API is
// deliberately not probed here; its availability surfaces per-request as
// REMOTE_UNAVAILABLE.
func HealthReady(cfg *config.Config, logg *logger.Logger, cache redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		checks := map[string]string{"redis": "ok"}
		healthy := true

		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				checks["redis"] = "unavailable"
				healthy = false
				if logg != nil {
					logg.Warn(r.Context(), "readiness: redis ping failed: "+err.Error())
				}
			}
		} else {
			checks["redis"] = "disabled"
		}

		status := http.StatusOK
		state := "ready"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "degraded"
		}
		responses.WriteSuccessStatus(w, status, map[string]any{
			"status": state,
			"checks": checks,
		})
	}
}
