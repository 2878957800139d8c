package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/spequip/backend/api/responses"
	"github.com/spequip/backend/pkg/config"
	pkgerrors "github.com/spequip/backend/pkg/errors"
	"github.com/spequip/backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive reports process liveness.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SpEquip-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness by probing the backing stores.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SpEquip-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{}
		probes := []struct {
			name string
			dep  pinger
		}{
			{"postgres", dbP},
			{"redis", redisP},
		}
		for _, probe := range probes {
			if probe.dep == nil {
				continue
			}
			if err := probe.dep.Ping(ctx); err != nil {
				checks[probe.name] = "unreachable"
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, probe.name+" unavailable").WithDetails(checks))
				return
			}
			checks[probe.name] = "ok"
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
