package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/jeansstore/backend/api/responses"
	"github.com/jeansstore/backend/pkg/config"
	pkgerrors "github.com/jeansstore/backend/pkg/errors"
	"github.com/jeansstore/backend/pkg/logger"
)

// Pinger is the health-check surface shared by the db and redis clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-JeansStore-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies every backing dependency before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, pingers ...Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-JeansStore-Env", cfg.App.Env)

		var err error
		for _, pinger := range pingers {
			if pinger == nil {
				continue
			}
			err = multierr.Append(err, pinger.Ping(r.Context()))
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "readiness check"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
