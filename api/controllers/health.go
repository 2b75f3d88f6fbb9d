package controllers

import (
	"context"
	"net/http"

	"github.com/amara-labs/zawadi-backend/api/responses"
	"github.com/amara-labs/zawadi-backend/pkg/config"
	pkgerrors "github.com/amara-labs/zawadi-backend/pkg/errors"
	"github.com/amara-labs/zawadi-backend/pkg/logger"
)

// Pinger exposes the health check surface of a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Zawadi-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness. The snapshot store pinger is nil for the
// memory and file backends, which are always ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, snapshotStore Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Zawadi-Env", cfg.App.Env)

		if snapshotStore != nil {
			if err := snapshotStore.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "snapshot store unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
