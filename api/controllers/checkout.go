package controllers

import (
	"net/http"

	"github.com/amara-labs/zawadi-backend/api/middleware"
	"github.com/amara-labs/zawadi-backend/api/responses"
	checkoutsvc "github.com/amara-labs/zawadi-backend/internal/checkout"
	pkgerrors "github.com/amara-labs/zawadi-backend/pkg/errors"
	"github.com/amara-labs/zawadi-backend/pkg/logger"
)

// Checkout submits the session's cart as an order. A cart that fails
// validation comes back as a 422 envelope with the rejection reasons.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing from request context"))
			return
		}

		result, err := svc.Checkout(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := http.StatusOK
		if !result.Accepted {
			status = http.StatusUnprocessableEntity
		}
		responses.WriteSuccessStatus(w, status, result)
	}
}
