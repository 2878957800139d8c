package controllers

import (
	"net/http"

	"github.com/spequip/backend/api/responses"
	"github.com/spequip/backend/internal/admin"
	pkgerrors "github.com/spequip/backend/pkg/errors"
	"github.com/spequip/backend/pkg/logger"
)

// AdminDashboard serves the storefront counters and recent orders.
func AdminDashboard(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		result, err := svc.Dashboard(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
