package controllers

import (
	"net/http"

	"github.com/mariodelgado/aquatrack-backend/api/responses"
	statssvc "github.com/mariodelgado/aquatrack-backend/internal/stats"
	pkgerrors "github.com/mariodelgado/aquatrack-backend/pkg/errors"
	"github.com/mariodelgado/aquatrack-backend/pkg/logger"
)

// Stats returns the dashboard summary.
func Stats(svc statssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stats service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Summary(r.Context()))
	}
}
