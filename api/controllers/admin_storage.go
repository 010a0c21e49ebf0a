package controllers

import (
	"net/http"

	"github.com/seedkitapp/seedkit-backend/api/responses"
	"github.com/seedkitapp/seedkit-backend/internal/collections"
	pkgerrors "github.com/seedkitapp/seedkit-backend/pkg/errors"
	"github.com/seedkitapp/seedkit-backend/pkg/logger"
)

// StorageStatus returns the usage snapshot plus the save-failure banner the
// dashboard surfaces.
func StorageStatus(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		status, err := svc.StorageStatus(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, status)
	}
}
