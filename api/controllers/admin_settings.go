package controllers

import (
	"net/http"

	"github.com/seedkitapp/seedkit-backend/api/responses"
	"github.com/seedkitapp/seedkit-backend/api/validators"
	"github.com/seedkitapp/seedkit-backend/internal/collections"
	pkgerrors "github.com/seedkitapp/seedkit-backend/pkg/errors"
	"github.com/seedkitapp/seedkit-backend/pkg/logger"
)

type updateAdminCodeRequest struct {
	AccessCode string `json:"accessCode" validate:"required"`
}

// AdminCodeUpdate rotates the admin access code. Live admin sessions stay
// valid; only future logins use the new code.
func AdminCodeUpdate(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		var payload updateAdminCodeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UpdateAdminAccessCode(r.Context(), payload.AccessCode); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}
