package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/seedkitapp/seedkit-backend/api/responses"
	"github.com/seedkitapp/seedkit-backend/api/validators"
	"github.com/seedkitapp/seedkit-backend/internal/collections"
	"github.com/seedkitapp/seedkit-backend/pkg/config"
	pkgerrors "github.com/seedkitapp/seedkit-backend/pkg/errors"
	"github.com/seedkitapp/seedkit-backend/pkg/logger"
)

type createCollectionRequest struct {
	Name string `json:"name" validate:"required"`
}

type updateCollectionRequest struct {
	Name             *string `json:"name,omitempty" validate:"omitempty,min=1"`
	AccessCode       *string `json:"accessCode,omitempty" validate:"omitempty,min=1"`
	MaxProducts      *int    `json:"maxProducts,omitempty"`
	DescriptionTitle *string `json:"descriptionTitle,omitempty"`
	DescriptionBody  *string `json:"descriptionBody,omitempty"`
}

func (r updateCollectionRequest) toInput() collections.UpdateCollectionInput {
	return collections.UpdateCollectionInput{
		Name:             r.Name,
		AccessCode:       r.AccessCode,
		MaxProducts:      r.MaxProducts,
		DescriptionTitle: r.DescriptionTitle,
		DescriptionBody:  r.DescriptionBody,
	}
}

// CollectionList returns every collection with dashboard counts.
func CollectionList(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		list, err := svc.ListCollections(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// CollectionCreate makes a new collection with a generated access code.
func CollectionCreate(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		var payload createCollectionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateCollection(r.Context(), payload.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// CollectionGet returns the full admin view of one collection.
func CollectionGet(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		col, err := svc.GetCollection(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, col)
	}
}

// CollectionUpdate patches collection fields, including the access code.
func CollectionUpdate(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		var payload updateCollectionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateCollection(r.Context(), chi.URLParam(r, "id"), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// CollectionDelete removes a collection along with its products and entries.
func CollectionDelete(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		if err := svc.DeleteCollection(r.Context(), chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// CollectionActivate marks the collection as the storefront default.
func CollectionActivate(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		if err := svc.SetActiveCollection(r.Context(), chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "activated"})
	}
}

// LookbookUpload ingests the uploaded images and appends them to the
// collection's lookbook.
func LookbookUpload(svc collections.Service, media config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		images, err := readMultipartImages(w, r, media.MaxUploadMB)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.AddLookbookImages(r.Context(), chi.URLParam(r, "id"), images)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// LookbookRemove drops one lookbook image by position.
func LookbookRemove(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "lookbook index must be numeric"))
			return
		}

		updated, removeErr := svc.RemoveLookbookImage(r.Context(), chi.URLParam(r, "id"), index)
		if removeErr != nil {
			responses.WriteError(r.Context(), logg, w, removeErr)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}
