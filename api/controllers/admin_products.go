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

type updateProductRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	Price       *string   `json:"price,omitempty"`
	Description *string   `json:"description,omitempty"`
	Options     *[]string `json:"options,omitempty"`
}

func (r updateProductRequest) toInput() collections.UpdateProductInput {
	return collections.UpdateProductInput{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		Options:     r.Options,
	}
}

// ProductCreate adds a product from a multipart form: text fields plus any
// number of files under "images".
func ProductCreate(svc collections.Service, media config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
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

		form := r.MultipartForm
		input := collections.CreateProductInput{
			Name:        formValue(form, "name"),
			Price:       formValue(form, "price"),
			Description: formValue(form, "description"),
			Options:     form.Value["options"],
			Images:      images,
		}

		created, err := svc.AddProduct(r.Context(), chi.URLParam(r, "id"), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// ProductUpdate patches product fields.
func ProductUpdate(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateProduct(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "pid"), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// ProductDelete removes a product from the collection.
func ProductDelete(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		if err := svc.RemoveProduct(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "pid")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ProductImagesUpload ingests more images for an existing product.
func ProductImagesUpload(svc collections.Service, media config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
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

		updated, err := svc.AddProductImages(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "pid"), images)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// ProductImageRemove drops one product image by position.
func ProductImageRemove(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "image index must be numeric"))
			return
		}

		updated, removeErr := svc.RemoveProductImage(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "pid"), index)
		if removeErr != nil {
			responses.WriteError(r.Context(), logg, w, removeErr)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}
