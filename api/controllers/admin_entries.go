package controllers

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/seedkitapp/seedkit-backend/api/responses"
	"github.com/seedkitapp/seedkit-backend/api/validators"
	"github.com/seedkitapp/seedkit-backend/internal/collections"
	"github.com/seedkitapp/seedkit-backend/pkg/enums"
	pkgerrors "github.com/seedkitapp/seedkit-backend/pkg/errors"
	"github.com/seedkitapp/seedkit-backend/pkg/logger"
	"github.com/seedkitapp/seedkit-backend/pkg/pagination"
	"github.com/seedkitapp/seedkit-backend/pkg/types"
)

type updateEntryRequest struct {
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=PREPARING SHIPPED"`
	SubmitDate  *string `json:"submitDate,omitempty"`
	InstagramID *string `json:"instagramId,omitempty"`
	Name        *string `json:"name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	Message     *string `json:"message,omitempty"`
	Extra       *string `json:"extra,omitempty"`
	ProductName *string `json:"productName,omitempty"`
	Size        *string `json:"size,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
	AdminMemo   *string `json:"adminMemo,omitempty"`
}

func (r updateEntryRequest) toInput() collections.UpdateEntryInput {
	input := collections.UpdateEntryInput{
		SubmitDate:  r.SubmitDate,
		InstagramID: r.InstagramID,
		Name:        r.Name,
		Phone:       r.Phone,
		Address:     r.Address,
		Message:     r.Message,
		Extra:       r.Extra,
		ProductName: r.ProductName,
		Size:        r.Size,
		Quantity:    r.Quantity,
		AdminMemo:   r.AdminMemo,
	}
	if r.Status != nil {
		status := enums.ShippingStatus(*r.Status)
		input.Status = &status
	}
	return input
}

// EntryList pages through a collection's shipping entries in submission
// order.
func EntryList(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page := pagination.Normalize(pagination.Params{Limit: limit, Offset: offset})
		entries, total, err := svc.ListShippingEntries(r.Context(), chi.URLParam(r, "id"), page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, entries, types.PageMeta{Limit: page.Limit, Offset: page.Offset, Total: total})
	}
}

// EntryUpdate patches one shipping entry, including the admin-only fields.
func EntryUpdate(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		var payload updateEntryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateShippingEntry(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "eid"), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// EntryDuplicate clones an entry as an extra-item row.
func EntryDuplicate(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		created, err := svc.DuplicateShippingEntry(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "eid"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// EntryDelete removes one shipping entry.
func EntryDelete(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		if err := svc.DeleteShippingEntry(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "eid")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// EntryExport streams the courier CSV as a download.
func EntryExport(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		file, err := svc.ExportEntries(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		disposition := mime.FormatMediaType("attachment", map[string]string{"filename": file.Name})
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", disposition)
		w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(file.Content); err != nil && logg != nil {
			logg.Warn(r.Context(), "csv download interrupted")
		}
	}
}
