package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/seedkitapp/seedkit-backend/api/middleware"
	"github.com/seedkitapp/seedkit-backend/api/responses"
	"github.com/seedkitapp/seedkit-backend/api/validators"
	"github.com/seedkitapp/seedkit-backend/internal/collections"
	"github.com/seedkitapp/seedkit-backend/internal/session"
	"github.com/seedkitapp/seedkit-backend/pkg/enums"
	pkgerrors "github.com/seedkitapp/seedkit-backend/pkg/errors"
	"github.com/seedkitapp/seedkit-backend/pkg/logger"
)

// influencerSession is the slice of the session manager the storefront
// endpoints drive.
type influencerSession interface {
	Get(token string) (*session.Session, bool)
	SetView(ctx context.Context, token string, target enums.SessionView) (*session.Session, error)
	AddToCart(ctx context.Context, token, productID, size string) (*session.Session, error)
	RemoveFromCart(ctx context.Context, token string, index int) (*session.Session, error)
	Checkout(ctx context.Context, token string, input session.CheckoutInput) (*session.Session, error)
}

type setViewRequest struct {
	View string `json:"view" validate:"required"`
}

type addCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size"`
}

type checkoutRequest struct {
	InstagramID string `json:"instagramId"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Message     string `json:"message"`
	Extra       string `json:"extra"`
	Consent     bool   `json:"consent"`
}

func (r checkoutRequest) toInput() session.CheckoutInput {
	return session.CheckoutInput{
		InstagramID: r.InstagramID,
		Name:        r.Name,
		Phone:       r.Phone,
		Address:     r.Address,
		Message:     r.Message,
		Extra:       r.Extra,
		Consent:     r.Consent,
	}
}

// MyCollection returns the influencer storefront view of the collection the
// session's access code unlocked.
func MyCollection(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		collectionID := middleware.CollectionIDFromContext(r.Context())
		if collectionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "influencer session required"))
			return
		}

		view, err := svc.InfluencerCollection(r.Context(), collectionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// MyProduct returns one product from the session's collection.
func MyProduct(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		collectionID := middleware.CollectionIDFromContext(r.Context())
		if collectionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "influencer session required"))
			return
		}

		product, err := svc.GetProduct(r.Context(), collectionID, chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// SessionViewUpdate drives the browsing state machine.
func SessionViewUpdate(sessions influencerSession, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		var payload setViewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token := middleware.SessionTokenFromContext(r.Context())
		updated, err := sessions.SetView(r.Context(), token, enums.SessionView(payload.View))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// MyCart returns the session snapshot including the live cart.
func MyCart(sessions influencerSession, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		token := middleware.SessionTokenFromContext(r.Context())
		active, ok := sessions.Get(token)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired or unknown"))
			return
		}

		responses.WriteSuccess(w, active)
	}
}

// CartItemAdd performs the guarded add-to-cart.
func CartItemAdd(sessions influencerSession, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token := middleware.SessionTokenFromContext(r.Context())
		updated, err := sessions.AddToCart(r.Context(), token, payload.ProductID, payload.Size)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// CartItemRemove drops one cart line by position.
func CartItemRemove(sessions influencerSession, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart index must be numeric"))
			return
		}

		token := middleware.SessionTokenFromContext(r.Context())
		updated, removeErr := sessions.RemoveFromCart(r.Context(), token, index)
		if removeErr != nil {
			responses.WriteError(r.Context(), logg, w, removeErr)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// CheckoutSubmit turns the cart into shipping entries and locks the session.
func CheckoutSubmit(sessions influencerSession, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token := middleware.SessionTokenFromContext(r.Context())
		updated, err := sessions.Checkout(r.Context(), token, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, updated)
	}
}
