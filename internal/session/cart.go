package session

import (
	"context"
	"strings"

	"github.com/seedkitapp/seedkit-backend/internal/document"
	"github.com/seedkitapp/seedkit-backend/pkg/enums"
	pkgerrors "github.com/seedkitapp/seedkit-backend/pkg/errors"
)

// CheckoutInput carries the shipping contact form. Message and extra are
// optional; everything else is required.
type CheckoutInput struct {
	InstagramID string
	Name        string
	Phone       string
	Address     string
	Message     string
	Extra       string
	Consent     bool
}

// AddToCart picks a product at a chosen size. Allowed only from the product
// detail view; on success the session returns to browsing with the item
// appended.
func (m *Manager) AddToCart(ctx context.Context, token, productID, size string) (*Session, error) {
	size = strings.TrimSpace(size)

	// Resolve the product and the cart bound before holding the session
	// lock; catalog reads take the document lock underneath.
	m.mu.Lock()
	session, err := m.influencerSessionLocked(token)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	collectionID := session.CollectionID
	m.mu.Unlock()

	view, err := m.catalog.InfluencerCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	limit := view.MaxProducts

	product, err := m.catalog.GetProduct(ctx, collectionID, productID)
	if err != nil {
		return nil, err
	}
	if len(product.Options) > 0 {
		if size == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "choose a size first")
		}
		if !containsFold(product.Options, size) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "size is not offered for this product").
				WithDetails(map[string]any{"options": product.Options})
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	session, err = m.influencerSessionLocked(token)
	if err != nil {
		return nil, err
	}
	if session.View != enums.SessionViewProductDetail {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "open a product before adding it")
	}
	if len(session.Cart) >= limit {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is full").
			WithDetails(map[string]int{"maxProducts": limit})
	}

	session.Cart = append(session.Cart, document.CartItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		Size:        size,
		Image:       product.PrimaryImage(),
	})
	session.View = enums.SessionViewBrowsing
	return snapshot(session), nil
}

// RemoveFromCart drops the item at the given position.
func (m *Manager) RemoveFromCart(ctx context.Context, token string, index int) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.influencerSessionLocked(token)
	if err != nil {
		return nil, err
	}
	if session.View.Terminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "submission already completed")
	}
	if index < 0 || index >= len(session.Cart) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart index out of range")
	}

	session.Cart = append(session.Cart[:index], session.Cart[index+1:]...)
	return snapshot(session), nil
}

// Checkout materializes the cart into shipping entries: one entry per item,
// submitted today, quantity one, memo empty. The cart survives untouched
// when anything is rejected; success clears it and parks the session in the
// terminal submitted view.
func (m *Manager) Checkout(ctx context.Context, token string, input CheckoutInput) (*Session, error) {
	if err := validateCheckout(input); err != nil {
		return nil, err
	}

	m.mu.Lock()
	session, err := m.influencerSessionLocked(token)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	if session.View != enums.SessionViewCart {
		m.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "open the cart before submitting")
	}
	if len(session.Cart) == 0 {
		m.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	collectionID := session.CollectionID
	cart := append([]document.CartItem{}, session.Cart...)
	m.mu.Unlock()

	submitDate := m.now().Format(document.SubmitDateLayout)
	entries := make([]document.ShippingEntry, 0, len(cart))
	for _, item := range cart {
		entries = append(entries, document.ShippingEntry{
			Status:      enums.ShippingStatusPreparing,
			SubmitDate:  submitDate,
			InstagramID: strings.TrimSpace(input.InstagramID),
			Name:        strings.TrimSpace(input.Name),
			Phone:       strings.TrimSpace(input.Phone),
			Address:     strings.TrimSpace(input.Address),
			Message:     input.Message,
			Extra:       input.Extra,
			ProductName: item.ProductName,
			Size:        item.Size,
			Quantity:    1,
			AdminMemo:   "",
		})
	}

	if err := m.catalog.AppendShippingEntries(ctx, collectionID, entries); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	session, err = m.influencerSessionLocked(token)
	if err != nil {
		return nil, err
	}
	session.Cart = []document.CartItem{}
	session.View = enums.SessionViewSubmitted

	m.metrics.IncSubmission()
	m.logg.Info(m.logg.WithCollectionID(m.logg.WithSessionID(ctx, token), collectionID), "checkout submitted")
	return snapshot(session), nil
}

func validateCheckout(input CheckoutInput) error {
	missing := []string{}
	if strings.TrimSpace(input.InstagramID) == "" {
		missing = append(missing, "instagramId")
	}
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(input.Address) == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "required contact fields are missing").
			WithDetails(map[string][]string{"fields": missing})
	}
	if !input.Consent {
		return pkgerrors.New(pkgerrors.CodeValidation, "consent is required")
	}
	return nil
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(strings.TrimSpace(value), target) {
			return true
		}
	}
	return false
}
