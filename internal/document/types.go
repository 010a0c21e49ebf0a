package document

import (
	"strings"

	"github.com/seedkitapp/seedkit-backend/pkg/enums"
)

const (
	// ExtraItemSentinel replaces the submit date on admin-duplicated bonus
	// rows so exports and the dashboard can tell them from real submissions.
	ExtraItemSentinel = "EXTRA"

	// SubmitDateLayout is the calendar-date format recorded at checkout.
	SubmitDateLayout = "2006-01-02"

	// PlaceholderImageURL stands in for products with no uploaded images.
	PlaceholderImageURL = "https://placehold.co/600x800?text=No+Image"

	// DefaultAdminAccessCode seeds fresh documents when no override is configured.
	DefaultAdminAccessCode = "admin2024"

	// DefaultMaxProducts is the per-influencer pick limit for new collections.
	DefaultMaxProducts = 2
)

// AppState is the whole persisted document. Every mutation rewrites it as a
// single JSON value under one key.
type AppState struct {
	Collections        []Collection `json:"collections"`
	ActiveCollectionID string       `json:"activeCollectionId"`
	AdminAccessCode    string       `json:"adminAccessCode"`
}

// Collection is one seeding campaign: a lookbook, a product lineup and the
// shipping entries influencers have submitted against it.
type Collection struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	AccessCode       string          `json:"accessCode"`
	MaxProducts      int             `json:"maxProducts"`
	DescriptionTitle string          `json:"descriptionTitle"`
	DescriptionBody  string          `json:"descriptionBody"`
	LookbookImages   []string        `json:"lookbookImages"`
	Products         []Product       `json:"products"`
	ShippingEntries  []ShippingEntry `json:"shippingEntries"`
}

type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
	Images      []string `json:"images"`
}

// ShippingEntry is one shippable row. Checkout writes one per picked item;
// admins may edit any field or duplicate a row afterwards.
type ShippingEntry struct {
	ID          string               `json:"id"`
	Status      enums.ShippingStatus `json:"status"`
	SubmitDate  string               `json:"submitDate"`
	InstagramID string               `json:"instagramId"`
	Name        string               `json:"name"`
	Phone       string               `json:"phone"`
	Address     string               `json:"address"`
	Message     string               `json:"message"`
	Extra       string               `json:"extra"`
	ProductName string               `json:"productName"`
	Size        string               `json:"size"`
	Quantity    int                  `json:"quantity"`
	AdminMemo   string               `json:"adminMemo"`
}

// CartItem is a picked product inside an influencer session. Carts live in
// session state only and are never persisted to the document.
type CartItem struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Size        string `json:"size"`
	Image       string `json:"image"`
}

// DefaultState builds a fresh document seeded with the given admin access
// code, falling back to the built-in default when the seed is blank.
func DefaultState(adminCode string) *AppState {
	code := strings.TrimSpace(adminCode)
	if code == "" {
		code = DefaultAdminAccessCode
	}
	return &AppState{
		Collections:     []Collection{},
		AdminAccessCode: code,
	}
}

// CollectionByID returns a pointer into the document, valid only while the
// caller holds the document lock.
func (s *AppState) CollectionByID(id string) (*Collection, bool) {
	for i := range s.Collections {
		if s.Collections[i].ID == id {
			return &s.Collections[i], true
		}
	}
	return nil, false
}

func (c *Collection) ProductByID(id string) (*Product, bool) {
	for i := range c.Products {
		if c.Products[i].ID == id {
			return &c.Products[i], true
		}
	}
	return nil, false
}

func (c *Collection) EntryByID(id string) (*ShippingEntry, bool) {
	for i := range c.ShippingEntries {
		if c.ShippingEntries[i].ID == id {
			return &c.ShippingEntries[i], true
		}
	}
	return nil, false
}

// PrimaryImage returns the first product image, or the placeholder when none
// were uploaded.
func (p *Product) PrimaryImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return PlaceholderImageURL
}

// Clone deep-copies the collection so callers can release the document lock
// before reading it.
func (c Collection) Clone() Collection {
	out := c
	out.LookbookImages = append([]string(nil), c.LookbookImages...)
	out.Products = make([]Product, len(c.Products))
	for i := range c.Products {
		out.Products[i] = c.Products[i].Clone()
	}
	out.ShippingEntries = append([]ShippingEntry(nil), c.ShippingEntries...)
	return out
}

func (p Product) Clone() Product {
	out := p
	out.Options = append([]string(nil), p.Options...)
	out.Images = append([]string(nil), p.Images...)
	return out
}
