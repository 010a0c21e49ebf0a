package collections

import (
	"strings"
	"time"

	"github.com/seedkitapp/seedkit-backend/internal/document"
	"github.com/seedkitapp/seedkit-backend/internal/quota"
	"github.com/seedkitapp/seedkit-backend/pkg/enums"
)

// UpdateCollectionInput holds optional mutation values for a collection.
type UpdateCollectionInput struct {
	Name             *string
	AccessCode       *string
	MaxProducts      *int
	DescriptionTitle *string
	DescriptionBody  *string
}

// CreateProductInput holds the payload to add a product. Images carry raw
// upload bytes and are ingested before the document is touched.
type CreateProductInput struct {
	Name        string
	Price       string
	Description string
	Options     []string
	Images      [][]byte
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name        *string
	Price       *string
	Description *string
	Options     *[]string
}

// UpdateEntryInput holds optional mutation values for a shipping entry.
type UpdateEntryInput struct {
	Status      *enums.ShippingStatus
	SubmitDate  *string
	InstagramID *string
	Name        *string
	Phone       *string
	Address     *string
	Message     *string
	Extra       *string
	ProductName *string
	Size        *string
	Quantity    *int
	AdminMemo   *string
}

// CollectionSummaryDTO is the admin dashboard row.
type CollectionSummaryDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	AccessCode   string `json:"accessCode"`
	MaxProducts  int    `json:"maxProducts"`
	ProductCount int    `json:"productCount"`
	EntryCount   int    `json:"entryCount"`
	Active       bool   `json:"active"`
}

// InfluencerCollectionDTO is the storefront view of a collection. It never
// carries the access code or the shipping entries.
type InfluencerCollectionDTO struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	MaxProducts      int                    `json:"maxProducts"`
	DescriptionTitle string                 `json:"descriptionTitle"`
	DescriptionBody  string                 `json:"descriptionBody"`
	LookbookImages   []string               `json:"lookbookImages"`
	Products         []InfluencerProductDTO `json:"products"`
}

// InfluencerProductDTO substitutes the placeholder image at read time so the
// storefront always has something to render.
type InfluencerProductDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
	Images      []string `json:"images"`
}

// ExportFile is a ready-to-download CSV attachment.
type ExportFile struct {
	Name    string
	Content []byte
}

// StorageStatusDTO is the admin storage panel payload: the advisory usage
// snapshot plus the save-failure banner.
type StorageStatusDTO struct {
	quota.Snapshot
	LastSaveAt    *time.Time `json:"lastSaveAt,omitempty"`
	LastSaveError string     `json:"lastSaveError,omitempty"`
}

func newCollectionSummaryDTO(c *document.Collection, active bool) CollectionSummaryDTO {
	return CollectionSummaryDTO{
		ID:           c.ID,
		Name:         c.Name,
		AccessCode:   c.AccessCode,
		MaxProducts:  c.MaxProducts,
		ProductCount: len(c.Products),
		EntryCount:   len(c.ShippingEntries),
		Active:       active,
	}
}

func newInfluencerCollectionDTO(c *document.Collection) *InfluencerCollectionDTO {
	dto := &InfluencerCollectionDTO{
		ID:               c.ID,
		Name:             c.Name,
		MaxProducts:      c.MaxProducts,
		DescriptionTitle: c.DescriptionTitle,
		DescriptionBody:  c.DescriptionBody,
		LookbookImages:   append([]string{}, c.LookbookImages...),
		Products:         make([]InfluencerProductDTO, 0, len(c.Products)),
	}
	for i := range c.Products {
		dto.Products = append(dto.Products, newInfluencerProductDTO(&c.Products[i]))
	}
	return dto
}

func newInfluencerProductDTO(p *document.Product) InfluencerProductDTO {
	images := append([]string{}, p.Images...)
	if len(images) == 0 {
		images = []string{document.PlaceholderImageURL}
	}
	return InfluencerProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Options:     append([]string{}, p.Options...),
		Images:      images,
	}
}

// normalizeOptions trims option labels and drops blanks while preserving
// order.
func normalizeOptions(options []string) []string {
	out := make([]string, 0, len(options))
	for _, option := range options {
		trimmed := strings.TrimSpace(option)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
