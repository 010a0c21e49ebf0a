package collections

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/seedkitapp/seedkit-backend/internal/document"
	"github.com/seedkitapp/seedkit-backend/internal/imaging"
	pkgerrors "github.com/seedkitapp/seedkit-backend/pkg/errors"
)

// AddProduct ingests any uploaded images and appends the product to the
// collection lineup.
func (s *service) AddProduct(ctx context.Context, collectionID string, input CreateProductInput) (*document.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name must not be empty")
	}

	uris := []string{}
	if len(input.Images) > 0 {
		ingested, err := imaging.IngestAll(ctx, input.Images, s.ingestOptions())
		if err != nil {
			return nil, err
		}
		uris = ingested
	}

	var created document.Product
	err := s.store.Mutate(ctx, func(state *document.AppState) error {
		col, ok := state.CollectionByID(collectionID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}
		product := document.Product{
			ID:          uuid.NewString(),
			Name:        name,
			Price:       strings.TrimSpace(input.Price),
			Description: input.Description,
			Options:     normalizeOptions(input.Options),
			Images:      uris,
		}
		col.Products = append(col.Products, product)
		created = product.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithCollectionID(ctx, collectionID), "product added")
	return &created, nil
}

// UpdateProduct merges the provided fields into the product.
func (s *service) UpdateProduct(ctx context.Context, collectionID, productID string, input UpdateProductInput) (*document.Product, error) {
	var updated document.Product
	err := s.store.Mutate(ctx, func(state *document.AppState) error {
		col, ok := state.CollectionByID(collectionID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}
		product, ok := col.ProductByID(productID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return pkgerrors.New(pkgerrors.CodeValidation, "product name must not be empty")
			}
			product.Name = name
		}
		if input.Price != nil {
			product.Price = strings.TrimSpace(*input.Price)
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Options != nil {
			product.Options = normalizeOptions(*input.Options)
		}

		updated = product.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveProduct deletes the product from the lineup. Confirmation is a
// caller precondition, not enforced here.
func (s *service) RemoveProduct(ctx context.Context, collectionID, productID string) error {
	return s.store.Mutate(ctx, func(state *document.AppState) error {
		col, ok := state.CollectionByID(collectionID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}
		for i := range col.Products {
			if col.Products[i].ID == productID {
				col.Products = append(col.Products[:i], col.Products[i+1:]...)
				return nil
			}
		}
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	})
}

// AddProductImages ingests the uploads and appends them to the product in
// input order.
func (s *service) AddProductImages(ctx context.Context, collectionID, productID string, images [][]byte) (*document.Product, error) {
	if len(images) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one image is required")
	}

	uris, err := imaging.IngestAll(ctx, images, s.ingestOptions())
	if err != nil {
		return nil, err
	}

	var updated document.Product
	err = s.store.Mutate(ctx, func(state *document.AppState) error {
		col, ok := state.CollectionByID(collectionID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}
		product, ok := col.ProductByID(productID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		product.Images = append(product.Images, uris...)
		updated = product.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveProductImage deletes the product image at the given position.
func (s *service) RemoveProductImage(ctx context.Context, collectionID, productID string, index int) (*document.Product, error) {
	var updated document.Product
	err := s.store.Mutate(ctx, func(state *document.AppState) error {
		col, ok := state.CollectionByID(collectionID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}
		product, ok := col.ProductByID(productID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		if index < 0 || index >= len(product.Images) {
			return pkgerrors.New(pkgerrors.CodeValidation, "image index out of range")
		}
		product.Images = append(product.Images[:index], product.Images[index+1:]...)
		updated = product.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetProduct returns a detached copy of the product.
func (s *service) GetProduct(ctx context.Context, collectionID, productID string) (document.Product, error) {
	var out document.Product
	err := s.store.View(ctx, func(state *document.AppState) error {
		col, ok := state.CollectionByID(collectionID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}
		product, ok := col.ProductByID(productID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		out = product.Clone()
		return nil
	})
	if err != nil {
		return document.Product{}, err
	}
	return out, nil
}
