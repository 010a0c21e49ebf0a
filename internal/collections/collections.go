package collections

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/seedkitapp/seedkit-backend/internal/document"
	"github.com/seedkitapp/seedkit-backend/internal/imaging"
	pkgerrors "github.com/seedkitapp/seedkit-backend/pkg/errors"
)

// CreateCollection appends a new campaign with a generated id and access
// code. Blocked outright when the storage estimate is at the block
// threshold: a new campaign only makes the pressure worse.
func (s *service) CreateCollection(ctx context.Context, name string) (*document.Collection, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "collection name must not be empty")
	}
	if err := s.guardStorage(ctx); err != nil {
		return nil, err
	}

	var created document.Collection
	err := s.store.Mutate(ctx, func(state *document.AppState) error {
		code, err := s.uniqueAccessCode(state)
		if err != nil {
			return err
		}
		col := document.Collection{
			ID:              uuid.NewString(),
			Name:            trimmed,
			AccessCode:      code,
			MaxProducts:     document.DefaultMaxProducts,
			LookbookImages:  []string{},
			Products:        []document.Product{},
			ShippingEntries: []document.ShippingEntry{},
		}
		state.Collections = append(state.Collections, col)
		created = col.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithCollectionID(ctx, created.ID), "collection created")
	return &created, nil
}

// UpdateCollection merges the provided fields into the collection.
func (s *service) UpdateCollection(ctx context.Context, id string, input UpdateCollectionInput) (*document.Collection, error) {
	var updated document.Collection
	err := s.store.Mutate(ctx, func(state *document.AppState) error {
		col, ok := state.CollectionByID(id)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return pkgerrors.New(pkgerrors.CodeValidation, "collection name must not be empty")
			}
			col.Name = name
		}
		if input.AccessCode != nil {
			code := strings.TrimSpace(*input.AccessCode)
			if code == "" {
				return pkgerrors.New(pkgerrors.CodeValidation, "access code must not be empty")
			}
			if codeInUse(state, code, col.ID) {
				return pkgerrors.New(pkgerrors.CodeConflict, "access code is already in use")
			}
			col.AccessCode = code
		}
		if input.MaxProducts != nil {
			limit := *input.MaxProducts
			if limit < 1 {
				limit = 1
			}
			col.MaxProducts = limit
		}
		if input.DescriptionTitle != nil {
			col.DescriptionTitle = *input.DescriptionTitle
		}
		if input.DescriptionBody != nil {
			col.DescriptionBody = *input.DescriptionBody
		}

		updated = col.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCollection removes the campaign and everything nested under it.
// There is no undo; confirmation is the caller's concern.
func (s *service) DeleteCollection(ctx context.Context, id string) error {
	err := s.store.Mutate(ctx, func(state *document.AppState) error {
		idx := -1
		for i := range state.Collections {
			if state.Collections[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}

		state.Collections = append(state.Collections[:idx], state.Collections[idx+1:]...)
		if state.ActiveCollectionID == id {
			state.ActiveCollectionID = ""
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logg.Info(s.logg.WithCollectionID(ctx, id), "collection deleted")
	return nil
}

// SetActiveCollection moves the transient dashboard pointer.
func (s *service) SetActiveCollection(ctx context.Context, id string) error {
	return s.store.Mutate(ctx, func(state *document.AppState) error {
		if _, ok := state.CollectionByID(id); !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}
		state.ActiveCollectionID = id
		return nil
	})
}

// ListCollections returns dashboard summaries in creation order.
func (s *service) ListCollections(ctx context.Context) ([]CollectionSummaryDTO, error) {
	var out []CollectionSummaryDTO
	err := s.store.View(ctx, func(state *document.AppState) error {
		out = make([]CollectionSummaryDTO, 0, len(state.Collections))
		for i := range state.Collections {
			col := &state.Collections[i]
			out = append(out, newCollectionSummaryDTO(col, state.ActiveCollectionID == col.ID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetCollection returns the full admin view of a collection.
func (s *service) GetCollection(ctx context.Context, id string) (*document.Collection, error) {
	var out document.Collection
	err := s.store.View(ctx, func(state *document.AppState) error {
		col, ok := state.CollectionByID(id)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}
		out = col.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// InfluencerCollection returns the storefront view: no access code, no
// shipping entries, placeholder images substituted.
func (s *service) InfluencerCollection(ctx context.Context, id string) (*InfluencerCollectionDTO, error) {
	var out *InfluencerCollectionDTO
	err := s.store.View(ctx, func(state *document.AppState) error {
		col, ok := state.CollectionByID(id)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}
		out = newInfluencerCollectionDTO(col)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddLookbookImages ingests the uploads and appends them in input order.
func (s *service) AddLookbookImages(ctx context.Context, id string, images [][]byte) (*document.Collection, error) {
	if len(images) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one image is required")
	}

	uris, err := imaging.IngestAll(ctx, images, s.ingestOptions())
	if err != nil {
		return nil, err
	}

	var updated document.Collection
	err = s.store.Mutate(ctx, func(state *document.AppState) error {
		col, ok := state.CollectionByID(id)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}
		col.LookbookImages = append(col.LookbookImages, uris...)
		updated = col.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveLookbookImage deletes the image at the given position.
func (s *service) RemoveLookbookImage(ctx context.Context, id string, index int) (*document.Collection, error) {
	var updated document.Collection
	err := s.store.Mutate(ctx, func(state *document.AppState) error {
		col, ok := state.CollectionByID(id)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}
		if index < 0 || index >= len(col.LookbookImages) {
			return pkgerrors.New(pkgerrors.CodeValidation, "image index out of range")
		}
		col.LookbookImages = append(col.LookbookImages[:index], col.LookbookImages[index+1:]...)
		updated = col.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *service) ingestOptions() imaging.Options {
	return imaging.Options{
		MaxWidth: s.media.ImageMaxWidth,
		Quality:  s.media.ImageQuality,
	}
}
