// Package collections implements the admin-facing domain operations over the
// persisted document: campaign lifecycle, catalog management, shipping entry
// bookkeeping and the CSV export. Every command saves the whole document
// through the store before it returns.
package collections

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/seedkitapp/seedkit-backend/internal/document"
	"github.com/seedkitapp/seedkit-backend/internal/quota"
	"github.com/seedkitapp/seedkit-backend/pkg/config"
	pkgerrors "github.com/seedkitapp/seedkit-backend/pkg/errors"
	"github.com/seedkitapp/seedkit-backend/pkg/logger"
	"github.com/seedkitapp/seedkit-backend/pkg/pagination"
	"github.com/seedkitapp/seedkit-backend/pkg/security"
)

const (
	accessCodeLength      = 6
	accessCodeMaxAttempts = 10
)

var defaultCodeGenerator codeGenerator = security.GenerateAccessCode

// Service exposes the document's domain operations.
type Service interface {
	CreateCollection(ctx context.Context, name string) (*document.Collection, error)
	UpdateCollection(ctx context.Context, id string, input UpdateCollectionInput) (*document.Collection, error)
	DeleteCollection(ctx context.Context, id string) error
	SetActiveCollection(ctx context.Context, id string) error
	ListCollections(ctx context.Context) ([]CollectionSummaryDTO, error)
	GetCollection(ctx context.Context, id string) (*document.Collection, error)
	InfluencerCollection(ctx context.Context, id string) (*InfluencerCollectionDTO, error)

	AddLookbookImages(ctx context.Context, id string, images [][]byte) (*document.Collection, error)
	RemoveLookbookImage(ctx context.Context, id string, index int) (*document.Collection, error)

	AddProduct(ctx context.Context, collectionID string, input CreateProductInput) (*document.Product, error)
	UpdateProduct(ctx context.Context, collectionID, productID string, input UpdateProductInput) (*document.Product, error)
	RemoveProduct(ctx context.Context, collectionID, productID string) error
	AddProductImages(ctx context.Context, collectionID, productID string, images [][]byte) (*document.Product, error)
	RemoveProductImage(ctx context.Context, collectionID, productID string, index int) (*document.Product, error)
	GetProduct(ctx context.Context, collectionID, productID string) (document.Product, error)

	AppendShippingEntries(ctx context.Context, collectionID string, entries []document.ShippingEntry) error
	UpdateShippingEntry(ctx context.Context, collectionID, entryID string, input UpdateEntryInput) (*document.ShippingEntry, error)
	DuplicateShippingEntry(ctx context.Context, collectionID, entryID string) (*document.ShippingEntry, error)
	DeleteShippingEntry(ctx context.Context, collectionID, entryID string) error
	ListShippingEntries(ctx context.Context, collectionID string, page pagination.Params) ([]document.ShippingEntry, int, error)
	ExportEntries(ctx context.Context, collectionID string) (*ExportFile, error)

	UpdateAdminAccessCode(ctx context.Context, code string) error
	StorageStatus(ctx context.Context) (*StorageStatusDTO, error)
}

type documentStore interface {
	View(ctx context.Context, fn func(*document.AppState) error) error
	Mutate(ctx context.Context, fn func(*document.AppState) error) error
	SaveStatus() (time.Time, error)
}

type usageEstimator interface {
	Snapshot(ctx context.Context) (quota.Snapshot, error)
}

type codeGenerator func(length int) (string, error)

// ServiceParams groups dependencies for the collections service.
type ServiceParams struct {
	Store     documentStore
	Estimator usageEstimator
	Media     config.MediaConfig
	Logger    *logger.Logger

	// GenerateCode overrides the access-code source, for tests.
	GenerateCode codeGenerator
}

type service struct {
	store        documentStore
	estimator    usageEstimator
	media        config.MediaConfig
	logg         *logger.Logger
	generateCode codeGenerator
}

// NewService builds the collections service.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("document store is required")
	}
	if params.Estimator == nil {
		return nil, fmt.Errorf("usage estimator is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		store:        params.Store,
		estimator:    params.Estimator,
		media:        params.Media,
		logg:         params.Logger,
		generateCode: params.GenerateCode,
	}, nil
}

// UpdateAdminAccessCode rotates the admin login code inside the document.
func (s *service) UpdateAdminAccessCode(ctx context.Context, code string) error {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "admin access code must not be empty")
	}

	err := s.store.Mutate(ctx, func(state *document.AppState) error {
		for i := range state.Collections {
			if equalFoldTrim(state.Collections[i].AccessCode, trimmed) {
				return pkgerrors.New(pkgerrors.CodeConflict, "code already belongs to a collection")
			}
		}
		state.AdminAccessCode = trimmed
		return nil
	})
	if err != nil {
		return err
	}

	s.logg.Info(ctx, "admin access code rotated")
	return nil
}

// StorageStatus combines the usage snapshot with the save-failure banner.
func (s *service) StorageStatus(ctx context.Context) (*StorageStatusDTO, error) {
	snap, err := s.estimator.Snapshot(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "estimating storage usage")
	}

	status := &StorageStatusDTO{Snapshot: snap}
	if at, saveErr := s.store.SaveStatus(); saveErr != nil {
		status.LastSaveError = saveErr.Error()
		status.LastSaveAt = &at
	} else if !at.IsZero() {
		status.LastSaveAt = &at
	}
	return status, nil
}

// guardStorage rejects writes once the estimate crosses the block threshold.
func (s *service) guardStorage(ctx context.Context) error {
	snap, err := s.estimator.Snapshot(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "estimating storage usage")
	}
	if snap.Block {
		return pkgerrors.New(pkgerrors.CodeStorageExhausted, "storage is nearly full, delete collections or images first").
			WithDetails(snap)
	}
	return nil
}

// uniqueAccessCode draws random codes until one is free of collisions with
// the admin code and every collection code.
func (s *service) uniqueAccessCode(state *document.AppState) (string, error) {
	generate := s.generateCode
	if generate == nil {
		generate = defaultCodeGenerator
	}

	for attempt := 0; attempt < accessCodeMaxAttempts; attempt++ {
		code, err := generate(accessCodeLength)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating access code")
		}
		if !codeInUse(state, code, "") {
			return code, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeInternal, "could not find a free access code")
}

// codeInUse reports whether code collides with the admin code or any
// collection other than excludeID.
func codeInUse(state *document.AppState, code, excludeID string) bool {
	if equalFoldTrim(state.AdminAccessCode, code) {
		return true
	}
	for i := range state.Collections {
		if state.Collections[i].ID == excludeID {
			continue
		}
		if equalFoldTrim(state.Collections[i].AccessCode, code) {
			return true
		}
	}
	return false
}

func equalFoldTrim(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
