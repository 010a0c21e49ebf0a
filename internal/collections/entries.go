package collections

import (
	"context"

	"github.com/google/uuid"
	"github.com/seedkitapp/seedkit-backend/internal/document"
	"github.com/seedkitapp/seedkit-backend/internal/export"
	"github.com/seedkitapp/seedkit-backend/pkg/enums"
	pkgerrors "github.com/seedkitapp/seedkit-backend/pkg/errors"
	"github.com/seedkitapp/seedkit-backend/pkg/pagination"
)

// AppendShippingEntries concatenates entries onto the collection, preserving
// input order. Entries arrive from influencer submission or from admin
// duplication; missing ids, statuses and quantities are stamped here so both
// paths produce well-formed rows.
func (s *service) AppendShippingEntries(ctx context.Context, collectionID string, entries []document.ShippingEntry) error {
	if len(entries) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no entries to append")
	}
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = uuid.NewString()
		}
		if entries[i].Status == "" {
			entries[i].Status = enums.ShippingStatusPreparing
		}
		if !entries[i].Status.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown shipping status")
		}
		if entries[i].Quantity < 1 {
			entries[i].Quantity = 1
		}
	}

	err := s.store.Mutate(ctx, func(state *document.AppState) error {
		col, ok := state.CollectionByID(collectionID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}
		col.ShippingEntries = append(col.ShippingEntries, entries...)
		return nil
	})
	if err != nil {
		return err
	}

	s.logg.Info(s.logg.WithCollectionID(ctx, collectionID), "shipping entries appended")
	return nil
}

// UpdateShippingEntry merges the provided fields into the entry.
func (s *service) UpdateShippingEntry(ctx context.Context, collectionID, entryID string, input UpdateEntryInput) (*document.ShippingEntry, error) {
	var updated document.ShippingEntry
	err := s.store.Mutate(ctx, func(state *document.AppState) error {
		col, ok := state.CollectionByID(collectionID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}
		entry, ok := col.EntryByID(entryID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "shipping entry not found")
		}

		if input.Status != nil {
			if !input.Status.IsValid() {
				return pkgerrors.New(pkgerrors.CodeValidation, "unknown shipping status")
			}
			entry.Status = *input.Status
		}
		if input.SubmitDate != nil {
			entry.SubmitDate = *input.SubmitDate
		}
		if input.InstagramID != nil {
			entry.InstagramID = *input.InstagramID
		}
		if input.Name != nil {
			entry.Name = *input.Name
		}
		if input.Phone != nil {
			entry.Phone = *input.Phone
		}
		if input.Address != nil {
			entry.Address = *input.Address
		}
		if input.Message != nil {
			entry.Message = *input.Message
		}
		if input.Extra != nil {
			entry.Extra = *input.Extra
		}
		if input.ProductName != nil {
			entry.ProductName = *input.ProductName
		}
		if input.Size != nil {
			entry.Size = *input.Size
		}
		if input.Quantity != nil {
			if *input.Quantity < 1 {
				return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
			}
			entry.Quantity = *input.Quantity
		}
		if input.AdminMemo != nil {
			entry.AdminMemo = *input.AdminMemo
		}

		updated = *entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DuplicateShippingEntry copies the source row as a bonus shipment: fresh
// id, sentinel submit date, and a cleared product assignment so the admin
// must pick one by hand.
func (s *service) DuplicateShippingEntry(ctx context.Context, collectionID, entryID string) (*document.ShippingEntry, error) {
	var created document.ShippingEntry
	err := s.store.Mutate(ctx, func(state *document.AppState) error {
		col, ok := state.CollectionByID(collectionID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}
		source, ok := col.EntryByID(entryID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "shipping entry not found")
		}

		duplicate := *source
		duplicate.ID = uuid.NewString()
		duplicate.SubmitDate = document.ExtraItemSentinel
		duplicate.ProductName = ""
		duplicate.Size = ""

		col.ShippingEntries = append(col.ShippingEntries, duplicate)
		created = duplicate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteShippingEntry removes the entry. No undo.
func (s *service) DeleteShippingEntry(ctx context.Context, collectionID, entryID string) error {
	return s.store.Mutate(ctx, func(state *document.AppState) error {
		col, ok := state.CollectionByID(collectionID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}
		for i := range col.ShippingEntries {
			if col.ShippingEntries[i].ID == entryID {
				col.ShippingEntries = append(col.ShippingEntries[:i], col.ShippingEntries[i+1:]...)
				return nil
			}
		}
		return pkgerrors.New(pkgerrors.CodeNotFound, "shipping entry not found")
	})
}

// ListShippingEntries returns one page of entries in submission order along
// with the total count.
func (s *service) ListShippingEntries(ctx context.Context, collectionID string, page pagination.Params) ([]document.ShippingEntry, int, error) {
	page = pagination.Normalize(page)

	var (
		out   []document.ShippingEntry
		total int
	)
	err := s.store.View(ctx, func(state *document.AppState) error {
		col, ok := state.CollectionByID(collectionID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}
		total = len(col.ShippingEntries)
		start, end := pagination.Window(page, total)
		out = append([]document.ShippingEntry{}, col.ShippingEntries[start:end]...)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ExportEntries renders the collection's entries as the courier CSV
// attachment.
func (s *service) ExportEntries(ctx context.Context, collectionID string) (*ExportFile, error) {
	var file ExportFile
	err := s.store.View(ctx, func(state *document.AppState) error {
		col, ok := state.CollectionByID(collectionID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}
		file = ExportFile{
			Name:    export.Filename(col.Name),
			Content: export.Build(col.ShippingEntries),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &file, nil
}
