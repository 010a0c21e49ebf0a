package document

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/seedkitapp/seedkit-backend/pkg/kv"
	"github.com/seedkitapp/seedkit-backend/pkg/logger"
	"github.com/seedkitapp/seedkit-backend/pkg/metrics"
)

// StoreParams groups dependencies for the document store.
type StoreParams struct {
	Substrate kv.Substrate
	Key       string
	AdminCode string
	Logger    *logger.Logger
	Metrics   *metrics.StorageMetrics
}

// Store owns the in-memory document and mirrors every mutation to the
// substrate as one serialized JSON value. All access goes through View and
// Mutate so readers never observe a half-applied change.
type Store struct {
	substrate kv.Substrate
	key       string
	adminCode string
	logg      *logger.Logger
	metrics   *metrics.StorageMetrics

	mu          sync.RWMutex
	state       *AppState
	lastSaveAt  time.Time
	lastSaveErr error
}

// NewStore builds a document store. Load must be called before the first
// View or Mutate.
func NewStore(params StoreParams) (*Store, error) {
	if params.Substrate == nil {
		return nil, fmt.Errorf("substrate is required")
	}
	if strings.TrimSpace(params.Key) == "" {
		return nil, fmt.Errorf("document key is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Store{
		substrate: params.Substrate,
		key:       params.Key,
		adminCode: params.AdminCode,
		logg:      params.Logger,
		metrics:   params.Metrics,
	}, nil
}

// Load reads the persisted document into memory. A missing key or unreadable
// bytes both yield a fresh default document; only an unreachable substrate is
// reported as an error.
func (s *Store) Load(ctx context.Context) error {
	raw, ok, err := s.substrate.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("loading document %q: %w", s.key, err)
	}

	state := DefaultState(s.adminCode)
	if ok {
		var parsed AppState
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			s.logg.Error(ctx, "stored document is unreadable, starting from defaults", err)
		} else {
			normalize(&parsed, s.adminCode)
			state = &parsed
		}
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	return nil
}

// normalize repairs invariants a hand-edited or partial document may have
// lost. An empty admin access code would lock admins out permanently.
func normalize(state *AppState, adminCode string) {
	if strings.TrimSpace(state.AdminAccessCode) == "" {
		state.AdminAccessCode = DefaultState(adminCode).AdminAccessCode
	}
	if state.Collections == nil {
		state.Collections = []Collection{}
	}
	for i := range state.Collections {
		col := &state.Collections[i]
		if col.MaxProducts < 1 {
			col.MaxProducts = 1
		}
		if col.LookbookImages == nil {
			col.LookbookImages = []string{}
		}
		if col.Products == nil {
			col.Products = []Product{}
		}
		if col.ShippingEntries == nil {
			col.ShippingEntries = []ShippingEntry{}
		}
	}
}

// View runs fn with shared read access. fn must not mutate the document or
// retain pointers into it past the call.
func (s *Store) View(ctx context.Context, fn func(*AppState) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return fmt.Errorf("document not loaded")
	}
	return fn(s.state)
}

// Mutate applies fn under the write lock, then persists the whole document.
// When fn returns an error nothing is saved; fn must leave the document
// unchanged in that case. A save rejected by the substrate does not fail the
// mutation: memory stays ahead of storage and the failure is surfaced
// through SaveStatus until a later save succeeds.
func (s *Store) Mutate(ctx context.Context, fn func(*AppState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return fmt.Errorf("document not loaded")
	}
	if err := fn(s.state); err != nil {
		return err
	}
	s.persistLocked(ctx)
	return nil
}

func (s *Store) persistLocked(ctx context.Context) {
	s.metrics.IncSave()
	s.lastSaveAt = time.Now().UTC()

	raw, err := json.Marshal(s.state)
	if err == nil {
		err = s.substrate.Set(ctx, s.key, string(raw))
	}
	if err != nil {
		s.lastSaveErr = err
		s.metrics.IncSaveFailure()
		s.logg.Error(ctx, "document save failed, keeping in-memory state", err)
		return
	}
	s.lastSaveErr = nil
}

// SaveStatus reports the time of the last save attempt and its error, nil
// when the last attempt succeeded. The dashboard shows this as a banner.
func (s *Store) SaveStatus() (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSaveAt, s.lastSaveErr
}
