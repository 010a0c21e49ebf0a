// Package session keeps per-login state for both roles: opaque bearer
// tokens, the influencer browsing state machine, and the ephemeral cart.
// Nothing here is persisted; a restart logs everyone out.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/seedkitapp/seedkit-backend/internal/access"
	"github.com/seedkitapp/seedkit-backend/internal/collections"
	"github.com/seedkitapp/seedkit-backend/internal/document"
	"github.com/seedkitapp/seedkit-backend/pkg/enums"
	pkgerrors "github.com/seedkitapp/seedkit-backend/pkg/errors"
	"github.com/seedkitapp/seedkit-backend/pkg/logger"
	"github.com/seedkitapp/seedkit-backend/pkg/metrics"
)

// Session is one authenticated actor. Cart and View are only meaningful for
// influencers.
type Session struct {
	Token        string              `json:"token"`
	Role         enums.ActorRole     `json:"role"`
	CollectionID string              `json:"collectionId,omitempty"`
	View         enums.SessionView   `json:"view,omitempty"`
	Cart         []document.CartItem `json:"cart,omitempty"`
	ExpiresAt    time.Time           `json:"expiresAt"`
}

type stateViewer interface {
	View(ctx context.Context, fn func(*document.AppState) error) error
}

type catalog interface {
	InfluencerCollection(ctx context.Context, id string) (*collections.InfluencerCollectionDTO, error)
	GetProduct(ctx context.Context, collectionID, productID string) (document.Product, error)
	AppendShippingEntries(ctx context.Context, collectionID string, entries []document.ShippingEntry) error
}

// ManagerParams groups dependencies for the session manager.
type ManagerParams struct {
	Store   stateViewer
	Catalog catalog
	TTL     time.Duration
	Logger  *logger.Logger
	Metrics *metrics.StorageMetrics

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Manager owns every live session behind a single mutex. Session volume is
// a handful of influencers per campaign; contention is not a concern.
type Manager struct {
	store   stateViewer
	catalog catalog
	ttl     time.Duration
	logg    *logger.Logger
	metrics *metrics.StorageMetrics
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager builds the session manager.
func NewManager(params ManagerParams) (*Manager, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("document store is required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if params.TTL <= 0 {
		return nil, fmt.Errorf("session TTL must be positive")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		store:    params.Store,
		catalog:  params.Catalog,
		ttl:      params.TTL,
		logg:     params.Logger,
		metrics:  params.Metrics,
		now:      now,
		sessions: make(map[string]*Session),
	}, nil
}

// Login resolves the access code and issues a fresh opaque token. Influencer
// sessions start in the browsing view with an empty cart.
func (m *Manager) Login(ctx context.Context, code string) (*Session, error) {
	var (
		outcome access.Outcome
		ok      bool
	)
	err := m.store.View(ctx, func(state *document.AppState) error {
		outcome, ok = access.Resolve(code, state)
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading document")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown access code")
	}

	session := &Session{
		Token:        uuid.NewString(),
		Role:         outcome.Role,
		CollectionID: outcome.CollectionID,
		ExpiresAt:    m.now().Add(m.ttl),
	}
	if session.Role == enums.ActorRoleInfluencer {
		session.View = enums.SessionViewBrowsing
		session.Cart = []document.CartItem{}
	}

	m.mu.Lock()
	m.sessions[session.Token] = session
	m.mu.Unlock()

	m.logg.Info(m.logg.WithActorRole(m.logg.WithSessionID(ctx, session.Token), session.Role.String()), "session opened")
	return snapshot(session), nil
}

// Get returns a detached snapshot of the session, expiring it lazily.
func (m *Manager) Get(token string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[token]
	if !ok {
		return nil, false
	}
	if m.now().After(session.ExpiresAt) {
		delete(m.sessions, token)
		return nil, false
	}
	return snapshot(session), true
}

// Logout drops the session. Unknown tokens are a no-op.
func (m *Manager) Logout(ctx context.Context, token string) {
	m.mu.Lock()
	_, existed := m.sessions[token]
	delete(m.sessions, token)
	m.mu.Unlock()

	if existed {
		m.logg.Info(m.logg.WithSessionID(ctx, token), "session closed")
	}
}

// Sweep removes expired sessions and reports how many were dropped.
func (m *Manager) Sweep(ctx context.Context) int {
	now := m.now()

	m.mu.Lock()
	removed := 0
	for token, session := range m.sessions {
		if now.After(session.ExpiresAt) {
			delete(m.sessions, token)
			removed++
		}
	}
	m.mu.Unlock()

	return removed
}

// ActiveCount reports the number of live sessions, expired included until
// the next sweep.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// influencerSession loads a live influencer session for mutation. The
// caller must hold m.mu.
func (m *Manager) influencerSessionLocked(token string) (*Session, error) {
	session, ok := m.sessions[token]
	if !ok || m.now().After(session.ExpiresAt) {
		delete(m.sessions, token)
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired or unknown")
	}
	if session.Role != enums.ActorRoleInfluencer {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "influencer session required")
	}
	return session, nil
}

// snapshot copies the session so callers cannot mutate manager state.
func snapshot(s *Session) *Session {
	out := *s
	out.Cart = append([]document.CartItem{}, s.Cart...)
	return &out
}
