package session

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/seedkitapp/seedkit-backend/internal/collections"
	"github.com/seedkitapp/seedkit-backend/internal/document"
	"github.com/seedkitapp/seedkit-backend/pkg/enums"
	pkgerrors "github.com/seedkitapp/seedkit-backend/pkg/errors"
	"github.com/seedkitapp/seedkit-backend/pkg/logger"
)

type stubStore struct {
	state document.AppState
}

func (s *stubStore) View(ctx context.Context, fn func(*document.AppState) error) error {
	return fn(&s.state)
}

type stubCatalog struct {
	view       *collections.InfluencerCollectionDTO
	product    document.Product
	productErr error
	appended   []document.ShippingEntry
	appendErr  error
}

func (c *stubCatalog) InfluencerCollection(ctx context.Context, id string) (*collections.InfluencerCollectionDTO, error) {
	return c.view, nil
}

func (c *stubCatalog) GetProduct(ctx context.Context, collectionID, productID string) (document.Product, error) {
	if c.productErr != nil {
		return document.Product{}, c.productErr
	}
	return c.product, nil
}

func (c *stubCatalog) AppendShippingEntries(ctx context.Context, collectionID string, entries []document.ShippingEntry) error {
	if c.appendErr != nil {
		return c.appendErr
	}
	c.appended = append(c.appended, entries...)
	return nil
}

type managerFixture struct {
	mgr     *Manager
	catalog *stubCatalog
	now     time.Time
}

func newManagerFixture(t *testing.T) *managerFixture {
	t.Helper()

	f := &managerFixture{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	f.catalog = &stubCatalog{
		view: &collections.InfluencerCollectionDTO{ID: "c1", Name: "Drop", MaxProducts: 2},
		product: document.Product{
			ID:      "p1",
			Name:    "Tee",
			Options: []string{"S", "M"},
		},
	}

	store := &stubStore{state: document.AppState{
		AdminAccessCode: "admin2024",
		Collections:     []document.Collection{{ID: "c1", Name: "Drop", AccessCode: "SPRING", MaxProducts: 2}},
	}}

	mgr, err := NewManager(ManagerParams{
		Store:   store,
		Catalog: f.catalog,
		TTL:     time.Hour,
		Logger:  logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard}),
		Now:     func() time.Time { return f.now },
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	f.mgr = mgr
	return f
}

func (f *managerFixture) loginInfluencer(t *testing.T) string {
	t.Helper()
	session, err := f.mgr.Login(context.Background(), "spring")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	return session.Token
}

func wantCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != code {
		t.Fatalf("error = %v, want code %s", err, code)
	}
}

func TestNewManagerRequiresDependencies(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
	store := &stubStore{}
	catalog := &stubCatalog{}

	if _, err := NewManager(ManagerParams{Catalog: catalog, TTL: time.Hour, Logger: logg}); err == nil {
		t.Fatal("expected error without store")
	}
	if _, err := NewManager(ManagerParams{Store: store, TTL: time.Hour, Logger: logg}); err == nil {
		t.Fatal("expected error without catalog")
	}
	if _, err := NewManager(ManagerParams{Store: store, Catalog: catalog, Logger: logg}); err == nil {
		t.Fatal("expected error without TTL")
	}
	if _, err := NewManager(ManagerParams{Store: store, Catalog: catalog, TTL: time.Hour}); err == nil {
		t.Fatal("expected error without logger")
	}
}

func TestLoginRoles(t *testing.T) {
	f := newManagerFixture(t)

	admin, err := f.mgr.Login(context.Background(), " ADMIN2024 ")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if admin.Role != enums.ActorRoleAdmin || admin.CollectionID != "" {
		t.Fatalf("admin session = %+v", admin)
	}
	if admin.Token == "" {
		t.Fatal("admin session has no token")
	}

	influencer, err := f.mgr.Login(context.Background(), "spring")
	if err != nil {
		t.Fatalf("influencer login: %v", err)
	}
	if influencer.Role != enums.ActorRoleInfluencer || influencer.CollectionID != "c1" {
		t.Fatalf("influencer session = %+v", influencer)
	}
	if influencer.View != enums.SessionViewBrowsing || len(influencer.Cart) != 0 {
		t.Fatalf("influencer session not reset: %+v", influencer)
	}
	if influencer.Token == admin.Token {
		t.Fatal("tokens must be unique per login")
	}

	_, err = f.mgr.Login(context.Background(), "wrong")
	wantCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestGetExpiresLazily(t *testing.T) {
	f := newManagerFixture(t)
	token := f.loginInfluencer(t)

	if _, ok := f.mgr.Get(token); !ok {
		t.Fatal("fresh session not found")
	}

	f.now = f.now.Add(2 * time.Hour)
	if _, ok := f.mgr.Get(token); ok {
		t.Fatal("expired session still served")
	}
	if f.mgr.ActiveCount() != 0 {
		t.Fatal("expired session not dropped on access")
	}
}

func TestLogoutDropsSession(t *testing.T) {
	f := newManagerFixture(t)
	token := f.loginInfluencer(t)

	f.mgr.Logout(context.Background(), token)
	if _, ok := f.mgr.Get(token); ok {
		t.Fatal("session survives logout")
	}

	// Unknown tokens are a quiet no-op.
	f.mgr.Logout(context.Background(), "missing")
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	f := newManagerFixture(t)
	stale := f.loginInfluencer(t)

	f.now = f.now.Add(30 * time.Minute)
	fresh := f.loginInfluencer(t)

	f.now = f.now.Add(45 * time.Minute)
	if removed := f.mgr.Sweep(context.Background()); removed != 1 {
		t.Fatalf("Sweep removed %d, want 1", removed)
	}
	if _, ok := f.mgr.Get(stale); ok {
		t.Fatal("stale session survived sweep")
	}
	if _, ok := f.mgr.Get(fresh); !ok {
		t.Fatal("fresh session swept")
	}
}

func TestGetReturnsDetachedSnapshot(t *testing.T) {
	f := newManagerFixture(t)
	token := f.loginInfluencer(t)

	first, ok := f.mgr.Get(token)
	if !ok {
		t.Fatal("session not found")
	}
	first.Cart = append(first.Cart, document.CartItem{ProductID: "intruder"})
	first.View = enums.SessionViewSubmitted

	second, ok := f.mgr.Get(token)
	if !ok {
		t.Fatal("session not found")
	}
	if len(second.Cart) != 0 || second.View != enums.SessionViewBrowsing {
		t.Fatal("snapshot mutation leaked into manager state")
	}
}

func TestSetViewTransitions(t *testing.T) {
	f := newManagerFixture(t)
	token := f.loginInfluencer(t)

	session, err := f.mgr.SetView(context.Background(), token, enums.SessionViewProductDetail)
	if err != nil {
		t.Fatalf("browsing -> product_detail: %v", err)
	}
	if session.View != enums.SessionViewProductDetail {
		t.Fatalf("view = %v", session.View)
	}

	_, err = f.mgr.SetView(context.Background(), token, enums.SessionViewCart)
	wantCode(t, err, pkgerrors.CodeStateConflict)

	if _, err := f.mgr.SetView(context.Background(), token, enums.SessionViewBrowsing); err != nil {
		t.Fatalf("product_detail -> browsing: %v", err)
	}
	if _, err := f.mgr.SetView(context.Background(), token, enums.SessionViewCart); err != nil {
		t.Fatalf("browsing -> cart: %v", err)
	}

	_, err = f.mgr.SetView(context.Background(), token, enums.SessionViewSubmitted)
	wantCode(t, err, pkgerrors.CodeValidation)

	_, err = f.mgr.SetView(context.Background(), token, enums.SessionView("elsewhere"))
	wantCode(t, err, pkgerrors.CodeValidation)
}

func TestSetViewRejectsAdminSessions(t *testing.T) {
	f := newManagerFixture(t)
	admin, err := f.mgr.Login(context.Background(), "admin2024")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	_, err = f.mgr.SetView(context.Background(), admin.Token, enums.SessionViewCart)
	wantCode(t, err, pkgerrors.CodeForbidden)
}

func TestSetViewUnknownToken(t *testing.T) {
	f := newManagerFixture(t)
	_, err := f.mgr.SetView(context.Background(), "missing", enums.SessionViewCart)
	wantCode(t, err, pkgerrors.CodeUnauthorized)
}
