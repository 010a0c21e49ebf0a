package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/seedkitapp/seedkit-backend/internal/session"
	"github.com/seedkitapp/seedkit-backend/pkg/enums"
)

type stubSessions struct {
	session *session.Session
}

func (s *stubSessions) Get(token string) (*session.Session, bool) {
	if s.session == nil || s.session.Token != token {
		return nil, false
	}
	return s.session, true
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler := Auth(&stubSessions{}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsUnknownToken(t *testing.T) {
	handler := Auth(&stubSessions{}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer nope")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthSeedsContextFromSession(t *testing.T) {
	sessions := &stubSessions{session: &session.Session{
		Token:        "tok-1",
		Role:         enums.ActorRoleInfluencer,
		CollectionID: "col-1",
	}}

	var gotToken, gotCollection string
	var gotRole enums.ActorRole
	handler := Auth(sessions, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = SessionTokenFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
		gotCollection = CollectionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if gotToken != "tok-1" {
		t.Fatalf("expected token in context, got %q", gotToken)
	}
	if gotRole != enums.ActorRoleInfluencer {
		t.Fatalf("expected influencer role, got %q", gotRole)
	}
	if gotCollection != "col-1" {
		t.Fatalf("expected collection in context, got %q", gotCollection)
	}
}

func TestRequireRoleBlocksOtherRoles(t *testing.T) {
	handler := RequireRole(enums.ActorRoleAdmin, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithRole(req.Context(), enums.ActorRoleInfluencer))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	handler := RequireRole(enums.ActorRoleAdmin, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithRole(req.Context(), enums.ActorRoleAdmin))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
