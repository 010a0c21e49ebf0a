package middleware

import (
	"net/http"
	"strings"

	"github.com/seedkitapp/seedkit-backend/api/responses"
	"github.com/seedkitapp/seedkit-backend/internal/session"
	pkgerrors "github.com/seedkitapp/seedkit-backend/pkg/errors"
	"github.com/seedkitapp/seedkit-backend/pkg/logger"
)

// sessionReader resolves opaque bearer tokens to live sessions.
type sessionReader interface {
	Get(token string) (*session.Session, bool)
}

// Auth resolves the bearer token against the session manager and seeds the
// request context with the actor's role and collection.
func Auth(sessions sessionReader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			active, ok := sessions.Get(token)
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired or unknown"))
				return
			}

			ctx := WithSessionToken(r.Context(), active.Token)
			ctx = WithRole(ctx, active.Role)
			if active.CollectionID != "" {
				ctx = WithCollectionID(ctx, active.CollectionID)
			}

			if logg != nil {
				ctx = logg.WithSessionID(ctx, active.Token)
				ctx = logg.WithActorRole(ctx, active.Role.String())
				if active.CollectionID != "" {
					ctx = logg.WithCollectionID(ctx, active.CollectionID)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
