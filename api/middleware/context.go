package middleware

import (
	"context"

	"github.com/seedkitapp/seedkit-backend/pkg/enums"
)

type contextKey string

const (
	ctxSessionToken contextKey = "session_token"
	ctxRole         contextKey = "actor_role"
	ctxCollectionID contextKey = "collection_id"
)

func SessionTokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionToken).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) enums.ActorRole {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(enums.ActorRole); ok {
		return v
	}
	return ""
}

func CollectionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxCollectionID).(string); ok {
		return v
	}
	return ""
}

// WithSessionToken injects the opaque session token into the context.
func WithSessionToken(ctx context.Context, token string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionToken, token)
}

// WithRole injects the actor role into the context.
func WithRole(ctx context.Context, role enums.ActorRole) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRole, role)
}

// WithCollectionID injects the influencer's collection into the context.
func WithCollectionID(ctx context.Context, collectionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCollectionID, collectionID)
}
