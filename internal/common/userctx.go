package common

import (
	"context"
)

// UserContext holds the authenticated caller's identity, populated by the
// bearer token middleware from validated JWT claims. Nil on unauthenticated
// requests (public endpoints tolerate that; owner endpoints do not).
type UserContext struct {
	UserID      string
	DisplayName string
	AvatarURL   string
}

type contextKey int

const userContextKey contextKey = iota

// WithUserContext stores a UserContext in the request context.
func WithUserContext(ctx context.Context, uc *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, uc)
}

// UserContextFromContext retrieves the UserContext from context, or nil if absent.
func UserContextFromContext(ctx context.Context) *UserContext {
	uc, _ := ctx.Value(userContextKey).(*UserContext)
	return uc
}

// RequireUserID returns the authenticated user id, or ErrUnauthenticated
// when no validated identity is present on the context.
func RequireUserID(ctx context.Context) (string, error) {
	if uc := UserContextFromContext(ctx); uc != nil && uc.UserID != "" {
		return uc.UserID, nil
	}
	return "", ErrUnauthenticated
}
