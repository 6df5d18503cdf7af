package ctxutil

import (
	"context"

	"github.com/yungbote/contactbook-backend/internal/domain"
)

type currentUserKey struct{}

func WithCurrentUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, currentUserKey{}, u)
}

// CurrentUser returns the authenticated user, or nil outside the auth middleware.
func CurrentUser(ctx context.Context) *domain.User {
	if ctx == nil {
		return nil
	}
	if u, ok := ctx.Value(currentUserKey{}).(*domain.User); ok {
		return u
	}
	return nil
}
