package auth

import (
	"context"
	"errors"

	"shopadmin/internal/domain"
)

// ErrForbidden is returned when the caller is not an admin.
var ErrForbidden = errors.New("access denied")

type userKey struct{}

// WithUser attaches the signed-in user to ctx.
func WithUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFrom returns the user attached by WithUser, if any.
func UserFrom(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userKey{}).(*domain.User)
	return u, ok && u != nil
}

// RequireAdmin returns the admin attached to ctx, or ErrForbidden when there is
// no user or the user is not an admin.
func RequireAdmin(ctx context.Context) (*domain.User, error) {
	u, ok := UserFrom(ctx)
	if !ok || !u.IsAdmin() {
		return nil, ErrForbidden
	}
	return u, nil
}
