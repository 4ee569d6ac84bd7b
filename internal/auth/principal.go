package auth

import (
	"context"

	"coworking/internal/db"
)

// Principal is the authenticated caller.
type Principal struct {
	UserID int
	Email  string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == db.RoleAdmin
}

// CanAccess reports whether the caller may act on resources owned by userID.
func (p Principal) CanAccess(userID int) bool {
	return p.IsAdmin() || p.UserID == userID
}

type contextKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}
