package middleware

import "context"

type userKey struct{}

// UserCtx is the authenticated caller, taken from verified token claims.
type UserCtx struct {
	UserID string
	Email  string
	Name   string
}

func WithUser(ctx context.Context, u UserCtx) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

func FromCtx(ctx context.Context) (UserCtx, bool) {
	u, ok := ctx.Value(userKey{}).(UserCtx)
	return u, ok && u.UserID != ""
}
