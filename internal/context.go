package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextUserKey ctxKey = "currentUser"

// CurrentUser is the authenticated identity attached to a request by the
// auth middleware. CompanyID scopes every downstream query.
type CurrentUser struct {
	UserID    string
	CompanyID string
	Email     string
	Role      string
}

func UserFromContext(ctx context.Context) (*CurrentUser, bool) {
	if ctx == nil {
		return nil, false
	}
	user, ok := ctx.Value(ContextUserKey).(*CurrentUser)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

func ContextWithUser(ctx context.Context, user *CurrentUser) context.Context {
	return context.WithValue(ctx, ContextUserKey, user)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
