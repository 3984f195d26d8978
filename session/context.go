package session

import (
	"context"

	"study-tracker/models"
)

type userKey struct{}

// WithUser returns a copy of ctx carrying the signed-in user
func WithUser(ctx context.Context, user *models.AuthUser) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// CurrentUser returns the signed-in user, or nil when ctx carries none
func CurrentUser(ctx context.Context) *models.AuthUser {
	if ctx == nil {
		return nil
	}
	user, _ := ctx.Value(userKey{}).(*models.AuthUser)
	return user
}
