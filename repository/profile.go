package repository

import (
	"context"

	"study-tracker/models"
	"study-tracker/storage"
)

// GetProfile returns the profile stored at users/{uid}, or nil
func (r *Repository) GetProfile(ctx context.Context) *models.UserProfile {
	return getSingle[models.UserProfile](r, ctx, "profile")
}

// SaveProfile merges profile into the stored one
func (r *Repository) SaveProfile(ctx context.Context, profile *models.UserProfile) error {
	return r.write(ctx, "save profile", func(user *models.AuthUser) error {
		if profile.ShortID == "" {
			profile.ShortID = user.ShortID
		}
		if profile.Email == "" {
			profile.Email = user.Email
		}
		return r.save(ctx, userPath(user), profile, storage.Merge())
	})
}
