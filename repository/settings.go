package repository

import (
	"context"

	"study-tracker/models"
	"study-tracker/storage"
)

func (r *Repository) GetAISettings(ctx context.Context) *models.AISettings {
	return getSingle[models.AISettings](r, ctx, "ai settings", colSettings, string(models.SettingsAI))
}

func (r *Repository) SaveAISettings(ctx context.Context, s *models.AISettings) error {
	return r.saveSettings(ctx, models.SettingsAI, s)
}

func (r *Repository) GetRevisionSettings(ctx context.Context) *models.RevisionSettings {
	return getSingle[models.RevisionSettings](r, ctx, "revision settings", colSettings, string(models.SettingsRevision))
}

func (r *Repository) SaveRevisionSettings(ctx context.Context, s *models.RevisionSettings) error {
	return r.saveSettings(ctx, models.SettingsRevision, s)
}

func (r *Repository) GetAppSettings(ctx context.Context) *models.AppSettings {
	return getSingle[models.AppSettings](r, ctx, "app settings", colSettings, string(models.SettingsApp))
}

func (r *Repository) SaveAppSettings(ctx context.Context, s *models.AppSettings) error {
	return r.saveSettings(ctx, models.SettingsApp, s)
}

// saveSettings validates s and merges it into users/{uid}/settings/{kind}
func (r *Repository) saveSettings(ctx context.Context, kind models.SettingsKind, s any) error {
	if err := r.validator.Validate(s); err != nil {
		return err
	}
	return r.write(ctx, "save "+string(kind)+" settings", func(user *models.AuthUser) error {
		return r.save(ctx, userPath(user, colSettings, string(kind)), s, storage.Merge())
	})
}
