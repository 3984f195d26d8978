package repository

import (
	"context"
	"fmt"

	"study-tracker/models"
	"study-tracker/sanitize"
	"study-tracker/storage"

	"github.com/google/uuid"
)

// GetMaterials returns the user's materials, newest first
func (r *Repository) GetMaterials(ctx context.Context) []models.StudyMaterial {
	return orEmpty(listAll[models.StudyMaterial](r, ctx, "materials",
		storage.Ordered("createdAt", storage.Desc), colMaterials))
}

// SaveMaterial writes material in full, replacing any stored version
func (r *Repository) SaveMaterial(ctx context.Context, material *models.StudyMaterial) error {
	if err := r.validator.Validate(material); err != nil {
		return err
	}
	return r.write(ctx, "save material", func(user *models.AuthUser) error {
		if material.CreatedAt == 0 {
			material.CreatedAt = r.nowMillis()
		}
		return r.save(ctx, userPath(user, colMaterials, material.ID), material)
	})
}

// UpdateMaterial merges fields into an existing material. id and isActive
// are ignored; activation goes through ToggleMaterialActive. A missing
// material fails with storage.ErrNotFound.
func (r *Repository) UpdateMaterial(ctx context.Context, id string, fields map[string]any) error {
	return r.write(ctx, "update material", func(user *models.AuthUser) error {
		data, err := sanitize.Document(fields)
		if err != nil {
			return err
		}
		delete(data, "id")
		delete(data, "isActive")

		path := userPath(user, colMaterials, id)
		if _, err := r.store.Get(ctx, path); err != nil {
			return fmt.Errorf("material %s: %w", id, err)
		}
		if len(data) == 0 {
			return nil
		}
		return r.store.Set(ctx, path, data, storage.Merge())
	})
}

func (r *Repository) DeleteMaterial(ctx context.Context, id string) error {
	return r.write(ctx, "delete material", func(user *models.AuthUser) error {
		return r.store.Delete(ctx, userPath(user, colMaterials, id))
	})
}

// ToggleMaterialActive sets isActive on material id. Activating a material
// deactivates every other active one in the same batch, so at most one
// material is active afterwards. Failures are logged and not returned.
func (r *Repository) ToggleMaterialActive(ctx context.Context, id string, isActive bool) {
	err := r.write(ctx, "toggle material", func(user *models.AuthUser) error {
		collection := userPath(user, colMaterials)
		target := storage.Join(collection, id)

		if _, err := r.store.Get(ctx, target); err != nil {
			return fmt.Errorf("material %s: %w", id, err)
		}

		batch := r.store.Batch()
		if isActive {
			active, err := r.store.List(ctx, collection, storage.Where("isActive", true))
			if err != nil {
				return err
			}
			for _, d := range active {
				if d.ID != id {
					batch.Set(d.Path, map[string]any{"isActive": false}, storage.Merge())
				}
			}
		}
		batch.Set(target, map[string]any{"isActive": isActive}, storage.Merge())
		return batch.Commit(ctx)
	})
	if err != nil {
		r.logger.Error("material toggle failed", "material_id", id, "is_active", isActive, "error", err)
	}
}

// GetMaterialChat returns a material's chat log in timestamp order
func (r *Repository) GetMaterialChat(ctx context.Context, materialID string) []models.MaterialChatMessage {
	return orEmpty(listAll[models.MaterialChatMessage](r, ctx, "material chat",
		storage.Ordered("timestamp", storage.Asc), colMaterials, materialID, colChat))
}

// AddMaterialChatMessage appends msg to a material's chat log and returns its new id
func (r *Repository) AddMaterialChatMessage(ctx context.Context, materialID string, msg *models.MaterialChatMessage) (string, error) {
	if err := r.validator.Validate(msg); err != nil {
		return "", err
	}
	var id string
	err := r.write(ctx, "add chat message", func(user *models.AuthUser) error {
		msg.ID = uuid.New().String()
		if msg.Timestamp == 0 {
			msg.Timestamp = r.nowMillis()
		}
		if err := r.save(ctx, userPath(user, colMaterials, materialID, colChat, msg.ID), msg); err != nil {
			return err
		}
		id = msg.ID
		return nil
	})
	return id, err
}

// ClearMaterialChat deletes a material's whole chat log
func (r *Repository) ClearMaterialChat(ctx context.Context, materialID string) error {
	return r.write(ctx, "clear material chat", func(user *models.AuthUser) error {
		_, err := r.deleteAll(ctx, userPath(user, colMaterials, materialID, colChat))
		return err
	})
}
