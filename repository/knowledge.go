package repository

import (
	"context"
	"fmt"
	"strconv"

	"study-tracker/models"
	"study-tracker/storage"
)

// KnowledgeBaseBatchSize is the number of entries committed per batch by
// SaveKnowledgeBase. It stays under storage.MaxBatchWrites.
const KnowledgeBaseBatchSize = 450

// GetKnowledgeBase returns all entries ordered by page number.
// nil means the read failed; an empty slice means there are no entries.
func (r *Repository) GetKnowledgeBase(ctx context.Context) []models.KnowledgeBaseEntry {
	return listAll[models.KnowledgeBaseEntry](r, ctx, "knowledge base",
		storage.Ordered("pageNumber", storage.Asc), colKnowledgeBase)
}

// SaveKnowledgeBase writes entries keyed by page number in groups of
// KnowledgeBaseBatchSize. Each group is one atomic batch and groups are
// committed in order. On the first failed group it stops and returns how far
// it got; groups committed before the failure stay written.
func (r *Repository) SaveKnowledgeBase(ctx context.Context, entries []models.KnowledgeBaseEntry) (models.BulkResult, error) {
	for i := range entries {
		if err := r.validator.Validate(&entries[i]); err != nil {
			return models.BulkResult{}, fmt.Errorf("entry %d: %w", i, err)
		}
	}

	var result models.BulkResult
	err := r.write(ctx, "save knowledge base", func(user *models.AuthUser) error {
		collection := userPath(user, colKnowledgeBase)
		groups := storage.Chunk(entries, KnowledgeBaseBatchSize)
		result.TotalGroups = len(groups)

		for i, group := range groups {
			batch := r.store.Batch()
			for j := range group {
				if err := r.stage(batch, knowledgeBasePath(collection, group[j].PageNumber), &group[j]); err != nil {
					return err
				}
			}
			if err := batch.Commit(ctx); err != nil {
				return fmt.Errorf("group %d of %d: %w", i+1, len(groups), err)
			}
			result.CommittedGroups++
			result.SavedEntries += len(group)
			r.logger.Debug("knowledge base group committed", "group", i+1, "of", len(groups), "entries", len(group))
		}
		return nil
	})
	return result, err
}

func (r *Repository) DeleteKnowledgeBaseEntry(ctx context.Context, pageNumber int) error {
	return r.write(ctx, "delete knowledge base entry", func(user *models.AuthUser) error {
		return r.store.Delete(ctx, knowledgeBasePath(userPath(user, colKnowledgeBase), pageNumber))
	})
}

func knowledgeBasePath(collection string, pageNumber int) string {
	return storage.Join(collection, strconv.Itoa(pageNumber))
}
