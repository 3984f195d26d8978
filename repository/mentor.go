package repository

import (
	"context"

	"study-tracker/models"
	"study-tracker/storage"
)

const mentorMemoryID = "memory"

// GetMentorMessages returns the mentor conversation in timestamp order.
// nil means the read failed; an empty slice means there are no messages.
func (r *Repository) GetMentorMessages(ctx context.Context) []models.MentorMessage {
	return listAll[models.MentorMessage](r, ctx, "mentor messages",
		storage.Ordered("timestamp", storage.Asc), colMentorMessages)
}

func (r *Repository) SaveMentorMessage(ctx context.Context, msg *models.MentorMessage) error {
	if err := r.validator.Validate(msg); err != nil {
		return err
	}
	return r.write(ctx, "save mentor message", func(user *models.AuthUser) error {
		if msg.Timestamp == 0 {
			msg.Timestamp = r.nowMillis()
		}
		return r.save(ctx, userPath(user, colMentorMessages, msg.ID), msg)
	})
}

// ClearMentorMessages deletes the mentor conversation. Failures are logged and not returned.
func (r *Repository) ClearMentorMessages(ctx context.Context) {
	err := r.write(ctx, "clear mentor messages", func(user *models.AuthUser) error {
		n, err := r.deleteAll(ctx, userPath(user, colMentorMessages))
		r.logger.Debug("mentor messages cleared", "uid", user.UID, "deleted", n)
		return err
	})
	if err != nil {
		r.logger.Error("mentor message clear failed", "error", err)
	}
}

func (r *Repository) GetMentorMemory(ctx context.Context) *models.MentorMemory {
	return getSingle[models.MentorMemory](r, ctx, "mentor memory", colMentor, mentorMemoryID)
}

// SaveMentorMemory merges memory into the stored one
func (r *Repository) SaveMentorMemory(ctx context.Context, memory *models.MentorMemory) error {
	return r.write(ctx, "save mentor memory", func(user *models.AuthUser) error {
		now := r.now().UTC()
		memory.UpdatedAt = &now
		return r.save(ctx, userPath(user, colMentor, mentorMemoryID), memory, storage.Merge())
	})
}

// AddToBacklog appends item to the mentor backlog unless an item with the
// same id is already there. The read and the write are not atomic.
func (r *Repository) AddToBacklog(ctx context.Context, item *models.BacklogItem) error {
	if err := r.validator.Validate(item); err != nil {
		return err
	}
	return r.write(ctx, "add backlog item", func(user *models.AuthUser) error {
		path := userPath(user, colMentor, mentorMemoryID)

		var memory models.MentorMemory
		if _, err := r.load(ctx, path, &memory); err != nil {
			return err
		}
		for _, existing := range memory.Backlog {
			if existing.ID == item.ID {
				return nil
			}
		}

		if item.AddedAt == 0 {
			item.AddedAt = r.nowMillis()
		}
		backlog := append(memory.Backlog, *item)
		return r.save(ctx, path, map[string]any{"backlog": backlog}, storage.Merge())
	})
}

// RemoveFromBacklog drops the backlog item with itemID, if present
func (r *Repository) RemoveFromBacklog(ctx context.Context, itemID string) error {
	return r.write(ctx, "remove backlog item", func(user *models.AuthUser) error {
		path := userPath(user, colMentor, mentorMemoryID)

		var memory models.MentorMemory
		ok, err := r.load(ctx, path, &memory)
		if err != nil || !ok {
			return err
		}

		kept := make([]models.BacklogItem, 0, len(memory.Backlog))
		for _, it := range memory.Backlog {
			if it.ID != itemID {
				kept = append(kept, it)
			}
		}
		if len(kept) == len(memory.Backlog) {
			return nil
		}
		return r.save(ctx, path, map[string]any{"backlog": kept}, storage.Merge())
	})
}
