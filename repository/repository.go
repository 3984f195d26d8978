// Package repository is the per-entity data access layer. Every operation is
// scoped to the user carried in ctx (see session.WithUser) and bracketed by the
// sync notifier.
//
// Reads are best effort: failures are logged and come back as nil or empty
// values. Writes return their errors, except where a method says otherwise.
// Without a signed-in user reads return nothing and writes do nothing.
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"study-tracker/blob"
	"study-tracker/models"
	"study-tracker/sanitize"
	"study-tracker/session"
	"study-tracker/storage"
	"study-tracker/sync"
	"study-tracker/validator"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// Collection names below users/{uid}
const (
	colMaterials      = "materials"
	colChat           = "chat"
	colMentorMessages = "mentorMessages"
	colMentor         = "mentor"
	colSettings       = "settings"
	colDayPlans       = "dayPlans"
	colDailyTrackers  = "dailyTrackers"
	colKnowledgeBase  = "knowledgeBase"
	colTimeLogs       = "timeLogs"
	colFMGE           = "fmgeEntries"
	colStudyEntries   = "studyEntries"
)

type Repository struct {
	store     storage.Provider
	blobs     blob.Store
	notifier  *sync.Notifier
	validator *validator.Validator
	logger    *slog.Logger
	now       func() time.Time
}

func New(store storage.Provider, blobs blob.Store, notifier *sync.Notifier, v *validator.Validator, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	if v == nil {
		v = validator.New()
	}
	return &Repository{
		store:     store,
		blobs:     blobs,
		notifier:  notifier,
		validator: v,
		logger:    logger.With("component", "repository"),
		now:       time.Now,
	}
}

func (r *Repository) nowMillis() int64 {
	return r.now().UnixMilli()
}

func userPath(user *models.AuthUser, segments ...string) string {
	return storage.Join(append([]string{"users", user.UID}, segments...)...)
}

// read runs fn for the signed-in user inside a sync bracket. Errors are logged, not returned.
func (r *Repository) read(ctx context.Context, what string, fn func(user *models.AuthUser) error) {
	r.notifier.Track(func() error {
		user := session.CurrentUser(ctx)
		if user == nil {
			return nil
		}
		if err := fn(user); err != nil {
			r.logger.Error("failed to "+what, "uid", user.UID, "error", err)
		}
		return nil
	})
}

// write runs fn for the signed-in user inside a sync bracket and wraps its error
func (r *Repository) write(ctx context.Context, what string, fn func(user *models.AuthUser) error) error {
	return r.notifier.Track(func() error {
		user := session.CurrentUser(ctx)
		if user == nil {
			r.logger.Debug("skipping write without a signed-in user", "op", what)
			return nil
		}
		if err := fn(user); err != nil {
			return fmt.Errorf("failed to %s: %w", what, err)
		}
		return nil
	})
}

// load decodes the document at path into out and reports whether it exists
func (r *Repository) load(ctx context.Context, path string, out any) (bool, error) {
	doc, err := r.store.Get(ctx, path)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := doc.DataTo(out); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

// save sanitizes v and writes it to path
func (r *Repository) save(ctx context.Context, path string, v any, opts ...storage.SetOption) error {
	data, err := sanitize.Document(v)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, path, data, opts...)
}

// stage sanitizes v and adds a write of it to batch
func (r *Repository) stage(batch storage.Batch, path string, v any) error {
	data, err := sanitize.Document(v)
	if err != nil {
		return err
	}
	batch.Set(path, data)
	return nil
}

// deleteAll removes every document in collection, in batches of at most MaxBatchWrites
func (r *Repository) deleteAll(ctx context.Context, collection string) (int, error) {
	docs, err := r.store.List(ctx, collection, storage.Query{})
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, group := range storage.Chunk(docs, storage.MaxBatchWrites) {
		batch := r.store.Batch()
		for _, d := range group {
			batch.Delete(d.Path)
		}
		if err := batch.Commit(ctx); err != nil {
			return deleted, err
		}
		deleted += len(group)
	}
	return deleted, nil
}

func decodeAll[T any](logger *slog.Logger, docs []storage.Document) []T {
	out := make([]T, 0, len(docs))
	for i := range docs {
		var v T
		if err := docs[i].DataTo(&v); err != nil {
			logger.Warn("skipping undecodable document", "path", docs[i].Path, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out
}

// getSingle loads one document below users/{uid}; nil when absent or on failure
func getSingle[T any](r *Repository, ctx context.Context, what string, segments ...string) *T {
	var out *T
	r.read(ctx, "load "+what, func(user *models.AuthUser) error {
		var v T
		ok, err := r.load(ctx, userPath(user, segments...), &v)
		if err != nil || !ok {
			return err
		}
		out = &v
		return nil
	})
	return out
}

// listAll lists a collection below users/{uid}. nil means the read failed.
func listAll[T any](r *Repository, ctx context.Context, what string, q storage.Query, segments ...string) []T {
	var out []T
	r.read(ctx, "load "+what, func(user *models.AuthUser) error {
		docs, err := r.store.List(ctx, userPath(user, segments...), q)
		if err != nil {
			return err
		}
		out = decodeAll[T](r.logger, docs)
		return nil
	})
	return out
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
