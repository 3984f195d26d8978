package storage

import (
	"context"
	"errors"
	"log/slog"
)

// Offline serves reads from a local mirror when the remote store is unreachable.
// Successful remote reads and writes are copied into the mirror; writes still go
// to the remote first and fail if it fails.
type Offline struct {
	remote Provider
	local  Provider
	logger *slog.Logger
}

// NewOffline wraps remote with a local mirror
func NewOffline(remote, local Provider, logger *slog.Logger) *Offline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Offline{
		remote: remote,
		local:  local,
		logger: logger.With("component", "offline_cache"),
	}
}

// EnablePersistence opens the local mirror once at startup. If it cannot be
// opened the failure is logged and remote is returned unchanged.
func EnablePersistence(remote Provider, open func() (Provider, error), logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	local, err := open()
	if err != nil {
		logger.Warn("offline persistence unavailable, continuing without it", "error", err)
		return remote
	}
	logger.Info("offline persistence enabled")
	return NewOffline(remote, local, logger)
}

func (o *Offline) Get(ctx context.Context, path string) (*Document, error) {
	doc, err := o.remote.Get(ctx, path)
	switch {
	case err == nil:
		if mErr := o.local.Set(ctx, path, doc.Data); mErr != nil {
			o.logger.Warn("failed to mirror document", "path", path, "error", mErr)
		}
		return doc, nil
	case errors.Is(err, ErrNotFound):
		if mErr := o.local.Delete(ctx, path); mErr != nil {
			o.logger.Warn("failed to drop mirrored document", "path", path, "error", mErr)
		}
		return nil, err
	}

	o.logger.Warn("remote read failed, serving from cache", "path", path, "error", err)
	cached, localErr := o.local.Get(ctx, path)
	if localErr != nil {
		return nil, err
	}
	return cached, nil
}

func (o *Offline) Set(ctx context.Context, path string, data map[string]any, opts ...SetOption) error {
	if err := o.remote.Set(ctx, path, data, opts...); err != nil {
		return err
	}
	if err := o.local.Set(ctx, path, data, opts...); err != nil {
		o.logger.Warn("failed to mirror write", "path", path, "error", err)
	}
	return nil
}

func (o *Offline) Delete(ctx context.Context, path string) error {
	if err := o.remote.Delete(ctx, path); err != nil {
		return err
	}
	if err := o.local.Delete(ctx, path); err != nil {
		o.logger.Warn("failed to mirror delete", "path", path, "error", err)
	}
	return nil
}

func (o *Offline) List(ctx context.Context, collection string, q Query) ([]Document, error) {
	docs, err := o.remote.List(ctx, collection, q)
	if err != nil {
		o.logger.Warn("remote query failed, serving from cache", "collection", collection, "error", err)
		cached, localErr := o.local.List(ctx, collection, q)
		if localErr != nil {
			return nil, err
		}
		return cached, nil
	}

	o.mirrorList(ctx, collection, q, docs)
	return docs, nil
}

// mirrorList copies docs into the mirror and, for unlimited queries, drops
// mirrored documents the remote no longer returns for the same query.
func (o *Offline) mirrorList(ctx context.Context, collection string, q Query, docs []Document) {
	seen := make(map[string]bool, len(docs))
	ops := make([]batchOp, 0, len(docs))
	for _, d := range docs {
		seen[d.Path] = true
		ops = append(ops, batchOp{path: d.Path, data: d.Data})
	}

	if q.Limit == 0 {
		stale, err := o.local.List(ctx, collection, Query{Where: q.Where})
		if err == nil {
			for _, d := range stale {
				if !seen[d.Path] {
					ops = append(ops, batchOp{path: d.Path, delete: true})
				}
			}
		}
	}

	if err := o.apply(ctx, ops); err != nil {
		o.logger.Warn("failed to mirror query results", "collection", collection, "error", err)
	}
}

// apply writes ops to the mirror in batches of at most MaxBatchWrites
func (o *Offline) apply(ctx context.Context, ops []batchOp) error {
	for _, group := range Chunk(ops, MaxBatchWrites) {
		batch := o.local.Batch()
		for _, op := range group {
			if op.delete {
				batch.Delete(op.path)
			} else {
				batch.Set(op.path, op.data, op.opts...)
			}
		}
		if err := batch.Commit(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (o *Offline) Batch() Batch {
	return &offlineBatch{owner: o, remote: o.remote.Batch()}
}

func (o *Offline) Close() error {
	return errors.Join(o.remote.Close(), o.local.Close())
}

type batchOp struct {
	path   string
	data   map[string]any
	opts   []SetOption
	delete bool
}

type offlineBatch struct {
	owner  *Offline
	remote Batch
	ops    []batchOp
}

func (b *offlineBatch) Set(path string, data map[string]any, opts ...SetOption) {
	b.remote.Set(path, data, opts...)
	b.ops = append(b.ops, batchOp{path: path, data: data, opts: opts})
}

func (b *offlineBatch) Delete(path string) {
	b.remote.Delete(path)
	b.ops = append(b.ops, batchOp{path: path, delete: true})
}

func (b *offlineBatch) Len() int {
	return b.remote.Len()
}

func (b *offlineBatch) Commit(ctx context.Context) error {
	if err := b.remote.Commit(ctx); err != nil {
		return err
	}

	if err := b.owner.apply(ctx, b.ops); err != nil {
		b.owner.logger.Warn("failed to mirror batch", "writes", len(b.ops), "error", err)
	}
	return nil
}
