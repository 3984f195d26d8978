package database

import (
	"context"
	"fmt"

	"study-tracker/storage"
)

type batchOp struct {
	path   string
	data   map[string]any
	merge  bool
	delete bool
}

// batch applies its writes in a single transaction on Commit
type batch struct {
	store *Store
	ops   []batchOp
}

func (b *batch) Set(path string, data map[string]any, opts ...storage.SetOption) {
	b.ops = append(b.ops, batchOp{path: path, data: data, merge: storage.ApplySetOptions(opts).Merge})
}

func (b *batch) Delete(path string) {
	b.ops = append(b.ops, batchOp{path: path, delete: true})
}

func (b *batch) Len() int {
	return len(b.ops)
}

func (b *batch) Commit(ctx context.Context) error {
	if len(b.ops) == 0 {
		return nil
	}
	if len(b.ops) > storage.MaxBatchWrites {
		return fmt.Errorf("batch has %d writes, limit is %d", len(b.ops), storage.MaxBatchWrites)
	}

	tx, err := b.store.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, op := range b.ops {
		switch {
		case op.delete:
			err = deleteDocument(ctx, tx, op.path)
		case op.merge:
			err = mergeDocument(ctx, tx, op.path, op.data)
		default:
			err = putDocument(ctx, tx, op.path, op.data)
		}
		if err != nil {
			return fmt.Errorf("batch write %s: %w", op.path, err)
		}
	}

	return tx.Commit()
}
