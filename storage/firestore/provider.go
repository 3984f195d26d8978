// Package firestore implements storage.Provider on Cloud Firestore.
package firestore

import (
	"context"
	"errors"
	"fmt"

	gfs "cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"study-tracker/storage"
)

// Provider adapts a Firestore client to storage.Provider
type Provider struct {
	client *gfs.Client
}

// New wraps an existing Firestore client
func New(client *gfs.Client) *Provider {
	return &Provider{client: client}
}

// NewFromApp creates the Firestore client from a Firebase app
func NewFromApp(ctx context.Context, app *firebase.App) (*Provider, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return New(client), nil
}

func (p *Provider) doc(path string) (*gfs.DocumentRef, error) {
	ref := p.client.Doc(path)
	if ref == nil {
		return nil, fmt.Errorf("invalid document path %q", path)
	}
	return ref, nil
}

func (p *Provider) Get(ctx context.Context, path string) (*storage.Document, error) {
	ref, err := p.doc(path)
	if err != nil {
		return nil, err
	}

	snap, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &storage.Document{ID: ref.ID, Path: path, Data: snap.Data()}, nil
}

func (p *Provider) Set(ctx context.Context, path string, data map[string]any, opts ...storage.SetOption) error {
	ref, err := p.doc(path)
	if err != nil {
		return err
	}
	_, err = ref.Set(ctx, data, setOptions(opts)...)
	return err
}

func (p *Provider) Delete(ctx context.Context, path string) error {
	ref, err := p.doc(path)
	if err != nil {
		return err
	}
	_, err = ref.Delete(ctx)
	return err
}

func (p *Provider) List(ctx context.Context, collection string, q storage.Query) ([]storage.Document, error) {
	col := p.client.Collection(collection)
	if col == nil {
		return nil, fmt.Errorf("invalid collection path %q", collection)
	}

	query := col.Query
	for _, f := range q.Where {
		query = query.Where(f.Field, "==", f.Value)
	}
	if q.OrderBy != "" {
		dir := gfs.Asc
		if q.Direction == storage.Desc {
			dir = gfs.Desc
		}
		query = query.OrderBy(q.OrderBy, dir)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	docs := make([]storage.Document, 0)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, storage.Document{
			ID:   snap.Ref.ID,
			Path: storage.Join(collection, snap.Ref.ID),
			Data: snap.Data(),
		})
	}
	return docs, nil
}

func (p *Provider) Batch() storage.Batch {
	return &batch{provider: p, wb: p.client.Batch()}
}

func (p *Provider) Close() error {
	return p.client.Close()
}

func setOptions(opts []storage.SetOption) []gfs.SetOption {
	if storage.ApplySetOptions(opts).Merge {
		return []gfs.SetOption{gfs.MergeAll}
	}
	return nil
}

type batch struct {
	provider *Provider
	wb       *gfs.WriteBatch
	count    int
	err      error
}

func (b *batch) Set(path string, data map[string]any, opts ...storage.SetOption) {
	ref, err := b.provider.doc(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return
	}
	b.wb.Set(ref, data, setOptions(opts)...)
	b.count++
}

func (b *batch) Delete(path string) {
	ref, err := b.provider.doc(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return
	}
	b.wb.Delete(ref)
	b.count++
}

func (b *batch) Len() int {
	return b.count
}

func (b *batch) Commit(ctx context.Context) error {
	if b.err != nil {
		return b.err
	}
	if b.count == 0 {
		return nil
	}
	if b.count > storage.MaxBatchWrites {
		return fmt.Errorf("batch has %d writes, limit is %d", b.count, storage.MaxBatchWrites)
	}
	_, err := b.wb.Commit(ctx)
	return err
}
