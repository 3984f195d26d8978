package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"study-tracker/storage"
)

// Store is a storage.Provider backed by the local SQLite database.
// It serves as the offline mirror, the development backend and the test backend.
type Store struct {
	db *DB
}

func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// Open creates the database at dbPath, runs migrations and returns a Store
func Open(dbPath string) (*Store, error) {
	db, err := New(dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return NewStore(db), nil
}

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ==================== DOCUMENT OPERATIONS ====================

// Get retrieves a single document by path
func (s *Store) Get(ctx context.Context, path string) (*storage.Document, error) {
	return getDocument(ctx, s.db, path)
}

// Set writes a document, merging into the stored one when requested
func (s *Store) Set(ctx context.Context, path string, data map[string]any, opts ...storage.SetOption) error {
	if !storage.ApplySetOptions(opts).Merge {
		return putDocument(ctx, s.db, path, data)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := mergeDocument(ctx, tx, path, data); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a document; missing documents are ignored
func (s *Store) Delete(ctx context.Context, path string) error {
	return deleteDocument(ctx, s.db, path)
}

// ==================== COLLECTION OPERATIONS ====================

// List retrieves the documents of a collection and evaluates q in process
func (s *Store) List(ctx context.Context, collection string, q storage.Query) ([]storage.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, doc_id, data
		FROM documents
		WHERE collection = ?
		ORDER BY path ASC
	`, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	docs := make([]storage.Document, 0)
	for rows.Next() {
		var doc storage.Document
		var raw string
		if err := rows.Scan(&doc.Path, &doc.ID, &raw); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(raw), &doc.Data); err != nil {
			return nil, fmt.Errorf("decode %s: %w", doc.Path, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return storage.Apply(docs, q), nil
}

// Batch starts a transaction-backed batch
func (s *Store) Batch() storage.Batch {
	return &batch{store: s}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== ROW HELPERS ====================

func getDocument(ctx context.Context, q querier, path string) (*storage.Document, error) {
	var doc storage.Document
	var raw string

	err := q.QueryRowContext(ctx, `
		SELECT path, doc_id, data FROM documents WHERE path = ?
	`, path).Scan(&doc.Path, &doc.ID, &raw)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(raw), &doc.Data); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &doc, nil
}

func putDocument(ctx context.Context, q querier, path string, data map[string]any) error {
	collection, id, err := storage.Split(path)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	now := time.Now()
	_, err = q.ExecContext(ctx, `
		INSERT INTO documents (path, collection, doc_id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`, path, collection, id, string(raw), now, now)
	return err
}

func mergeDocument(ctx context.Context, q querier, path string, data map[string]any) error {
	existing, err := getDocument(ctx, q, path)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	var current map[string]any
	if existing != nil {
		current = existing.Data
	}
	return putDocument(ctx, q, path, storage.MergeData(current, data))
}

func deleteDocument(ctx context.Context, q querier, path string) error {
	_, err := q.ExecContext(ctx, "DELETE FROM documents WHERE path = ?", path)
	return err
}
