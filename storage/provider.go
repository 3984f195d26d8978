package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// MaxBatchWrites is the backend's ceiling on writes per atomic batch.
const MaxBatchWrites = 500

var ErrNotFound = errors.New("document not found")

// Provider is the interface for all document store backends.
// Paths alternate collection and document segments: "users/u1/materials/m1".
type Provider interface {
	// ==================== DOCUMENT OPERATIONS ====================

	// Get returns the document at path or ErrNotFound
	Get(ctx context.Context, path string) (*Document, error)

	// Set writes data at path, replacing the document unless Merge is given
	Set(ctx context.Context, path string, data map[string]any, opts ...SetOption) error

	// Delete removes the document at path; deleting a missing document is not an error
	Delete(ctx context.Context, path string) error

	// ==================== COLLECTION OPERATIONS ====================

	// List returns the documents directly inside collection that match q
	List(ctx context.Context, collection string, q Query) ([]Document, error)

	// Batch starts an atomic group of writes
	Batch() Batch

	// ==================== UTILITY OPERATIONS ====================

	Close() error
}

// Batch is a bounded set of writes committed all-or-nothing.
type Batch interface {
	Set(path string, data map[string]any, opts ...SetOption)
	Delete(path string)
	Len() int
	Commit(ctx context.Context) error
}

// Document is a stored document and its location
type Document struct {
	ID   string         `json:"id"`
	Path string         `json:"path"`
	Data map[string]any `json:"data"`
}

// DataTo decodes the document data into v using its json tags
func (d *Document) DataTo(v any) error {
	raw, err := json.Marshal(d.Data)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", d.Path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode document %s: %w", d.Path, err)
	}
	return nil
}

// SetOption modifies a Set call
type SetOption func(*SetOptions)

type SetOptions struct {
	Merge bool
}

// Merge updates only the given fields, leaving the others untouched
func Merge() SetOption {
	return func(o *SetOptions) { o.Merge = true }
}

// ApplySetOptions folds opts into a SetOptions value
func ApplySetOptions(opts []SetOption) SetOptions {
	var o SetOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Direction orders query results
type Direction int

const (
	Asc Direction = iota
	Desc
)

// Filter is an equality condition on a top-level field
type Filter struct {
	Field string
	Value any
}

type Query struct {
	Where     []Filter
	OrderBy   string
	Direction Direction
	Limit     int
}

// Where returns a query with a single equality filter
func Where(field string, value any) Query {
	return Query{Where: []Filter{{Field: field, Value: value}}}
}

// Ordered returns a query ordered by field
func Ordered(field string, dir Direction) Query {
	return Query{OrderBy: field, Direction: dir}
}
