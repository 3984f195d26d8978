package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/google/uuid"
)

// downloadTokenKey is the object metadata key Firebase Storage reads download tokens from
const downloadTokenKey = "firebaseStorageDownloadTokens"

// GCS stores objects in a Firebase Storage bucket
type GCS struct {
	bucket *storage.BucketHandle
	name   string
	logger *slog.Logger
}

// NewGCS wraps an existing bucket handle. name is used to build download URLs.
func NewGCS(bucket *storage.BucketHandle, name string, logger *slog.Logger) *GCS {
	if logger == nil {
		logger = slog.Default()
	}
	return &GCS{
		bucket: bucket,
		name:   name,
		logger: logger.With("component", "blob_gcs"),
	}
}

// NewGCSFromApp opens bucketName through the Firebase app's storage client
func NewGCSFromApp(ctx context.Context, app *firebase.App, bucketName string, logger *slog.Logger) (*GCS, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket %q: %w", bucketName, err)
	}
	return NewGCS(bucket, bucketName, logger), nil
}

func (g *GCS) Put(ctx context.Context, path string, r io.Reader, contentType string) (string, error) {
	key, err := cleanPath(path)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	token := uuid.New().String()
	w := g.bucket.Object(key).NewWriter(ctx)
	if contentType == "" {
		contentType = ContentTypeFor(key)
	}
	if contentType != "" {
		w.ContentType = contentType
	}
	w.Metadata = map[string]string{downloadTokenKey: token}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write object %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close object writer %q: %w", key, err)
	}

	g.logger.Debug("object uploaded", "path", key, "content_type", contentType)
	return DownloadURL(g.name, key, token), nil
}

func (g *GCS) Delete(ctx context.Context, path string) error {
	key, err := cleanPath(path)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := g.bucket.Object(key).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete object %q: %w", key, err)
	}
	return nil
}

// DownloadURL is the token-authorised Firebase Storage URL for an object
func DownloadURL(bucket, path, token string) string {
	return fmt.Sprintf(
		"https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucket, url.PathEscape(path), url.QueryEscape(token),
	)
}
