package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"study-tracker/blob"
	"study-tracker/models"
	"study-tracker/session"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.]`)

// SafeName replaces every character other than ASCII letters, digits and dots with '_'
func SafeName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_")
}

// UploadFile stores an attachment under users/{uid}/attachments and returns its download URL
func (r *Repository) UploadFile(ctx context.Context, name string, body io.Reader, contentType string) (string, error) {
	var url string
	err := r.upload(ctx, "upload attachment", func(user *models.AuthUser) error {
		var err error
		url, err = r.blobs.Put(ctx, r.objectPath(userPath(user, "attachments"), name), body, contentType)
		return err
	})
	return url, err
}

// UploadTempFile stores a short-lived upload under temp/{uid}. The caller
// removes it with DeleteTempFile once it has been processed.
func (r *Repository) UploadTempFile(ctx context.Context, name string, body io.Reader, contentType string) (*models.TempUpload, error) {
	var out *models.TempUpload
	err := r.upload(ctx, "upload temp file", func(user *models.AuthUser) error {
		path := r.objectPath("temp/"+user.UID, name)
		url, err := r.blobs.Put(ctx, path, body, contentType)
		if err != nil {
			return err
		}
		out = &models.TempUpload{URL: url, Path: path}
		return nil
	})
	return out, err
}

// DeleteTempFile removes a temp upload of the signed-in user. Missing files are not an error.
func (r *Repository) DeleteTempFile(ctx context.Context, path string) error {
	return r.upload(ctx, "delete temp file", func(user *models.AuthUser) error {
		if !strings.HasPrefix(path, "temp/"+user.UID+"/") {
			return fmt.Errorf("%w: %s", blob.ErrInvalidPath, path)
		}
		err := r.blobs.Delete(ctx, path)
		if errors.Is(err, blob.ErrNotFound) {
			return nil
		}
		return err
	})
}

// upload is write for blob operations: it fails with ErrNotAuthenticated instead of doing nothing
func (r *Repository) upload(ctx context.Context, what string, fn func(user *models.AuthUser) error) error {
	return r.notifier.Track(func() error {
		user := session.CurrentUser(ctx)
		if user == nil {
			return ErrNotAuthenticated
		}
		if r.blobs == nil {
			return fmt.Errorf("failed to %s: no blob store configured", what)
		}
		if err := fn(user); err != nil {
			return fmt.Errorf("failed to %s: %w", what, err)
		}
		return nil
	})
}

func (r *Repository) objectPath(dir, name string) string {
	return fmt.Sprintf("%s/%d_%s", dir, r.nowMillis(), SafeName(name))
}
