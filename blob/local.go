package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Local stores objects as files below a root directory
type Local struct {
	root    string
	baseURL string
}

// NewLocal creates root if needed. Object URLs are baseURL + "/" + path.
func NewLocal(root, baseURL string) (*Local, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &Local{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (l *Local) Put(ctx context.Context, path string, r io.Reader, contentType string) (string, error) {
	key, err := cleanPath(path)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	full := filepath.Join(l.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory for %q: %w", key, err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("failed to create %q: %w", key, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return "", fmt.Errorf("failed to write %q: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %q: %w", key, err)
	}

	return l.baseURL + "/" + key, nil
}

func (l *Local) Delete(ctx context.Context, path string) error {
	key, err := cleanPath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(l.root, filepath.FromSlash(key))); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// Root is the directory objects are written under
func (l *Local) Root() string {
	return l.root
}
