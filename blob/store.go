// Package blob stores uploaded files and hands back URLs to download them.
package blob

import (
	"context"
	"errors"
	"io"
	"strings"
)

var (
	// ErrNotFound is returned when deleting an object that does not exist
	ErrNotFound = errors.New("blob not found")
	// ErrInvalidPath is returned for empty or escaping object paths
	ErrInvalidPath = errors.New("invalid blob path")
)

// Store is a flat object namespace addressed by slash-separated paths
type Store interface {
	// Put writes r to path and returns a URL the object can be downloaded from
	Put(ctx context.Context, path string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, path string) error
}

// ContentTypeFor guesses a content type from the object path suffix.
// Unknown suffixes return "".
func ContentTypeFor(path string) string {
	s := strings.ToLower(strings.TrimSpace(path))
	if i := strings.Index(s, "?"); i >= 0 {
		s = s[:i]
	}
	switch {
	case strings.HasSuffix(s, ".png"):
		return "image/png"
	case strings.HasSuffix(s, ".jpg"), strings.HasSuffix(s, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(s, ".webp"):
		return "image/webp"
	case strings.HasSuffix(s, ".gif"):
		return "image/gif"
	case strings.HasSuffix(s, ".svg"):
		return "image/svg+xml"
	case strings.HasSuffix(s, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(s, ".json"):
		return "application/json"
	case strings.HasSuffix(s, ".txt"), strings.HasSuffix(s, ".md"):
		return "text/plain; charset=utf-8"
	case strings.HasSuffix(s, ".mp3"):
		return "audio/mpeg"
	case strings.HasSuffix(s, ".m4a"):
		return "audio/mp4"
	case strings.HasSuffix(s, ".mp4"):
		return "video/mp4"
	case strings.HasSuffix(s, ".webm"):
		return "video/webm"
	default:
		return ""
	}
}

func cleanPath(path string) (string, error) {
	p := strings.Trim(strings.TrimSpace(path), "/")
	if p == "" {
		return "", ErrInvalidPath
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return "", ErrInvalidPath
		}
	}
	return p, nil
}
