package storage

import (
	"fmt"
	"strings"
)

// Join builds a slash-separated document or collection path
func Join(segments ...string) string {
	return strings.Join(segments, "/")
}

// Split returns the parent collection and document id of a document path
func Split(path string) (collection, id string, err error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || len(parts)%2 != 0 {
		return "", "", fmt.Errorf("invalid document path %q", path)
	}
	for _, p := range parts {
		if p == "" {
			return "", "", fmt.Errorf("invalid document path %q", path)
		}
	}
	return strings.Join(parts[:len(parts)-1], "/"), parts[len(parts)-1], nil
}

// Chunk partitions items into consecutive groups of at most size elements
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = len(items)
	}
	var groups [][]T
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		groups = append(groups, items[start:end])
	}
	return groups
}
