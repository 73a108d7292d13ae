package storage

// This file holds document encoding and the two write primitives: atomic
// create-if-absent for domain files and atomic replace for the marker.

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/en-o/codeshelf/pkg/types"
)

// tempPrefix marks in-flight writes. The watcher ignores these names.
const tempPrefix = ".codeshelf-"

// timestamp formats t the way every envelope stores it.
func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// encodeDocument wraps payload in a current-version envelope.
func encodeDocument(payload any, at time.Time) ([]byte, error) {
	doc := types.VersionedDocument[any]{
		Version:     types.CurrentVersion,
		LastUpdated: timestamp(at),
		Data:        payload,
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrSerialization, err)
	}
	return append(b, '\n'), nil
}

// ReadDocument reads and decodes a versioned document.
func ReadDocument[T any](path string) (types.VersionedDocument[T], error) {
	var doc types.VersionedDocument[T]
	b, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("%w: read %s: %w", types.ErrIO, path, err)
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return doc, fmt.Errorf("%w: decode %s: %w", types.ErrParse, path, err)
	}
	return doc, nil
}

// fileExists reports whether path exists. Errors other than "not exist" are
// returned so a permission problem is not mistaken for a missing file.
func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("%w: stat %s: %w", types.ErrIO, path, err)
}

// createDocument writes payload to path unless path already exists. It
// reports whether this call created the file.
func createDocument(path string, payload any, at time.Time) (bool, error) {
	content, err := encodeDocument(payload, at)
	if err != nil {
		return false, err
	}
	return createIfAbsent(path, content)
}

// createIfAbsent atomically creates path with content. The content is
// written to a temp file and hard-linked into place; link fails when the
// destination exists, so an existing file is never touched. Filesystems
// without hard links fall back to an existence check and rename.
func createIfAbsent(path string, content []byte) (bool, error) {
	exists, err := fileExists(path)
	if err != nil || exists {
		return false, err
	}

	tmpName, err := writeTemp(filepath.Dir(path), content)
	if err != nil {
		return false, err
	}
	defer os.Remove(tmpName)

	linkErr := os.Link(tmpName, path)
	if linkErr == nil {
		return true, nil
	}
	if errors.Is(linkErr, fs.ErrExist) {
		return false, nil
	}

	exists, err = fileExists(path)
	if err != nil || exists {
		return false, err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return false, fmt.Errorf("%w: create %s: %w", types.ErrIO, path, err)
	}
	return true, nil
}

// replaceFile atomically replaces path with content using the temp-file,
// fsync, rename pattern.
func replaceFile(path string, content []byte) error {
	tmpName, err := writeTemp(filepath.Dir(path), content)
	if err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replace %s: %w", types.ErrIO, path, err)
	}
	return nil
}

// writeTemp writes content to a new synced temp file in dir and returns its name.
func writeTemp(dir string, content []byte) (string, error) {
	tmp, err := os.CreateTemp(dir, tempPrefix+"*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file in %s: %w", types.ErrIO, dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: write temp file: %w", types.ErrIO, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: sync temp file: %w", types.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: close temp file: %w", types.ErrIO, err)
	}
	return tmpName, nil
}
