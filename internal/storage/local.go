package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// localUploadRoute is where the API mounts the server-mediated upload
// handler; the issued endpoint path is this prefix plus the object key.
const localUploadRoute = "/uploads/local/"

// LocalBackend emulates the upload contract when no remote store is
// configured: the client POSTs the bytes to this service, which writes them
// under a storage root. The on-disk layout mirrors the object key exactly
// (<root>/calls/<token>[.<ext>]), so files stay interoperable across
// restarts and reimplementations.
type LocalBackend struct {
	root string
}

// NewLocalBackend ensures the storage root exists and returns the backend.
// Directory creation is idempotent.
func NewLocalBackend(root string) (*LocalBackend, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root %q: %w", root, err)
	}
	return &LocalBackend{root: root}, nil
}

// IssueUploadDestination returns the server-local route the client must
// POST the raw bytes to. Local endpoints carry no expiry; they are valid
// for the lifetime of the process.
func (b *LocalBackend) IssueUploadDestination(_ context.Context, objectKey, _ string) (*UploadDestination, error) {
	if _, err := b.PathFor(objectKey); err != nil {
		return nil, err
	}
	return &UploadDestination{
		Kind:         ModeLocal,
		EndpointPath: localUploadRoute + objectKey,
	}, nil
}

// PathFor derives the on-disk location for an object key. The derivation is
// pure and injective: the same key always maps to the same path and
// distinct keys never collide. Keys that would escape the storage root are
// rejected.
func (b *LocalBackend) PathFor(objectKey string) (string, error) {
	if objectKey == "" {
		return "", fmt.Errorf("empty object key")
	}
	rel := filepath.FromSlash(objectKey)
	if filepath.IsAbs(rel) || rel != filepath.Clean(rel) || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid object key %q", objectKey)
	}
	return filepath.Join(b.root, rel), nil
}

// Persist writes the bytes verbatim to the path derived from objectKey,
// creating any missing parent directories first. An existing object at the
// same path is overwritten (last-write-wins, no versioning). I/O failures
// surface as ErrPersist.
func (b *LocalBackend) Persist(objectKey string, body io.Reader) (string, error) {
	path, err := b.PathFor(objectKey)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("%w: create parent dirs for %q: %v", ErrPersist, objectKey, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: create %q: %v", ErrPersist, path, err)
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return "", fmt.Errorf("%w: write %q: %v", ErrPersist, path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: close %q: %v", ErrPersist, path, err)
	}

	return path, nil
}
