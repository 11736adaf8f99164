// Package storage presents a single upload contract over two backends:
// presigned URLs against an S3-compatible object store, and a local-disk
// fallback where the client uploads through this service. The backend is
// chosen once at startup from configuration and never re-evaluated; the
// Selector routes every request to the chosen backend and never falls back
// to the other one on failure.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spandan3/sentiment-flow/internal/config"
)

// Mode identifies the active storage backend for the process.
type Mode string

const (
	ModeRemote Mode = "remote"
	ModeLocal  Mode = "local"
)

// ErrUnavailable is returned when the selected backend cannot produce an
// upload destination (signing failure, misconfiguration).
var ErrUnavailable = errors.New("storage backend unavailable")

// ErrPersist is returned when local-mode byte persistence fails.
var ErrPersist = errors.New("storage persist failed")

// UploadDestination describes where a client must send its bytes.
// Exactly one of the two shapes is populated, discriminated by Kind:
// remote carries a presigned URL with an expiry, local carries a
// server-relative endpoint path with no expiry.
type UploadDestination struct {
	Kind             Mode   `json:"kind"`
	URL              string `json:"url,omitempty"`
	ExpiresInSeconds int64  `json:"expiresInSeconds,omitempty"`
	EndpointPath     string `json:"endpointPath,omitempty"`
}

// UploadURL returns the single URL/path the client should PUT or POST to,
// regardless of backend.
func (d *UploadDestination) UploadURL() string {
	if d.Kind == ModeRemote {
		return d.URL
	}
	return d.EndpointPath
}

// Backend produces an upload destination for a logical object key.
type Backend interface {
	IssueUploadDestination(ctx context.Context, objectKey, contentType string) (*UploadDestination, error)
}

// Selector holds the process-wide backend decision. It is immutable after
// construction and safe for unsynchronized concurrent reads.
type Selector struct {
	mode    Mode
	backend Backend
	local   *LocalBackend // non-nil only in local mode
}

// NewSelector decides the storage mode from configuration: remote if all
// three remote-store credentials are present, local otherwise. The decision
// is made exactly once, here.
func NewSelector(cfg *config.Config) (*Selector, error) {
	if cfg.HasRemoteStorage() {
		remote, err := NewRemoteBackend(cfg)
		if err != nil {
			return nil, fmt.Errorf("init remote backend: %w", err)
		}
		log.Printf("storage: remote mode (bucket %q)", cfg.S3Bucket)
		return &Selector{mode: ModeRemote, backend: remote}, nil
	}

	local, err := NewLocalBackend(cfg.LocalStoragePath)
	if err != nil {
		return nil, fmt.Errorf("init local backend: %w", err)
	}
	log.Printf("storage: local mode (root %q)", cfg.LocalStoragePath)
	return &Selector{mode: ModeLocal, backend: local, local: local}, nil
}

// Mode returns the cached backend decision. Pure read, used for diagnostics.
func (s *Selector) Mode() Mode {
	return s.mode
}

// IssueUploadDestination delegates to the active backend. Backend failures
// surface as ErrUnavailable; there is no silent downgrade to the other
// backend and no retry at this layer.
func (s *Selector) IssueUploadDestination(ctx context.Context, objectKey, contentType string) (*UploadDestination, error) {
	dest, err := s.backend.IssueUploadDestination(ctx, objectKey, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return dest, nil
}

// Local returns the local backend when the process runs in local mode.
// Remote mode has no server-mediated upload path, so ok is false there.
func (s *Selector) Local() (*LocalBackend, bool) {
	return s.local, s.local != nil
}
