package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
)

// Presigning is a pure signature computation; no network is involved, so
// fake static credentials are enough to exercise the backend.
func TestRemoteBackend_PresignedURLShape(t *testing.T) {
	b, err := NewRemoteBackend(remoteConfig())
	if err != nil {
		t.Fatalf("new remote backend: %v", err)
	}

	key := "calls/77777777-7777-7777-7777-777777777777.wav"
	dest, err := b.IssueUploadDestination(context.Background(), key, "audio/wav")
	if err != nil {
		t.Fatalf("issue destination: %v", err)
	}

	if dest.Kind != ModeRemote {
		t.Fatalf("expected remote kind, got %q", dest.Kind)
	}
	if dest.ExpiresInSeconds != 300 {
		t.Fatalf("expected 300s expiry, got %d", dest.ExpiresInSeconds)
	}
	if dest.EndpointPath != "" {
		t.Fatalf("remote destinations must not carry an endpoint path")
	}

	u, err := url.Parse(dest.URL)
	if err != nil {
		t.Fatalf("parse presigned url %q: %v", dest.URL, err)
	}
	if !strings.Contains(u.Host, "audit-recordings") && !strings.Contains(u.Path, "audit-recordings") {
		t.Fatalf("presigned url does not reference the bucket: %q", dest.URL)
	}
	if !strings.HasSuffix(u.Path, key) {
		t.Fatalf("presigned url path %q does not end with the object key", u.Path)
	}

	q := u.Query()
	if got := q.Get("X-Amz-Expires"); got != "300" {
		t.Fatalf("expected X-Amz-Expires=300, got %q", got)
	}
	// Content-Type must be part of the signature so the URL authorizes
	// exactly one content type.
	if signed := q.Get("X-Amz-SignedHeaders"); !strings.Contains(signed, "content-type") {
		t.Fatalf("content-type not bound into signature, signed headers: %q", signed)
	}
	if q.Get("X-Amz-Signature") == "" {
		t.Fatalf("presigned url carries no signature: %q", dest.URL)
	}
}

func TestRemoteBackend_DistinctKeysDistinctURLs(t *testing.T) {
	b, err := NewRemoteBackend(remoteConfig())
	if err != nil {
		t.Fatalf("new remote backend: %v", err)
	}

	d1, err := b.IssueUploadDestination(context.Background(), "calls/a.wav", "audio/wav")
	if err != nil {
		t.Fatalf("issue first destination: %v", err)
	}
	d2, err := b.IssueUploadDestination(context.Background(), "calls/b.wav", "audio/wav")
	if err != nil {
		t.Fatalf("issue second destination: %v", err)
	}
	if d1.URL == d2.URL {
		t.Fatalf("distinct keys produced identical urls")
	}
}
