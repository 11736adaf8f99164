package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPathFor_DeterministicAndInjective(t *testing.T) {
	b, err := NewLocalBackend(t.TempDir())
	if err != nil {
		t.Fatalf("new local backend: %v", err)
	}

	keys := []string{
		"calls/11111111-1111-1111-1111-111111111111.wav",
		"calls/22222222-2222-2222-2222-222222222222.wav",
		"calls/22222222-2222-2222-2222-222222222222.mp3",
		"calls/33333333-3333-3333-3333-333333333333",
	}

	seen := map[string]string{}
	for _, k := range keys {
		p1, err := b.PathFor(k)
		if err != nil {
			t.Fatalf("PathFor(%q): %v", k, err)
		}
		p2, err := b.PathFor(k)
		if err != nil {
			t.Fatalf("PathFor(%q) second call: %v", k, err)
		}
		if p1 != p2 {
			t.Fatalf("derivation not deterministic for %q: %q vs %q", k, p1, p2)
		}
		if prev, ok := seen[p1]; ok {
			t.Fatalf("keys %q and %q collide on path %q", prev, k, p1)
		}
		seen[p1] = k
	}
}

func TestPathFor_MirrorsObjectKey(t *testing.T) {
	root := t.TempDir()
	b, err := NewLocalBackend(root)
	if err != nil {
		t.Fatalf("new local backend: %v", err)
	}

	p, err := b.PathFor("calls/abc.wav")
	if err != nil {
		t.Fatalf("PathFor: %v", err)
	}
	if want := filepath.Join(root, "calls", "abc.wav"); p != want {
		t.Fatalf("expected %q, got %q", want, p)
	}
}

func TestPathFor_RejectsEscapingKeys(t *testing.T) {
	b, err := NewLocalBackend(t.TempDir())
	if err != nil {
		t.Fatalf("new local backend: %v", err)
	}

	for _, k := range []string{"", "../etc/passwd", "calls/../../x", "/abs/path"} {
		if _, err := b.PathFor(k); err == nil {
			t.Fatalf("expected error for key %q", k)
		}
	}
}

func TestPersist_WritesBytesVerbatim(t *testing.T) {
	root := t.TempDir()
	b, err := NewLocalBackend(root)
	if err != nil {
		t.Fatalf("new local backend: %v", err)
	}

	body := []byte("RIFF....WAVEfmt ")
	key := "calls/44444444-4444-4444-4444-444444444444.wav"

	path, err := b.Persist(key, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("persist: %v", err)
	}
	if want := filepath.Join(root, "calls", "44444444-4444-4444-4444-444444444444.wav"); path != want {
		t.Fatalf("expected path %q, got %q", want, path)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Equal(got, body) {
		t.Fatalf("stored bytes differ: got %q want %q", got, body)
	}
}

func TestPersist_OverwritesExistingObject(t *testing.T) {
	b, err := NewLocalBackend(t.TempDir())
	if err != nil {
		t.Fatalf("new local backend: %v", err)
	}

	key := "calls/55555555-5555-5555-5555-555555555555.wav"
	if _, err := b.Persist(key, strings.NewReader("first version, longer payload")); err != nil {
		t.Fatalf("first persist: %v", err)
	}
	path, err := b.Persist(key, strings.NewReader("second"))
	if err != nil {
		t.Fatalf("second persist: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "second" {
		t.Fatalf("expected last write to win, got %q", got)
	}
}

func TestIssueUploadDestination_LocalEndpointPath(t *testing.T) {
	b, err := NewLocalBackend(t.TempDir())
	if err != nil {
		t.Fatalf("new local backend: %v", err)
	}

	key := "calls/66666666-6666-6666-6666-666666666666.wav"
	dest, err := b.IssueUploadDestination(context.Background(), key, "audio/wav")
	if err != nil {
		t.Fatalf("issue destination: %v", err)
	}
	if dest.Kind != ModeLocal {
		t.Fatalf("expected local kind, got %q", dest.Kind)
	}
	if dest.EndpointPath != "/uploads/local/"+key {
		t.Fatalf("unexpected endpoint path %q", dest.EndpointPath)
	}
	if dest.ExpiresInSeconds != 0 {
		t.Fatalf("local destinations must not expire, got %d", dest.ExpiresInSeconds)
	}
	if dest.UploadURL() != dest.EndpointPath {
		t.Fatalf("UploadURL should return the endpoint path in local mode")
	}
}
