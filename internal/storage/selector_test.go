package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/spandan3/sentiment-flow/internal/config"
)

func remoteConfig() *config.Config {
	return &config.Config{
		AWSAccessKeyID:     "AKIAFAKEFAKEFAKE",
		AWSSecretAccessKey: "fake-secret",
		AWSRegion:          "us-east-1",
		S3Bucket:           "audit-recordings",
		S3Endpoint:         "s3.amazonaws.com",
		S3UseSSL:           true,
	}
}

func TestNewSelector_ModeDecision(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(t *testing.T) *config.Config
		want Mode
	}{
		{
			name: "all remote credentials present",
			cfg:  func(t *testing.T) *config.Config { return remoteConfig() },
			want: ModeRemote,
		},
		{
			name: "missing access key",
			cfg: func(t *testing.T) *config.Config {
				c := remoteConfig()
				c.AWSAccessKeyID = ""
				c.LocalStoragePath = t.TempDir()
				return c
			},
			want: ModeLocal,
		},
		{
			name: "missing secret",
			cfg: func(t *testing.T) *config.Config {
				c := remoteConfig()
				c.AWSSecretAccessKey = ""
				c.LocalStoragePath = t.TempDir()
				return c
			},
			want: ModeLocal,
		},
		{
			name: "missing bucket",
			cfg: func(t *testing.T) *config.Config {
				c := remoteConfig()
				c.S3Bucket = ""
				c.LocalStoragePath = t.TempDir()
				return c
			},
			want: ModeLocal,
		},
		{
			name: "nothing configured",
			cfg: func(t *testing.T) *config.Config {
				return &config.Config{LocalStoragePath: t.TempDir()}
			},
			want: ModeLocal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := NewSelector(tt.cfg(t))
			if err != nil {
				t.Fatalf("new selector: %v", err)
			}
			if sel.Mode() != tt.want {
				t.Fatalf("expected mode %q, got %q", tt.want, sel.Mode())
			}
		})
	}
}

func TestSelector_DecisionIsHeldForProcessLifetime(t *testing.T) {
	cfg := remoteConfig()
	sel, err := NewSelector(cfg)
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	// Mutating the config after construction must not move the selector.
	cfg.AWSAccessKeyID = ""
	cfg.S3Bucket = ""

	if sel.Mode() != ModeRemote {
		t.Fatalf("selector re-evaluated its decision: got %q", sel.Mode())
	}
}

func TestSelector_LocalAccessor(t *testing.T) {
	localSel, err := NewSelector(&config.Config{LocalStoragePath: t.TempDir()})
	if err != nil {
		t.Fatalf("new local selector: %v", err)
	}
	if _, ok := localSel.Local(); !ok {
		t.Fatalf("local selector must expose its local backend")
	}

	remoteSel, err := NewSelector(remoteConfig())
	if err != nil {
		t.Fatalf("new remote selector: %v", err)
	}
	if _, ok := remoteSel.Local(); ok {
		t.Fatalf("remote selector must not expose a local backend")
	}
}

type failingBackend struct{}

func (failingBackend) IssueUploadDestination(context.Context, string, string) (*UploadDestination, error) {
	return nil, fmt.Errorf("signing blew up")
}

func TestSelector_BackendFailureSurfacesAsUnavailable(t *testing.T) {
	sel := &Selector{mode: ModeRemote, backend: failingBackend{}}

	_, err := sel.IssueUploadDestination(context.Background(), "calls/x.wav", "audio/wav")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
