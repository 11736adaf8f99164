package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/spandan3/sentiment-flow/internal/config"
)

// presignTTL is how long an issued upload URL stays valid.
const presignTTL = 300 * time.Second

// RemoteBackend issues time-limited presigned PUT URLs against an
// S3-compatible store. The client uploads directly to the store with the
// URL; this service never proxies the bytes and never touches disk.
type RemoteBackend struct {
	client *minio.Client
	bucket string
	ttl    time.Duration
}

// NewRemoteBackend creates the S3 client from static credentials. Works
// against AWS or any S3-compatible endpoint (MinIO, ArvanCloud) — only the
// endpoint and region change. No network call is made here; signing is a
// local computation.
func NewRemoteBackend(cfg *config.Config) (*RemoteBackend, error) {
	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		Secure: cfg.S3UseSSL,
		Region: cfg.AWSRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}

	return &RemoteBackend{client: client, bucket: cfg.S3Bucket, ttl: presignTTL}, nil
}

// IssueUploadDestination returns a presigned PUT URL binding the bucket,
// object key and Content-Type, so the holder can upload exactly that object
// with exactly that content type within the TTL window. Signing errors are
// returned as-is; the Selector maps them to ErrUnavailable.
func (b *RemoteBackend) IssueUploadDestination(ctx context.Context, objectKey, contentType string) (*UploadDestination, error) {
	signedHeaders := http.Header{}
	if contentType != "" {
		signedHeaders.Set("Content-Type", contentType)
	}

	u, err := b.client.PresignHeader(ctx, http.MethodPut, b.bucket, objectKey, b.ttl, url.Values{}, signedHeaders)
	if err != nil {
		return nil, fmt.Errorf("presign put %q: %w", objectKey, err)
	}

	return &UploadDestination{
		Kind:             ModeRemote,
		URL:              u.String(),
		ExpiresInSeconds: int64(b.ttl / time.Second),
	}, nil
}
