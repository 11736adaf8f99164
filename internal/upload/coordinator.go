// Package upload mints object keys and hands out upload destinations.
package upload

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/spandan3/sentiment-flow/internal/storage"
)

// Coordinator mints a collision-resistant object key for each upload request
// and asks the storage selector for a destination.
type Coordinator struct {
	selector *storage.Selector
}

// NewCoordinator creates a new upload Coordinator.
func NewCoordinator(selector *storage.Selector) *Coordinator {
	return &Coordinator{selector: selector}
}

// RequestUpload mints a fresh object key from the client-supplied filename
// and returns it with a destination from the active backend. File contents
// are never inspected and content types are passed through unvalidated. A
// key minted for a failed destination request is simply abandoned — keys
// are cheap and never reused.
func (c *Coordinator) RequestUpload(ctx context.Context, filename, contentType string) (string, *storage.UploadDestination, error) {
	objectKey := mintObjectKey(filename)

	dest, err := c.selector.IssueUploadDestination(ctx, objectKey, contentType)
	if err != nil {
		return "", nil, err
	}
	return objectKey, dest, nil
}

// mintObjectKey composes calls/<uuid>[.<ext>], where ext is the substring
// after the last dot of the filename (none if the filename has no dot or
// ends with one). The 128-bit random UUID makes collisions negligible over
// the catalog's lifetime.
func mintObjectKey(filename string) string {
	ext := ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = filename[i+1:]
	}

	key := "calls/" + uuid.NewString()
	if ext != "" {
		key += "." + ext
	}
	return key
}
