// Package call is the catalog of recorded calls. Registration is purely a
// metadata operation: the catalog never verifies that bytes exist at a
// row's object key, and an uploaded object may never be registered. That
// decoupling is deliberate — a client may legally register before its
// upload finishes — so reconciliation, if ever wanted, belongs outside
// this package.
package call

import (
	"context"
	"errors"
	"time"
)

// Status is the processing state of a recorded call. Rows start at
// StatusUploaded; later transitions are driven by the analysis pipeline,
// not by this service.
type Status string

const (
	StatusUploaded   Status = "uploaded"
	StatusProcessing Status = "processing"
	StatusAnalyzed   Status = "analyzed"
	StatusFailed     Status = "failed"
)

// ErrWrite is returned when the underlying store rejects a catalog write.
var ErrWrite = errors.New("call catalog write failed")

// Call represents one recorded call under audit. DurationSec, Transcript,
// SentimentScore and Summary stay null until the downstream analysis
// pipeline fills them in.
type Call struct {
	ID               string    `json:"id"`
	CreatedAt        time.Time `json:"createdAt"`
	ObjectKey        string    `json:"objectKey"`
	OriginalFilename string    `json:"originalFilename"`
	Status           Status    `json:"status"`
	DurationSec      *int      `json:"durationSec"`
	Transcript       *string   `json:"transcript"`
	SentimentScore   *float64  `json:"sentimentScore"`
	Summary          *string   `json:"summary"`
}

// Repository is the persistence contract for the catalog. The Postgres
// implementation backs production; the in-memory one backs tests.
type Repository interface {
	// Insert stores a new call with status "uploaded" and returns the row
	// including store-assigned id and timestamp.
	Insert(ctx context.Context, objectKey, originalFilename string) (*Call, error)
	// List returns every call ordered by creation time, most recent first.
	List(ctx context.Context) ([]Call, error)
}
