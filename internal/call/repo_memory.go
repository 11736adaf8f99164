package call

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is a simple in-memory catalog for tests and early
// development. Mirrors the Postgres implementation's semantics: assigned
// id and timestamp, insertion with status "uploaded", listing most recent
// first.
type MemoryRepository struct {
	mu    sync.Mutex
	calls []Call

	// InsertErr, when set, is returned by Insert to simulate a store that
	// rejects writes.
	InsertErr error
}

// NewMemoryRepository creates an empty in-memory catalog.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Insert(_ context.Context, objectKey, originalFilename string) (*Call, error) {
	if r.InsertErr != nil {
		return nil, r.InsertErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c := Call{
		ID:               uuid.NewString(),
		CreatedAt:        time.Now().UTC(),
		ObjectKey:        objectKey,
		OriginalFilename: originalFilename,
		Status:           StatusUploaded,
	}
	// Timestamps from a fast clock can tie; break ties by insertion order
	// the way the DB index does not have to.
	if n := len(r.calls); n > 0 && !c.CreatedAt.After(r.calls[n-1].CreatedAt) {
		c.CreatedAt = r.calls[n-1].CreatedAt.Add(time.Microsecond)
	}
	r.calls = append(r.calls, c)
	return &c, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]Call, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
