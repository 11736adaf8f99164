package call

import (
	"context"
	"fmt"
)

// Service contains business logic for the call catalog.
type Service struct {
	repo Repository
}

// NewService creates a new call Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register records a call for an object key the client reports as uploaded.
// The key is taken on trust; see the package comment for why there is no
// existence check against storage.
func (s *Service) Register(ctx context.Context, objectKey, originalFilename string) (*Call, error) {
	c, err := s.repo.Insert(ctx, objectKey, originalFilename)
	if err != nil {
		return nil, fmt.Errorf("register call: %w", err)
	}
	return c, nil
}

// List returns all registered calls, most recent first. An empty catalog
// yields an empty slice, not an error.
func (s *Service) List(ctx context.Context) ([]Call, error) {
	calls, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list calls: %w", err)
	}
	return calls, nil
}
