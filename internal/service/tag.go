package service

import (
	"context"
	"fmt"

	"github.com/conduitapp/conduit-server/internal/store"
)

// TagService exposes the distinct set of tags across all articles.
type TagService struct {
	store *store.Store
}

// NewTagService creates a new tag service.
func NewTagService(store *store.Store) *TagService {
	return &TagService{store: store}
}

// List returns the union of all articles' tag lists.
func (s *TagService) List(ctx context.Context) ([]string, error) {
	tags, err := s.store.DistinctTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}
