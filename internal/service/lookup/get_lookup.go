package lookup

import (
	"context"
	"fmt"

	"github.com/heartmarshall/mediacard-backend/internal/domain"
	"github.com/heartmarshall/mediacard-backend/internal/pagination"
)

// Get returns a single lookup entity by id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Lookup, error) {
	if id <= 0 {
		return nil, domain.NewValidationError("id", "required")
	}

	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.kind, err)
	}

	return l, nil
}

// List returns every entity of this kind, ordered by id.
func (s *Service) List(ctx context.Context) ([]domain.Lookup, error) {
	return s.Find(ctx, domain.LookupFilter{})
}

// Find returns every entity matching the filter, ordered by id.
func (s *Service) Find(ctx context.Context, filter domain.LookupFilter) ([]domain.Lookup, error) {
	result, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", s.kind, err)
	}

	return result, nil
}

// FindPage returns one page of entities matching the filter.
func (s *Service) FindPage(ctx context.Context, filter domain.LookupFilter, q pagination.Query) (pagination.Page[domain.Lookup], error) {
	page, err := s.repo.FindPage(ctx, filter, q)
	if err != nil {
		return pagination.Page[domain.Lookup]{}, fmt.Errorf("page %s: %w", s.kind, err)
	}

	return page, nil
}
