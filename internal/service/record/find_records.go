package record

import (
	"context"
	"fmt"

	"github.com/heartmarshall/mediacard-backend/internal/domain"
	"github.com/heartmarshall/mediacard-backend/internal/pagination"
)

// Find returns assembled aggregates for every record matching the filter,
// ordered by id.
func (s *Service) Find(ctx context.Context, filter domain.RecordFilter) ([]domain.RecordAggregate, error) {
	result, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find records: %w", err)
	}

	return result, nil
}

// FindPage returns one page of assembled aggregates. The full matching set is
// loaded and sliced in memory; record counts are small enough that pushing
// LIMIT/OFFSET into SQL has not been worth the extra assembly plumbing.
func (s *Service) FindPage(ctx context.Context, filter domain.RecordFilter, q pagination.Query) (pagination.Page[domain.RecordAggregate], error) {
	all, err := s.repo.Find(ctx, filter)
	if err != nil {
		return pagination.Page[domain.RecordAggregate]{}, fmt.Errorf("page records: %w", err)
	}

	return pagination.Paginate(all, q), nil
}
