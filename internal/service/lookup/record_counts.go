package lookup

import (
	"context"
	"fmt"

	"github.com/heartmarshall/mediacard-backend/internal/domain"
)

// RecordCounts returns usage statistics: every entity of this kind paired
// with the number of records referencing it, most used first.
func (s *Service) RecordCounts(ctx context.Context) ([]domain.LookupCount, error) {
	counts, err := s.repo.RecordCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("record counts for %s: %w", s.kind, err)
	}

	return counts, nil
}
