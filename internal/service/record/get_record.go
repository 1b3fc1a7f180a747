package record

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/mediacard-backend/internal/domain"
)

// Get returns the fully assembled aggregate for one record.
func (s *Service) Get(ctx context.Context, id string) (*domain.RecordAggregate, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("id", "required")
	}

	agg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}

	return agg, nil
}
