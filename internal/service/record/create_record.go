package record

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/mediacard-backend/internal/domain"
)

// Create inserts a record with its children and returns the assembled
// aggregate. Nested lookup candidates are resolved by natural key inside the
// same transaction. Creating an id that already exists returns the existing
// record untouched.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.RecordAggregate, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *domain.RecordAggregate
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		id, err := s.repo.Create(txCtx, input.params())
		if err != nil {
			return fmt.Errorf("create record: %w", err)
		}

		created, err = s.repo.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("reread record: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "record created",
		slog.String("record_id", created.ID),
		slog.String("creator", created.Creator),
	)

	return created, nil
}
