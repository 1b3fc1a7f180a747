package record

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/mediacard-backend/internal/domain"
)

// Update overwrites a record's own fields and returns the re-assembled
// aggregate as seen inside the transaction.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.RecordAggregate, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.RecordAggregate
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var updateErr error
		updated, updateErr = s.repo.Update(txCtx, input.ID, input.params())
		if updateErr != nil {
			return fmt.Errorf("update record: %w", updateErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "record updated",
		slog.String("record_id", input.ID),
		slog.String("modified_by", input.ModifiedBy),
	)

	return updated, nil
}
