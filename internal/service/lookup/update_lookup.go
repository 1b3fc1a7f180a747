package lookup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/mediacard-backend/internal/domain"
)

// Update applies a partial patch. When the patched key collides with another
// row the edited row is absorbed into it: the result carries the surviving
// row's id, which callers must not assume equals input.ID.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Lookup, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Lookup
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var updateErr error
		updated, updateErr = s.repo.Update(txCtx, input.ID, input.patch())
		if updateErr != nil {
			return fmt.Errorf("update %s: %w", s.kind, updateErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated.ID != input.ID {
		s.log.InfoContext(ctx, "lookup merged",
			slog.Int64("edited_id", input.ID),
			slog.Int64("surviving_id", updated.ID),
		)
	} else {
		s.log.InfoContext(ctx, "lookup updated", slog.Int64("id", updated.ID))
	}

	return updated, nil
}
