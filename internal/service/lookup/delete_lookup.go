package lookup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/mediacard-backend/internal/domain"
)

// Delete removes a lookup entity. Records that referenced it fall back to the
// seeded default row; genre and idol junction rows disappear with it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.NewValidationError("id", "required")
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.repo.Delete(txCtx, id); deleteErr != nil {
			return fmt.Errorf("delete %s: %w", s.kind, deleteErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "lookup deleted", slog.Int64("id", id))

	return nil
}
