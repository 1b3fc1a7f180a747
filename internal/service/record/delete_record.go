package record

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/mediacard-backend/internal/domain"
)

// Delete removes a record together with its junction rows and links.
// The lookup entities it referenced are left in place.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.NewValidationError("id", "required")
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.repo.Delete(txCtx, id); deleteErr != nil {
			return fmt.Errorf("delete record: %w", deleteErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "record deleted", slog.String("record_id", id))

	return nil
}
