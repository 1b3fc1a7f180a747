package lookup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/mediacard-backend/internal/domain"
)

// Create resolves the input to an existing row with the same natural key or
// inserts a new one. The returned entity may therefore predate the call.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Lookup, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Lookup
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		id, err := s.repo.GetOrCreate(txCtx, input.candidate())
		if err != nil {
			return fmt.Errorf("get or create %s: %w", s.kind, err)
		}

		created, err = s.repo.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("reread %s: %w", s.kind, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "lookup created",
		slog.Int64("id", created.ID),
		slog.String("name", created.Name),
	)

	return created, nil
}
