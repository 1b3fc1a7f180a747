// Package record provides the application service for media card records:
// the central entity assembled from its four resolved lookups, genre and idol
// associations, and download links.
package record

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/mediacard-backend/internal/domain"
)

type recordRepo interface {
	GetByID(ctx context.Context, id string) (*domain.RecordAggregate, error)
	Find(ctx context.Context, filter domain.RecordFilter) ([]domain.RecordAggregate, error)
	Create(ctx context.Context, p domain.RecordCreateParams) (string, error)
	Update(ctx context.Context, id string, p domain.RecordUpdateParams) (*domain.RecordAggregate, error)
	Delete(ctx context.Context, id string) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides record management operations.
type Service struct {
	repo recordRepo
	tx   txManager
	log  *slog.Logger
}

// NewService creates a new record service.
func NewService(log *slog.Logger, repo recordRepo, tx txManager) *Service {
	return &Service{
		repo: repo,
		tx:   tx,
		log:  log.With("service", "record"),
	}
}
