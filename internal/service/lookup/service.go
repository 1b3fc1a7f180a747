// Package lookup provides the application service for the six shared
// reference entities. One Service instance is constructed per kind; all six
// share the behavior, differing only in the repository they wrap.
package lookup

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/mediacard-backend/internal/domain"
	"github.com/heartmarshall/mediacard-backend/internal/pagination"
)

type lookupRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Lookup, error)
	Find(ctx context.Context, filter domain.LookupFilter) ([]domain.Lookup, error)
	FindPage(ctx context.Context, filter domain.LookupFilter, q pagination.Query) (pagination.Page[domain.Lookup], error)
	GetOrCreate(ctx context.Context, candidate domain.LookupCandidate) (int64, error)
	Update(ctx context.Context, id int64, patch domain.LookupPatch) (*domain.Lookup, error)
	Delete(ctx context.Context, id int64) error
	RecordCounts(ctx context.Context) ([]domain.LookupCount, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides lookup management operations for one kind.
type Service struct {
	kind domain.LookupKind
	repo lookupRepo
	tx   txManager
	log  *slog.Logger
}

// NewService creates a lookup service for the given kind.
func NewService(log *slog.Logger, kind domain.LookupKind, repo lookupRepo, tx txManager) *Service {
	return &Service{
		kind: kind,
		repo: repo,
		tx:   tx,
		log:  log.With("service", string(kind)),
	}
}

// Kind returns the lookup kind this service manages.
func (s *Service) Kind() domain.LookupKind {
	return s.kind
}
