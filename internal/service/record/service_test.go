package record

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/heartmarshall/mediacard-backend/internal/domain"
	"github.com/heartmarshall/mediacard-backend/internal/pagination"
)

func newTestService(repo *recordRepoMock, tx *txManagerMock) *Service {
	return NewService(slog.Default(), repo, tx)
}

func int64Ptr(v int64) *int64 { return &v }

func aggregate(id string) *domain.RecordAggregate {
	return &domain.RecordAggregate{
		Record: domain.Record{
			ID:         id,
			Title:      "Title " + id,
			DirectorID: 1, StudioID: 1, LabelID: 1, SeriesID: 1,
			Creator: "tester",
		},
		Director: domain.Lookup{ID: 1, Name: "Unknown Director"},
		Studio:   domain.Lookup{ID: 1, Name: "Unknown Studio"},
		Label:    domain.Lookup{ID: 1, Name: "Unknown Label"},
		Series:   domain.Lookup{ID: 1, Name: "Unknown Series"},
		Genres:   []domain.GenreTag{},
		Idols:    []domain.IdolCredit{},
		Links:    []domain.Link{},
	}
}

func validUpdateInput(id string) UpdateInput {
	return UpdateInput{
		ID:         id,
		Title:      "Updated",
		Date:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DirectorID: 1, StudioID: 1, LabelID: 1, SeriesID: 1,
		ModifiedBy: "editor",
	}
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestCreate_Success(t *testing.T) {
	t.Parallel()

	repo := &recordRepoMock{
		CreateFunc: func(ctx context.Context, p domain.RecordCreateParams) (string, error) {
			return p.ID, nil
		},
		GetByIDFunc: func(ctx context.Context, id string) (*domain.RecordAggregate, error) {
			return aggregate(id), nil
		},
	}
	tx := defaultTxMock()
	svc := newTestService(repo, tx)

	got, err := svc.Create(context.Background(), CreateInput{
		ID:       "REC-1",
		Title:    "A Film",
		Director: &CandidateInput{Name: "Kurosawa"},
		Genres:   []CandidateInput{{Name: "drama"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.ID != "REC-1" {
		t.Errorf("ID: got %q", got.ID)
	}
	if tx.RunInTxCallCount() != 1 {
		t.Errorf("RunInTx calls: got %d, want 1", tx.RunInTxCallCount())
	}

	calls := repo.CreateCalls()
	if len(calls) != 1 {
		t.Fatalf("Create calls: got %d, want 1", len(calls))
	}
	if calls[0].Director == nil || calls[0].Director.Name != "Kurosawa" {
		t.Errorf("director candidate not forwarded: %+v", calls[0].Director)
	}
	if len(calls[0].Genres) != 1 || calls[0].Genres[0].Name != "drama" {
		t.Errorf("genre candidates not forwarded: %+v", calls[0].Genres)
	}
}

func TestCreate_BlankIDRejected(t *testing.T) {
	t.Parallel()

	svc := newTestService(&recordRepoMock{}, defaultTxMock())

	_, err := svc.Create(context.Background(), CreateInput{ID: "  "})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got: %v", err)
	}
}

func TestCreate_BlankCandidateNameRejected(t *testing.T) {
	t.Parallel()

	svc := newTestService(&recordRepoMock{}, defaultTxMock())

	_, err := svc.Create(context.Background(), CreateInput{
		ID:       "REC-1",
		Director: &CandidateInput{Name: " "},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got: %v", err)
	}
}

func TestCreate_RereadHappensInSameTx(t *testing.T) {
	t.Parallel()

	type ctxKey struct{}
	var rereadCtxValue any

	repo := &recordRepoMock{
		CreateFunc: func(ctx context.Context, p domain.RecordCreateParams) (string, error) {
			return p.ID, nil
		},
		GetByIDFunc: func(ctx context.Context, id string) (*domain.RecordAggregate, error) {
			rereadCtxValue = ctx.Value(ctxKey{})
			return aggregate(id), nil
		},
	}
	tx := &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(context.Context) error) error {
			return fn(context.WithValue(ctx, ctxKey{}, "tx"))
		},
	}
	svc := newTestService(repo, tx)

	if _, err := svc.Create(context.Background(), CreateInput{ID: "REC-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rereadCtxValue != "tx" {
		t.Error("reread must run on the transaction context")
	}
}

func TestCreate_RepoErrorPropagates(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("insert failed")
	repo := &recordRepoMock{
		CreateFunc: func(ctx context.Context, p domain.RecordCreateParams) (string, error) {
			return "", sentinel
		},
	}
	svc := newTestService(repo, defaultTxMock())

	_, err := svc.Create(context.Background(), CreateInput{ID: "REC-1"})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Get tests
// ---------------------------------------------------------------------------

func TestGet_Success(t *testing.T) {
	t.Parallel()

	repo := &recordRepoMock{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.RecordAggregate, error) {
			return aggregate(id), nil
		},
	}
	svc := newTestService(repo, defaultTxMock())

	got, err := svc.Get(context.Background(), "REC-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "REC-1" {
		t.Errorf("ID: got %q", got.ID)
	}
}

func TestGet_BlankIDRejected(t *testing.T) {
	t.Parallel()

	svc := newTestService(&recordRepoMock{}, defaultTxMock())

	_, err := svc.Get(context.Background(), "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got: %v", err)
	}
}

func TestGet_IntegrityFaultPassesThrough(t *testing.T) {
	t.Parallel()

	repo := &recordRepoMock{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.RecordAggregate, error) {
			return nil, fmt.Errorf("record %s: director 9 unresolved: %w", id, domain.ErrIntegrity)
		},
	}
	svc := newTestService(repo, defaultTxMock())

	_, err := svc.Get(context.Background(), "REC-1")
	if !errors.Is(err, domain.ErrIntegrity) {
		t.Fatalf("expected integrity error, got: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Find / FindPage tests
// ---------------------------------------------------------------------------

func TestFind_ForwardsFilter(t *testing.T) {
	t.Parallel()

	var gotFilter domain.RecordFilter
	repo := &recordRepoMock{
		FindFunc: func(ctx context.Context, filter domain.RecordFilter) ([]domain.RecordAggregate, error) {
			gotFilter = filter
			return []domain.RecordAggregate{*aggregate("REC-1")}, nil
		},
	}
	svc := newTestService(repo, defaultTxMock())

	result, err := svc.Find(context.Background(), domain.RecordFilter{DirectorID: int64Ptr(7)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 {
		t.Errorf("expected 1 result, got %d", len(result))
	}
	if gotFilter.DirectorID == nil || *gotFilter.DirectorID != 7 {
		t.Errorf("filter not forwarded: %+v", gotFilter)
	}
}

func TestFindPage_SlicesInMemory(t *testing.T) {
	t.Parallel()

	all := make([]domain.RecordAggregate, 5)
	for i := range all {
		all[i] = *aggregate(fmt.Sprintf("REC-%d", i))
	}
	repo := &recordRepoMock{
		FindFunc: func(ctx context.Context, filter domain.RecordFilter) ([]domain.RecordAggregate, error) {
			return all, nil
		},
	}
	svc := newTestService(repo, defaultTxMock())

	limit, offset := int64(2), int64(2)
	page, err := svc.FindPage(context.Background(), domain.RecordFilter{}, pagination.Query{Limit: &limit, Offset: &offset})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.Count != 5 {
		t.Errorf("Count: got %d, want 5", page.Count)
	}
	if len(page.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(page.Results))
	}
	if page.Results[0].ID != "REC-2" || page.Results[1].ID != "REC-3" {
		t.Errorf("unexpected slice: %s, %s", page.Results[0].ID, page.Results[1].ID)
	}
	if page.Next == nil || page.Previous == nil {
		t.Error("middle page must have both fragments")
	}
}

// ---------------------------------------------------------------------------
// Update tests
// ---------------------------------------------------------------------------

func TestUpdate_Success(t *testing.T) {
	t.Parallel()

	repo := &recordRepoMock{
		UpdateFunc: func(ctx context.Context, id string, p domain.RecordUpdateParams) (*domain.RecordAggregate, error) {
			agg := aggregate(id)
			agg.Title = p.Title
			return agg, nil
		},
	}
	tx := defaultTxMock()
	svc := newTestService(repo, tx)

	got, err := svc.Update(context.Background(), validUpdateInput("REC-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Updated" {
		t.Errorf("Title: got %q", got.Title)
	}
	if tx.RunInTxCallCount() != 1 {
		t.Errorf("RunInTx calls: got %d, want 1", tx.RunInTxCallCount())
	}
}

func TestUpdate_MissingForeignKeyRejected(t *testing.T) {
	t.Parallel()

	svc := newTestService(&recordRepoMock{}, defaultTxMock())

	input := validUpdateInput("REC-1")
	input.StudioID = 0
	_, err := svc.Update(context.Background(), input)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got: %v", err)
	}
}

func TestUpdate_NotFoundPassesThrough(t *testing.T) {
	t.Parallel()

	repo := &recordRepoMock{
		UpdateFunc: func(ctx context.Context, id string, p domain.RecordUpdateParams) (*domain.RecordAggregate, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestService(repo, defaultTxMock())

	_, err := svc.Update(context.Background(), validUpdateInput("REC-404"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Delete tests
// ---------------------------------------------------------------------------

func TestDelete_Success(t *testing.T) {
	t.Parallel()

	repo := &recordRepoMock{
		DeleteFunc: func(ctx context.Context, id string) error {
			return nil
		},
	}
	svc := newTestService(repo, defaultTxMock())

	if err := svc.Delete(context.Background(), "REC-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls := repo.DeleteCalls(); len(calls) != 1 || calls[0] != "REC-1" {
		t.Errorf("Delete calls: %v", calls)
	}
}

func TestDelete_BlankIDRejected(t *testing.T) {
	t.Parallel()

	svc := newTestService(&recordRepoMock{}, defaultTxMock())

	err := svc.Delete(context.Background(), " ")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got: %v", err)
	}
}
