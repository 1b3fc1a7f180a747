package lookup

import (
	"context"
	"sync"

	"github.com/heartmarshall/mediacard-backend/internal/domain"
	"github.com/heartmarshall/mediacard-backend/internal/pagination"
)

// lookupRepoMock is a hand-rolled mock of lookupRepo in the moq style.
type lookupRepoMock struct {
	GetByIDFunc      func(ctx context.Context, id int64) (*domain.Lookup, error)
	FindFunc         func(ctx context.Context, filter domain.LookupFilter) ([]domain.Lookup, error)
	FindPageFunc     func(ctx context.Context, filter domain.LookupFilter, q pagination.Query) (pagination.Page[domain.Lookup], error)
	GetOrCreateFunc  func(ctx context.Context, candidate domain.LookupCandidate) (int64, error)
	UpdateFunc       func(ctx context.Context, id int64, patch domain.LookupPatch) (*domain.Lookup, error)
	DeleteFunc       func(ctx context.Context, id int64) error
	RecordCountsFunc func(ctx context.Context) ([]domain.LookupCount, error)

	mu               sync.Mutex
	getOrCreateCalls []domain.LookupCandidate
	updateCalls      []int64
	deleteCalls      []int64
}

func (m *lookupRepoMock) GetByID(ctx context.Context, id int64) (*domain.Lookup, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *lookupRepoMock) Find(ctx context.Context, filter domain.LookupFilter) ([]domain.Lookup, error) {
	return m.FindFunc(ctx, filter)
}

func (m *lookupRepoMock) FindPage(ctx context.Context, filter domain.LookupFilter, q pagination.Query) (pagination.Page[domain.Lookup], error) {
	return m.FindPageFunc(ctx, filter, q)
}

func (m *lookupRepoMock) GetOrCreate(ctx context.Context, candidate domain.LookupCandidate) (int64, error) {
	m.mu.Lock()
	m.getOrCreateCalls = append(m.getOrCreateCalls, candidate)
	m.mu.Unlock()
	return m.GetOrCreateFunc(ctx, candidate)
}

func (m *lookupRepoMock) Update(ctx context.Context, id int64, patch domain.LookupPatch) (*domain.Lookup, error) {
	m.mu.Lock()
	m.updateCalls = append(m.updateCalls, id)
	m.mu.Unlock()
	return m.UpdateFunc(ctx, id, patch)
}

func (m *lookupRepoMock) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	m.deleteCalls = append(m.deleteCalls, id)
	m.mu.Unlock()
	return m.DeleteFunc(ctx, id)
}

func (m *lookupRepoMock) RecordCounts(ctx context.Context) ([]domain.LookupCount, error) {
	return m.RecordCountsFunc(ctx)
}

func (m *lookupRepoMock) GetOrCreateCalls() []domain.LookupCandidate {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getOrCreateCalls
}

func (m *lookupRepoMock) DeleteCalls() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteCalls
}

// txManagerMock is a mock of txManager.
type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	mu         sync.Mutex
	runInTxLen int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.runInTxLen++
	m.mu.Unlock()
	return m.RunInTxFunc(ctx, fn)
}

func (m *txManagerMock) RunInTxCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runInTxLen
}

// defaultTxMock returns a txManagerMock that simply calls the function with the same context.
func defaultTxMock() *txManagerMock {
	return &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	}
}
