package record

import (
	"context"
	"sync"

	"github.com/heartmarshall/mediacard-backend/internal/domain"
)

// recordRepoMock is a hand-rolled mock of recordRepo in the moq style.
type recordRepoMock struct {
	GetByIDFunc func(ctx context.Context, id string) (*domain.RecordAggregate, error)
	FindFunc    func(ctx context.Context, filter domain.RecordFilter) ([]domain.RecordAggregate, error)
	CreateFunc  func(ctx context.Context, p domain.RecordCreateParams) (string, error)
	UpdateFunc  func(ctx context.Context, id string, p domain.RecordUpdateParams) (*domain.RecordAggregate, error)
	DeleteFunc  func(ctx context.Context, id string) error

	mu          sync.Mutex
	createCalls []domain.RecordCreateParams
	deleteCalls []string
}

func (m *recordRepoMock) GetByID(ctx context.Context, id string) (*domain.RecordAggregate, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *recordRepoMock) Find(ctx context.Context, filter domain.RecordFilter) ([]domain.RecordAggregate, error) {
	return m.FindFunc(ctx, filter)
}

func (m *recordRepoMock) Create(ctx context.Context, p domain.RecordCreateParams) (string, error) {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, p)
	m.mu.Unlock()
	return m.CreateFunc(ctx, p)
}

func (m *recordRepoMock) Update(ctx context.Context, id string, p domain.RecordUpdateParams) (*domain.RecordAggregate, error) {
	return m.UpdateFunc(ctx, id, p)
}

func (m *recordRepoMock) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	m.deleteCalls = append(m.deleteCalls, id)
	m.mu.Unlock()
	return m.DeleteFunc(ctx, id)
}

func (m *recordRepoMock) CreateCalls() []domain.RecordCreateParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

func (m *recordRepoMock) DeleteCalls() []string {
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
