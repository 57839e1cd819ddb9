package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/iho/txpulse/internal/domain"
)

// MockTransactionRepository is an in-memory mock of TransactionRepository.
// The default behavior reproduces the store contract, including
// exactly-one-winner duplicate semantics under concurrent inserts; tests
// override the Func fields to inject failures.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	InsertFunc  func(ctx context.Context, tx *domain.Transaction) error
	ScanAllFunc func(ctx context.Context) ([]*domain.Transaction, error)
	GetByIDFunc func(ctx context.Context, id string) (*domain.Transaction, error)
	CountFunc   func(ctx context.Context) (int64, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Insert(ctx context.Context, tx *domain.Transaction) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, tx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.transactions[tx.ID]; exists {
		return domain.ErrDuplicateTransaction
	}
	m.transactions[tx.ID] = tx
	return nil
}

func (m *MockTransactionRepository) ScanAll(ctx context.Context) ([]*domain.Transaction, error) {
	if m.ScanAllFunc != nil {
		return m.ScanAllFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	txs := make([]*domain.Transaction, 0, len(m.transactions))
	for _, tx := range m.transactions {
		txs = append(txs, tx)
	}
	return txs, nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if tx, ok := m.transactions[id]; ok {
		return tx, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.transactions)), nil
}

// MockCache is an in-memory mock of Cache. TTLs are recorded but not
// enforced.
type MockCache struct {
	mu      sync.RWMutex
	entries map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		entries: make(map[string][]byte),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.entries[key]; ok {
		return v, nil
	}
	return nil, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
