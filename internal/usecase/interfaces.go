package usecase

import (
	"context"
	"time"

	"github.com/iho/txpulse/internal/domain"
)

// TransactionRepository defines data access for transactions.
type TransactionRepository interface {
	// Insert stores a transaction. A second insert with the same ID returns
	// domain.ErrDuplicateTransaction and leaves the first record untouched.
	Insert(ctx context.Context, tx *domain.Transaction) error
	// ScanAll returns an unordered snapshot of every stored transaction.
	ScanAll(ctx context.Context) ([]*domain.Transaction, error)
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	Count(ctx context.Context) (int64, error)
}

// Cache defines caching operations for serialized analytics responses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
