package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/txpulse/internal/domain"
	"github.com/iho/txpulse/internal/infrastructure/metrics"
)

// IngestUseCase validates raw transaction payloads and persists them.
type IngestUseCase struct {
	txRepo  TransactionRepository
	metrics *metrics.Metrics
}

// NewIngestUseCase creates a new IngestUseCase. Metrics may be nil.
func NewIngestUseCase(txRepo TransactionRepository, m *metrics.Metrics) *IngestUseCase {
	return &IngestUseCase{
		txRepo:  txRepo,
		metrics: m,
	}
}

// IngestTransaction validates a raw payload and stores the resulting
// transaction. Validation failures and duplicate IDs come back as typed
// domain errors and are never retried; the repository handles transient
// storage retries internally.
func (uc *IngestUseCase) IngestTransaction(ctx context.Context, raw map[string]any) (*domain.Transaction, error) {
	start := time.Now()

	tx, err := domain.ValidatePayload(raw)
	if err != nil {
		uc.observeRejection(err)
		return nil, err
	}

	tx.CreatedAt = time.Now().UTC()

	if err := uc.txRepo.Insert(ctx, tx); err != nil {
		if errors.Is(err, domain.ErrDuplicateTransaction) && uc.metrics != nil {
			uc.metrics.DuplicatesRejected.Inc()
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsIngested.Inc()
		uc.metrics.IngestDuration.Observe(time.Since(start).Seconds())
	}

	return tx, nil
}

// GetTransaction retrieves a stored transaction by ID.
func (uc *IngestUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.txRepo.GetByID(ctx, id)
}

func (uc *IngestUseCase) observeRejection(err error) {
	if uc.metrics == nil {
		return
	}

	reason := "unknown"
	switch {
	case errors.Is(err, domain.ErrMissingField):
		reason = "missing_field"
	case errors.Is(err, domain.ErrInvalidAmount):
		reason = "invalid_amount"
	case errors.Is(err, domain.ErrInvalidType):
		reason = "invalid_type"
	case errors.Is(err, domain.ErrInvalidTimestamp):
		reason = "invalid_timestamp"
	}

	uc.metrics.ValidationFailures.WithLabelValues(reason).Inc()
}
