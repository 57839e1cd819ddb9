package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/txpulse/internal/domain"
)

// TransactionRepository implements usecase.TransactionRepository on
// PostgreSQL. Amounts travel as NUMERIC so the decimal value survives the
// round-trip exactly; id uniqueness rides on the primary key, which makes
// concurrent same-id inserts resolve to exactly one winner without any
// application-level locking.
type TransactionRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		pool:    pool,
		retrier: NewRetrier(),
	}
}

const insertTransactionSQL = `
INSERT INTO transactions (id, account, amount, tx_type, occurred_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO NOTHING`

// Insert stores a transaction. A duplicate id returns
// domain.ErrDuplicateTransaction and the first-accepted record is retained
// untouched. Transient database failures are retried with backoff before
// surfacing as domain.ErrStorageUnavailable.
func (r *TransactionRepository) Insert(ctx context.Context, tx *domain.Transaction) error {
	var tag pgconn.CommandTag

	err := r.retrier.Retry(ctx, func() error {
		var err error
		tag, err = r.pool.Exec(ctx, insertTransactionSQL,
			tx.ID,
			tx.Account,
			decimalToNumeric(tx.Amount),
			string(tx.Type),
			timeToPgTimestamptz(tx.Timestamp),
			timeToPgTimestamptz(tx.CreatedAt),
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: insert transaction: %v", domain.ErrStorageUnavailable, err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrDuplicateTransaction
	}

	return nil
}

const scanAllSQL = `
SELECT id, account, amount, tx_type, occurred_at, created_at
FROM transactions`

// ScanAll returns an unordered snapshot of every stored transaction. The
// single-statement read gives a consistent snapshot at the instant the
// scan starts; inserts completing concurrently appear in later scans.
func (r *TransactionRepository) ScanAll(ctx context.Context) ([]*domain.Transaction, error) {
	var txs []*domain.Transaction

	err := r.retrier.Retry(ctx, func() error {
		rows, err := r.pool.Query(ctx, scanAllSQL)
		if err != nil {
			return err
		}
		defer rows.Close()

		txs = txs[:0]
		for rows.Next() {
			tx, err := scanTransaction(rows)
			if err != nil {
				return err
			}
			txs = append(txs, tx)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scan transactions: %v", domain.ErrStorageUnavailable, err)
	}

	return txs, nil
}

const getByIDSQL = `
SELECT id, account, amount, tx_type, occurred_at, created_at
FROM transactions
WHERE id = $1`

// GetByID retrieves a transaction by id.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, getByIDSQL, id)

	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, fmt.Errorf("%w: get transaction: %v", domain.ErrStorageUnavailable, err)
	}

	return tx, nil
}

// Count returns the number of stored transactions.
func (r *TransactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM transactions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: count transactions: %v", domain.ErrStorageUnavailable, err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var (
		tx         domain.Transaction
		amount     pgtype.Numeric
		txType     string
		occurredAt pgtype.Timestamptz
		createdAt  pgtype.Timestamptz
	)

	if err := row.Scan(&tx.ID, &tx.Account, &amount, &txType, &occurredAt, &createdAt); err != nil {
		return nil, err
	}

	tx.Amount = numericToDecimal(amount)
	tx.Type = domain.TxType(txType)
	tx.Timestamp = occurredAt.Time.UTC()
	tx.CreatedAt = createdAt.Time.UTC()

	return &tx, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
