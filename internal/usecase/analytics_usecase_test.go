package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/txpulse/internal/domain"
	"github.com/iho/txpulse/internal/usecase"
	"github.com/iho/txpulse/internal/usecase/mocks"
)

func seedRepo(t *testing.T, repo *mocks.MockTransactionRepository) {
	t.Helper()

	txs := []*domain.Transaction{
		{ID: "t1", Account: "A123", Amount: decimal.RequireFromString("250.50"), Type: domain.TxTypeCredit, Timestamp: mustParse(t, "2026-01-10T14:00:00Z")},
		{ID: "t2", Account: "B456", Amount: decimal.RequireFromString("50.25"), Type: domain.TxTypeDebit, Timestamp: mustParse(t, "2026-01-10T15:30:00Z")},
		{ID: "t3", Account: "A123", Amount: decimal.RequireFromString("10.00"), Type: domain.TxTypeDebit, Timestamp: mustParse(t, "2026-01-10T15:45:00Z")},
	}

	for _, tx := range txs {
		if err := repo.Insert(context.Background(), tx); err != nil {
			t.Fatalf("seed insert failed: %v", err)
		}
	}
}

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad timestamp %s: %v", s, err)
	}
	return ts.UTC()
}

func TestAnalyticsUseCase_Summary(t *testing.T) {
	repo := mocks.NewMockTransactionRepository()
	seedRepo(t, repo)

	uc := usecase.NewAnalyticsUseCase(repo, nil, 0, nil)

	summary, err := uc.Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalCredits.String() != "250.5" {
		t.Errorf("expected credits 250.5, got %s", summary.TotalCredits)
	}
	if summary.TotalDebits.String() != "60.25" {
		t.Errorf("expected debits 60.25, got %s", summary.TotalDebits)
	}
	if summary.NetBalance.String() != "190.25" {
		t.Errorf("expected net 190.25, got %s", summary.NetBalance)
	}
	if summary.TotalTransactions != 3 || summary.UniqueAccounts != 2 {
		t.Errorf("unexpected counts: %+v", summary)
	}
}

func TestAnalyticsUseCase_EmptyStore(t *testing.T) {
	repo := mocks.NewMockTransactionRepository()
	uc := usecase.NewAnalyticsUseCase(repo, nil, 0, nil)
	ctx := context.Background()

	summary, err := uc.Summary(ctx)
	if err != nil {
		t.Fatalf("summary on empty store must not fail: %v", err)
	}
	if !summary.AverageTransaction.IsZero() || summary.TotalTransactions != 0 {
		t.Fatalf("expected zero summary, got %+v", summary)
	}

	buckets, err := uc.Timeline(ctx, usecase.TimelineInput{})
	if err != nil || len(buckets) != 0 {
		t.Fatalf("expected empty timeline, got %v (%v)", buckets, err)
	}

	aggs, err := uc.ByAccount(ctx)
	if err != nil || len(aggs) != 0 {
		t.Fatalf("expected empty account aggregates, got %v (%v)", aggs, err)
	}

	feed, err := uc.Recent(ctx, usecase.RecentInput{Limit: 5})
	if err != nil || len(feed) != 0 {
		t.Fatalf("expected empty feed, got %v (%v)", feed, err)
	}
}

func TestAnalyticsUseCase_TimelineDefaultBucket(t *testing.T) {
	repo := mocks.NewMockTransactionRepository()
	seedRepo(t, repo)

	uc := usecase.NewAnalyticsUseCase(repo, nil, 0, nil)

	buckets, err := uc.Timeline(context.Background(), usecase.TimelineInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Hourly default: 14:00 and 15:00 buckets.
	if len(buckets) != 2 {
		t.Fatalf("expected 2 hourly buckets, got %d", len(buckets))
	}
	if !buckets[0].Start.Before(buckets[1].Start) {
		t.Fatal("buckets must ascend by start time")
	}
}

func TestAnalyticsUseCase_RecentLimits(t *testing.T) {
	repo := mocks.NewMockTransactionRepository()
	seedRepo(t, repo)

	uc := usecase.NewAnalyticsUseCase(repo, nil, 0, nil)
	ctx := context.Background()

	feed, err := uc.Recent(ctx, usecase.RecentInput{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("expected 2, got %d", len(feed))
	}
	if feed[0].ID != "t3" {
		t.Fatalf("expected newest first (t3), got %s", feed[0].ID)
	}

	// Zero limit falls back to the default.
	feed, err = uc.Recent(ctx, usecase.RecentInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(feed) != 3 {
		t.Fatalf("expected all 3 under default limit, got %d", len(feed))
	}
}

func TestAnalyticsUseCase_ScanErrorPropagates(t *testing.T) {
	repo := mocks.NewMockTransactionRepository()
	repo.ScanAllFunc = func(ctx context.Context) ([]*domain.Transaction, error) {
		return nil, domain.ErrStorageUnavailable
	}

	uc := usecase.NewAnalyticsUseCase(repo, nil, 0, nil)

	if _, err := uc.Summary(context.Background()); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected storage error to surface, got %v", err)
	}
}

func TestAnalyticsUseCase_CacheServesSecondQuery(t *testing.T) {
	repo := mocks.NewMockTransactionRepository()
	seedRepo(t, repo)

	snapshot, err := repo.ScanAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scans := 0
	repo.ScanAllFunc = func(ctx context.Context) ([]*domain.Transaction, error) {
		scans++
		return snapshot, nil
	}

	cache := mocks.NewMockCache()
	uc := usecase.NewAnalyticsUseCase(repo, cache, time.Minute, nil)
	ctx := context.Background()

	first, err := uc.Summary(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := uc.Summary(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if scans != 1 {
		t.Fatalf("expected one scan with warm cache, got %d", scans)
	}
	if !first.NetBalance.Equal(second.NetBalance) {
		t.Fatalf("cached summary differs: %s vs %s", first.NetBalance, second.NetBalance)
	}
}

func TestAnalyticsUseCase_CacheFailureDegradesToRecompute(t *testing.T) {
	repo := mocks.NewMockTransactionRepository()
	seedRepo(t, repo)

	cache := mocks.NewMockCache()
	cache.GetFunc = func(ctx context.Context, key string) ([]byte, error) {
		return nil, errors.New("redis down")
	}
	cache.SetFunc = func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
		return errors.New("redis down")
	}

	uc := usecase.NewAnalyticsUseCase(repo, cache, time.Minute, nil)

	summary, err := uc.Summary(context.Background())
	if err != nil {
		t.Fatalf("cache failure must not fail the query: %v", err)
	}
	if summary.TotalTransactions != 3 {
		t.Fatalf("expected recomputed summary, got %+v", summary)
	}
}
