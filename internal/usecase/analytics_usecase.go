package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iho/txpulse/internal/domain"
	"github.com/iho/txpulse/internal/infrastructure/metrics"
)

// Recent feed limits.
const (
	DefaultRecentLimit = 10
	MaxRecentLimit     = 1000
)

// DefaultTimelineBucket is the bucket size used when the caller does not
// ask for a specific granularity.
const DefaultTimelineBucket = time.Hour

// AnalyticsUseCase derives analytic views from the current store contents.
// Every query takes one full snapshot and feeds it to the pure aggregation
// functions, so a response is always internally consistent even while
// ingestion continues.
type AnalyticsUseCase struct {
	txRepo   TransactionRepository
	cache    Cache
	cacheTTL time.Duration
	metrics  *metrics.Metrics
}

// NewAnalyticsUseCase creates a new AnalyticsUseCase. The cache is an
// optional extension point: pass a nil cache or a zero TTL and every query
// recomputes from current store state.
func NewAnalyticsUseCase(txRepo TransactionRepository, cache Cache, cacheTTL time.Duration, m *metrics.Metrics) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		txRepo:   txRepo,
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  m,
	}
}

// Summary computes whole-store statistics.
func (uc *AnalyticsUseCase) Summary(ctx context.Context) (domain.Summary, error) {
	var cached domain.Summary
	if uc.fromCache(ctx, "analytics:summary", &cached) {
		return cached, nil
	}

	txs, err := uc.snapshot(ctx)
	if err != nil {
		return domain.Summary{}, err
	}

	summary := domain.Summarize(txs)
	uc.toCache(ctx, "analytics:summary", summary)

	return summary, nil
}

// TimelineInput carries timeline query parameters.
type TimelineInput struct {
	Bucket time.Duration
}

// Timeline computes time-bucketed credit/debit sums, ascending by bucket
// start. Buckets with no transactions are omitted.
func (uc *AnalyticsUseCase) Timeline(ctx context.Context, input TimelineInput) ([]domain.TimelineBucket, error) {
	bucket := input.Bucket
	if bucket <= 0 {
		bucket = DefaultTimelineBucket
	}

	key := fmt.Sprintf("analytics:timeline:%s", bucket)

	var cached []domain.TimelineBucket
	if uc.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	txs, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	buckets := domain.Timeline(txs, bucket)
	uc.toCache(ctx, key, buckets)

	return buckets, nil
}

// TypeDistribution computes total amounts per transaction type.
func (uc *AnalyticsUseCase) TypeDistribution(ctx context.Context) (domain.TypeDistribution, error) {
	var cached domain.TypeDistribution
	if uc.fromCache(ctx, "analytics:type-distribution", &cached) {
		return cached, nil
	}

	txs, err := uc.snapshot(ctx)
	if err != nil {
		return domain.TypeDistribution{}, err
	}

	dist := domain.DistributionByType(txs)
	uc.toCache(ctx, "analytics:type-distribution", dist)

	return dist, nil
}

// ByAccount computes per-account aggregates, ordered by account ascending.
func (uc *AnalyticsUseCase) ByAccount(ctx context.Context) ([]domain.AccountAggregate, error) {
	var cached []domain.AccountAggregate
	if uc.fromCache(ctx, "analytics:by-account", &cached) {
		return cached, nil
	}

	txs, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	aggs := domain.GroupByAccount(txs)
	uc.toCache(ctx, "analytics:by-account", aggs)

	return aggs, nil
}

// RecentInput carries recent feed query parameters.
type RecentInput struct {
	Limit int
}

// Recent returns the newest transactions, timestamp descending.
func (uc *AnalyticsUseCase) Recent(ctx context.Context, input RecentInput) ([]*domain.Transaction, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	key := fmt.Sprintf("analytics:recent:%d", limit)

	var cached []*domain.Transaction
	if uc.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	txs, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	feed := domain.Recent(txs, limit)
	uc.toCache(ctx, key, feed)

	return feed, nil
}

// snapshot performs the single full-table read every view derives from.
func (uc *AnalyticsUseCase) snapshot(ctx context.Context) ([]*domain.Transaction, error) {
	start := time.Now()

	txs, err := uc.txRepo.ScanAll(ctx)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ScanDuration.Observe(time.Since(start).Seconds())
	}

	return txs, nil
}

// fromCache loads a cached view into dst. Cache failures degrade to a
// recompute rather than surfacing to the caller.
func (uc *AnalyticsUseCase) fromCache(ctx context.Context, key string, dst any) bool {
	if uc.cache == nil || uc.cacheTTL <= 0 {
		return false
	}

	data, err := uc.cache.Get(ctx, key)
	if err != nil || data == nil {
		return false
	}

	return json.Unmarshal(data, dst) == nil
}

func (uc *AnalyticsUseCase) toCache(ctx context.Context, key string, view any) {
	if uc.cache == nil || uc.cacheTTL <= 0 {
		return
	}

	data, err := json.Marshal(view)
	if err != nil {
		return
	}

	_ = uc.cache.Set(ctx, key, data, uc.cacheTTL)
}
