package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/txpulse/internal/adapter/http/dto"
	"github.com/iho/txpulse/internal/domain"
	"github.com/iho/txpulse/internal/usecase"
)

// AnalyticsService defines the behavior needed by AnalyticsHandler.
type AnalyticsService interface {
	Summary(ctx context.Context) (domain.Summary, error)
	Timeline(ctx context.Context, input usecase.TimelineInput) ([]domain.TimelineBucket, error)
	TypeDistribution(ctx context.Context) (domain.TypeDistribution, error)
	ByAccount(ctx context.Context) ([]domain.AccountAggregate, error)
	Recent(ctx context.Context, input usecase.RecentInput) ([]*domain.Transaction, error)
}

// AnalyticsHandler handles analytics queries from the polling dashboard.
type AnalyticsHandler struct {
	analyticsUC AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsUC AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsUC: analyticsUC}
}

// Summary returns whole-store statistics. An empty store yields zero
// values, never an error.
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analyticsUC.Summary(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(summary))
}

// Timeline returns time-bucketed credit/debit sums, ascending by bucket
// start. Granularity comes from the bucket query parameter.
func (h *AnalyticsHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	bucket, ok := parseBucket(r.URL.Query().Get("bucket"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid bucket", "bucket must be minute, hour or day")
		return
	}

	buckets, err := h.analyticsUC.Timeline(r.Context(), usecase.TimelineInput{Bucket: bucket})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute timeline", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TimelineFromDomain(buckets))
}

// TypeDistribution returns summed amounts per transaction type.
func (h *AnalyticsHandler) TypeDistribution(w http.ResponseWriter, r *http.Request) {
	dist, err := h.analyticsUC.TypeDistribution(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute type distribution", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TypeDistributionFromDomain(dist))
}

// ByAccount returns per-account aggregates ordered by account id.
func (h *AnalyticsHandler) ByAccount(w http.ResponseWriter, r *http.Request) {
	aggs, err := h.analyticsUC.ByAccount(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute account aggregates", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountAggregatesFromDomain(aggs))
}

// Recent returns the newest transactions, newest first.
func (h *AnalyticsHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", usecase.DefaultRecentLimit)

	feed, err := h.analyticsUC.Recent(r.Context(), usecase.RecentInput{Limit: limit})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute recent feed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(feed))
}

// parseBucket maps the bucket query parameter to a duration. An empty
// value selects the hourly default.
func parseBucket(v string) (time.Duration, bool) {
	switch v {
	case "":
		return usecase.DefaultTimelineBucket, true
	case "minute":
		return time.Minute, true
	case "hour":
		return time.Hour, true
	case "day":
		return 24 * time.Hour, true
	default:
		return 0, false
	}
}
