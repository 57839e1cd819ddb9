package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/txpulse/internal/domain"
)

// SummaryResponse represents whole-store statistics in API responses.
// Monetary fields marshal as decimal strings; nothing on this boundary
// passes through binary floating point.
type SummaryResponse struct {
	TotalCredits       decimal.Decimal `json:"total_credits"`
	TotalDebits        decimal.Decimal `json:"total_debits"`
	NetBalance         decimal.Decimal `json:"net_balance"`
	TotalTransactions  int64           `json:"total_transactions"`
	AverageTransaction decimal.Decimal `json:"average_transaction"`
	UniqueAccounts     int64           `json:"unique_accounts"`
}

// SummaryFromDomain converts a domain summary to a response.
func SummaryFromDomain(s domain.Summary) SummaryResponse {
	return SummaryResponse{
		TotalCredits:       s.TotalCredits,
		TotalDebits:        s.TotalDebits,
		NetBalance:         s.NetBalance,
		TotalTransactions:  s.TotalTransactions,
		AverageTransaction: s.AverageTransaction,
		UniqueAccounts:     s.UniqueAccounts,
	}
}

// TimelineBucketResponse represents one time bucket in API responses.
type TimelineBucketResponse struct {
	Timestamp string          `json:"timestamp"`
	Credits   decimal.Decimal `json:"credits"`
	Debits    decimal.Decimal `json:"debits"`
	Count     int64           `json:"count"`
}

// TimelineFromDomain converts domain buckets to responses.
func TimelineFromDomain(buckets []domain.TimelineBucket) []TimelineBucketResponse {
	result := make([]TimelineBucketResponse, len(buckets))
	for i, b := range buckets {
		result[i] = TimelineBucketResponse{
			Timestamp: b.Start.UTC().Format(time.RFC3339),
			Credits:   b.Credits,
			Debits:    b.Debits,
			Count:     b.Count,
		}
	}
	return result
}

// TypeDistributionResponse represents per-type amount totals.
type TypeDistributionResponse struct {
	Credit decimal.Decimal `json:"credit"`
	Debit  decimal.Decimal `json:"debit"`
}

// TypeDistributionFromDomain converts a domain distribution to a response.
func TypeDistributionFromDomain(d domain.TypeDistribution) TypeDistributionResponse {
	return TypeDistributionResponse{
		Credit: d.Credit,
		Debit:  d.Debit,
	}
}

// AccountAggregateResponse represents one account's aggregates.
type AccountAggregateResponse struct {
	Account string          `json:"account"`
	Credits decimal.Decimal `json:"credits"`
	Debits  decimal.Decimal `json:"debits"`
	Balance decimal.Decimal `json:"balance"`
	Count   int64           `json:"count"`
}

// AccountAggregatesFromDomain converts domain aggregates to responses.
func AccountAggregatesFromDomain(aggs []domain.AccountAggregate) []AccountAggregateResponse {
	result := make([]AccountAggregateResponse, len(aggs))
	for i, a := range aggs {
		result[i] = AccountAggregateResponse{
			Account: a.Account,
			Credits: a.Credits,
			Debits:  a.Debits,
			Balance: a.Balance,
			Count:   a.Count,
		}
	}
	return result
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID        string          `json:"id"`
	Account   string          `json:"account"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp string          `json:"timestamp"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(tx *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        tx.ID,
		Account:   tx.Account,
		Type:      string(tx.Type),
		Amount:    tx.Amount,
		Timestamp: tx.Timestamp.UTC().Format(time.RFC3339),
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txs []*domain.Transaction) []TransactionResponse {
	result := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		result[i] = TransactionFromDomain(tx)
	}
	return result
}

// MessageResponse represents a success acknowledgment.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
