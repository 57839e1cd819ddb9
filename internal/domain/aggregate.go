package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Summary holds whole-store aggregate statistics.
type Summary struct {
	TotalCredits       decimal.Decimal
	TotalDebits        decimal.Decimal
	NetBalance         decimal.Decimal
	TotalTransactions  int64
	AverageTransaction decimal.Decimal
	UniqueAccounts     int64
}

// TimelineBucket holds credit and debit sums for one time bucket.
type TimelineBucket struct {
	Start   time.Time
	Credits decimal.Decimal
	Debits  decimal.Decimal
	Count   int64
}

// TypeDistribution holds total amounts per transaction type.
type TypeDistribution struct {
	Credit decimal.Decimal
	Debit  decimal.Decimal
}

// AccountAggregate holds per-account credit/debit sums and balance.
type AccountAggregate struct {
	Account string
	Credits decimal.Decimal
	Debits  decimal.Decimal
	Balance decimal.Decimal
	Count   int64
}

// averagePrecision bounds the scale of the summary average so that sums
// over amounts with differing scales still divide to a terminating decimal.
const averagePrecision = 4

// Summarize computes whole-store statistics from a snapshot in one pass.
// All arithmetic is exact decimal; AverageTransaction is zero for an empty
// snapshot.
func Summarize(txs []*Transaction) Summary {
	s := Summary{
		TotalCredits:       decimal.Zero,
		TotalDebits:        decimal.Zero,
		NetBalance:         decimal.Zero,
		AverageTransaction: decimal.Zero,
	}

	accounts := make(map[string]struct{})
	total := decimal.Zero

	for _, tx := range txs {
		if tx.IsCredit() {
			s.TotalCredits = s.TotalCredits.Add(tx.Amount)
		} else {
			s.TotalDebits = s.TotalDebits.Add(tx.Amount)
		}
		total = total.Add(tx.Amount)
		accounts[tx.Account] = struct{}{}
	}

	s.NetBalance = s.TotalCredits.Sub(s.TotalDebits)
	s.TotalTransactions = int64(len(txs))
	s.UniqueAccounts = int64(len(accounts))

	if s.TotalTransactions > 0 {
		s.AverageTransaction = total.DivRound(decimal.NewFromInt(s.TotalTransactions), averagePrecision)
	}

	return s
}

// Timeline groups a snapshot into fixed-size time buckets. Bucket start is
// the UTC truncation of the transaction timestamp; empty buckets are
// omitted and results are ordered ascending by bucket start.
func Timeline(txs []*Transaction, bucket time.Duration) []TimelineBucket {
	grouped := make(map[time.Time]*TimelineBucket)

	for _, tx := range txs {
		start := tx.Timestamp.UTC().Truncate(bucket)

		b, ok := grouped[start]
		if !ok {
			b = &TimelineBucket{Start: start, Credits: decimal.Zero, Debits: decimal.Zero}
			grouped[start] = b
		}

		if tx.IsCredit() {
			b.Credits = b.Credits.Add(tx.Amount)
		} else {
			b.Debits = b.Debits.Add(tx.Amount)
		}
		b.Count++
	}

	buckets := make([]TimelineBucket, 0, len(grouped))
	for _, b := range grouped {
		buckets = append(buckets, *b)
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Start.Before(buckets[j].Start)
	})

	return buckets
}

// DistributionByType sums amounts per transaction type.
func DistributionByType(txs []*Transaction) TypeDistribution {
	d := TypeDistribution{Credit: decimal.Zero, Debit: decimal.Zero}

	for _, tx := range txs {
		if tx.IsCredit() {
			d.Credit = d.Credit.Add(tx.Amount)
		} else {
			d.Debit = d.Debit.Add(tx.Amount)
		}
	}

	return d
}

// GroupByAccount aggregates a snapshot per account. Results are ordered by
// account identifier ascending so that rows keep a stable position as
// amounts change between polls.
func GroupByAccount(txs []*Transaction) []AccountAggregate {
	grouped := make(map[string]*AccountAggregate)

	for _, tx := range txs {
		agg, ok := grouped[tx.Account]
		if !ok {
			agg = &AccountAggregate{Account: tx.Account, Credits: decimal.Zero, Debits: decimal.Zero}
			grouped[tx.Account] = agg
		}

		if tx.IsCredit() {
			agg.Credits = agg.Credits.Add(tx.Amount)
		} else {
			agg.Debits = agg.Debits.Add(tx.Amount)
		}
		agg.Count++
	}

	aggs := make([]AccountAggregate, 0, len(grouped))
	for _, agg := range grouped {
		agg.Balance = agg.Credits.Sub(agg.Debits)
		aggs = append(aggs, *agg)
	}

	sort.Slice(aggs, func(i, j int) bool {
		return aggs[i].Account < aggs[j].Account
	})

	return aggs
}

// Recent returns the newest transactions, ordered by timestamp descending
// with ties broken by ID descending, truncated to limit. The input slice is
// not modified.
func Recent(txs []*Transaction, limit int) []*Transaction {
	if limit < 0 {
		limit = 0
	}

	sorted := make([]*Transaction, len(txs))
	copy(sorted, txs)

	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].Timestamp.After(sorted[j].Timestamp)
		}
		return sorted[i].ID > sorted[j].ID
	})

	if limit < len(sorted) {
		sorted = sorted[:limit]
	}

	return sorted
}
